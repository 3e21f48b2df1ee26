package entities

import "time"

// ActivityLog is append-only: rows are created and read, never updated.
type ActivityLog struct {
	LogID      uint   `gorm:"primaryKey" json:"log_id"`
	Action     string `gorm:"index" json:"action"`
	ActorEmail string `json:"actorEmail"`
	ActorRole  string `json:"actorRole"`
	Message    string `json:"message"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
