package entities

import "time"

// CacheEntry holds an opaque JSON value. Expired entries stay in the table;
// readers must treat a past ExpiresAt as a miss and writers overwrite.
type CacheEntry struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
