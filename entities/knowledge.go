package entities

import "time"

type KnowledgeDoc struct {
	DocID     uint   `gorm:"primaryKey" json:"doc_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Source    string `json:"source"`
	Language  string `json:"language"` // bn|en
	Tags      string `json:"tags"`
	Embedding []byte `json:"-"` // little-endian float32 vector, empty when embedding is disabled

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`
}
