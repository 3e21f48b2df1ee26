package service

import "sfa/entities"

type KnowledgeItem struct {
	ID       uint   `json:"id,omitempty"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Source   string `json:"source,omitempty"`
	Language string `json:"language,omitempty"` // bn|en, default bn
	Tags     string `json:"tags,omitempty"`
}

type IngestResult struct {
	Count            int                     `json:"count"`
	Documents        []entities.KnowledgeDoc `json:"documents"`
	EmbeddingEnabled bool                    `json:"embeddingEnabled"`
}

type Reference struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

type Answer struct {
	Answer     string      `json:"answer"`
	References []Reference `json:"references"`
}

type AIService interface {
	IngestKnowledge(items []KnowledgeItem, actorEmail string) (*IngestResult, error)
	ListKnowledge(limit int) ([]entities.KnowledgeDoc, error)
	AskQuestion(question string, topK int, answerLanguage string) (*Answer, error)
}
