package repository

import "sfa/entities"

type KnowledgeRepository interface {
	Upsert(d *entities.KnowledgeDoc) error
	Recent(limit int) ([]entities.KnowledgeDoc, error)
	FindByID(id uint) (*entities.KnowledgeDoc, error)
}
