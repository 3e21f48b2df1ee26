package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"sfa/entities"
	"sfa/pkg/ai/repository"
)

type knowledgeRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.KnowledgeRepository { return &knowledgeRepo{db} }

func (r *knowledgeRepo) Upsert(d *entities.KnowledgeDoc) error {
	if d.DocID == 0 {
		return r.db.Create(d).Error
	}
	return r.db.Save(d).Error
}

func (r *knowledgeRepo) Recent(limit int) ([]entities.KnowledgeDoc, error) {
	if limit <= 0 {
		limit = 100
	}
	var ds []entities.KnowledgeDoc
	return ds, r.db.Order("updated_at DESC, doc_id DESC").Limit(limit).Find(&ds).Error
}

func (r *knowledgeRepo) FindByID(id uint) (*entities.KnowledgeDoc, error) {
	var d entities.KnowledgeDoc
	err := r.db.Where("doc_id = ?", id).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
