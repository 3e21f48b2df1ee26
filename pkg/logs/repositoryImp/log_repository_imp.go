package repositoryImp

import (
	"gorm.io/gorm"

	"sfa/entities"
	"sfa/pkg/logs/repository"
)

type logRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.LogRepository { return &logRepo{db} }

func (r *logRepo) Create(action, actorEmail, actorRole, message string) (*entities.ActivityLog, error) {
	l := entities.ActivityLog{
		Action:     action,
		ActorEmail: actorEmail,
		ActorRole:  actorRole,
		Message:    message,
	}
	if err := r.db.Create(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *logRepo) Recent(limit int) ([]entities.ActivityLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var ls []entities.ActivityLog
	return ls, r.db.Order("created_at DESC, log_id DESC").Limit(limit).Find(&ls).Error
}
