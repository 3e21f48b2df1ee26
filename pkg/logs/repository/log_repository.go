package repository

import "sfa/entities"

type LogRepository interface {
	Create(action, actorEmail, actorRole, message string) (*entities.ActivityLog, error)
	Recent(limit int) ([]entities.ActivityLog, error)
}
