package repository

import "sfa/entities"

type ListResult struct {
	Items      []entities.Soil `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

type SoilRepository interface {
	Create(s *entities.Soil) error
	List(search string, page, limit int) (*ListResult, error)
	Update(id uint, patch map[string]any) (*entities.Soil, error)
	Delete(id uint) error
}
