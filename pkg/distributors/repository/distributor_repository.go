package repository

import "sfa/entities"

type ListResult struct {
	Items      []entities.Distributor `json:"items"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"totalPages"`
}

type DistributorRepository interface {
	Create(d *entities.Distributor) error
	List(search string, page, limit int) (*ListResult, error)
	Update(id uint, patch map[string]any) (*entities.Distributor, error)
	Delete(id uint) error
}
