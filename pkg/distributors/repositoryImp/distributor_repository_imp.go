package repositoryImp

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"sfa/entities"
	"sfa/pkg/distributors/repository"
)

type distRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.DistributorRepository { return &distRepo{db} }

func (r *distRepo) Create(d *entities.Distributor) error { return r.db.Create(d).Error }

func (r *distRepo) List(search string, page, limit int) (*repository.ListResult, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 6
	}
	if limit > 50 {
		limit = 50
	}

	q := r.db.Model(&entities.Distributor{})
	if s := strings.TrimSpace(strings.ToLower(search)); s != "" {
		like := "%" + s + "%"
		q = q.Where(
			"LOWER(name || ' ' || contact_person || ' ' || address || ' ' || seeds_available) LIKE ?",
			like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []entities.Distributor
	if err := q.Order("created_at DESC, distributor_id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return &repository.ListResult{Items: items, Total: total, Page: page, Limit: limit, TotalPages: pages}, nil
}

func (r *distRepo) Update(id uint, patch map[string]any) (*entities.Distributor, error) {
	var d entities.Distributor
	if err := r.db.Where("distributor_id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	patch["updated_at"] = time.Now()
	if err := r.db.Model(&d).Updates(patch).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *distRepo) Delete(id uint) error {
	var d entities.Distributor
	if err := r.db.Where("distributor_id = ?", id).First(&d).Error; err != nil {
		return err
	}
	return r.db.Delete(&d).Error
}
