package repositoryImp

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"sfa/entities"
	"sfa/pkg/soils/repository"
)

type soilRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SoilRepository { return &soilRepo{db} }

func (r *soilRepo) Create(s *entities.Soil) error { return r.db.Create(s).Error }

func (r *soilRepo) List(search string, page, limit int) (*repository.ListResult, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 6
	}
	if limit > 50 {
		limit = 50
	}

	q := r.db.Model(&entities.Soil{})
	if s := strings.TrimSpace(strings.ToLower(search)); s != "" {
		like := "%" + s + "%"
		q = q.Where(
			"LOWER(soil_type || ' ' || suitable_crops || ' ' || nutrients || ' ' || irrigation_tips) LIKE ?",
			like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []entities.Soil
	if err := q.Order("created_at DESC, soil_id DESC").
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

func (r *soilRepo) Update(id uint, patch map[string]any) (*entities.Soil, error) {
	var s entities.Soil
	if err := r.db.Where("soil_id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	patch["updated_at"] = time.Now()
	if err := r.db.Model(&s).Updates(patch).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *soilRepo) Delete(id uint) error {
	var s entities.Soil
	if err := r.db.Where("soil_id = ?", id).First(&s).Error; err != nil {
		return err
	}
	return r.db.Delete(&s).Error
}
