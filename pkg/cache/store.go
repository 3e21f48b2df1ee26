package cache

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sfa/entities"
)

// Store is the shared remote-fetch cache. Entries past ExpiresAt are treated
// as absent; they are never evicted, only overwritten by the next Set.
// There is no per-key fetch coordination: two concurrent misses may both
// fetch and both write, last write wins.
type Store interface {
	Get(key string, out any) (bool, error)
	Set(key string, value any, ttl time.Duration) error
}

type store struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) Store { return &store{db: db, now: time.Now} }

// NewWithClock lets tests pin the clock used for expiry checks.
func NewWithClock(db *gorm.DB, now func() time.Time) Store { return &store{db: db, now: now} }

func (s *store) Get(key string, out any) (bool, error) {
	var e entities.CacheEntry
	err := s.db.Where("key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !e.ExpiresAt.After(s.now()) {
		// logically expired, leave the row in place
		return false, nil
	}
	if err := json.Unmarshal([]byte(e.Value), out); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *store) Set(key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	now := s.now()
	e := entities.CacheEntry{
		Key:       key,
		Value:     string(b),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&e).Error
}
