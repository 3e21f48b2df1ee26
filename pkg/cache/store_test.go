package cache

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sfa/entities"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&entities.CacheEntry{}))
	return db
}

type payload struct {
	State    string `json:"state"`
	District string `json:"district"`
}

func TestGetMissOnEmptyStore(t *testing.T) {
	s := New(newTestDB(t))

	var out payload
	hit, err := s.Get("pincode:742101", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSetThenGet(t *testing.T) {
	s := New(newTestDB(t))

	require.NoError(t, s.Set("pincode:742101", payload{"West Bengal", "Murshidabad"}, time.Hour))

	var out payload
	hit, err := s.Get("pincode:742101", &out)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "West Bengal", out.State)
	assert.Equal(t, "Murshidabad", out.District)
}

func TestExpiredEntryIsNeverReturned(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	clock := &now
	s := NewWithClock(db, func() time.Time { return *clock })

	require.NoError(t, s.Set("soil:24.1:88.2", payload{State: "x"}, time.Hour))

	later := now.Add(2 * time.Hour)
	clock = &later

	var out payload
	hit, err := s.Get("soil:24.1:88.2", &out)
	require.NoError(t, err)
	assert.False(t, hit, "entry past expiry must be treated as absent")

	// the stale row stays in storage until the next write overwrites it
	var count int64
	require.NoError(t, db.Model(&entities.CacheEntry{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSetOverwritesStaleEntry(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	clock := &now
	s := NewWithClock(db, func() time.Time { return *clock })

	require.NoError(t, s.Set("k", payload{State: "old"}, time.Minute))
	later := now.Add(time.Hour)
	clock = &later
	require.NoError(t, s.Set("k", payload{State: "new"}, time.Minute))

	var out payload
	hit, err := s.Get("k", &out)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "new", out.State)

	var count int64
	require.NoError(t, db.Model(&entities.CacheEntry{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
