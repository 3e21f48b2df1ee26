package serviceImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sfa/database"
	"sfa/entities"
	"sfa/pkg/agmarknet/service"
	"sfa/pkg/apperr"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

const sampleBody = `{
	"total": 2,
	"count": 2,
	"title": "Current Daily Price of Various Commodities",
	"updated_date": "05/01/2026",
	"records": [
		{
			"state": "West Bengal", "district": "Nadia", "market": "Krishnanagar",
			"commodity": "Rice", "variety": "Common", "grade": "FAQ",
			"arrival_date": "05/01/2026",
			"min_price": "1,800", "max_price": "2,200", "modal_price": "2,000"
		},
		{
			"state": "West Bengal", "district": "Nadia", "market": "Ranaghat",
			"commodity": "Rice", "variety": "Common", "grade": "FAQ",
			"arrival_date": "05/01/2026",
			"min_price": 1700, "max_price": 2100, "modal_price": 1900
		}
	]
}`

func TestFetchLiveParsesMixedPriceFormats(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	svc := New(nil, srv.URL, "resource-1", "test-key")
	res, err := svc.FetchLive(service.Query{State: "West Bengal", District: "Nadia", Commodity: "Rice"})
	require.NoError(t, err)

	require.Len(t, res.Records, 2)
	assert.Equal(t, 2000.0, res.Records[0].ModalPrice, "comma-grouped string prices are parsed")
	assert.Equal(t, 1800.0, res.Records[0].MinPrice)
	assert.Equal(t, 1900.0, res.Records[1].ModalPrice, "numeric prices pass through")
	assert.Equal(t, "agmarknet", res.Records[0].Source)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 25, res.Limit, "limit defaults to 25")

	assert.Contains(t, gotQuery, "api-key=test-key")
	assert.Contains(t, gotQuery, "format=json")
	assert.Contains(t, gotQuery, "filters%5Bstate%5D=West+Bengal")
	assert.Contains(t, gotQuery, "filters%5Bdistrict%5D=Nadia")
	assert.Contains(t, gotQuery, "filters%5Bcommodity%5D=Rice")
	assert.NotContains(t, gotQuery, "filters%5Bmarket%5D", "empty filters are omitted")
}

func TestFetchLiveClampsLimit(t *testing.T) {
	var gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`{"records":[]}`))
	}))
	defer srv.Close()

	svc := New(nil, srv.URL, "resource-1", "k")
	res, err := svc.FetchLive(service.Query{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, "100", gotLimit)
	assert.Equal(t, 100, res.Limit)
	assert.Equal(t, "Current Daily Price of Various Commodities", res.Title, "missing title gets the default")
}

func TestFetchLiveUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := New(nil, srv.URL, "resource-1", "k")
	_, err := svc.FetchLive(service.Query{})
	require.Error(t, err)
	code, ok := apperr.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, apperr.CodeInternal, code)
}

func TestFetchLiveMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	svc := New(nil, srv.URL, "resource-1", "k")
	_, err := svc.FetchLive(service.Query{})
	require.Error(t, err)
}

func TestSyncToDBIsIdempotent(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	db := openTestDB(t)
	svc := New(db, srv.URL, "resource-1", "k")

	first, err := svc.SyncToDB(service.Query{Commodity: "Rice"})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Synced)

	// same upstream rows again: upsert on the stable record id, no duplicates
	second, err := svc.SyncToDB(service.Query{Commodity: "Rice"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Synced)

	var stored int64
	require.NoError(t, db.Model(&entities.MandiPrice{}).Count(&stored).Error)
	assert.EqualValues(t, 2, stored)
	assert.EqualValues(t, 2, hits.Load())
}

func TestExportXLSXWritesHeaderAndRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	svc := New(nil, srv.URL, "resource-1", "k")
	f, err := svc.ExportXLSX(service.Query{Commodity: "Rice"})
	require.NoError(t, err)

	header, err := f.GetCellValue("Prices", "A1")
	require.NoError(t, err)
	assert.Equal(t, "State", header)

	market, err := f.GetCellValue("Prices", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Krishnanagar", market)

	modal, err := f.GetCellValue("Prices", "I3")
	require.NoError(t, err)
	assert.Equal(t, "1900", modal)
}

func TestStableRecordIDDependsOnContent(t *testing.T) {
	var recs []service.Record
	require.NoError(t, json.Unmarshal([]byte(`[
		{"market":"Krishnanagar","arrivalDate":"05/01/2026","modalPrice":2000},
		{"market":"Krishnanagar","arrivalDate":"05/01/2026","modalPrice":2000},
		{"market":"Krishnanagar","arrivalDate":"05/01/2026","modalPrice":2100}
	]`), &recs))

	assert.Equal(t, stableRecordID(recs[0]), stableRecordID(recs[1]))
	assert.NotEqual(t, stableRecordID(recs[0]), stableRecordID(recs[2]))
	assert.Len(t, stableRecordID(recs[0]), 40)
}
