package serviceImp

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sfa/entities"
	"sfa/pkg/agmarknet/service"
	"sfa/pkg/apperr"
)

type Svc struct {
	db         *gorm.DB
	httpc      *http.Client
	baseURL    string
	resourceID string
	apiKey     string
}

func New(db *gorm.DB, baseURL, resourceID, apiKey string) service.AgmarknetService {
	return &Svc{
		db:         db,
		httpc:      &http.Client{Timeout: 25 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		resourceID: resourceID,
		apiKey:     apiKey,
	}
}

type apiRecord struct {
	State       string `json:"state"`
	District    string `json:"district"`
	Market      string `json:"market"`
	Commodity   string `json:"commodity"`
	Variety     string `json:"variety"`
	Grade       string `json:"grade"`
	ArrivalDate string `json:"arrival_date"`
	MinPrice    any    `json:"min_price"`
	MaxPrice    any    `json:"max_price"`
	ModalPrice  any    `json:"modal_price"`
}

type apiResponse struct {
	Total       *int        `json:"total"`
	Count       *int        `json:"count"`
	Title       string      `json:"title"`
	UpdatedDate string      `json:"updated_date"`
	Records     []apiRecord `json:"records"`
}

func (s *Svc) FetchLive(q service.Query) (*service.LiveResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 25
	}
	if limit > 100 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	resp, err := s.httpc.Get(s.buildURL(q, limit, offset))
	if err != nil {
		return nil, apperr.Internal("Unable to reach agmarknet service")
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.Internal(fmt.Sprintf("Agmarknet request failed with status %d", resp.StatusCode))
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, apperr.Internal("Agmarknet returned a malformed response")
	}

	records := make([]service.Record, 0, len(data.Records))
	for _, item := range data.Records {
		records = append(records, mapRecord(item))
	}

	out := &service.LiveResult{
		Source:      "agmarknet",
		Title:       data.Title,
		UpdatedDate: data.UpdatedDate,
		Total:       len(records),
		Count:       len(records),
		Limit:       limit,
		Offset:      offset,
		Records:     records,
	}
	if out.Title == "" {
		out.Title = "Current Daily Price of Various Commodities"
	}
	if data.Total != nil {
		out.Total = *data.Total
	}
	if data.Count != nil {
		out.Count = *data.Count
	}
	return out, nil
}

func (s *Svc) SyncToDB(q service.Query) (*service.SyncResult, error) {
	live, err := s.FetchLive(q)
	if err != nil {
		return nil, err
	}

	syncedAt := time.Now()
	rows := make([]entities.MandiPrice, 0, len(live.Records))
	for _, rec := range live.Records {
		rows = append(rows, entities.MandiPrice{
			RecordID:    stableRecordID(rec),
			Source:      "agmarknet",
			State:       rec.State,
			District:    rec.District,
			Market:      rec.Market,
			Commodity:   rec.Commodity,
			Variety:     rec.Variety,
			Grade:       rec.Grade,
			ArrivalDate: rec.ArrivalDate,
			MinPrice:    rec.MinPrice,
			MaxPrice:    rec.MaxPrice,
			ModalPrice:  rec.ModalPrice,
			SyncedAt:    syncedAt,
		})
	}
	if len(rows) > 0 {
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "record_id"}},
			UpdateAll: true,
		}).Create(&rows).Error; err != nil {
			return nil, err
		}
	}

	return &service.SyncResult{
		LiveResult: *live,
		Synced:     len(rows),
		SyncedAt:   syncedAt.Format(time.RFC3339),
	}, nil
}

func (s *Svc) ExportXLSX(q service.Query) (*excelize.File, error) {
	live, err := s.FetchLive(q)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Prices"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"State", "District", "Market", "Commodity", "Variety", "Grade", "Arrival Date", "Min Price", "Modal Price", "Max Price"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for r, rec := range live.Records {
		values := []any{rec.State, rec.District, rec.Market, rec.Commodity, rec.Variety, rec.Grade, rec.ArrivalDate, rec.MinPrice, rec.ModalPrice, rec.MaxPrice}
		for cIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(cIdx+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	return f, nil
}

func (s *Svc) buildURL(q service.Query, limit, offset int) string {
	params := url.Values{}
	params.Set("api-key", s.apiKey)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	if q.State != "" {
		params.Set("filters[state]", q.State)
	}
	if q.District != "" {
		params.Set("filters[district]", q.District)
	}
	if q.Market != "" {
		params.Set("filters[market]", q.Market)
	}
	if q.Commodity != "" {
		params.Set("filters[commodity]", q.Commodity)
	}
	if q.ArrivalDate != "" {
		params.Set("filters[arrival_date]", q.ArrivalDate)
	}
	return fmt.Sprintf("%s/%s?%s", s.baseURL, s.resourceID, params.Encode())
}

func mapRecord(item apiRecord) service.Record {
	return service.Record{
		Source:      "agmarknet",
		State:       item.State,
		District:    item.District,
		Market:      item.Market,
		Commodity:   item.Commodity,
		Variety:     item.Variety,
		Grade:       item.Grade,
		ArrivalDate: item.ArrivalDate,
		MinPrice:    toNumber(item.MinPrice),
		MaxPrice:    toNumber(item.MaxPrice),
		ModalPrice:  toNumber(item.ModalPrice),
	}
}

// toNumber tolerates the API's habit of returning prices either as numbers
// or as comma-grouped strings; garbage becomes 0.
func toNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		n, err := strconv.ParseFloat(strings.ReplaceAll(t, ",", ""), 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func stableRecordID(rec service.Record) string {
	rawKey := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%g|%g|%g",
		rec.ArrivalDate, rec.State, rec.District, rec.Market,
		rec.Commodity, rec.Variety, rec.Grade,
		rec.MinPrice, rec.MaxPrice, rec.ModalPrice,
	)
	return fmt.Sprintf("%x", sha1.Sum([]byte(rawKey)))
}
