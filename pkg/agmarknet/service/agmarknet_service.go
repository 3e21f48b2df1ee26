package service

import "github.com/xuri/excelize/v2"

type Query struct {
	State       string `json:"state"`
	District    string `json:"district"`
	Market      string `json:"market"`
	Commodity   string `json:"commodity"`
	ArrivalDate string `json:"arrivalDate"`
	Limit       int    `json:"limit"`
	Offset      int    `json:"offset"`
}

type Record struct {
	Source      string  `json:"source"`
	State       string  `json:"state"`
	District    string  `json:"district"`
	Market      string  `json:"market"`
	Commodity   string  `json:"commodity"`
	Variety     string  `json:"variety"`
	Grade       string  `json:"grade"`
	ArrivalDate string  `json:"arrivalDate"`
	MinPrice    float64 `json:"minPrice"`
	MaxPrice    float64 `json:"maxPrice"`
	ModalPrice  float64 `json:"modalPrice"`
}

type LiveResult struct {
	Source      string   `json:"source"`
	Title       string   `json:"title"`
	UpdatedDate string   `json:"updatedDate"`
	Total       int      `json:"total"`
	Count       int      `json:"count"`
	Limit       int      `json:"limit"`
	Offset      int      `json:"offset"`
	Records     []Record `json:"records"`
}

type SyncResult struct {
	LiveResult
	Synced   int    `json:"synced"`
	SyncedAt string `json:"syncedAt"`
}

type AgmarknetService interface {
	FetchLive(q Query) (*LiveResult, error)
	SyncToDB(q Query) (*SyncResult, error)
	ExportXLSX(q Query) (*excelize.File, error)
}
