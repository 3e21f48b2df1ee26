package entities

import "time"

// MandiPrice is an agmarknet record synced into the local store. RecordID is
// a sha1 over the identifying columns so repeated syncs upsert in place.
type MandiPrice struct {
	RecordID  string `gorm:"primaryKey" json:"_id"`
	Source    string `json:"source"`
	State     string `gorm:"index" json:"state"`
	District  string `gorm:"index" json:"district"`
	Market    string `json:"market"`
	Commodity string `gorm:"index" json:"commodity"`
	Variety   string `json:"variety"`
	Grade     string `json:"grade"`

	ArrivalDate string  `json:"arrivalDate"`
	MinPrice    float64 `json:"minPrice"`
	MaxPrice    float64 `json:"maxPrice"`
	ModalPrice  float64 `json:"modalPrice"`

	SyncedAt time.Time `json:"syncedAt"`
}
