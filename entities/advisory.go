package entities

import "time"

type LocationContext struct {
	Pincode  string  `json:"pincode"`
	State    string  `json:"state"`
	District string  `json:"district"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// SoilProperties uses nil for values the remote source could not provide.
type SoilProperties struct {
	PH        *float64 `json:"ph"`
	Clay      *float64 `json:"clay"`
	Sand      *float64 `json:"sand"`
	Silt      *float64 `json:"silt"`
	SOC       *float64 `json:"soc"`
	Source    string   `json:"source"`
	FetchedAt string   `json:"fetchedAt"`
}

type MandiPriceView struct {
	Market string  `json:"market"`
	Min    float64 `json:"min"`
	Modal  float64 `json:"modal"`
	Max    float64 `json:"max"`
	Date   string  `json:"date"`
}

type CropRecommendation struct {
	Crop        string           `json:"crop"`
	WhyBN       string           `json:"why_bn"`
	MandiPrices []MandiPriceView `json:"mandi_prices"`
}

// Advisory is the write-once snapshot of a served advice request.
type Advisory struct {
	AdvisoryID      uint                 `gorm:"primaryKey" json:"advisory_id"`
	Pincode         string               `gorm:"index" json:"pincode"`
	ActorEmail      string               `json:"actorEmail"`
	ActorRole       string               `json:"actorRole"`
	Location        LocationContext      `gorm:"serializer:json" json:"location"`
	Soil            SoilProperties       `gorm:"serializer:json" json:"soil"`
	Recommendations []CropRecommendation `gorm:"serializer:json" json:"recommendations"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
