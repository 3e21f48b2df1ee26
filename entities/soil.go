package entities

import "time"

type Soil struct {
	SoilID         uint   `gorm:"primaryKey" json:"soil_id"`
	SoilType       string `json:"soilType"`
	PHRange        string `json:"phRange"`
	SuitableCrops  string `json:"suitableCrops"`
	Nutrients      string `json:"nutrients"`
	IrrigationTips string `json:"irrigationTips"`
	PostedBy       string `gorm:"index" json:"postedBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
