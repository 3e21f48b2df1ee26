package service

import (
	"sfa/entities"
	"sfa/pkg/advice/pincode"
)

type Actor struct {
	Email string
	Role  string
}

// Advice is the assembled response for one pincode.
type Advice struct {
	Location        entities.LocationContext      `json:"location"`
	Soil            entities.SoilProperties       `json:"soil"`
	Recommendations []entities.CropRecommendation `json:"recommendations"`
}

type AdviceService interface {
	GetAdvice(pin string, actor Actor) (*Advice, error)
}

// Collaborator interfaces so the orchestrator can be wired against fakes.

type LocationResolver interface {
	ResolvePincode(pin string) (pincode.Location, error)
	GeocodeLocation(pin, state, district string) (lat, lon float64, err error)
}

type SoilFetcher interface {
	GetSoilProperties(lat, lon float64) (*entities.SoilProperties, error)
}

type PriceAggregator interface {
	PricesByCrop(state, district string, crops []string) (map[string][]entities.MandiPriceView, error)
}
