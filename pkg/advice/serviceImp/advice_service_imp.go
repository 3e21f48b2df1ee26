package serviceImp

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	"sfa/entities"
	"sfa/pkg/advice/croprules"
	"sfa/pkg/advice/service"
	"sfa/pkg/apperr"
	logsRepo "sfa/pkg/logs/repository"
)

// Svc sequences the advisory pipeline: location, soil, crop rules, market
// prices. Steps run strictly in order; nothing is persisted unless every
// fetch step succeeds, and a failed audit write fails the request.
type Svc struct {
	db       *gorm.DB
	location service.LocationResolver
	soil     service.SoilFetcher
	prices   service.PriceAggregator
	logs     logsRepo.LogRepository
}

func New(db *gorm.DB, location service.LocationResolver, soil service.SoilFetcher, prices service.PriceAggregator, logs logsRepo.LogRepository) service.AdviceService {
	return &Svc{db: db, location: location, soil: soil, prices: prices, logs: logs}
}

func (s *Svc) GetAdvice(pin string, actor service.Actor) (*service.Advice, error) {
	location, err := s.resolveLocation(pin)
	if err != nil {
		return nil, err
	}

	soil, err := s.soil.GetSoilProperties(location.Lat, location.Lon)
	if err != nil {
		return nil, err
	}

	base := croprules.Recommend(*soil)
	cropNames := make([]string, 0, len(base))
	for _, item := range base {
		cropNames = append(cropNames, item.Crop)
	}

	mandiByCrop, err := s.prices.PricesByCrop(location.State, location.District, cropNames)
	if err != nil {
		// upstream detail is not propagated for the price step
		return nil, apperr.Internal("Failed to fetch mandi prices")
	}

	totalRows := 0
	recommendations := make([]entities.CropRecommendation, 0, len(base))
	for _, item := range base {
		rows := mandiByCrop[item.Crop]
		if rows == nil {
			rows = []entities.MandiPriceView{}
		}
		totalRows += len(rows)
		recommendations = append(recommendations, entities.CropRecommendation{
			Crop:        item.Crop,
			WhyBN:       item.WhyBN,
			MandiPrices: rows,
		})
	}
	if totalRows == 0 {
		return nil, apperr.NotFound("No mandi data found for this location")
	}

	advice := &service.Advice{
		Location:        location,
		Soil:            *soil,
		Recommendations: recommendations,
	}

	snapshot := entities.Advisory{
		Pincode:         pin,
		ActorEmail:      actor.Email,
		ActorRole:       actor.Role,
		Location:        advice.Location,
		Soil:            advice.Soil,
		Recommendations: advice.Recommendations,
	}
	if err := s.db.Create(&snapshot).Error; err != nil {
		return nil, err
	}

	if _, err := s.logs.Create("ADVICE_GENERATED", actor.Email, actor.Role,
		fmt.Sprintf("Advisory generated for pincode %s (%s, %s)", pin, location.District, location.State)); err != nil {
		return nil, err
	}

	return advice, nil
}

func (s *Svc) resolveLocation(pin string) (entities.LocationContext, error) {
	basic, err := s.location.ResolvePincode(pin)
	if err != nil {
		return entities.LocationContext{}, err
	}
	lat, lon, err := s.location.GeocodeLocation(pin, basic.State, basic.District)
	if err != nil {
		return entities.LocationContext{}, err
	}
	return entities.LocationContext{
		Pincode:  pin,
		State:    basic.State,
		District: basic.District,
		Lat:      round6(lat),
		Lon:      round6(lon),
	}, nil
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
