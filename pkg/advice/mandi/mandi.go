package mandi

import (
	"regexp"
	"strconv"
	"strings"

	"sfa/entities"
	agsvc "sfa/pkg/agmarknet/service"
)

const maxRowsPerCrop = 5

// cropAliases widens the commodity search for crops the price source lists
// under several names.
var cropAliases = map[string][]string{
	"Rice":      {"Rice", "Paddy(Dhan)(Common)", "Paddy", "Dhan"},
	"Wheat":     {"Wheat", "Wheat-Atk"},
	"Groundnut": {"Groundnut", "Ground Nut Seed", "Ground Nut"},
	"Potato":    {"Potato"},
}

// Aggregator collects market price rows per crop from the agmarknet service.
type Aggregator struct {
	agmarknet agsvc.AgmarknetService
}

func New(s agsvc.AgmarknetService) *Aggregator { return &Aggregator{agmarknet: s} }

// PricesByCrop fetches rows crop by crop, sequentially; a crop with no rows
// yields an empty list, not an error.
func (a *Aggregator) PricesByCrop(state, district string, crops []string) (map[string][]entities.MandiPriceView, error) {
	result := make(map[string][]entities.MandiPriceView, len(crops))
	for _, crop := range crops {
		rows, err := a.fetchCropRows(state, district, crop)
		if err != nil {
			return nil, err
		}
		result[crop] = rows
	}
	return result, nil
}

func (a *Aggregator) fetchCropRows(state, district, crop string) ([]entities.MandiPriceView, error) {
	aliases, ok := cropAliases[crop]
	if !ok {
		aliases = []string{crop}
	}

	merged := []entities.MandiPriceView{}
	seen := map[string]struct{}{}

	for _, alias := range aliases {
		districtRes, err := a.agmarknet.FetchLive(agsvc.Query{
			State:     state,
			District:  district,
			Commodity: alias,
			Limit:     25,
		})
		if err != nil {
			return nil, err
		}

		rows := districtRes.Records
		if len(rows) == 0 {
			// widen to the whole state and filter by fuzzy district match
			stateRes, err := a.agmarknet.FetchLive(agsvc.Query{
				State:     state,
				Commodity: alias,
				Limit:     25,
			})
			if err != nil {
				return nil, err
			}
			rows = rows[:0]
			for _, row := range stateRes.Records {
				if fuzzyDistrictMatch(row.District, district) {
					rows = append(rows, row)
				}
			}
		}

		for _, row := range rows {
			key := row.Market + "|" + row.ArrivalDate + "|" + formatModal(row.ModalPrice)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, entities.MandiPriceView{
				Market: row.Market,
				Min:    row.MinPrice,
				Modal:  row.ModalPrice,
				Max:    row.MaxPrice,
				Date:   row.ArrivalDate,
			})
		}

		// deliberately stops at the first alias that filled the window, even
		// if a later alias would have had more rows
		if len(merged) >= maxRowsPerCrop {
			break
		}
	}

	if len(merged) > maxRowsPerCrop {
		merged = merged[:maxRowsPerCrop]
	}
	return merged, nil
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// fuzzyDistrictMatch is a case and punctuation insensitive substring check
// in either direction ("North 24 Parganas" matches "north-24-parganas").
func fuzzyDistrictMatch(actual, expected string) bool {
	left := nonAlnum.ReplaceAllString(strings.ToLower(actual), "")
	right := nonAlnum.ReplaceAllString(strings.ToLower(expected), "")
	if left == "" || right == "" {
		return false
	}
	return strings.Contains(left, right) || strings.Contains(right, left)
}

func formatModal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
