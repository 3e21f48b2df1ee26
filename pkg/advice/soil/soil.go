package soil

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"sfa/entities"
	"sfa/pkg/apperr"
	"sfa/pkg/cache"
)

const soilTTL = 24 * time.Hour

var properties = []string{"phh2o", "clay", "sand", "silt", "soc"}

// Fetcher resolves topsoil composition for a coordinate pair from a
// SoilGrids-style service, caching results for 24 hours.
type Fetcher struct {
	cache   cache.Store
	httpc   *http.Client
	baseURL string
}

func New(store cache.Store, baseURL string) *Fetcher {
	return &Fetcher{
		cache:   store,
		httpc:   &http.Client{Timeout: 20 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type gridLayer struct {
	Name        string `json:"name"`
	UnitMeasure struct {
		DFactor float64 `json:"d_factor"`
	} `json:"unit_measure"`
	Depths []struct {
		Values map[string]*float64 `json:"values"`
	} `json:"depths"`
}

type gridResponse struct {
	Properties struct {
		Layers []gridLayer `json:"layers"`
	} `json:"properties"`
}

func (f *Fetcher) GetSoilProperties(lat, lon float64) (*entities.SoilProperties, error) {
	rLat, rLon := round(lat, 4), round(lon, 4)
	cacheKey := fmt.Sprintf("soil:%s:%s", formatCoord(rLat), formatCoord(rLon))

	var cached entities.SoilProperties
	if hit, err := f.cache.Get(cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	params := url.Values{}
	params.Set("lat", formatCoord(rLat))
	params.Set("lon", formatCoord(rLon))
	params.Set("depth", "0-5cm")
	params.Set("value", "Q0.5")
	for _, p := range properties {
		params.Add("property", p)
	}

	resp, err := f.httpc.Get(f.baseURL + "/soilgrids/v2.0/properties/query?" + params.Encode())
	if err != nil {
		return nil, apperr.Internal("Unable to reach SoilGrids service")
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.Internal(fmt.Sprintf("SoilGrids request failed with status %d", resp.StatusCode))
	}

	var payload gridResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperr.Internal("SoilGrids returned a malformed response")
	}
	layers := payload.Properties.Layers

	out := &entities.SoilProperties{
		PH:        extract(layers, "phh2o"),
		Clay:      extract(layers, "clay"),
		Sand:      extract(layers, "sand"),
		Silt:      extract(layers, "silt"),
		SOC:       extract(layers, "soc"),
		Source:    "SoilGrids v2",
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if out.PH == nil && out.Clay == nil && out.Sand == nil && out.Silt == nil && out.SOC == nil {
		return nil, apperr.Internal("SoilGrids returned empty values for the selected location")
	}

	_ = f.cache.Set(cacheKey, out, soilTTL)
	return out, nil
}

// extract reads a layer's depth-0 value map, preferring the Q0_5/Q0.5
// quantile over the mean, and normalizes it by the layer's d_factor.
func extract(layers []gridLayer, name string) *float64 {
	var layer *gridLayer
	for i := range layers {
		if layers[i].Name == name {
			layer = &layers[i]
			break
		}
	}
	if layer == nil {
		return nil
	}

	dFactor := layer.UnitMeasure.DFactor
	if dFactor == 0 {
		dFactor = 1
	}
	var values map[string]*float64
	if len(layer.Depths) > 0 {
		values = layer.Depths[0].Values
	}

	raw := pickValue(values)
	if raw == nil || math.IsNaN(*raw) || math.IsInf(*raw, 0) {
		return nil
	}

	normalized := round(*raw/dFactor, 2)
	return &normalized
}

func pickValue(values map[string]*float64) *float64 {
	for _, key := range []string{"Q0_5", "Q0.5", "mean"} {
		if v, ok := values[key]; ok && v != nil {
			return v
		}
	}
	// fall back to any numeric value, in stable key order
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := values[k]; v != nil {
			return v
		}
	}
	return nil
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
