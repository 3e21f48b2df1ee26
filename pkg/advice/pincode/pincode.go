package pincode

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

	"sfa/pkg/apperr"
	"sfa/pkg/cache"
)

const locationTTL = 30 * 24 * time.Hour

// Resolver turns a 6-digit pincode into state/district and coordinates,
// caching both lookups for 30 days.
type Resolver struct {
	cache     cache.Store
	httpc     *http.Client
	postalURL string
	geoURL    string
	userAgent string
}

func New(store cache.Store, postalBaseURL, nominatimBaseURL, userAgent string) *Resolver {
	return &Resolver{
		cache:     store,
		httpc:     &http.Client{Timeout: 20 * time.Second},
		postalURL: strings.TrimRight(postalBaseURL, "/"),
		geoURL:    strings.TrimRight(nominatimBaseURL, "/"),
		userAgent: userAgent,
	}
}

type Location struct {
	State    string `json:"state"`
	District string `json:"district"`
}

type postOffice struct {
	Name           string `json:"Name"`
	BranchType     string `json:"BranchType"`
	DeliveryStatus string `json:"DeliveryStatus"`
	District       string `json:"District"`
	State          string `json:"State"`
	Pincode        string `json:"Pincode"`
}

type postalResponse struct {
	Status     string        `json:"Status"`
	Message    string        `json:"Message"`
	PostOffice []*postOffice `json:"PostOffice"`
}

func (r *Resolver) ResolvePincode(pin string) (Location, error) {
	cacheKey := "pincode:" + pin

	var cached Location
	if hit, err := r.cache.Get(cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	resp, err := r.httpc.Get(r.postalURL + "/pincode/" + pin)
	if err != nil {
		return Location{}, apperr.Internal("Unable to reach India Post service")
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Location{}, apperr.Internal(fmt.Sprintf("India Post service failed with status %d", resp.StatusCode))
	}

	var payload []postalResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Location{}, apperr.Internal("India Post service returned a malformed response")
	}

	var first postalResponse
	if len(payload) > 0 {
		first = payload[0]
	}
	offices := make([]*postOffice, 0, len(first.PostOffice))
	for _, o := range first.PostOffice {
		if o != nil {
			offices = append(offices, o)
		}
	}
	if first.Status != "Success" || len(offices) == 0 {
		return Location{}, apperr.NotFound("Pincode location details not found")
	}

	selected := pickBestPostOffice(offices)
	loc := Location{State: selected.State, District: selected.District}
	if loc.State == "" || loc.District == "" {
		return Location{}, apperr.NotFound("Pincode location details not found")
	}

	_ = r.cache.Set(cacheKey, loc, locationTTL)
	return loc, nil
}

func (r *Resolver) GeocodeLocation(pin, state, district string) (lat, lon float64, err error) {
	cacheKey := fmt.Sprintf("geo:%s:%s:%s", pin, state, district)

	var cached struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if hit, err := r.cache.Get(cacheKey, &cached); err == nil && hit {
		return cached.Lat, cached.Lon, nil
	}

	queries := []string{
		fmt.Sprintf("%s, %s, %s, India", pin, district, state),
		fmt.Sprintf("%s, %s, India", district, state),
	}
	for _, q := range queries {
		lat, lon, ok := r.tryGeocode(q)
		if ok {
			cached.Lat, cached.Lon = lat, lon
			_ = r.cache.Set(cacheKey, cached, locationTTL)
			return lat, lon, nil
		}
	}
	return 0, 0, apperr.Internal("Unable to resolve geocoding coordinates for this pincode")
}

func (r *Resolver) tryGeocode(query string) (lat, lon float64, ok bool) {
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("limit", "3")
	params.Set("q", query)

	req, err := http.NewRequest(http.MethodGet, r.geoURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, false
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, 0, false
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, 0, false
	}

	var rows []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return 0, 0, false
	}
	for _, row := range rows {
		if row.Lat == "" || row.Lon == "" {
			continue
		}
		la, err1 := strconv.ParseFloat(row.Lat, 64)
		lo, err2 := strconv.ParseFloat(row.Lon, 64)
		if err1 != nil || err2 != nil || math.IsNaN(la) || math.IsInf(la, 0) || math.IsNaN(lo) || math.IsInf(lo, 0) {
			continue
		}
		return la, lo, true
	}
	return 0, 0, false
}

// pickBestPostOffice groups offices by (state, district), keeps the largest
// group and ranks inside it: delivery offices first, then head branches,
// then GPOs.
func pickBestPostOffice(offices []*postOffice) *postOffice {
	type bucket struct {
		items []*postOffice
	}
	grouped := map[string]*bucket{}
	order := []string{}
	for _, o := range offices {
		key := o.State + "|" + o.District
		b, ok := grouped[key]
		if !ok {
			b = &bucket{}
			grouped[key] = b
			order = append(order, key)
		}
		b.items = append(b.items, o)
	}

	best := grouped[order[0]]
	for _, key := range order[1:] {
		if len(grouped[key].items) > len(best.items) {
			best = grouped[key]
		}
	}

	candidates := append([]*postOffice(nil), best.items...)
	sort.SliceStable(candidates, func(i, j int) bool {
		return officeScore(candidates[i]) > officeScore(candidates[j])
	})
	return candidates[0]
}

func officeScore(o *postOffice) int {
	score := 0
	if strings.ToLower(o.DeliveryStatus) == "delivery" {
		score += 5
	}
	if strings.Contains(strings.ToLower(o.BranchType), "head") {
		score += 2
	}
	if strings.Contains(strings.ToLower(o.Name), "gpo") {
		score++
	}
	return score
}
