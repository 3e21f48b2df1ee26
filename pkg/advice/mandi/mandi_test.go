package mandi

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	agsvc "sfa/pkg/agmarknet/service"
)

// fakeAgmarknet replays canned rows keyed by (district, commodity) and
// records every query it receives.
type fakeAgmarknet struct {
	rows    map[string][]agsvc.Record
	queries []agsvc.Query
	err     error
}

func key(district, commodity string) string { return district + "/" + commodity }

func (f *fakeAgmarknet) FetchLive(q agsvc.Query) (*agsvc.LiveResult, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	rows := f.rows[key(q.District, q.Commodity)]
	return &agsvc.LiveResult{Records: rows, Count: len(rows)}, nil
}

func (f *fakeAgmarknet) SyncToDB(agsvc.Query) (*agsvc.SyncResult, error) { return nil, nil }
func (f *fakeAgmarknet) ExportXLSX(agsvc.Query) (*excelize.File, error)  { return nil, nil }

func row(market, date string, modal float64) agsvc.Record {
	return agsvc.Record{Market: market, District: "Nadia", ArrivalDate: date, MinPrice: modal - 100, ModalPrice: modal, MaxPrice: modal + 100}
}

func TestStopsAtFirstAliasWithEnoughRows(t *testing.T) {
	fake := &fakeAgmarknet{rows: map[string][]agsvc.Record{
		key("Nadia", "Rice"): {
			row("A", "01/01/2026", 1000),
			row("B", "01/01/2026", 1010),
			row("C", "01/01/2026", 1020),
			row("D", "01/01/2026", 1030),
			row("E", "01/01/2026", 1040),
		},
		key("Nadia", "Paddy(Dhan)(Common)"): {row("F", "01/01/2026", 1050)},
	}}

	a := New(fake)
	res, err := a.PricesByCrop("West Bengal", "Nadia", []string{"Rice"})
	require.NoError(t, err)
	require.Len(t, res["Rice"], 5)

	// only the first alias may have been queried
	require.Len(t, fake.queries, 1)
	assert.Equal(t, "Rice", fake.queries[0].Commodity)
	assert.Equal(t, 25, fake.queries[0].Limit)
}

func TestAliasFanOutAndCap(t *testing.T) {
	fake := &fakeAgmarknet{rows: map[string][]agsvc.Record{
		key("Nadia", "Rice"):                {row("A", "01/01/2026", 1000)},
		key("Nadia", "Paddy(Dhan)(Common)"): {row("B", "01/01/2026", 1010), row("C", "01/01/2026", 1020)},
		key("Nadia", "Paddy"): {
			row("D", "01/01/2026", 1030),
			row("E", "01/01/2026", 1040),
			row("F", "01/01/2026", 1050),
			row("G", "01/01/2026", 1060),
		},
	}}

	a := New(fake)
	res, err := a.PricesByCrop("West Bengal", "Nadia", []string{"Rice"})
	require.NoError(t, err)

	rows := res["Rice"]
	require.Len(t, rows, 5, "result must be capped at 5 rows")
	assert.Equal(t, "A", rows[0].Market)
	assert.Equal(t, "E", rows[4].Market)
}

func TestDeduplicatesAcrossAliases(t *testing.T) {
	dup := row("Krishnanagar", "02/01/2026", 1200)
	fake := &fakeAgmarknet{rows: map[string][]agsvc.Record{
		key("Nadia", "Wheat"):     {dup, row("Ranaghat", "02/01/2026", 1250)},
		key("Nadia", "Wheat-Atk"): {dup, row("Ranaghat", "02/01/2026", 1300)}, // same market/date, different modal
	}}

	a := New(fake)
	res, err := a.PricesByCrop("West Bengal", "Nadia", []string{"Wheat"})
	require.NoError(t, err)

	rows := res["Wheat"]
	require.Len(t, rows, 3)
	markets := []string{rows[0].Market, rows[1].Market, rows[2].Market}
	assert.Equal(t, []string{"Krishnanagar", "Ranaghat", "Ranaghat"}, markets)
}

func TestStateFallbackWithFuzzyDistrict(t *testing.T) {
	fake := &fakeAgmarknet{rows: map[string][]agsvc.Record{
		// district query returns nothing; state-wide query (empty district) has rows
		key("", "Potato"): {
			{Market: "Barasat", District: "North 24 Parganas", ArrivalDate: "03/01/2026", ModalPrice: 900},
			{Market: "Siliguri", District: "Darjeeling", ArrivalDate: "03/01/2026", ModalPrice: 950},
		},
	}}

	a := New(fake)
	res, err := a.PricesByCrop("West Bengal", "North 24 Parganas", []string{"Potato"})
	require.NoError(t, err)

	rows := res["Potato"]
	require.Len(t, rows, 1)
	assert.Equal(t, "Barasat", rows[0].Market)

	require.Len(t, fake.queries, 2)
	assert.Equal(t, "North 24 Parganas", fake.queries[0].District)
	assert.Equal(t, "", fake.queries[1].District)
}

func TestCropWithNoRowsYieldsEmptyList(t *testing.T) {
	fake := &fakeAgmarknet{rows: map[string][]agsvc.Record{}}

	a := New(fake)
	res, err := a.PricesByCrop("West Bengal", "Nadia", []string{"Groundnut"})
	require.NoError(t, err)
	assert.Empty(t, res["Groundnut"])
}

func TestUpstreamErrorPropagates(t *testing.T) {
	fake := &fakeAgmarknet{err: fmt.Errorf("boom")}
	a := New(fake)
	_, err := a.PricesByCrop("West Bengal", "Nadia", []string{"Rice"})
	require.Error(t, err)
}

func TestUnknownCropUsesItsOwnName(t *testing.T) {
	fake := &fakeAgmarknet{rows: map[string][]agsvc.Record{
		key("Nadia", "Jute"): {row("Kalyani", "04/01/2026", 4100)},
	}}

	a := New(fake)
	res, err := a.PricesByCrop("West Bengal", "Nadia", []string{"Jute"})
	require.NoError(t, err)
	require.Len(t, res["Jute"], 1)
}

func TestFuzzyDistrictMatch(t *testing.T) {
	cases := []struct {
		actual, expected string
		want             bool
	}{
		{"Nadia", "Nadia", true},
		{"NADIA", "nadia", true},
		{"24 Parganas (North)", "North 24 Parganas", false}, // reordered words do not match
		{"North 24 Parganas", "north-24-parganas", true},
		{"Murshidabad", "Murshid", true},
		{"", "Nadia", false},
		{"Nadia", "", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, fuzzyDistrictMatch(tc.actual, tc.expected), "%q vs %q", tc.actual, tc.expected)
	}
}
