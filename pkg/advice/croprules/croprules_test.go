package croprules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfa/entities"
)

func f(v float64) *float64 { return &v }

func TestNeutralPHGivesRiceThenWheat(t *testing.T) {
	recs := Recommend(entities.SoilProperties{PH: f(6.5), Clay: f(20), Sand: f(30)})

	require.Len(t, recs, 2)
	assert.Equal(t, "Rice", recs[0].Crop)
	assert.Equal(t, "pH ৬-৭ হওয়ায় ধান ভালো ফলন দিতে পারে", recs[0].WhyBN)
	assert.Equal(t, "Wheat", recs[1].Crop)
}

func TestClayOverwritesRiceRationaleInPlace(t *testing.T) {
	recs := Recommend(entities.SoilProperties{PH: f(6.2), Clay: f(45)})

	require.Len(t, recs, 2)
	// Rice keeps its first-seen position but carries the clay rationale
	assert.Equal(t, "Rice", recs[0].Crop)
	assert.Equal(t, "মাটিতে কাদামাটি বেশি, তাই ধানের জন্য পানি ধরে রাখতে সুবিধা হবে", recs[0].WhyBN)
	assert.Equal(t, "Wheat", recs[1].Crop)
}

func TestUnknownSoilFallsBack(t *testing.T) {
	recs := Recommend(entities.SoilProperties{})

	require.Len(t, recs, 2)
	assert.Equal(t, "Rice", recs[0].Crop)
	assert.Equal(t, "মাটির প্রোফাইল অনুযায়ী ধান একটি নিরাপদ পছন্দ", recs[0].WhyBN)
	assert.Equal(t, "Wheat", recs[1].Crop)
}

func TestAcidicSandySoil(t *testing.T) {
	recs := Recommend(entities.SoilProperties{PH: f(5.4), Sand: f(60)})

	require.Len(t, recs, 2)
	// sand rule runs before the acidity rule
	assert.Equal(t, "Groundnut", recs[0].Crop)
	assert.Equal(t, "Potato", recs[1].Crop)
}

func TestBoundaryValues(t *testing.T) {
	// pH exactly 6 and 7 are inside the rice/wheat window
	for _, ph := range []float64{6, 7} {
		recs := Recommend(entities.SoilProperties{PH: f(ph)})
		require.NotEmpty(t, recs)
		assert.Equal(t, "Rice", recs[0].Crop)
	}

	// clay exactly 40 triggers the overwrite
	recs := Recommend(entities.SoilProperties{PH: f(6.5), Clay: f(40)})
	assert.Equal(t, "মাটিতে কাদামাটি বেশি, তাই ধানের জন্য পানি ধরে রাখতে সুবিধা হবে", recs[0].WhyBN)
}
