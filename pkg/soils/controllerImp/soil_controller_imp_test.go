package controllerImp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sfa/database"
	"sfa/entities"
	logsRepoImp "sfa/pkg/logs/repositoryImp"
	soilRepoImp "sfa/pkg/soils/repositoryImp"
)

func newTestCtrl(t *testing.T) (*SoilCtrl, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return New(soilRepoImp.New(db), logsRepoImp.New(db)), db
}

func patchSoil(t *testing.T, ctrl *SoilCtrl, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/soils/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	c.Set("email", "admin@example.com")
	c.Set("role", entities.RoleAdmin)
	require.NoError(t, ctrl.Update(c))
	return rec
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	ctrl, db := newTestCtrl(t)
	s := entities.Soil{
		SoilType:       "Alluvial",
		PHRange:        "6.0-7.0",
		SuitableCrops:  "Rice",
		Nutrients:      "NPK balanced",
		IrrigationTips: "Drain after monsoon",
	}
	require.NoError(t, db.Create(&s).Error)

	rec := patchSoil(t, ctrl, "1", `{"nutrients":"High potassium"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got entities.Soil
	require.NoError(t, db.First(&got, s.SoilID).Error)
	assert.Equal(t, "High potassium", got.Nutrients)
	assert.Equal(t, "Alluvial", got.SoilType, "omitted fields must survive a partial update")
	assert.Equal(t, "Rice", got.SuitableCrops)
	assert.Equal(t, "6.0-7.0", got.PHRange)
	assert.Equal(t, "Drain after monsoon", got.IrrigationTips)
}

func TestUpdateCanBlankAFieldExplicitly(t *testing.T) {
	ctrl, db := newTestCtrl(t)
	s := entities.Soil{SoilType: "Laterite", IrrigationTips: "Needs mulching"}
	require.NoError(t, db.Create(&s).Error)

	rec := patchSoil(t, ctrl, "1", `{"irrigationTips":""}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got entities.Soil
	require.NoError(t, db.First(&got, s.SoilID).Error)
	assert.Empty(t, got.IrrigationTips, "an explicit empty string still clears the field")
	assert.Equal(t, "Laterite", got.SoilType)
}

func TestUpdateMissingRecordReturns404(t *testing.T) {
	ctrl, _ := newTestCtrl(t)
	rec := patchSoil(t, ctrl, "999", `{"soilType":"Red"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
