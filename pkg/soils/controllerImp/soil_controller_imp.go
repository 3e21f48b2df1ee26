package controllerImp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"sfa/entities"
	logsRepo "sfa/pkg/logs/repository"
	mw "sfa/pkg/middleware"
	"sfa/pkg/soils/repository"
)

type SoilCtrl struct {
	repo repository.SoilRepository
	logs logsRepo.LogRepository
}

func New(repo repository.SoilRepository, logs logsRepo.LogRepository) *SoilCtrl {
	return &SoilCtrl{repo: repo, logs: logs}
}

type soilReq struct {
	SoilType       string `json:"soilType"`
	PHRange        string `json:"phRange"`
	SuitableCrops  string `json:"suitableCrops"`
	Nutrients      string `json:"nutrients"`
	IrrigationTips string `json:"irrigationTips"`
}

func (h *SoilCtrl) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	res, err := h.repo.List(c.QueryParam("search"), page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *SoilCtrl) Create(c echo.Context) error {
	email, role := mw.Actor(c)
	var req soilReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	s := &entities.Soil{
		SoilType:       req.SoilType,
		PHRange:        req.PHRange,
		SuitableCrops:  req.SuitableCrops,
		Nutrients:      req.Nutrients,
		IrrigationTips: req.IrrigationTips,
		PostedBy:       email,
	}
	if err := h.repo.Create(s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	_, _ = h.logs.Create("CREATE_SOIL", email, role, fmt.Sprintf("Soil details posted for %s", s.SoilType))
	return c.JSON(http.StatusCreated, s)
}

// soilPatch uses pointers so a PATCH only touches the fields the body carries.
type soilPatch struct {
	SoilType       *string `json:"soilType"`
	PHRange        *string `json:"phRange"`
	SuitableCrops  *string `json:"suitableCrops"`
	Nutrients      *string `json:"nutrients"`
	IrrigationTips *string `json:"irrigationTips"`
}

func (p soilPatch) toMap() map[string]any {
	patch := map[string]any{}
	if p.SoilType != nil {
		patch["soil_type"] = *p.SoilType
	}
	if p.PHRange != nil {
		patch["ph_range"] = *p.PHRange
	}
	if p.SuitableCrops != nil {
		patch["suitable_crops"] = *p.SuitableCrops
	}
	if p.Nutrients != nil {
		patch["nutrients"] = *p.Nutrients
	}
	if p.IrrigationTips != nil {
		patch["irrigation_tips"] = *p.IrrigationTips
	}
	return patch
}

func (h *SoilCtrl) Update(c echo.Context) error {
	email, role := mw.Actor(c)
	id, _ := strconv.Atoi(c.Param("id"))
	var req soilPatch
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	s, err := h.repo.Update(uint(id), req.toMap())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Soil details not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	_, _ = h.logs.Create("UPDATE_SOIL", email, role, fmt.Sprintf("Soil details updated for %s", s.SoilType))
	return c.JSON(http.StatusOK, s)
}

func (h *SoilCtrl) Delete(c echo.Context) error {
	email, role := mw.Actor(c)
	id, _ := strconv.Atoi(c.Param("id"))
	err := h.repo.Delete(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Soil details not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	_, _ = h.logs.Create("DELETE_SOIL", email, role, fmt.Sprintf("Soil details deleted with id %d", id))
	return c.JSON(http.StatusOK, map[string]string{"message": "Soil details deleted successfully"})
}
