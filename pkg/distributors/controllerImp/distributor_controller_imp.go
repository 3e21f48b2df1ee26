package controllerImp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"sfa/entities"
	"sfa/pkg/distributors/repository"
	logsRepo "sfa/pkg/logs/repository"
	mw "sfa/pkg/middleware"
)

type DistributorCtrl struct {
	repo repository.DistributorRepository
	logs logsRepo.LogRepository
}

func New(repo repository.DistributorRepository, logs logsRepo.LogRepository) *DistributorCtrl {
	return &DistributorCtrl{repo: repo, logs: logs}
}

type distributorReq struct {
	Name           string `json:"name"`
	ContactPerson  string `json:"contactPerson"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	SeedsAvailable string `json:"seedsAvailable"`
}

func (h *DistributorCtrl) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	res, err := h.repo.List(c.QueryParam("search"), page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *DistributorCtrl) Create(c echo.Context) error {
	email, role := mw.Actor(c)
	var req distributorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	d := &entities.Distributor{
		Name:           req.Name,
		ContactPerson:  req.ContactPerson,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		SeedsAvailable: req.SeedsAvailable,
		PostedBy:       email,
	}
	if err := h.repo.Create(d); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	_, _ = h.logs.Create("CREATE_DISTRIBUTOR", email, role, fmt.Sprintf("Distributor details posted for %s", d.Name))
	return c.JSON(http.StatusCreated, d)
}

// distributorPatch uses pointers so a PATCH only touches the fields the body
// carries.
type distributorPatch struct {
	Name           *string `json:"name"`
	ContactPerson  *string `json:"contactPerson"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Address        *string `json:"address"`
	SeedsAvailable *string `json:"seedsAvailable"`
}

func (p distributorPatch) toMap() map[string]any {
	patch := map[string]any{}
	if p.Name != nil {
		patch["name"] = *p.Name
	}
	if p.ContactPerson != nil {
		patch["contact_person"] = *p.ContactPerson
	}
	if p.Phone != nil {
		patch["phone"] = *p.Phone
	}
	if p.Email != nil {
		patch["email"] = *p.Email
	}
	if p.Address != nil {
		patch["address"] = *p.Address
	}
	if p.SeedsAvailable != nil {
		patch["seeds_available"] = *p.SeedsAvailable
	}
	return patch
}

func (h *DistributorCtrl) Update(c echo.Context) error {
	email, role := mw.Actor(c)
	id, _ := strconv.Atoi(c.Param("id"))
	var req distributorPatch
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	d, err := h.repo.Update(uint(id), req.toMap())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Distributor details not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	_, _ = h.logs.Create("UPDATE_DISTRIBUTOR", email, role, fmt.Sprintf("Distributor details updated for %s", d.Name))
	return c.JSON(http.StatusOK, d)
}

func (h *DistributorCtrl) Delete(c echo.Context) error {
	email, role := mw.Actor(c)
	id, _ := strconv.Atoi(c.Param("id"))
	err := h.repo.Delete(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Distributor details not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	_, _ = h.logs.Create("DELETE_DISTRIBUTOR", email, role, fmt.Sprintf("Distributor details deleted with id %d", id))
	return c.JSON(http.StatusOK, map[string]string{"message": "Distributor details deleted successfully"})
}
