package controllerImp

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"sfa/pkg/agmarknet/service"
	"sfa/pkg/apperr"
	logsRepo "sfa/pkg/logs/repository"
	mw "sfa/pkg/middleware"
)

type AgmarknetCtrl struct {
	s    service.AgmarknetService
	logs logsRepo.LogRepository
}

func New(s service.AgmarknetService, logs logsRepo.LogRepository) *AgmarknetCtrl {
	return &AgmarknetCtrl{s: s, logs: logs}
}

func queryFrom(c echo.Context) service.Query {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return service.Query{
		State:       c.QueryParam("state"),
		District:    c.QueryParam("district"),
		Market:      c.QueryParam("market"),
		Commodity:   c.QueryParam("commodity"),
		ArrivalDate: c.QueryParam("arrivalDate"),
		Limit:       limit,
		Offset:      offset,
	}
}

func (h *AgmarknetCtrl) Prices(c echo.Context) error {
	email, role := mw.Actor(c)
	res, err := h.s.FetchLive(queryFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	_, _ = h.logs.Create("AGMARKNET_FETCH", email, role, fmt.Sprintf("Agmarknet live fetch: %d rows", res.Count))
	return c.JSON(http.StatusOK, res)
}

func (h *AgmarknetCtrl) Sync(c echo.Context) error {
	email, role := mw.Actor(c)
	res, err := h.s.SyncToDB(queryFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	_, _ = h.logs.Create("AGMARKNET_SYNC", email, role, fmt.Sprintf("Agmarknet sync completed: %d rows", res.Synced))
	return c.JSON(http.StatusOK, res)
}

func (h *AgmarknetCtrl) Export(c echo.Context) error {
	email, role := mw.Actor(c)
	f, err := h.s.ExportXLSX(queryFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	_, _ = h.logs.Create("AGMARKNET_EXPORT", email, role, "Agmarknet prices exported to xlsx")

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="mandi-prices.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

func writeErr(c echo.Context, err error) error {
	if code, ok := apperr.CodeOf(err); ok && code == apperr.CodeNotFound {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
