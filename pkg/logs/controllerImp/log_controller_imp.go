package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"sfa/pkg/logs/repository"
)

type LogCtrl struct{ repo repository.LogRepository }

func New(repo repository.LogRepository) *LogCtrl { return &LogCtrl{repo} }

func (h *LogCtrl) Recent(c echo.Context) error {
	limit := 100
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	logs, err := h.repo.Recent(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, logs)
}
