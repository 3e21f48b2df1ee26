package controllerImp

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"

	"sfa/pkg/advice/service"
	"sfa/pkg/apperr"
	mw "sfa/pkg/middleware"
)

var pincodeRX = regexp.MustCompile(`^\d{6}$`)

type AdviceCtrl struct{ s service.AdviceService }

func New(s service.AdviceService) *AdviceCtrl { return &AdviceCtrl{s} }

func (h *AdviceCtrl) Get(c echo.Context) error {
	pin := c.QueryParam("pincode")
	if !pincodeRX.MatchString(pin) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "pincode must be a 6 digit number"})
	}

	email, role := mw.Actor(c)
	advice, err := h.s.GetAdvice(pin, service.Actor{Email: email, Role: role})
	if err != nil {
		if code, ok := apperr.CodeOf(err); ok {
			switch code {
			case apperr.CodeNotFound:
				return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
			case apperr.CodeValidation:
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, advice)
}
