package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"sfa/pkg/auth/service"
)

type AuthCtrl struct{ s service.AuthService }

func New(s service.AuthService) *AuthCtrl { return &AuthCtrl{s} }

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthCtrl) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name, email and a password of at least 6 characters are required"})
	}
	token, user, err := h.s.Register(req.Name, req.Email, req.Password)
	if err == service.ErrEmailExists {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"token": token, "user": user})
}

func (h *AuthCtrl) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	token, user, err := h.s.Login(req.Email, req.Password)
	if err == service.ErrInvalidCredentials {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"token": token, "user": user})
}
