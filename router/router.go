package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sfa/pkg/middleware"
)

func New(
	e *echo.Echo,
	jwtSecret string,
	authCtrl interface {
		Register(echo.Context) error
		Login(echo.Context) error
	},
	adviceCtrl interface{ Get(echo.Context) error },
	soilCtrl interface {
		List(echo.Context) error
		Create(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
	},
	distCtrl interface {
		List(echo.Context) error
		Create(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
	},
	agmarknetCtrl interface {
		Prices(echo.Context) error
		Sync(echo.Context) error
		Export(echo.Context) error
	},
	aiCtrl interface {
		Ingest(echo.Context) error
		IngestURL(echo.Context) error
		List(echo.Context) error
		Ask(echo.Context) error
	},
	logCtrl interface{ Recent(echo.Context) error },
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"name":   "Soil Farming Agent API",
			"status": "ok",
		})
	})
	e.GET("/favicon.ico", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/health", healthCtrl.Health)

	e.POST("/auth/register", authCtrl.Register)
	e.POST("/auth/login", authCtrl.Login)

	auth := e.Group("", middleware.JWTAuth(jwtSecret))
	admin := e.Group("", middleware.JWTAuth(jwtSecret), middleware.RequireAdmin())

	auth.GET("/advice", adviceCtrl.Get)

	auth.GET("/soils", soilCtrl.List)
	admin.POST("/soils", soilCtrl.Create)
	admin.PATCH("/soils/:id", soilCtrl.Update)
	admin.DELETE("/soils/:id", soilCtrl.Delete)

	auth.GET("/distributors", distCtrl.List)
	admin.POST("/distributors", distCtrl.Create)
	admin.PATCH("/distributors/:id", distCtrl.Update)
	admin.DELETE("/distributors/:id", distCtrl.Delete)

	auth.GET("/agmarknet/prices", agmarknetCtrl.Prices)
	admin.POST("/agmarknet/sync", agmarknetCtrl.Sync)
	admin.GET("/agmarknet/export", agmarknetCtrl.Export)

	admin.POST("/ai/knowledge", aiCtrl.Ingest)
	admin.POST("/ai/knowledge/url", aiCtrl.IngestURL)
	auth.GET("/ai/knowledge", aiCtrl.List)
	auth.POST("/ai/ask", aiCtrl.Ask)

	admin.GET("/logs", logCtrl.Recent)

	return e
}
