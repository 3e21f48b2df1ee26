package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"sfa/config"
	"sfa/database"
	"sfa/router"

	// Auth
	authCtrlImp "sfa/pkg/auth/controllerImp"
	authSvcImp "sfa/pkg/auth/serviceImp"
	usersRepoImp "sfa/pkg/users/repositoryImp"

	// Activity logs
	logCtrlImp "sfa/pkg/logs/controllerImp"
	logRepoImp "sfa/pkg/logs/repositoryImp"

	// CRUD
	distCtrlImp "sfa/pkg/distributors/controllerImp"
	distRepoImp "sfa/pkg/distributors/repositoryImp"
	soilCtrlImp "sfa/pkg/soils/controllerImp"
	soilRepoImp "sfa/pkg/soils/repositoryImp"

	// Mandi prices
	agCtrlImp "sfa/pkg/agmarknet/controllerImp"
	agSvcImp "sfa/pkg/agmarknet/serviceImp"

	// Advice pipeline
	adviceCtrlImp "sfa/pkg/advice/controllerImp"
	"sfa/pkg/advice/mandi"
	"sfa/pkg/advice/pincode"
	adviceSvcImp "sfa/pkg/advice/serviceImp"
	soilFetcher "sfa/pkg/advice/soil"
	"sfa/pkg/cache"

	// AI helper
	aiCtrlImp "sfa/pkg/ai/controllerImp"
	"sfa/pkg/ai/embedder"
	"sfa/pkg/ai/llm"
	aiRepoImp "sfa/pkg/ai/repositoryImp"
	aiSvcImp "sfa/pkg/ai/serviceImp"

	// Health
	healthCtrlImp "sfa/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.CORS())

	// 4) Repos
	usersRepo := usersRepoImp.New(db)
	logsRepo := logRepoImp.New(db)
	soilsRepo := soilRepoImp.New(db)
	distRepo := distRepoImp.New(db)
	aiRepo := aiRepoImp.New(db)

	// 5) Auth
	authSvc := authSvcImp.New(usersRepo, logsRepo, cfg.JWTSecret, cfg.JWTTTLHours, cfg.AdminEmail, cfg.AdminPassword)
	if err := authSvc.EnsureDefaultAdmin(); err != nil {
		log.Printf("WARN: default admin: %v", err)
	}
	authCtrl := authCtrlImp.New(authSvc)

	// 6) Mandi prices
	agSvc := agSvcImp.New(db, cfg.AgmarknetBaseURL, cfg.AgmarknetResourceID, cfg.AgmarknetAPIKey)
	agCtrl := agCtrlImp.New(agSvc, logsRepo)

	// 7) Advice pipeline
	store := cache.New(db)
	resolver := pincode.New(store, cfg.PincodeBaseURL, cfg.NominatimBaseURL, cfg.GeocoderUA)
	soils := soilFetcher.New(store, cfg.SoilGridsBaseURL)
	prices := mandi.New(agSvc)
	adviceSvc := adviceSvcImp.New(db, resolver, soils, prices, logsRepo)
	adviceCtrl := adviceCtrlImp.New(adviceSvc)

	// 8) AI helper (degrades to keyword search without an endpoint)
	emb := embedder.New(cfg.AIEndpoint, cfg.AIAPIKey, cfg.AIEmbeddingModel)
	chat := llm.New(cfg.AIEndpoint, cfg.AIAPIKey, cfg.AIChatModel)
	aiSvc := aiSvcImp.New(aiRepo, emb, chat)
	aiCtrl := aiCtrlImp.New(aiSvc, logsRepo, cfg.AIAllowedDomains)

	// 9) CRUD + logs + health
	soilCtrl := soilCtrlImp.New(soilsRepo, logsRepo)
	distCtrl := distCtrlImp.New(distRepo, logsRepo)
	logCtrl := logCtrlImp.New(logsRepo)
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 10) Router
	r := router.New(
		e,
		cfg.JWTSecret,
		authCtrl,
		adviceCtrl,
		soilCtrl,
		distCtrl,
		agCtrl,
		aiCtrl,
		logCtrl,
		hCtrl,
	)

	// 11) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
