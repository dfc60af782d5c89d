package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"horta/config"
	"horta/database"
	"horta/pkg/records"
	"horta/router"

	// Records
	recordRepoImp "horta/pkg/records/repositoryImp"

	// Report
	reportCtrlImp "horta/pkg/report/controllerImp"
	reportSvcImp "horta/pkg/report/serviceImp"

	// Photo
	photoCtrlImp "horta/pkg/photo/controllerImp"
	photoRepoImp "horta/pkg/photo/repositoryImp"
	photoSvcImp "horta/pkg/photo/serviceImp"

	// Health
	healthCtrlImp "horta/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		time.Local = loc
	} else {
		log.Printf("[cfg] bad TZ %q: %v", cfg.Timezone, err)
	}

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Record source + report service
	var src records.Source = records.NewCSVSource(cfg.DataDir)
	if cfg.Source == config.SourceSQLite {
		src = recordRepoImp.New(db)
	}
	rSvc := reportSvcImp.New(src)
	if _, err := rSvc.Reload(context.Background()); err != nil {
		log.Printf("[report] initial load failed, serving 503 until POST /reload: %v", err)
	}

	// 4) Controllers
	rCtrl := reportCtrlImp.New(rSvc)
	pSvc := photoSvcImp.New(photoRepoImp.New(db), cfg.UploadDir, rSvc.HasPlanting)
	pCtrl := photoCtrlImp.New(pSvc)
	hCtrl := healthCtrlImp.NewHealthCtrl(db, rSvc)

	// 5) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			log.Printf("[http] %s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	router.New(e, rCtrl, pCtrl, hCtrl, rSvc.Ready, cfg.AdminToken, cfg.UploadDir)

	// 6) Start, stop on SIGINT/SIGTERM
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on :%s", cfg.Port)
		errCh <- e.Start(":" + cfg.Port)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
