package router

import (
	"github.com/labstack/echo/v4"

	"horta/pkg/middleware"
)

func New(
	e *echo.Echo,
	reportCtrl interface {
		Filters(echo.Context) error
		Report(echo.Context) error
		View(echo.Context) error
		BedReport(echo.Context) error
		ExportTable(echo.Context) error
		ExportWorkbook(echo.Context) error
		Reload(echo.Context) error
	},
	photoCtrl interface {
		Upload(echo.Context) error
		List(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
	ready func() bool,
	adminToken string,
	uploadDir string,
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	admin := middleware.AdminToken(adminToken)
	e.POST("/reload", reportCtrl.Reload, admin)

	api := e.Group("", middleware.RequireReady(ready))
	api.GET("/filters", reportCtrl.Filters)
	api.GET("/report", reportCtrl.Report)
	api.GET("/views/:name", reportCtrl.View)
	api.GET("/beds/:name/report", reportCtrl.BedReport)

	// static route wins over the :file param
	api.GET("/export/workbook.xlsx", reportCtrl.ExportWorkbook)
	api.GET("/export/:file", reportCtrl.ExportTable)

	api.GET("/plantings/:id/photos", photoCtrl.List)
	api.POST("/plantings/:id/photos", photoCtrl.Upload, admin)

	e.Static("/uploads", uploadDir)
	return e
}
