package controller

import "github.com/labstack/echo/v4"

type ReportController interface {
	Filters(c echo.Context) error
	Report(c echo.Context) error
	View(c echo.Context) error
	BedReport(c echo.Context) error
	ExportTable(c echo.Context) error
	ExportWorkbook(c echo.Context) error
	Reload(c echo.Context) error
}
