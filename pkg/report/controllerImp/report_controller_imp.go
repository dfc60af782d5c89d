package controllerImp

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"horta/pkg/export"
	"horta/pkg/report"
	svc "horta/pkg/report/service"
	"horta/pkg/selection"
)

type ReportCtrl struct{ s svc.ReportService }

func New(s svc.ReportService) *ReportCtrl { return &ReportCtrl{s: s} }

func (h *ReportCtrl) Filters(c echo.Context) error {
	opts, err := h.s.Filters()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, opts)
}

func (h *ReportCtrl) Report(c echo.Context) error {
	b, err := h.bundle(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *ReportCtrl) View(c echo.Context) error {
	name, err := report.ParseView(c.Param("name"))
	if err != nil {
		return fail(c, err)
	}
	b, err := h.bundle(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"view": name, "data": b.View(name)})
}

func (h *ReportCtrl) BedReport(c echo.Context) error {
	crit, err := selection.FromQuery(c.QueryParams())
	if err != nil {
		return fail(c, err)
	}
	r, err := h.s.BedReport(crit, c.Param("name"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// ExportTable serves /export/<table>.csv.
func (h *ReportCtrl) ExportTable(c echo.Context) error {
	file := c.Param("file")
	if !strings.HasSuffix(file, ".csv") {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown export " + file})
	}
	t, err := export.ParseTable(strings.TrimSuffix(file, ".csv"))
	if err != nil {
		return fail(c, err)
	}
	b, err := h.bundle(c)
	if err != nil {
		return fail(c, err)
	}
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file))
	res.WriteHeader(http.StatusOK)
	return export.WriteCSV(res, t, b)
}

func (h *ReportCtrl) ExportWorkbook(c echo.Context) error {
	b, err := h.bundle(c)
	if err != nil {
		return fail(c, err)
	}
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="horta.xlsx"`)
	res.WriteHeader(http.StatusOK)
	return export.WriteWorkbook(res, b)
}

func (h *ReportCtrl) Reload(c echo.Context) error {
	st, err := h.s.Reload(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": st, "warnings": h.s.Warnings()})
}

func (h *ReportCtrl) bundle(c echo.Context) (*report.Bundle, error) {
	crit, err := selection.FromQuery(c.QueryParams())
	if err != nil {
		return nil, err
	}
	return h.s.Build(crit)
}

func fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, svc.ErrNotReady):
		status = http.StatusServiceUnavailable
	case errors.Is(err, report.ErrUnknownView), errors.Is(err, report.ErrUnknownBed), errors.Is(err, export.ErrUnknownTable):
		status = http.StatusNotFound
	case errors.Is(err, selection.ErrInvalidDateRange), errors.Is(err, selection.ErrBadQuery):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Printf("[http] %s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
