// Package export renders a report bundle as CSV tables or an XLSX workbook.
package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"horta/pkg/records"
	"horta/pkg/report"
)

type Table string

const (
	TablePlantings    Table = records.TablePlantings
	TableObservations Table = records.TableObservations
	TableHarvests     Table = records.TableHarvests
	TableEvents       Table = records.TableEvents
)

var ErrUnknownTable = errors.New("unknown export table")

func ParseTable(s string) (Table, error) {
	switch t := Table(strings.ToLower(strings.TrimSpace(s))); t {
	case TablePlantings, TableObservations, TableHarvests, TableEvents:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTable, s)
}

// rows returns the header and the string cells of one bundle table.
func rows(t Table, b *report.Bundle) ([]string, [][]string, error) {
	switch t {
	case TablePlantings:
		head := []string{"planting_id", "bed_id", "bed", "species_id", "species", "planting_date", "responsible", "method", "notes"}
		out := make([][]string, 0, len(b.Tables.Plantings))
		for _, p := range b.Tables.Plantings {
			out = append(out, []string{id(p.PlantingID), id(p.BedID), str(p.BedName), id(p.SpeciesID), str(p.SpeciesName),
				date(p.PlantingDate), p.Responsible, p.Method, p.Notes})
		}
		return head, out, nil
	case TableObservations:
		head := []string{"observation_id", "planting_id", "observation_date", "height_cm", "pests_observed", "comments"}
		out := make([][]string, 0, len(b.Tables.Observations))
		for _, o := range b.Tables.Observations {
			out = append(out, []string{id(o.ObservationID), id(o.PlantingID), date(o.ObservationDate), num(o.HeightCM),
				strconv.FormatBool(o.PestsObserved), o.Comments})
		}
		return head, out, nil
	case TableHarvests:
		head := []string{"harvest_id", "planting_id", "bed", "species", "harvest_date", "quantity"}
		out := make([][]string, 0, len(b.Tables.Harvests))
		for _, h := range b.Tables.Harvests {
			out = append(out, []string{id(h.HarvestID), id(h.PlantingID), str(h.BedName), str(h.SpeciesName), date(h.HarvestDate),
				strconv.FormatInt(h.Quantity, 10)})
		}
		return head, out, nil
	case TableEvents:
		head := []string{"event_id", "planting_id", "event_date", "event_type"}
		out := make([][]string, 0, len(b.Tables.Events))
		for _, e := range b.Tables.Events {
			out = append(out, []string{id(e.EventID), id(e.PlantingID), date(e.EventDate), e.EventType})
		}
		return head, out, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownTable, t)
}

func id(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func num(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func date(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02")
}
