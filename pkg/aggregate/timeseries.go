package aggregate

import (
	"sort"
	"time"

	"horta/entities"
	"horta/pkg/relations"
)

type MonthPoint struct {
	Month time.Time `json:"month"` // first day of the month, UTC
	Total float64   `json:"total"`
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthlySum buckets rows by calendar month. The series is sparse: months
// without rows are omitted. Rows with a missing date are skipped.
func MonthlySum[T any](rows []T, date func(T) *time.Time, value func(T) float64) []MonthPoint {
	sums := map[time.Time]float64{}
	for _, r := range rows {
		d := date(r)
		if d == nil {
			continue
		}
		sums[monthOf(*d)] += value(r)
	}
	out := make([]MonthPoint, 0, len(sums))
	for m, v := range sums {
		out = append(out, MonthPoint{Month: m, Total: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

func MonthlyHarvest(harvests []entities.Harvest) []MonthPoint {
	return MonthlySum(harvests,
		func(h entities.Harvest) *time.Time { return h.HarvestDate },
		func(h entities.Harvest) float64 { return float64(h.Quantity) })
}

type MonthTypeCounts struct {
	Month  time.Time      `json:"month"`
	Counts map[string]int `json:"counts"`
}

// EventSeries is a month x event-type pivot for a stacked chart.
type EventSeries struct {
	Types  []string          `json:"types"`
	Months []MonthTypeCounts `json:"months"`
}

// EventsByMonth counts events per month and type. Months without events are
// omitted, but every listed month carries a count (possibly 0) for every type.
func EventsByMonth(events []entities.ManagementEvent) EventSeries {
	counts := map[time.Time]map[string]int{}
	types := map[string]struct{}{}
	for _, e := range events {
		if e.EventDate == nil {
			continue
		}
		m := monthOf(*e.EventDate)
		if counts[m] == nil {
			counts[m] = map[string]int{}
		}
		t := groupKey(&e.EventType)
		counts[m][t]++
		types[t] = struct{}{}
	}
	s := EventSeries{Types: sortedKeys(types), Months: make([]MonthTypeCounts, 0, len(counts))}
	for m, c := range counts {
		row := MonthTypeCounts{Month: m, Counts: make(map[string]int, len(s.Types))}
		for _, t := range s.Types {
			row.Counts[t] = c[t]
		}
		s.Months = append(s.Months, row)
	}
	sort.Slice(s.Months, func(i, j int) bool { return s.Months[i].Month.Before(s.Months[j].Month) })
	return s
}

// BedDayCount is one cell of the bed x day event heatmap. ByType splits
// Count by event type so a single type can be shown without a recompute.
type BedDayCount struct {
	Bed    string         `json:"bed"`
	Day    time.Time      `json:"day"`
	Count  int            `json:"count"`
	ByType map[string]int `json:"by_type"`
}

// EventsByBedDay counts dated events per bed and calendar day, ordered by bed
// then day. Events of plantings without a known bed go under "unspecified".
func EventsByBedDay(plantings []relations.EnrichedPlanting, events []entities.ManagementEvent) []BedDayCount {
	idx := plantingIndex(plantings)
	type cell struct {
		bed string
		day time.Time
	}
	cells := map[cell]*BedDayCount{}
	for _, e := range events {
		if e.EventDate == nil {
			continue
		}
		var name *string
		if e.PlantingID != nil {
			if p, ok := idx[*e.PlantingID]; ok {
				name = p.BedName
			}
		}
		d := *e.EventDate
		k := cell{bed: groupKey(name), day: time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)}
		c, ok := cells[k]
		if !ok {
			c = &BedDayCount{Bed: k.bed, Day: k.day, ByType: map[string]int{}}
			cells[k] = c
		}
		c.Count++
		c.ByType[groupKey(&e.EventType)]++
	}
	out := make([]BedDayCount, 0, len(cells))
	for _, c := range cells {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bed != out[j].Bed {
			return out[i].Bed < out[j].Bed
		}
		return out[i].Day.Before(out[j].Day)
	})
	return out
}

type DatePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// AverageHeightByDate is the mean height per observation date, skipping
// observations without a date or height.
func AverageHeightByDate(observations []entities.Observation) []DatePoint {
	sum := map[time.Time]float64{}
	n := map[time.Time]int{}
	for _, o := range observations {
		if o.ObservationDate == nil || o.HeightCM == nil {
			continue
		}
		d := *o.ObservationDate
		sum[d] += *o.HeightCM
		n[d]++
	}
	out := make([]DatePoint, 0, len(sum))
	for d, s := range sum {
		out = append(out, DatePoint{Date: d, Value: s / float64(n[d])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
