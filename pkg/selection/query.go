package selection

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Query parameter names shared by the HTTP surface and the CLI.
const (
	ParamFrom        = "from"
	ParamTo          = "to"
	ParamSpecies     = "species"
	ParamBed         = "bed"
	ParamResponsible = "responsible"
	ParamMethod      = "method"
	ParamActiveOnly  = "active_only"
	ParamSearch      = "q"
)

// ErrBadQuery wraps parameters that cannot be parsed.
var ErrBadQuery = errors.New("bad query parameter")

var (
	openStart = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	openEnd   = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

// FromQuery builds criteria from request parameters. Dates use YYYY-MM-DD;
// when only one bound is given the other side is left open. The result is
// validated, so a start after the end yields ErrInvalidDateRange.
func FromQuery(q url.Values) (Criteria, error) {
	c := Criteria{
		Species:     q.Get(ParamSpecies),
		Bed:         q.Get(ParamBed),
		Responsible: q.Get(ParamResponsible),
		Method:      q.Get(ParamMethod),
		SearchText:  q.Get(ParamSearch),
	}
	if v := strings.TrimSpace(q.Get(ParamActiveOnly)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Criteria{}, fmt.Errorf("%w: %s: %v", ErrBadQuery, ParamActiveOnly, err)
		}
		c.ActiveOnly = b
	}

	from, err := queryDate(q, ParamFrom)
	if err != nil {
		return Criteria{}, err
	}
	to, err := queryDate(q, ParamTo)
	if err != nil {
		return Criteria{}, err
	}
	if from != nil || to != nil {
		start, end := openStart, openEnd
		if from != nil {
			start = *from
		}
		if to != nil {
			end = *to
		}
		if c.DateRange, err = NewDateRange(start, end); err != nil {
			return Criteria{}, err
		}
	}
	return c, nil
}

func queryDate(q url.Values, key string) (*time.Time, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: expected YYYY-MM-DD, got %q", ErrBadQuery, key, v)
	}
	return &t, nil
}
