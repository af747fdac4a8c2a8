package dataprep

import (
	"math"
	"strconv"
	"time"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
)

// Clock supplies the reference "now" for features relative to the run time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns T.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }

// DateLayouts are the timestamp formats recognised in text columns.
var DateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"1/2/2006",
	"1/2/2006 15:04:05",
}

// TimeParser parses text cells as timestamps using a fixed list of layouts.
// Values without a zone are read as UTC.
type TimeParser struct {
	cfg *now.Config
}

func NewTimeParser(layouts []string) *TimeParser {
	if len(layouts) == 0 {
		layouts = DateLayouts
	}
	return &TimeParser{cfg: &now.Config{
		WeekStartDay: time.Monday,
		TimeLocation: time.UTC,
		TimeFormats:  layouts,
	}}
}

func (p *TimeParser) Parse(s string) (time.Time, error) {
	return p.cfg.Parse(s)
}

// ParseColumn parses every non-missing value. It fails when any value does
// not parse or when the column holds no value at all.
func (p *TimeParser) ParseColumn(values []string) ([]time.Time, bool) {
	out := make([]time.Time, len(values))
	seen := false
	for i, s := range values {
		if s == "" {
			continue
		}
		ts, err := p.Parse(s)
		if err != nil {
			return nil, false
		}
		out[i] = ts
		seen = true
	}
	return out, seen
}

// RoundTo rounds v to places decimals, ties to even. The stored binary value
// is rounded, so 2.675 (held as 2.67499...) becomes 2.67. Non-finite values
// pass through.
func RoundTo(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	d := decimal.RequireFromString(strconv.FormatFloat(v, 'f', exactDigits, 64))
	return d.RoundBank(places).InexactFloat64()
}

// exactDigits keeps enough of the binary expansion to tell a true tie from a
// value one ulp either side of it.
const exactDigits = 40
