package dataprep

import (
	"math"
	"time"

	"github.com/jinzhu/now"
	log "github.com/sirupsen/logrus"

	"github.com/marczieee/featurepipe/pkg/data"
)

type TimeOptions struct {
	// NameMarkers select candidate columns by a case-insensitive name match.
	NameMarkers []string `yaml:"name_markers" validate:"min=1,dive,required"`
	RecentDays  int      `yaml:"recent_days" validate:"min=0"`
	Layouts     []string `yaml:"layouts"`
}

func DefaultTimeOptions() TimeOptions {
	return TimeOptions{
		NameMarkers: []string{"date", "time"},
		RecentDays:  30,
	}
}

// TimeExtractor decomposes timestamp columns into calendar features.
type TimeExtractor struct {
	opts   TimeOptions
	parser *TimeParser
	clock  Clock
}

func NewTimeExtractor(opts TimeOptions, parser *TimeParser, clock Clock) *TimeExtractor {
	if clock == nil {
		clock = SystemClock{}
	}
	return &TimeExtractor{opts: opts, parser: parser, clock: clock}
}

func (x *TimeExtractor) Name() string { return "time_based_feature_extraction" }

func (x *TimeExtractor) Apply(t *data.Table) (*data.Table, error) {
	out := t.Clone()
	today := wallUTC(x.clock.Now())

	for _, c := range Select(t, NameContains(x.opts.NameMarkers...)) {
		var ts []time.Time
		switch c.Kind {
		case data.Time:
			ts = c.Times
		case data.Text:
			parsed, ok := x.parser.ParseColumn(c.Strings)
			if !ok {
				log.Debugf("skipping %s: not a timestamp column", c.Name)
				continue
			}
			if err := out.AddTime(c.Name, parsed); err != nil {
				return nil, err
			}
			ts = parsed
		default:
			continue
		}

		if err := x.decompose(out, c.Name, ts, today); err != nil {
			return nil, err
		}
		log.Infof("extracted time features from %s", c.Name)
	}
	return out, nil
}

func (x *TimeExtractor) decompose(out *data.Table, name string, ts []time.Time, today time.Time) error {
	n := len(ts)
	ints := map[string][]float64{}
	texts := map[string][]string{}
	intCol := func(suffix string) []float64 {
		v := make([]float64, n)
		ints[suffix] = v
		return v
	}
	textCol := func(suffix string) []string {
		v := make([]string, n)
		texts[suffix] = v
		return v
	}

	year, month, monthName := intCol("_year"), intCol("_month"), textCol("_month_name")
	day, dow, dayName := intCol("_day"), intCol("_day_of_week"), textCol("_day_name")
	quarter, week, weekend := intCol("_quarter"), intCol("_week_of_year"), intCol("_is_weekend")
	monthStart, monthEnd := intCol("_is_month_start"), intCol("_is_month_end")
	epoch, season := intCol("_days_since_epoch"), textCol("_season")
	fromToday, recent := intCol("_days_from_today"), intCol("_is_recent")

	for i, t := range ts {
		if t.IsZero() {
			for _, v := range ints {
				v[i] = math.NaN()
			}
			// flags stay 0/1
			weekend[i], monthStart[i], monthEnd[i], recent[i] = 0, 0, 0, 0
			continue
		}
		year[i] = float64(t.Year())
		month[i] = float64(t.Month())
		monthName[i] = t.Month().String()
		day[i] = float64(t.Day())
		d := Weekday(t)
		dow[i] = float64(d)
		dayName[i] = t.Weekday().String()
		quarter[i] = float64((int(t.Month())-1)/3 + 1)
		_, w := t.ISOWeek()
		week[i] = float64(w)
		weekend[i] = flag(d >= 5)
		monthStart[i] = flag(t.Day() == 1)
		monthEnd[i] = flag(t.Day() == now.With(t).EndOfMonth().Day())
		epoch[i] = float64(floorDiv(t.Unix(), 86400))
		season[i] = Season(t.Month())
		days := DaysBetween(t, today)
		fromToday[i] = float64(days)
		recent[i] = flag(days <= int64(x.opts.RecentDays))
	}

	order := []string{
		"_year", "_month", "_month_name", "_day", "_day_of_week", "_day_name",
		"_quarter", "_week_of_year", "_is_weekend", "_is_month_start", "_is_month_end",
		"_days_since_epoch", "_season", "_days_from_today", "_is_recent",
	}
	for _, suffix := range order {
		var err error
		if v, ok := ints[suffix]; ok {
			err = out.AddInteger(name+suffix, v)
		} else {
			err = out.AddText(name+suffix, texts[suffix])
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Weekday numbers days from Monday=0 to Sunday=6.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Season uses meteorological seasons of the northern hemisphere.
func Season(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "Winter"
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	}
	return "Fall"
}

// DaysBetween returns the whole days elapsed from t to ref, floored.
func DaysBetween(t, ref time.Time) int64 {
	return int64(math.Floor(ref.Sub(t).Hours() / 24))
}

// wallUTC keeps the wall-clock reading of t and reinterprets it as UTC,
// matching timestamps parsed without a zone.
func wallUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
