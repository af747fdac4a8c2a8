package data

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmptyInput      = errors.New("input has no header row")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrRaggedRow       = errors.New("row has wrong number of fields")
	ErrRowMismatch     = errors.New("column length does not match table rows")
)

// Kind is the declared value type of a column.
type Kind int

const (
	Numeric Kind = iota
	Text
	Time
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Text:
		return "text"
	case Time:
		return "time"
	}
	return "unknown"
}

// Column holds the values of one named column. Only the slice matching Kind is populated.
// Missing cells are NaN for Numeric, "" for Text and the zero time for Time.
type Column struct {
	Name    string
	Kind    Kind
	// Integer marks whole-number columns (counts, flags, codes); they are
	// written without a fractional part.
	Integer bool
	Floats  []float64
	Strings []string
	Times   []time.Time
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	switch c.Kind {
	case Numeric:
		return len(c.Floats)
	case Text:
		return len(c.Strings)
	case Time:
		return len(c.Times)
	}
	return 0
}

// Missing reports whether row i holds no value.
func (c *Column) Missing(i int) bool {
	switch c.Kind {
	case Numeric:
		return math.IsNaN(c.Floats[i])
	case Text:
		return c.Strings[i] == ""
	case Time:
		return c.Times[i].IsZero()
	}
	return true
}

// Format renders row i the way it is written to CSV.
func (c *Column) Format(i int) string {
	if c.Missing(i) {
		return ""
	}
	switch c.Kind {
	case Numeric:
		return formatNumber(c.Floats[i], c.Integer)
	case Text:
		return c.Strings[i]
	case Time:
		return FormatTime(c.Times[i])
	}
	return ""
}

// formatNumber prints integer columns without a fraction and keeps a ".0"
// on whole values of float columns, so the kind survives a CSV round trip.
func formatNumber(v float64, integer bool) string {
	if integer && !math.IsInf(v, 0) {
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !math.IsInf(v, 0) && !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// FormatTime prints dates without a clock part as 2006-01-02.
func FormatTime(t time.Time) string {
	h, m, s := t.Clock()
	if h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.DateTime)
}

func (c *Column) clone() *Column {
	n := &Column{Name: c.Name, Kind: c.Kind, Integer: c.Integer}
	if c.Floats != nil {
		n.Floats = make([]float64, len(c.Floats))
		copy(n.Floats, c.Floats)
	}
	if c.Strings != nil {
		n.Strings = make([]string, len(c.Strings))
		copy(n.Strings, c.Strings)
	}
	if c.Times != nil {
		n.Times = make([]time.Time, len(c.Times))
		copy(n.Times, c.Times)
	}
	return n
}

// Table is an ordered set of uniquely named, row-aligned columns.
type Table struct {
	rows    int
	columns []*Column
	index   map[string]int
}

// NewTable creates an empty table with a fixed number of rows.
func NewTable(rows int) *Table {
	return &Table{rows: rows, index: make(map[string]int)}
}

func (t *Table) Len() int   { return t.rows }
func (t *Table) Width() int { return len(t.columns) }

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Columns returns the columns in table order. Callers must not modify them.
func (t *Table) Columns() []*Column { return t.columns }

func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Numeric returns the values of a numeric column.
func (t *Table) Numeric(name string) ([]float64, bool) {
	c, ok := t.Column(name)
	if !ok || c.Kind != Numeric {
		return nil, false
	}
	return c.Floats, true
}

// Text returns the values of a text column.
func (t *Table) Text(name string) ([]string, bool) {
	c, ok := t.Column(name)
	if !ok || c.Kind != Text {
		return nil, false
	}
	return c.Strings, true
}

// Times returns the values of a time column.
func (t *Table) Times(name string) ([]time.Time, bool) {
	c, ok := t.Column(name)
	if !ok || c.Kind != Time {
		return nil, false
	}
	return c.Times, true
}

// AddNumeric appends a float column, or replaces the column of the same name in place.
func (t *Table) AddNumeric(name string, values []float64) error {
	return t.put(&Column{Name: name, Kind: Numeric, Floats: values})
}

// AddInteger is AddNumeric for integer-valued columns such as flags, counts and codes.
func (t *Table) AddInteger(name string, values []float64) error {
	return t.put(&Column{Name: name, Kind: Numeric, Integer: true, Floats: values})
}

func (t *Table) AddText(name string, values []string) error {
	return t.put(&Column{Name: name, Kind: Text, Strings: values})
}

func (t *Table) AddTime(name string, values []time.Time) error {
	return t.put(&Column{Name: name, Kind: Time, Times: values})
}

// AddColumn appends c as is. It is used by loaders that build columns themselves.
func (t *Table) AddColumn(c *Column) error {
	if t.Has(c.Name) {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
	}
	return t.put(c)
}

func (t *Table) put(c *Column) error {
	if c.Len() != t.rows {
		return fmt.Errorf("%w: %q has %d values, table has %d rows", ErrRowMismatch, c.Name, c.Len(), t.rows)
	}
	if i, ok := t.index[c.Name]; ok {
		t.columns[i] = c
		return nil
	}
	t.index[c.Name] = len(t.columns)
	t.columns = append(t.columns, c)
	return nil
}

// Clone deep copies the table so a stage can extend it without touching its input.
func (t *Table) Clone() *Table {
	n := &Table{
		rows:    t.rows,
		columns: make([]*Column, len(t.columns)),
		index:   make(map[string]int, len(t.index)),
	}
	for i, c := range t.columns {
		n.columns[i] = c.clone()
		n.index[c.Name] = i
	}
	return n
}

// Row returns the formatted cells of row i in column order.
func (t *Table) Row(i int) []string {
	out := make([]string, len(t.columns))
	for j, c := range t.columns {
		out[j] = c.Format(i)
	}
	return out
}
