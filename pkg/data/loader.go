package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// missingTokens are cell values read as "no value".
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"NaN":  {},
	"nan":  {},
	"null": {},
}

// IsMissing reports whether a raw CSV cell stands for a missing value.
func IsMissing(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// ReadCSV loads a CSV file with a header row into a Table.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	t, err := ParseCSV(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// ParseCSV reads CSV records from r. Each column is numeric when every
// non-missing cell parses as a float, and text otherwise.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, err
	}
	header = append([]string(nil), header...)

	cells := make([][]string, len(header))
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("%w: line %d", ErrRaggedRow, line)
			}
			return nil, err
		}
		for j, s := range rec {
			cells[j] = append(cells[j], s)
		}
	}

	rows := 0
	if len(header) > 0 {
		rows = len(cells[0])
	}
	t := NewTable(rows)
	for j, name := range header {
		if err := t.AddColumn(inferColumn(name, cells[j], rows)); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func inferColumn(name string, raw []string, rows int) *Column {
	floats := make([]float64, rows)
	integer := true
	for i, s := range raw {
		if IsMissing(s) {
			floats[i] = math.NaN()
			continue
		}
		s = strings.TrimSpace(s)
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			strs := make([]string, rows)
			for k, cell := range raw {
				if !IsMissing(cell) {
					strs[k] = cell
				}
			}
			return &Column{Name: name, Kind: Text, Strings: strs}
		}
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			integer = false
		}
		floats[i] = v
	}
	return &Column{Name: name, Kind: Numeric, Integer: integer, Floats: floats}
}

// WriteCSV saves the table with a header row, creating parent directories as needed.
func WriteCSV(path string, t *Table) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeCSV(file, t); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

// EncodeCSV writes the table to w. Missing cells are written empty.
func EncodeCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Names()); err != nil {
		return err
	}
	for i := range t.Len() {
		if err := writer.Write(t.Row(i)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
