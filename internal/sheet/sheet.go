// Package sheet loads the tabular data shown by the viewer.
package sheet

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Use-Tusk/tusk-sheet/internal/resize"
)

// Sheet is a header layout plus the rows rendered beneath it.
type Sheet struct {
	Banner  string     `yaml:"banner,omitempty"`
	Columns []Column   `yaml:"columns"`
	Rows    [][]string `yaml:"rows,omitempty"`

	path string
}

type Column struct {
	Label string `yaml:"label"`
	Main  bool   `yaml:"main,omitempty"`
	// Resizable controls whether a resizer is drawn after the column.
	// Defaults to true.
	Resizable *bool   `yaml:"resizable,omitempty"`
	Width     float64 `yaml:"width,omitempty"`
}

// Load reads and validates a sheet file.
func Load(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// Parse decodes and validates sheet YAML.
func Parse(data []byte) (*Sheet, error) {
	var s Sheet
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid sheet yaml: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the sheet as YAML.
func (s *Sheet) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode sheet: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write sheet: %w", err)
	}
	s.path = path
	return nil
}

// Path returns the file the sheet was loaded from, if any.
func (s *Sheet) Path() string {
	return s.path
}

func (s *Sheet) Validate() error {
	var errs []error

	if len(s.Columns) == 0 {
		errs = append(errs, errors.New("columns: at least one column is required"))
	}

	for i, c := range s.Columns {
		if c.Width < 0 {
			errs = append(errs, fmt.Errorf("columns[%d].width must not be negative, got %g", i, c.Width))
		}
	}

	for i, row := range s.Rows {
		if len(row) > len(s.Columns) {
			errs = append(errs, fmt.Errorf("rows[%d] has %d cells but only %d columns", i, len(row), len(s.Columns)))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Specs returns the header layout for the current columns.
func (s *Sheet) Specs() []resize.ColumnSpec {
	specs := make([]resize.ColumnSpec, len(s.Columns))
	for i, c := range s.Columns {
		specs[i] = resize.ColumnSpec{
			IsMain:            c.Main,
			LabelText:         c.Label,
			DrawsResizerAfter: c.Resizable == nil || *c.Resizable,
		}
	}
	return specs
}

// InitialWidths returns configured widths, splitting total evenly across
// columns that have none. Every width is at least resize.MinColumnWidth.
func (s *Sheet) InitialWidths(total int) []float64 {
	widths := make([]float64, len(s.Columns))
	if len(widths) == 0 {
		return widths
	}

	fixed := 0.0
	unset := 0
	for _, c := range s.Columns {
		if c.Width > 0 {
			fixed += c.Width
		} else {
			unset++
		}
	}

	share := 0.0
	if unset > 0 {
		share = float64(int((float64(total) - fixed) / float64(unset)))
	}

	for i, c := range s.Columns {
		w := c.Width
		if w <= 0 {
			w = share
		}
		widths[i] = max(w, resize.MinColumnWidth)
	}
	return widths
}

// Cell returns the cell at row, col or "" when the row is short.
func (s *Sheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return ""
	}
	return s.Rows[row][col]
}
