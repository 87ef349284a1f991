package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Use-Tusk/tusk-sheet/internal/resize"
)

const sample = `banner: Resources
columns:
  - label: Room
    main: true
    width: 30
  - label: Capacity
  - label: Notes
    resizable: false
rows:
  - [A101, "12", projector]
  - [B2]
`

func TestLoad_ParsesColumnsAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, s.Path())
	assert.Equal(t, "Resources", s.Banner)
	require.Len(t, s.Columns, 3)
	assert.True(t, s.Columns[0].Main)
	assert.Equal(t, 30.0, s.Columns[0].Width)
	assert.Equal(t, "projector", s.Cell(0, 2))
	assert.Equal(t, "", s.Cell(1, 2))
	assert.Equal(t, "", s.Cell(5, 0))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read sheet")
}

func TestParse_JoinsValidationErrors(t *testing.T) {
	_, err := Parse([]byte(`columns: []
rows:
  - [a, b]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one column")
	assert.Contains(t, err.Error(), "rows[0] has 2 cells")

	_, err = Parse([]byte(`columns:
  - label: A
    width: -4
`))
	assert.ErrorContains(t, err, "columns[0].width must not be negative")
}

func TestParse_RejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("columns: [\n"))
	assert.ErrorContains(t, err, "invalid sheet yaml")
}

func TestSpecs_ResizableDefaultsToTrue(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []resize.ColumnSpec{
		{IsMain: true, LabelText: "Room", DrawsResizerAfter: true},
		{LabelText: "Capacity", DrawsResizerAfter: true},
		{LabelText: "Notes", DrawsResizerAfter: false},
	}, s.Specs())
}

func TestInitialWidths(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []float64{30, 35, 35}, s.InitialWidths(100))
	// Never below the drag minimum.
	assert.Equal(t, []float64{30, 20, 20}, s.InitialWidths(40))
	assert.Empty(t, (&Sheet{}).InitialWidths(80))
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.Specs(), loaded.Specs())
	assert.Equal(t, s.Rows, loaded.Rows)
}
