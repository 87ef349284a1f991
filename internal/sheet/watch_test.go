package sheet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reload struct {
	sheet *Sheet
	err   error
}

func startWatch(t *testing.T, path string) <-chan reload {
	t.Helper()
	got := make(chan reload, 8)
	w, err := Watch(path, func(s *Sheet, err error) { got <- reload{s, err} })
	require.NoError(t, err)
	t.Cleanup(w.Stop)
	return got
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	got := startWatch(t, path)

	updated := "columns:\n  - label: Room\n  - label: Floor\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	select {
	case r := <-got:
		require.NoError(t, r.err)
		require.Len(t, r.sheet.Columns, 2)
		assert.Equal(t, "Floor", r.sheet.Columns[1].Label)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatch_ReportsInvalidSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	got := startWatch(t, path)

	require.NoError(t, os.WriteFile(path, []byte("columns: []\n"), 0o600))

	select {
	case r := <-got:
		assert.Nil(t, r.sheet)
		assert.ErrorContains(t, r.err, "at least one column")
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rooms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	got := startWatch(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600))

	select {
	case r := <-got:
		t.Fatalf("unexpected reload: %+v", r)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatch_StopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	w, err := Watch(path, func(*Sheet, error) {})
	require.NoError(t, err)
	w.Stop()
	w.Stop()
}
