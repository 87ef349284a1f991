package cliconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func useTempConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tusk-sheet", "cli.json")
	SetPathForTesting(path)
	t.Cleanup(func() { SetPathForTesting("") })
	return path
}

func TestGetPath(t *testing.T) {
	SetPathForTesting("")
	path := GetPath()
	if path == "" {
		t.Fatal("GetPath() returned empty string")
	}
	if !strings.HasSuffix(path, filepath.Join("tusk-sheet", "cli.json")) {
		t.Errorf("GetPath() = %s, want it to end in tusk-sheet/cli.json", path)
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	path := useTempConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DarkMode != nil || len(cfg.RecentSheets) != 0 {
		t.Errorf("expected empty defaults, got %+v", cfg)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Load() should not create %s", path)
	}
}

func TestConfigLoadAndSave(t *testing.T) {
	useTempConfig(t)

	dark := true
	cfg := &Config{DarkMode: &dark}
	cfg.SetSavedWidths("rooms.yaml", []float64{130, 150, 80})
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	Invalidate()
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.DarkMode == nil || !*loaded.DarkMode {
		t.Errorf("DarkMode not persisted: %v", loaded.DarkMode)
	}
	if got := loaded.SavedWidths("rooms.yaml"); !reflect.DeepEqual(got, []float64{130, 150, 80}) {
		t.Errorf("SavedWidths() = %v", got)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := useTempConfig(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() should fail on invalid JSON")
	}
}

func TestRememberSheet(t *testing.T) {
	cfg := &Config{}
	for i := range maxRecentSheets + 2 {
		cfg.RememberSheet(filepath.Join("/sheets", string(rune('a'+i))+".yaml"))
	}
	cfg.RememberSheet("/sheets/c.yaml")

	if len(cfg.RecentSheets) != maxRecentSheets {
		t.Fatalf("len(RecentSheets) = %d, want %d", len(cfg.RecentSheets), maxRecentSheets)
	}
	if cfg.RecentSheets[0] != "/sheets/c.yaml" {
		t.Errorf("most recent = %s, want /sheets/c.yaml", cfg.RecentSheets[0])
	}
	seen := map[string]bool{}
	for _, p := range cfg.RecentSheets {
		if seen[p] {
			t.Errorf("duplicate entry %s", p)
		}
		seen[p] = true
	}
}

func TestSavedWidthsAreCopies(t *testing.T) {
	cfg := &Config{}
	in := []float64{20, 40}
	cfg.SetSavedWidths("a.yaml", in)
	in[0] = 99

	out := cfg.SavedWidths("a.yaml")
	if out[0] != 20 {
		t.Errorf("stored widths aliased caller slice: %v", out)
	}
	out[1] = 99
	if cfg.SavedWidths("a.yaml")[1] != 40 {
		t.Error("returned widths alias stored slice")
	}

	cfg.ForgetWidths("a.yaml")
	if cfg.SavedWidths("a.yaml") != nil {
		t.Error("ForgetWidths() left widths behind")
	}
}
