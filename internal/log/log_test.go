package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingSink) ShowStatus(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recordingSink) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func TestHandler_KeepsTimeForNonTerminalWriters(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))
	logger.Info("hello", "boundary", 1)

	out := buf.String()
	assert.Contains(t, out, "time=")
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "boundary=1")
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).With("session", "abc").WithGroup("drag")
	logger.Info("moved", "dx", 3)

	out := buf.String()
	assert.Contains(t, out, "session=abc")
	assert.Contains(t, out, "drag.dx=3")
}

func TestDropTime(t *testing.T) {
	assert.True(t, dropTime(nil, slog.String(slog.TimeKey, "x")).Equal(slog.Attr{}))
	kept := dropTime([]string{"g"}, slog.String(slog.TimeKey, "x"))
	assert.Equal(t, slog.TimeKey, kept.Key)
}

func TestUserOutput_RoutesToStatusSinkInTUIMode(t *testing.T) {
	sink := &recordingSink{}
	SetStatusSink(sink)
	SetMode(ModeTUI)
	defer func() {
		SetStatusSink(nil)
		SetMode(ModeHeadless)
	}()

	UserSuccess("Copied widths")
	UserWarn("Terminal too small")
	UserInfo("darkMode = auto")
	UserProgress("Open it with: tusk-sheet view rooms.yaml")

	assert.Eventually(t, func() bool {
		return len(sink.all()) == 4
	}, time.Second, time.Millisecond)
	assert.Equal(t, []string{
		"Copied widths",
		"Terminal too small",
		"darkMode = auto",
		"Open it with: tusk-sheet view rooms.yaml",
	}, sink.all())
}

func TestSetup_TUIModeWritesDebugLogToFile(t *testing.T) {
	defer SetMode(ModeHeadless)

	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, Setup(true, ModeTUI, path))
	Debug("resizer attached", "boundary", 2)

	l := Get()
	require.NotNil(t, l.logFile)
	require.NoError(t, l.logFile.Sync())

	data, err := readFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(data, "boundary=2"))

	require.NoError(t, Setup(false, ModeHeadless, ""))
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	return string(data), err
}
