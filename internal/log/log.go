// Package log provides centralized logging for tusk-sheet.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// OutputMode determines how user-facing output is rendered
type OutputMode int

const (
	// ModeTUI indicates the full-screen viewer is active - user output goes to its status line
	ModeTUI OutputMode = iota
	// ModeHeadless indicates headless mode - user output goes to stdout
	ModeHeadless
)

// StatusSink receives user-facing messages while the viewer owns the screen
type StatusSink interface {
	ShowStatus(message string)
}

type Logger struct {
	mode       atomic.Int32
	statusSink atomic.Pointer[StatusSink]
	statusChan chan string
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	level      slog.Level
	logFile    *os.File
}

var (
	instance *Logger
	once     sync.Once
)

// Get returns the singleton logger instance
func Get() *Logger {
	once.Do(func() {
		instance = &Logger{
			statusChan: make(chan string, 100),
			stopChan:   make(chan struct{}),
			level:      slog.LevelInfo,
		}
		instance.mode.Store(int32(ModeHeadless))
		instance.wg.Add(1)
		go instance.process()
	})
	return instance
}

func (l *Logger) process() {
	defer l.wg.Done()
	for {
		select {
		case msg := <-l.statusChan:
			l.deliver(msg)
		case <-l.stopChan:
			// Drain remaining messages
			for {
				select {
				case msg := <-l.statusChan:
					l.deliver(msg)
				default:
					return
				}
			}
		}
	}
}

func (l *Logger) deliver(msg string) {
	sinkPtr := l.statusSink.Load()
	if sinkPtr == nil {
		return
	}
	(*sinkPtr).ShowStatus(msg)
}

// Setup configures the singleton logger (call once at startup).
// In TUI mode developer logs would corrupt the screen, so they go to
// logPath when debugging and are discarded otherwise.
func Setup(debug bool, mode OutputMode, logPath string) error {
	l := Get()
	l.mode.Store(int32(mode))

	if debug {
		l.level = slog.LevelDebug
	} else {
		l.level = slog.LevelInfo
	}

	if l.logFile != nil {
		_ = l.logFile.Close()
		l.logFile = nil
	}

	var w io.Writer = os.Stderr
	if mode == ModeTUI {
		w = io.Discard
		if debug && logPath != "" {
			f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("failed to open debug log: %w", err)
			}
			l.logFile = f
			w = f
		}
	}

	handler := NewHandler(w, &slog.HandlerOptions{
		Level: l.level,
	})
	slog.SetDefault(slog.New(handler))
	return nil
}

// SetStatusSink sets the status sink (called when the viewer starts)
func SetStatusSink(sink StatusSink) {
	l := Get()
	if sink == nil {
		l.statusSink.Store(nil)
	} else {
		l.statusSink.Store(&sink)
	}
}

// SetMode changes the output mode
func SetMode(mode OutputMode) {
	Get().mode.Store(int32(mode))
}

// GetMode returns the current output mode
func GetMode() OutputMode {
	return OutputMode(Get().mode.Load())
}

// Shutdown gracefully stops the logger, draining pending messages
func Shutdown() {
	l := Get()
	l.stopOnce.Do(func() {
		close(l.stopChan)
		l.wg.Wait()
		if l.logFile != nil {
			_ = l.logFile.Close()
		}
	})
}

// --- Developer Logging (wraps slog) ---

// Debug logs a debug-level message
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Info logs an info-level message
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Warn logs a warning-level message
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error logs an error-level message
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

// --- User-Facing Output (styled, mode-aware) ---

// UserError prints a styled error message to the user
func UserError(msg string) {
	printStyled(msg, renderError(msg))
}

// UserWarn prints a styled warning message to the user
func UserWarn(msg string) {
	printStyled(msg, renderWarning(msg))
}

// UserSuccess prints a styled success message to the user
func UserSuccess(msg string) {
	printStyled(msg, renderSuccess(msg))
}

// UserInfo prints an informational message to the user
func UserInfo(msg string) {
	printStyled(msg, msg)
}

// UserProgress prints a progress/dim message to the user
func UserProgress(msg string) {
	printStyled(msg, renderDim(msg))
}

// Println prints a message with newline but no styling
func Println(msg string) {
	if GetMode() == ModeHeadless {
		_, _ = io.WriteString(os.Stdout, msg+"\n")
	}
}

func printStyled(plain, styled string) {
	if GetMode() == ModeHeadless {
		_, _ = io.WriteString(os.Stdout, styled+"\n")
		return
	}
	status(plain)
}

// status queues a message for the viewer's status line.
// Non-blocking: returns immediately, message is queued for processing
func status(msg string) {
	l := Get()
	select {
	case l.statusChan <- msg:
	default:
		// Queue full - drop rather than stall the UI loop
		slog.Debug("Status queue full, dropping message", "message", msg)
	}
}
