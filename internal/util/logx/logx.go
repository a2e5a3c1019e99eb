package logx

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	mu       sync.Mutex
	level    = Info
	buf      = make([]string, 0, 500)
	maxLines = 500
	// default to no stderr output to avoid breaking the TUI; enable via ADMINUI_LOG_STDERR=1
	toStderr = false
	logger   = build()
)

// ringWriter receives one formatted console line per event. Writes happen
// while mu is held by logf.
type ringWriter struct{}

func (ringWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if len(buf) >= maxLines {
			// drop oldest
			copy(buf[0:], buf[1:])
			buf = buf[:len(buf)-1]
		}
		buf = append(buf, line)
	}
	return len(p), nil
}

func build() zerolog.Logger {
	var w io.Writer = zerolog.ConsoleWriter{Out: ringWriter{}, NoColor: true, TimeFormat: timeLayout}
	if toStderr {
		w = zerolog.MultiLevelWriter(w, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: timeLayout})
	}
	return zerolog.New(w).Level(zlevel(level)).With().Timestamp().Logger()
}

func zlevel(l Level) zerolog.Level {
	switch l {
	case Debug:
		return zerolog.DebugLevel
	case Warn:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func SetLevel(l Level) {
	mu.Lock()
	level = l
	logger = build()
	mu.Unlock()
}

func SetLevelFromEnv() {
	lv := strings.ToLower(strings.TrimSpace(os.Getenv("ADMINUI_LOG_LEVEL")))
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("ADMINUI_LOG_STDERR"))); v != "" {
		mu.Lock()
		toStderr = v != "0" && v != "false" && v != "no"
		mu.Unlock()
	}
	switch lv {
	case "debug":
		SetLevel(Debug)
	case "warn", "warning":
		SetLevel(Warn)
	case "error":
		SetLevel(Error)
	default:
		SetLevel(Info)
	}
}

func Debugf(format string, a ...any) { logf(Debug, format, a...) }
func Infof(format string, a ...any)  { logf(Info, format, a...) }
func Warnf(format string, a ...any)  { logf(Warn, format, a...) }
func Errorf(format string, a ...any) { logf(Error, format, a...) }

func logf(l Level, format string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	logger.WithLevel(zlevel(l)).Msgf(format, a...)
}

func Dump() string {
	mu.Lock()
	defer mu.Unlock()
	return strings.Join(buf, "\n")
}

func Lines() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(buf))
	copy(out, buf)
	return out
}
