package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 30
	timeFormat        = "2006-01-02 15:04:05"
)

// Options controls where log lines go.
type Options struct {
	Level string
	File  string // rotating log file; empty disables file output
	// Console also writes to stderr. The interactive menu leaves this off so
	// log lines do not interleave with the tables it prints.
	Console bool
}

// Apply sets the global zerolog level and writers and tags every line with a
// session id. It returns the session id.
func Apply(opts Options) string {
	applyLevel(opts.Level)

	var writers []io.Writer
	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: timeFormat})
	}
	if opts.File != "" {
		if err := ensureLogDir(opts.File); err == nil {
			writers = append(writers, zerolog.ConsoleWriter{
				Out: &lumberjack.Logger{
					Filename:   opts.File,
					MaxSize:    DefaultMaxSizeMB,
					MaxBackups: DefaultMaxBackups,
					MaxAge:     DefaultMaxAgeDays,
					Compress:   true,
				},
				TimeFormat: timeFormat,
				NoColor:    true,
			})
		}
	}

	session := uuid.New().String()
	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}
	log.Logger = zerolog.New(out).With().Timestamp().Str("session", session).Logger()
	return session
}

func applyLevel(level string) {
	switch level {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
