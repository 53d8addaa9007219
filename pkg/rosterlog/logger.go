// Package rosterlog provides the structured logger used throughout the
// roster solver, wrapping zerolog with a handful of domain events instead
// of bare Info()/Error() calls scattered across the model builder and
// solver driver.
package rosterlog

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Config controls the process-wide logger.
type Config struct {
	Level  string // debug|info|warn|error
	Format string // console|json
	Output io.Writer
}

// DefaultConfig returns the console-formatted, info-level default, reading
// ROSTER_LOG_FORMAT so a caller can switch to json without code changes.
func DefaultConfig() Config {
	format := os.Getenv("ROSTER_LOG_FORMAT")
	if format == "" {
		format = "console"
	}
	return Config{Level: "info", Format: format, Output: os.Stdout}
}

// Init configures the global logger. Safe to call more than once; only the
// first call takes effect.
func Init(cfg Config) {
	once.Do(func() {
		zerolog.SetGlobalLevel(parseLevel(cfg.Level))

		out := cfg.Output
		if out == nil {
			out = os.Stdout
		}
		if cfg.Format == "console" {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}
		logger = zerolog.New(out).With().Timestamp().Logger()
	})
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the process logger, initializing it with defaults on first
// use.
func Get() *zerolog.Logger {
	// Init is once-guarded, so this is a no-op after the first call.
	Init(DefaultConfig())
	return &logger
}

// SolveLogger is a logger scoped to one solve() call, tagged with its run
// ID so concurrent solves (from separate calls; the core itself never runs
// two solves concurrently) can be told apart in aggregated logs.
type SolveLogger struct {
	base zerolog.Logger
}

// NewSolveLogger returns a logger tagged with runID.
func NewSolveLogger(runID string) *SolveLogger {
	return &SolveLogger{base: Get().With().Str("run_id", runID).Logger()}
}

// StartSolve logs the beginning of a solve with its instance size.
func (l *SolveLogger) StartSolve(days, salaried, contractors int) {
	l.base.Info().
		Int("days", days).
		Int("salaried", salaried).
		Int("contractors", contractors).
		Msg("building model")
}

// SolveFinished logs the terminal solver status and wall time.
func (l *SolveLogger) SolveFinished(status string, wallTime time.Duration, objective float64) {
	l.base.Info().
		Str("status", status).
		Dur("wall_time", wallTime).
		Float64("objective", objective).
		Msg("solve finished")
}

// ConstraintViolation logs a hard-constraint violation caught by the
// validator.
func (l *SolveLogger) ConstraintViolation(rule string, details string) {
	l.base.Warn().
		Str("rule", rule).
		Str("details", details).
		Msg("validator caught a hard-constraint violation")
}

// Error logs a fatal-for-the-request error with its cause.
func (l *SolveLogger) Error(stage string, err error) {
	l.base.Error().Str("stage", stage).Err(err).Msg("solve aborted")
}
