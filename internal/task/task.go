// Package task implements the periodic task: one log line per invocation,
// printed to stdout and appended to a local file.
package task

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mtlprog/statuscron/internal/config"
)

// TimestampLayout matches Python's str(datetime.now()).
const TimestampLayout = "2006-01-02 15:04:05.000000"

const visibleSecretChars = 3

// ErrIOFailure is returned when the task log cannot be opened or written.
var ErrIOFailure = errors.New("task log i/o failure")

// Runner performs one unit of periodic work per RunOnce call.
type Runner struct {
	cfg    config.Task
	out    io.Writer
	now    func() time.Time
	logger *slog.Logger
}

// Option customizes a Runner.
type Option func(*Runner)

// WithOutput sets where the human-readable lines are printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner for cfg.
func NewRunner(cfg config.Task, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		out:    os.Stdout,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunOnce prints the run lines and appends one line to the task log.
func (r *Runner) RunOnce(ctx context.Context) error {
	runID := uuid.NewString()
	ts := r.now().Format(TimestampLayout)

	if _, err := fmt.Fprintf(r.out, "[%s] Running periodic task in %s environment\n", ts, r.cfg.AppEnv); err != nil {
		return fmt.Errorf("print task status: %w", err)
	}
	if _, err := fmt.Fprintf(r.out, "[%s] Using database password: %s\n", ts, MaskSecret(r.cfg.DatabasePassword)); err != nil {
		return fmt.Errorf("print task status: %w", err)
	}

	line := FormatLogLine(ts, r.cfg.AppEnv)
	if err := appendLine(r.cfg.LogPath, line); err != nil {
		r.logger.ErrorContext(ctx, "periodic task failed",
			"run_id", runID,
			"log_path", r.cfg.LogPath,
			"error", err,
		)
		return err
	}

	r.logger.InfoContext(ctx, "periodic task completed",
		"run_id", runID,
		"app_env", r.cfg.AppEnv,
		"log_path", r.cfg.LogPath,
	)
	return nil
}

// FormatLogLine builds the line appended to the task log, newline included.
func FormatLogLine(ts, appEnv string) string {
	return fmt.Sprintf("[%s] Task ran in %s environment\n", ts, appEnv)
}

// MaskSecret keeps the first three characters of secret and hides the rest.
func MaskSecret(secret string) string {
	runes := []rune(secret)
	if len(runes) > visibleSecretChars {
		runes = runes[:visibleSecretChars]
	}
	return string(runes) + "***"
}

// appendLine writes line with a single write so concurrent runs do not interleave.
// Parent directories are never created.
func appendLine(path, line string) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrIOFailure, cerr)
		}
	}()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}
