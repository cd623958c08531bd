// Package obs provides structured logging for the CLI layer: search
// diagnostics, timing, and per-worker tracing, using a long-lived
// zerolog.Logger threaded through the pieces that need it rather than the
// standard library's log package.
package obs

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New builds the root logger. When pretty is true (an interactive
// terminal) output goes through zerolog.ConsoleWriter for human-readable
// lines; otherwise it's newline-delimited JSON, suitable for redirecting to
// a file or log pipeline.
func New(level zerolog.Level, pretty bool) zerolog.Logger {
	var w io.Writer = os.Stderr
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// WithJobID returns a child logger tagged with a fresh job correlation id,
// so one worker's split/found trail can be grepped out of
// interleaved parallel output. The id has no effect on solver semantics.
func WithJobID(base zerolog.Logger) (zerolog.Logger, uuid.UUID) {
	id := uuid.New()
	return base.With().Str("job_id", id.String()).Logger(), id
}
