package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger that writes to w and drops messages below
// level. Timestamps use the short "HH:MM:SS.cc" form, e.g. "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress remembers when an operation started and logs the elapsed time
// when it finishes. It belongs to one goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts timing now. Call done once the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time rounded to the
// millisecond, e.g. "Loaded shop.erm (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type of this package's context keys, distinct from any
// other package's.
type ctxKey int

// loggerKey stores the command logger on a context.
const loggerKey ctxKey = 0

// withLogger returns a copy of ctx carrying l, for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger stored by withLogger. Without one it
// falls back to log.Default(), so commands run outside RootCommand still
// have somewhere to log.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
