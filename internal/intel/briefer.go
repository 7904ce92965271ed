package intel

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds a single briefing request.
const DefaultTimeout = 8 * time.Second

// Briefer wraps a Source with a deadline and the fallback report.
// Failures are logged and never retried.
type Briefer struct {
	source  Source
	timeout time.Duration
	logger  *log.Logger
}

// NewBriefer creates a Briefer. A nil source behaves like Offline and a nil
// logger discards output.
func NewBriefer(source Source, timeout time.Duration, logger *log.Logger) *Briefer {
	if source == nil {
		source = Offline{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Briefer{source: source, timeout: timeout, logger: logger}
}

// Brief returns the report for wave, or Fallback on any failure.
// It always returns within the configured timeout.
func (b *Briefer) Brief(ctx context.Context, wave int) Report {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	type result struct {
		report Report
		err    error
	}
	done := make(chan result, 1)
	go func() {
		r, err := b.source.Generate(ctx, wave)
		if err == nil {
			err = r.Validate()
		}
		done <- result{r, err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			b.logger.Warn("intel unavailable, using fallback", "wave", wave, "err", res.err)
			return Fallback()
		}
		b.logger.Debug("intel received", "wave", wave, "threat", res.report.ThreatLevel)
		return res.report
	case <-ctx.Done():
		b.logger.Warn("intel timed out, using fallback", "wave", wave, "err", ctx.Err())
		return Fallback()
	}
}
