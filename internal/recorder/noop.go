package recorder

import (
	"time"

	"github.com/rs/zerolog/log"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordQuotes(time.Time, []QuoteSnapshot) error { return nil }
func (n *NoopRecorder) RecordChartView(*ChartView) error              { return nil }
func (n *NoopRecorder) Close() error                                  { return nil }

// Open returns a SQLite recorder for path, or a NoopRecorder when path is
// empty or the database cannot be opened.
func Open(path string) Recorder {
	if path == "" {
		return NewNoopRecorder()
	}
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("init sqlite recorder failed, using noop")
		return NewNoopRecorder()
	}
	return r
}
