package helper

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// LogHandlerSpy is a slog.Handler that captures log records for testing.
type LogHandlerSpy struct {
	mu          sync.Mutex
	records     []slog.Record
	logToStdout bool
}

// NewLogHandlerSpy creates a new LogHandlerSpy.
// Switchable to log to stdout, which helps when debugging a test.
func NewLogHandlerSpy(logToStdout bool) *LogHandlerSpy {
	return &LogHandlerSpy{logToStdout: logToStdout}
}

func (s *LogHandlerSpy) Handle(ctx context.Context, record slog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)

	if s.logToStdout {
		_ = slog.NewJSONHandler(os.Stdout, nil).Handle(ctx, record)
	}

	return nil
}

func (s *LogHandlerSpy) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (s *LogHandlerSpy) WithAttrs(_ []slog.Attr) slog.Handler { return s }

func (s *LogHandlerSpy) WithGroup(_ string) slog.Handler { return s }

func (s *LogHandlerSpy) GetRecords() []slog.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]slog.Record(nil), s.records...)
}

// HasLogWithMessage starts a fluent chain over the records with the level and message.
func (s *LogHandlerSpy) HasLogWithMessage(level slog.Level, message string) *SpyLogRecordMatcher {
	m := &SpyLogRecordMatcher{}
	for _, r := range s.GetRecords() {
		if r.Level == level && r.Message == message {
			m.candidates = append(m.candidates, r)
		}
	}

	return m
}

func (s *LogHandlerSpy) HasDebugLogWithMessage(message string) *SpyLogRecordMatcher {
	return s.HasLogWithMessage(slog.LevelDebug, message)
}

func (s *LogHandlerSpy) HasInfoLogWithMessage(message string) *SpyLogRecordMatcher {
	return s.HasLogWithMessage(slog.LevelInfo, message)
}

// SpyLogRecordMatcher narrows captured records. Assert is true if one record satisfies the chain.
type SpyLogRecordMatcher struct {
	candidates []slog.Record
}

// WithAttr keeps records that carry the attribute key, whatever its value.
func (m *SpyLogRecordMatcher) WithAttr(key string) *SpyLogRecordMatcher {
	kept := m.candidates[:0:0]
	for _, r := range m.candidates {
		found := false
		r.Attrs(func(a slog.Attr) bool {
			found = a.Key == key
			return !found
		})

		if found {
			kept = append(kept, r)
		}
	}

	m.candidates = kept

	return m
}

func (m *SpyLogRecordMatcher) WithDurationMS() *SpyLogRecordMatcher {
	return m.WithAttr("duration_ms")
}

func (m *SpyLogRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}
