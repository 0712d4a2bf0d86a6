package helper

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
)

// SpyContextualLogRecord represents a recorded contextual log call.
type SpyContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// ContextualLoggerSpy records all contextual log calls.
type ContextualLoggerSpy struct {
	mu          sync.Mutex
	records     []SpyContextualLogRecord
	recordCalls bool
}

func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{recordCalls: recordCalls}
}

func (s *ContextualLoggerSpy) record(ctx context.Context, level, msg string, args []any) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyContextualLogRecord{Level: level, Message: msg, Args: args, Context: ctx})
}

func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "debug", msg, args)
}

func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "info", msg, args)
}

func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "warn", msg, args)
}

func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "error", msg, args)
}

// GetRecords returns all records of the level ("debug", "info", "warn", "error").
func (s *ContextualLoggerSpy) GetRecords(level string) []SpyContextualLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []SpyContextualLogRecord
	for _, r := range s.records {
		if r.Level == level {
			out = append(out, r)
		}
	}

	return out
}

func (s *ContextualLoggerSpy) HasLog(level, message string) bool {
	for _, r := range s.GetRecords(level) {
		if r.Message == message {
			return true
		}
	}

	return false
}

func (s *ContextualLoggerSpy) HasDebugLog(message string) bool { return s.HasLog("debug", message) }
func (s *ContextualLoggerSpy) HasInfoLog(message string) bool  { return s.HasLog("info", message) }
func (s *ContextualLoggerSpy) HasWarnLog(message string) bool  { return s.HasLog("warn", message) }
func (s *ContextualLoggerSpy) HasErrorLog(message string) bool { return s.HasLog("error", message) }

func (s *ContextualLoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
}

var _ lendingstore.ContextualLogger = (*ContextualLoggerSpy)(nil)
