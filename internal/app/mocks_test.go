package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bft-labs/gelfship/internal/domain"
	"github.com/bft-labs/gelfship/internal/ports"
)

var errRemoteDown = errors.New("remote down")

// mockLogger records log lines for assertions.
type mockLogger struct {
	mu    sync.Mutex
	lines []logLine
}

type logLine struct {
	level  string
	msg    string
	fields []ports.Field
}

func (m *mockLogger) add(level, msg string, fields []ports.Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, logLine{level, msg, fields})
}

func (m *mockLogger) Debug(msg string, fields ...ports.Field) { m.add("debug", msg, fields) }
func (m *mockLogger) Info(msg string, fields ...ports.Field)  { m.add("info", msg, fields) }
func (m *mockLogger) Warn(msg string, fields ...ports.Field)  { m.add("warn", msg, fields) }
func (m *mockLogger) Error(msg string, fields ...ports.Field) { m.add("error", msg, fields) }

func (m *mockLogger) Lines(level string) []logLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []logLine
	for _, l := range m.lines {
		if l.level == level {
			out = append(out, l)
		}
	}
	return out
}

// mockSender records every batch it is asked to deliver.
type mockSender struct {
	mu      sync.Mutex
	calls   [][]domain.Record
	fail    bool
	failFor int
	// sent is signalled after each call when non-nil
	sent chan struct{}
}

func (m *mockSender) Send(ctx context.Context, records []domain.Record) error {
	m.mu.Lock()
	batch := make([]domain.Record, len(records))
	copy(batch, records)
	m.calls = append(m.calls, batch)

	var err error
	if m.fail || m.failFor > 0 {
		if m.failFor > 0 {
			m.failFor--
		}
		err = fmt.Errorf("send %d records: %w", len(records), errRemoteDown)
	}
	m.mu.Unlock()

	if m.sent != nil {
		m.sent <- struct{}{}
	}
	return err
}

func (m *mockSender) setFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

func (m *mockSender) Calls() [][]domain.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]domain.Record{}, m.calls...)
}

// mockSendEmitter counts delivery events.
type mockSendEmitter struct {
	mu        sync.Mutex
	successes int
	failures  int
	reports   [][]error
}

func (m *mockSendEmitter) OnSendSuccess(records int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes++
}

func (m *mockSendEmitter) OnSendError(err error, records int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

func (m *mockSendEmitter) OnErrorsReported(errs []error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, errs)
}

// mockEmitter tracks state change events for testing.
type mockEmitter struct {
	mu     sync.Mutex
	events []stateChangeEvent
}

type stateChangeEvent struct {
	previous State
	current  State
	reason   string
}

func (m *mockEmitter) OnStateChange(previous, current State, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, stateChangeEvent{previous, current, reason})
}

func (m *mockEmitter) Events() []stateChangeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]stateChangeEvent{}, m.events...)
}

func rec(msg string) domain.Record {
	return domain.Record{ShortMessage: msg}
}

func messages(records []domain.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ShortMessage
	}
	return out
}
