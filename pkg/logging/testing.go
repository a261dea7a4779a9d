package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger is a JSON logger writing to a buffer, for assertions on log output.
type TestLogger struct {
	*zerolog.Logger
	Buffer *bytes.Buffer
}

// NewTestLogger returns a logger capturing every level. The global level is
// restored when the test ends.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.TraceLevel)
	return &TestLogger{Logger: &logger, Buffer: buf}
}

// Entries decodes the captured output, one map per log line. Lines that
// are not JSON are skipped.
func (tl *TestLogger) Entries() []map[string]any {
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(tl.Buffer.String()), "\n") {
		var e map[string]any
		if json.Unmarshal([]byte(line), &e) == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

// Messages returns the message of every captured entry.
func (tl *TestLogger) Messages() []string {
	var msgs []string
	for _, e := range tl.Entries() {
		if m, ok := e[zerolog.MessageFieldName].(string); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

// AssertContains fails the test when the output lacks substr.
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !strings.Contains(tl.Buffer.String(), substr) {
		t.Errorf("log output does not contain %q\noutput:\n%s", substr, tl.Buffer.String())
	}
}

// AssertNotContains fails the test when the output has substr.
func (tl *TestLogger) AssertNotContains(t testing.TB, substr string) {
	t.Helper()
	if strings.Contains(tl.Buffer.String(), substr) {
		t.Errorf("log output should not contain %q\noutput:\n%s", substr, tl.Buffer.String())
	}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
