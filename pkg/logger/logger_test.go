package logger

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func captureOutput(f func()) string {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	outputChan := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outputChan <- buf.String()
	}()

	f()

	w.Close()
	os.Stdout = oldStdout
	return <-outputChan
}

func TestLevels(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		level string
		log   func(Logger, string)
	}{
		{"debug", func(l Logger, m string) { l.Debug(m) }},
		{"info", func(l Logger, m string) { l.Info(m) }},
		{"warn", func(l Logger, m string) { l.Warn(m) }},
		{"error", func(l Logger, m string) { l.Error(m) }},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			output := captureOutput(func() {
				tt.log(NewLogger(), tt.level+" message")
			})
			assert.Contains(t, output, tt.level+" message")
			assert.Contains(t, output, `"level":"`+tt.level+`"`)
		})
	}
}

func TestWithField(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	output := captureOutput(func() {
		NewLogger().
			WithField("message_id", "m1").
			WithField("first_open", true).
			WithField("attempt", 3).
			Info("event processed")
	})

	assert.Contains(t, output, "event processed")
	assert.Contains(t, output, `"message_id":"m1"`)
	assert.Contains(t, output, `"first_open":true`)
	assert.Contains(t, output, `"attempt":3`)
}

func TestWithFields(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	output := captureOutput(func() {
		NewLogger().WithFields(map[string]interface{}{
			"domain":   "example.com",
			"received": 12,
			"missing":  nil,
		}).WithField("synced", 11).Info("domains synced")
	})

	assert.Contains(t, output, `"domain":"example.com"`)
	assert.Contains(t, output, `"received":12`)
	assert.Contains(t, output, `"missing":null`)
	assert.Contains(t, output, `"synced":11`)
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	parent := NewLogger()
	child := parent.WithFields(map[string]interface{}{"child_only": "x"})
	assert.NotSame(t, parent, child)

	output := captureOutput(func() {
		p := NewLogger()
		p.WithFields(map[string]interface{}{"child_only": "x"})
		p.Info("parent message")
	})
	assert.Contains(t, output, "parent message")
	assert.NotContains(t, output, "child_only")
}

func TestLogLevelFiltering(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	output := captureOutput(func() {
		l := NewLogger()
		l.Info("info should be filtered")
		l.Error("error should be logged")
	})

	assert.NotContains(t, output, "info should be filtered")
	assert.Contains(t, output, "error should be logged")
}

func TestNewLoggerWithLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		name          string
		level         string
		expectedLevel zerolog.Level
	}{
		{"debug level", "debug", zerolog.DebugLevel},
		{"info level", "info", zerolog.InfoLevel},
		{"warn level", "warn", zerolog.WarnLevel},
		{"warning alias", "warning", zerolog.WarnLevel},
		{"error level", "error", zerolog.ErrorLevel},
		{"fatal level", "fatal", zerolog.FatalLevel},
		{"panic level", "panic", zerolog.PanicLevel},
		{"disabled level", "disabled", zerolog.Disabled},
		{"off alias", "off", zerolog.Disabled},
		{"unknown defaults to info", "verbose", zerolog.InfoLevel},
		{"empty defaults to info", "", zerolog.InfoLevel},
		{"mixed case", " DEBUG ", zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoggerWithLevel(tt.level)
			assert.IsType(t, &zerologLogger{}, l)
			assert.Equal(t, tt.expectedLevel, zerolog.GlobalLevel())
		})
	}
}
