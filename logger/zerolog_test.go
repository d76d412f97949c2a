package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var res []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal(line, &entry))
		res = append(res, entry)
	}
	return res
}

func TestZerologLogger_Levels(t *testing.T) {
	testCases := []struct {
		name      string
		level     LogLevel
		wantCount int
	}{
		{name: "debug", level: DebugLevel, wantCount: 4},
		{name: "info", level: InfoLevel, wantCount: 3},
		{name: "warn", level: WarnLevel, wantCount: 2},
		{name: "error", level: ErrorLevel, wantCount: 1},
		{name: "disabled", level: Disabled, wantCount: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(WithOutput(&buf), WithLevel(tc.level))
			l.Debug("d")
			l.Info("i")
			l.Warn("w")
			l.Error("e")
			assert.Len(t, decodeLines(t, &buf), tc.wantCount)
		})
	}
}

func TestZerologLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithLevel(DebugLevel)).WithField("component", "resource")

	l.Info("built",
		String("table", "users"),
		Int("params", 2),
		Duration("elapsed", time.Millisecond),
		FieldError(errors.New("boom")),
		Any("tables", []string{"users", "orders"}),
	)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "built", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "resource", entry["component"])
	assert.Equal(t, "users", entry["table"])
	assert.Equal(t, float64(2), entry["params"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, []any{"users", "orders"}, entry["tables"])
	assert.Contains(t, entry, "elapsed")
}

func TestZerologLogger_SetLevelAndOutput(t *testing.T) {
	var first, second bytes.Buffer
	l := New(WithOutput(&first), WithLevel(ErrorLevel))

	l.Info("dropped")
	assert.Empty(t, first.String())

	l.SetLevel(InfoLevel)
	l.SetOutput(&second)
	l.Info("kept")
	assert.Empty(t, first.String())
	assert.Len(t, decodeLines(t, &second), 1)
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		l.Error("nothing", String("k", "v"))
		l.WithFields(Int("n", 1)).Warn("still nothing")
	})
}

func TestZerologLogger_TimeFormat(t *testing.T) {
	formats := []string{time.RFC3339, "2006-01-02", time.Kitchen, time.RFC1123}
	bufs := make([]bytes.Buffer, len(formats))

	// 并发创建使用不同时间格式的日志实例，彼此互不影响
	var wg sync.WaitGroup
	for i, format := range formats {
		wg.Add(1)
		go func(i int, format string) {
			defer wg.Done()
			New(WithOutput(&bufs[i]), WithTimeFormat(format)).Info("tick")
		}(i, format)
	}
	wg.Wait()

	for i, format := range formats {
		entries := decodeLines(t, &bufs[i])
		require.Len(t, entries, 1)
		ts, ok := entries[0]["time"].(string)
		require.True(t, ok)
		_, err := time.Parse(format, ts)
		assert.NoError(t, err, format)
	}
}
