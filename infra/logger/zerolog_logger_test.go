package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOptions("manager", Options{Output: &buf})
	l.Debugw("solved", map[string]any{"method": "vogel", "total_cost": 880})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "manager", line["component"])
	assert.Equal(t, "vogel", line["method"])
	assert.Equal(t, float64(880), line["total_cost"])
	assert.Equal(t, "debug", line["level"])
}

func TestZerologLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOptions("x", Options{Output: &buf, Level: "warn"})
	l.Infof("hidden")
	l.Warnf("shown")
	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, "shown"))
}

func TestConfigure(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	var buf bytes.Buffer
	Configure(Options{Level: "error", Output: &buf})
	t.Cleanup(func() { configured.Store(nil) })

	l := New("svc")
	l.Warnf("hidden")
	l.Errorf("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"component":"svc"`)
}
