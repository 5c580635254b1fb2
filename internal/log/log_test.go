package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(minLevel Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(&buf, minLevel)
	l.now = func() time.Time { return time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC) }
	return l, &buf
}

func TestLogger_Format(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)

	l.Info(CatEngine, "interval started", "kind", "focus", "index", 1)

	assert.Equal(t, "2025-12-06T10:45:00 [INFO] [engine] interval started kind=focus index=1\n", buf.String())
}

func TestLogger_OddFields(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)

	l.Warn(CatConfig, "odd", "orphan")

	assert.Contains(t, buf.String(), "orphan=<missing>")
}

func TestLogger_MinLevel(t *testing.T) {
	l, buf := newTestLogger(LevelWarn)

	l.Debug(CatUI, "hidden")
	l.Info(CatUI, "hidden")
	l.Error(CatUI, "shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[ERROR] [ui] shown")
}

func TestLogger_ErrorErr(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)

	l.ErrorErr(CatCLI, "failed", errors.New("boom"), "cmd", "run")
	l.ErrorErr(CatCLI, "failed", nil)

	out := buf.String()
	assert.Contains(t, out, "cmd=run error=boom")
	assert.Contains(t, out, "error=<nil>")
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		l.Info(CatEngine, "nothing", "k", "v")
		l.ErrorErr(CatEngine, "nothing", errors.New("x"))
	})
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	l, cleanup, err := Open(path, LevelDebug)
	require.NoError(t, err)
	l.Debug(CatTrace, "written")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] [trace] written")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("ERROR"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
}
