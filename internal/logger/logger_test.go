package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}

func TestNewWithoutPathIsNop(t *testing.T) {
	lggr, err := New(Config{Level: "debug"})
	require.NoError(t, err)
	lggr.Infow("discarded", "k", 1)
	require.NoError(t, lggr.Sync())
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onboard.log")
	lggr, err := New(Config{Level: "info", Path: path})
	require.NoError(t, err)

	lggr.Named("carousel").Infow("step decided", "step", 2)
	lggr.Debug("below level")
	_ = lggr.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "step decided")
	assert.Contains(t, out, "carousel")
	assert.False(t, strings.Contains(out, "below level"))
}

func TestObservedCapturesFields(t *testing.T) {
	lggr, logs := TestObserved(t, zapcore.DebugLevel)
	lggr.With("session", "abc").Debugw("sample dropped", "phase", "ended")

	entries := logs.FilterMessage("sample dropped").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "abc", ctx["session"])
	assert.Equal(t, "ended", ctx["phase"])
}
