package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)
	log.Debug("sending request", "url", "https://example.com/x")
	require.Contains(t, buf.String(), "debug: sending request url=https://example.com/x")
}

func TestQuietDropsDebugAndInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Debug("hidden")
	log.Info("also hidden")
	log.Warn("kept")
	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "warn: kept")
}

func TestWithAttrsCarriesContext(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true).With("account", "acc-1")
	log.Debug("deleting")
	require.Contains(t, buf.String(), "account=acc-1")
}
