package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "warn", JSON: true})

	logger.Info("dropped")
	logger.Warn("sale not published", "invoice_number", "INV-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sale not published", entry["msg"])
	assert.Equal(t, "INV-1", entry["invoice_number"])
}

func TestNew_Tint(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{Level: "info"}).Info("server started", "port", "8080")
	assert.Contains(t, buf.String(), "server started")
}
