package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, FormatJSON, slog.LevelInfo)
	logger.Info("merge failed", "error", errors.New("boom"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "boom", rec["err"])
	assert.NotContains(t, rec, "error")
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, FormatText, Level(false))
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger = NewWithWriter(&buf, FormatText, Level(true))
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}
