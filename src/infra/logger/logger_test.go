package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/src/infra/config"
)

func TestPlainFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "info", Format: "plain"}, &buf)

	WithComponent(log, "product").Info("product created", "product_id", "p1")
	log.Debug("hidden")

	assert.Equal(t, "product created component=product product_id=p1\n", buf.String())
}

func TestComponents(t *testing.T) {
	var buf bytes.Buffer
	logFor := Components(NewWithWriter(config.LogConfig{Level: "info", Format: "plain"}, &buf))

	logFor("category").Info("category deleted")
	logFor("product").Info("stock updated")

	assert.Equal(t, "category deleted component=category\nstock updated component=product\n", buf.String())
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	log.Info("dropped")
	WithRequestID(log, "req-1").Warn("slow")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "slow", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("warning").String())
	assert.Equal(t, "INFO", parseLevel("nonsense").String())
}
