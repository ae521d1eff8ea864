package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestRedactsCredentials(t *testing.T) {
	log, logs := observed()

	log.Info("provider ready", "api_key", "sk-123", "model", "gpt-4o-mini", "tokens_used", 42)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["api_key"])
	assert.Equal(t, "gpt-4o-mini", fields["model"])
	assert.EqualValues(t, 42, fields["tokens_used"])
}

func TestEmptyCredentialStaysEmpty(t *testing.T) {
	log, logs := observed()

	log.Warn("no key", "api_key", "")

	assert.Equal(t, "", logs.All()[0].ContextMap()["api_key"])
}

func TestTruncatesModelText(t *testing.T) {
	log, logs := observed()

	log.Debug("response", "response", strings.Repeat("ş", maxTextRunes+20))

	got := logs.All()[0].ContextMap()["response"].(string)
	assert.True(t, strings.HasPrefix(got, strings.Repeat("ş", maxTextRunes)))
	assert.True(t, strings.HasSuffix(got, "(20 more)"))
}

func TestWithCarriesFields(t *testing.T) {
	log, logs := observed()

	log.With("kind", "daily", "secret", "x").Error("failed")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "daily", fields["kind"])
	assert.Equal(t, "[REDACTED]", fields["secret"])
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "off"} {
		log, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, log, mode)
	}
}

func TestOddKeyValueCount(t *testing.T) {
	assert.Equal(t, []interface{}{"a", 1, "dangling"}, sanitizeKVs([]interface{}{"a", 1, "dangling"}))
}
