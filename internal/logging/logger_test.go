package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.in))
		})
	}
}

func TestInitWithWriter(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	t.Run("explicit level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := InitWithWriter("warn", &buf)

		logger.Info().Msg("hidden")
		logger.Warn().Str("catalog", "default").Msg("shown")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "shown")
		assert.Contains(t, out, "catalog=default")
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv(LevelEnv, "debug")
		var buf bytes.Buffer
		logger := InitWithWriter("", &buf)

		logger.Debug().Msg("strategy evaluated")

		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
		assert.Contains(t, buf.String(), "strategy evaluated")
	})
}
