// internal/util/logger_test.go
package util

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" DEBUG ": slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestIsError(t *testing.T) {
	wrapped := fmt.Errorf("buy: %w", ErrInsufficientFunds)
	assert.True(t, IsError(wrapped, ErrInsufficientFunds))
	assert.False(t, IsError(wrapped, ErrInvalidAmount))
}
