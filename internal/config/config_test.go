package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "wypadek.db", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, ChatBackendScripted, cfg.Chat.Backend)
	assert.Empty(t, cfg.CEIDG.BaseURL, "registry lookup is off by default")
}

func TestValidateSettings(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateSettings(map[string]any{
			"db_path": "reports.db",
			"chat":    map[string]any{"backend": "llm", "model": "gemini-2.0-flash"},
			"ceidg":   map[string]any{"base_url": "https://dane.biznes.gov.pl/api/ceidg/v2", "timeout_sec": 5},
		})
		assert.NoError(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		err := ValidateSettings(map[string]any{
			"chat": map[string]any{"backend": "markov"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chat.backend")
	})

	t.Run("unknown key", func(t *testing.T) {
		err := ValidateSettings(map[string]any{"databse_path": "typo.db"})
		assert.Error(t, err)
	})

	t.Run("bad timeout", func(t *testing.T) {
		err := ValidateSettings(map[string]any{
			"ceidg": map[string]any{"timeout_sec": 0},
		})
		assert.Error(t, err)
	})
}
