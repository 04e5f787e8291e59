package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jkleczar/wypadek/internal/ceidg"
	"github.com/jkleczar/wypadek/internal/chat"
	"github.com/jkleczar/wypadek/internal/config"
	"github.com/jkleczar/wypadek/internal/db"
)

// openStore opens the report database configured in cfg.
func openStore(cfg config.Config) (*db.Store, func(), error) {
	path := cfg.DBPath
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	database, err := db.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return db.NewStore(database), func() { _ = database.Close() }, nil
}

// newRegistry builds the CEIDG lookup, or nil when not configured.
func newRegistry(cfg config.Config) chat.Registry {
	if cfg.CEIDG.BaseURL == "" {
		return nil
	}
	token := cfg.CEIDG.Token
	if env := os.Getenv("CEIDG_TOKEN"); env != "" {
		token = env
	}
	return ceidg.New(cfg.CEIDG.BaseURL, token, time.Duration(cfg.CEIDG.TimeoutSec)*time.Second)
}

// newChatBackend builds the configured conversational backend.
func newChatBackend(ctx context.Context, cfg config.Config) (chat.Backend, error) {
	switch cfg.Chat.Backend {
	case "", config.ChatBackendScripted:
		return chat.NewScripted(newRegistry(cfg))
	case config.ChatBackendLLM:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("chat.backend is %q but GEMINI_API_KEY is not set", cfg.Chat.Backend)
		}
		return chat.NewLLM(ctx, apiKey, cfg.Chat.Model)
	default:
		return nil, fmt.Errorf("unknown chat backend %q", cfg.Chat.Backend)
	}
}
