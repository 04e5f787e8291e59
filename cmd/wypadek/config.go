package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/jkleczar/wypadek/internal/config"
)

// loadConfig reads the config file when present and falls back to the
// defaults otherwise. A present but invalid file is an error, not a
// silent fallback.
func loadConfig() (config.Config, error) {
	cfg := config.Default()

	path := viper.GetString("config")
	if path == "" {
		path = filepath.Join(".wypadek", "config.json")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	// A fresh viper keeps flag bindings out of the schema check.
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return config.Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := config.ValidateSettings(v.AllSettings()); err != nil {
		return config.Config{}, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
