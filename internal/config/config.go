// Package config provides configuration loading and management for wypadek.
package config

// Config is the root configuration.
type Config struct {
	DBPath string      `json:"db_path" mapstructure:"db_path"`
	HTTP   HTTPConfig  `json:"http"    mapstructure:"http"`
	Chat   ChatConfig  `json:"chat"    mapstructure:"chat"`
	CEIDG  CEIDGConfig `json:"ceidg"   mapstructure:"ceidg"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr            string `json:"addr,omitempty"              mapstructure:"addr"`
	ReadTimeoutSec  int    `json:"read_timeout_sec,omitempty"  mapstructure:"read_timeout_sec"`
	WriteTimeoutSec int    `json:"write_timeout_sec,omitempty" mapstructure:"write_timeout_sec"`
}

// ChatConfig selects and tunes the conversational backend.
type ChatConfig struct {
	Backend string `json:"backend"         mapstructure:"backend"`
	Model   string `json:"model,omitempty" mapstructure:"model"`
}

// Chat backends.
const (
	ChatBackendScripted = "scripted"
	ChatBackendLLM      = "llm"
)

// CEIDGConfig configures the business registry lookup. An empty base
// URL disables the lookup and the business step degrades to manual
// entry.
type CEIDGConfig struct {
	BaseURL    string `json:"base_url,omitempty"    mapstructure:"base_url"`
	Token      string `json:"token,omitempty"       mapstructure:"token"`
	TimeoutSec int    `json:"timeout_sec,omitempty" mapstructure:"timeout_sec"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DBPath: "wypadek.db",
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 30,
		},
		Chat: ChatConfig{
			Backend: ChatBackendScripted,
			Model:   "gemini-2.0-flash",
		},
		CEIDG: CEIDGConfig{
			TimeoutSec: 10,
		},
	}
}
