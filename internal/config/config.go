// Package config holds application configuration read from the environment.
package config

import (
	"os"
	"path/filepath"
	"sync"
)

// Config holds all application configuration.
type Config struct {
	// External AI service
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	ChatModel       string
	TranscribeModel string

	// Data directory (database + logs)
	DataDir string

	// Debug settings
	LogLevel string
}

var (
	cfg  *Config
	once sync.Once
)

// Get returns the global configuration (singleton).
func Get() *Config {
	once.Do(func() {
		cfg = load()
	})
	return cfg
}

func load() *Config {
	return &Config{
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ChatModel:       getEnv("ESCRIBA_CHAT_MODEL", "gpt-4o-mini"),
		TranscribeModel: getEnv("ESCRIBA_TRANSCRIBE_MODEL", "whisper-1"),
		DataDir:         getEnv("ESCRIBA_DATA_DIR", defaultDataDir()),
		LogLevel:        getEnv("ESCRIBA_LOG_LEVEL", "info"),
	}
}

// DatabasePath returns the sqlite database path under the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "escriba.sqlite")
}

// LogPath returns the log file path under the data directory.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "escriba.log")
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".escriba"
	}
	return filepath.Join(base, "escriba")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
