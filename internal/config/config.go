package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates configuration for the whole service.
type Config struct {
	Server  ServerConfig
	News    NewsConfig
	Speech  SpeechConfig
	Session SessionConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	news, err := loadNewsConfig()
	if err != nil {
		return nil, err
	}

	speech, err := loadSpeechConfig()
	if err != nil {
		return nil, err
	}

	sess, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, News: news, Speech: speech, Session: sess}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// NewsConfig describes the news provider client.
type NewsConfig struct {
	APIKey  string
	BaseURL string
	Country string
	Timeout time.Duration
}

// Enabled reports whether a provider key was supplied.
func (c NewsConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadNewsConfig() (NewsConfig, error) {
	timeout, err := parseOptionalIntEnv("NEWS_TIMEOUT")
	if err != nil {
		return NewsConfig{}, err
	}
	timeoutSeconds := 10
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	return NewsConfig{
		APIKey:  strings.TrimSpace(os.Getenv("NEWS_API_KEY")),
		BaseURL: getEnvOrDefault("NEWS_BASE_URL", "https://newsapi.org/v2"),
		Country: getEnvOrDefault("NEWS_COUNTRY", "us"),
		Timeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// SpeechConfig describes the STT/TTS pass-through.
type SpeechConfig struct {
	APIKey   string
	BaseURL  string
	STTModel string
	Language string
	Timeout  time.Duration
	Enabled  bool
}

func loadSpeechConfig() (SpeechConfig, error) {
	timeout, err := parseOptionalIntEnv("SPEECH_TIMEOUT")
	if err != nil {
		return SpeechConfig{}, err
	}
	timeoutSeconds := 30
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	apiKey := strings.TrimSpace(os.Getenv("DEEPGRAM_API_KEY"))

	return SpeechConfig{
		APIKey:   apiKey,
		BaseURL:  getEnvOrDefault("DEEPGRAM_BASE_URL", "https://api.deepgram.com"),
		STTModel: getEnvOrDefault("DEEPGRAM_STT_MODEL", "nova-2"),
		Language: getEnvOrDefault("DEEPGRAM_LANGUAGE", "en-US"),
		Timeout:  time.Duration(timeoutSeconds) * time.Second,
		Enabled:  apiKey != "",
	}, nil
}

// SessionConfig describes session retention and sweeping.
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

func loadSessionConfig() (SessionConfig, error) {
	ttlMinutes := 30
	if override, err := parseOptionalIntEnv("SESSION_TTL_MINUTES"); err != nil {
		return SessionConfig{}, err
	} else if override != nil {
		if *override < 1 {
			ttlMinutes = 1
		} else {
			ttlMinutes = *override
		}
	}

	sweepSeconds := 60
	if override, err := parseOptionalIntEnv("SESSION_SWEEP_SECONDS"); err != nil {
		return SessionConfig{}, err
	} else if override != nil && *override > 0 {
		sweepSeconds = *override
	}

	return SessionConfig{
		TTL:           time.Duration(ttlMinutes) * time.Minute,
		SweepInterval: time.Duration(sweepSeconds) * time.Second,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
