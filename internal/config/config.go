package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func init() {
	// Auto-load .env file if present (don't override existing env vars)
	loadDotEnv(".env")
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		// Remove surrounding quotes
		if len(val) >= 2 && ((val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'')) {
			val = val[1 : len(val)-1]
		}
		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, val)
		}
	}
}

const (
	defaultPort           = "3001"
	defaultHost           = "0.0.0.0"
	defaultAllowedOrigin  = "*"
	defaultOpenAIBaseURL  = "https://api.openai.com/v1"
	defaultOpenAIModel    = "gpt-3.5-turbo"
	defaultCharactersFile = "data/characters.json"
)

// OpenAIConfig holds the external completion provider settings. An empty
// APIKey disables provider calls entirely; the server then answers every
// chat turn from the scripted fallback.
type OpenAIConfig struct {
	BaseURL string
	Model   string
	APIKey  string
}

// Enabled reports whether provider calls are configured.
func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

type Config struct {
	Port           string
	Host           string
	AllowedOrigin  string
	CharactersFile string
	OpenAI         OpenAIConfig
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

func Load() (Config, error) {
	cfg := Config{
		Port: firstNonEmpty(strings.TrimSpace(os.Getenv("PORT")), defaultPort),
		Host: firstNonEmpty(strings.TrimSpace(os.Getenv("HOST")), defaultHost),
		AllowedOrigin: firstNonEmpty(
			strings.TrimSpace(os.Getenv("ALLOWED_ORIGIN")),
			defaultAllowedOrigin,
		),
		CharactersFile: firstNonEmpty(
			strings.TrimSpace(os.Getenv("CHARACTERS_FILE")),
			defaultCharactersFile,
		),
		OpenAI: OpenAIConfig{
			// Short names take precedence over the OPENAI_-prefixed
			// aliases kept for compatibility with older deployments.
			BaseURL: firstNonEmpty(
				strings.TrimSpace(os.Getenv("BASE_URL")),
				strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
				defaultOpenAIBaseURL,
			),
			Model: firstNonEmpty(
				strings.TrimSpace(os.Getenv("MODEL")),
				strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
				defaultOpenAIModel,
			),
			APIKey: firstNonEmpty(
				strings.TrimSpace(os.Getenv("API_KEY")),
				strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be a valid port number: %w", err)
	}
	if c.OpenAI.BaseURL == "" {
		return fmt.Errorf("BASE_URL must not be empty")
	}
	if c.OpenAI.Model == "" {
		return fmt.Errorf("MODEL must not be empty")
	}
	if c.CharactersFile == "" {
		return fmt.Errorf("CHARACTERS_FILE must not be empty")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
