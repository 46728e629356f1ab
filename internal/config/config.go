// Package config loads Mudabbir settings: defaults, then the YAML file, then
// .env, then MUDABBIR_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Agent       AgentConfig      `yaml:"agent"`
	LLM         LLMConfig        `yaml:"llm"`
	Codex       CodexConfig      `yaml:"codex"`
	OpenCode    OpenCodeConfig   `yaml:"opencode"`
	Memory      MemoryConfig     `yaml:"memory"`
	Telegram    TelegramConfig   `yaml:"telegram"`
	WebSocket   WebSocketConfig  `yaml:"websocket"`
	Metrics     MetricsConfig    `yaml:"metrics"`
	Logging     LoggingConfig    `yaml:"logging"`
	Middlewares MiddlewareConfig `yaml:"middlewares"`
	Desktop     DesktopConfig    `yaml:"desktop"`
}

type AgentConfig struct {
	Backend            string        `yaml:"backend"`
	FallbackBackend    string        `yaml:"fallback_backend"`
	SystemPrompt       string        `yaml:"system_prompt,omitempty"`
	MaxConcurrent      int           `yaml:"max_concurrent"`
	FirstChunkTimeout  time.Duration `yaml:"first_chunk_timeout"`
	StreamChunkTimeout time.Duration `yaml:"stream_chunk_timeout"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // ollama, openai, anthropic, gemini
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

type CodexConfig struct {
	Binary string `yaml:"binary"`
	Model  string `yaml:"model,omitempty"`
}

type OpenCodeConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model,omitempty"`
}

type MemoryConfig struct {
	Driver string `yaml:"driver"` // memory or sqlite
	Path   string `yaml:"path"`
}

type TelegramConfig struct {
	Token          string  `yaml:"token,omitempty"`
	AllowedChatIDs []int64 `yaml:"allowed_chat_ids,omitempty"`
}

type WebSocketConfig struct {
	Addr string `yaml:"addr"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, console, auto
	File   string `yaml:"file,omitempty"`
}

type MiddlewareConfig struct {
	Disabled []string `yaml:"disabled,omitempty"`
	DebugLog string   `yaml:"debug_log"`
}

type DesktopConfig struct {
	DryRun bool `yaml:"dry_run"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Agent: AgentConfig{
			Backend:            "claude_agent_sdk",
			FallbackBackend:    "Mudabbir_native",
			MaxConcurrent:      5,
			FirstChunkTimeout:  90 * time.Second,
			StreamChunkTimeout: 120 * time.Second,
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3.2",
		},
		Codex:     CodexConfig{Binary: "codex"},
		OpenCode:  OpenCodeConfig{BaseURL: "http://localhost:4096"},
		Memory:    MemoryConfig{Driver: "memory", Path: "~/.mudabbir/memory.db"},
		WebSocket: WebSocketConfig{Addr: ":8765"},
		Metrics:   MetricsConfig{Addr: ":9464"},
		Logging:   LoggingConfig{Level: "info", Format: "auto"},
		Middlewares: MiddlewareConfig{
			DebugLog: filepath.Join("bin", "middleware.debug.jsonl"),
		},
	}
}

// DefaultPath is ~/.mudabbir/config.yaml.
func DefaultPath() string {
	return ExpandHome("~/.mudabbir/config.yaml")
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// Load reads the YAML file at path (a missing file means defaults), then .env
// and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(ExpandHome(path))
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// .env never overrides variables already set in the process.
	_ = godotenv.Load()
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	path = ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ProviderAPIKey returns the configured key, else the provider's conventional
// environment variable.
func (c *Config) ProviderAPIKey() string {
	if c.LLM.APIKey != "" {
		return c.LLM.APIKey
	}
	switch strings.ToLower(c.LLM.Provider) {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "gemini":
		if k := os.Getenv("GOOGLE_API_KEY"); k != "" {
			return k
		}
		return os.Getenv("GEMINI_API_KEY")
	}
	return ""
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Agent.Backend, "MUDABBIR_AGENT_BACKEND")
	setString(&c.Agent.FallbackBackend, "MUDABBIR_FALLBACK_BACKEND")
	setString(&c.Agent.SystemPrompt, "MUDABBIR_SYSTEM_PROMPT")
	setInt(&c.Agent.MaxConcurrent, "MUDABBIR_MAX_CONCURRENT")
	setDuration(&c.Agent.FirstChunkTimeout, "MUDABBIR_FIRST_CHUNK_TIMEOUT")
	setDuration(&c.Agent.StreamChunkTimeout, "MUDABBIR_STREAM_CHUNK_TIMEOUT")

	setString(&c.LLM.Provider, "MUDABBIR_LLM_PROVIDER")
	setString(&c.LLM.Model, "MUDABBIR_LLM_MODEL")
	setString(&c.LLM.BaseURL, "MUDABBIR_LLM_BASE_URL")
	setString(&c.LLM.APIKey, "MUDABBIR_LLM_API_KEY")

	setString(&c.Codex.Binary, "MUDABBIR_CODEX_BIN")
	setString(&c.Codex.Model, "MUDABBIR_CODEX_MODEL")
	setString(&c.OpenCode.BaseURL, "MUDABBIR_OPENCODE_URL")
	setString(&c.OpenCode.Model, "MUDABBIR_OPENCODE_MODEL")

	setString(&c.Memory.Driver, "MUDABBIR_MEMORY_DRIVER")
	setString(&c.Memory.Path, "MUDABBIR_DB_PATH")

	setString(&c.Telegram.Token, "TELEGRAM_BOT_TOKEN")
	setString(&c.Telegram.Token, "MUDABBIR_TELEGRAM_TOKEN")
	if v := os.Getenv("MUDABBIR_TELEGRAM_ALLOWED"); v != "" {
		c.Telegram.AllowedChatIDs = parseIDs(v)
	}

	setString(&c.WebSocket.Addr, "MUDABBIR_WS_ADDR")
	setString(&c.Metrics.Addr, "MUDABBIR_METRICS_ADDR")
	setString(&c.Logging.Level, "MUDABBIR_LOG_LEVEL")
	setString(&c.Logging.Format, "MUDABBIR_LOG_FORMAT")
	setString(&c.Logging.File, "MUDABBIR_LOG_FILE")

	if v := os.Getenv("MUDABBIR_DISABLED_MIDDLEWARES"); v != "" {
		c.Middlewares.Disabled = splitList(v)
	}
	if v := os.Getenv("MUDABBIR_DRY_RUN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Desktop.DryRun = b
		}
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil && d > 0 {
			*dst = d
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIDs(v string) []int64 {
	var out []int64
	for _, part := range splitList(v) {
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			out = append(out, id)
		}
	}
	return out
}
