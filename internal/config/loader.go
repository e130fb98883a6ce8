package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"aigateway/internal/common/fsutil"
	"aigateway/pkg/types"
)

// Config holds runtime parameters for the gateway.
// Files are decoded over Default(), so absent keys keep their defaults;
// environment variables are applied last.
type Config struct {
	AppName   string `json:"app_name" yaml:"app_name" toml:"app_name" env:"APP_NAME"`
	Debug     bool   `json:"debug" yaml:"debug" toml:"debug" env:"DEBUG"`
	Host      string `json:"host" yaml:"host" toml:"host" env:"HOST"`
	Port      int    `json:"port" yaml:"port" toml:"port" env:"PORT"`
	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format" env:"LOG_FORMAT"`

	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
	// AllowedHosts filters the Host header; "*" disables the check.
	AllowedHosts []string `json:"allowed_hosts" yaml:"allowed_hosts" toml:"allowed_hosts" env:"ALLOWED_HOSTS" envSeparator:","`
	MaxBodyBytes int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"MAX_BODY_BYTES"`
	// StaticDir, when set, serves the browser UI.
	StaticDir string `json:"static_dir" yaml:"static_dir" toml:"static_dir" env:"STATIC_DIR"`

	GeminiAPIKey   string  `json:"gemini_api_key" yaml:"gemini_api_key" toml:"gemini_api_key" env:"GEMINI_API_KEY"`
	ChatModel      string  `json:"chat_model" yaml:"chat_model" toml:"chat_model" env:"CHAT_MODEL"`
	MaxTokens      int     `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens" env:"MAX_TOKENS"`
	Temperature    float64 `json:"temperature" yaml:"temperature" toml:"temperature" env:"TEMPERATURE"`
	RequestTimeout int     `json:"request_timeout" yaml:"request_timeout" toml:"request_timeout" env:"REQUEST_TIMEOUT"`

	HuggingFaceAPIKey  string `json:"huggingface_api_key" yaml:"huggingface_api_key" toml:"huggingface_api_key" env:"HUGGINGFACE_API_KEY"`
	HuggingFaceBaseURL string `json:"huggingface_base_url" yaml:"huggingface_base_url" toml:"huggingface_base_url" env:"HUGGINGFACE_BASE_URL"`
	ImageTimeout       int    `json:"image_timeout_seconds" yaml:"image_timeout_seconds" toml:"image_timeout_seconds" env:"IMAGE_TIMEOUT_SECONDS"`
	ImageRetryWait     int    `json:"image_retry_wait_seconds" yaml:"image_retry_wait_seconds" toml:"image_retry_wait_seconds" env:"IMAGE_RETRY_WAIT_SECONDS"`
	DefaultImageModel  string `json:"default_image_model" yaml:"default_image_model" toml:"default_image_model" env:"DEFAULT_IMAGE_MODEL"`
	// ImageModels are added to the built-in models; a matching key replaces it.
	ImageModels []types.ImageModel `json:"image_models" yaml:"image_models" toml:"image_models"`

	MaxInflightGenerations int `json:"max_inflight_generations" yaml:"max_inflight_generations" toml:"max_inflight_generations" env:"MAX_INFLIGHT_GENERATIONS"`
	MaxQueueDepth          int `json:"max_queue_depth" yaml:"max_queue_depth" toml:"max_queue_depth" env:"MAX_QUEUE_DEPTH"`
	QueueWaitSeconds       int `json:"queue_wait_seconds" yaml:"queue_wait_seconds" toml:"queue_wait_seconds" env:"QUEUE_WAIT_SECONDS"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		AppName:            "My-AI",
		Host:               "0.0.0.0",
		Port:               8000,
		LogLevel:           "info",
		LogFormat:          "console",
		AllowedOrigins:     []string{"*"},
		AllowedHosts:       []string{"localhost", "127.0.0.1", "*.localhost"},
		MaxBodyBytes:       1 << 20,
		ChatModel:          "gemini-1.5-flash",
		MaxTokens:          1000,
		Temperature:        0.7,
		RequestTimeout:     30,
		HuggingFaceBaseURL: "https://api-inference.huggingface.co/models",
		ImageTimeout:       120,
		ImageRetryWait:     15,
		DefaultImageModel:  "sdxl",
		QueueWaitSeconds:   30,
	}
}

// Load reads a configuration file over Default based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnvFiles loads .env files from the working directory and its parent.
// Values in the files override the process environment.
func LoadEnvFiles(paths ...string) []error {
	if len(paths) == 0 {
		paths = []string{".env", "../.env"}
	}
	var errs []error
	for _, p := range paths {
		if !fsutil.IsFile(p) {
			continue
		}
		if err := godotenv.Overload(p); err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", p, err))
		}
	}
	return errs
}

// ApplyEnv overlays environment variables onto cfg. Unset variables leave
// the field untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env config: %w", err)
	}
	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)
	cfg.HuggingFaceAPIKey = strings.TrimSpace(cfg.HuggingFaceAPIKey)
	return nil
}

// Resolve builds the effective configuration: defaults, then the optional
// file at path, then .env files and the environment.
func Resolve(path string) (Config, []error, error) {
	warnings := LoadEnvFiles()
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, warnings, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, warnings, err
	}
	if cfg.StaticDir != "" {
		dir, err := fsutil.ExpandHome(cfg.StaticDir)
		if err != nil {
			return cfg, warnings, err
		}
		cfg.StaticDir = dir
	}
	return cfg, warnings, nil
}

// Validate checks the settings the process cannot start without. The chat key
// is only required when requireChat is set.
func (c Config) Validate(requireChat bool) error {
	if c.HuggingFaceAPIKey == "" {
		return fmt.Errorf("HUGGINGFACE_API_KEY is required")
	}
	if requireChat && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2]")
	}
	if c.StaticDir != "" && !fsutil.IsDir(c.StaticDir) {
		return fmt.Errorf("static_dir %q is not a directory", c.StaticDir)
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ChatTimeout is the per-call chat deadline.
func (c Config) ChatTimeout() time.Duration { return seconds(c.RequestTimeout) }

// ImageTimeoutDuration is the per-attempt image provider deadline.
func (c Config) ImageTimeoutDuration() time.Duration { return seconds(c.ImageTimeout) }

// ImageRetryWaitDuration is the pause before retrying a loading model.
func (c Config) ImageRetryWaitDuration() time.Duration { return seconds(c.ImageRetryWait) }

// QueueWait bounds how long a generation waits for admission.
func (c Config) QueueWait() time.Duration { return seconds(c.QueueWaitSeconds) }

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }
