package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"aigateway/internal/config"
	"aigateway/internal/logging"
	"aigateway/internal/registry"
)

var version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "aigateway",
		Short: "HTTP gateway for hosted image generation and chat models",
		Long: `aigateway fronts the Hugging Face inference API for text-to-image
generation and Google Gemini for chat.

Examples:
  aigateway serve --config config.yaml
  aigateway generate --prompt "a cat" --style cartoon --out cat.png
  aigateway models`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (.yaml, .yml, .json, .toml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format override (console, json)")

	serve := newServeCmd(opts)
	root.AddCommand(serve)
	root.AddCommand(newGenerateCmd(opts))
	root.AddCommand(newModelsCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	// bare invocation serves
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())
	return root
}

// loadRuntime resolves the effective config and builds the logger writing to w.
func loadRuntime(opts *rootOptions, w io.Writer) (config.Config, zerolog.Logger, error) {
	cfg, warnings, err := config.Resolve(opts.configPath)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.LogFormat = opts.logFormat
	}
	log, err := logging.NewWriter(w, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	for _, warn := range warnings {
		log.Warn().Err(warn).Msg("env file skipped")
	}
	return cfg, log, nil
}

func buildRegistry(cfg config.Config) (*registry.Registry, error) {
	models := append(registry.Builtin(), cfg.ImageModels...)
	reg, err := registry.New(models, cfg.DefaultImageModel)
	if err != nil {
		return nil, fmt.Errorf("image models: %w", err)
	}
	return reg, nil
}

// splitCSV splits a comma-separated list, dropping blanks.
func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
