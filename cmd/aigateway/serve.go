package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"aigateway/internal/chat"
	"aigateway/internal/config"
	"aigateway/internal/httpapi"
	"aigateway/internal/imagegen"
)

type serveOptions struct {
	host        string
	port        int
	corsOrigins string
	staticDir   string
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime(root, os.Stdout)
			if err != nil {
				return err
			}
			applyServeFlags(cmd, opts, &cfg)
			if err := cfg.Validate(true); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().StringVar(&opts.host, "host", "", "Listen host (overrides config)")
	cmd.Flags().IntVar(&opts.port, "port", 0, "Listen port (overrides config)")
	cmd.Flags().StringVar(&opts.corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins (overrides config)")
	cmd.Flags().StringVar(&opts.staticDir, "static-dir", "", "Directory holding the browser UI (overrides config)")
	return cmd
}

func applyServeFlags(cmd *cobra.Command, opts *serveOptions, cfg *config.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Host = opts.host
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = opts.port
	}
	if cmd.Flags().Changed("cors-origins") {
		cfg.AllowedOrigins = splitCSV(opts.corsOrigins)
	}
	if cmd.Flags().Changed("static-dir") {
		cfg.StaticDir = opts.staticDir
	}
}

func newImageService(cfg config.Config, log zerolog.Logger, withAdmission bool) (*imagegen.Service, error) {
	reg, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}
	client := imagegen.NewProviderClient(imagegen.ProviderConfig{
		BaseURL:   cfg.HuggingFaceBaseURL,
		APIKey:    cfg.HuggingFaceAPIKey,
		Timeout:   cfg.ImageTimeoutDuration(),
		RetryWait: cfg.ImageRetryWaitDuration(),
	}, log)
	var opts []imagegen.Option
	if withAdmission {
		opts = append(opts, imagegen.WithAdmission(cfg.MaxInflightGenerations, cfg.MaxQueueDepth, cfg.QueueWait()))
	}
	return imagegen.NewService(reg, client, log, opts...), nil
}

// configureHTTP pushes cfg into the package-level HTTP settings.
func configureHTTP(cfg config.Config, log zerolog.Logger) {
	httpapi.SetLogger(log)
	httpapi.SetAppInfo(cfg.AppName, version, cfg.Debug)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetAllowedHosts(cfg.AllowedHosts)
	httpapi.SetCORSOptions(len(cfg.AllowedOrigins) > 0, cfg.AllowedOrigins,
		[]string{"GET", "POST", "PUT", "DELETE"}, []string{"*"}, true)
	httpapi.SetStaticDir(cfg.StaticDir)
}

func serve(parent context.Context, cfg config.Config, log zerolog.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	images, err := newImageService(cfg, log, true)
	if err != nil {
		return err
	}
	backend, err := chat.NewGeminiBackend(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return err
	}
	defer backend.Close()
	chatSvc := chat.NewService(backend, chat.Config{
		Model:       cfg.ChatModel,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     cfg.ChatTimeout(),
	}, log)

	configureHTTP(cfg, log)
	httpapi.SetBaseContext(ctx)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpapi.NewMux(httpapi.Services{Images: images, Chat: chatSvc}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("app", cfg.AppName).Str("default_image_model", cfg.DefaultImageModel).Msg("aigateway listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	return nil
}
