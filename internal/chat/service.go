// Package chat forwards conversational requests to a chat backend and shapes
// the replies.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"aigateway/internal/apierr"
	"aigateway/internal/validation"
	"aigateway/pkg/types"
)

// ProviderName prefixes chat provider errors surfaced to clients.
const ProviderName = "Gemini API"

const (
	DefaultModel       = "gemini-1.5-flash"
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.7
	DefaultTimeout     = 30 * time.Second

	topP = 0.8
	topK = 40
)

var chatRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "aigateway",
		Subsystem: "chat",
		Name:      "requests_total",
		Help:      "Chat backend calls by outcome (ok, timeout, error)",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(chatRequestsTotal)
}

// Config holds the chat defaults.
type Config struct {
	Model       string
	MaxTokens   int
	Temperature float64
	// Timeout bounds each backend call.
	Timeout time.Duration
}

// Service answers chat messages.
type Service struct {
	backend  Backend
	cfg      Config
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time
}

// NewService returns a Service over backend. Zero config fields take defaults.
func NewService(backend Backend, cfg Config, log zerolog.Logger) *Service {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Service{
		backend:  backend,
		cfg:      cfg,
		validate: validation.New(),
		log:      log.With().Str("component", "chat").Logger(),
		now:      time.Now,
	}
}

// Reply validates req and asks the backend for an answer.
func (s *Service) Reply(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error) {
	if err := validation.Struct(s.validate, req); err != nil {
		return nil, err
	}
	maxTokens := s.cfg.MaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}
	temperature := s.cfg.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	history := make([]Turn, 0, len(req.ConversationHistory))
	for _, m := range req.ConversationHistory {
		role := "model"
		if m.Role == "user" {
			role = "user"
		}
		history = append(history, Turn{Role: role, Text: m.Content})
	}

	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	start := s.now()
	text, err := s.backend.Complete(cctx, Request{
		Model:       s.cfg.Model,
		Message:     req.Message,
		History:     history,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
		TopK:        topK,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(cctx.Err(), context.DeadlineExceeded) {
			chatRequestsTotal.WithLabelValues("timeout").Inc()
			s.log.Error().Dur("timeout", s.cfg.Timeout).Msg("chat request timed out")
			return nil, apierr.Timeout(ProviderName, err)
		}
		chatRequestsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Msg("chat backend error")
		return nil, apierr.ProviderFailure(ProviderName, "failed to generate response", err)
	}
	elapsed := s.now().Sub(start).Seconds()
	tokens := len(strings.Fields(text)) + len(strings.Fields(req.Message))
	chatRequestsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Float64("generation_time", elapsed).Int("tokens", tokens).Msg("chat response generated")

	return &types.ChatResponse{
		Response:   text,
		Timestamp:  s.now(),
		TokensUsed: tokens,
		ModelInfo: map[string]any{
			"model":           s.cfg.Model,
			"generation_time": elapsed,
			"temperature":     temperature,
			"max_tokens":      maxTokens,
		},
	}, nil
}

// Models lists the chat models on offer.
func (s *Service) Models() types.ChatModelsResponse {
	return types.ChatModelsResponse{
		Models: []types.ChatModel{{
			ID:                   s.cfg.Model,
			Name:                 displayName(s.cfg.Model),
			Description:          "Fast and efficient conversational AI model",
			MaxTokens:            4000,
			SupportsConversation: true,
		}},
		DefaultModel: s.cfg.Model,
	}
}

// Healthy sends a short greeting and expects a non-empty reply.
func (s *Service) Healthy(ctx context.Context) error {
	n := 10
	resp, err := s.Reply(ctx, types.ChatRequest{Message: "Hello", MaxTokens: &n})
	if err != nil {
		s.log.Warn().Err(err).Msg("health check failed")
		return err
	}
	if resp.Response == "" {
		return apierr.Unavailable("chat service returned an empty reply")
	}
	return nil
}

// displayName turns "gemini-1.5-flash" into "Google Gemini 1.5 Flash".
func displayName(model string) string {
	parts := strings.Split(model, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	name := strings.Join(parts, " ")
	if strings.HasPrefix(model, "gemini") {
		name = "Google " + name
	}
	return name
}
