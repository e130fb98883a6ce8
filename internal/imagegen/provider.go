package imagegen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"aigateway/internal/apierr"
)

// ProviderName prefixes provider errors surfaced to clients.
const ProviderName = "Hugging Face API"

const (
	DefaultBaseURL   = "https://api-inference.huggingface.co/models"
	DefaultTimeout   = 120 * time.Second
	DefaultRetryWait = 15 * time.Second
)

// Invoker performs the provider call for one pipeline run.
type Invoker interface {
	Invoke(ctx context.Context, modelID string, payload Payload) ([]byte, error)
}

// ProviderConfig configures ProviderClient. Zero durations take the defaults.
type ProviderConfig struct {
	BaseURL string
	APIKey  string
	// Timeout bounds each attempt separately.
	Timeout time.Duration
	// RetryWait is the pause before the single retry on 503.
	RetryWait time.Duration
}

// ProviderClient talks to the Hugging Face inference API.
type ProviderClient struct {
	http *resty.Client
	cfg  ProviderConfig
	log  zerolog.Logger
}

// NewProviderClient constructs a client. Retries are disabled at the transport
// level; Invoke owns the retry policy.
func NewProviderClient(cfg ProviderConfig, log zerolog.Logger) *ProviderClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = DefaultRetryWait
	}
	log = log.With().Str("component", "hf-client").Logger()
	cli := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "image/png, image/jpeg, */*").
		SetRetryCount(0).
		SetLogger(restyLogger{log: log})
	return &ProviderClient{http: cli, cfg: cfg, log: log}
}

// Invoke posts payload to the model's inference endpoint and returns the raw
// image bytes. A 503 ("model is loading") is retried exactly once after
// RetryWait; every other non-200 status is returned as a provider error.
func (c *ProviderClient) Invoke(ctx context.Context, modelID string, payload Payload) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	c.log.Debug().Str("model", modelID).RawJSON("payload", body).Msg("invoking provider")

	status, respBody, err := c.attempt(ctx, modelID, body, 1)
	if err != nil {
		return nil, err
	}
	if status == http.StatusServiceUnavailable {
		c.log.Info().Str("model", modelID).Dur("wait", c.cfg.RetryWait).Msg("model is loading, waiting before retry")
		providerRetriesTotal.Inc()
		timer := time.NewTimer(c.cfg.RetryWait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		status, respBody, err = c.attempt(ctx, modelID, body, 2)
		if err != nil {
			return nil, err
		}
	}
	if status != http.StatusOK {
		c.log.Error().
			Int("status", status).
			Str("url", c.cfg.BaseURL+"/"+modelID).
			Str("body", truncate(string(respBody), 2048)).
			Msg("provider returned error")
		return nil, apierr.Provider(ProviderName, status, string(respBody))
	}
	return respBody, nil
}

func (c *ProviderClient) attempt(ctx context.Context, modelID string, body []byte, n int) (int, []byte, error) {
	actx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()
	start := time.Now()
	resp, err := c.http.R().
		SetContext(actx).
		SetBody(body).
		Post("/" + modelID)
	if err != nil {
		// Caller went away; not the provider's fault.
		if errors.Is(ctx.Err(), context.Canceled) {
			return 0, nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) || isNetTimeout(err) {
			providerAttemptsTotal.WithLabelValues("timeout").Inc()
			c.log.Error().Int("attempt", n).Dur("timeout", c.cfg.Timeout).Msg("provider request timed out")
			return 0, nil, apierr.Timeout(ProviderName, err)
		}
		providerAttemptsTotal.WithLabelValues("error").Inc()
		c.log.Error().Err(err).Int("attempt", n).Msg("provider request failed")
		return 0, nil, apierr.ProviderFailure(ProviderName, "image generation failed", err)
	}
	providerAttemptsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode())).Inc()
	c.log.Info().
		Int("attempt", n).
		Int("status", resp.StatusCode()).
		Int("bytes", len(resp.Body())).
		Dur("dur", time.Since(start)).
		Msg("provider response")
	return resp.StatusCode(), resp.Body(), nil
}

func isNetTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// restyLogger routes resty's internal messages through zerolog.
type restyLogger struct{ log zerolog.Logger }

func (l restyLogger) Errorf(format string, v ...interface{}) { l.log.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.log.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
