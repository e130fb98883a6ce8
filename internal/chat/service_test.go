package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aigateway/internal/apierr"
	"aigateway/pkg/types"
)

type fakeBackend struct {
	got   Request
	reply string
	err   error
	delay time.Duration
}

func (f *fakeBackend) Complete(ctx context.Context, req Request) (string, error) {
	f.got = req
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func TestReply_Defaults(t *testing.T) {
	b := &fakeBackend{reply: "why did the gopher cross the road"}
	svc := NewService(b, Config{Temperature: DefaultTemperature}, zerolog.Nop())

	resp, err := svc.Reply(context.Background(), types.ChatRequest{Message: "tell me a joke"})
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, b.got.Model)
	assert.Equal(t, DefaultMaxTokens, b.got.MaxTokens)
	assert.Equal(t, DefaultTemperature, b.got.Temperature)
	assert.Equal(t, 0.8, b.got.TopP)
	assert.Equal(t, 40, b.got.TopK)
	assert.Equal(t, 7+4, resp.TokensUsed)
	assert.Equal(t, "gemini-1.5-flash", resp.ModelInfo["model"])
	assert.Equal(t, DefaultMaxTokens, resp.ModelInfo["max_tokens"])
}

func TestReply_HistoryRolesAndOverrides(t *testing.T) {
	b := &fakeBackend{reply: "ok"}
	svc := NewService(b, Config{Temperature: 0.7}, zerolog.Nop())
	maxTokens, temp := 50, 0.0
	_, err := svc.Reply(context.Background(), types.ChatRequest{
		Message: "and then?",
		ConversationHistory: []types.ChatMessage{
			{Role: "system", Content: "be brief"},
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		},
		MaxTokens:   &maxTokens,
		Temperature: &temp,
	})
	require.NoError(t, err)
	assert.Equal(t, []Turn{{"model", "be brief"}, {"user", "hi"}, {"model", "hello"}}, b.got.History)
	assert.Equal(t, 50, b.got.MaxTokens)
	assert.Equal(t, 0.0, b.got.Temperature)
}

func TestReply_Validation(t *testing.T) {
	long := make([]byte, 2001)
	for i := range long {
		long[i] = 'a'
	}
	cases := map[string]types.ChatRequest{
		"blank":     {Message: " \t "},
		"too long":  {Message: string(long)},
		"bad role":  {Message: "x", ConversationHistory: []types.ChatMessage{{Role: "robot", Content: "x"}}},
		"temp high": {Message: "x", Temperature: func() *float64 { v := 2.5; return &v }()},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			b := &fakeBackend{reply: "ok"}
			svc := NewService(b, Config{}, zerolog.Nop())
			_, err := svc.Reply(context.Background(), req)
			assert.True(t, apierr.IsValidation(err), "got %v", err)
			assert.Empty(t, b.got.Message)
		})
	}
}

func TestReply_Timeout(t *testing.T) {
	b := &fakeBackend{reply: "late", delay: time.Second}
	svc := NewService(b, Config{Timeout: 20 * time.Millisecond}, zerolog.Nop())
	_, err := svc.Reply(context.Background(), types.ChatRequest{Message: "hi"})
	assert.True(t, apierr.IsTimeout(err), "got %v", err)
}

func TestReply_BackendError(t *testing.T) {
	b := &fakeBackend{err: errors.New("quota exceeded")}
	svc := NewService(b, Config{}, zerolog.Nop())
	_, err := svc.Reply(context.Background(), types.ChatRequest{Message: "hi"})
	e, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, apierr.KindProvider, e.Kind)
	assert.Equal(t, 500, e.StatusCode())
	assert.NotContains(t, e.Detail(), "quota")
}

func TestHealthyAndModels(t *testing.T) {
	b := &fakeBackend{reply: "Hi!"}
	svc := NewService(b, Config{}, zerolog.Nop())
	require.NoError(t, svc.Healthy(context.Background()))
	assert.Equal(t, 10, b.got.MaxTokens)

	b.reply = ""
	assert.Error(t, svc.Healthy(context.Background()))

	m := svc.Models()
	require.Len(t, m.Models, 1)
	assert.Equal(t, "Google Gemini 1.5 Flash", m.Models[0].Name)
	assert.Equal(t, "gemini-1.5-flash", m.DefaultModel)
}
