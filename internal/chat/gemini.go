package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Turn is one message of prior conversation as the backend sees it.
type Turn struct {
	// Role is "user" or "model".
	Role string
	Text string
}

// Request is one backend completion call.
type Request struct {
	Model       string
	Message     string
	History     []Turn
	MaxTokens   int
	Temperature float64
	TopP        float64
	TopK        int
}

// Backend produces a reply for a conversation.
type Backend interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// GeminiBackend calls Google Gemini through the generative-ai-go SDK.
type GeminiBackend struct {
	client *genai.Client
}

// NewGeminiBackend creates a Gemini client authenticated with apiKey.
func NewGeminiBackend(ctx context.Context, apiKey string, opts ...option.ClientOption) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &GeminiBackend{client: client}, nil
}

// Close releases the underlying client.
func (b *GeminiBackend) Close() error { return b.client.Close() }

// Complete starts a chat seeded with req.History and sends req.Message.
func (b *GeminiBackend) Complete(ctx context.Context, req Request) (string, error) {
	model := b.client.GenerativeModel(req.Model)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	model.SetTemperature(float32(req.Temperature))
	if req.TopP > 0 {
		model.SetTopP(float32(req.TopP))
	}
	if req.TopK > 0 {
		model.SetTopK(int32(req.TopK))
	}

	cs := model.StartChat()
	for _, t := range req.History {
		cs.History = append(cs.History, &genai.Content{Role: t.Role, Parts: []genai.Part{genai.Text(t.Text)}})
	}
	resp, err := cs.SendMessage(ctx, genai.Text(req.Message))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no content generated")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}
