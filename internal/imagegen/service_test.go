package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aigateway/internal/apierr"
	"aigateway/pkg/types"
)

type fakeInvoker struct {
	mu      sync.Mutex
	calls   int
	modelID string
	payload Payload
	body    []byte
	err     error
	// gate, when set, blocks Invoke until closed; entered is signalled first.
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeInvoker) Invoke(ctx context.Context, modelID string, p Payload) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	f.modelID = modelID
	f.payload = p
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.body, f.err
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestGenerate_CartoonScenario(t *testing.T) {
	inv := &fakeInvoker{body: pngOf(t, 512, 512)}
	svc := NewService(testRegistry(t), inv, zerolog.Nop(), WithClock(fixedClock))

	res, err := svc.Generate(context.Background(), types.GenerationRequest{
		Prompt:        "a cat",
		Size:          "512x512",
		Style:         "cartoon",
		Steps:         intp(30),
		GuidanceScale: floatp(10.0),
		NumImages:     intp(1),
	})
	require.NoError(t, err)

	assert.Equal(t, "stabilityai/stable-diffusion-xl-base-1.0", inv.modelID)
	assert.Equal(t, "a cat, cartoon style, animated, colorful, stylized", inv.payload.Inputs)
	assert.Equal(t, "blurry, low quality, distorted, deformed, ugly, bad anatomy, realistic, photograph, dark, gritty", inv.payload.Parameters.NegativePrompt)
	assert.Equal(t, 30, inv.payload.Parameters.NumInferenceSteps)
	assert.Equal(t, 10.0, inv.payload.Parameters.GuidanceScale)
	assert.Equal(t, 512, inv.payload.Parameters.Width)
	assert.Nil(t, inv.payload.Parameters.Seed)

	require.Len(t, res.Images, 1)
	img := res.Images[0]
	assert.Equal(t, inv.payload.Inputs, img.Prompt)
	assert.Equal(t, "a cat", img.GenerationParams["original_prompt"])
	assert.Equal(t, "Stable Diffusion XL", img.GenerationParams["model"])
	assert.Equal(t, "req_1700000000", res.RequestID)
	assert.Equal(t, "stabilityai/stable-diffusion-xl-base-1.0", res.ModelInfo["model_key"])
	assert.Equal(t, inv.payload.Inputs, res.ModelInfo["enhanced_prompt"])
}

func TestGenerate_Defaults(t *testing.T) {
	inv := &fakeInvoker{body: pngOf(t, 1024, 1024)}
	svc := NewService(testRegistry(t), inv, zerolog.Nop())

	res, err := svc.Generate(context.Background(), types.GenerationRequest{Prompt: "a dog"})
	require.NoError(t, err)

	p := inv.payload.Parameters
	assert.Equal(t, 768, p.Width)
	assert.Equal(t, 768, p.Height)
	assert.Equal(t, DefaultSteps, p.NumInferenceSteps)
	assert.Equal(t, DefaultGuidanceScale, p.GuidanceScale)
	assert.Equal(t, DefaultNumImages, p.NumImagesPerPrompt)
	assert.Equal(t, "a dog, photorealistic, high quality, detailed, professional photography", inv.payload.Inputs)

	raw, err := base64.StdEncoding.DecodeString(res.Images[0].ImageData)
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 768, cfg.Width)
}

func TestGenerate_TurboModelClamped(t *testing.T) {
	inv := &fakeInvoker{body: pngOf(t, 512, 512)}
	svc := NewService(testRegistry(t), inv, zerolog.Nop())
	_, err := svc.Generate(context.Background(), types.GenerationRequest{
		Prompt: "fast", Model: "sd_turbo", Size: "512x512", Steps: intp(40), GuidanceScale: floatp(12),
	})
	require.NoError(t, err)
	assert.Equal(t, "stabilityai/SD-Turbo", inv.modelID)
	assert.Equal(t, 4, inv.payload.Parameters.NumInferenceSteps)
	assert.Equal(t, 2.0, inv.payload.Parameters.GuidanceScale)
}

func TestGenerate_ValidationBeforeInvoke(t *testing.T) {
	cases := map[string]types.GenerationRequest{
		"blank prompt":  {Prompt: "   "},
		"missing":       {},
		"steps low":     {Prompt: "a", Steps: intp(5)},
		"guidance high": {Prompt: "a", GuidanceScale: floatp(25)},
		"images":        {Prompt: "a", NumImages: intp(5)},
		"size":          {Prompt: "a", Size: "640x480"},
		"style":         {Prompt: "a", Style: "sepia"},
		"model":         {Prompt: "a", Model: "dalle"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			inv := &fakeInvoker{}
			svc := NewService(testRegistry(t), inv, zerolog.Nop())
			_, err := svc.Generate(context.Background(), req)
			assert.True(t, apierr.IsValidation(err), "got %v", err)
			assert.Zero(t, inv.calls)
		})
	}
}

func TestGenerate_KnownKeyNotConfiguredFallsBack(t *testing.T) {
	inv := &fakeInvoker{body: pngOf(t, 768, 768)}
	svc := NewService(testRegistry(t), inv, zerolog.Nop())
	res, err := svc.Generate(context.Background(), types.GenerationRequest{Prompt: "a", Model: "playground"})
	require.NoError(t, err)
	assert.Equal(t, "Stable Diffusion XL", res.ModelInfo["model"])
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	want := apierr.Provider(ProviderName, 500, "boom")
	inv := &fakeInvoker{err: want}
	svc := NewService(testRegistry(t), inv, zerolog.Nop())
	_, err := svc.Generate(context.Background(), types.GenerationRequest{Prompt: "a"})
	assert.True(t, errors.Is(err, want))
}

func TestGenerate_AdmissionRejectsWhenSaturated(t *testing.T) {
	inv := &fakeInvoker{
		body:    pngOf(t, 8, 8),
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	svc := NewService(testRegistry(t), inv, zerolog.Nop(), WithAdmission(1, 0, 20*time.Millisecond))

	done := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), types.GenerationRequest{Prompt: "first"})
		done <- err
	}()
	<-inv.entered

	_, err := svc.Generate(context.Background(), types.GenerationRequest{Prompt: "second"})
	assert.True(t, apierr.IsRateLimited(err), "got %v", err)

	close(inv.gate)
	require.NoError(t, <-done)

	inv.gate = nil
	_, err = svc.Generate(context.Background(), types.GenerationRequest{Prompt: "third"})
	assert.NoError(t, err)
}

func TestHealthy(t *testing.T) {
	inv := &fakeInvoker{body: pngOf(t, 512, 512)}
	svc := NewService(testRegistry(t), inv, zerolog.Nop())
	require.NoError(t, svc.Healthy(context.Background()))
	assert.Equal(t, "test, photorealistic, high quality, detailed, professional photography", inv.payload.Inputs)
	assert.Equal(t, 10, inv.payload.Parameters.NumInferenceSteps)
	assert.Equal(t, 512, inv.payload.Parameters.Width)

	inv.err = apierr.Provider(ProviderName, 401, "unauthorized")
	assert.Error(t, svc.Healthy(context.Background()))
}

func TestCatalogs(t *testing.T) {
	sizes := Sizes()
	require.Len(t, sizes.Sizes, 3)
	assert.Equal(t, "Medium", sizes.Sizes[1].Name)
	assert.Equal(t, "768x768", sizes.DefaultSize)

	styles := Styles()
	require.Len(t, styles.Styles, 4)
	assert.Equal(t, "Cartoon style", styles.Styles[2].Description)
	assert.Equal(t, "realistic", styles.DefaultStyle)
}
