package imagegen

import (
	"strconv"
	"strings"

	"aigateway/internal/apierr"
	"aigateway/internal/registry"
	"aigateway/pkg/types"
)

const (
	turboMarker   = "turbo"
	turboMaxSteps = 4
	turboMaxScale = 2.0
)

// Parameters is the "parameters" object of a Hugging Face text-to-image call.
type Parameters struct {
	NegativePrompt     string  `json:"negative_prompt"`
	Width              int     `json:"width"`
	Height             int     `json:"height"`
	GuidanceScale      float64 `json:"guidance_scale"`
	NumInferenceSteps  int     `json:"num_inference_steps"`
	NumImagesPerPrompt int     `json:"num_images_per_prompt"`
	Seed               *int64  `json:"seed,omitempty"`
}

// Payload is the request body sent to the provider.
type Payload struct {
	Inputs     string     `json:"inputs"`
	Parameters Parameters `json:"parameters"`
}

// AdaptInput carries the already-defaulted request values the adapter needs.
type AdaptInput struct {
	ModelKey       string
	Size           string
	Steps          int
	GuidanceScale  float64
	NegativePrompt string
	NumImages      int
	Seed           *int64
}

// Adapted is the resolved model plus the provider parameters.
type Adapted struct {
	Model      types.ImageModel
	Parameters Parameters
}

// Adapter maps requests onto provider parameters for a model registry.
type Adapter struct {
	reg *registry.Registry
}

// NewAdapter returns an Adapter over reg.
func NewAdapter(reg *registry.Registry) *Adapter { return &Adapter{reg: reg} }

// Adapt resolves the model and builds provider parameters, clamping steps and
// guidance for turbo-family models. It has no side effects.
func (a *Adapter) Adapt(in AdaptInput) (Adapted, error) {
	model, _ := a.reg.Lookup(in.ModelKey)
	w, h, err := ParseSize(in.Size)
	if err != nil {
		return Adapted{}, err
	}
	steps, scale := ClampForModel(model.ProviderID, in.Steps, in.GuidanceScale)
	p := Parameters{
		NegativePrompt:     in.NegativePrompt,
		Width:              w,
		Height:             h,
		GuidanceScale:      scale,
		NumInferenceSteps:  steps,
		NumImagesPerPrompt: in.NumImages,
	}
	if in.Seed != nil {
		seed := *in.Seed
		p.Seed = &seed
	}
	return Adapted{Model: model, Parameters: p}, nil
}

// IsTurbo reports whether a provider model identifier belongs to the
// few-step turbo family.
func IsTurbo(providerID string) bool {
	return strings.Contains(strings.ToLower(providerID), turboMarker)
}

// ClampForModel applies the turbo limits; other models pass through.
func ClampForModel(providerID string, steps int, scale float64) (int, float64) {
	if !IsTurbo(providerID) {
		return steps, scale
	}
	return min(steps, turboMaxSteps), min(scale, turboMaxScale)
}

// ParseSize splits "WxH" into positive integer dimensions.
func ParseSize(size string) (int, int, error) {
	ws, hs, ok := strings.Cut(size, "x")
	if !ok {
		return 0, 0, apierr.Validation("invalid size %q", size)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, apierr.Validation("invalid size %q", size)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, apierr.Validation("invalid size %q", size)
	}
	return w, h, nil
}
