package imagegen

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"aigateway/internal/registry"
	"aigateway/internal/validation"
	"aigateway/pkg/types"
)

// requestModelKeys are the keys accepted in GenerationRequest.Model even when
// not configured; they resolve to the default model.
var requestModelKeys = map[string]bool{
	"sdxl":       true,
	"sd_turbo":   true,
	"playground": true,
	"realistic":  true,
}

// Option configures a Service.
type Option func(*Service)

// WithAdmission bounds concurrent provider calls. maxInflight <= 0 disables it.
func WithAdmission(maxInflight, maxQueue int, maxWait time.Duration) Option {
	return func(s *Service) { s.adm = newAdmission(maxInflight, maxQueue, maxWait) }
}

// WithClock overrides the time source used for timestamps and identifiers.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service runs the image-generation pipeline.
type Service struct {
	reg      *registry.Registry
	adapter  *Adapter
	invoker  Invoker
	norm     *Normalizer
	adm      *admission
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time
}

// NewService wires the pipeline over reg and inv.
func NewService(reg *registry.Registry, inv Invoker, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		reg:     reg,
		adapter: NewAdapter(reg),
		invoker: inv,
		log:     log.With().Str("component", "imagegen").Logger(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.norm = NewNormalizer(log, s.now)
	s.validate = validation.New()
	err := s.validate.RegisterValidation("image_model", func(fl validator.FieldLevel) bool {
		key := fl.Field().String()
		return requestModelKeys[key] || reg.Has(key)
	})
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks req against the field constraints.
func (s *Service) Validate(req types.GenerationRequest) error {
	return validation.Struct(s.validate, req)
}

// resolved is a GenerationRequest with defaults applied.
type resolved struct {
	prompt    string
	negative  string
	size      string
	style     string
	model     string
	numImages int
	guidance  float64
	steps     int
	seed      *int64
}

func withDefaults(req types.GenerationRequest) resolved {
	r := resolved{
		prompt:    req.Prompt,
		negative:  req.NegativePrompt,
		size:      req.Size,
		style:     req.Style,
		model:     req.Model,
		numImages: DefaultNumImages,
		guidance:  DefaultGuidanceScale,
		steps:     DefaultSteps,
		seed:      req.Seed,
	}
	if r.size == "" {
		r.size = DefaultSize
	}
	if r.style == "" {
		r.style = DefaultStyle
	}
	if req.NumImages != nil {
		r.numImages = *req.NumImages
	}
	if req.GuidanceScale != nil {
		r.guidance = *req.GuidanceScale
	}
	if req.Steps != nil {
		r.steps = *req.Steps
	}
	return r
}

// Generate validates req and runs it through compose, adapt, invoke and
// normalize.
func (s *Service) Generate(ctx context.Context, req types.GenerationRequest) (*types.GenerationResult, error) {
	start := s.now()
	if err := s.Validate(req); err != nil {
		return nil, err
	}
	r := withDefaults(req)
	if r.model == "" {
		r.model = s.reg.DefaultKey()
	}
	log := s.log.With().Str("model", r.model).Str("size", r.size).Str("style", r.style).Logger()
	log.Debug().Str("state", "validated").Msg("pipeline")

	release, err := s.adm.begin(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("generation not admitted")
		return nil, err
	}
	defer release()

	log.Debug().Str("state", "composing").Msg("pipeline")
	prompt, negative := ComposePrompt(r.prompt, r.negative, r.style)

	log.Debug().Str("state", "adapting").Msg("pipeline")
	ad, err := s.adapter.Adapt(AdaptInput{
		ModelKey:       r.model,
		Size:           r.size,
		Steps:          r.steps,
		GuidanceScale:  r.guidance,
		NegativePrompt: negative,
		NumImages:      r.numImages,
		Seed:           r.seed,
	})
	if err != nil {
		log.Debug().Str("state", "failed").Err(err).Msg("pipeline")
		return nil, err
	}

	log.Debug().Str("state", "invoking").Str("provider_model", ad.Model.ProviderID).Msg("pipeline")
	raw, err := s.invoker.Invoke(ctx, ad.Model.ProviderID, Payload{Inputs: prompt, Parameters: ad.Parameters})
	if err != nil {
		log.Debug().Str("state", "failed").Err(err).Msg("pipeline")
		generationDuration.WithLabelValues(ad.Model.Key, "error").Observe(s.now().Sub(start).Seconds())
		return nil, err
	}

	log.Debug().Str("state", "normalizing").Int("bytes", len(raw)).Msg("pipeline")
	img := s.norm.Normalize(raw, r.size, NormalizeContext{
		OriginalPrompt: r.prompt,
		Prompt:         prompt,
		NegativePrompt: negative,
		Size:           r.size,
		Style:          r.style,
		GuidanceScale:  ad.Parameters.GuidanceScale,
		Steps:          ad.Parameters.NumInferenceSteps,
		Seed:           r.seed,
		ModelName:      ad.Model.DisplayName,
	})

	end := s.now()
	elapsed := end.Sub(start).Seconds()
	generationDuration.WithLabelValues(ad.Model.Key, "ok").Observe(elapsed)
	log.Debug().Str("state", "completed").Float64("seconds", elapsed).Msg("pipeline")
	log.Info().Float64("generation_time", elapsed).Msg("image generated")

	return &types.GenerationResult{
		Images:         []types.GeneratedImage{img},
		GenerationTime: elapsed,
		ModelInfo: map[string]any{
			"model":           ad.Model.DisplayName,
			"model_key":       ad.Model.ProviderID,
			"description":     ad.Model.Description,
			"generation_time": elapsed,
			"enhanced_prompt": prompt,
		},
		RequestID: fmt.Sprintf("req_%d", end.Unix()),
	}, nil
}

// Models lists the configured image models.
func (s *Service) Models() types.ImageModelsResponse {
	return types.ImageModelsResponse{Models: s.reg.List(), DefaultModel: s.reg.DefaultKey()}
}

// Sizes lists the accepted sizes.
func (s *Service) Sizes() types.SizesResponse { return Sizes() }

// Styles lists the accepted styles.
func (s *Service) Styles() types.StylesResponse { return Styles() }

// Healthy runs a minimal generation against the provider.
func (s *Service) Healthy(ctx context.Context) error {
	steps := 10
	_, err := s.Generate(ctx, types.GenerationRequest{Prompt: "test", Size: SizeSmall, Steps: &steps})
	if err != nil {
		s.log.Warn().Err(err).Msg("health check failed")
	}
	return err
}
