package types

import "time"

// GenerationRequest is the payload of POST /api/images/generate.
// Pointer fields distinguish "absent" (default applies) from an explicit value.
type GenerationRequest struct {
	// Text prompt for image generation.
	// example: a cat
	Prompt string `json:"prompt" validate:"required,notblank,max=1000" example:"a cat"`
	// What to avoid in the image.
	// example: text, watermark
	NegativePrompt string `json:"negative_prompt,omitempty" validate:"max=500" example:"text, watermark"`
	// Image dimensions.
	// example: 768x768
	Size string `json:"size,omitempty" validate:"omitempty,oneof=512x512 768x768 1024x1024" example:"768x768"`
	// Image style.
	// example: realistic
	Style string `json:"style,omitempty" validate:"omitempty,oneof=realistic artistic cartoon abstract" example:"realistic"`
	// Model key.
	// example: sdxl
	Model string `json:"model,omitempty" validate:"omitempty,image_model" example:"sdxl"`
	// Number of images to generate.
	// example: 1
	NumImages *int `json:"num_images,omitempty" validate:"omitempty,min=1,max=4" example:"1"`
	// How closely to follow the prompt.
	// example: 7.5
	GuidanceScale *float64 `json:"guidance_scale,omitempty" validate:"omitempty,min=1,max=20" example:"7.5"`
	// Number of denoising steps.
	// example: 20
	Steps *int `json:"steps,omitempty" validate:"omitempty,min=10,max=50" example:"20"`
	// Random seed for reproducibility.
	// example: 42
	Seed *int64 `json:"seed,omitempty" example:"42"`
}

// GeneratedImage is one image produced by a generation request.
type GeneratedImage struct {
	// Inline data URI of the image.
	ImageURL string `json:"image_url"`
	// Base64-encoded image bytes.
	ImageData string `json:"image_data,omitempty"`
	// Size of the image returned by the provider, before any resize.
	// example: 1048576
	OriginalSizeBytes int `json:"original_size_bytes" example:"1048576"`
	// Prompt actually sent to the provider.
	// example: a cat, cartoon style, animated, colorful, stylized
	Prompt string `json:"prompt" example:"a cat, cartoon style, animated, colorful, stylized"`
	// Negative prompt actually sent to the provider.
	NegativePrompt string `json:"negative_prompt,omitempty"`
	// Resolved generation parameters.
	GenerationParams map[string]any `json:"generation_params"`
	// Creation time.
	Timestamp time.Time `json:"timestamp"`
	// example: img_1700000000
	ImageID string `json:"image_id" example:"img_1700000000"`
}

// GenerationResult is returned by POST /api/images/generate.
type GenerationResult struct {
	Images []GeneratedImage `json:"images"`
	// Elapsed seconds.
	// example: 12.5
	GenerationTime float64 `json:"generation_time" example:"12.5"`
	// Snapshot of the model that served the request.
	ModelInfo map[string]any `json:"model_info"`
	// example: req_1700000000
	RequestID string `json:"request_id" example:"req_1700000000"`
}

// ImageModelsResponse is returned by GET /api/images/models.
type ImageModelsResponse struct {
	Models []ImageModel `json:"models"`
	// example: sdxl
	DefaultModel string `json:"default_model" example:"sdxl"`
}

// SizeOption is one entry of GET /api/images/sizes.
type SizeOption struct {
	// example: 512x512
	ID string `json:"id" example:"512x512"`
	// example: Small
	Name string `json:"name" example:"Small"`
	// example: 512x512
	Dimensions string `json:"dimensions" example:"512x512"`
}

// SizesResponse is returned by GET /api/images/sizes.
type SizesResponse struct {
	Sizes []SizeOption `json:"sizes"`
	// example: 768x768
	DefaultSize string `json:"default_size" example:"768x768"`
}

// StyleOption is one entry of GET /api/images/styles.
type StyleOption struct {
	// example: cartoon
	ID string `json:"id" example:"cartoon"`
	// example: Cartoon
	Name string `json:"name" example:"Cartoon"`
	// example: Cartoon style
	Description string `json:"description" example:"Cartoon style"`
}

// StylesResponse is returned by GET /api/images/styles.
type StylesResponse struct {
	Styles []StyleOption `json:"styles"`
	// example: realistic
	DefaultStyle string `json:"default_style" example:"realistic"`
}

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	// One of user, assistant, system.
	// example: user
	Role string `json:"role" validate:"required,oneof=user assistant system" example:"user"`
	// example: Hello!
	Content   string         `json:"content" validate:"required" example:"Hello!"`
	Timestamp *time.Time     `json:"timestamp,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// ChatRequest is the payload of POST /api/chat/message.
type ChatRequest struct {
	// example: Tell me a joke
	Message             string        `json:"message" validate:"required,notblank,max=2000" example:"Tell me a joke"`
	ConversationHistory []ChatMessage `json:"conversation_history,omitempty" validate:"dive"`
	// example: 1000
	MaxTokens *int `json:"max_tokens,omitempty" validate:"omitempty,min=1,max=4000" example:"1000"`
	// example: 0.7
	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,min=0,max=2" example:"0.7"`
}

// ChatResponse is returned by POST /api/chat/message.
type ChatResponse struct {
	// example: Why did the gopher cross the road?
	Response       string    `json:"response" example:"Why did the gopher cross the road?"`
	ConversationID string    `json:"conversation_id,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	// example: 42
	TokensUsed int            `json:"tokens_used" example:"42"`
	ModelInfo  map[string]any `json:"model_info"`
}

// ChatModelsResponse is returned by GET /api/chat/models.
type ChatModelsResponse struct {
	Models []ChatModel `json:"models"`
	// example: gemini-1.5-flash
	DefaultModel string `json:"default_model" example:"gemini-1.5-flash"`
}

// ServiceHealth is returned by the per-service health endpoints.
type ServiceHealth struct {
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// example: huggingface
	Service string `json:"service" example:"huggingface"`
}

// AppHealth is returned by GET /health.
type AppHealth struct {
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// example: My-AI
	AppName string `json:"app_name" example:"My-AI"`
	// example: 1.0.0
	Version string `json:"version" example:"1.0.0"`
	// example: false
	Debug bool `json:"debug" example:"false"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Short error title.
	// example: Validation error
	Error string `json:"error" example:"Validation error"`
	// Human-readable detail safe to show to clients.
	// example: prompt is required
	Detail string `json:"detail,omitempty" example:"prompt is required"`
	// Machine-readable error code.
	// example: validation_error
	ErrorCode string    `json:"error_code,omitempty" example:"validation_error"`
	Timestamp time.Time `json:"timestamp"`
}
