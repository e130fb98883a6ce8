package types

// ImageModel describes an image-generation model exposed by the gateway.
type ImageModel struct {
	// Stable key used in requests.
	// example: sdxl
	Key string `json:"id" yaml:"key" toml:"key" example:"sdxl"`
	// Provider-side model identifier (path segment of the inference URL).
	// example: stabilityai/stable-diffusion-xl-base-1.0
	ProviderID string `json:"provider_id" yaml:"provider_id" toml:"provider_id" example:"stabilityai/stable-diffusion-xl-base-1.0"`
	// Human-friendly name.
	// example: Stable Diffusion XL
	DisplayName string `json:"name" yaml:"display_name" toml:"display_name" example:"Stable Diffusion XL"`
	// Short description of the model.
	// example: High-quality, versatile image generation
	Description string `json:"description" yaml:"description" toml:"description" example:"High-quality, versatile image generation"`
	// Largest supported output resolution.
	// example: 1024x1024
	MaxResolution string `json:"max_resolution" yaml:"max_resolution" toml:"max_resolution" example:"1024x1024"`
	// Strength tags.
	// example: ["photorealistic","detailed"]
	Strengths []string `json:"strengths" yaml:"strengths" toml:"strengths"`
}

// ChatModel describes a conversational model exposed by the gateway.
type ChatModel struct {
	// example: gemini-1.5-flash
	ID string `json:"id" example:"gemini-1.5-flash"`
	// example: Google Gemini 1.5 Flash
	Name string `json:"name" example:"Google Gemini 1.5 Flash"`
	// example: Fast and efficient conversational AI model
	Description string `json:"description" example:"Fast and efficient conversational AI model"`
	// example: 4000
	MaxTokens int `json:"max_tokens" example:"4000"`
	// example: true
	SupportsConversation bool `json:"supports_conversation" example:"true"`
}
