package imagegen

// Styles accepted by the gateway.
const (
	StyleRealistic = "realistic"
	StyleArtistic  = "artistic"
	StyleCartoon   = "cartoon"
	StyleAbstract  = "abstract"
)

const baseNegative = "blurry, low quality, distorted, deformed, ugly, bad anatomy"

var styleEnhancements = map[string]string{
	StyleRealistic: "photorealistic, high quality, detailed, professional photography",
	StyleArtistic:  "artistic, creative, beautiful composition, masterpiece",
	StyleCartoon:   "cartoon style, animated, colorful, stylized",
	StyleAbstract:  "abstract art, creative, unique, artistic interpretation",
}

var styleExclusions = map[string]string{
	StyleRealistic: "cartoon, anime, painting, drawing, sketch",
	StyleArtistic:  "photograph, realistic",
	StyleCartoon:   "realistic, photograph, dark, gritty",
	StyleAbstract:  "realistic, literal, obvious",
}

// EnhancePrompt appends the style's enhancement phrase. Unknown styles leave
// the prompt unchanged.
func EnhancePrompt(prompt, style string) string {
	if e, ok := styleEnhancements[style]; ok {
		return prompt + ", " + e
	}
	return prompt
}

// DefaultNegative returns the base negative phrase extended with the style's
// exclusions.
func DefaultNegative(style string) string {
	if x, ok := styleExclusions[style]; ok {
		return baseNegative + ", " + x
	}
	return baseNegative
}

// ComposePrompt returns the prompt and negative prompt sent to the provider.
func ComposePrompt(prompt, negative, style string) (string, string) {
	def := DefaultNegative(style)
	if negative != "" {
		return EnhancePrompt(prompt, style), negative + ", " + def
	}
	return EnhancePrompt(prompt, style), def
}
