package imagegen

import (
	"strings"

	"aigateway/pkg/types"
)

// Sizes accepted by the gateway.
const (
	SizeSmall  = "512x512"
	SizeMedium = "768x768"
	SizeLarge  = "1024x1024"
)

// Request defaults.
const (
	DefaultSize          = SizeMedium
	DefaultStyle         = StyleRealistic
	DefaultGuidanceScale = 7.5
	DefaultSteps         = 20
	DefaultNumImages     = 1
)

// Sizes lists the size options.
func Sizes() types.SizesResponse {
	return types.SizesResponse{
		Sizes: []types.SizeOption{
			{ID: SizeSmall, Name: "Small", Dimensions: SizeSmall},
			{ID: SizeMedium, Name: "Medium", Dimensions: SizeMedium},
			{ID: SizeLarge, Name: "Large", Dimensions: SizeLarge},
		},
		DefaultSize: DefaultSize,
	}
}

// Styles lists the style options.
func Styles() types.StylesResponse {
	ids := []string{StyleRealistic, StyleArtistic, StyleCartoon, StyleAbstract}
	out := make([]types.StyleOption, 0, len(ids))
	for _, id := range ids {
		name := strings.ToUpper(id[:1]) + id[1:]
		out = append(out, types.StyleOption{ID: id, Name: name, Description: name + " style"})
	}
	return types.StylesResponse{Styles: out, DefaultStyle: DefaultStyle}
}
