package imagegen

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"aigateway/pkg/types"
)

// NormalizeContext carries the request values echoed back in the result.
type NormalizeContext struct {
	OriginalPrompt string
	Prompt         string
	NegativePrompt string
	Size           string
	Style          string
	GuidanceScale  float64
	Steps          int
	Seed           *int64
	ModelName      string
}

// Normalizer turns provider bytes into a GeneratedImage.
type Normalizer struct {
	log zerolog.Logger
	now func() time.Time
}

// NewNormalizer returns a Normalizer stamping results with now.
func NewNormalizer(log zerolog.Logger, now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{log: log.With().Str("component", "normalizer").Logger(), now: now}
}

// Normalize resizes raw to size when needed and builds the image record.
// Undecodable input is passed through unresized.
func (n *Normalizer) Normalize(raw []byte, size string, nc NormalizeContext) types.GeneratedImage {
	out := n.fitToSize(raw, size)
	data := base64.StdEncoding.EncodeToString(out)
	ts := n.now()
	var seed any
	if nc.Seed != nil {
		seed = *nc.Seed
	}
	return types.GeneratedImage{
		ImageURL:          "data:image/png;base64," + data,
		ImageData:         data,
		OriginalSizeBytes: len(raw),
		Prompt:            nc.Prompt,
		NegativePrompt:    nc.NegativePrompt,
		GenerationParams: map[string]any{
			"original_prompt": nc.OriginalPrompt,
			"enhanced_prompt": nc.Prompt,
			"size":            nc.Size,
			"style":           nc.Style,
			"guidance_scale":  nc.GuidanceScale,
			"steps":           nc.Steps,
			"seed":            seed,
			"model":           nc.ModelName,
		},
		Timestamp: ts,
		ImageID:   fmt.Sprintf("img_%d", ts.Unix()),
	}
}

func (n *Normalizer) fitToSize(raw []byte, size string) []byte {
	w, h, err := ParseSize(size)
	if err != nil {
		n.log.Warn().Err(err).Msg("failed to resize image")
		normalizeTotal.WithLabelValues("degraded").Inc()
		return raw
	}
	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		n.log.Warn().
			Err(err).
			Str("mime", mimetype.Detect(raw).String()).
			Int("bytes", len(raw)).
			Msg("failed to resize image, returning provider bytes")
		normalizeTotal.WithLabelValues("degraded").Inc()
		return raw
	}
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		normalizeTotal.WithLabelValues("unchanged").Inc()
		return raw
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		n.log.Warn().Err(err).Msg("failed to encode resized image")
		normalizeTotal.WithLabelValues("degraded").Inc()
		return raw
	}
	n.log.Debug().
		Str("format", format).
		Int("from_w", b.Dx()).Int("from_h", b.Dy()).
		Int("to_w", w).Int("to_h", h).
		Msg("resized image")
	normalizeTotal.WithLabelValues("resized").Inc()
	return buf.Bytes()
}
