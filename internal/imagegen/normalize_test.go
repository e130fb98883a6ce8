package imagegen

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y += 7 {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func fixedClock() time.Time { return time.Unix(1700000000, 0).UTC() }

func decodeData(t *testing.T, data string) []byte {
	t.Helper()
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		t.Fatalf("base64: %v", err)
	}
	return b
}

func TestNormalize_ResizesToTarget(t *testing.T) {
	raw := pngOf(t, 600, 600)
	n := NewNormalizer(zerolog.Nop(), fixedClock)
	img := n.Normalize(raw, "512x512", NormalizeContext{Size: "512x512"})

	cfg, format, err := image.DecodeConfig(bytes.NewReader(decodeData(t, img.ImageData)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != "png" || cfg.Width != 512 || cfg.Height != 512 {
		t.Fatalf("got %s %dx%d", format, cfg.Width, cfg.Height)
	}
	if img.OriginalSizeBytes != len(raw) {
		t.Fatalf("original size: %d vs %d", img.OriginalSizeBytes, len(raw))
	}
	if !strings.HasPrefix(img.ImageURL, "data:image/png;base64,") || !strings.HasSuffix(img.ImageURL, img.ImageData) {
		t.Fatalf("bad data uri prefix: %.40s", img.ImageURL)
	}
}

func TestNormalize_MatchingSizeKeepsBytes(t *testing.T) {
	raw := pngOf(t, 512, 512)
	n := NewNormalizer(zerolog.Nop(), fixedClock)
	img := n.Normalize(raw, "512x512", NormalizeContext{})
	if !bytes.Equal(decodeData(t, img.ImageData), raw) {
		t.Fatal("expected original bytes")
	}
}

func TestNormalize_DegradesOnUndecodable(t *testing.T) {
	raw := []byte("definitely not an image")
	n := NewNormalizer(zerolog.Nop(), fixedClock)
	img := n.Normalize(raw, "512x512", NormalizeContext{})
	if !bytes.Equal(decodeData(t, img.ImageData), raw) {
		t.Fatal("expected pass-through bytes")
	}
	if img.OriginalSizeBytes != len(raw) {
		t.Fatalf("original size %d", img.OriginalSizeBytes)
	}
}

func TestNormalize_Record(t *testing.T) {
	seed := int64(42)
	n := NewNormalizer(zerolog.Nop(), fixedClock)
	img := n.Normalize(pngOf(t, 8, 8), "512x512", NormalizeContext{
		OriginalPrompt: "a cat",
		Prompt:         "a cat, x",
		NegativePrompt: "neg",
		Size:           "512x512",
		Style:          "cartoon",
		GuidanceScale:  10,
		Steps:          30,
		Seed:           &seed,
		ModelName:      "Stable Diffusion XL",
	})
	if img.ImageID != "img_1700000000" {
		t.Fatalf("id %q", img.ImageID)
	}
	if !img.Timestamp.Equal(fixedClock()) {
		t.Fatalf("timestamp %v", img.Timestamp)
	}
	if img.Prompt != "a cat, x" || img.NegativePrompt != "neg" {
		t.Fatalf("prompts: %q %q", img.Prompt, img.NegativePrompt)
	}
	gp := img.GenerationParams
	if gp["original_prompt"] != "a cat" || gp["enhanced_prompt"] != "a cat, x" || gp["seed"] != int64(42) || gp["model"] != "Stable Diffusion XL" || gp["steps"] != 30 {
		t.Fatalf("params: %#v", gp)
	}

	img = n.Normalize(pngOf(t, 8, 8), "512x512", NormalizeContext{})
	if v, ok := img.GenerationParams["seed"]; !ok || v != nil {
		t.Fatalf("seed should be present and nil, got %#v", v)
	}
}
