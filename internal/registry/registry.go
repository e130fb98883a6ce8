// Package registry holds the read-only table of image-generation models.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"aigateway/pkg/types"
)

// DefaultKey is the model used when a request names none or an unknown one.
const DefaultKey = "sdxl"

// Builtin returns the models the gateway ships with.
func Builtin() []types.ImageModel {
	return []types.ImageModel{
		{
			Key:           "sdxl",
			ProviderID:    "stabilityai/stable-diffusion-xl-base-1.0",
			DisplayName:   "Stable Diffusion XL",
			Description:   "High-quality, versatile image generation",
			MaxResolution: "1024x1024",
			Strengths:     []string{"photorealistic", "detailed", "versatile"},
		},
	}
}

// Registry resolves model keys to descriptors. It is immutable after New.
type Registry struct {
	models     map[string]types.ImageModel
	order      []string
	defaultKey string
}

// New builds a registry from models. Later entries override earlier ones with
// the same key. defaultKey must name one of the models.
func New(models []types.ImageModel, defaultKey string) (*Registry, error) {
	r := &Registry{models: make(map[string]types.ImageModel, len(models))}
	for _, m := range models {
		key := strings.TrimSpace(m.Key)
		if key == "" {
			return nil, fmt.Errorf("model with empty key")
		}
		if strings.TrimSpace(m.ProviderID) == "" {
			return nil, fmt.Errorf("model %q: empty provider_id", key)
		}
		m.Key = key
		m.Strengths = append([]string(nil), m.Strengths...)
		if _, dup := r.models[key]; !dup {
			r.order = append(r.order, key)
		}
		r.models[key] = m
	}
	if defaultKey == "" {
		defaultKey = DefaultKey
	}
	if _, ok := r.models[defaultKey]; !ok {
		return nil, fmt.Errorf("default model %q not in registry", defaultKey)
	}
	r.defaultKey = defaultKey
	return r, nil
}

// MustBuiltin returns a registry over Builtin with DefaultKey.
func MustBuiltin() *Registry {
	r, err := New(Builtin(), DefaultKey)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the model for key, falling back to the default model when key
// is empty or unknown. The boolean reports whether key itself matched.
func (r *Registry) Lookup(key string) (types.ImageModel, bool) {
	if m, ok := r.models[key]; ok {
		return m, true
	}
	return r.models[r.defaultKey], false
}

// Has reports whether key names a registered model.
func (r *Registry) Has(key string) bool {
	_, ok := r.models[key]
	return ok
}

// DefaultKey returns the fallback model key.
func (r *Registry) DefaultKey() string { return r.defaultKey }

// List returns models in registration order.
func (r *Registry) List() []types.ImageModel {
	out := make([]types.ImageModel, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.models[k])
	}
	return out
}

// Keys returns the registered keys sorted.
func (r *Registry) Keys() []string {
	keys := append([]string(nil), r.order...)
	sort.Strings(keys)
	return keys
}
