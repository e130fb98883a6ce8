// Package imagegen implements the image-generation pipeline:
//
//   - compose.go: style-driven prompt and negative-prompt composition.
//   - adapt.go: size parsing and per-model-family parameter clamps.
//   - provider.go: Hugging Face inference client with the retry-once-on-503 policy.
//   - normalize.go: decode, resize to the requested size, encode as a data URI.
//   - admission.go: optional bound on concurrent provider calls.
//   - service.go: request validation, defaults and the pipeline itself.
//
// The HTTP layer should only use Service; the stages are exported for tests
// and the CLI.
package imagegen
