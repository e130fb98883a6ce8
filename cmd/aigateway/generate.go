package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"aigateway/pkg/types"
)

type generateOptions struct {
	prompt   string
	negative string
	size     string
	style    string
	model    string
	steps    int
	guidance float64
	seed     int64
	out      string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one image and write it to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := cfg.Validate(false); err != nil {
				return err
			}
			svc, err := newImageService(cfg, log, false)
			if err != nil {
				return err
			}

			req := types.GenerationRequest{
				Prompt:         opts.prompt,
				NegativePrompt: opts.negative,
				Size:           opts.size,
				Style:          opts.style,
				Model:          opts.model,
			}
			if cmd.Flags().Changed("steps") {
				req.Steps = &opts.steps
			}
			if cmd.Flags().Changed("guidance") {
				req.GuidanceScale = &opts.guidance
			}
			if cmd.Flags().Changed("seed") {
				req.Seed = &opts.seed
			}
			res, err := svc.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			data, err := base64.StdEncoding.DecodeString(res.Images[0].ImageData)
			if err != nil {
				return fmt.Errorf("decode image: %w", err)
			}
			out := outputPath(opts.out, mimetype.Detect(data))
			if out != opts.out {
				log.Warn().Str("requested", opts.out).Str("file", out).Msg("provider image is not PNG; adjusted file extension")
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}

			img := res.Images[0]
			img.ImageURL, img.ImageData = "", ""
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"file":            out,
				"bytes":           len(data),
				"request_id":      res.RequestID,
				"generation_time": res.GenerationTime,
				"model_info":      res.ModelInfo,
				"image":           img,
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.prompt, "prompt", "p", "", "Text prompt")
	f.StringVar(&opts.negative, "negative", "", "Negative prompt")
	f.StringVar(&opts.size, "size", "", "Image size (512x512, 768x768, 1024x1024)")
	f.StringVar(&opts.style, "style", "", "Style (realistic, artistic, cartoon, abstract)")
	f.StringVar(&opts.model, "model", "", "Image model key")
	f.IntVar(&opts.steps, "steps", 0, "Denoising steps (10-50)")
	f.Float64Var(&opts.guidance, "guidance", 0, "Guidance scale (1-20)")
	f.Int64Var(&opts.seed, "seed", 0, "Seed for reproducibility")
	f.StringVarP(&opts.out, "out", "o", "image.png", "Output file")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

// outputPath swaps a .png extension for the detected one when the provider
// bytes passed through in another format.
func outputPath(path string, mt *mimetype.MIME) string {
	if mt.Is("image/png") || mt.Extension() == "" {
		return path
	}
	ext := filepath.Ext(path)
	if !strings.EqualFold(ext, ".png") {
		return path
	}
	return strings.TrimSuffix(path, ext) + mt.Extension()
}

func newModelsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the configured image models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadRuntime(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			reg, err := buildRegistry(cfg)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(types.ImageModelsResponse{Models: reg.List(), DefaultModel: reg.DefaultKey()})
		},
	}
}

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML with secrets redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadRuntime(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cfg.GeminiAPIKey = redact(cfg.GeminiAPIKey)
			cfg.HuggingFaceAPIKey = redact(cfg.HuggingFaceAPIKey)
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check that the configuration can start the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadRuntime(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := cfg.Validate(true); err != nil {
				return err
			}
			if _, err := buildRegistry(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "configuration OK")
			return nil
		},
	})
	return cmd
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}
