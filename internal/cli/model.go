package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/happyhackingspace/hof"
	"github.com/happyhackingspace/hof/classifier"
	"github.com/happyhackingspace/hof/internal/config"
	"github.com/happyhackingspace/hof/internal/fetch"
	"github.com/happyhackingspace/hof/internal/present"
	"github.com/spf13/cobra"
)

func (c *CLI) newModelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "model [file]",
		Short: "Inspect a model file and check it matches the extractor",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Inspect the model hof predict would use
  hof model

  # Inspect a specific file
  hof model hof_model.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.cfg.ModelPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				found, err := hof.FindModel()
				if err != nil {
					return err
				}
				path = found
			}

			m, err := classifier.LoadModel(path)
			if err != nil {
				return err
			}
			if err := present.Model(c.stdout, path, m); err != nil {
				return err
			}

			if _, err := hof.Load(path); err != nil {
				return err
			}
			fmt.Fprintln(c.stdout, "Model matches the feature extractor.")
			return nil
		},
	}
}

func loadOrDownloadModel(ctx context.Context, cfg *config.Config) (*hof.Predictor, error) {
	if cfg.ModelPath != "" {
		slog.Debug("Loading custom model", "path", cfg.ModelPath)
		return hof.Load(cfg.ModelPath)
	}

	p, err := hof.New()
	if err == nil {
		return p, nil
	}
	if cfg.ModelURL == "" {
		return nil, fmt.Errorf("%w: pass --model or set model_url", err)
	}

	dest, err := downloadModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return hof.Load(dest)
}

// downloadModel fetches cfg.ModelURL into ModelDir. The file is validated
// before it replaces anything on disk.
func downloadModel(ctx context.Context, cfg *config.Config) (string, error) {
	dir, err := hof.ModelDir()
	if err != nil {
		return "", err
	}
	dest := filepath.Join(dir, hof.ModelFile)
	slog.Info("Model not found, downloading", "url", cfg.ModelURL, "dest", dest)

	fetcher := fetch.New(fetch.Options{
		UserAgent:        cfg.UserAgent,
		Timeout:          cfg.Timeout,
		CloudflareBypass: cfg.CloudflareBypass,
	})
	data, err := fetcher.Fetch(ctx, cfg.ModelURL)
	if err != nil {
		return "", fmt.Errorf("download model: %w", err)
	}
	m, err := classifier.ParseModel(data)
	if err != nil {
		return "", fmt.Errorf("download model: %w", err)
	}
	if err := m.SaveModel(dest); err != nil {
		return "", fmt.Errorf("save model: %w", err)
	}

	slog.Info("Model downloaded", "size", fmt.Sprintf("%.1fKB", float64(len(data))/1024))
	return dest, nil
}
