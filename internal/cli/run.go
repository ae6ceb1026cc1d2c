package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/happyhackingspace/hof"
	"github.com/happyhackingspace/hof/feature"
	"github.com/happyhackingspace/hof/internal/config"
	"github.com/happyhackingspace/hof/internal/fetch"
	"github.com/happyhackingspace/hof/internal/present"
	"github.com/spf13/cobra"
)

// fetchFlags are the page retrieval flags shared by predict and features.
// A flag overrides configuration only when set on the command line.
type fetchFlags struct {
	userAgent     string
	timeout       time.Duration
	render        bool
	renderTimeout time.Duration
	cloudflare    bool
	strict        bool
	json          bool
}

func (f *fetchFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.userAgent, "user-agent", "", "User-Agent header for page requests (default \"Mozilla/5.0\")")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 30*time.Second, "Page request timeout, 0 for none")
	cmd.Flags().BoolVar(&f.render, "render", false, "Render JavaScript-driven pages in a headless browser")
	cmd.Flags().DurationVar(&f.renderTimeout, "render-timeout", 30*time.Second, "Render browser timeout")
	cmd.Flags().BoolVar(&f.cloudflare, "cloudflare-bypass", false, "Use a browser-like TLS transport for page requests")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Fail when a stat is missing instead of using its default")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print the result as JSON")
}

func (f *fetchFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("user-agent") {
		cfg.UserAgent = f.userAgent
	}
	if flags.Changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if flags.Changed("render") {
		cfg.Render = f.render
	}
	if flags.Changed("render-timeout") {
		cfg.RenderTimeout = f.renderTimeout
	}
	if flags.Changed("cloudflare-bypass") {
		cfg.CloudflareBypass = f.cloudflare
	}
}

func newFetcher(cfg *config.Config) *fetch.Fetcher {
	return fetch.New(fetch.Options{
		UserAgent:        cfg.UserAgent,
		Timeout:          cfg.Timeout,
		CloudflareBypass: cfg.CloudflareBypass,
		Render:           cfg.Render,
		RenderTimeout:    cfg.RenderTimeout,
	})
}

func (c *CLI) newPredictCommand() *cobra.Command {
	var flags fetchFlags
	var modelPath string

	cmd := &cobra.Command{
		Use:     "predict [url-or-file]",
		Aliases: []string{"run"},
		Short:   "Predict whether a player will make the Hall of Fame",
		Args:    cobra.MaximumNArgs(1),
		Example: `  # Predict from a basketball-reference player page
  hof predict https://www.basketball-reference.com/players/d/duncati01.html

  # Predict from a saved page
  hof predict duncati01.html

  # Pipe a URL or HTML from stdin
  echo "https://www.basketball-reference.com/players/d/duncati01.html" | hof predict
  curl -s https://www.basketball-reference.com/players/d/duncati01.html | hof predict

  # JSON output with a custom model file
  hof predict duncati01.html --json --model hof_model.json

  # Fail instead of zero-filling stats missing from the page
  hof predict duncati01.html --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *c.cfg
			flags.apply(cmd, &cfg)
			if cmd.Flags().Changed("model") {
				cfg.ModelPath = modelPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			fetcher := newFetcher(&cfg)

			page, target, err := c.readInput(ctx, cmd, fetcher, args)
			if err != nil {
				return c.fail(err)
			}
			if page == nil {
				return cmd.Help()
			}
			slog.Debug("HTML fetched", "target", target, "bytes", len(page))

			start := time.Now()
			p, err := loadOrDownloadModel(ctx, &cfg)
			if err != nil {
				return err
			}
			slog.Debug("Model loaded", "duration", time.Since(start))

			start = time.Now()
			result, err := p.Predict(page, feature.ExtractConfig{Strict: flags.strict})
			if err != nil {
				return c.fail(err)
			}
			slog.Debug("Prediction completed", "player", result.Player.Name,
				"missing", len(result.Player.Missing), "duration", time.Since(start))

			if flags.json {
				return present.JSON(c.stdout, result)
			}
			return present.Result(c.stdout, result)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&modelPath, "model", "", "Path to model file (default: auto-detect or download)")
	return cmd
}

func (c *CLI) newFeaturesCommand() *cobra.Command {
	var flags fetchFlags

	cmd := &cobra.Command{
		Use:   "features [url-or-file]",
		Short: "Show the stats extracted from a player page without predicting",
		Args:  cobra.MaximumNArgs(1),
		Example: `  hof features https://www.basketball-reference.com/players/j/jamesle01.html
  hof features jamesle01.html --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *c.cfg
			flags.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			fetcher := newFetcher(&cfg)

			page, target, err := c.readInput(cmd.Context(), cmd, fetcher, args)
			if err != nil {
				return c.fail(err)
			}
			if page == nil {
				return cmd.Help()
			}
			slog.Debug("HTML fetched", "target", target, "bytes", len(page))

			profile, err := feature.ExtractHTML(page, feature.ExtractConfig{Strict: flags.strict})
			if err != nil {
				return c.fail(fmt.Errorf("%w: %w", hof.ErrExtraction, err))
			}

			if flags.json {
				return present.JSON(c.stdout, profile)
			}
			return present.Profile(c.stdout, profile)
		},
	}

	flags.bind(cmd)
	return cmd
}

// readInput returns the page named by args, or read from stdin when no
// argument is given. Stdin may hold a URL or the HTML itself. A nil page with
// a nil error means there was nothing to read.
func (c *CLI) readInput(ctx context.Context, cmd *cobra.Command, fetcher *fetch.Fetcher, args []string) ([]byte, string, error) {
	if len(args) == 1 {
		target := args[0]
		slog.Debug("Fetching HTML", "target", target)
		page, err := fetcher.Fetch(ctx, target)
		return page, target, err
	}

	if c.isStdinTerminal() {
		return nil, "", nil
	}

	slog.Debug("Reading from stdin")
	body, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, "", fmt.Errorf("read stdin: %w", err)
	}
	content := strings.TrimSpace(string(body))
	if content == "" {
		return nil, "", fetch.ErrEmptyURL
	}

	if fetch.IsURL(content) {
		slog.Debug("Stdin contains URL", "url", content)
		page, err := fetcher.Fetch(ctx, content)
		return page, content, err
	}
	return []byte(content), "stdin", nil
}

func (c *CLI) isStdinTerminal() bool {
	f, ok := c.stdin.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
