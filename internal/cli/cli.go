// Package cli wires the hof commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/happyhackingspace/hof"
	"github.com/happyhackingspace/hof/internal/config"
	"github.com/happyhackingspace/hof/internal/fetch"
	"github.com/spf13/cobra"
)

const plainBanner = `
 _            __
| |__   ___  / _|
| '_ \ / _ \| |_
| | | | (_) |  _|
|_| |_|\___/|_|
`

// CLI holds the state shared by all commands of one invocation.
type CLI struct {
	version string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	verbose     bool
	silent      bool
	initialized bool
	cfg         *config.Config
}

// New returns a CLI bound to the process's standard streams.
func New(version string) *CLI {
	return &CLI{
		version: version,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// Execute runs the root command against os.Args.
func (c *CLI) Execute(ctx context.Context) error {
	return c.Root().ExecuteContext(ctx)
}

// Root builds the root command with every subcommand attached.
func (c *CLI) Root() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "hof",
		Short:        "NBA Hall of Fame predictor",
		Version:      c.version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initApp(cmd.Context())
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	rootCmd.SetIn(c.stdin)
	rootCmd.SetOut(c.stdout)
	rootCmd.SetErr(c.stderr)
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&c.silent, "silent", "s", false, "Suppress all logging and banner")

	rootCmd.AddCommand(
		c.newPredictCommand(),
		c.newFeaturesCommand(),
		c.newModelCommand(),
		c.newUpCommand(),
	)
	return rootCmd
}

func (c *CLI) initApp(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	c.initialized = true

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level, _ := cfg.SlogLevel()
	if c.verbose {
		level = slog.LevelDebug
	}
	if c.silent {
		level = slog.Level(100)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{
		Level: level,
	})))
	if !c.silent {
		label := "hof " + c.version
		fmt.Fprint(c.stderr, plainBanner+strings.Repeat(" ", 2)+label+"\n\n")
	}
	return nil
}

// fail prints the user-facing message for err and hands err back to cobra,
// which prints the detail.
func (c *CLI) fail(err error) error {
	if msg := userMessage(err); msg != "" {
		fmt.Fprintln(c.stderr, msg)
	}
	return err
}

func userMessage(err error) string {
	var fe *fetch.FetchError
	switch {
	case errors.Is(err, fetch.ErrEmptyURL):
		return "Warning: Please paste a valid Basketball Reference player URL."
	case errors.As(err, &fe):
		return "Failed to fetch player data. Please check the URL."
	case errors.Is(err, hof.ErrExtraction):
		return "Something went wrong while parsing the player's data."
	case errors.Is(err, hof.ErrPrediction):
		return "The model could not score this player."
	}
	return ""
}
