// Command wortlex looks up words for German learners.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaguanLabs/wortlex"
	"github.com/ZaguanLabs/wortlex/config"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// cli carries the writers and lazily loaded app shared by subcommands.
type cli struct {
	stdout, stderr io.Writer
	logLevel       string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           wortlex.Name,
		Short:         wortlex.Description,
		Version:       wortlex.FullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(
		c.newLookupCommand(),
		c.newLangsCommand(),
		c.newServeCommand(),
		c.newCacheCommand(),
	)
	return root
}

// load reads config and builds the app. Logs go to stderr.
func (c *cli) load() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	return newApp(cfg, config.NewLogger(cfg.Log, c.stderr))
}
