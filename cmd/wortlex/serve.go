package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/ZaguanLabs/wortlex"
	"github.com/ZaguanLabs/wortlex/httpapi"
	"github.com/spf13/cobra"
)

func (c *cli) newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve lookups over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.load()
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			return serve(cmd.Context(), a, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from SERVER_ADDR)")
	return cmd
}

// serve runs the HTTP server until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, a *app, addr string) error {
	opts := wortlex.DefaultLookupOptions()
	opts.UILanguage = a.cfg.Dictionary.UILanguage

	srv := &http.Server{
		Addr:         addr,
		Handler:      httpapi.NewHandler(a.dict, opts, a.logger).Routes(),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", slog.String("addr", addr), slog.String("version", wortlex.FullVersion()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	a.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (c *cli) newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Cache maintenance",
	}
	cmd.AddCommand(c.newCacheExportCommand())
	return cmd
}

func (c *cli) newCacheExportCommand() *cobra.Command {
	var (
		wordsFile   string
		dir         string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Warm the memory cache and write it to a snapshot file",
		Long: "Looks up every word of --words (one per line) and writes the resulting\n" +
			"memory cache, including any loaded CACHE_SNAPSHOT, to FILE.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, err := wortlex.ParseDirection(dir)
			if err != nil {
				return err
			}

			a, err := c.load()
			if err != nil {
				return err
			}
			defer a.Close()

			if wordsFile != "" {
				words, err := readWords(wordsFile)
				if err != nil {
					return err
				}
				failed := 0
				for _, r := range a.dict.LookupBatch(cmd.Context(), words, direction, concurrency) {
					if r.Err != nil {
						failed++
						a.logger.Warn("warming failed", slog.String("word", r.Word), slog.String("error", r.Err.Error()))
					}
				}
				fmt.Fprintf(c.stderr, "looked up %d words, %d failed\n", len(words), failed)
			}

			if err := a.saveSnapshot(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "wrote %d entries to %s\n", a.dict.CacheStats().Size, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&wordsFile, "words", "", "File with one word per line to look up first")
	cmd.Flags().StringVarP(&dir, "dir", "d", string(wortlex.DirectionDeRu), "Direction used for --words")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", wortlex.DefaultBatchConcurrency, "Parallel lookups for --words")
	return cmd
}

// readWords returns the non-empty, non-comment lines of path.
func readWords(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return nil, fmt.Errorf("opening words file: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading words file: %w", err)
	}
	return words, nil
}
