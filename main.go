package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	v          = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "wordmark",
	Short: "Serve web pages with related words highlighted",
	Long: `wordmark fetches an allow-listed web page and a word list from a
Datamuse-style lookup API, and returns the page with every occurrence of those
words (and simple variants such as plurals and -ing/-ed forms) highlighted.

  GET /?srcurl=https://en.wikipedia.org/wiki/Crossword&ml=puzzle

All parameters other than srcurl are passed to the lookup API.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the highlighting HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, toml or json)")

	flags := rootCmd.PersistentFlags()
	flags.String("addr", ":8080", "listen address")
	flags.String("words-api-url", "https://api.datamuse.com/words", "word lookup API endpoint")
	flags.Bool("respect-robots", false, "refuse pages disallowed by robots.txt")
	flags.Bool("banner", false, "add an attribution banner to marked pages")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text or json)")

	for _, name := range []string{"addr", "words-api-url", "respect-robots", "banner", "log-level", "log-format"} {
		_ = v.BindPFlag(flagKey(name), flags.Lookup(name))
	}

	rootCmd.AddCommand(serveCmd)
}

// flagKey maps a flag name to its config key
func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(v, configFile)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, os.Stderr)
	slog.SetDefault(logger)

	server := NewServer(cfg, logger)
	e := server.Routes()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.Int("allowed_roots", len(cfg.AllowedRoots)),
			slog.Bool("respect_robots", cfg.RespectRobots),
		)
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	snap := server.stats.Snapshot()
	logger.Info("server stopped",
		slog.Int64("pages_served", snap.PagesServed),
		slog.Int64("pages_failed", snap.PagesFailed),
		slog.Int64("words_highlighted", snap.WordsHighlighted),
	)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
