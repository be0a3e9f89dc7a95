package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"founderlens/internal/cli"
	"founderlens/internal/config"
)

// runCheck runs one verification from the command line and prints the
// full JSON record to stdout.
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	query := fs.String("query", "", "Founder or startup name to verify (required)")
	pretty := fs.Bool("pretty", true, "Indent the JSON output")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	trimmed := strings.TrimSpace(*query)
	if trimmed == "" {
		fmt.Fprintln(os.Stderr, "--query is required")
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	verifier, err := bootstrap(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("check failed to build verification stack")
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout*4)
	defer cancel()

	rec, status, err := verifier.Verify(ctx, trimmed)
	if err != nil {
		logger.Error().Err(err).Str("query", trimmed).Msg("verification failed")
		fmt.Fprintf(os.Stderr, "Verification failed: %v\n", err)
		return 1
	}

	encoder := json.NewEncoder(os.Stdout)
	if *pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(rec); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode record: %v\n", err)
		return 1
	}

	logger.Info().Str("query", trimmed).Str("cache_status", status).Msg("check complete")
	return 0
}
