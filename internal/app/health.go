package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"founderlens/internal/cli"
	"founderlens/internal/config"
	"founderlens/internal/rules"
)

// runHealth validates configuration and the embedded rule tables without
// touching the network.
func runHealth(args []string) int {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration check failed: %v\n", err)
		return 1
	}

	tables, err := rules.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Rule table check failed: %v\n", err)
		return 1
	}

	fmt.Printf("configuration ok (environment=%s)\n", cfg.Environment)
	fmt.Printf("rule tables ok (%d locations, %d industry keywords, %d controversy keywords)\n",
		len(tables.Locations), len(tables.Industries), len(tables.ControversyKeywords))
	return 0
}
