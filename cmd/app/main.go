package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/vaultgraph/internal"
	pkgconfig "github.com/starford/vaultgraph/pkg/config"
)

var version = "dev"

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()

	// The config file is optional; flags and defaults cover the common case.
	if _, err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if v := cmd.String("vault"); v != "" {
		cfg.Vault.Path = v
	}
	if v := cmd.String("output"); v != "" {
		cfg.Output.Dir = v
	}
	if v := cmd.String("base-url"); v != "" {
		cfg.Site.BaseURL = v
	}

	if err := pkgconfig.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func action(fn func(context.Context, ...internal.Option) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := []internal.Option{
			internal.WithConfig(cfg),
			internal.WithVersion(version),
		}

		if err := fn(ctx, opts...); err != nil {
			return fmt.Errorf("app run error: %w", err)
		}
		return nil
	}
}

func main() {
	cmd := &cli.Command{
		Name:    "vaultgraph",
		Usage:   "Build an interactive link graph of a Markdown vault",
		Version: version,
		Action:  action(internal.Build),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "vault",
				Usage:   "Vault root directory",
				Sources: cli.EnvVars("VAULTGRAPH_VAULT"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory the graph page is written to",
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Public base URL node links point into",
				Sources: cli.EnvVars("VAULTGRAPH_BASE_URL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Scan the vault and write the graph page",
				Action: action(internal.Build),
			},
			{
				Name:   "serve",
				Usage:  "Serve the graph over HTTP and rebuild it on change",
				Action: action(internal.Serve),
			},
			{
				Name:   "mcp",
				Usage:  "Expose the graph to MCP clients over stdio",
				Action: action(internal.ServeMCP),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
