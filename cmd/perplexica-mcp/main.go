// Perplexica-mcp exposes a Perplexica search deployment as MCP tools over
// stdio. It loads configuration from the environment (optionally topped up
// from a YAML file), then serves the perplexica_search and
// perplexica_providers tools until the transport closes.
//
// Stdout carries the MCP protocol; all logging goes to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/germanamz/perplexica-mcp/pkg/perplexica"
	"github.com/germanamz/perplexica-mcp/pkg/tools/mcpserver"
	"github.com/germanamz/perplexica-mcp/pkg/tools/toolbox"
)

const serverName = "perplexica-mcp"

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\nServe Perplexica search tools over MCP on stdio.\n\nFlags:\n", serverName)
		flag.PrintDefaults()
	}

	configPath := flag.String("config", "", "path to optional YAML configuration file")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(*configPath, *envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, envFile string) error {
	if err := loadDotEnv(envFile); err != nil {
		return err
	}

	cfg, err := perplexica.Load(configPath)
	if err != nil {
		return err
	}

	client := perplexica.NewClient(cfg.BaseURL)

	tb := toolbox.New()
	tb.Register(perplexica.Tools(cfg, client, slog.Default())...)

	server := mcpserver.New(serverName, version, perplexica.ServerInstructions)
	server.Register(tb.Tools()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("serving MCP on stdio", "base_url", cfg.BaseURL, "version", version)

	err = server.Serve(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}
