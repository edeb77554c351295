// Package main provides the waypoint CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/richinex/waypoint/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	configFile string
	verbose    bool
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "waypoint",
		Short: "Learning roadmaps for technology topics",
		Long: `Generate hierarchical learning roadmaps for technology topics.

A topic is checked against a curated vocabulary (and optionally a model),
then sent to an ordered chain of providers. The first provider whose
output normalizes into a valid tree wins:
- local: a model served by Ollama (tinyllama-roadmap by default)
- hosted: gemini, openai, anthropic, deepseek

Configuration comes from the environment, a .env file, or --config.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (yaml, json or toml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	root.AddCommand(serveCmd())
	root.AddCommand(generateCmd())
	root.AddCommand(classifyCmd())
	root.AddCommand(mcpCmd())

	return root
}

func options() cli.Options {
	return cli.Options{ConfigFile: configFile, Verbose: verbose}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API:
- POST /api/generate  {"prompt": "..."}
- POST /api/resources {"topic": "..."}
- POST /api/explain   {"topic": "..."}
- GET  /health, /metrics

Local models are loaded before the listener starts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Serve(cmd.Context(), options())
		},
	}
}

func generateCmd() *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "generate [topic]",
		Short: "Generate a roadmap and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Generate(cmd.Context(), cmd.OutOrStdout(), args[0], markdown, options())
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print the roadmap as a bullet list")

	return cmd
}

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [topic]",
		Short: "Report whether a topic is technology related",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Classify(cmd.Context(), cmd.OutOrStdout(), args[0], options())
		},
	}
}

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the roadmap tools over MCP stdio",
		Long: `Serve generate_roadmap, fetch_resources and classify_topic as
Model Context Protocol tools on stdin/stdout, for use by LLM clients.

Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.MCP(cmd.Context(), version, options())
		},
	}
}
