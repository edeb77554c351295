// Command execution for CLI commands.
//
// Information Hiding:
// - Settings loading and component assembly hidden
// - Transport lifecycle hidden
// - Output formatting hidden

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/richinex/waypoint/app"
	"github.com/richinex/waypoint/classifier"
	"github.com/richinex/waypoint/config"
	"github.com/richinex/waypoint/internal/logger"
	"github.com/richinex/waypoint/mcp"
	"github.com/richinex/waypoint/roadmap"
	"github.com/richinex/waypoint/server"
)

// Options holds CLI execution options.
type Options struct {
	ConfigFile string
	Verbose    bool
}

// Serve runs the HTTP server until ctx is cancelled.
func Serve(ctx context.Context, opts Options) error {
	a, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.Logger.Sync() }()

	if err := a.Warmup(ctx); err != nil {
		return err
	}

	s := a.Settings.Server
	srv := server.New(server.Config{
		Port:            s.Port,
		AllowedOrigins:  s.AllowedOrigins,
		ShutdownTimeout: s.ShutdownTimeout,
	}, a.Generator, a.Resources, a.Explainer, a.Logger.Named("http"))
	return srv.Run(ctx)
}

// MCP serves the tools over stdio until the client disconnects or ctx is
// cancelled.
func MCP(ctx context.Context, version string, opts Options) error {
	a, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.Logger.Sync() }()

	if err := a.Warmup(ctx); err != nil {
		return err
	}

	s := mcp.NewServer(version, a.Generator, a.Resources, a.Classifier, a.Logger.Named("mcp"))
	a.Logger.Info("MCP server starting on stdio")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(s)
	}()

	select {
	case <-ctx.Done():
		a.Logger.Info("shutdown signal received")
		return nil
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}

// Generate writes the response body for topic. With markdown set a
// successful roadmap is rendered as a bullet list instead.
func Generate(ctx context.Context, w io.Writer, topic string, markdown bool, opts Options) error {
	a, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.Logger.Sync() }()

	res := a.Generator.Generate(ctx, topic)
	if markdown && res.Success() {
		_, err := fmt.Fprintf(w, "# %s\n\n%s", res.Roadmap.Title, roadmap.Markdown(res.Roadmap.Tree()))
		return err
	}
	if err := writeJSON(w, res.Response()); err != nil {
		return err
	}
	if !res.Success() {
		return fmt.Errorf("generation failed: %s", res.Outcome)
	}
	return nil
}

// Classify writes the domain decision for topic.
func Classify(ctx context.Context, w io.Writer, topic string, opts Options) error {
	a, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.Logger.Sync() }()

	d := a.Classifier.Classify(ctx, topic)
	return writeJSON(w, struct {
		Topic string `json:"topic"`
		classifier.Decision
	}{topic, d})
}

// setup loads settings, builds the logger and assembles the components.
func setup(ctx context.Context, opts Options) (*app.App, error) {
	settings, err := config.Load(config.Options{ConfigFile: opts.ConfigFile})
	if err != nil {
		return nil, err
	}

	level := settings.Log.Level
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.New(level, settings.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	a, err := app.New(ctx, settings, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	log.Debug("components ready",
		zap.Strings("providers", a.Generator.Providers()),
		zap.String("verifier", settings.Generation.Verifier),
		zap.String("resources", settings.Resources.Variant),
	)
	return a, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
