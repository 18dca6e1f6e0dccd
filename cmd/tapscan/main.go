// Command tapscan audits the tap targets of a page.
//
// Usage:
//
//	tapscan -url https://example.com          # audit a live page
//	tapscan -html page.html                   # audit a static HTML file
//	tapscan -config tapscan.yaml              # audit every configured URL
//	tapscan -mcp                              # serve the audit tools over MCP stdio
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/tapscan/tapscan/gatherer"
	"github.com/tapscan/tapscan/htmldom"
	"github.com/tapscan/tapscan/report"
	"github.com/tapscan/tapscan/score"
)

func main() {
	pageURL := flag.String("url", "", "audit a single live URL")
	htmlPath := flag.String("html", "", "audit a static HTML file")
	configPath := flag.String("config", "", "path to tapscan.yaml config file")
	dbPath := flag.String("db", "", "SQLite database for run history")
	markdown := flag.Bool("md", false, "print the report as Markdown instead of JSON")
	mcpStdio := flag.Bool("mcp", false, "serve the audit tools over MCP stdio")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *pageURL, *htmlPath, *configPath, *dbPath, *markdown, *mcpStdio); err != nil {
		logger.Error("tapscan: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, pageURL, htmlPath, configPath, dbPath string, markdown, mcpStdio bool) error {
	cfg := &fileConfig{DB: dbPath}
	if configPath != "" {
		loaded, err := loadConfigFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if dbPath != "" {
			cfg.DB = dbPath
		}
	}

	if htmlPath != "" {
		return runStatic(ctx, htmlPath, cfg, markdown)
	}
	if pageURL != "" {
		return runLive(ctx, logger, cfg, []string{pageURL}, markdown)
	}
	if mcpStdio {
		return runMCP(ctx, logger, cfg)
	}
	if configPath != "" && len(cfg.URLs) > 0 {
		return runLive(ctx, logger, cfg, cfg.URLs, markdown)
	}

	fmt.Fprintln(os.Stderr, "usage: tapscan -url <url> | -html <file> | -config <file> | -mcp")
	os.Exit(1)
	return nil
}

// runStatic audits an HTML file without a browser. Geometry comes from
// inline styles only, so the size/overlap findings cover whatever the
// markup declares.
func runStatic(ctx context.Context, path string, cfg *fileConfig, markdown bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := htmldom.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	targets := doc.Finder().CollectTapTargets()
	findings := score.Evaluate(targets)
	r := report.NewBuilder().Build(path, targets, findings)

	if cfg.DB != "" {
		store, err := report.OpenStore(cfg.DB)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(ctx, r); err != nil {
			return err
		}
	}

	return printReport(r, markdown)
}

func runLive(ctx context.Context, logger *slog.Logger, cfg *fileConfig, urls []string, markdown bool) error {
	a, cleanup, err := newAuditor(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, u := range urls {
		r, err := a.Audit(ctx, u)
		if err != nil {
			return fmt.Errorf("audit %s: %w", u, err)
		}
		if err := printReport(r, markdown); err != nil {
			return err
		}
	}
	return nil
}

func runMCP(ctx context.Context, logger *slog.Logger, cfg *fileConfig) error {
	a, cleanup, err := newAuditor(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "tapscan",
		Version: "1.0.0",
	}, nil)
	a.RegisterMCP(srv)

	logger.Info("tapscan: MCP stdio serving")
	return srv.Run(ctx, &mcp.StdioTransport{})
}

func newAuditor(ctx context.Context, logger *slog.Logger, cfg *fileConfig) (*gatherer.Auditor, func(), error) {
	g := gatherer.New(gatherer.Config{
		RemoteURL:       cfg.Browser.Remote,
		NoStealth:       cfg.Browser.NoStealth,
		NavigateTimeout: cfg.Browser.NavigateTimeout,
		Logger:          logger,
	})
	if err := g.Start(ctx); err != nil {
		return nil, nil, err
	}

	var opts []gatherer.AuditorOption
	var store *report.Store
	if cfg.DB != "" {
		s, err := report.OpenStore(cfg.DB)
		if err != nil {
			g.Close()
			return nil, nil, err
		}
		store = s
		opts = append(opts, gatherer.WithStore(s))
	}

	cleanup := func() {
		if store != nil {
			store.Close()
		}
		g.Close()
	}
	return gatherer.NewAuditor(g, opts...), cleanup, nil
}

func printReport(r *report.Report, markdown bool) error {
	if markdown {
		md, err := report.RenderMarkdown(r)
		if err != nil {
			return err
		}
		fmt.Print(md)
		return nil
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	os.Stdout.Write(data)
	os.Stdout.Write([]byte("\n"))
	return nil
}
