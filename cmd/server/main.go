package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/daleelhq/daleel/pkg/api"
	"github.com/daleelhq/daleel/pkg/command"
	"github.com/daleelhq/daleel/pkg/contact"
	"github.com/daleelhq/daleel/pkg/extract"
	"github.com/daleelhq/daleel/pkg/store"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

const version = "0.3.0"

type config struct {
	Addr     string       `yaml:"addr"`
	LogLevel string       `yaml:"log_level"`
	Store    store.Config `yaml:"store"`

	Dedupe struct {
		SkipEmpty bool   `yaml:"skip_empty"`
		Normalize string `yaml:"normalize"`
	} `yaml:"dedupe"`

	Search struct {
		Names     bool   `yaml:"names"`
		Emails    bool   `yaml:"emails"`
		Normalize string `yaml:"normalize"`
	} `yaml:"search"`

	Commands struct {
		Keywords command.Keywords `yaml:"keywords"`
		Replies  command.Replies  `yaml:"replies"`
	} `yaml:"commands"`

	LLM extract.Config `yaml:"llm"`
}

func main() {
	// Credentials (sheet token, LLM API keys) may live in a .env file.
	godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	case "import":
		cmdImport(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: daleel <command>

Commands:
  serve    Start the HTTP server (webhook + JSON API)
  mcp      Serve the assistant tools over MCP stdio
  import   Bulk-import contacts from a CSV or XLSX file
`)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, logger := load(*cfgPath)

	d, err := buildDispatcher(cfg, logger)
	if err != nil {
		logger.Error("setup failed", "error", err)
		os.Exit(1)
	}
	endpoints := api.NewEndpoints(d, buildExtractor(cfg, logger), logger)
	router := api.NewRouter(endpoints, logger)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// SIGINT/SIGTERM: graceful shutdown. There is no cached state to
	// reload, so no SIGHUP handling: every command re-reads the store.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("daleel listening", "addr", cfg.Addr, "backend", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, logger := load(*cfgPath)

	d, err := buildDispatcher(cfg, logger)
	if err != nil {
		logger.Error("setup failed", "error", err)
		os.Exit(1)
	}
	endpoints := api.NewEndpoints(d, buildExtractor(cfg, logger), logger)

	srv := server.NewMCPServer("daleel", version)
	api.RegisterMCPTools(srv, endpoints, d)

	logger.Info("serving MCP on stdio")
	if err := server.ServeStdio(srv); err != nil {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

func load(path string) (config, *slog.Logger) {
	cfg := config{
		Addr:     ":8420",
		LogLevel: "info",
	}

	bootstrap := slog.New(slog.NewTextHandler(os.Stderr, nil))
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			bootstrap.Error("read config", "error", err)
			os.Exit(1)
		}
		bootstrap.Info("no config file, using defaults", "path", path)
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		bootstrap.Error("parse config", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg, logger
}

func buildDispatcher(cfg config, logger *slog.Logger) (*command.Dispatcher, error) {
	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return command.NewDispatcher(command.Config{
		Store:    st,
		Keywords: cfg.Commands.Keywords,
		Replies:  cfg.Commands.Replies,
		Dedupe: contact.DedupeOptions{
			Normalize: contact.GetNormalizer(cfg.Dedupe.Normalize),
			SkipEmpty: cfg.Dedupe.SkipEmpty,
		},
		Search: contact.SearchOptions{
			Normalize: contact.GetNormalizer(cfg.Search.Normalize),
			Names:     cfg.Search.Names,
			Emails:    cfg.Search.Emails,
		},
		Logger: logger,
	}), nil
}

func buildExtractor(cfg config, logger *slog.Logger) *extract.Extractor {
	if cfg.LLM.Provider == "" {
		logger.Info("no LLM provider configured, extraction disabled")
		return nil
	}
	provider, err := extract.NewProvider(cfg.LLM)
	if err != nil {
		logger.Error("LLM provider setup failed, extraction disabled", "error", err)
		return nil
	}
	logger.Info("extraction enabled", "provider", provider.Name())
	return extract.NewExtractor(provider)
}
