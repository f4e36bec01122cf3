package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mirandavy/classdeck/internal/config"
	"github.com/mirandavy/classdeck/internal/logging"
	"github.com/mirandavy/classdeck/internal/tui"
	"github.com/mirandavy/classdeck/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("classdeck " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "logout":
			return runLogout(cfg)
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
			printHelp()
			os.Exit(2)
		}
	}

	if cfg.Token == "" {
		fmt.Println("No admin token found.")
		fmt.Println("Set CLASSDECK_TOKEN or write the token to " + cfg.TokenPath() + ".")
		return nil
	}

	if err := os.MkdirAll(cfg.Dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	logger, flush, err := logging.Init(cfg.LogLevel, cfg.Env, cfg.LogPath())
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer flush()
	logger.Info("starting admin console",
		zap.String("version", version),
		zap.String("apiURL", cfg.APIURL))

	c := client.New(cfg.APIURL, client.StaticToken(cfg.Token))
	app := tui.NewApp(c, logger, version)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", zap.Error(err))
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogout(cfg config.Config) error {
	path := cfg.TokenPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("Already logged out.")
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func printHelp() {
	fmt.Println(`classdeck — admin console for the ClassDeck learning platform

Usage:
  classdeck             open the console
  classdeck logout      forget the saved token
  classdeck version     print the version

Environment:
  CLASSDECK_API_URL     API base URL (default https://api.classdeck.dev)
  CLASSDECK_TOKEN       admin bearer token (overrides the token file)
  CLASSDECK_LOG_LEVEL   debug, info, warn or error (default info)
  CLASSDECK_ENV         dev or prod log encoding (default prod)`)
}
