package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/glabrego/rickmorty-cli/internal/app"
	"github.com/glabrego/rickmorty-cli/internal/catalog"
	"github.com/glabrego/rickmorty-cli/internal/config"
	"github.com/glabrego/rickmorty-cli/internal/logging"
	"github.com/glabrego/rickmorty-cli/internal/prefs"
	"github.com/glabrego/rickmorty-cli/internal/tui"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: could not read .env (%v), using process environment\n", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogPath)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	kv, err := app.OpenStore(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer kv.Close()

	client := catalog.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.RequestTimeout}, logger)
	darkMode := prefs.NewDarkMode(kv, logger)
	likes := prefs.NewLikes(kv, logger)
	service := app.NewService(client, darkMode, likes, logger)

	logger.Info("starting",
		zap.String("api", cfg.APIBaseURL),
		zap.String("store", cfg.Store),
		zap.Duration("request_timeout", cfg.RequestTimeout),
	)

	model := tui.NewModel(service, service.DarkMode(), service.Likes(), tui.Options{
		BaseURL:      cfg.APIBaseURL,
		FetchTimeout: cfg.RequestTimeout + 2*time.Second,
		InlineImages: cfg.InlineImages,
		Logger:       logger,
	})
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("tui error: %v", err)
	}
}
