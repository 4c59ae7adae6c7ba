package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tomasvidal/escriba/internal/ai"
	"github.com/tomasvidal/escriba/internal/app"
	"github.com/tomasvidal/escriba/internal/config"
	"github.com/tomasvidal/escriba/internal/log"
	"github.com/tomasvidal/escriba/internal/session"
	"github.com/tomasvidal/escriba/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "escriba: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Get()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	log.Setup(logFile, cfg.LogLevel)

	if cfg.OpenAIAPIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set, transcription disabled")
	}

	st, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	repo := session.NewRepo(st)
	client := ai.NewClient(cfg)

	var initialFiles []string
	for _, arg := range os.Args[1:] {
		abs, err := filepath.Abs(arg)
		if err != nil {
			abs = arg
		}
		initialFiles = append(initialFiles, abs)
	}

	p := tea.NewProgram(app.New(repo, client, initialFiles), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
