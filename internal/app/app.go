package app

import (
	"errors"
	"time"

	"github.com/marquee-tui/marquee/internal/catalog"
	"github.com/marquee-tui/marquee/internal/fetch"
	"github.com/marquee-tui/marquee/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	CatalogURL     string
	SetURLTemplate string
	Width          int
	Height         int
	FrameMS        int
	ClampCursor    bool
	Verbose        bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	client := catalog.NewClient(cfg.CatalogURL, cfg.SetURLTemplate)
	runner := fetch.NewRunner()
	defer runner.Stop()

	model := ui.NewModel(client, runner, ui.Options{
		Width:         cfg.Width,
		Height:        cfg.Height,
		FrameInterval: time.Duration(cfg.FrameMS) * time.Millisecond,
		ClampCursor:   cfg.ClampCursor,
		Verbose:       cfg.Verbose,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
