// Command vwindow shows a virtualized list of 99,999 variable-height rows in
// the terminal.
//
//	go run ./cmd/vwindow                 # rows alternate 50px and 92px
//	go run ./cmd/vwindow -config list.yaml
//	go run ./cmd/vwindow -log debug.log  # trace every pass
//
// Keys: wheel, arrows, PgUp/PgDn, Home/End; g then an index and Enter jumps
// to that item; q quits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/go-theft-auto/vwindow"
	"github.com/go-theft-auto/vwindow/backend/term"
	"github.com/go-theft-auto/vwindow/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML list description (defaults to the variable-height demo)")
	logPath := flag.String("log", "", "Write debug logs to this file")
	flag.Parse()

	cfg, err := config.Load(*configPath, config.Vertical())
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	extent, err := cfg.ItemExtent()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	opts := cfg.Options()
	// The terminal owns stdout/stderr while the program runs.
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, vwindow.WithLogger(logger))
		config.SetLogger(logger)
	}

	box := vwindow.NewScrollContainer(vwindow.Size{})
	engine := vwindow.New(cfg.Items(), extent, vwindow.Ref(box), opts...)
	defer engine.Close()

	model := term.New(engine, box, cfg.Title, nil)
	defer model.Close()

	// The first WindowSizeMsg makes the viewport ready.
	engine.Attach(box.Sources())

	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
