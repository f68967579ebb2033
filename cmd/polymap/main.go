package main

import (
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"polymap/internal/config"
	"polymap/internal/logging"
	"polymap/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("starting", "home", cfg.HomeCenter, "zoom", cfg.HomeZoom, "exportDir", cfg.ExportDir)

	var m tea.Model
	if len(args) > 0 {
		m = tui.NewWithPath(cfg, logger, args[0])
	} else {
		m = tui.New(cfg, logger)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		logger.Error(err, "program exited")
		return err
	}
	return nil
}
