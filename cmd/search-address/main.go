package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/address-search/internal/config"
	"github.com/address-search/internal/domain"
	"github.com/address-search/internal/infrastructure/nominatim"
	"github.com/address-search/internal/pkg/logger"
	"github.com/address-search/internal/tui"
	"github.com/address-search/internal/usecase/search"
)

func main() {
	logFile := flag.String("log", "search-address.log", "Log file (the terminal is used by the widget)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout занят виджетом и итоговым JSON
	output := cfg.Log.Output
	if output == "" || output == "stdout" || output == "stderr" {
		output = *logFile
	}
	log, err := logger.New(cfg.Log.Level, output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	geocoder := nominatim.NewNominatimClient(&cfg.Geocoder, log)

	model := tui.NewModel(tui.Options{
		Geocoder: geocoder,
		Config: search.ControllerConfig{
			DebounceDelay:  cfg.Search.DebounceDelay,
			MinQueryLength: cfg.Search.MinQueryLength,
		},
		OnSelectLocation: func(c *domain.LocationCandidate) {
			if c == nil {
				log.Info("Selection cleared")
				return
			}
			log.Info("Location selected",
				zap.String("id", c.ID),
				zap.String("label", c.Label),
				zap.String("category", c.Category))
		},
		Logger: log,
	})

	if _, err := tea.NewProgram(model).Run(); err != nil {
		log.Error("Widget failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	selected := model.Selected()
	if selected == nil {
		os.Exit(0)
	}

	// исходный ответ геокодера, как его получил бы хост
	payload := []byte(selected.Raw)
	if len(payload) == 0 {
		payload, err = json.Marshal(selected)
		if err != nil {
			log.Error("Failed to encode selection", zap.Error(err))
			os.Exit(1)
		}
	}
	fmt.Println(string(payload))
}
