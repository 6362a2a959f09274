package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/skycount/internal/config"
	"github.com/Makepad-fr/skycount/internal/model"
	"github.com/Makepad-fr/skycount/internal/store"
	"github.com/Makepad-fr/skycount/internal/tui"
	"github.com/Makepad-fr/skycount/internal/weather"
)

func (a *app) runInteractive(cmd *cobra.Command, args []string) error {
	st := store.New(model.Initial(), store.WithLogger(a.log))

	opt := tui.Options{
		Query:   a.cfg.Weather.Query,
		Timeout: a.cfg.Weather.Timeout,
		Theme:   a.cfg.UI.Theme,
		Log:     a.log,
	}
	if key := config.APIKey(); key != "" {
		opt.Provider = weather.NewClient(a.cfg.Weather.BaseURL, key, a.cfg.Weather.Timeout, a.log)
		opt.AutoFetch = true
	}

	a.log.Info("interactive view starting")
	if err := tui.Run(st, opt); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
