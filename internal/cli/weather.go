package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Makepad-fr/skycount/internal/config"
	"github.com/Makepad-fr/skycount/internal/model"
	"github.com/Makepad-fr/skycount/internal/signal"
	"github.com/Makepad-fr/skycount/internal/store"
	"github.com/Makepad-fr/skycount/internal/weather"
)

func (a *app) newWeatherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weather [query]",
		Short: "Fetch current conditions once and print them",
		Long: `Fetches current conditions from weatherapi.com for the given location
(or the configured default) and prints a short report.

The API key comes from SKYCOUNT_WEATHER_KEY, WEATHER_API_KEY or
~/.skycount/credentials.json (see "skycount auth login").`,
		Example: `  skycount weather
  skycount weather "new york"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := a.cfg.Weather.Query
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				query = strings.TrimSpace(args[0])
			}

			// The one-shot path goes through the store too, so the report
			// printed is the state the fetch produced.
			st := store.New(model.Initial(), store.WithLogger(a.log))
			client := weather.NewClient(a.cfg.Weather.BaseURL, config.APIKey(), a.cfg.Weather.Timeout, a.log)

			st.Dispatch(signal.WeatherRequested{Query: query})
			next := st.Dispatch(weather.Fetch(cmd.Context(), client, query, a.log))

			if next.Weather.Status == model.WeatherFailed {
				return errors.New(next.Weather.Err)
			}
			out, err := renderReport(next.Weather.Report, a.cfg.UI.Theme, terminalWidth())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// reportMarkdown lays a report out as a small markdown card.
func reportMarkdown(r model.Report) string {
	var b strings.Builder
	place := r.Location.Name
	if r.Location.Region != "" {
		place += ", " + r.Location.Region
	}
	if r.Location.Country != "" {
		place += ", " + r.Location.Country
	}
	fmt.Fprintf(&b, "# %s\n\n", place)
	fmt.Fprintf(&b, "**%s**, %.1f°C (feels like %.1f°C)\n\n", r.Current.Condition.Text, r.Current.TempC, r.Current.FeelsLikeC)
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Wind | %.0f kph %s |\n", r.Current.WindKPH, r.Current.WindDir)
	fmt.Fprintf(&b, "| Humidity | %d%% |\n", r.Current.Humidity)
	fmt.Fprintf(&b, "| UV | %.0f |\n", r.Current.UV)
	fmt.Fprintf(&b, "| Local time | %s |\n", r.Location.Localtime)
	if r.Current.LastUpdated != "" {
		fmt.Fprintf(&b, "\n_updated %s_\n", r.Current.LastUpdated)
	}
	return b.String()
}

func renderReport(r model.Report, theme string, width int) (string, error) {
	style := glamour.WithAutoStyle()
	if theme == "mono" {
		style = glamour.WithStandardStyle("notty")
	}
	tr, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := tr.Render(reportMarkdown(r))
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return out, nil
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		return w - 4
	}
	return 76
}
