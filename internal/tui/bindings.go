package tui

import (
	"fmt"

	"github.com/Makepad-fr/skycount/internal/model"
	"github.com/Makepad-fr/skycount/internal/ui"
)

// LoginLabel is the button caption for the login flag: it always names
// the action the next SIGN_IN performs.
func LoginLabel(isLogged bool) string {
	if isLogged {
		return "Logout"
	}
	return "Login"
}

func counterLine(th ui.Theme, n int) string {
	return fmt.Sprintf("%s %s", th.Accent.Render("Counter"), th.Title.Render(fmt.Sprint(n)))
}

func loginLine(th ui.Theme, isLogged bool) string {
	sym, status := th.SymIdle, th.Muted.Render("signed out")
	if isLogged {
		sym, status = th.SymLoggedIn, th.Success.Render("signed in")
	}
	return fmt.Sprintf("%s %s  %s", sym, th.Selected.Render(" "+LoginLabel(isLogged)+" "), status)
}

// weatherLines renders the weather slot. spin is the current spinner frame.
func weatherLines(th ui.Theme, w model.WeatherSlot, spin string) []string {
	header := th.Accent.Render("Weather")
	if w.Query != "" {
		header += th.Muted.Render(" · " + w.Query)
	}
	lines := []string{header}

	switch w.Status {
	case model.WeatherIdle:
		lines = append(lines, th.Muted.Render("press w to fetch current conditions"))
	case model.WeatherLoading:
		lines = append(lines, spin+" "+th.Pending.Render("fetching..."))
	case model.WeatherFailed:
		lines = append(lines, th.Error.Render(th.SymFail+" "+w.Err))
	}

	if !w.Report.Empty() {
		r := w.Report
		place := r.Location.Name
		if r.Location.Country != "" {
			place += ", " + r.Location.Country
		}
		lines = append(lines,
			fmt.Sprintf("%s  %s", th.Title.Render(place), th.Muted.Render(r.Location.Localtime)),
			fmt.Sprintf("%.1f°C (feels %.1f°C)  %s", r.Current.TempC, r.Current.FeelsLikeC, r.Current.Condition.Text),
			th.Muted.Render(fmt.Sprintf("wind %.0f kph %s · humidity %d%%", r.Current.WindKPH, r.Current.WindDir, r.Current.Humidity)),
		)
	}
	return lines
}
