// Package tui is the interactive view over the store.
//
// The model reads slots from the injected store and turns key presses into
// Dispatch calls. Weather fetches run as tea.Cmds whose result is a
// signal.Signal message; Update dispatches it, so only the event loop writes.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Makepad-fr/skycount/internal/model"
	"github.com/Makepad-fr/skycount/internal/signal"
	"github.com/Makepad-fr/skycount/internal/store"
	"github.com/Makepad-fr/skycount/internal/ui"
	"github.com/Makepad-fr/skycount/internal/weather"
)

// Options wire the view to its collaborators.
type Options struct {
	Provider  weather.Provider
	Query     string
	AutoFetch bool // fetch Query on start
	Timeout   time.Duration
	Theme     string
	Log       *zap.Logger
}

type Model struct {
	store    *store.Store
	provider weather.Provider
	log      *zap.Logger
	timeout  time.Duration
	theme    ui.Theme

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	// Inline location edit
	editing bool
	ti      textinput.Model
	query   string

	autoFetch bool
	revisions *atomic.Int64 // bumped by a store subscription
	unsub     func()

	width int
}

// New builds the view over st.
func New(st *store.Store, opt Options) Model {
	if opt.Log == nil {
		opt.Log = zap.NewNop()
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 10 * time.Second
	}
	th := ui.Build(opt.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = th.Pending

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "City, postcode or lat,lon..."
	ti.CharLimit = 120

	h := help.New()
	h.Styles.ShortKey = th.Help
	h.Styles.ShortDesc = th.Help
	h.Styles.FullKey = th.Help
	h.Styles.FullDesc = th.Help

	revs := &atomic.Int64{}
	unsub := st.Subscribe(func(model.State) { revs.Add(1) })

	return Model{
		store:     st,
		provider:  opt.Provider,
		log:       opt.Log,
		timeout:   opt.Timeout,
		theme:     th,
		keys:      defaultKeys(),
		help:      h,
		spinner:   sp,
		ti:        ti,
		query:     opt.Query,
		autoFetch: opt.AutoFetch && opt.Provider != nil && opt.Query != "",
		revisions: revs,
		unsub:     unsub,
		width:     80,
	}
}

// Run starts the program and blocks until the user quits.
func Run(st *store.Store, opt Options) error {
	m := New(st, opt)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Close drops the store subscription.
func (m Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

func (m Model) Init() tea.Cmd {
	if m.autoFetch {
		return m.requestWeather()
	}
	return nil
}

// requestWeather marks the slot loading and returns the async fetch.
func (m Model) requestWeather() tea.Cmd {
	m.store.Dispatch(signal.WeatherRequested{Query: m.query})
	if m.provider == nil {
		m.store.Dispatch(signal.WeatherFailed{Query: m.query, Message: weather.ErrMissingKey.Error()})
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.fetch(m.query))
}

// fetch runs off the event loop and reports back with a signal message.
func (m Model) fetch(query string) tea.Cmd {
	p, log, timeout := m.provider, m.log, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return weather.Fetch(ctx, p, query, log)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case signal.Signal:
		m.store.Dispatch(msg)
		return m, nil

	case spinner.TickMsg:
		if m.store.GetState().Weather.Status != model.WeatherLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// location edit mode
	if m.editing {
		var cmd tea.Cmd
		if x, ok := msg.(tea.KeyMsg); ok {
			switch x.String() {
			case "enter":
				q := strings.TrimSpace(m.ti.Value())
				m.editing = false
				m.ti.SetValue("")
				m.ti.Blur()
				if q == "" {
					return m, nil
				}
				m.query = q
				return m, m.requestWeather()
			case "esc":
				m.editing = false
				m.ti.SetValue("")
				m.ti.Blur()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Increment):
			m.store.Dispatch(signal.Increment{})
		case key.Matches(msg, m.keys.Decrement):
			m.store.Dispatch(signal.Decrement{})
		case key.Matches(msg, m.keys.SignIn):
			m.store.Dispatch(signal.SignIn{})
		case key.Matches(msg, m.keys.Fetch):
			return m, m.requestWeather()
		case key.Matches(msg, m.keys.Query):
			m.editing = true
			m.ti.SetValue(m.query)
			m.ti.CursorEnd()
			return m, m.ti.Focus()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m Model) View() string {
	st := m.store.GetState()
	th := m.theme

	lines := []string{
		th.Title.Render("Skycount"),
		"",
		counterLine(th, st.Counter),
		loginLine(th, st.IsLogged),
		"",
	}
	lines = append(lines, weatherLines(th, st.Weather, m.spinner.View())...)

	if m.editing {
		lines = append(lines, "", th.Accent.Render("Change location"), m.ti.View())
	}

	lines = append(lines,
		"",
		th.Muted.Render(fmt.Sprintf("revision %d · theme %s", m.revisions.Load(), th.Name)),
		m.help.View(m.keys),
	)
	return ui.PanelString(strings.Join(lines, "\n"))
}
