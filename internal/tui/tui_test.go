package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/skycount/internal/model"
	"github.com/Makepad-fr/skycount/internal/signal"
	"github.com/Makepad-fr/skycount/internal/store"
)

type fakeProvider struct {
	report model.Report
	err    error
	calls  []string
}

func (f *fakeProvider) Current(_ context.Context, q string) (model.Report, error) {
	f.calls = append(f.calls, q)
	return f.report, f.err
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func TestLoginLabel(t *testing.T) {
	assert.Equal(t, "Login", LoginLabel(false))
	assert.Equal(t, "Logout", LoginLabel(true))
}

func TestUpdate_CounterAndLogin(t *testing.T) {
	st := store.New(model.Initial())
	m := New(st, Options{Theme: "mono"})
	defer m.Close()

	m, _ = press(t, m, runes("+"), runes("+"), runes("k"), runes("-"))
	assert.Equal(t, 2, st.GetState().Counter)
	assert.Contains(t, m.View(), "Login")

	m, _ = press(t, m, runes("l"))
	assert.True(t, st.GetState().IsLogged)
	assert.Contains(t, m.View(), "Logout")
	assert.Contains(t, m.View(), "revision 5")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, st.GetState().IsLogged)
	assert.Contains(t, m.View(), "Login")
}

func TestUpdate_Quit(t *testing.T) {
	m := New(store.New(model.Initial()), Options{})
	defer m.Close()

	_, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_WeatherRoundTrip(t *testing.T) {
	st := store.New(model.Initial())
	p := &fakeProvider{report: model.Report{
		Location: model.Location{Name: "Copenhagen", Country: "Denmark"},
		Current:  model.Current{TempC: 11, Condition: model.Condition{Text: "Partly cloudy"}},
	}}
	m := New(st, Options{Provider: p, Query: "copenhagen", Theme: "mono"})
	defer m.Close()

	m, cmd := press(t, m, runes("w"))
	require.NotNil(t, cmd)
	assert.Equal(t, model.WeatherLoading, st.GetState().Weather.Status)
	assert.Contains(t, m.View(), "fetching")

	msg := m.fetch("copenhagen")()
	assert.Equal(t, signal.WeatherLoaded{Query: "copenhagen", Report: p.report}, msg)
	assert.Equal(t, []string{"copenhagen"}, p.calls)

	m, _ = press(t, m, msg)
	w := st.GetState().Weather
	assert.Equal(t, model.WeatherReady, w.Status)
	assert.Equal(t, "Copenhagen", w.Report.Location.Name)
	assert.Contains(t, m.View(), "Copenhagen, Denmark")
	assert.Contains(t, m.View(), "Partly cloudy")
}

func TestUpdate_WeatherFailureIsNotFatal(t *testing.T) {
	st := store.New(model.Initial())
	p := &fakeProvider{err: errors.New("dial tcp: no route to host")}
	m := New(st, Options{Provider: p, Query: "oslo", Theme: "mono"})
	defer m.Close()

	m, _ = press(t, m, runes("w"))
	m, _ = press(t, m, m.fetch("oslo")())

	w := st.GetState().Weather
	assert.Equal(t, model.WeatherFailed, w.Status)
	assert.Contains(t, w.Err, "no route to host")
	assert.Contains(t, m.View(), "no route to host")

	// still interactive
	_, _ = press(t, m, runes("+"))
	assert.Equal(t, 1, st.GetState().Counter)
}

func TestUpdate_NoProvider(t *testing.T) {
	st := store.New(model.Initial())
	m := New(st, Options{Query: "oslo"})
	defer m.Close()

	_, cmd := press(t, m, runes("w"))
	assert.Nil(t, cmd)
	assert.Equal(t, model.WeatherFailed, st.GetState().Weather.Status)
	assert.Contains(t, st.GetState().Weather.Err, "no api key")
}

func TestUpdate_EditQuery(t *testing.T) {
	st := store.New(model.Initial())
	p := &fakeProvider{report: model.Report{Location: model.Location{Name: "Oslo"}}}
	m := New(st, Options{Provider: p, Query: "copenhagen"})
	defer m.Close()

	m, _ = press(t, m, runes("/"))
	require.True(t, m.editing)

	// keys go to the input while editing
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU}, runes("oslo"), runes("+"))
	assert.Equal(t, 0, st.GetState().Counter)
	assert.Equal(t, "oslo+", m.ti.Value())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.editing)
	assert.Equal(t, "oslo", m.query)
	assert.Equal(t, "oslo", st.GetState().Weather.Query)
	assert.Equal(t, model.WeatherLoading, st.GetState().Weather.Status)
}

func TestUpdate_LateResultAfterQueryEdit(t *testing.T) {
	st := store.New(model.Initial())
	p := &fakeProvider{report: model.Report{Location: model.Location{Name: "Oslo"}}}
	m := New(st, Options{Provider: p, Query: "copenhagen", Theme: "mono"})
	defer m.Close()

	m, _ = press(t, m, runes("w"), runes("/"), tea.KeyMsg{Type: tea.KeyCtrlU}, runes("oslo"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "oslo", st.GetState().Weather.Query)

	m, _ = press(t, m, m.fetch("oslo")())
	late := signal.WeatherLoaded{Query: "copenhagen", Report: model.Report{Location: model.Location{Name: "Copenhagen"}}}
	m, _ = press(t, m, late)

	w := st.GetState().Weather
	assert.Equal(t, model.WeatherReady, w.Status)
	assert.Equal(t, "Oslo", w.Report.Location.Name)
	assert.NotContains(t, m.View(), "Copenhagen")
}

func TestUpdate_EditCancel(t *testing.T) {
	st := store.New(model.Initial())
	m := New(st, Options{Query: "copenhagen"})
	defer m.Close()

	m, _ = press(t, m, runes("/"), runes("x"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.editing)
	assert.Equal(t, "copenhagen", m.query)
	assert.Equal(t, model.WeatherIdle, st.GetState().Weather.Status)
}

func TestInit_AutoFetch(t *testing.T) {
	st := store.New(model.Initial())

	m := New(st, Options{Query: "copenhagen", AutoFetch: true})
	assert.Nil(t, m.Init(), "no provider, no fetch")
	m.Close()

	m = New(st, Options{Provider: &fakeProvider{}, Query: "copenhagen", AutoFetch: true})
	defer m.Close()
	assert.NotNil(t, m.Init())
	assert.Equal(t, model.WeatherLoading, st.GetState().Weather.Status)
}
