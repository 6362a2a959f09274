package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Makepad-fr/skycount/internal/model"
	"github.com/Makepad-fr/skycount/internal/signal"
	"github.com/Makepad-fr/skycount/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st := store.New(model.Initial())
	s := New(st, nil)
	t.Cleanup(s.Close)
	return s, st
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeState(t *testing.T, rr *httptest.ResponseRecorder) model.State {
	t.Helper()
	var st model.State
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
	return st
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rr := do(t, s.Router(), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestDispatch_Scenarios(t *testing.T) {
	s, st := newTestServer(t)
	h := s.Router()

	for i := 0; i < 3; i++ {
		rr := do(t, h, http.MethodPost, "/dispatch", `{"type":"INCREMENT"}`)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	got := decodeState(t, do(t, h, http.MethodGet, "/state", ""))
	assert.Equal(t, 3, got.Counter)
	assert.False(t, got.IsLogged)

	got = decodeState(t, do(t, h, http.MethodPost, "/dispatch", `{"type":"DECREMENT"}`))
	assert.Equal(t, 2, got.Counter)

	got = decodeState(t, do(t, h, http.MethodPost, "/dispatch", `{"type":"SIGN_IN"}`))
	assert.True(t, got.IsLogged)

	before := st.GetState()
	rr := do(t, h, http.MethodPost, "/dispatch", `{"type":"NOOP"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, before, decodeState(t, rr))
}

func TestDispatch_WeatherPayload(t *testing.T) {
	s, st := newTestServer(t)
	h := s.Router()
	rr := do(t, h, http.MethodPost, "/dispatch", `{"type":"WEATHER_REQUESTED","payload":"lima"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	// a result for a query nobody asked for last is dropped
	rr = do(t, h, http.MethodPost, "/dispatch",
		`{"type":"WEATHER_LOADED","payload":{"query":"quito","report":{"location":{"name":"Quito"}}}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, model.WeatherLoading, st.GetState().Weather.Status)

	rr = do(t, h, http.MethodPost, "/dispatch",
		`{"type":"WEATHER_LOADED","payload":{"query":"lima","report":{"location":{"name":"Lima"},"current":{"temp_c":19}}}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	w := st.GetState().Weather
	assert.Equal(t, model.WeatherReady, w.Status)
	assert.Equal(t, "Lima", w.Report.Location.Name)
	assert.Equal(t, 19.0, w.Report.Current.TempC)
}

func TestDispatch_BadRequests(t *testing.T) {
	s, st := newTestServer(t)
	tests := []struct {
		name, body, want string
	}{
		{"malformed json", `{"type":`, "invalid signal"},
		{"missing type", `{"payload":1}`, "missing type"},
		{"loaded without payload", `{"type":"WEATHER_LOADED"}`, "invalid signal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, s.Router(), http.MethodPost, "/dispatch", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.want)
		})
	}
	assert.Equal(t, model.Initial(), st.GetState())
}

func TestDispatch_MethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)
	rr := do(t, s.Router(), http.MethodGet, "/dispatch", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestMetrics(t *testing.T) {
	s, st := newTestServer(t)
	h := s.Router()

	do(t, h, http.MethodPost, "/dispatch", `{"type":"INCREMENT"}`)
	do(t, h, http.MethodPost, "/dispatch", `{"type":"INCREMENT"}`)
	do(t, h, http.MethodPost, "/dispatch", `{"type":"WHATEVER"}`)
	// dispatches that bypass HTTP still reach the gauges through Subscribe
	st.Dispatch(signal.SignIn{})

	rr := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `skycount_signals_total{type="INCREMENT"} 2`)
	assert.Contains(t, body, `skycount_signals_total{type="unknown"} 1`)
	assert.Contains(t, body, "skycount_counter_value 2")
	assert.Contains(t, body, "skycount_logged_in 1")
}

func TestMetrics_ConcurrentDispatch(t *testing.T) {
	s, st := newTestServer(t)
	h := s.Router()

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				rr := do(t, h, http.MethodPost, "/dispatch", `{"type":"INCREMENT"}`)
				assert.Equal(t, http.StatusOK, rr.Code)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, workers*perWorker, st.GetState().Counter)
	body := do(t, h, http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, body, "skycount_counter_value 400\n")
	assert.Contains(t, body, `skycount_signals_total{type="INCREMENT"} 400`)
}

func TestListenAndServe_Shutdown(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("server did not stop")
	}
}
