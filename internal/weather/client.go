// Package weather talks to the weatherapi.com current-conditions endpoint.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/skycount/internal/model"
)

// DefaultBaseURL is the public weatherapi.com v1 endpoint.
const DefaultBaseURL = "https://api.weatherapi.com/v1"

// Provider fetches current conditions for a location query.
type Provider interface {
	Current(ctx context.Context, query string) (model.Report, error)
}

// Client implements Provider over HTTP.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Log     *zap.Logger
}

// NewClient returns a client with a timeout-bound http.Client.
func NewClient(baseURL, apiKey string, timeout time.Duration, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
		Log:     log,
	}
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Current fetches current.json for query.
func (c *Client) Current(ctx context.Context, query string) (model.Report, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return model.Report{}, ErrMissingKey
	}

	u, err := url.Parse(c.BaseURL + "/current.json")
	if err != nil {
		return model.Report{}, &FetchError{Query: query, Err: fmt.Errorf("base url: %w", err)}
	}
	q := u.Query()
	q.Set("key", c.APIKey)
	q.Set("q", query)
	q.Set("aqi", "no")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.Report{}, &FetchError{Query: query, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		// transport errors quote the request URL, key included
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = redactKey(ue.URL)
		}
		return model.Report{}, &FetchError{Query: query, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return model.Report{}, &FetchError{Query: query, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	c.Log.Debug("weather response",
		zap.String("query", query),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fe := &FetchError{Query: query, StatusCode: resp.StatusCode}
		var ae apiError
		if json.Unmarshal(body, &ae) == nil && ae.Error.Message != "" {
			fe.Code, fe.Message = ae.Error.Code, ae.Error.Message
		}
		return model.Report{}, fe
	}

	var r model.Report
	if err := json.Unmarshal(body, &r); err != nil {
		return model.Report{}, &FetchError{Query: query, StatusCode: resp.StatusCode, Err: fmt.Errorf("json unmarshal: %w", err)}
	}
	if r.Empty() {
		return model.Report{}, &FetchError{Query: query, StatusCode: resp.StatusCode, Err: errors.New("payload has no location")}
	}
	return r, nil
}

// redactKey masks the key parameter of raw.
func redactKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<redacted url>"
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}
