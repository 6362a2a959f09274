package signal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/Makepad-fr/skycount/internal/model"
)

var (
	// ErrMissingType is returned when a wire signal has no "type".
	ErrMissingType = errors.New("signal: missing type")
	// ErrMissingPayload is returned when a type needs a payload and got none.
	ErrMissingPayload = errors.New("signal: missing payload")
)

// envelope is the JSON shape every producer sends: {"type": ..., "payload": ...}.
type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type loadedPayload struct {
	Query  string        `json:"query,omitempty" mapstructure:"query"`
	Report *model.Report `json:"report" mapstructure:"report"`
}

type failedPayload struct {
	Query   string `json:"query,omitempty" mapstructure:"query"`
	Message string `json:"message" mapstructure:"message"`
}

// Decode parses a wire signal. Unrecognised types decode to Unknown.
func Decode(b []byte) (Signal, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("signal: json unmarshal: %w", err)
	}
	kind := strings.TrimSpace(env.Type)
	if kind == "" {
		return nil, ErrMissingType
	}

	switch kind {
	case TypeWeatherRequested:
		var q string
		if env.Payload != nil {
			if err := decodePayload(env.Payload, &q); err != nil {
				return nil, err
			}
		}
		return WeatherRequested{Query: q}, nil
	case TypeWeatherLoaded:
		if env.Payload == nil {
			return nil, fmt.Errorf("%s: %w", kind, ErrMissingPayload)
		}
		var p loadedPayload
		if err := decodePayload(env.Payload, &p); err != nil {
			return nil, err
		}
		if p.Report == nil {
			return nil, fmt.Errorf("%s report: %w", kind, ErrMissingPayload)
		}
		return WeatherLoaded{Query: p.Query, Report: *p.Report}, nil
	case TypeWeatherFailed:
		var p failedPayload
		if env.Payload != nil {
			if err := decodePayload(env.Payload, &p); err != nil {
				return nil, err
			}
		}
		return WeatherFailed{Query: p.Query, Message: p.Message}, nil
	}
	return Parse(kind), nil
}

// Encode renders s in the wire shape accepted by Decode.
func Encode(s Signal) ([]byte, error) {
	env := envelope{Type: s.Type()}
	switch v := s.(type) {
	case WeatherRequested:
		if v.Query != "" {
			env.Payload = v.Query
		}
	case WeatherLoaded:
		env.Payload = loadedPayload{Query: v.Query, Report: &v.Report}
	case WeatherFailed:
		env.Payload = failedPayload{Query: v.Query, Message: v.Message}
	}
	b, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("signal: json marshal: %w", err)
	}
	return b, nil
}

func decodePayload(in, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("signal: payload decoder: %w", err)
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("signal: decode payload: %w", err)
	}
	return nil
}
