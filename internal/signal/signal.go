// Package signal defines the messages that request a state change.
//
// Signal is a closed set: only the types in this package implement it.
// Reducers switch over the concrete types and fall through to a no-op
// for anything they do not handle, including Unknown.
package signal

import "github.com/Makepad-fr/skycount/internal/model"

// Wire discriminants.
const (
	TypeIncrement        = "INCREMENT"
	TypeDecrement        = "DECREMENT"
	TypeSignIn           = "SIGN_IN"
	TypeWeatherRequested = "WEATHER_REQUESTED"
	TypeWeatherLoaded    = "WEATHER_LOADED"
	TypeWeatherFailed    = "WEATHER_FAILED"
)

// Signal is an immutable request for a state change.
type Signal interface {
	Type() string
	sealed()
}

type Increment struct{}

type Decrement struct{}

// SignIn flips the login flag. There is no separate sign-out signal.
type SignIn struct{}

// WeatherRequested marks a fetch for Query as in flight.
type WeatherRequested struct {
	Query string
}

// WeatherLoaded carries a fetched report back into the store.
// Query names the request it answers; empty means the current one.
type WeatherLoaded struct {
	Query  string
	Report model.Report
}

// WeatherFailed carries a fetch failure back into the store.
// Query follows the same rule as WeatherLoaded.Query.
type WeatherFailed struct {
	Query   string
	Message string
}

// Unknown is any discriminant this build does not recognise.
type Unknown struct {
	Kind string
}

func (Increment) Type() string        { return TypeIncrement }
func (Decrement) Type() string        { return TypeDecrement }
func (SignIn) Type() string           { return TypeSignIn }
func (WeatherRequested) Type() string { return TypeWeatherRequested }
func (WeatherLoaded) Type() string    { return TypeWeatherLoaded }
func (WeatherFailed) Type() string    { return TypeWeatherFailed }
func (u Unknown) Type() string        { return u.Kind }

func (Increment) sealed()        {}
func (Decrement) sealed()        {}
func (SignIn) sealed()           {}
func (WeatherRequested) sealed() {}
func (WeatherLoaded) sealed()    {}
func (WeatherFailed) sealed()    {}
func (Unknown) sealed()          {}

// Parse maps a bare discriminant to a payload-free signal.
// Payload-bearing types come back with a zero payload.
func Parse(kind string) Signal {
	switch kind {
	case TypeIncrement:
		return Increment{}
	case TypeDecrement:
		return Decrement{}
	case TypeSignIn:
		return SignIn{}
	case TypeWeatherRequested:
		return WeatherRequested{}
	case TypeWeatherLoaded:
		return WeatherLoaded{}
	case TypeWeatherFailed:
		return WeatherFailed{}
	default:
		return Unknown{Kind: kind}
	}
}
