package model

// State is the whole application state held by the store.
// It is a plain value: every revision is a new copy and it compares with ==.
type State struct {
	Counter  int         `json:"counter"`
	IsLogged bool        `json:"isLogged"`
	Weather  WeatherSlot `json:"weather"`
}

// WeatherStatus tracks where the last weather fetch is at.
type WeatherStatus string

const (
	WeatherIdle    WeatherStatus = "idle"
	WeatherLoading WeatherStatus = "loading"
	WeatherReady   WeatherStatus = "ready"
	WeatherFailed  WeatherStatus = "failed"
)

// WeatherSlot holds the outcome of the most recent fetch.
// Report keeps the last good payload even after a failure.
type WeatherSlot struct {
	Status WeatherStatus `json:"status"`
	Query  string        `json:"query,omitempty"`
	Report Report        `json:"report"`
	Err    string        `json:"error,omitempty"`
}

// Initial returns the state the store starts with.
func Initial() State {
	return State{
		Counter:  0,
		IsLogged: false,
		Weather:  WeatherSlot{Status: WeatherIdle},
	}
}
