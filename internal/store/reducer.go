package store

import (
	"github.com/Makepad-fr/skycount/internal/model"
	"github.com/Makepad-fr/skycount/internal/signal"
)

// Counter is the transition function for the counter slot.
// The zero int stands in for an absent state.
func Counter(state int, s signal.Signal) int {
	switch s.(type) {
	case signal.Increment:
		return state + 1
	case signal.Decrement:
		return state - 1
	default:
		return state
	}
}

// Login is the transition function for the login flag.
// SIGN_IN toggles; nothing sets or clears it directly.
func Login(state bool, s signal.Signal) bool {
	switch s.(type) {
	case signal.SignIn:
		return !state
	default:
		return state
	}
}

// Weather is the transition function for the weather slot.
// A result naming a query other than the slot's answers a superseded
// request and leaves the slot alone.
func Weather(slot model.WeatherSlot, s signal.Signal) model.WeatherSlot {
	switch v := s.(type) {
	case signal.WeatherRequested:
		slot.Status = model.WeatherLoading
		slot.Query = v.Query
		slot.Err = ""
	case signal.WeatherLoaded:
		if stale(slot, v.Query) {
			return slot
		}
		slot.Status = model.WeatherReady
		slot.Report = v.Report
		slot.Err = ""
	case signal.WeatherFailed:
		if stale(slot, v.Query) {
			return slot
		}
		slot.Status = model.WeatherFailed
		slot.Err = v.Message
	}
	return slot
}

func stale(slot model.WeatherSlot, query string) bool {
	return query != "" && query != slot.Query
}

// Reduce routes s to every slot reducer and assembles the next state.
func Reduce(state model.State, s signal.Signal) model.State {
	return model.State{
		Counter:  Counter(state.Counter, s),
		IsLogged: Login(state.IsLogged, s),
		Weather:  Weather(state.Weather, s),
	}
}

// Replay folds signals over initial. Reducers are pure, so the result
// depends only on the arguments.
func Replay(initial model.State, signals ...signal.Signal) model.State {
	st := initial
	for _, s := range signals {
		st = Reduce(st, s)
	}
	return st
}
