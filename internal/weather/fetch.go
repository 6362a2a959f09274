package weather

import (
	"context"

	"go.uber.org/zap"

	"github.com/Makepad-fr/skycount/internal/signal"
)

// Fetch runs one request and turns the outcome into a signal for the store.
// It never returns an error: failures become WeatherFailed.
func Fetch(ctx context.Context, p Provider, query string, log *zap.Logger) signal.Signal {
	if log == nil {
		log = zap.NewNop()
	}
	r, err := p.Current(ctx, query)
	if err != nil {
		log.Warn("weather fetch failed", zap.String("query", query), zap.Error(err))
		return signal.WeatherFailed{Query: query, Message: err.Error()}
	}
	log.Info("weather fetched",
		zap.String("query", query),
		zap.String("location", r.Location.Name),
		zap.Float64("temp_c", r.Current.TempC),
	)
	return signal.WeatherLoaded{Query: query, Report: r}
}
