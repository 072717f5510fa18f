package domain

import "context"

// WeatherConditions is a snapshot of current weather at a location.
type WeatherConditions struct {
	Location     string  `json:"location"` // resolved by the provider, e.g. "Nairobi"
	TemperatureC float64 `json:"temperature_c"`
	HumidityPct  float64 `json:"humidity_pct"`
	Description  string  `json:"description"`

	// RainfallMM is the provider's 24-hour rainfall figure for the location.
	RainfallMM float64 `json:"rainfall_mm"`
}

// WeatherProvider looks up current conditions by free-form location name.
type WeatherProvider interface {
	// CurrentConditions returns ErrLocationNotFound (possibly wrapped) when
	// the provider does not recognize the location.
	CurrentConditions(ctx context.Context, location string) (WeatherConditions, error)
}
