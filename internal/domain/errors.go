package domain

import "errors"

var (
	// ErrUnknownSoilType is returned when a soil identifier is not in the catalog.
	ErrUnknownSoilType = errors.New("unknown soil type")

	// ErrInvalidRainfall is returned when a rainfall value is missing, unparseable or not finite.
	ErrInvalidRainfall = errors.New("invalid rainfall")

	// ErrLocationNotFound is returned by a WeatherProvider that does not recognize the location.
	ErrLocationNotFound = errors.New("location not found")
)
