package domain

import (
	"time"

	"github.com/google/uuid"
)

// InputSource records where the rainfall figure of an assessment came from.
type InputSource string

const (
	SourceManual  InputSource = "manual"
	SourceWeather InputSource = "weather"
)

// AssessmentRecord wraps an Assessment with the context it was produced in.
// It is what the service returns to clients and publishes downstream.
type AssessmentRecord struct {
	ID         string             `json:"id"`
	Source     InputSource        `json:"source"`
	Location   string             `json:"location,omitempty"`
	Conditions *WeatherConditions `json:"conditions,omitempty"`
	Assessment Assessment         `json:"assessment"`
	AssessedAt time.Time          `json:"assessed_at"`
}

// NewAssessmentRecord stamps an assessment with a random ID and the current
// time. Pass nil conditions for manual input.
func NewAssessmentRecord(source InputSource, a Assessment, conditions *WeatherConditions) AssessmentRecord {
	rec := AssessmentRecord{
		ID:         uuid.NewString(),
		Source:     source,
		Conditions: conditions,
		Assessment: a,
		AssessedAt: clock.Now().UTC(),
	}
	if conditions != nil {
		rec.Location = conditions.Location
	}
	return rec
}
