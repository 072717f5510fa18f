package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssessmentRecord(t *testing.T) {
	fixedTime := time.Date(2024, 4, 26, 12, 30, 45, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	a, err := Assess(30, "clay")
	require.NoError(t, err)

	t.Run("manual input", func(t *testing.T) {
		rec := NewAssessmentRecord(SourceManual, a, nil)

		_, err := uuid.Parse(rec.ID)
		require.NoError(t, err)
		assert.Equal(t, SourceManual, rec.Source)
		assert.Empty(t, rec.Location)
		assert.Nil(t, rec.Conditions)
		assert.Equal(t, a, rec.Assessment)
		assert.Equal(t, fixedTime, rec.AssessedAt)
	})

	t.Run("weather input carries conditions", func(t *testing.T) {
		cond := &WeatherConditions{Location: "Nairobi", TemperatureC: 21.5, RainfallMM: 30}
		rec := NewAssessmentRecord(SourceWeather, a, cond)

		assert.Equal(t, SourceWeather, rec.Source)
		assert.Equal(t, "Nairobi", rec.Location)
		assert.Same(t, cond, rec.Conditions)
	})

	t.Run("ids are unique", func(t *testing.T) {
		r1 := NewAssessmentRecord(SourceManual, a, nil)
		r2 := NewAssessmentRecord(SourceManual, a, nil)
		assert.NotEqual(t, r1.ID, r2.ID)
	})
}
