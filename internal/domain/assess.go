package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rainfall band lower bounds (mm over 24h) and their multipliers.
const (
	moderateRainfallMM = 20.0
	heavyRainfallMM    = 50.0

	moderateRainfallMultiplier = 1.5
	heavyRainfallMultiplier    = 2.0
)

// Risk tier lower bounds on the score.
const (
	moderateRiskScore = 10.0
	highRiskScore     = 20.0
	veryHighRiskScore = 35.0
)

// Assessment is the result of scoring one rainfall figure against one soil.
type Assessment struct {
	RainfallMM float64   `json:"rainfall_mm"`
	SoilType   SoilType  `json:"soil_type"`
	SoilLabel  string    `json:"soil_label"`
	RiskScore  float64   `json:"risk_score"`
	RiskLevel  RiskLevel `json:"risk_level"`
	Safe       bool      `json:"safe"`
	Message    string    `json:"message"`
}

// Verdict returns the one-line planting headline for the assessment.
func (a Assessment) Verdict() string {
	if a.Safe {
		return "Safe to Plant"
	}
	return "Not Safe – High Flood Risk"
}

// Assess scores rainfall against the drainage of the given soil and classifies
// the result into a risk tier. The soil is resolved before the rainfall is
// checked, so an unknown soil wins over bad rainfall.
func Assess(rainfallMM float64, soilID string) (Assessment, error) {
	soil, err := LookupSoil(soilID)
	if err != nil {
		return Assessment{}, err
	}
	if math.IsNaN(rainfallMM) || math.IsInf(rainfallMM, 0) {
		return Assessment{}, fmt.Errorf("%w: %v is not a finite number", ErrInvalidRainfall, rainfallMM)
	}

	score := scoreRainfall(rainfallMM, soil.DrainageCoefficient)
	level := classifyScore(score)

	return Assessment{
		RainfallMM: rainfallMM,
		SoilType:   soil.ID,
		SoilLabel:  soil.Label,
		RiskScore:  score,
		RiskLevel:  level,
		Safe:       level.Safe(),
		Message:    level.Advisory(),
	}, nil
}

// scoreRainfall applies the band multiplier and divides by drainage. The
// multiplier increases with rainfall, so heavy rain is penalized super-linearly.
func scoreRainfall(rainfallMM, drainage float64) float64 {
	switch {
	case rainfallMM < moderateRainfallMM:
		return rainfallMM / drainage
	case rainfallMM < heavyRainfallMM:
		return rainfallMM * moderateRainfallMultiplier / drainage
	default:
		return rainfallMM * heavyRainfallMultiplier / drainage
	}
}

// classifyScore maps a risk score to its tier. Negative scores fall in the
// lowest tier.
func classifyScore(score float64) RiskLevel {
	switch {
	case score < moderateRiskScore:
		return RiskLow
	case score < highRiskScore:
		return RiskModerate
	case score < veryHighRiskScore:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}

// ParseRainfall converts free-form text (e.g. a form field or CLI flag) into
// a rainfall figure. Empty, unparseable, non-finite and negative input all
// fail with ErrInvalidRainfall.
func ParseRainfall(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidRainfall)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidRainfall, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrInvalidRainfall, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidRainfall, s)
	}
	return v, nil
}
