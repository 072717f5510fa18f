package domain

// RiskLevel is one of four ordered flood-risk tiers.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

// Label returns the display name of the tier.
func (l RiskLevel) Label() string {
	switch l {
	case RiskLow:
		return "Low"
	case RiskModerate:
		return "Moderate"
	case RiskHigh:
		return "High"
	case RiskVeryHigh:
		return "Very High"
	default:
		return ""
	}
}

// Safe reports whether planting is advisable at this tier.
func (l RiskLevel) Safe() bool {
	return l == RiskLow || l == RiskModerate
}

// Advisory returns the fixed advice shown for the tier.
func (l RiskLevel) Advisory() string {
	switch l {
	case RiskLow:
		return "Excellent conditions for planting. Soil drainage is adequate for current rainfall levels."
	case RiskModerate:
		return "Safe to plant, but monitor weather conditions. Consider raised beds if rainfall increases."
	case RiskHigh:
		return "Not safe to plant. High flood risk due to poor drainage and significant rainfall."
	case RiskVeryHigh:
		return "Dangerous flood conditions. Avoid planting and consider flood protection measures."
	default:
		return ""
	}
}
