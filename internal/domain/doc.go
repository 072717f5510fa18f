// Package domain models flood-risk assessment for planting decisions.
//
// # Inputs
//
// An assessment takes two inputs: the rainfall over the last 24 hours in
// millimeters and a soil classification from the fixed [Soils] catalog.
// The package does not know where the rainfall figure came from. Manual entry,
// a weather lookup and tests all hand it the same float64.
//
// # Soil Catalog
//
// Five classifications, ordered from worst to best drainage:
//
//	clay        Clay (Poor drainage)            coefficient 1
//	silt        Silt (Poor drainage)            coefficient 1.5
//	loam        Loam (Moderate drainage)        coefficient 3
//	sandy-loam  Sandy Loam (Good drainage)      coefficient 4
//	sand        Sand (Excellent drainage)       coefficient 5
//
// The coefficient divides the rainfall, so better-draining soil lowers the score.
// Identifiers match exactly; "Clay" or " clay" are unknown soil types.
//
// # Scoring
//
// Rainfall is banded before dividing by drainage, and the multiplier grows
// with the band:
//
//	rainfall < 20mm          score = rainfall / drainage
//	20mm <= rainfall < 50mm  score = rainfall * 1.5 / drainage
//	rainfall >= 50mm         score = rainfall * 2 / drainage
//
// # Risk Tiers
//
// The score (not the rainfall) is bucketed into four tiers:
//
//	score < 10    low        safe to plant
//	score < 20    moderate   safe to plant, monitor conditions
//	score < 35    high       not safe
//	otherwise     very high  not safe
//
// The score is not a probability. It is only meaningful relative to the tier
// boundaries above.
//
// # Validation
//
// [Assess] rejects unknown soil identifiers with [ErrUnknownSoilType] and
// non-finite rainfall (NaN, ±Inf) with [ErrInvalidRainfall]. Finite negative
// rainfall is scored arithmetically; rejecting it is left to the caller.
// [ParseRainfall] is the text-input gate used by callers that read free-form
// input, and it does reject negative values.
//
// Everything in this package except [NewAssessmentRecord] is pure: no I/O, no
// logging and no shared mutable state.
package domain
