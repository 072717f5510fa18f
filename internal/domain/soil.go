package domain

import "fmt"

// SoilType is the stable identifier of a soil classification.
type SoilType string

const (
	SoilClay      SoilType = "clay"
	SoilSilt      SoilType = "silt"
	SoilLoam      SoilType = "loam"
	SoilSandyLoam SoilType = "sandy-loam"
	SoilSand      SoilType = "sand"
)

// SoilClassification describes how well a soil drains.
type SoilClassification struct {
	ID       SoilType `json:"id"`
	Name     string   `json:"name"`     // short display name, e.g. "Sandy Loam"
	Drainage string   `json:"drainage"` // qualitative descriptor, e.g. "Good drainage"
	Label    string   `json:"label"`    // "<Name> (<Drainage>)"

	// DrainageCoefficient is always > 0. Higher means water clears faster.
	DrainageCoefficient float64 `json:"drainage_coefficient"`
}

// soilCatalog is ordered from poorest to best drainage.
var soilCatalog = [...]SoilClassification{
	newSoil(SoilClay, "Clay", "Poor drainage", 1),
	newSoil(SoilSilt, "Silt", "Poor drainage", 1.5),
	newSoil(SoilLoam, "Loam", "Moderate drainage", 3),
	newSoil(SoilSandyLoam, "Sandy Loam", "Good drainage", 4),
	newSoil(SoilSand, "Sand", "Excellent drainage", 5),
}

var soilsByID = indexSoils()

func newSoil(id SoilType, name, drainage string, coefficient float64) SoilClassification {
	return SoilClassification{
		ID:                  id,
		Name:                name,
		Drainage:            drainage,
		Label:               fmt.Sprintf("%s (%s)", name, drainage),
		DrainageCoefficient: coefficient,
	}
}

func indexSoils() map[SoilType]SoilClassification {
	m := make(map[SoilType]SoilClassification, len(soilCatalog))
	for _, s := range soilCatalog {
		m[s.ID] = s
	}
	return m
}

// Soils returns a copy of the catalog in its fixed order.
func Soils() []SoilClassification {
	out := make([]SoilClassification, len(soilCatalog))
	copy(out, soilCatalog[:])
	return out
}

// LookupSoil resolves a soil identifier. Matching is exact.
func LookupSoil(id string) (SoilClassification, error) {
	s, ok := soilsByID[SoilType(id)]
	if !ok {
		return SoilClassification{}, fmt.Errorf("%w: %q", ErrUnknownSoilType, id)
	}
	return s, nil
}
