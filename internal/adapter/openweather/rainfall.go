package openweather

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// RainfallEstimator supplies a 24-hour rainfall figure in millimeters for a
// location whose current conditions were just fetched.
type RainfallEstimator interface {
	EstimateRainfallMM(location string) float64
}

// SimulatedRainfall is a placeholder estimator that draws a uniform value in
// [0, 100) truncated to one decimal. It ignores the location.
type SimulatedRainfall struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedRainfall creates a simulated estimator. A zero seed picks a
// time-based seed.
func NewSimulatedRainfall(seed uint64) *SimulatedRainfall {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &SimulatedRainfall{rng: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

func (s *SimulatedRainfall) EstimateRainfallMM(_ string) float64 {
	s.mu.Lock()
	v := s.rng.Float64() * 100
	s.mu.Unlock()
	return math.Floor(v*10) / 10
}
