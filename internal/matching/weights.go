package matching

import (
	"errors"
	"fmt"
	"math"
)

var ErrNegativeWeight = errors.New("weights must not be negative")

// Weights sets the relative importance of the five factors.
type Weights struct {
	Skills     float64 `mapstructure:"skills" json:"skills" validate:"gte=0"`
	Location   float64 `mapstructure:"location" json:"location" validate:"gte=0"`
	Experience float64 `mapstructure:"experience" json:"experience" validate:"gte=0"`
	Education  float64 `mapstructure:"education" json:"education" validate:"gte=0"`
	WorkModel  float64 `mapstructure:"work-model" json:"work_model" validate:"gte=0"`
}

// DefaultWeights weighs every factor equally.
func DefaultWeights() Weights {
	return Weights{Skills: 0.2, Location: 0.2, Experience: 0.2, Education: 0.2, WorkModel: 0.2}
}

func (w Weights) values() []float64 {
	return []float64{w.Skills, w.Location, w.Experience, w.Education, w.WorkModel}
}

func (w Weights) Sum() float64 {
	sum := 0.0
	for _, v := range w.values() {
		sum += v
	}
	return sum
}

// Check rejects negative and non-finite weights.
func (w Weights) Check() error {
	names := []string{"skills", "location", "experience", "education", "work-model"}
	for i, v := range w.values() {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrNegativeWeight, names[i], v)
		}
	}
	return nil
}

// Normalize scales the weights to sum to 1. A zero sum is returned as is.
func (w Weights) Normalize() Weights {
	sum := w.Sum()
	if sum == 0 {
		return w
	}
	return Weights{
		Skills:     w.Skills / sum,
		Location:   w.Location / sum,
		Experience: w.Experience / sum,
		Education:  w.Education / sum,
		WorkModel:  w.WorkModel / sum,
	}
}
