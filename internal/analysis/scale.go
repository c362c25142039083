package analysis

import (
	"math"

	apperrors "micmac/internal/errors"
)

// stepTolerance absorbs float drift when checking step granularity.
const stepTolerance = 1e-6

// Scale defines the admissible numeric range and step for matrix cells,
// with optional per-value display labels (e.g. "0" → "no influence").
type Scale struct {
	Min    float64           `json:"min"`
	Max    float64           `json:"max"`
	Step   float64           `json:"step"`
	Labels map[string]string `json:"labels,omitempty"`
}

// DefaultScale is the 0-3 integer influence scale seeded for new installs.
func DefaultScale() Scale {
	return Scale{Min: 0, Max: 3, Step: 1}
}

// Validate checks the scale definition itself.
func (s Scale) Validate() error {
	if s.Max <= s.Min {
		return apperrors.New(apperrors.ValidationFailed, "scale max must be greater than min")
	}
	if s.Step <= 0 {
		return apperrors.New(apperrors.ValidationFailed, "scale step must be positive")
	}
	return nil
}

// CheckValue reports whether v is admissible under the scale: inside
// [Min, Max] and on the step grid. Callers attach cell coordinates.
func (s Scale) CheckValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return apperrors.New(apperrors.ScaleViolation, "value is not a finite number")
	}
	if v < s.Min || v > s.Max {
		return apperrors.Newf(apperrors.ScaleViolation, "value %g outside scale [%g,%g]", v, s.Min, s.Max)
	}
	if s.Step > 0 {
		k := (v - s.Min) / s.Step
		if math.Abs(k-math.Round(k)) > stepTolerance {
			return apperrors.Newf(apperrors.ScaleViolation, "value %g does not match step %g", v, s.Step)
		}
	}
	return nil
}
