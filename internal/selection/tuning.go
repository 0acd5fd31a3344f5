package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tuning holds the optimizer's adjustable thresholds
type Tuning struct {
	// HybridContributionFloor and HybridContributionRatio set the smallest viral contribution
	// the hybrid strategy admits: min(floor, gap × ratio)
	HybridContributionFloor float64 `json:"hybrid_contribution_floor" validate:"gte=0,lte=100"`
	HybridContributionRatio float64 `json:"hybrid_contribution_ratio" validate:"gte=0,lte=1"`
	// TieBreakWindow is the score difference within which lower cost wins
	TieBreakWindow float64 `json:"tie_break_window" validate:"gte=0,lte=100"`
	// LowRiskCeiling caps the character risk of techniques added by bundle-first and hybrid
	LowRiskCeiling     float64 `json:"low_risk_ceiling" validate:"gte=0,lte=100"`
	MaxBonusTechniques int     `json:"max_bonus_techniques" validate:"gte=0"`
}

// DefaultTuning returns the stock thresholds
func DefaultTuning() Tuning {
	return Tuning{
		HybridContributionFloor: 5,
		HybridContributionRatio: 0.2,
		TieBreakWindow:          5,
		LowRiskCeiling:          30,
		MaxBonusTechniques:      2,
	}
}

var tuningValidator = validator.New()

// Validate checks every threshold is within range
func (t Tuning) Validate() error {
	if err := tuningValidator.Struct(t); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			names := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				names = append(names, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return &Error{Message: "invalid tuning: " + strings.Join(names, ", "), Cause: err}
		}
		return &Error{Message: "invalid tuning", Cause: err}
	}
	return nil
}
