// Package types provides type definitions for structured data used throughout the technique-selector system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SelectionCriteria represents the goal and hard constraints of one selection request
type SelectionCriteria struct {
	TargetViralScore float64 `json:"target_viral_score" validate:"gte=0,lte=100"`
	// MaxCost is in minor currency units
	MaxCost               int               `json:"max_cost" validate:"gte=0"`
	MaxComplexity         ComplexityTier    `json:"max_complexity" validate:"required"`
	Platform              Platform          `json:"platform" validate:"required"`
	ContentType           string            `json:"content_type" validate:"required"`
	CharacterPreservation PreservationLevel `json:"character_preservation" validate:"required"`
	// TimeConstraint is in minutes
	TimeConstraint int          `json:"time_constraint" validate:"gt=0"`
	QualityLevel   QualityLevel `json:"quality_level" validate:"required"`
}

// CriteriaError represents a rejected SelectionCriteria
type CriteriaError struct {
	Message string
	Cause   error
}

func (e *CriteriaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid criteria: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid criteria: %s", e.Message)
}

func (e *CriteriaError) Unwrap() error {
	return e.Cause
}

var criteriaValidator = validator.New()

// Validate checks field ranges with the struct tags, then the enum fields.
func (c *SelectionCriteria) Validate() error {
	if err := criteriaValidator.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			names := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				names = append(names, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return &CriteriaError{Message: "field validation failed: " + strings.Join(names, ", "), Cause: err}
		}
		return &CriteriaError{Message: "field validation failed", Cause: err}
	}

	if !c.MaxComplexity.Valid() {
		return &CriteriaError{Message: fmt.Sprintf("unknown max complexity %q", c.MaxComplexity)}
	}
	if !c.Platform.Valid() {
		return &CriteriaError{Message: fmt.Sprintf("unknown platform %q", c.Platform)}
	}
	if !c.CharacterPreservation.Valid() {
		return &CriteriaError{Message: fmt.Sprintf("unknown character preservation level %q", c.CharacterPreservation)}
	}
	if !c.QualityLevel.Valid() {
		return &CriteriaError{Message: fmt.Sprintf("unknown quality level %q", c.QualityLevel)}
	}
	return nil
}

// CharacterIdentity describes the depicted person. Only RequiresStrictPreservation is
// consulted during selection; the remaining fields travel with the request.
type CharacterIdentity struct {
	Name                 string            `json:"name,omitempty"`
	Features             map[string]string `json:"features,omitempty"`
	DistinctiveFeatures  []string          `json:"distinctive_features,omitempty"`
	PreservationPriority PreservationLevel `json:"preservation_priority,omitempty"`
}

// RequiresStrictPreservation reports whether the identity itself demands strict handling
func (c *CharacterIdentity) RequiresStrictPreservation() bool {
	return c != nil && c.PreservationPriority == PreservationStrict
}
