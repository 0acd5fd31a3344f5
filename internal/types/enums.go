// Package types provides type definitions for structured data used throughout the technique-selector system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// Category groups techniques by the kind of change they make to the content
type Category string

// Category values
const (
	CategoryTransformation Category = "transformation"
	CategoryCharacter      Category = "character"
	CategoryPhotography    Category = "photography"
	CategoryViral          Category = "viral"
	CategoryEnhancement    Category = "enhancement"
	CategoryBrand          Category = "brand"
	CategoryCinematic      Category = "cinematic"
	CategoryLighting       Category = "lighting"
)

var validCategories = map[Category]bool{
	CategoryTransformation: true,
	CategoryCharacter:      true,
	CategoryPhotography:    true,
	CategoryViral:          true,
	CategoryEnhancement:    true,
	CategoryBrand:          true,
	CategoryCinematic:      true,
	CategoryLighting:       true,
}

// Valid reports whether c is a known category
func (c Category) Valid() bool { return validCategories[c] }

// UnmarshalText rejects unknown categories at decode time
func (c *Category) UnmarshalText(text []byte) error {
	v := Category(text)
	if !v.Valid() {
		return fmt.Errorf("unknown category %q", text)
	}
	*c = v
	return nil
}

// ComplexityTier is the effort class of a technique. Tiers are ordered.
type ComplexityTier string

// ComplexityTier values, cheapest first
const (
	ComplexitySimple   ComplexityTier = "simple"
	ComplexityModerate ComplexityTier = "moderate"
	ComplexityComplex  ComplexityTier = "complex"
	ComplexityExpert   ComplexityTier = "expert"
)

// ComplexityTiers lists every tier in ascending order
var ComplexityTiers = []ComplexityTier{
	ComplexitySimple,
	ComplexityModerate,
	ComplexityComplex,
	ComplexityExpert,
}

// Rank returns the ordinal of the tier (simple=1 … expert=4), or 0 if unknown
func (t ComplexityTier) Rank() int {
	for i, tier := range ComplexityTiers {
		if tier == t {
			return i + 1
		}
	}
	return 0
}

// Valid reports whether t is a known tier
func (t ComplexityTier) Valid() bool { return t.Rank() > 0 }

// UnmarshalText rejects unknown tiers at decode time
func (t *ComplexityTier) UnmarshalText(text []byte) error {
	v := ComplexityTier(text)
	if !v.Valid() {
		return fmt.Errorf("unknown complexity tier %q", text)
	}
	*t = v
	return nil
}

// ViralPotential is the catalogued engagement rating of a technique
type ViralPotential string

// ViralPotential values
const (
	ViralLow        ViralPotential = "low"
	ViralMedium     ViralPotential = "medium"
	ViralHigh       ViralPotential = "high"
	ViralGuaranteed ViralPotential = "viral-guaranteed"
)

var viralScores = map[ViralPotential]float64{
	ViralLow:        20,
	ViralMedium:     40,
	ViralHigh:       60,
	ViralGuaranteed: 85,
}

// Score maps the rating to its 0-100 viral score
func (v ViralPotential) Score() float64 { return viralScores[v] }

// Valid reports whether v is a known rating
func (v ViralPotential) Valid() bool {
	_, ok := viralScores[v]
	return ok
}

// UnmarshalText rejects unknown ratings at decode time
func (v *ViralPotential) UnmarshalText(text []byte) error {
	p := ViralPotential(text)
	if !p.Valid() {
		return fmt.Errorf("unknown viral potential %q", text)
	}
	*v = p
	return nil
}

// PreservationLevel is how strictly a depicted identity must be kept recognizable
type PreservationLevel string

// PreservationLevel values
const (
	PreservationStrict   PreservationLevel = "strict"
	PreservationModerate PreservationLevel = "moderate"
	PreservationFlexible PreservationLevel = "flexible"
)

var riskThresholds = map[PreservationLevel]float64{
	PreservationStrict:   20,
	PreservationModerate: 40,
	PreservationFlexible: 60,
}

// RiskThreshold is the highest character risk an individually selected technique may carry
func (p PreservationLevel) RiskThreshold() float64 { return riskThresholds[p] }

// Valid reports whether p is a known level
func (p PreservationLevel) Valid() bool {
	_, ok := riskThresholds[p]
	return ok
}

// UnmarshalText rejects unknown levels at decode time
func (p *PreservationLevel) UnmarshalText(text []byte) error {
	v := PreservationLevel(text)
	if !v.Valid() {
		return fmt.Errorf("unknown preservation level %q", text)
	}
	*p = v
	return nil
}

// Platform is a distribution target
type Platform string

// Platform values
const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
)

var validPlatforms = map[Platform]bool{
	PlatformTikTok:    true,
	PlatformInstagram: true,
	PlatformYouTube:   true,
	PlatformFacebook:  true,
	PlatformTwitter:   true,
	PlatformLinkedIn:  true,
}

// Valid reports whether p is a known platform
func (p Platform) Valid() bool { return validPlatforms[p] }

// UnmarshalText rejects unknown platforms at decode time
func (p *Platform) UnmarshalText(text []byte) error {
	v := Platform(text)
	if !v.Valid() {
		return fmt.Errorf("unknown platform %q", text)
	}
	*p = v
	return nil
}

// QualityLevel is the requested output quality, passed through to the renderer
type QualityLevel string

// QualityLevel values
const (
	QualityStandard QualityLevel = "standard"
	QualityHigh     QualityLevel = "high"
	QualityPremium  QualityLevel = "premium"
)

// Valid reports whether q is a known quality level
func (q QualityLevel) Valid() bool {
	return q == QualityStandard || q == QualityHigh || q == QualityPremium
}

// UnmarshalText rejects unknown quality levels at decode time
func (q *QualityLevel) UnmarshalText(text []byte) error {
	v := QualityLevel(text)
	if !v.Valid() {
		return fmt.Errorf("unknown quality level %q", text)
	}
	*q = v
	return nil
}
