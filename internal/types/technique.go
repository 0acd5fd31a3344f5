// Package types provides type definitions for structured data used throughout the technique-selector system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Technique represents a catalogued prompt fragment with its selection metadata
type Technique struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Category       Category       `json:"category"`
	Complexity     ComplexityTier `json:"complexity"`
	ViralPotential ViralPotential `json:"viral_potential"`
	Tags           []string       `json:"tags,omitempty"`
	UseCases       []string       `json:"use_cases,omitempty"`
	Platforms      []Platform     `json:"platforms,omitempty"`
	// CombinesWith lists technique IDs or categories this technique pairs well with
	CombinesWith []string `json:"combines_with,omitempty"`
}

// SupportsPlatform reports whether the technique declares an affinity for p
func (t *Technique) SupportsPlatform(p Platform) bool {
	return containsPlatform(t.Platforms, p)
}

// Bundle represents a discounted group of techniques selected as a unit
type Bundle struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	TechniqueIDs []string   `json:"technique_ids"`
	ViralScore   float64    `json:"viral_score"`
	Platforms    []Platform `json:"platforms,omitempty"`
	ContentTypes []string   `json:"content_types,omitempty"`
}

// RecommendedFor reports whether the bundle lists p among its recommended platforms
func (b *Bundle) RecommendedFor(p Platform) bool {
	return containsPlatform(b.Platforms, p)
}

// CatalogData is the serialized form of a technique catalog
type CatalogData struct {
	Version         string      `json:"version,omitempty"`
	Techniques      []Technique `json:"techniques"`
	Bundles         []Bundle    `json:"bundles,omitempty"`
	BonusTechniques []Technique `json:"bonus_techniques,omitempty"`
}

func containsPlatform(platforms []Platform, p Platform) bool {
	for _, candidate := range platforms {
		if candidate == p {
			return true
		}
	}
	return false
}
