// Package types provides type definitions for structured data used throughout the technique-selector system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Scenario is the soft classification of the base prompt
type Scenario struct {
	Style          string         `json:"style"`
	ComplexityHint ComplexityTier `json:"complexity_hint"`
	Keywords       []string       `json:"keywords"`
}

// TechniqueAnalysis holds the per-request scores of one catalog technique
type TechniqueAnalysis struct {
	Technique      Technique `json:"technique"`
	Cost           int       `json:"cost"`
	Time           int       `json:"time"`
	ViralValue     float64   `json:"viral_value"`
	TimeEfficiency float64   `json:"time_efficiency"`
	CharacterRisk  float64   `json:"character_risk"`
	PlatformFit    float64   `json:"platform_fit"`
	Synergy        float64   `json:"synergy"`
	// Eligible is false when the technique may not be selected individually for this request
	Eligible        bool   `json:"eligible"`
	ExclusionReason string `json:"exclusion_reason,omitempty"`
}

// ViralScore is the technique's raw contribution to the projected total
func (a *TechniqueAnalysis) ViralScore() float64 {
	return a.Technique.ViralPotential.Score()
}

// BundleAnalysis holds the per-request scores of one bundle
type BundleAnalysis struct {
	Bundle Bundle `json:"bundle"`
	// Members are the resolved techniques; unknown IDs are dropped
	Members       []Technique `json:"members"`
	Cost          int         `json:"cost"`
	Time          int         `json:"time"`
	Efficiency    float64     `json:"efficiency"`
	Fit           float64     `json:"fit"`
	MaxMemberRisk float64     `json:"max_member_risk"`
	Eligible      bool        `json:"eligible"`
	// ExclusionReason is set when Eligible is false
	ExclusionReason string `json:"exclusion_reason,omitempty"`
}

// SelectedTechnique is a technique chosen individually or as a bonus
type SelectedTechnique struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	ViralScore    float64  `json:"viral_score"`
	Cost          int      `json:"cost"`
	Time          int      `json:"time"`
	CharacterRisk float64  `json:"character_risk"`
	PlatformFit   float64  `json:"platform_fit"`
}

// SelectedBundle is a bundle chosen as a unit
type SelectedBundle struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	TechniqueIDs []string `json:"technique_ids"`
	ViralScore   float64  `json:"viral_score"`
	Cost         int      `json:"cost"`
	Time         int      `json:"time"`
}

// Alternative is an unselected technique or bundle with the reason it was passed over.
// Exactly one of TechniqueID and BundleID is set.
type Alternative struct {
	TechniqueID string `json:"technique_id,omitempty"`
	BundleID    string `json:"bundle_id,omitempty"`
	Reason      string `json:"reason"`
}

// SelectionResult is the artifact handed to the prompt renderer and quality validator
type SelectionResult struct {
	ID                 string              `json:"id"`
	Strategy           string              `json:"strategy"`
	Techniques         []SelectedTechnique `json:"techniques"`
	Bundles            []SelectedBundle    `json:"bundles"`
	BonusTechniques    []SelectedTechnique `json:"bonus_techniques"`
	TotalViralScore    float64             `json:"total_viral_score"`
	TotalCost          int                 `json:"total_cost"`
	TotalTime          int                 `json:"total_time"`
	SynergyScore       float64             `json:"synergy_score"`
	Infeasible         bool                `json:"infeasible"`
	Reasoning          []string            `json:"reasoning"`
	Warnings           []string            `json:"warnings"`
	Alternatives       []Alternative       `json:"alternatives"`
	Scenario           Scenario            `json:"scenario"`
	Criteria           SelectionCriteria   `json:"criteria"`
	CatalogFingerprint string              `json:"catalog_fingerprint"`
}
