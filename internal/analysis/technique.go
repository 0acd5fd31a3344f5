// Package analysis scores catalog techniques and bundles against one selection request.
package analysis

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/technique-selector/internal/costmodel"
	"github.com/jonathan/technique-selector/internal/scenario"
	"github.com/jonathan/technique-selector/internal/types"
)

// Input is everything about a request that scoring depends on
type Input struct {
	Criteria  types.SelectionCriteria
	Character *types.CharacterIdentity
	Scenario  types.Scenario
}

const (
	basePlatformFit = 50.0
	// platformAffinityBonus is added when a technique lists the target platform
	platformAffinityBonus = 10.0
	// strictIdentityFactor scales risk when the identity itself demands strict preservation
	strictIdentityFactor = 1.2
	defaultBaseRisk      = 30.0
)

// baseRisk is how likely each category is to alter a recognizable identity
var baseRisk = map[types.Category]float64{
	types.CategoryTransformation: 60,
	types.CategoryViral:          40,
	types.CategoryEnhancement:    20,
	types.CategoryCharacter:      10,
}

var levelFactor = map[types.PreservationLevel]float64{
	types.PreservationStrict:   1.5,
	types.PreservationModerate: 1.0,
	types.PreservationFlexible: 0.7,
}

// platformWeights adjusts platform fit per category. Missing entries are 0.
var platformWeights = map[types.Platform]map[types.Category]float64{
	types.PlatformTikTok: {
		types.CategoryViral:          30,
		types.CategoryTransformation: 25,
		types.CategoryCinematic:      10,
		types.CategoryEnhancement:    5,
		types.CategoryPhotography:    -5,
		types.CategoryBrand:          -10,
	},
	types.PlatformInstagram: {
		types.CategoryPhotography:    25,
		types.CategoryEnhancement:    20,
		types.CategoryViral:          15,
		types.CategoryTransformation: 10,
		types.CategoryBrand:          10,
		types.CategoryCinematic:      10,
	},
	types.PlatformYouTube: {
		types.CategoryCharacter:      25,
		types.CategoryBrand:          20,
		types.CategoryCinematic:      20,
		types.CategoryTransformation: 10,
		types.CategoryViral:          5,
	},
	types.PlatformFacebook: {
		types.CategoryCharacter:   15,
		types.CategoryBrand:       15,
		types.CategoryViral:       10,
		types.CategoryPhotography: 10,
	},
	types.PlatformTwitter: {
		types.CategoryViral: 20,
	},
	types.PlatformLinkedIn: {
		types.CategoryBrand:          30,
		types.CategoryPhotography:    15,
		types.CategoryCharacter:      10,
		types.CategoryViral:          -15,
		types.CategoryTransformation: -20,
	},
}

// AnalyzeTechniques scores every technique for the request. Techniques are scored in
// parallel; the result keeps catalog order.
func AnalyzeTechniques(techniques []types.Technique, costs *costmodel.Model, in Input) []types.TechniqueAnalysis {
	analyses := make([]types.TechniqueAnalysis, len(techniques))

	var g errgroup.Group
	for i := range techniques {
		i := i
		g.Go(func() error {
			analyses[i] = analyzeTechnique(techniques[i], costs, in)
			return nil
		})
	}
	_ = g.Wait()

	eligible := make([]types.Technique, 0, len(analyses))
	for _, a := range analyses {
		if a.Eligible {
			eligible = append(eligible, a.Technique)
		}
	}
	for i := range analyses {
		analyses[i].Synergy = synergyAgainst(analyses[i].Technique, eligible)
	}

	return analyses
}

func analyzeTechnique(t types.Technique, costs *costmodel.Model, in Input) types.TechniqueAnalysis {
	score := t.ViralPotential.Score()
	cost := costs.Cost(t.Complexity)
	minutes := costs.Time(t.Complexity)

	a := types.TechniqueAnalysis{
		Technique:      t,
		Cost:           cost,
		Time:           minutes,
		ViralValue:     perUnit(score, costmodel.Dollars(cost)),
		TimeEfficiency: perUnit(score, float64(minutes)),
		CharacterRisk:  CharacterRisk(t.Category, in.Criteria.CharacterPreservation, in.Character),
		PlatformFit:    PlatformFit(t, in.Criteria.Platform, in.Scenario),
		Eligible:       true,
	}

	threshold := in.Criteria.CharacterPreservation.RiskThreshold()
	switch {
	case a.CharacterRisk > threshold:
		a.Eligible = false
		a.ExclusionReason = fmt.Sprintf("character risk %.1f exceeds %s preservation threshold %.0f",
			a.CharacterRisk, in.Criteria.CharacterPreservation, threshold)
	case t.Complexity.Rank() > in.Criteria.MaxComplexity.Rank():
		a.Eligible = false
		a.ExclusionReason = fmt.Sprintf("complexity %s exceeds max complexity %s",
			t.Complexity, in.Criteria.MaxComplexity)
	}

	return a
}

// CharacterRisk estimates how much a category risks altering the depicted identity, in [0, 100]
func CharacterRisk(category types.Category, level types.PreservationLevel, character *types.CharacterIdentity) float64 {
	base, ok := baseRisk[category]
	if !ok {
		base = defaultBaseRisk
	}
	factor, ok := levelFactor[level]
	if !ok {
		factor = 1.0
	}
	risk := base * factor
	if character.RequiresStrictPreservation() {
		risk *= strictIdentityFactor
	}
	return clamp(risk)
}

// PlatformFit estimates how well a technique suits the target platform, in [0, 100]
func PlatformFit(t types.Technique, platform types.Platform, s types.Scenario) float64 {
	fit := basePlatformFit + platformWeights[platform][t.Category]
	if t.SupportsPlatform(platform) {
		fit += platformAffinityBonus
	}
	fit += scenario.Bias(s, t.Category)
	return clamp(fit)
}

// perUnit divides a score by a unit amount; a zero amount yields the score itself
func perUnit(score, units float64) float64 {
	if units == 0 {
		return score
	}
	return score / units
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
