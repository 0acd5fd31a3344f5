package selection

import (
	"fmt"
	"math"

	"github.com/jonathan/technique-selector/internal/types"
)

// Strategy names as reported in SelectionResult.Strategy
const (
	StrategyBundleFirst        = "bundle-first"
	StrategyIndividualFirst    = "individual-first"
	StrategyHybrid             = "hybrid"
	StrategyBestEffortOverride = "best-effort-override"
)

// Individual-first ranking weights
const (
	viralValueWeight     = 0.4
	timeEfficiencyWeight = 0.3
	platformFitWeight    = 0.3
)

// strategyInput is shared read-only by every strategy
type strategyInput struct {
	techniques []types.TechniqueAnalysis
	bundles    []types.BundleAnalysis
	criteria   types.SelectionCriteria
	tuning     Tuning
}

func (in *strategyInput) limits() limits {
	return limits{maxCost: in.criteria.MaxCost, maxTime: in.criteria.TimeConstraint}
}

func (in *strategyInput) targetMet(p *plan) bool {
	score, _, _ := totals(p)
	return score >= in.criteria.TargetViralScore
}

func (in *strategyInput) gap(p *plan) float64 {
	score, _, _ := totals(p)
	return math.Max(0, in.criteria.TargetViralScore-score)
}

// lowRiskTechniques are eligible techniques at or below the low-risk ceiling
func (in *strategyInput) lowRiskTechniques() []candidate {
	return techniqueCandidates(in.techniques, func(a *types.TechniqueAnalysis) bool {
		return a.Eligible && a.CharacterRisk <= in.tuning.LowRiskCeiling
	})
}

// bundleFirst takes bundles by efficiency plus fit, then fills the remaining budget with
// low-risk techniques the bundles do not already cover.
func bundleFirst(in *strategyInput, lim limits) *plan {
	p := newPlan(StrategyBundleFirst)

	greedy(p, bundleCandidates(in.bundles), lim,
		func(c candidate) float64 { return c.bundle.Efficiency + c.bundle.Fit },
		nil, nil)

	greedy(p, in.lowRiskTechniques(), lim,
		func(c candidate) float64 { return c.technique.ViralValue + c.technique.PlatformFit },
		nil, nil)

	return p
}

// individualFirst takes eligible techniques by a weighted value score and stops as soon as
// the target is reached.
func individualFirst(in *strategyInput, lim limits) *plan {
	p := newPlan(StrategyIndividualFirst)

	eligible := techniqueCandidates(in.techniques, func(a *types.TechniqueAnalysis) bool {
		return a.Eligible
	})
	greedy(p, eligible, lim,
		func(c candidate) float64 {
			a := c.technique
			return viralValueWeight*a.ViralValue + timeEfficiencyWeight*a.TimeEfficiency + platformFitWeight*a.PlatformFit
		},
		nil, in.targetMet)

	return p
}

// hybrid seeds with the most efficient bundle when it fits alone, then closes the gap with
// low-risk techniques by raw viral score, skipping those that barely move it.
func hybrid(in *strategyInput, lim limits) *plan {
	p := newPlan(StrategyHybrid)

	if seed, ok := bestEfficiencyBundle(in.bundles); ok {
		c := bundleCandidates([]types.BundleAnalysis{seed})[0]
		if lim.fits(p, c) {
			p.add(c)
			p.trace = append(p.trace, fmt.Sprintf("hybrid: seeded with bundle %s", seed.Bundle.ID))
		} else {
			p.trace = append(p.trace, fmt.Sprintf("hybrid: best bundle %s does not fit within cost %d and time %d min",
				seed.Bundle.ID, lim.maxCost, lim.maxTime))
		}
	}

	admit := func(p *plan, c candidate) bool {
		threshold := math.Min(in.tuning.HybridContributionFloor, in.gap(p)*in.tuning.HybridContributionRatio)
		return c.score >= threshold
	}
	greedy(p, in.lowRiskTechniques(), lim,
		func(c candidate) float64 { return c.score },
		admit, in.targetMet)

	return p
}

// bestEfficiencyBundle returns the eligible bundle with the highest efficiency.
// Ties go to higher fit, then lower id.
func bestEfficiencyBundle(bundles []types.BundleAnalysis) (types.BundleAnalysis, bool) {
	var best types.BundleAnalysis
	found := false
	for _, b := range bundles {
		if !b.Eligible {
			continue
		}
		if !found || better(b, best) {
			best = b
			found = true
		}
	}
	return best, found
}

func better(a, b types.BundleAnalysis) bool {
	if a.Efficiency != b.Efficiency {
		return a.Efficiency > b.Efficiency
	}
	if a.Fit != b.Fit {
		return a.Fit > b.Fit
	}
	return a.Bundle.ID < b.Bundle.ID
}
