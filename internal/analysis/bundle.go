package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/technique-selector/internal/catalog"
	"github.com/jonathan/technique-selector/internal/costmodel"
	"github.com/jonathan/technique-selector/internal/types"
)

// Bundle efficiency multipliers
const (
	gapBonus          = 1.2
	platformBonus     = 1.1
	costFitBonus      = 1.15
	costOverrunFactor = 0.8

	baseBundleFit        = 50.0
	contentTypeFitBonus  = 30.0
	bundlePlatformFitAdd = 20.0
)

// TechniqueLookup resolves bundle member ids
type TechniqueLookup interface {
	Technique(id string) (types.Technique, error)
}

// BundleReport is the outcome of bundle analysis
type BundleReport struct {
	Analyses []types.BundleAnalysis
	// Warnings describe catalog problems such as unknown member ids
	Warnings []string
	// Trace records bundles left out of the candidate pool and why
	Trace []string
}

// AnalyzeBundles scores every bundle for the request. Unknown member ids are skipped
// with a warning; a bundle with no resolvable member is dropped.
func AnalyzeBundles(bundles []types.Bundle, lookup TechniqueLookup, costs *costmodel.Model, in Input) BundleReport {
	report := BundleReport{
		Analyses: make([]types.BundleAnalysis, 0, len(bundles)),
		Warnings: []string{},
		Trace:    []string{},
	}

	for _, b := range bundles {
		members := make([]types.Technique, 0, len(b.TechniqueIDs))
		for _, id := range b.TechniqueIDs {
			t, err := lookup.Technique(id)
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					report.Warnings = append(report.Warnings,
						fmt.Sprintf("bundle %s references unknown technique %s; member skipped", b.ID, id))
					continue
				}
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("bundle %s: failed to resolve technique %s: %v", b.ID, id, err))
				continue
			}
			members = append(members, t)
		}

		if len(members) == 0 {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("bundle %s has no resolvable techniques; bundle dropped", b.ID))
			continue
		}

		a := analyzeBundle(b, members, costs, in)
		if !a.Eligible {
			report.Trace = append(report.Trace, fmt.Sprintf("bundle %s not a candidate: %s", b.ID, a.ExclusionReason))
		}
		report.Analyses = append(report.Analyses, a)
	}

	return report
}

func analyzeBundle(b types.Bundle, members []types.Technique, costs *costmodel.Model, in Input) types.BundleAnalysis {
	cost := costs.BundleCost(members)

	efficiency := perUnit(b.ViralScore, costmodel.Dollars(cost))
	if b.ViralScore >= in.Criteria.TargetViralScore {
		efficiency *= gapBonus
	}
	if b.RecommendedFor(in.Criteria.Platform) {
		efficiency *= platformBonus
	}
	if cost <= in.Criteria.MaxCost {
		efficiency *= costFitBonus
	} else {
		efficiency *= costOverrunFactor
	}

	maxRisk := 0.0
	for _, m := range members {
		if r := CharacterRisk(m.Category, in.Criteria.CharacterPreservation, in.Character); r > maxRisk {
			maxRisk = r
		}
	}

	exclusion := bundleExclusion(members, in)
	return types.BundleAnalysis{
		Bundle:          b,
		Members:         members,
		Cost:            cost,
		Time:            costs.BundleTime(members),
		Efficiency:      efficiency,
		Fit:             BundleFit(b, in.Criteria),
		MaxMemberRisk:   maxRisk,
		Eligible:        exclusion == "",
		ExclusionReason: exclusion,
	}
}

// BundleFit rewards content-type overlap and a platform match, in [0, 100]
func BundleFit(b types.Bundle, criteria types.SelectionCriteria) float64 {
	fit := baseBundleFit
	if matchesContentType(b, criteria.ContentType) {
		fit += contentTypeFitBonus
	}
	if b.RecommendedFor(criteria.Platform) {
		fit += bundlePlatformFitAdd
	}
	return clamp(fit)
}

func matchesContentType(b types.Bundle, contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if ct == "" {
		return false
	}
	for _, c := range b.ContentTypes {
		if strings.ToLower(c) == ct {
			return true
		}
	}
	return strings.Contains(strings.ToLower(b.Name), ct)
}

// bundleExclusion returns why a bundle cannot be a candidate, or "" if it can
func bundleExclusion(members []types.Technique, in Input) string {
	for _, m := range members {
		if m.Complexity.Rank() > in.Criteria.MaxComplexity.Rank() {
			return fmt.Sprintf("member %s complexity %s exceeds max complexity %s",
				m.ID, m.Complexity, in.Criteria.MaxComplexity)
		}
	}
	return ""
}
