package selection

import (
	"fmt"
	"sort"

	"github.com/jonathan/technique-selector/internal/analysis"
	"github.com/jonathan/technique-selector/internal/costmodel"
	"github.com/jonathan/technique-selector/internal/types"
)

// bonusBoosts is the viral score a bonus technique adds, by viral potential
var bonusBoosts = map[types.ViralPotential]float64{
	types.ViralLow:        5,
	types.ViralMedium:     12,
	types.ViralHigh:       20,
	types.ViralGuaranteed: 25,
}

// augmentWithBonus spends the residual budget and time on bonus techniques until the gap to
// the target closes or MaxBonusTechniques have been added. Decisions go to the plan trace.
func augmentWithBonus(p *plan, pool []types.Technique, costs *costmodel.Model, in analysis.Input, tuning Tuning) {
	score, cost, minutes := totals(p)
	gap := in.Criteria.TargetViralScore - score
	if gap <= 0 {
		p.trace = append(p.trace, "bonus: target already met; no bonus techniques added")
		return
	}
	if tuning.MaxBonusTechniques == 0 {
		p.trace = append(p.trace, "bonus: disabled by configuration")
		return
	}

	candidates := bonusCandidates(pool, costs, in)
	if len(candidates) == 0 {
		p.trace = append(p.trace, fmt.Sprintf("bonus: no bonus technique suits %s within %s preservation",
			in.Criteria.Platform, in.Criteria.CharacterPreservation))
		return
	}

	residualCost := in.Criteria.MaxCost - cost
	residualTime := in.Criteria.TimeConstraint - minutes
	added := 0
	for _, c := range candidates {
		if added >= tuning.MaxBonusTechniques {
			break
		}
		score, cost, minutes = totals(p)
		if score >= in.Criteria.TargetViralScore {
			break
		}
		if p.covered[c.ID] {
			p.trace = append(p.trace, fmt.Sprintf("bonus: skipped %s, already selected", c.ID))
			continue
		}
		if c.Cost > in.Criteria.MaxCost-cost || c.Time > in.Criteria.TimeConstraint-minutes {
			continue
		}
		p.covered[c.ID] = true
		p.bonus = append(p.bonus, c)
		added++
		p.trace = append(p.trace, fmt.Sprintf("bonus: added %s (+%.0f viral, cost %d, time %d min)",
			c.ID, c.ViralScore, c.Cost, c.Time))
	}

	if added == 0 {
		p.trace = append(p.trace, fmt.Sprintf("bonus: nothing fits the residual cost %d and time %d min",
			residualCost, residualTime))
	}
}

// bonusCandidates filters the pool to the platform, preservation level and complexity cap,
// sorted by boost, then lower cost, then id.
func bonusCandidates(pool []types.Technique, costs *costmodel.Model, in analysis.Input) []types.SelectedTechnique {
	threshold := in.Criteria.CharacterPreservation.RiskThreshold()
	out := make([]types.SelectedTechnique, 0, len(pool))
	for _, t := range pool {
		if len(t.Platforms) > 0 && !t.SupportsPlatform(in.Criteria.Platform) {
			continue
		}
		if t.Complexity.Rank() > in.Criteria.MaxComplexity.Rank() {
			continue
		}
		risk := analysis.CharacterRisk(t.Category, in.Criteria.CharacterPreservation, in.Character)
		if risk > threshold {
			continue
		}
		out = append(out, types.SelectedTechnique{
			ID:            t.ID,
			Name:          t.Name,
			Category:      t.Category,
			ViralScore:    bonusBoosts[t.ViralPotential],
			Cost:          costs.Cost(t.Complexity),
			Time:          costs.Time(t.Complexity),
			CharacterRisk: risk,
			PlatformFit:   analysis.PlatformFit(t, in.Criteria.Platform, in.Scenario),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ViralScore != out[j].ViralScore {
			return out[i].ViralScore > out[j].ViralScore
		}
		if out[i].Cost != out[j].Cost {
			return out[i].Cost < out[j].Cost
		}
		return out[i].ID < out[j].ID
	})
	return out
}
