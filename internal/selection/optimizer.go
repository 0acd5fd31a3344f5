package selection

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/technique-selector/internal/types"
)

// strategies run in this order; the order also breaks exact ties between them
var strategies = []struct {
	name string
	run  func(*strategyInput, limits) *plan
}{
	{StrategyBundleFirst, bundleFirst},
	{StrategyIndividualFirst, individualFirst},
	{StrategyHybrid, hybrid},
}

// runStrategies evaluates every strategy concurrently. Plans come back in strategy order.
func runStrategies(in *strategyInput) []*plan {
	plans := make([]*plan, len(strategies))

	var g errgroup.Group
	for i, s := range strategies {
		i, s := i, s
		g.Go(func() error {
			plans[i] = descend(in, s.run)
			return nil
		})
	}
	_ = g.Wait()

	return plans
}

// descend runs a strategy at the request budget and then at each lower budget where its
// choices change, returning the preferred plan. A plan that costs C is what the strategy
// builds for every budget in [C, b], so C-1 is the next budget worth trying. Every plan
// built for a smaller budget is also available to a larger one, which keeps the best
// feasible score non-decreasing in MaxCost.
func descend(in *strategyInput, run func(*strategyInput, limits) *plan) *plan {
	lim := in.limits()
	var best *plan
	levels := 0
	for lim.maxCost >= 0 {
		p := run(in, lim)
		p.budget = lim.maxCost
		levels++
		if best == nil || preferred(p, best, in.criteria) {
			best = p
		}
		_, cost, _ := totals(p)
		lim.maxCost = cost - 1
	}
	if best.budget < in.criteria.MaxCost {
		best.trace = append(best.trace, fmt.Sprintf("%s: plan built for budget %d beats the one for %d (%d budget levels tried)",
			best.strategy, best.budget, in.criteria.MaxCost, levels))
	}
	return best
}

// preferred orders plans feasible first, then by score, then by lower cost
func preferred(p, q *plan, c types.SelectionCriteria) bool {
	if fp, fq := feasible(p, c), feasible(q, c); fp != fq {
		return fp
	}
	ps, pc, _ := totals(p)
	qs, qc, _ := totals(q)
	if ps != qs {
		return ps > qs
	}
	return pc < qc
}

func feasible(p *plan, c types.SelectionCriteria) bool {
	score, cost, minutes := totals(p)
	return score >= c.TargetViralScore && cost <= c.MaxCost && minutes <= c.TimeConstraint
}

// decision is the optimizer's pick and how it got there
type decision struct {
	winner     *plan
	infeasible bool
	trace      []string
}

// chooseWinner picks the highest-scoring feasible plan, preferring lower cost among plans
// within the tie-break window of the best score. With no feasible plan it falls back to the
// highest score, and to a single-technique override if that plan is empty.
// The winning score is monotone in MaxCost only with a TieBreakWindow of 0; a wider window can
// trade up to that many points for a cheaper plan once a larger budget admits one.
func chooseWinner(plans []*plan, in *strategyInput) decision {
	var best *plan
	bestScore := -1.0
	for _, p := range plans {
		if !feasible(p, in.criteria) {
			continue
		}
		if score, _, _ := totals(p); score > bestScore {
			best, bestScore = p, score
		}
	}

	if best != nil {
		winner := best
		_, winnerCost, _ := totals(winner)
		for _, p := range plans {
			if p == best || !feasible(p, in.criteria) {
				continue
			}
			score, cost, _ := totals(p)
			if bestScore-score <= in.tuning.TieBreakWindow && cost < winnerCost {
				winner, winnerCost = p, cost
			}
		}

		score, cost, minutes := totals(winner)
		trace := []string{fmt.Sprintf("selected %s: viral score %.1f, cost %d, time %d min",
			winner.strategy, score, cost, minutes)}
		if winner != best {
			trace = append(trace, fmt.Sprintf("%s is within %.0f points of %s and cheaper",
				winner.strategy, in.tuning.TieBreakWindow, best.strategy))
		}
		return decision{winner: winner, trace: trace}
	}

	return fallback(plans, in)
}

func fallback(plans []*plan, in *strategyInput) decision {
	best := plans[0]
	bestScore, _, _ := totals(best)
	for _, p := range plans[1:] {
		if score, _, _ := totals(p); score > bestScore {
			best, bestScore = p, score
		}
	}

	trace := []string{fmt.Sprintf(
		"infeasible: no strategy reaches viral score %.1f within cost %d and time %d min; returning best-effort result",
		in.criteria.TargetViralScore, in.criteria.MaxCost, in.criteria.TimeConstraint)}

	if !best.empty() {
		_, cost, minutes := totals(best)
		trace = append(trace, fmt.Sprintf("best effort: %s with viral score %.1f, cost %d, time %d min",
			best.strategy, bestScore, cost, minutes))
		return decision{winner: best, infeasible: true, trace: trace}
	}

	top, ok := topViralTechnique(in.techniques)
	if !ok {
		trace = append(trace, "override: no eligible technique available; result is empty")
		return decision{winner: best, infeasible: true, trace: trace}
	}

	override := newPlan(StrategyBestEffortOverride)
	override.add(techniqueCandidates([]types.TechniqueAnalysis{top}, func(*types.TechniqueAnalysis) bool { return true })[0])
	trace = append(trace, fmt.Sprintf(
		"override: no strategy selected anything; selected %s (viral score %.0f, cost %d, time %d min) regardless of max cost %d and time constraint %d min",
		top.Technique.ID, top.ViralScore(), top.Cost, top.Time, in.criteria.MaxCost, in.criteria.TimeConstraint))
	return decision{winner: override, infeasible: true, trace: trace}
}

// topViralTechnique returns the eligible technique with the highest viral score.
// Ties go to lower cost, then lower id.
func topViralTechnique(analyses []types.TechniqueAnalysis) (types.TechniqueAnalysis, bool) {
	var top types.TechniqueAnalysis
	found := false
	for _, a := range analyses {
		if !a.Eligible {
			continue
		}
		if !found || a.ViralScore() > top.ViralScore() ||
			(a.ViralScore() == top.ViralScore() && (a.Cost < top.Cost ||
				(a.Cost == top.Cost && a.Technique.ID < top.Technique.ID))) {
			top = a
			found = true
		}
	}
	return top, found
}
