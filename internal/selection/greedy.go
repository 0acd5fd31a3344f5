package selection

import (
	"math"
	"sort"

	"github.com/jonathan/technique-selector/internal/types"
)

// maxViralScore caps the projected total; viral score is a 0-100 quantity
const maxViralScore = 100.0

// candidate is one technique or bundle a strategy may add
type candidate struct {
	id        string
	score     float64
	cost      int
	time      int
	synergy   float64
	technique *types.TechniqueAnalysis
	bundle    *types.BundleAnalysis
}

// plan is the selection built by one strategy
type plan struct {
	strategy string
	// budget is the cost limit the plan was built under
	budget     int
	techniques []types.SelectedTechnique
	bundles    []types.SelectedBundle
	bonus      []types.SelectedTechnique
	// picked holds every technique in the plan, bundle members included
	picked  []types.Technique
	covered map[string]bool
	trace   []string
}

func newPlan(strategy string) *plan {
	return &plan{
		strategy:   strategy,
		techniques: []types.SelectedTechnique{},
		bundles:    []types.SelectedBundle{},
		bonus:      []types.SelectedTechnique{},
		picked:     []types.Technique{},
		covered:    make(map[string]bool),
		trace:      []string{},
	}
}

// totals is the only place projected score, cost and time are computed
func totals(p *plan) (score float64, cost, minutes int) {
	raw := 0.0
	for _, t := range p.techniques {
		raw += t.ViralScore
		cost += t.Cost
		minutes += t.Time
	}
	for _, b := range p.bundles {
		raw += b.ViralScore
		cost += b.Cost
		minutes += b.Time
	}
	for _, t := range p.bonus {
		raw += t.ViralScore
		cost += t.Cost
		minutes += t.Time
	}
	return math.Min(maxViralScore, raw), cost, minutes
}

func (p *plan) empty() bool {
	return len(p.techniques) == 0 && len(p.bundles) == 0
}

// overlaps reports whether c would select a technique the plan already holds
func (p *plan) overlaps(c candidate) bool {
	if c.bundle != nil {
		for _, m := range c.bundle.Members {
			if p.covered[m.ID] {
				return true
			}
		}
		return false
	}
	return p.covered[c.id]
}

func (p *plan) add(c candidate) {
	if c.bundle != nil {
		ids := make([]string, 0, len(c.bundle.Members))
		for _, m := range c.bundle.Members {
			ids = append(ids, m.ID)
			p.covered[m.ID] = true
			p.picked = append(p.picked, m)
		}
		p.bundles = append(p.bundles, types.SelectedBundle{
			ID:           c.bundle.Bundle.ID,
			Name:         c.bundle.Bundle.Name,
			TechniqueIDs: ids,
			ViralScore:   c.bundle.Bundle.ViralScore,
			Cost:         c.bundle.Cost,
			Time:         c.bundle.Time,
		})
		return
	}
	p.covered[c.id] = true
	p.picked = append(p.picked, c.technique.Technique)
	p.techniques = append(p.techniques, selectedTechnique(c.technique))
}

func selectedTechnique(a *types.TechniqueAnalysis) types.SelectedTechnique {
	return types.SelectedTechnique{
		ID:            a.Technique.ID,
		Name:          a.Technique.Name,
		Category:      a.Technique.Category,
		ViralScore:    a.ViralScore(),
		Cost:          a.Cost,
		Time:          a.Time,
		CharacterRisk: a.CharacterRisk,
		PlatformFit:   a.PlatformFit,
	}
}

func techniqueCandidates(analyses []types.TechniqueAnalysis, keep func(*types.TechniqueAnalysis) bool) []candidate {
	out := make([]candidate, 0, len(analyses))
	for i := range analyses {
		a := &analyses[i]
		if !keep(a) {
			continue
		}
		out = append(out, candidate{
			id:        a.Technique.ID,
			score:     a.ViralScore(),
			cost:      a.Cost,
			time:      a.Time,
			synergy:   a.Synergy,
			technique: a,
		})
	}
	return out
}

func bundleCandidates(analyses []types.BundleAnalysis) []candidate {
	out := make([]candidate, 0, len(analyses))
	for i := range analyses {
		b := &analyses[i]
		if !b.Eligible {
			continue
		}
		out = append(out, candidate{
			id:     b.Bundle.ID,
			score:  b.Bundle.ViralScore,
			cost:   b.Cost,
			time:   b.Time,
			bundle: b,
		})
	}
	return out
}

// limits are the hard budget and time caps of a request
type limits struct {
	maxCost int
	maxTime int
}

func (l limits) fits(p *plan, c candidate) bool {
	_, cost, minutes := totals(p)
	return cost+c.cost <= l.maxCost && minutes+c.time <= l.maxTime
}

// greedy walks candidates in descending rank and adds each one that fits the limits and
// passes admit. Ties in rank go to higher synergy, then to the lower id. A nil admit
// accepts everything; a nil stop never ends the pass early.
func greedy(
	p *plan,
	candidates []candidate,
	lim limits,
	rank func(candidate) float64,
	admit func(*plan, candidate) bool,
	stop func(*plan) bool,
) {
	type ranked struct {
		c    candidate
		rank float64
	}
	ordered := make([]ranked, len(candidates))
	for i, c := range candidates {
		ordered[i] = ranked{c: c, rank: rank(c)}
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.rank != b.rank {
			return a.rank > b.rank
		}
		if a.c.synergy != b.c.synergy {
			return a.c.synergy > b.c.synergy
		}
		return a.c.id < b.c.id
	})

	for _, r := range ordered {
		if stop != nil && stop(p) {
			break
		}
		if p.overlaps(r.c) || !lim.fits(p, r.c) {
			continue
		}
		if admit != nil && !admit(p, r.c) {
			continue
		}
		p.add(r.c)
	}
}
