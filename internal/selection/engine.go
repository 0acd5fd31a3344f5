package selection

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/technique-selector/internal/analysis"
	"github.com/jonathan/technique-selector/internal/catalog"
	"github.com/jonathan/technique-selector/internal/costmodel"
	"github.com/jonathan/technique-selector/internal/scenario"
	"github.com/jonathan/technique-selector/internal/types"
)

// resultNamespace scopes deterministic result IDs
var resultNamespace = uuid.MustParse("6f1c2a4e-9b57-4d0e-8a3f-52c4d1e7b960")

// Catalog is the read-only technique source the engine selects from
type Catalog interface {
	Techniques() []types.Technique
	Bundles() []types.Bundle
	BonusTechniques() []types.Technique
	Technique(id string) (types.Technique, error)
	Fingerprint() string
}

// Engine selects techniques from one catalog. It holds no per-request state and is safe
// for concurrent use.
type Engine struct {
	catalog Catalog
	costs   *costmodel.Model
	tuning  Tuning
	logger  zerolog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithTuning overrides the default optimizer thresholds
func WithTuning(t Tuning) Option {
	return func(e *Engine) { e.tuning = t }
}

// WithLogger sets the logger used for strategy and summary events
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine builds an Engine. A nil cost model uses the default table.
// An empty catalog is a configuration error.
func NewEngine(c Catalog, costs *costmodel.Model, opts ...Option) (*Engine, error) {
	if c == nil || len(c.Techniques()) == 0 {
		return nil, &catalog.ConfigError{Message: "catalog has no techniques"}
	}
	if costs == nil {
		costs = costmodel.Default()
	}

	e := &Engine{
		catalog: c,
		costs:   costs,
		tuning:  DefaultTuning(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.tuning.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// SelectOptimalTechniques chooses the techniques, bundles and bonus techniques that best meet
// criteria. Invalid criteria are rejected before any scoring. A request no strategy can
// satisfy is not an error: the result is marked Infeasible and the reasoning says why.
func (e *Engine) SelectOptimalTechniques(
	criteria types.SelectionCriteria,
	character *types.CharacterIdentity,
	basePrompt string,
) (*types.SelectionResult, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	in := analysis.Input{
		Criteria:  criteria,
		Character: character,
		Scenario:  scenario.Analyze(basePrompt),
	}

	techniques := analysis.AnalyzeTechniques(e.catalog.Techniques(), e.costs, in)
	bundleReport := analysis.AnalyzeBundles(e.catalog.Bundles(), e.catalog, e.costs, in)

	sin := &strategyInput{
		techniques: techniques,
		bundles:    bundleReport.Analyses,
		criteria:   criteria,
		tuning:     e.tuning,
	}

	reasoning := []string{fmt.Sprintf("scenario: style %s, complexity hint %s",
		in.Scenario.Style, in.Scenario.ComplexityHint)}
	reasoning = append(reasoning, eligibilitySummary(techniques, criteria))
	reasoning = append(reasoning, bundleReport.Trace...)
	for _, w := range bundleReport.Warnings {
		e.logger.Warn().Str("catalog", e.catalog.Fingerprint()).Msg(w)
		reasoning = append(reasoning, "warning: "+w)
	}

	plans := runStrategies(sin)
	for _, p := range plans {
		score, cost, minutes := totals(p)
		ok := feasible(p, criteria)
		e.logger.Debug().
			Str("strategy", p.strategy).
			Float64("viral_score", score).
			Int("cost", cost).
			Int("time", minutes).
			Bool("feasible", ok).
			Msg("strategy evaluated")
		reasoning = append(reasoning, p.trace...)
		reasoning = append(reasoning, fmt.Sprintf("%s: viral score %.1f, cost %d, time %d min, %s",
			p.strategy, score, cost, minutes, feasibility(ok)))
	}

	d := chooseWinner(plans, sin)
	reasoning = append(reasoning, d.trace...)

	winner := d.winner
	traceStart := len(winner.trace)
	augmentWithBonus(winner, e.catalog.BonusTechniques(), e.costs, in, e.tuning)
	reasoning = append(reasoning, winner.trace[traceStart:]...)
	if d.infeasible && feasible(winner, criteria) {
		reasoning = append(reasoning, "bonus techniques brought the best-effort result within target, budget and time")
	}

	score, cost, minutes := totals(winner)
	result := &types.SelectionResult{
		ID:                 e.resultID(criteria, character, basePrompt),
		Strategy:           winner.strategy,
		Techniques:         winner.techniques,
		Bundles:            winner.bundles,
		BonusTechniques:    winner.bonus,
		TotalViralScore:    score,
		TotalCost:          cost,
		TotalTime:          minutes,
		SynergyScore:       analysis.MeanPairwiseSynergy(winner.picked),
		Infeasible:         d.infeasible,
		Reasoning:          reasoning,
		Warnings:           bundleReport.Warnings,
		Alternatives:       alternatives(winner, sin),
		Scenario:           in.Scenario,
		Criteria:           criteria,
		CatalogFingerprint: e.catalog.Fingerprint(),
	}

	event := e.logger.Info()
	if result.Infeasible {
		event = e.logger.Warn()
	}
	event.
		Str("id", result.ID).
		Str("strategy", result.Strategy).
		Float64("viral_score", result.TotalViralScore).
		Int("cost", result.TotalCost).
		Int("time", result.TotalTime).
		Int("techniques", len(result.Techniques)).
		Int("bundles", len(result.Bundles)).
		Int("bonus", len(result.BonusTechniques)).
		Bool("infeasible", result.Infeasible).
		Msg("selection complete")

	return result, nil
}

// Analyze scores every catalog technique for the request without selecting anything
func (e *Engine) Analyze(
	criteria types.SelectionCriteria,
	character *types.CharacterIdentity,
	basePrompt string,
) ([]types.TechniqueAnalysis, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	in := analysis.Input{
		Criteria:  criteria,
		Character: character,
		Scenario:  scenario.Analyze(basePrompt),
	}
	return analysis.AnalyzeTechniques(e.catalog.Techniques(), e.costs, in), nil
}

// resultID is a name-based UUID over the request and catalog, so equal inputs share an ID
func (e *Engine) resultID(criteria types.SelectionCriteria, character *types.CharacterIdentity, basePrompt string) string {
	// Plain data only, so Marshal cannot fail
	payload, _ := json.Marshal(struct {
		Criteria  types.SelectionCriteria  `json:"criteria"`
		Character *types.CharacterIdentity `json:"character"`
		Prompt    string                   `json:"prompt"`
		Catalog   string                   `json:"catalog"`
	}{criteria, character, basePrompt, e.catalog.Fingerprint()})
	return uuid.NewSHA1(resultNamespace, payload).String()
}

func eligibilitySummary(analyses []types.TechniqueAnalysis, criteria types.SelectionCriteria) string {
	eligible := 0
	for _, a := range analyses {
		if a.Eligible {
			eligible++
		}
	}
	return fmt.Sprintf("%d of %d techniques eligible for %s preservation up to %s complexity on %s",
		eligible, len(analyses), criteria.CharacterPreservation, criteria.MaxComplexity, criteria.Platform)
}

func feasibility(ok bool) string {
	if ok {
		return "feasible"
	}
	return "infeasible"
}

// alternatives lists every technique and bundle the winning plan left out, with the reason.
// Techniques come first, then bundles, each in catalog order.
func alternatives(winner *plan, in *strategyInput) []types.Alternative {
	_, cost, minutes := totals(winner)
	out := make([]types.Alternative, 0, len(in.techniques)+len(in.bundles))
	for _, a := range in.techniques {
		if winner.covered[a.Technique.ID] {
			continue
		}
		out = append(out, types.Alternative{
			TechniqueID: a.Technique.ID,
			Reason:      alternativeReason(a, winner, in, cost, minutes),
		})
	}

	chosen := make(map[string]bool, len(winner.bundles))
	for _, b := range winner.bundles {
		chosen[b.ID] = true
	}
	for _, b := range in.bundles {
		if chosen[b.Bundle.ID] {
			continue
		}
		out = append(out, types.Alternative{
			BundleID: b.Bundle.ID,
			Reason:   bundleAlternativeReason(b, winner, in, cost, minutes),
		})
	}
	return out
}

func bundleAlternativeReason(b types.BundleAnalysis, winner *plan, in *strategyInput, cost, minutes int) string {
	switch {
	case !b.Eligible:
		return b.ExclusionReason
	case winner.overlaps(candidate{id: b.Bundle.ID, bundle: &b}):
		return "shares techniques with the selection"
	case b.Cost > in.criteria.MaxCost-cost || b.Time > in.criteria.TimeConstraint-minutes:
		return "does not fit the remaining budget or time"
	case winner.strategy == StrategyIndividualFirst || winner.strategy == StrategyBestEffortOverride:
		return fmt.Sprintf("%s selects individual techniques only", winner.strategy)
	default:
		return fmt.Sprintf("ranked below the bundles chosen by %s", winner.strategy)
	}
}

func alternativeReason(a types.TechniqueAnalysis, winner *plan, in *strategyInput, cost, minutes int) string {
	lowRiskOnly := winner.strategy == StrategyBundleFirst || winner.strategy == StrategyHybrid
	switch {
	case !a.Eligible:
		return a.ExclusionReason
	case lowRiskOnly && a.CharacterRisk > in.tuning.LowRiskCeiling:
		return fmt.Sprintf("character risk %.1f exceeds low-risk ceiling %.0f used by %s",
			a.CharacterRisk, in.tuning.LowRiskCeiling, winner.strategy)
	case a.Cost > in.criteria.MaxCost-cost || a.Time > in.criteria.TimeConstraint-minutes:
		return "does not fit the remaining budget or time"
	default:
		return fmt.Sprintf("ranked below the techniques chosen by %s", winner.strategy)
	}
}
