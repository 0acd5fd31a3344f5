// Package costmodel maps technique complexity tiers to estimated cost and processing time.
package costmodel

import (
	"fmt"
	"math"

	"github.com/jonathan/technique-selector/internal/types"
)

const (
	// DefaultBundleCostDiscount is the fraction taken off the summed member cost of a bundle
	DefaultBundleCostDiscount = 0.20
	// DefaultBundleTimeDiscount is the fraction taken off the summed member time of a bundle
	DefaultBundleTimeDiscount = 0.30
)

// Estimate is the cost (minor units) and time (minutes) of one tier
type Estimate struct {
	Cost int `json:"cost"`
	Time int `json:"time"`
}

// DefaultTable is the fixed lookup used when no override is configured
var DefaultTable = map[types.ComplexityTier]Estimate{
	types.ComplexitySimple:   {Cost: 50, Time: 2},
	types.ComplexityModerate: {Cost: 150, Time: 5},
	types.ComplexityComplex:  {Cost: 300, Time: 10},
	types.ComplexityExpert:   {Cost: 600, Time: 20},
}

// Model is a deterministic tier lookup. It is safe for concurrent use.
type Model struct {
	table        map[types.ComplexityTier]Estimate
	costDiscount float64
	timeDiscount float64
}

// Default returns a Model with the default table and discounts
func Default() *Model {
	m, err := New(DefaultTable, DefaultBundleCostDiscount, DefaultBundleTimeDiscount)
	if err != nil {
		panic(fmt.Sprintf("default cost table is invalid: %v", err))
	}
	return m
}

// New builds a Model. Every tier must be present with non-negative values and
// both discounts must lie in [0, 1).
func New(table map[types.ComplexityTier]Estimate, costDiscount, timeDiscount float64) (*Model, error) {
	copied := make(map[types.ComplexityTier]Estimate, len(types.ComplexityTiers))
	for _, tier := range types.ComplexityTiers {
		est, ok := table[tier]
		if !ok {
			return nil, fmt.Errorf("cost table is missing tier %q", tier)
		}
		if est.Cost < 0 || est.Time < 0 {
			return nil, fmt.Errorf("cost table entry for %q must be non-negative", tier)
		}
		copied[tier] = est
	}
	if costDiscount < 0 || costDiscount >= 1 {
		return nil, fmt.Errorf("bundle cost discount must be in [0, 1), got %v", costDiscount)
	}
	if timeDiscount < 0 || timeDiscount >= 1 {
		return nil, fmt.Errorf("bundle time discount must be in [0, 1), got %v", timeDiscount)
	}
	return &Model{table: copied, costDiscount: costDiscount, timeDiscount: timeDiscount}, nil
}

// Cost returns the estimated cost of a tier in minor currency units
func (m *Model) Cost(tier types.ComplexityTier) int {
	return m.table[tier].Cost
}

// Time returns the estimated processing time of a tier in minutes
func (m *Model) Time(tier types.ComplexityTier) int {
	return m.table[tier].Time
}

// BundleCost sums member costs and applies the bundle discount
func (m *Model) BundleCost(members []types.Technique) int {
	sum := 0
	for _, t := range members {
		sum += m.Cost(t.Complexity)
	}
	return int(math.Round(float64(sum) * (1 - m.costDiscount)))
}

// BundleTime sums member times and applies the bundle discount
func (m *Model) BundleTime(members []types.Technique) int {
	sum := 0
	for _, t := range members {
		sum += m.Time(t.Complexity)
	}
	return int(math.Round(float64(sum) * (1 - m.timeDiscount)))
}

// Dollars converts minor units to major units for per-dollar ratios
func Dollars(minorUnits int) float64 {
	return float64(minorUnits) / 100
}
