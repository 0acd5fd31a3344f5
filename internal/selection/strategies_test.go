package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/technique-selector/internal/catalog"
	"github.com/jonathan/technique-selector/internal/types"
)

func bundleIDs(p *plan) []string {
	ids := make([]string, 0, len(p.bundles))
	for _, b := range p.bundles {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestBundleFirst(t *testing.T) {
	in := newStrategyInput(t, packCatalog(t), criteria(80, 400, types.PreservationFlexible), DefaultTuning())

	p := bundleFirst(in, in.limits())

	assert.Equal(t, []string{"ab"}, bundleIDs(p))
	// a and b are covered by the bundle; m is eligible but above the low-risk ceiling
	assert.Equal(t, []string{"d"}, selectedIDs(p))

	score, cost, minutes := totals(p)
	assert.Equal(t, 100.0, score)
	assert.Equal(t, 330, cost)
	assert.Equal(t, 10, minutes)
}

func TestIndividualFirst(t *testing.T) {
	// under moderate preservation m (transformation) is above the risk threshold
	t.Run("stops at target", func(t *testing.T) {
		in := newStrategyInput(t, packCatalog(t), criteria(50, 1000, types.PreservationModerate), DefaultTuning())

		p := individualFirst(in, in.limits())

		assert.Equal(t, []string{"b"}, selectedIDs(p))
		assert.Empty(t, p.bundles)
	})

	t.Run("ranks by weighted value", func(t *testing.T) {
		in := newStrategyInput(t, packCatalog(t), criteria(100, 1000, types.PreservationModerate), DefaultTuning())

		p := individualFirst(in, in.limits())

		assert.Equal(t, []string{"b", "a"}, selectedIDs(p))
		score, cost, _ := totals(p)
		assert.Equal(t, 100.0, score)
		assert.Equal(t, 350, cost)
	})

	t.Run("risky technique ranks first when allowed", func(t *testing.T) {
		in := newStrategyInput(t, packCatalog(t), criteria(50, 1000, types.PreservationFlexible), DefaultTuning())

		p := individualFirst(in, in.limits())

		assert.Equal(t, []string{"m"}, selectedIDs(p))
	})
}

func TestHybrid(t *testing.T) {
	t.Run("seeds with bundle and closes gap", func(t *testing.T) {
		in := newStrategyInput(t, packCatalog(t), criteria(95, 400, types.PreservationFlexible), DefaultTuning())

		p := hybrid(in, in.limits())

		assert.Equal(t, []string{"ab"}, bundleIDs(p))
		assert.Equal(t, []string{"d"}, selectedIDs(p))
		assert.Contains(t, p.trace[0], "seeded with bundle ab")
	})

	t.Run("contribution threshold rejects small techniques", func(t *testing.T) {
		tuning := DefaultTuning()
		tuning.HybridContributionFloor = 25
		tuning.HybridContributionRatio = 10
		in := newStrategyInput(t, packCatalog(t), criteria(95, 400, types.PreservationFlexible), tuning)

		p := hybrid(in, in.limits())

		assert.Equal(t, []string{"ab"}, bundleIDs(p))
		assert.Empty(t, p.techniques, "d contributes 20, below min(25, 5 x 10)")
	})

	t.Run("bundle does not fit alone", func(t *testing.T) {
		in := newStrategyInput(t, packCatalog(t), criteria(95, 200, types.PreservationFlexible), DefaultTuning())

		p := hybrid(in, in.limits())

		assert.Empty(t, p.bundles)
		assert.Equal(t, []string{"b", "d"}, selectedIDs(p))
		assert.Contains(t, p.trace[0], "does not fit")
	})
}

func TestDescend_FindsCheaperPlan(t *testing.T) {
	c, err := catalog.New(&types.CatalogData{
		Techniques: []types.Technique{
			// ranks first on platform fit but costs the whole budget
			technique("x", types.CategoryViral, types.ComplexityExpert, types.ViralLow, types.PlatformTikTok),
			technique("y", types.CategoryBrand, types.ComplexityModerate, types.ViralMedium),
			technique("z", types.CategoryBrand, types.ComplexityModerate, types.ViralMedium),
		},
	})
	require.NoError(t, err)
	in := newStrategyInput(t, c, criteria(80, 650, types.PreservationFlexible), DefaultTuning())

	full := individualFirst(in, in.limits())
	require.Equal(t, []string{"x"}, selectedIDs(full))
	assert.False(t, feasible(full, in.criteria))

	best := descend(in, individualFirst)
	assert.ElementsMatch(t, []string{"y", "z"}, selectedIDs(best))
	assert.True(t, feasible(best, in.criteria))
	assert.Equal(t, 599, best.budget)
	require.NotEmpty(t, best.trace)
	assert.Contains(t, best.trace[len(best.trace)-1], "budget levels tried")
}

func TestBestEfficiencyBundle(t *testing.T) {
	bundles := []types.BundleAnalysis{
		{Bundle: types.Bundle{ID: "b"}, Efficiency: 10, Fit: 50, Eligible: true},
		{Bundle: types.Bundle{ID: "a"}, Efficiency: 10, Fit: 50, Eligible: true},
		{Bundle: types.Bundle{ID: "c"}, Efficiency: 30, Fit: 50, Eligible: false},
		{Bundle: types.Bundle{ID: "d"}, Efficiency: 10, Fit: 70, Eligible: true},
	}

	best, ok := bestEfficiencyBundle(bundles)
	require.True(t, ok)
	assert.Equal(t, "d", best.Bundle.ID)

	best, ok = bestEfficiencyBundle(bundles[:2])
	require.True(t, ok)
	assert.Equal(t, "a", best.Bundle.ID)

	_, ok = bestEfficiencyBundle(nil)
	assert.False(t, ok)
}
