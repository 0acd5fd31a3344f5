package costmodel

import (
	"testing"

	"github.com/jonathan/technique-selector/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Lookup(t *testing.T) {
	m := Default()

	tests := []struct {
		tier     types.ComplexityTier
		wantCost int
		wantTime int
	}{
		{types.ComplexitySimple, 50, 2},
		{types.ComplexityModerate, 150, 5},
		{types.ComplexityComplex, 300, 10},
		{types.ComplexityExpert, 600, 20},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			assert.Equal(t, tt.wantCost, m.Cost(tt.tier))
			assert.Equal(t, tt.wantTime, m.Time(tt.tier))
		})
	}
}

func TestBundleDiscounts(t *testing.T) {
	m := Default()
	members := []types.Technique{
		{ID: "a", Complexity: types.ComplexityComplex},  // 300 / 10
		{ID: "b", Complexity: types.ComplexityModerate}, // 150 / 5
	}

	// (300+150) * 0.8 = 360, (10+5) * 0.7 = 10.5 -> 11
	assert.Equal(t, 360, m.BundleCost(members))
	assert.Equal(t, 11, m.BundleTime(members))
	assert.Equal(t, 0, m.BundleCost(nil))
}

func TestNew_RejectsIncompleteTable(t *testing.T) {
	_, err := New(map[types.ComplexityTier]Estimate{
		types.ComplexitySimple: {Cost: 10, Time: 1},
	}, 0.2, 0.3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing tier")
}

func TestNew_RejectsBadDiscount(t *testing.T) {
	_, err := New(DefaultTable, 1.0, 0.3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cost discount")

	_, err = New(DefaultTable, 0.2, -0.1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time discount")
}

func TestNew_CopiesTable(t *testing.T) {
	table := map[types.ComplexityTier]Estimate{}
	for k, v := range DefaultTable {
		table[k] = v
	}
	m, err := New(table, 0, 0)
	require.NoError(t, err)

	table[types.ComplexitySimple] = Estimate{Cost: 9999, Time: 99}
	assert.Equal(t, 50, m.Cost(types.ComplexitySimple))
}

func TestDollars(t *testing.T) {
	assert.InDelta(t, 3.0, Dollars(300), 1e-9)
	assert.InDelta(t, 0.5, Dollars(50), 1e-9)
}
