package selection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/technique-selector/internal/analysis"
	"github.com/jonathan/technique-selector/internal/catalog"
	"github.com/jonathan/technique-selector/internal/costmodel"
	"github.com/jonathan/technique-selector/internal/types"
)

func technique(id string, category types.Category, complexity types.ComplexityTier, potential types.ViralPotential, platforms ...types.Platform) types.Technique {
	return types.Technique{
		ID:             id,
		Name:           id,
		Category:       category,
		Complexity:     complexity,
		ViralPotential: potential,
		Platforms:      platforms,
	}
}

// bonusPool is shared by the engine fixtures
func bonusPool() []types.Technique {
	return []types.Technique{
		technique("hook", types.CategoryViral, types.ComplexitySimple, types.ViralHigh, types.PlatformTikTok),
		technique("sparkle", types.CategoryEnhancement, types.ComplexitySimple, types.ViralLow, types.PlatformTikTok, types.PlatformInstagram),
		technique("zoom", types.CategoryEnhancement, types.ComplexitySimple, types.ViralMedium, types.PlatformYouTube),
		technique("morph-bonus", types.CategoryTransformation, types.ComplexitySimple, types.ViralGuaranteed),
	}
}

// abCatalog holds technique A (complex, viral-guaranteed) and technique B (simple, high)
func abCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(&types.CatalogData{
		Techniques: []types.Technique{
			technique("a", types.CategoryViral, types.ComplexityComplex, types.ViralGuaranteed),
			technique("b", types.CategoryEnhancement, types.ComplexitySimple, types.ViralHigh),
		},
		BonusTechniques: bonusPool(),
	})
	require.NoError(t, err)
	return c
}

// packCatalog adds a bundle of A and B, a risky transformation M and a cheap low-viral D
func packCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(&types.CatalogData{
		Techniques: []types.Technique{
			technique("a", types.CategoryViral, types.ComplexityComplex, types.ViralGuaranteed),
			technique("b", types.CategoryEnhancement, types.ComplexitySimple, types.ViralHigh),
			technique("m", types.CategoryTransformation, types.ComplexitySimple, types.ViralHigh),
			technique("d", types.CategoryEnhancement, types.ComplexitySimple, types.ViralLow),
		},
		Bundles: []types.Bundle{
			{ID: "ab", Name: "AB Pack", TechniqueIDs: []string{"a", "b"}, ViralScore: 90, Platforms: []types.Platform{types.PlatformTikTok}},
		},
	})
	require.NoError(t, err)
	return c
}

func criteria(target float64, maxCost int, level types.PreservationLevel) types.SelectionCriteria {
	return types.SelectionCriteria{
		TargetViralScore:      target,
		MaxCost:               maxCost,
		MaxComplexity:         types.ComplexityExpert,
		Platform:              types.PlatformTikTok,
		ContentType:           "video",
		CharacterPreservation: level,
		TimeConstraint:        30,
		QualityLevel:          types.QualityHigh,
	}
}

func newStrategyInput(t *testing.T, c *catalog.Catalog, crit types.SelectionCriteria, tuning Tuning) *strategyInput {
	t.Helper()
	in := analysis.Input{Criteria: crit}
	costs := costmodel.Default()
	return &strategyInput{
		techniques: analysis.AnalyzeTechniques(c.Techniques(), costs, in),
		bundles:    analysis.AnalyzeBundles(c.Bundles(), c, costs, in).Analyses,
		criteria:   crit,
		tuning:     tuning,
	}
}

func newTestEngine(t *testing.T, c Catalog, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(c, costmodel.Default(), opts...)
	require.NoError(t, err)
	return e
}
