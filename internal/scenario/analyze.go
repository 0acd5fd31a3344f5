// Package scenario classifies a free-text base prompt into a style and complexity hint.
// The classification only nudges scoring; it never removes a technique from consideration.
package scenario

import (
	"strings"
	"unicode"

	"github.com/jonathan/technique-selector/internal/types"
)

// Style values
const (
	StyleNeutral      = "neutral"
	StyleRealistic    = "realistic"
	StyleStylized     = "stylized"
	StyleProfessional = "professional"
	StyleCinematic    = "cinematic"
)

const (
	// simplePromptChars is the length below which a prompt is treated as simple
	simplePromptChars = 80
	// moderatePromptChars is the length below which a prompt is treated as moderate
	moderatePromptChars = 250
	// maxBias caps the absolute platform-fit adjustment contributed by the scenario
	maxBias = 5.0
)

// styleKeywords are checked in priority order; ties in match count go to the earlier style
var styleKeywords = []struct {
	style    string
	keywords []string
}{
	{StyleStylized, []string{"cartoon", "anime", "manga", "comic", "illustration", "pixar", "sketch", "drawing", "painted"}},
	{StyleProfessional, []string{"professional", "editorial", "corporate", "business", "studio", "headshot", "linkedin"}},
	{StyleCinematic, []string{"cinematic", "film", "movie", "dramatic", "blockbuster"}},
}

// styleBias is the per-category platform-fit nudge for each style
var styleBias = map[string]map[types.Category]float64{
	StyleStylized: {
		types.CategoryTransformation: 5,
		types.CategoryViral:          3,
		types.CategoryPhotography:    -3,
	},
	StyleProfessional: {
		types.CategoryPhotography:    5,
		types.CategoryBrand:          5,
		types.CategoryTransformation: -5,
	},
	StyleCinematic: {
		types.CategoryCinematic: 5,
		types.CategoryLighting:  3,
	},
	StyleRealistic: {
		types.CategoryPhotography: 2,
		types.CategoryLighting:    2,
	},
}

// Analyze classifies the base prompt. It is a pure function of its input.
func Analyze(basePrompt string) types.Scenario {
	trimmed := strings.TrimSpace(basePrompt)
	if trimmed == "" {
		return types.Scenario{
			Style:          StyleNeutral,
			ComplexityHint: types.ComplexitySimple,
			Keywords:       []string{},
		}
	}

	words := strings.FieldsFunc(trimmed, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})

	known := make(map[string]string)
	for _, group := range styleKeywords {
		for _, kw := range group.keywords {
			known[kw] = group.style
		}
	}

	counts := make(map[string]int)
	keywords := make([]string, 0)
	seen := make(map[string]bool)
	for _, w := range words {
		n := NormalizeKeyword(w)
		style, ok := known[n]
		if !ok {
			continue
		}
		counts[style]++
		if !seen[n] {
			seen[n] = true
			keywords = append(keywords, n)
		}
	}

	style := StyleRealistic
	best := 0
	for _, group := range styleKeywords {
		if counts[group.style] > best {
			best = counts[group.style]
			style = group.style
		}
	}

	return types.Scenario{
		Style:          style,
		ComplexityHint: complexityHint(len(trimmed)),
		Keywords:       keywords,
	}
}

// Bias returns the soft platform-fit adjustment for a category under the scenario
func Bias(s types.Scenario, category types.Category) float64 {
	b := styleBias[s.Style][category]
	if b > maxBias {
		return maxBias
	}
	if b < -maxBias {
		return -maxBias
	}
	return b
}

func complexityHint(length int) types.ComplexityTier {
	switch {
	case length < simplePromptChars:
		return types.ComplexitySimple
	case length < moderatePromptChars:
		return types.ComplexityModerate
	default:
		return types.ComplexityComplex
	}
}
