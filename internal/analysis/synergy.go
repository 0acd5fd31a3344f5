package analysis

import (
	"strings"

	"github.com/jonathan/technique-selector/internal/scenario"
	"github.com/jonathan/technique-selector/internal/types"
)

const (
	baseSynergy         = 50.0
	sameCategoryBonus   = 20.0
	sharedTagBonus      = 10.0
	maxSharedTagBonus   = 30.0
	combinesWellBonus   = 25.0
	conflictingPairCost = 15.0
)

// conflictingCategories are pairs whose effects tend to fight each other
var conflictingCategories = map[[2]types.Category]bool{
	categoryPair(types.CategoryTransformation, types.CategoryCharacter):   true,
	categoryPair(types.CategoryTransformation, types.CategoryPhotography): true,
}

// Synergy is the pairwise compatibility of two techniques, in [0, 100].
// It is symmetric and depends only on category, tags and CombinesWith.
func Synergy(a, b types.Technique) float64 {
	s := baseSynergy

	if a.Category == b.Category {
		s += sameCategoryBonus
	}

	tagBonus := float64(sharedTags(a.Tags, b.Tags)) * sharedTagBonus
	if tagBonus > maxSharedTagBonus {
		tagBonus = maxSharedTagBonus
	}
	s += tagBonus

	if combinesWith(a, b) || combinesWith(b, a) {
		s += combinesWellBonus
	}

	if conflictingCategories[categoryPair(a.Category, b.Category)] {
		s -= conflictingPairCost
	}

	return clamp(s)
}

// MeanPairwiseSynergy averages Synergy over every unordered pair.
// Fewer than two techniques have neutral synergy.
func MeanPairwiseSynergy(techniques []types.Technique) float64 {
	if len(techniques) < 2 {
		return baseSynergy
	}
	total, pairs := 0.0, 0
	for i := 0; i < len(techniques); i++ {
		for j := i + 1; j < len(techniques); j++ {
			total += Synergy(techniques[i], techniques[j])
			pairs++
		}
	}
	return total / float64(pairs)
}

// synergyAgainst averages Synergy of t against every other technique in pool
func synergyAgainst(t types.Technique, pool []types.Technique) float64 {
	total, n := 0.0, 0
	for _, other := range pool {
		if other.ID == t.ID {
			continue
		}
		total += Synergy(t, other)
		n++
	}
	if n == 0 {
		return baseSynergy
	}
	return total / float64(n)
}

func sharedTags(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, tag := range scenario.NormalizeTags(a) {
		set[tag] = true
	}
	n := 0
	for _, tag := range scenario.NormalizeTags(b) {
		if set[tag] {
			n++
		}
	}
	return n
}

// combinesWith reports whether a names b's id or category in CombinesWith
func combinesWith(a, b types.Technique) bool {
	for _, ref := range a.CombinesWith {
		ref = strings.ToLower(strings.TrimSpace(ref))
		if ref == strings.ToLower(b.ID) || ref == string(b.Category) {
			return true
		}
	}
	return false
}

func categoryPair(a, b types.Category) [2]types.Category {
	if a > b {
		a, b = b, a
	}
	return [2]types.Category{a, b}
}
