package scenario

import "strings"

// keywordNormalizations folds common spelling variants onto one canonical keyword
var keywordNormalizations = map[string]string{
	"cartoonish":    "cartoon",
	"cartoons":      "cartoon",
	"animé":         "anime",
	"manga-style":   "manga",
	"comics":        "comic",
	"illustrated":   "illustration",
	"illustrations": "illustration",
	"3d-animated":   "pixar",
	"editorial-ish": "editorial",
	"pro":           "professional",
	"corp":          "corporate",
	"biz":           "business",
	"headshots":     "headshot",
	"films":         "film",
	"movies":        "movie",
	"filmic":        "cinematic",
	"hollywood":     "movie",
	"viral":         "viral",
	"trending":      "trend",
	"trends":        "trend",
	"memes":         "meme",
}

// NormalizeKeyword lowercases, trims punctuation and folds known variants.
// Returns "" for input that carries no word characters.
func NormalizeKeyword(word string) string {
	w := strings.ToLower(strings.TrimSpace(word))
	w = strings.Trim(w, ".,;:!?\"'()[]{}")
	if w == "" {
		return ""
	}
	if canonical, ok := keywordNormalizations[w]; ok {
		return canonical
	}
	return w
}

// NormalizeTags normalizes a tag list and drops empties and duplicates, keeping first-seen order
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		n := NormalizeKeyword(tag)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
