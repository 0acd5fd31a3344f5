package scenario

import (
	"strings"
	"testing"

	"github.com/jonathan/technique-selector/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestAnalyze_Style(t *testing.T) {
	tests := []struct {
		name      string
		prompt    string
		wantStyle string
	}{
		{"empty prompt", "   ", StyleNeutral},
		{"plain prompt", "A woman walking her dog in the park", StyleRealistic},
		{"cartoon prompt", "Turn her into a cartoon character, anime eyes", StyleStylized},
		{"professional prompt", "Professional editorial headshot for a magazine", StyleProfessional},
		{"cinematic prompt", "Cinematic movie poster with dramatic skies", StyleCinematic},
		{"variant spelling", "Cartoonish portrait", StyleStylized},
		{"tie goes to higher priority", "anime business card", StyleStylized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Analyze(tt.prompt)
			assert.Equal(t, tt.wantStyle, s.Style)
		})
	}
}

func TestAnalyze_ComplexityHint(t *testing.T) {
	assert.Equal(t, types.ComplexitySimple, Analyze("short prompt").ComplexityHint)
	assert.Equal(t, types.ComplexityModerate, Analyze(strings.Repeat("a", 120)).ComplexityHint)
	assert.Equal(t, types.ComplexityComplex, Analyze(strings.Repeat("a", 300)).ComplexityHint)
}

func TestAnalyze_KeywordsDeduplicated(t *testing.T) {
	s := Analyze("Anime, anime and more ANIME with a comic twist")
	assert.Equal(t, []string{"anime", "comic"}, s.Keywords)
}

func TestBias(t *testing.T) {
	stylized := types.Scenario{Style: StyleStylized}
	assert.Equal(t, 5.0, Bias(stylized, types.CategoryTransformation))
	assert.Equal(t, -3.0, Bias(stylized, types.CategoryPhotography))
	assert.Equal(t, 0.0, Bias(stylized, types.CategoryBrand))

	neutral := types.Scenario{Style: StyleNeutral}
	assert.Equal(t, 0.0, Bias(neutral, types.CategoryViral))
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Trending ", "trend", "", "Memes", "meme!", "glow"})
	assert.Equal(t, []string{"trend", "meme", "glow"}, got)
}
