// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/technique-selector/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens line to at most width runes, marking the cut with "..."
func truncate(line string, width int) string {
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width-3]) + "..."
}

// PrintScenario outputs the scenario classification of the base prompt.
func (p *Printer) PrintScenario(s types.Scenario) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Style:       %s\n", s.Style))
	sb.WriteString(fmt.Sprintf("Complexity:  %s", s.ComplexityHint))
	if len(s.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("\nKeywords:    %s", strings.Join(s.Keywords, ", ")))
	}
	p.printBox("SCENARIO", sb.String())
}

// PrintTechniqueAnalyses outputs the top eligible techniques by viral value, then a count
// of the excluded ones.
func (p *Printer) PrintTechniqueAnalyses(analyses []types.TechniqueAnalysis) {
	if len(analyses) == 0 {
		return
	}

	eligible := make([]types.TechniqueAnalysis, 0, len(analyses))
	excluded := 0
	for _, a := range analyses {
		if a.Eligible {
			eligible = append(eligible, a)
		} else {
			excluded++
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].ViralValue > eligible[j].ViralValue
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Eligible: %d   Excluded: %d\n\n", len(eligible), excluded))

	count := min(len(eligible), maxItemsToShow)
	for i := 0; i < count; i++ {
		a := eligible[i]
		sb.WriteString(fmt.Sprintf("#%d  %s (%s)\n", i+1, a.Technique.ID, a.Technique.Complexity))
		sb.WriteString(fmt.Sprintf("    Value: %.1f/$  Fit: %.0f  Risk: %.0f\n", a.ViralValue, a.PlatformFit, a.CharacterRisk))
	}
	if len(eligible) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more eligible", len(eligible)-maxItemsToShow))
	}

	p.printBox("TECHNIQUE ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSelectionResult outputs the chosen techniques, bundles and totals.
func (p *Printer) PrintSelectionResult(result *types.SelectionResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Strategy:  %s\n", result.Strategy))
	sb.WriteString(fmt.Sprintf("Viral:     %.1f (target %.1f)\n", result.TotalViralScore, result.Criteria.TargetViralScore))
	sb.WriteString(fmt.Sprintf("Cost:      %d / %d\n", result.TotalCost, result.Criteria.MaxCost))
	sb.WriteString(fmt.Sprintf("Time:      %d / %d min\n", result.TotalTime, result.Criteria.TimeConstraint))
	sb.WriteString(fmt.Sprintf("Synergy:   %.1f\n", result.SynergyScore))
	if result.Infeasible {
		sb.WriteString("⚠ best effort: constraints could not all be met\n")
	}

	if len(result.Bundles) > 0 {
		sb.WriteString("\nBundles:\n")
		for _, b := range result.Bundles {
			sb.WriteString(fmt.Sprintf("  • %s [%s]\n", b.ID, strings.Join(b.TechniqueIDs, ", ")))
		}
	}
	if len(result.Techniques) > 0 {
		sb.WriteString("\nTechniques:\n")
		for _, t := range result.Techniques {
			sb.WriteString(fmt.Sprintf("  • %s (+%.0f, %d, %d min)\n", t.ID, t.ViralScore, t.Cost, t.Time))
		}
	}
	if len(result.BonusTechniques) > 0 {
		sb.WriteString("\nBonus:\n")
		for _, t := range result.BonusTechniques {
			sb.WriteString(fmt.Sprintf("  • %s (+%.0f)\n", t.ID, t.ViralScore))
		}
	}

	p.printBox("SELECTION RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReasoning outputs the decision trace, one step per line.
func (p *Printer) PrintReasoning(result *types.SelectionResult) {
	if result == nil || len(result.Reasoning) == 0 {
		return
	}

	var sb strings.Builder
	for i, line := range result.Reasoning {
		sb.WriteString(fmt.Sprintf("%2d. %s\n", i+1, line))
	}
	p.printBox("REASONING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs catalog problems found while selecting.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarnings(result *types.SelectionResult) {
	if result == nil || len(result.Warnings) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO CATALOG WARNINGS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d warnings:\n\n", len(result.Warnings)))
	for _, w := range result.Warnings {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", w))
	}

	p.printBox("CATALOG WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}
