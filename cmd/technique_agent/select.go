package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/technique-selector/internal/config"
	"github.com/jonathan/technique-selector/internal/logging"
	"github.com/jonathan/technique-selector/internal/observability"
	"github.com/jonathan/technique-selector/internal/schemas"
	"github.com/jonathan/technique-selector/internal/selection"
	"github.com/jonathan/technique-selector/internal/types"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select techniques for a request",
	Long:  "Reads SelectionCriteria (and optionally a CharacterIdentity) from JSON, runs the selection engine against the catalog, and writes a SelectionResult JSON.",
	RunE:  runSelect,
}

var (
	selectCriteria   string
	selectCharacter  string
	selectPrompt     string
	selectPromptFile string
	selectCatalog    string
	selectDBURL      string
	selectConfig     string
	selectOutput     string
	selectLogLevel   string
	selectVerbose    bool
)

func init() {
	selectCmd.Flags().StringVarP(&selectCriteria, "criteria", "c", "", "Path to SelectionCriteria JSON file (required)")
	selectCmd.Flags().StringVar(&selectCharacter, "character", "", "Path to CharacterIdentity JSON file (optional)")
	selectCmd.Flags().StringVarP(&selectPrompt, "prompt", "p", "", "Base prompt text")
	selectCmd.Flags().StringVar(&selectPromptFile, "prompt-file", "", "Path to a file holding the base prompt")
	selectCmd.Flags().StringVar(&selectCatalog, "catalog", "", "Path to a JSON or YAML catalog file (default: embedded catalog)")
	selectCmd.Flags().StringVar(&selectDBURL, "db-url", "", "PostgreSQL URL to load the catalog from")
	selectCmd.Flags().StringVar(&selectConfig, "config", "", "Path to a JSON config file")
	selectCmd.Flags().StringVarP(&selectOutput, "out", "o", "", "Path to output SelectionResult JSON file (default: stdout)")
	selectCmd.Flags().StringVar(&selectLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	selectCmd.Flags().BoolVarP(&selectVerbose, "verbose", "v", false, "Print analysis and reasoning to stderr")

	if err := selectCmd.MarkFlagRequired("criteria"); err != nil {
		panic(fmt.Sprintf("failed to mark criteria flag as required: %v", err))
	}
	selectCmd.MarkFlagsMutuallyExclusive("prompt", "prompt-file")
	selectCmd.MarkFlagsMutuallyExclusive("catalog", "db-url")

	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, _ []string) error {
	// Config file values act as defaults for flags
	fileCfg := config.Config{}
	if selectConfig != "" {
		loaded, err := config.LoadConfig(selectConfig)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		fileCfg = *loaded
	}
	flagCfg := config.Config{
		CatalogPath: selectCatalog,
		DatabaseURL: selectDBURL,
		LogLevel:    selectLogLevel,
	}
	cfg := flagCfg.MergeWithDefaults(fileCfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.InitWithWriter(cfg.LogLevel, cmd.ErrOrStderr())

	criteria, err := readCriteria(selectCriteria)
	if err != nil {
		return err
	}
	character, err := readCharacter(selectCharacter)
	if err != nil {
		return err
	}
	prompt, err := readPrompt(selectPrompt, selectPromptFile)
	if err != nil {
		return err
	}

	cat, source, err := loadCatalog(cmd.Context(), cfg.CatalogPath, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	logger.Debug().Str("source", source).Str("fingerprint", cat.Fingerprint()).Msg("catalog loaded")

	costs, err := cfg.CostModel()
	if err != nil {
		return fmt.Errorf("invalid cost configuration: %w", err)
	}
	engine, err := selection.NewEngine(cat, costs,
		selection.WithTuning(cfg.SelectionTuning()),
		selection.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create selection engine: %w", err)
	}

	result, err := engine.SelectOptimalTechniques(criteria, character, prompt)
	if err != nil {
		var critErr *types.CriteriaError
		if errors.As(err, &critErr) {
			return fmt.Errorf("criteria rejected: %w", err)
		}
		return fmt.Errorf("selection failed: %w", err)
	}

	if selectVerbose || cfg.Verbose {
		analyses, err := engine.Analyze(criteria, character, prompt)
		if err != nil {
			return fmt.Errorf("failed to analyze techniques: %w", err)
		}
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintScenario(result.Scenario)
		printer.PrintTechniqueAnalyses(analyses)
		printer.PrintSelectionResult(result)
		printer.PrintReasoning(result)
		printer.PrintWarnings(result)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal selection result to JSON: %w", err)
	}

	// Validate output against schema (non-fatal)
	if err := schemas.ValidateDocument(schemas.SelectionResultSchema, jsonBytes); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			logger.Warn().Err(err).Msg("selection result does not validate against schema")
		} else {
			logger.Warn().Err(err).Msg("could not validate selection result against schema")
		}
	}

	if selectOutput == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(selectOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(selectOutput, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write selection result to output file: %w", err)
	}

	status := "feasible"
	if result.Infeasible {
		status = "best effort"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Selected %d techniques, %d bundles, %d bonus (%s, viral %.1f, cost %d, time %d min)\n",
		len(result.Techniques), len(result.Bundles), len(result.BonusTechniques),
		status, result.TotalViralScore, result.TotalCost, result.TotalTime)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", selectOutput)
	return nil
}

func readCriteria(path string) (types.SelectionCriteria, error) {
	var criteria types.SelectionCriteria
	content, err := os.ReadFile(path)
	if err != nil {
		return criteria, fmt.Errorf("failed to read criteria file: %w", err)
	}
	if err := json.Unmarshal(content, &criteria); err != nil {
		return criteria, fmt.Errorf("failed to unmarshal criteria JSON: %w", err)
	}
	return criteria, nil
}

func readCharacter(path string) (*types.CharacterIdentity, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read character file: %w", err)
	}
	var character types.CharacterIdentity
	if err := json.Unmarshal(content, &character); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character JSON: %w", err)
	}
	return &character, nil
}

func readPrompt(prompt, promptFile string) (string, error) {
	if promptFile == "" {
		return prompt, nil
	}
	content, err := os.ReadFile(promptFile)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt file: %w", err)
	}
	return string(content), nil
}
