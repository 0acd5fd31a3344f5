package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/technique-selector/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect, validate and seed technique catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the techniques, bundles and bonus techniques of a catalog",
	RunE:  runCatalogList,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a catalog file against the schema and integrity rules",
	RunE:  runCatalogValidate,
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the catalog stored in PostgreSQL with a catalog file",
	RunE:  runCatalogSeed,
}

var (
	catalogPath  string
	catalogDBURL string
	catalogFile  string
)

func init() {
	catalogListCmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to a JSON or YAML catalog file (default: embedded catalog)")
	catalogListCmd.Flags().StringVar(&catalogDBURL, "db-url", "", "PostgreSQL URL to load the catalog from")
	catalogListCmd.MarkFlagsMutuallyExclusive("catalog", "db-url")

	catalogValidateCmd.Flags().StringVarP(&catalogFile, "file", "f", "", "Path to the catalog file (required)")
	if err := catalogValidateCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	catalogSeedCmd.Flags().StringVarP(&catalogFile, "file", "f", "", "Path to the catalog file (required)")
	catalogSeedCmd.Flags().StringVar(&catalogDBURL, "db-url", "", "PostgreSQL URL (default: $DATABASE_URL)")
	if err := catalogSeedCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	catalogCmd.AddCommand(catalogListCmd, catalogValidateCmd, catalogSeedCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	cat, source, err := loadCatalog(cmd.Context(), catalogPath, catalogDBURL)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Catalog: %s (fingerprint %s)\n\n", source, cat.Fingerprint())

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCATEGORY\tCOMPLEXITY\tVIRAL POTENTIAL")
	for _, t := range cat.Techniques() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Category, t.Complexity, t.ViralPotential)
	}
	_ = w.Flush()

	if bundles := cat.Bundles(); len(bundles) > 0 {
		_, _ = fmt.Fprintln(out, "\nBundles:")
		for _, b := range bundles {
			_, _ = fmt.Fprintf(out, "  %s: %v (viral %.0f)\n", b.ID, b.TechniqueIDs, b.ViralScore)
		}
	}
	if bonus := cat.BonusTechniques(); len(bonus) > 0 {
		_, _ = fmt.Fprintln(out, "\nBonus techniques:")
		for _, t := range bonus {
			_, _ = fmt.Fprintf(out, "  %s (%s)\n", t.ID, t.ViralPotential)
		}
	}
	return nil
}

func runCatalogValidate(cmd *cobra.Command, _ []string) error {
	cat, err := catalog.LoadFile(catalogFile)
	if err != nil {
		var loadErr *catalog.LoadError
		var cfgErr *catalog.ConfigError
		if errors.As(err, &loadErr) || errors.As(err, &cfgErr) {
			return fmt.Errorf("validation failed: %w", err)
		}
		return fmt.Errorf("failed to validate catalog: %w", err)
	}

	out := cmd.OutOrStdout()
	unresolved := 0
	for _, b := range cat.Bundles() {
		for _, id := range b.TechniqueIDs {
			if _, err := cat.Technique(id); errors.Is(err, catalog.ErrNotFound) {
				unresolved++
				_, _ = fmt.Fprintf(out, "Warning: bundle %s references unknown technique %s\n", b.ID, id)
			}
		}
	}

	_, _ = fmt.Fprintf(out, "Validation passed: %d techniques, %d bundles, %d bonus techniques\n",
		len(cat.Techniques()), len(cat.Bundles()), len(cat.BonusTechniques()))
	if unresolved > 0 {
		_, _ = fmt.Fprintf(out, "%d bundle member(s) will be skipped at selection time\n", unresolved)
	}
	return nil
}

func runCatalogSeed(cmd *cobra.Command, _ []string) error {
	dbURL := catalogDBURL
	if dbURL == "" {
		dbURL = os.Getenv(databaseURLEnv)
	}
	if dbURL == "" {
		return fmt.Errorf("database URL is required: pass --db-url or set %s", databaseURLEnv)
	}

	cat, err := catalog.LoadFile(catalogFile)
	if err != nil {
		return fmt.Errorf("failed to load catalog file: %w", err)
	}

	ctx := cmd.Context()
	store, err := catalog.Connect(ctx, dbURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := store.Seed(ctx, cat.Data()); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d techniques, %d bundles, %d bonus techniques (fingerprint %s)\n",
		len(cat.Techniques()), len(cat.Bundles()), len(cat.BonusTechniques()), cat.Fingerprint())
	return nil
}
