// Package main provides the entry point for the technique selection CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "technique_agent",
	Short: "Technique Selection Engine",
	Long:  "technique_agent picks the catalogued content techniques, bundles and bonus items that best meet a viral-score target under budget, time and character-preservation constraints.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
