package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so package-level flag variables do not leak
// between tests
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command in-process and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(databaseURLEnv, "")
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const criteriaJSON = `{
	"target_viral_score": 80,
	"max_cost": 400,
	"max_complexity": "expert",
	"platform": "tiktok",
	"content_type": "video",
	"character_preservation": "flexible",
	"time_constraint": 30,
	"quality_level": "high"
}`

const twoTechniqueCatalog = `
techniques:
  - id: a
    name: Technique A
    category: viral
    complexity: complex
    viral_potential: viral-guaranteed
  - id: b
    name: Technique B
    category: enhancement
    complexity: simple
    viral_potential: high
bundles:
  - id: ghost-pack
    name: Ghost Pack
    technique_ids: [a, ghost]
    viral_score: 70
`
