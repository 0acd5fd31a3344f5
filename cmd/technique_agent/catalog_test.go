package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogList_Embedded(t *testing.T) {
	stdout, _, err := execute(t, "catalog", "list")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Catalog: embedded")
	assert.Contains(t, stdout, "age-progression")
	assert.Contains(t, stdout, "Bundles:")
	assert.Contains(t, stdout, "Bonus techniques:")
}

func TestCatalogList_File(t *testing.T) {
	path := writeFile(t, "catalog.yaml", twoTechniqueCatalog)

	stdout, _, err := execute(t, "catalog", "list", "--catalog", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Catalog: "+path)
	assert.Contains(t, stdout, "ghost-pack: [a ghost] (viral 70)")
	assert.NotContains(t, stdout, "Bonus techniques:")
}

func TestCatalogValidate(t *testing.T) {
	t.Run("valid with unresolved member", func(t *testing.T) {
		path := writeFile(t, "catalog.yaml", twoTechniqueCatalog)

		stdout, _, err := execute(t, "catalog", "validate", "--file", path)
		require.NoError(t, err)

		assert.Contains(t, stdout, "Warning: bundle ghost-pack references unknown technique ghost")
		assert.Contains(t, stdout, "Validation passed: 2 techniques, 1 bundles, 0 bonus techniques")
		assert.Contains(t, stdout, "1 bundle member(s) will be skipped")
	})

	t.Run("schema violation", func(t *testing.T) {
		path := writeFile(t, "catalog.json", `{"techniques": [{"id": "x"}]}`)

		_, _, err := execute(t, "catalog", "validate", "-f", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("bonus id shared with a technique", func(t *testing.T) {
		path := writeFile(t, "catalog.yaml", twoTechniqueCatalog+`bonus_techniques:
  - id: b
    name: Technique B again
    category: enhancement
    complexity: simple
    viral_potential: high
`)

		_, _, err := execute(t, "catalog", "validate", "-f", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
		assert.Contains(t, err.Error(), "also a primary technique id")
	})

	t.Run("empty catalog", func(t *testing.T) {
		path := writeFile(t, "catalog.yaml", "techniques: []\n")

		_, _, err := execute(t, "catalog", "validate", "-f", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no techniques")
	})
}

func TestCatalogSeed_RequiresDatabaseURL(t *testing.T) {
	path := writeFile(t, "catalog.yaml", twoTechniqueCatalog)

	_, _, err := execute(t, "catalog", "seed", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is required")
}
