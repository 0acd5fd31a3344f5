package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/technique-selector/internal/catalog"
)

// databaseURLEnv is consulted when neither a catalog file nor a database URL is given
const databaseURLEnv = "DATABASE_URL"

// loadCatalog picks the catalog source: a file, then a database, then the embedded default
func loadCatalog(ctx context.Context, path, databaseURL string) (*catalog.Catalog, string, error) {
	if path == "" && databaseURL == "" {
		databaseURL = os.Getenv(databaseURLEnv)
	}

	switch {
	case path != "":
		c, err := catalog.LoadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load catalog file: %w", err)
		}
		return c, path, nil
	case databaseURL != "":
		c, err := catalog.LoadFromDB(ctx, databaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load catalog from database: %w", err)
		}
		return c, "database", nil
	default:
		c, err := catalog.Default()
		if err != nil {
			return nil, "", fmt.Errorf("failed to load embedded catalog: %w", err)
		}
		return c, "embedded", nil
	}
}
