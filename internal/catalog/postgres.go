package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/technique-selector/internal/types"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS catalog_techniques (
	id              TEXT PRIMARY KEY,
	position        INTEGER NOT NULL,
	name            TEXT NOT NULL,
	category        TEXT NOT NULL,
	complexity      TEXT NOT NULL,
	viral_potential TEXT NOT NULL,
	tags            TEXT[] NOT NULL DEFAULT '{}',
	use_cases       TEXT[] NOT NULL DEFAULT '{}',
	platforms       TEXT[] NOT NULL DEFAULT '{}',
	combines_with   TEXT[] NOT NULL DEFAULT '{}',
	is_bonus        BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS catalog_bundles (
	id            TEXT PRIMARY KEY,
	position      INTEGER NOT NULL,
	name          TEXT NOT NULL,
	technique_ids TEXT[] NOT NULL,
	viral_score   DOUBLE PRECISION NOT NULL,
	platforms     TEXT[] NOT NULL DEFAULT '{}',
	content_types TEXT[] NOT NULL DEFAULT '{}'
);`

// Store reads and writes the catalog tables in PostgreSQL
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the catalog tables if they do not exist
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to create catalog tables: %w", err)
	}
	return nil
}

// Seed replaces the stored catalog with data in a single transaction
func (s *Store) Seed(ctx context.Context, data *types.CatalogData) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM catalog_bundles`); err != nil {
		return fmt.Errorf("failed to clear bundles: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM catalog_techniques`); err != nil {
		return fmt.Errorf("failed to clear techniques: %w", err)
	}

	position := 0
	insertTechnique := func(t types.Technique, bonus bool) error {
		position++
		_, err := tx.Exec(ctx,
			`INSERT INTO catalog_techniques
			 (id, position, name, category, complexity, viral_potential, tags, use_cases, platforms, combines_with, is_bonus)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			t.ID, position, t.Name, string(t.Category), string(t.Complexity), string(t.ViralPotential),
			nonNil(t.Tags), nonNil(t.UseCases), platformStrings(t.Platforms), nonNil(t.CombinesWith), bonus,
		)
		if err != nil {
			return fmt.Errorf("failed to insert technique %s: %w", t.ID, err)
		}
		return nil
	}

	for _, t := range data.Techniques {
		if err := insertTechnique(t, false); err != nil {
			return err
		}
	}
	for _, t := range data.BonusTechniques {
		if err := insertTechnique(t, true); err != nil {
			return err
		}
	}

	for i, b := range data.Bundles {
		_, err := tx.Exec(ctx,
			`INSERT INTO catalog_bundles (id, position, name, technique_ids, viral_score, platforms, content_types)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			b.ID, i+1, b.Name, nonNil(b.TechniqueIDs), b.ViralScore, platformStrings(b.Platforms), nonNil(b.ContentTypes),
		)
		if err != nil {
			return fmt.Errorf("failed to insert bundle %s: %w", b.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit catalog seed: %w", err)
	}
	return nil
}

// Load reads the stored catalog. Rows go through the same schema check as files.
func (s *Store) Load(ctx context.Context) (*Catalog, error) {
	data := &types.CatalogData{}

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, category, complexity, viral_potential, tags, use_cases, platforms, combines_with, is_bonus
		 FROM catalog_techniques ORDER BY position`)
	if err != nil {
		return nil, &LoadError{Message: "failed to query techniques", Cause: err}
	}
	err = forEachRow(rows, func(r pgx.Rows) error {
		var rec techniqueRecord
		var bonus bool
		if err := r.Scan(&rec.ID, &rec.Name, &rec.Category, &rec.Complexity, &rec.ViralPotential,
			&rec.Tags, &rec.UseCases, &rec.Platforms, &rec.CombinesWith, &bonus); err != nil {
			return err
		}
		if bonus {
			data.BonusTechniques = append(data.BonusTechniques, rec.technique())
		} else {
			data.Techniques = append(data.Techniques, rec.technique())
		}
		return nil
	})
	if err != nil {
		return nil, &LoadError{Message: "failed to scan techniques", Cause: err}
	}

	rows, err = s.pool.Query(ctx,
		`SELECT id, name, technique_ids, viral_score, platforms, content_types
		 FROM catalog_bundles ORDER BY position`)
	if err != nil {
		return nil, &LoadError{Message: "failed to query bundles", Cause: err}
	}
	err = forEachRow(rows, func(r pgx.Rows) error {
		var b types.Bundle
		var platforms []string
		if err := r.Scan(&b.ID, &b.Name, &b.TechniqueIDs, &b.ViralScore, &platforms, &b.ContentTypes); err != nil {
			return err
		}
		b.Platforms = toPlatforms(platforms)
		data.Bundles = append(data.Bundles, b)
		return nil
	})
	if err != nil {
		return nil, &LoadError{Message: "failed to scan bundles", Cause: err}
	}

	if len(data.Techniques) == 0 {
		return nil, &ConfigError{Message: "catalog has no techniques"}
	}

	// Re-encode so database rows get the same schema and enum checks as catalog files
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, &LoadError{Message: "failed to encode catalog rows", Cause: err}
	}
	return Parse(encoded, FormatJSON)
}

// LoadFromDB connects, loads the catalog and closes the pool
func LoadFromDB(ctx context.Context, databaseURL string) (*Catalog, error) {
	store, err := Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load(ctx)
}

// techniqueRecord holds raw column values before enum checks
type techniqueRecord struct {
	ID, Name, Category, Complexity, ViralPotential string
	Tags, UseCases, Platforms, CombinesWith        []string
}

func (r techniqueRecord) technique() types.Technique {
	return types.Technique{
		ID:             r.ID,
		Name:           r.Name,
		Category:       types.Category(r.Category),
		Complexity:     types.ComplexityTier(r.Complexity),
		ViralPotential: types.ViralPotential(r.ViralPotential),
		Tags:           r.Tags,
		UseCases:       r.UseCases,
		Platforms:      toPlatforms(r.Platforms),
		CombinesWith:   r.CombinesWith,
	}
}

func forEachRow(rows pgx.Rows, fn func(pgx.Rows) error) error {
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func toPlatforms(in []string) []types.Platform {
	out := make([]types.Platform, 0, len(in))
	for _, p := range in {
		out = append(out, types.Platform(p))
	}
	return out
}

func platformStrings(in []types.Platform) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		out = append(out, string(p))
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
