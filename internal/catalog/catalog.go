package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/jonathan/technique-selector/internal/types"
)

// Catalog is the process-wide, read-only set of techniques, bundles and bonus techniques.
// All accessors return copies, so a Catalog is safe for concurrent use once built.
type Catalog struct {
	techniques  []types.Technique
	bundles     []types.Bundle
	bonus       []types.Technique
	byID        map[string]int
	fingerprint string
}

// New builds a Catalog from decoded data.
// An empty technique list, a duplicated ID, or a bonus ID shared with a primary technique is a
// configuration error.
func New(data *types.CatalogData) (*Catalog, error) {
	if data == nil || len(data.Techniques) == 0 {
		return nil, &ConfigError{Message: "catalog has no techniques"}
	}

	byID := make(map[string]int, len(data.Techniques))
	for i, t := range data.Techniques {
		if t.ID == "" {
			return nil, &ConfigError{Message: fmt.Sprintf("technique at index %d has no id", i)}
		}
		if _, dup := byID[t.ID]; dup {
			return nil, &ConfigError{Message: fmt.Sprintf("duplicate technique id %q", t.ID)}
		}
		byID[t.ID] = i
	}

	bundleIDs := make(map[string]bool, len(data.Bundles))
	for _, b := range data.Bundles {
		if bundleIDs[b.ID] {
			return nil, &ConfigError{Message: fmt.Sprintf("duplicate bundle id %q", b.ID)}
		}
		bundleIDs[b.ID] = true
	}

	bonusIDs := make(map[string]bool, len(data.BonusTechniques))
	for _, t := range data.BonusTechniques {
		if bonusIDs[t.ID] {
			return nil, &ConfigError{Message: fmt.Sprintf("duplicate bonus technique id %q", t.ID)}
		}
		if _, primary := byID[t.ID]; primary {
			return nil, &ConfigError{Message: fmt.Sprintf("bonus technique id %q is also a primary technique id", t.ID)}
		}
		bonusIDs[t.ID] = true
	}

	c := &Catalog{
		techniques: cloneTechniques(data.Techniques),
		bundles:    cloneBundles(data.Bundles),
		bonus:      cloneTechniques(data.BonusTechniques),
		byID:       byID,
	}

	fp, err := computeFingerprint(c)
	if err != nil {
		return nil, &ConfigError{Message: "failed to fingerprint catalog", Cause: err}
	}
	c.fingerprint = fp

	return c, nil
}

// Techniques returns every primary technique in catalog order
func (c *Catalog) Techniques() []types.Technique {
	return cloneTechniques(c.techniques)
}

// Bundles returns every bundle in catalog order
func (c *Catalog) Bundles() []types.Bundle {
	return cloneBundles(c.bundles)
}

// BonusTechniques returns the techniques reserved for closing a residual gap
func (c *Catalog) BonusTechniques() []types.Technique {
	return cloneTechniques(c.bonus)
}

// Technique looks up a primary technique by ID. Returns ErrNotFound if absent.
func (c *Catalog) Technique(id string) (types.Technique, error) {
	i, ok := c.byID[id]
	if !ok {
		return types.Technique{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return cloneTechnique(c.techniques[i]), nil
}

// Fingerprint is a stable hash of the catalog contents
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}

// Data returns the catalog in its serializable form
func (c *Catalog) Data() *types.CatalogData {
	return &types.CatalogData{
		Techniques:      c.Techniques(),
		Bundles:         c.Bundles(),
		BonusTechniques: c.BonusTechniques(),
	}
}

func computeFingerprint(c *Catalog) (string, error) {
	encoded, err := json.Marshal(struct {
		T []types.Technique `json:"t"`
		B []types.Bundle    `json:"b"`
		X []types.Technique `json:"x"`
	}{c.techniques, c.bundles, c.bonus})
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(xxhash.Sum64(encoded), 16), nil
}

func cloneTechnique(t types.Technique) types.Technique {
	t.Tags = append([]string(nil), t.Tags...)
	t.UseCases = append([]string(nil), t.UseCases...)
	t.Platforms = append([]types.Platform(nil), t.Platforms...)
	t.CombinesWith = append([]string(nil), t.CombinesWith...)
	return t
}

func cloneTechniques(in []types.Technique) []types.Technique {
	out := make([]types.Technique, len(in))
	for i, t := range in {
		out[i] = cloneTechnique(t)
	}
	return out
}

func cloneBundles(in []types.Bundle) []types.Bundle {
	out := make([]types.Bundle, len(in))
	for i, b := range in {
		b.TechniqueIDs = append([]string(nil), b.TechniqueIDs...)
		b.Platforms = append([]types.Platform(nil), b.Platforms...)
		b.ContentTypes = append([]string(nil), b.ContentTypes...)
		out[i] = b
	}
	return out
}
