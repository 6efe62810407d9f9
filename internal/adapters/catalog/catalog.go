// Package catalog implements the Registry port from a local YAML file.
// A catalog pins the known tool versions for air-gapped or test setups
// where the HTTP index is unavailable.
package catalog

import (
	"context"
	"os"

	"go.rigtool.dev/rig/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// PathEnvVar points at a catalog file. When set, the catalog replaces the
// HTTP index as the registry.
const PathEnvVar = "RIG_CATALOG"

// catalogFile is the on-disk schema of a catalog.
type catalogFile struct {
	Tools map[string][]string `yaml:"tools"`
}

// Catalog implements ports.Registry from a static map of tool versions.
type Catalog struct {
	versions map[string][]domain.Version
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	// #nosec G304 -- path comes from the RIG_CATALOG environment variable
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCatalogReadFailed.Error()), "path", path)
	}
	return parse(data, path)
}

// parse builds a Catalog from raw YAML.
func parse(data []byte, path string) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCatalogParseFailed.Error()), "path", path)
	}

	versions := make(map[string][]domain.Version, len(file.Tools))
	for name, raw := range file.Tools {
		parsed := make([]domain.Version, 0, len(raw))
		for _, s := range raw {
			v, err := domain.ParseVersion(s)
			if err != nil {
				parseErr := zerr.Wrap(err, domain.ErrCatalogParseFailed.Error())
				parseErr = zerr.With(parseErr, "path", path)
				return nil, zerr.With(parseErr, "name", name)
			}
			parsed = append(parsed, v)
		}
		versions[name] = parsed
	}

	return &Catalog{versions: versions}, nil
}

// Versions returns the catalog entry for the named tool.
func (c *Catalog) Versions(_ context.Context, name string) ([]domain.Version, error) {
	versions, ok := c.versions[name]
	if !ok {
		return nil, zerr.With(domain.ErrToolUnknown, "name", name)
	}
	return versions, nil
}
