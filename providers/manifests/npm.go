package manifests

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dephub/semsel-core/providers/fetchers"
)

// NewNPMParser constructs a package.json constraints parser.
func NewNPMParser(fetcher fetchers.ManifestFetcher) ConstraintParser {
	return &NPMParser{fetcher: fetcher}
}

// NPMParser represents the concrete npm manifest parser implementation.
type NPMParser struct {
	fetcher fetchers.ManifestFetcher
}

// PackageJSON represents the npm manifest file (package.json).
type PackageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Constraints method returns the package.json dependency and devDependency
// selectors.
func (p NPMParser) Constraints(ctx context.Context) ([]Constraint, error) {
	b, err := p.fetcher.ManifestContent(ctx, "package.json")
	if err != nil {
		if err == fetchers.ErrManifestNotFound {
			return nil, ErrManifestNotFound
		}
		return nil, fmt.Errorf("unable to fetch npm dependencies from the source: %w", err)
	}

	var manifest PackageJSON
	if err = json.Unmarshal(b, &manifest); err != nil {
		return nil, fmt.Errorf("unable to parse package.json content: %w", err)
	}

	res := make([]Constraint, 0, len(manifest.Dependencies)+len(manifest.DevDependencies))
	for dep, sel := range manifest.Dependencies {
		res = append(res, Constraint{
			Name:     dep,
			Selector: sel,
		})
	}
	for dep, sel := range manifest.DevDependencies {
		res = append(res, Constraint{
			Name:     dep,
			Selector: sel,
		})
	}

	return res, nil
}
