package manifests

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dephub/semsel-core/providers/fetchers"
)

// NewComposerParser constructs a composer.json constraints parser.
func NewComposerParser(fetcher fetchers.ManifestFetcher) ConstraintParser {
	return &ComposerParser{fetcher: fetcher}
}

// ComposerParser represents the concrete Composer manifest parser
// implementation.
type ComposerParser struct {
	fetcher fetchers.ManifestFetcher
}

// ComposerJSON represents the Composer manifest file (composer.json).
type ComposerJSON struct {
	Require map[string]string `json:"require"`
}

// Constraints method returns the composer.json dependency selectors.
func (p ComposerParser) Constraints(ctx context.Context) ([]Constraint, error) {
	b, err := p.fetcher.ManifestContent(ctx, "composer.json")
	if err != nil {
		if err == fetchers.ErrManifestNotFound {
			return nil, ErrManifestNotFound
		}
		return nil, fmt.Errorf("unable to fetch composer dependencies from the source: %w", err)
	}

	var manifest ComposerJSON
	if err = json.Unmarshal(b, &manifest); err != nil {
		return nil, fmt.Errorf("unable to parse composer.json content: %w", err)
	}

	res := make([]Constraint, 0, len(manifest.Require))
	for dep, sel := range manifest.Require {
		res = append(res, Constraint{
			Name:     dep,
			Selector: sel,
		})
	}

	return res, nil
}
