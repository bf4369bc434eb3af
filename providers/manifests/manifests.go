/*
Package manifests extracts dependency version selectors from package manager
manifest files.

Goals:
 - Turning raw manifest contents into (package, selector) pairs ready for
   selector parsing and validation.
*/
package manifests

import (
	"context"
	"errors"
)

// ErrManifestNotFound is returned when the source holds no manifest file for
// the requested parser.
var ErrManifestNotFound = errors.New("manifest file not found")

// Constraint represents one declared dependency: the package name and its
// raw version selector string.
type Constraint struct {
	Name     string
	Selector string
}

// ConstraintParser represents the basic interface for parsers in this
// package. Implementations fetch one manifest format and extract the
// declared dependency selectors from it.
type ConstraintParser interface {
	Constraints(ctx context.Context) ([]Constraint, error)
}
