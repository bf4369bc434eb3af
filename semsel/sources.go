/*
Package semsel provides the high level API for validating the semantic
version selectors a project declares in its dependency manifests.

Usage:

	source := semsel.NewMemorySource(map[string][]byte{
		"package.json": []byte(`{"dependencies": {"left-pad": ">=1.1 <2"}}`),
	})
	checker := semsel.NewSelectorChecker()
	issues, err := checker.Check(context.Background(), source, semsel.NPMType)
*/
package semsel

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/dephub/semsel-core/providers/fetchers"
	"github.com/dephub/semsel-core/providers/manifests"
)

// DepType represents a package manager type flag.
type DepType string

// Supported package managers.
const (
	// NPMType represents the npm package manager flag.
	NPMType = DepType("npm")
	// ComposerType represents PHP's Composer package manager flag.
	ComposerType = DepType("composer")
)

// Constraint represents one declared dependency selector.
type Constraint struct {
	Name     string
	Selector string
}

// gitRepoRgx is used to parse repository info from a GIT-compatible address
// string.
//
// Examples matching the regexp:
//     'git@myhostname:vendor/reponame.git'
//     'https://myhostname/vendor/reponame.git' and so on...
// Groups:
//     1: protocol (e.g. 'https://' or 'git@')
//     6: hostname (e.g. 'github.com')
//     8: full repo name (e.g. 'vendor/reponame')
var gitRepoRgx string = `^(((git@)|(git:|ssh:|(http[s]?:\/\/))))([\w\.@\\-~]+)(:|\/)([\w\.@\:\/\-~]+)(\.git)(\/-)?`

// gitRepoRgxCompiled is compiled from gitRepoRgx.
var gitRepoRgxCompiled *regexp.Regexp

func init() {
	gitRepoRgxCompiled = regexp.MustCompile(gitRepoRgx)
}

// DependencySource represents an abstraction over package manager manifest
// files and provides a convenient interface to fetch declared selectors.
type DependencySource interface {
	// Constraints returns the list of the project's dependency selectors.
	Constraints(ctx context.Context, typ DepType) ([]Constraint, error)
}

// NewMemorySource constructs a DependencySource over an in-memory
// path/content manifest map.
func NewMemorySource(files map[string][]byte) DependencySource {
	return &MemoryDependencySource{
		fetchers.MemoryFetcher{Files: files},
	}
}

// MemoryDependencySource represents an in-memory DependencySource
// implementation.
type MemoryDependencySource struct {
	fetcher fetchers.MemoryFetcher
}

// Constraints returns the list of the project's dependency selectors.
func (mds MemoryDependencySource) Constraints(ctx context.Context, typ DepType) ([]Constraint, error) {
	return parseConstraints(ctx, typ, mds.fetcher)
}

// gitRepo represents basic repository information.
type gitRepo struct {
	host, vendor, repo string
}

// supGitSrcs - supported git sources.
var supGitSrcs = []string{"github.com"}

// NewGitSource constructs a Git DependencySource implementation.
//
// Ref can refer to a commit hash, branch or tag.
//
// You can pass a specifically signed httpClient with any information you
// want the requests to go with, for example OAuth2/BasicAuth information for
// increased GitHub API rate limits.
//
// repoAddr is your repository address (e.g. 'git@myhostname:vendor/reponame.git')
func NewGitSource(httpClient *http.Client, repoAddr, ref string) (DependencySource, error) {
	repoData, err := parseGitAddr(repoAddr)
	if err != nil {
		return nil, err
	}
	fetcher := fetchers.NewGitHubFetcher(httpClient, repoData.vendor, repoData.repo, ref)
	return &GitDependencySource{fetcher: fetcher}, nil
}

// GitDependencySource represents a Git DependencySource implementation,
// capable of fetching manifest files from Git repositories.
type GitDependencySource struct {
	fetcher fetchers.ManifestFetcher
}

// Constraints returns the list of the project's dependency selectors.
func (gds GitDependencySource) Constraints(ctx context.Context, typ DepType) ([]Constraint, error) {
	return parseConstraints(ctx, typ, gds.fetcher)
}

func parseConstraints(ctx context.Context, typ DepType, fetcher fetchers.ManifestFetcher) ([]Constraint, error) {
	parser, err := solveParser(typ, fetcher)
	if err != nil {
		return nil, err
	}
	csts, err := parser.Constraints(ctx)
	if err != nil {
		return nil, err
	}
	result := []Constraint{}
	for _, cst := range csts {
		result = append(result, Constraint(cst))
	}
	return result, nil
}

// solveParser - helper to get the configured manifest parser.
func solveParser(typ DepType, fetcher fetchers.ManifestFetcher) (manifests.ConstraintParser, error) {
	switch typ {
	case NPMType:
		return manifests.NewNPMParser(fetcher), nil
	case ComposerType:
		return manifests.NewComposerParser(fetcher), nil
	}
	return nil, fmt.Errorf("unsupported package manager type %q", typ)
}

// parseGitAddr - helper to parse information from a git repository address
// string.
func parseGitAddr(addr string) (*gitRepo, error) {
	matches := gitRepoRgxCompiled.FindStringSubmatch(addr)
	if matches == nil || matches[6] == "" || matches[8] == "" {
		return nil, fmt.Errorf("unsupported git repository format %q", addr)
	}
	hostName, repoName := matches[6], matches[8]

	if !gitHostSupported(hostName) {
		return nil, fmt.Errorf("git source %q is not supported", hostName)
	}

	if !strings.Contains(repoName, "/") {
		return nil, fmt.Errorf("unable to parse vendor from name %q", repoName)
	}
	repoNameParts := strings.Split(repoName, "/")

	return &gitRepo{host: hostName, vendor: repoNameParts[0], repo: repoNameParts[1]}, nil
}

// gitHostSupported - helper to check git source support status.
func gitHostSupported(host string) bool {
	for _, v := range supGitSrcs {
		if v == host {
			return true
		}
	}
	return false
}
