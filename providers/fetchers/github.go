package fetchers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v33/github"
)

// GitHubFetcher fetches manifest files from the specified repository.
// Owner and Repo represent the '{owner}/{repo}' notation, Ref can refer to a
// commit hash, branch or tag (empty means the default branch).
type GitHubFetcher struct {
	Owner        string
	Repo         string
	Ref          string
	githubClient *github.Client
}

// NewGitHubFetcher constructs a GitHubFetcher for the given repository.
// httpClient can carry OAuth2 or BasicAuth transports for increased API rate
// limits.
func NewGitHubFetcher(httpClient *http.Client, owner, repo, ref string) ManifestFetcher {
	return &GitHubFetcher{
		Owner:        owner,
		Repo:         repo,
		Ref:          ref,
		githubClient: github.NewClient(httpClient),
	}
}

// ManifestContent fetches the specified manifest content from the configured
// repository. The path argument is the repository root related file path.
func (gf GitHubFetcher) ManifestContent(ctx context.Context, path string) ([]byte, error) {
	opts := github.RepositoryContentGetOptions{
		Ref: gf.Ref,
	}

	fc, dc, resp, err := gf.githubClient.Repositories.GetContents(ctx, gf.Owner, gf.Repo, path, &opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrManifestNotFound
		}
		return nil, fmt.Errorf("unable to load %q manifest from github: %w", path, err)
	}

	if len(dc) != 0 {
		return nil, fmt.Errorf("manifest path %q is a directory, not a file", path)
	}

	content, err := fc.GetContent()
	if err != nil {
		return nil, fmt.Errorf("unable to decode %q manifest content: %w", path, err)
	}

	return []byte(content), nil
}
