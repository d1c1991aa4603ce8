package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ghprofile/pkg/cache"
	"github.com/matzehuels/ghprofile/pkg/integrations"
)

const (
	// DefaultAPIURL is the public GitHub REST API.
	DefaultAPIURL = "https://api.github.com"

	// DefaultWebURL is the public GitHub website, where profile pages live.
	DefaultWebURL = "https://github.com"
)

// Config configures a [Client]. The zero value talks anonymously to the
// public GitHub endpoints without caching.
type Config struct {
	APIURL     string
	WebURL     string
	Token      string
	Attempts   int
	Cache      cache.Cache
	CacheTTL   time.Duration
	Logger     *log.Logger
	HTTPClient *http.Client
}

// Client provides typed access to the GitHub resources a profile is built from.
// JSON resources go through the API fetcher; profile pages go through a
// separate fetcher rooted at the website, which never receives the token.
type Client struct {
	api *integrations.Client
	web *integrations.Client
}

// NewClient creates a GitHub client from cfg.
func NewClient(cfg Config) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.WebURL == "" {
		cfg.WebURL = DefaultWebURL
	}

	api := integrations.NewClient(integrations.ClientConfig{
		BaseURL:    cfg.APIURL,
		Token:      cfg.Token,
		Headers:    map[string]string{"Accept": "application/vnd.github+json"},
		Attempts:   cfg.Attempts,
		Cache:      cfg.Cache,
		CacheTTL:   cfg.CacheTTL,
		Logger:     cfg.Logger,
		HTTPClient: cfg.HTTPClient,
	})
	web := integrations.NewClient(integrations.ClientConfig{
		BaseURL:    cfg.WebURL,
		Headers:    map[string]string{"Accept": "text/html"},
		Attempts:   cfg.Attempts,
		Cache:      cfg.Cache,
		CacheTTL:   cfg.CacheTTL,
		Logger:     cfg.Logger,
		HTTPClient: cfg.HTTPClient,
	})
	return &Client{api: api, web: web}
}

// Organizations returns the organizations user belongs to.
func (c *Client) Organizations(ctx context.Context, user string) ([]Organization, error) {
	var orgs []Organization
	if err := c.api.Fetch(ctx, "users/"+esc(user)+"/orgs", &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// Followers returns the accounts following user.
func (c *Client) Followers(ctx context.Context, user string) ([]User, error) {
	var users []User
	if err := c.api.Fetch(ctx, "users/"+esc(user)+"/followers", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Repositories returns the public repositories owned by user.
func (c *Client) Repositories(ctx context.Context, user string) ([]Repository, error) {
	var repos []Repository
	if err := c.api.Fetch(ctx, "users/"+esc(user)+"/repos", &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// Projects returns the classic projects of user.
func (c *Client) Projects(ctx context.Context, user string) ([]Project, error) {
	var projects []Project
	if err := c.api.Fetch(ctx, "users/"+esc(user)+"/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Languages returns the language breakdown behind a repository's
// languages_url. Relative paths are resolved against the API base.
func (c *Client) Languages(ctx context.Context, languagesURL string) (Languages, error) {
	var langs Languages
	if err := c.api.Fetch(ctx, languagesURL, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

// User returns the full account object of user.
func (c *Client) User(ctx context.Context, user string) (*UserDetail, error) {
	var u UserDetail
	if err := c.api.Fetch(ctx, "users/"+esc(user), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Commits returns the default-branch commits of owner/repo.
func (c *Client) Commits(ctx context.Context, owner, repo string) ([]Commit, error) {
	path, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}
	var commits []Commit
	if err := c.api.Fetch(ctx, path+"/commits", &commits); err != nil {
		return nil, err
	}
	return commits, nil
}

// CommitDetail returns the commit behind commitURL, including changed files.
func (c *Client) CommitDetail(ctx context.Context, commitURL string) (*CommitDetail, error) {
	var d CommitDetail
	if err := c.api.Fetch(ctx, commitURL, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Contributors returns the contributors of owner/repo.
func (c *Client) Contributors(ctx context.Context, owner, repo string) ([]Contributor, error) {
	path, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}
	var contribs []Contributor
	if err := c.api.Fetch(ctx, path+"/contributors", &contribs); err != nil {
		return nil, err
	}
	return contribs, nil
}

// ProfilePage returns the HTML of user's public profile page.
func (c *Client) ProfilePage(ctx context.Context, user string) ([]byte, error) {
	return c.web.FetchRaw(ctx, esc(user))
}

// repoPath returns the API path of owner/repo. Names are validated so that a
// malformed record never reaches the URL.
func repoPath(owner, repo string) (string, error) {
	if err := ValidateRepoRef(owner, repo); err != nil {
		return "", err
	}
	return fmt.Sprintf("repos/%s/%s", esc(owner), esc(repo)), nil
}

func esc(s string) string { return url.PathEscape(s) }
