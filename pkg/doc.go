// Package pkg provides the libraries behind ghprofile, a summary of a GitHub
// user's public activity.
//
// # Overview
//
// A profile is built in one explicit pass over the GitHub REST API and the
// user's public profile page. Each field is fetched independently: a field
// that cannot be fetched is reported as unavailable with a reason instead of
// failing the whole build.
//
// # Architecture
//
// The data flow through ghprofile:
//
//	GitHub API + profile page
//	         ↓
//	    [integrations] (fetch, classify failures, cache)
//	         ↓
//	    [integrations/github] (typed resources)
//	         ↓
//	    [profile] (steps, fan-out per repository, reductions)
//	         ↓
//	    [io] (JSON/YAML reports)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/ghprofile/pkg/integrations/github"
//	    "github.com/matzehuels/ghprofile/pkg/profile"
//	)
//
//	client := github.NewClient(github.Config{Token: os.Getenv("GITHUB_TOKEN")})
//	p, err := profile.NewBuilder(client, profile.Options{}, nil).Build(ctx, "octocat")
//	if err != nil {
//	    return err // invalid username, network down or cancelled
//	}
//	for _, is := range p.Issues {
//	    fmt.Println(is.Field, is.Kind)
//	}
//
// # Main Packages
//
// [profile] - The aggregator. Runs the steps in a fixed order, fans out
// per-repository requests with bounded concurrency and merges the results in
// repository order.
//
// [commitmsg] - Stemmed bag-of-words classifier for commit messages.
//
// [scrape] - Extracts the yearly contribution count from profile page HTML.
//
// [integrations] - HTTP fetcher with base-URL resolution, a static bearer
// credential, failure classification and an optional response cache.
//
// [integrations/github] - Typed GitHub resources and the githubtest fake
// server.
//
// [cache] - Null, file and Redis response caches.
//
// [io] - Report export and import.
//
// [observability] - Hooks for HTTP, cache and profile events.
//
// [errors] - Coded domain errors.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Live GitHub and Redis
package pkg
