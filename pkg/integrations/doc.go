// Package integrations provides the remote fetcher shared by API clients.
//
// # Overview
//
// [Client] is the single entry point for remote reads. Callers name a
// resource either as a path relative to the configured base URL
// ("users/octocat/repos") or as an absolute URL taken from a previous
// response ("https://api.github.com/repos/o/r/languages"); [Client.Resolve]
// turns both into the URL that is actually requested, never prefixing an
// address twice.
//
//	client := integrations.NewClient(integrations.ClientConfig{
//	    BaseURL: "https://api.github.com",
//	    Token:   os.Getenv("GITHUB_TOKEN"),
//	})
//	var repos []github.Repository
//	err := client.Fetch(ctx, "users/octocat/repos", &repos)
//
// # Errors
//
// Every non-OK response is logged once at warn level and returned as a
// [*StatusError] matching [ErrUnavailable] plus one sub-kind: [ErrNotFound],
// [ErrUnauthorized], [ErrForbidden], [ErrRateLimited] or [ErrUpstream].
// Callers that aggregate many resources treat ErrUnavailable as "this field is
// unknown" and continue. [ErrNetwork] means no response was received and
// should end the run.
//
// # Caching and retries
//
// OK bodies can be stored in any [cache.Cache]; entries fetched with a token
// are kept apart from anonymous ones. Each request is attempted once unless
// [ClientConfig.Attempts] says otherwise.
//
// The [github] subpackage wraps the client with typed GitHub resources.
//
// [github]: github.com/matzehuels/ghprofile/pkg/integrations/github
// [cache.Cache]: github.com/matzehuels/ghprofile/pkg/cache.Cache
package integrations
