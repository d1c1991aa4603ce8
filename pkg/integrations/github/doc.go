// Package github provides typed access to the GitHub resources a user
// profile is assembled from.
//
// # Overview
//
// [Client] wraps the shared fetcher from the integrations package. Each method
// maps to one REST resource:
//
//   - [Client.Organizations]: users/{user}/orgs
//   - [Client.Followers]: users/{user}/followers
//   - [Client.Repositories]: users/{user}/repos
//   - [Client.Projects]: users/{user}/projects
//   - [Client.User]: users/{user}
//   - [Client.Languages]: the languages_url of a repository
//   - [Client.Commits]: repos/{owner}/{repo}/commits
//   - [Client.CommitDetail]: the url of a commit
//   - [Client.Contributors]: repos/{owner}/{repo}/contributors
//
// [Client.ProfilePage] is the exception: it returns the raw HTML of
// https://github.com/{user}, which carries the yearly contribution count the
// API does not expose.
//
// # Usage
//
//	client := github.NewClient(github.Config{Token: os.Getenv("GITHUB_TOKEN")})
//	repos, err := client.Repositories(ctx, "octocat")
//
// # Authentication
//
// A personal access token is optional but recommended. Without a token the
// API allows 60 requests per hour; with one, 5000. The token is only sent to
// the API, never to the website.
//
// # Pagination
//
// Only the first page of each list is read (30 entries by default).
//
// The githubtest subpackage serves a fake of these resources for tests.
package github
