// Package profile builds a summary of a GitHub user from the REST API and
// the public profile page.
//
// # Overview
//
// A [Builder] runs one pass over a user's resources and returns a [Profile]:
//
//	b := profile.NewBuilder(client, profile.Options{Commits: true}, logger)
//	p, err := b.Build(ctx, "octocat")
//
// The pass is a fixed sequence of steps: organizations, followers,
// repositories, projects, languages, stars and forks, registration date,
// account age, yearly contributions, and optionally commit statistics and
// contributed repositories. Languages, stars and forks are derived from the
// repository list fetched once in the repositories step.
//
// # Unavailable Fields
//
// A resource that answers with a non-OK status does not stop the pass. Its
// field stays nil (rendered as null) and an [Issue] records the field and the
// reason. Fields derived from the repository list are unavailable whenever the
// list is. Build only fails for an invalid username, a network failure, or a
// cancelled context.
//
// # Concurrency
//
// Per-repository requests (languages, commits, contributors) run through a
// bounded fan-out sized by [Options.Concurrency]. Each repository produces an
// independent partial result and results are merged in repository order, so
// the profile does not depend on the concurrency level.
//
// # Reductions
//
// The aggregations are exported as pure functions: [CountLanguages],
// [SumStars], [SumForks], [AccountAge] and [CommitStats.GoodMessageRatio].
package profile
