package profile

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ghprofile/pkg/commitmsg"
	"github.com/matzehuels/ghprofile/pkg/errors"
	"github.com/matzehuels/ghprofile/pkg/integrations"
	"github.com/matzehuels/ghprofile/pkg/integrations/github"
	"github.com/matzehuels/ghprofile/pkg/observability"
	"github.com/matzehuels/ghprofile/pkg/scrape"
)

// RegistrationLayout is the format of the created_at timestamp.
const RegistrationLayout = "2006-01-02T15:04:05Z"

// DefaultConcurrency processes repositories one at a time.
const DefaultConcurrency = 1

// Source is the set of GitHub resources a profile is built from.
// [*github.Client] implements it.
type Source interface {
	Organizations(ctx context.Context, user string) ([]github.Organization, error)
	Followers(ctx context.Context, user string) ([]github.User, error)
	Repositories(ctx context.Context, user string) ([]github.Repository, error)
	Projects(ctx context.Context, user string) ([]github.Project, error)
	Languages(ctx context.Context, languagesURL string) (github.Languages, error)
	User(ctx context.Context, user string) (*github.UserDetail, error)
	Commits(ctx context.Context, owner, repo string) ([]github.Commit, error)
	CommitDetail(ctx context.Context, commitURL string) (*github.CommitDetail, error)
	Contributors(ctx context.Context, owner, repo string) ([]github.Contributor, error)
	ProfilePage(ctx context.Context, user string) ([]byte, error)
}

var _ Source = (*github.Client)(nil)

// Options controls what a build collects.
type Options struct {
	// Commits enables commit statistics and the good-message ratio. It costs
	// one request per repository plus one per authored commit.
	Commits bool

	// Contributed enables the contributed-repositories count. It costs one
	// request per repository.
	Contributed bool

	// Concurrency bounds in-flight per-repository requests. Values below 1
	// mean [DefaultConcurrency].
	Concurrency int

	// Vocabulary replaces [commitmsg.DefaultVocabulary] when non-empty.
	Vocabulary []string

	// Now returns the reference time for the account age. Nil means time.Now.
	Now func() time.Time
}

// Builder runs profile builds. It holds no per-build state and can run
// several builds at once.
type Builder struct {
	src      Source
	opts     Options
	logger   *log.Logger
	classify func(string) bool
}

// NewBuilder creates a Builder reading from src. A nil logger uses the
// charmbracelet default logger.
func NewBuilder(src Source, opts Options, logger *log.Logger) *Builder {
	if opts.Concurrency < 1 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = log.Default()
	}
	classify := commitmsg.IsGood
	if len(opts.Vocabulary) > 0 {
		classify = commitmsg.New(opts.Vocabulary...).IsGood
	}
	return &Builder{src: src, opts: opts, logger: logger, classify: classify}
}

// Build runs one full pass for username. It returns an error only for an
// invalid username, a network failure or a cancelled context; unavailable
// resources are recorded in [Profile.Issues].
func (b *Builder) Build(ctx context.Context, username string) (*Profile, error) {
	if err := github.ValidateOwner(username); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Profile()
	hooks.OnBuildStart(ctx, username)

	p := &Profile{
		RunID:       uuid.NewString(),
		GeneratedAt: b.opts.Now().UTC(),
		Username:    username,
	}
	bld := &build{Builder: b, p: p}

	err := bld.run(ctx)
	hooks.OnBuildComplete(ctx, username, len(p.Issues), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	b.logger.Info("built profile",
		"user", username,
		"repositories", len(p.Repositories),
		"issues", len(p.Issues),
		"duration", time.Since(start))
	return p, nil
}

// build carries the state of one pass.
type build struct {
	*Builder
	p *Profile

	// reposErr is set when the repository list is unavailable.
	reposErr error
}

func (b *build) run(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
		on   bool
	}{
		{FieldOrganizations, b.organizations, true},
		{FieldFollowers, b.followers, true},
		{FieldRepositories, b.repositories, true},
		{FieldProjects, b.projects, true},
		{FieldLanguages, b.languages, true},
		{FieldStars, b.starsAndForks, true},
		{FieldRegisteredAt, b.registration, true},
		{FieldAccountAge, b.accountAge, true},
		{FieldYearlyContributions, b.contributions, true},
		{FieldCommits, b.commits, b.opts.Commits},
		{FieldContributedRepositories, b.contributed, b.opts.Contributed},
	}

	hooks := observability.Profile()
	for _, s := range steps {
		if !s.on {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		hooks.OnStepStart(ctx, b.p.Username, s.name)
		start := time.Now()
		issues := len(b.p.Issues)

		err := s.fn(ctx)

		var stepErr error
		if err != nil {
			stepErr = err
		} else if len(b.p.Issues) > issues {
			stepErr = b.p.Issues[issues].Err
		}
		hooks.OnStepComplete(ctx, b.p.Username, s.name, time.Since(start), stepErr)
		b.logger.Debug("step complete", "step", s.name, "duration", time.Since(start))

		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

// =============================================================================
// Steps
// =============================================================================

// Each step returns a non-nil error only when the failure is fatal; anything
// else becomes an Issue.

func (b *build) organizations(ctx context.Context) error {
	orgs, err := b.src.Organizations(ctx, b.p.Username)
	if err != nil {
		return b.unavailable(FieldOrganizations, "", err)
	}
	logins := make([]string, 0, len(orgs))
	for _, o := range orgs {
		logins = append(logins, o.Login)
	}
	b.p.Organizations = uniqueSorted(logins)
	return nil
}

func (b *build) followers(ctx context.Context) error {
	users, err := b.src.Followers(ctx, b.p.Username)
	if err != nil {
		return b.unavailable(FieldFollowers, "", err)
	}
	logins := make([]string, 0, len(users))
	for _, u := range users {
		logins = append(logins, u.Login)
	}
	b.p.Followers = logins
	b.p.FollowersCount = ptr(len(logins))
	return nil
}

func (b *build) repositories(ctx context.Context) error {
	repos, err := b.src.Repositories(ctx, b.p.Username)
	if err != nil {
		b.reposErr = err
		return b.unavailable(FieldRepositories, "", err)
	}
	out := make([]Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, Repository{
			Name:         r.Name,
			FullName:     r.FullName,
			Owner:        r.Owner.Login,
			Stars:        r.Stars,
			Forks:        r.Forks,
			Fork:         r.Fork,
			LanguagesURL: r.LanguagesURL,
		})
	}
	b.p.Repositories = out
	b.p.RepositoriesCount = ptr(len(out))
	return nil
}

func (b *build) projects(ctx context.Context) error {
	projects, err := b.src.Projects(ctx, b.p.Username)
	if err != nil {
		return b.unavailable(FieldProjects, "", err)
	}
	b.p.ProjectsCount = ptr(len(projects))
	return nil
}

func (b *build) languages(ctx context.Context) error {
	if b.reposErr != nil {
		b.dependsOnRepositories(FieldLanguages)
		return nil
	}

	perRepo, errs, err := fanOut(ctx, b.opts.Concurrency, b.p.Repositories,
		func(ctx context.Context, r Repository) ([]string, error) {
			if r.LanguagesURL == "" {
				return nil, errors.New(errors.ErrCodeParse, "repository %s has no languages_url", r.FullName)
			}
			langs, err := b.src.Languages(ctx, r.LanguagesURL)
			if err != nil {
				return nil, err
			}
			return sortedKeys(langs), nil
		})
	if err != nil {
		return err
	}

	for i := range b.p.Repositories {
		if errs[i] != nil {
			b.issue(FieldLanguages, b.p.Repositories[i].FullName, errs[i])
			continue
		}
		b.p.Repositories[i].Languages = perRepo[i]
	}
	b.p.LanguageUsage = CountLanguages(perRepo)
	return nil
}

func (b *build) starsAndForks(context.Context) error {
	if b.reposErr != nil {
		b.dependsOnRepositories(FieldStars)
		b.dependsOnRepositories(FieldForks)
		return nil
	}
	b.p.StarsTotal = ptr(SumStars(b.p.Repositories))
	b.p.ForksTotal = ptr(SumForks(b.p.Repositories))
	return nil
}

func (b *build) registration(ctx context.Context) error {
	u, err := b.src.User(ctx, b.p.Username)
	if err != nil {
		return b.unavailable(FieldRegisteredAt, "", err)
	}
	t, err := ParseRegistration(u.CreatedAt)
	if err != nil {
		b.issue(FieldRegisteredAt, "", err)
		return nil
	}
	b.p.RegisteredAt = &t
	return nil
}

func (b *build) accountAge(context.Context) error {
	b.p.AccountAge = AccountAge(b.p.RegisteredAt, b.opts.Now())
	if b.p.AccountAge != nil {
		return nil
	}
	for _, is := range b.p.IssuesFor(FieldRegisteredAt) {
		b.p.Issues = append(b.p.Issues, Issue{
			Field:   FieldAccountAge,
			Kind:    is.Kind,
			Message: "registration date unavailable: " + is.Message,
			Err:     is.Err,
		})
	}
	return nil
}

func (b *build) contributions(ctx context.Context) error {
	page, err := b.src.ProfilePage(ctx, b.p.Username)
	if err != nil {
		return b.unavailable(FieldYearlyContributions, "", err)
	}
	n, err := scrape.YearlyContributions(bytes.NewReader(page))
	if err != nil {
		b.issue(FieldYearlyContributions, "", err)
		return nil
	}
	b.p.YearlyContributions = &n
	return nil
}

// repoCommits is the partial commit result of one repository.
type repoCommits struct {
	stats  CommitStats
	issues []Issue
}

func (b *build) commits(ctx context.Context) error {
	if b.reposErr != nil {
		b.dependsOnRepositories(FieldCommits)
		return nil
	}

	partials, errs, err := fanOut(ctx, b.opts.Concurrency, b.p.Repositories, b.repoCommits)
	if err != nil {
		return err
	}

	var total CommitStats
	for i, part := range partials {
		if errs[i] != nil {
			b.issue(FieldCommits, b.p.Repositories[i].FullName, errs[i])
			continue
		}
		total = total.Add(part.stats)
		b.p.Issues = append(b.p.Issues, part.issues...)
	}
	b.p.Commits = &total

	ratio, err := total.GoodMessageRatio()
	if err != nil {
		b.issue(FieldGoodMessageRatio, "", err)
		return nil
	}
	b.p.GoodMessageRatio = &ratio
	return nil
}

// repoCommits counts the commits of r authored by the profiled user. A commit
// counts as authored when its git author name equals the username. A failed
// detail fetch leaves the commit counted and records an issue.
func (b *build) repoCommits(ctx context.Context, r Repository) (repoCommits, error) {
	var out repoCommits
	commits, err := b.src.Commits(ctx, r.Owner, r.Name)
	if err != nil {
		return out, err
	}

	for _, c := range commits {
		if c.Commit.Author.Name != b.p.Username {
			continue
		}
		out.stats.Authored++
		if b.classify(c.Commit.Message) {
			out.stats.Good++
		}

		if c.URL == "" {
			out.issues = append(out.issues, newIssue(FieldCommits, r.FullName,
				errors.New(errors.ErrCodeParse, "commit %s has no url", c.SHA)))
			continue
		}
		detail, err := b.src.CommitDetail(ctx, c.URL)
		if err != nil {
			if isFatal(err) {
				return out, err
			}
			out.issues = append(out.issues, newIssue(FieldCommits, r.FullName, err))
			continue
		}
		out.stats.FilesChanged += len(detail.Files)
	}
	return out, nil
}

func (b *build) contributed(ctx context.Context) error {
	if b.reposErr != nil {
		b.dependsOnRepositories(FieldContributedRepositories)
		return nil
	}

	hits, errs, err := fanOut(ctx, b.opts.Concurrency, b.p.Repositories,
		func(ctx context.Context, r Repository) (bool, error) {
			contribs, err := b.src.Contributors(ctx, r.Owner, r.Name)
			if err != nil {
				return false, err
			}
			for _, c := range contribs {
				if c.Login == b.p.Username {
					return true, nil
				}
			}
			return false, nil
		})
	if err != nil {
		return err
	}

	count := 0
	for i, hit := range hits {
		if errs[i] != nil {
			b.issue(FieldContributedRepositories, b.p.Repositories[i].FullName, errs[i])
			continue
		}
		if hit {
			count++
		}
	}
	b.p.ContributedRepositories = &count
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// ParseRegistration parses a created_at timestamp. Failures carry the
// PARSE_ERROR code.
func ParseRegistration(raw string) (time.Time, error) {
	t, err := time.Parse(RegistrationLayout, raw)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeParse, err, "parse created_at %q", raw)
	}
	return t, nil
}

// unavailable records err against field, or returns it if it is fatal.
func (b *build) unavailable(field, repo string, err error) error {
	if isFatal(err) {
		return err
	}
	b.issue(field, repo, err)
	return nil
}

func (b *build) issue(field, repo string, err error) {
	b.p.Issues = append(b.p.Issues, newIssue(field, repo, err))
}

func (b *build) dependsOnRepositories(field string) {
	b.p.Issues = append(b.p.Issues, Issue{
		Field:   field,
		Kind:    issueKind(b.reposErr),
		Message: "repository list unavailable: " + b.reposErr.Error(),
		Err:     b.reposErr,
	})
}

func newIssue(field, repo string, err error) Issue {
	return Issue{
		Field:      field,
		Repository: repo,
		Kind:       issueKind(err),
		Message:    errors.UserMessage(err),
		Err:        err,
	}
}

// issueKind returns a lower-case kind for err: the error code for domain
// failures, the HTTP sub-kind for unavailable resources.
func issueKind(err error) string {
	if code := errors.GetCode(err); code != "" {
		return strings.ToLower(string(code))
	}
	return integrations.Kind(err)
}

// isFatal reports whether err ends the pass.
func isFatal(err error) bool {
	return stderrors.Is(err, integrations.ErrNetwork) ||
		stderrors.Is(err, context.Canceled) ||
		stderrors.Is(err, context.DeadlineExceeded)
}

func sortedKeys(langs github.Languages) []string {
	keys := make([]string, 0, len(langs))
	for k := range langs {
		keys = append(keys, k)
	}
	return uniqueSorted(keys)
}

func ptr[T any](v T) *T { return &v }
