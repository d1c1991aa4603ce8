package profile

import (
	"time"
)

// Field names used in [Issue.Field].
const (
	FieldOrganizations           = "organizations"
	FieldFollowers               = "followers"
	FieldRepositories            = "repositories"
	FieldProjects                = "projects"
	FieldLanguages               = "languages"
	FieldStars                   = "stars"
	FieldForks                   = "forks"
	FieldRegisteredAt            = "registered_at"
	FieldAccountAge              = "account_age"
	FieldYearlyContributions     = "yearly_contributions"
	FieldCommits                 = "commits"
	FieldGoodMessageRatio        = "good_message_ratio"
	FieldContributedRepositories = "contributed_repositories"
)

// Profile is the result of one build pass. Nil pointers and nil slices mean
// the value could not be determined; see Issues for why.
type Profile struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Username    string    `json:"username" yaml:"username"`

	Organizations     []string       `json:"organizations" yaml:"organizations"`
	Followers         []string       `json:"followers" yaml:"followers"`
	FollowersCount    *int           `json:"followers_count" yaml:"followers_count"`
	Repositories      []Repository   `json:"repositories" yaml:"repositories"`
	RepositoriesCount *int           `json:"repositories_count" yaml:"repositories_count"`
	ProjectsCount     *int           `json:"projects_count" yaml:"projects_count"`
	LanguageUsage     map[string]int `json:"language_usage" yaml:"language_usage"`
	StarsTotal        *int           `json:"stars_total" yaml:"stars_total"`
	ForksTotal        *int           `json:"forks_total" yaml:"forks_total"`

	RegisteredAt        *time.Time     `json:"registered_at" yaml:"registered_at"`
	AccountAge          *time.Duration `json:"account_age" yaml:"account_age"`
	YearlyContributions *int           `json:"yearly_contributions" yaml:"yearly_contributions"`

	// Set only when requested with Options.Commits.
	Commits          *CommitStats `json:"commits,omitempty" yaml:"commits,omitempty"`
	GoodMessageRatio *float64     `json:"good_message_ratio,omitempty" yaml:"good_message_ratio,omitempty"`

	// Set only when requested with Options.Contributed.
	ContributedRepositories *int `json:"contributed_repositories,omitempty" yaml:"contributed_repositories,omitempty"`

	Issues []Issue `json:"issues" yaml:"issues"`
}

// Repository is a repository owned by the profiled user.
type Repository struct {
	Name         string   `json:"name" yaml:"name"`
	FullName     string   `json:"full_name" yaml:"full_name"`
	Owner        string   `json:"owner" yaml:"owner"`
	Stars        int      `json:"stars" yaml:"stars"`
	Forks        int      `json:"forks" yaml:"forks"`
	Fork         bool     `json:"fork" yaml:"fork"`
	LanguagesURL string   `json:"languages_url" yaml:"languages_url"`
	Languages    []string `json:"languages,omitempty" yaml:"languages,omitempty"`
}

// CommitStats counts the commits authored by the profiled user across all
// repositories.
type CommitStats struct {
	Authored     int `json:"authored" yaml:"authored"`
	Good         int `json:"good" yaml:"good"`
	FilesChanged int `json:"files_changed" yaml:"files_changed"`
}

// Issue explains why a field is unavailable or incomplete.
type Issue struct {
	Field      string `json:"field" yaml:"field"`
	Repository string `json:"repository,omitempty" yaml:"repository,omitempty"`
	Kind       string `json:"kind" yaml:"kind"`
	Message    string `json:"message" yaml:"message"`

	Err error `json:"-" yaml:"-"`
}

// IssuesFor returns the issues recorded for field.
func (p *Profile) IssuesFor(field string) []Issue {
	var out []Issue
	for _, is := range p.Issues {
		if is.Field == field {
			out = append(out, is)
		}
	}
	return out
}

// Complete reports whether every requested field was populated.
func (p *Profile) Complete() bool { return len(p.Issues) == 0 }
