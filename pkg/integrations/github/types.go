package github

// User is the summary form of a GitHub account, as returned in follower
// lists and as the author of a commit.
type User struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Type  string `json:"type"`
}

// UserDetail is the full account object from users/{user}.
type UserDetail struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	Name        string `json:"name"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`

	// CreatedAt is kept as the raw string so that a malformed value can be
	// reported as a parse failure instead of failing the whole decode.
	CreatedAt string `json:"created_at"`
}

// Organization is an entry of users/{user}/orgs.
type Organization struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	Description string `json:"description"`
}

// Repository is an entry of users/{user}/repos.
type Repository struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	FullName     string `json:"full_name"`
	Owner        User   `json:"owner"`
	Language     string `json:"language"`
	Stars        int    `json:"stargazers_count"`
	Forks        int    `json:"forks_count"`
	LanguagesURL string `json:"languages_url"`
	Fork         bool   `json:"fork"`
}

// Project is an entry of users/{user}/projects.
type Project struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// Languages maps a language name to the number of bytes written in it.
type Languages map[string]int

// Commit is an entry of repos/{owner}/{repo}/commits.
type Commit struct {
	SHA    string    `json:"sha"`
	URL    string    `json:"url"`
	Commit GitCommit `json:"commit"`
}

// GitCommit is the git-level part of a commit.
type GitCommit struct {
	Author  Signature `json:"author"`
	Message string    `json:"message"`
}

// Signature identifies the author of a git commit.
type Signature struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
}

// CommitDetail is the full commit object behind [Commit.URL].
type CommitDetail struct {
	SHA   string       `json:"sha"`
	Files []CommitFile `json:"files"`
}

// CommitFile is one changed file of a commit.
type CommitFile struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

// Contributor is an entry of repos/{owner}/{repo}/contributors.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	Type          string `json:"type"`
}
