// Package githubtest serves an in-memory fake of the GitHub resources used
// to build a profile, for tests that exercise the full fetch path.
//
//	srv := githubtest.New(t)
//	srv.AddUser(githubtest.Account{Login: "octocat", CreatedAt: "2011-01-25T18:44:36Z"})
//	srv.AddRepo(githubtest.Repo{Owner: "octocat", Name: "hello", Languages: map[string]int{"Go": 10}})
//	client := github.NewClient(github.Config{APIURL: srv.APIURL(), WebURL: srv.WebURL()})
package githubtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Account is a fake GitHub user.
type Account struct {
	Login     string
	CreatedAt string
	Orgs      []string
	Followers []string
	Projects  int

	// Contributions is rendered into the profile page as "N contributions in
	// the last year". ProfileHTML, when set, is served verbatim instead.
	Contributions int
	ProfileHTML   string
}

// Repo is a fake repository. Repositories are listed under their owner in
// the order they were added.
type Repo struct {
	Owner        string
	Name         string
	Stars        int
	Forks        int
	Fork         bool
	Languages    map[string]int
	Commits      []Commit
	Contributors []string
}

// Commit is a fake commit.
type Commit struct {
	Author  string
	Message string
	Files   []string
}

// Server is a fake GitHub. API resources are served under /api and profile
// pages under /web.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string]*Account
	repos    map[string][]*Repo
	failures map[string]int
	bodies   map[string]string
	hits     map[string]int
}

// New starts a fake server that is closed when the test ends.
func New(t testing.TB) *Server {
	s := &Server{
		users:    make(map[string]*Account),
		repos:    make(map[string][]*Repo),
		failures: make(map[string]int),
		bodies:   make(map[string]string),
		hits:     make(map[string]int),
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// APIURL is the base URL of the fake REST API.
func (s *Server) APIURL() string { return s.URL + "/api" }

// WebURL is the base URL of the fake website.
func (s *Server) WebURL() string { return s.URL + "/web" }

// AddUser registers an account.
func (s *Server) AddUser(a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[a.Login] = &a
}

// AddRepo registers a repository under its owner.
func (s *Server) AddRepo(r Repo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repos[r.Owner] = append(s.repos[r.Owner], &r)
}

// Fail makes every request for path (relative to the server root, e.g.
// "/api/users/octocat/orgs") answer with status.
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = status
}

// Respond makes every request for path answer 200 with body verbatim.
func (s *Server) Respond(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies[path] = body
}

// rateLimited marks a path that answers 403 with an exhausted quota.
const rateLimited = -1

// RateLimit makes every request for path answer like an exhausted quota:
// 403 with X-RateLimit-Remaining: 0.
func (s *Server) RateLimit(path string) {
	s.Fail(path, rateLimited)
}

// Hits returns how many requests were received for path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(s.countAndFail)

	r.Route("/api", func(r chi.Router) {
		r.Get("/users/{user}", s.user)
		r.Get("/users/{user}/orgs", s.orgs)
		r.Get("/users/{user}/followers", s.followers)
		r.Get("/users/{user}/repos", s.userRepos)
		r.Get("/users/{user}/projects", s.projects)
		r.Get("/repos/{owner}/{repo}/languages", s.languages)
		r.Get("/repos/{owner}/{repo}/commits", s.commits)
		r.Get("/repos/{owner}/{repo}/commits/{sha}", s.commit)
		r.Get("/repos/{owner}/{repo}/contributors", s.contributors)
	})
	r.Get("/web/{user}", s.profilePage)
	return r
}

func (s *Server) countAndFail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		status, fail := s.failures[r.URL.Path]
		body, canned := s.bodies[r.URL.Path]
		s.mu.Unlock()

		if fail {
			if status == rateLimited {
				w.Header().Set("X-RateLimit-Remaining", "0")
				status = http.StatusForbidden
			}
			http.Error(w, http.StatusText(status), status)
			return
		}
		if canned {
			fmt.Fprint(w, body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) account(w http.ResponseWriter, r *http.Request) (*Account, bool) {
	s.mu.Lock()
	a, ok := s.users[chi.URLParam(r, "user")]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	}
	return a, ok
}

func (s *Server) repo(w http.ResponseWriter, r *http.Request) (*Repo, bool) {
	owner, name := chi.URLParam(r, "owner"), chi.URLParam(r, "repo")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, repo := range s.repos[owner] {
		if repo.Name == name {
			return repo, true
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	return nil, false
}

func (s *Server) user(w http.ResponseWriter, r *http.Request) {
	a, ok := s.account(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"login":      a.Login,
		"followers":  len(a.Followers),
		"created_at": a.CreatedAt,
	})
}

func (s *Server) orgs(w http.ResponseWriter, r *http.Request) {
	a, ok := s.account(w, r)
	if !ok {
		return
	}
	out := make([]map[string]any, 0, len(a.Orgs))
	for _, o := range a.Orgs {
		out = append(out, map[string]any{"login": o})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) followers(w http.ResponseWriter, r *http.Request) {
	a, ok := s.account(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, logins(a.Followers))
}

func (s *Server) projects(w http.ResponseWriter, r *http.Request) {
	a, ok := s.account(w, r)
	if !ok {
		return
	}
	out := make([]map[string]any, 0, a.Projects)
	for i := 0; i < a.Projects; i++ {
		out = append(out, map[string]any{"id": i + 1, "name": "project-" + strconv.Itoa(i+1), "state": "open"})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) userRepos(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.account(w, r); !ok {
		return
	}
	user := chi.URLParam(r, "user")

	s.mu.Lock()
	repos := s.repos[user]
	out := make([]map[string]any, 0, len(repos))
	for _, repo := range repos {
		base := s.APIURL() + "/repos/" + repo.Owner + "/" + repo.Name
		out = append(out, map[string]any{
			"name":             repo.Name,
			"full_name":        repo.Owner + "/" + repo.Name,
			"owner":            map[string]any{"login": repo.Owner},
			"stargazers_count": repo.Stars,
			"forks_count":      repo.Forks,
			"fork":             repo.Fork,
			"languages_url":    base + "/languages",
		})
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) languages(w http.ResponseWriter, r *http.Request) {
	repo, ok := s.repo(w, r)
	if !ok {
		return
	}
	langs := repo.Languages
	if langs == nil {
		langs = map[string]int{}
	}
	writeJSON(w, http.StatusOK, langs)
}

func (s *Server) commits(w http.ResponseWriter, r *http.Request) {
	repo, ok := s.repo(w, r)
	if !ok {
		return
	}
	base := s.APIURL() + "/repos/" + repo.Owner + "/" + repo.Name + "/commits/"
	out := make([]map[string]any, 0, len(repo.Commits))
	for i, c := range repo.Commits {
		sha := commitSHA(i)
		out = append(out, map[string]any{
			"sha": sha,
			"url": base + sha,
			"commit": map[string]any{
				"author":  map[string]any{"name": c.Author},
				"message": c.Message,
			},
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) commit(w http.ResponseWriter, r *http.Request) {
	repo, ok := s.repo(w, r)
	if !ok {
		return
	}
	sha := chi.URLParam(r, "sha")
	for i, c := range repo.Commits {
		if commitSHA(i) != sha {
			continue
		}
		files := make([]map[string]any, 0, len(c.Files))
		for _, f := range c.Files {
			files = append(files, map[string]any{"filename": f, "status": "modified"})
		}
		writeJSON(w, http.StatusOK, map[string]any{"sha": sha, "files": files})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
}

func (s *Server) contributors(w http.ResponseWriter, r *http.Request) {
	repo, ok := s.repo(w, r)
	if !ok {
		return
	}
	out := make([]map[string]any, 0, len(repo.Contributors))
	for _, c := range repo.Contributors {
		out = append(out, map[string]any{"login": c, "contributions": 1, "type": "User"})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) profilePage(w http.ResponseWriter, r *http.Request) {
	a, ok := s.account(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if a.ProfileHTML != "" {
		fmt.Fprint(w, a.ProfileHTML)
		return
	}
	fmt.Fprint(w, ProfileHTML(a.Contributions))
}

// ProfileHTML renders a minimal profile page carrying n yearly contributions
// in the same markup github.com uses.
func ProfileHTML(n int) string {
	return `<!DOCTYPE html>
<html><body>
<div class="js-yearly-contributions">
  <div class="position-relative">
    <h2 class="f4 text-normal mb-2">
      ` + thousands(n) + ` contributions
        in the last year
    </h2>
  </div>
</div>
</body></html>`
}

func thousands(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + thousands(-n)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

func commitSHA(i int) string { return fmt.Sprintf("%040x", i+1) }

func logins(names []string) []map[string]any {
	out := make([]map[string]any, 0, len(names))
	for _, n := range names {
		out = append(out, map[string]any{"login": n, "type": "User"})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
