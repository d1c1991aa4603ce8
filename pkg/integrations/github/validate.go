package github

import (
	"regexp"

	"github.com/matzehuels/ghprofile/pkg/errors"
)

// nameRule is a naming rule GitHub enforces on one kind of identifier.
type nameRule struct {
	what    string
	pattern *regexp.Regexp
	code    errors.Code
	hint    string
}

var (
	ownerRule = nameRule{
		what:    "username",
		pattern: regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`),
		code:    errors.ErrCodeInvalidUsername,
		hint:    "1-39 letters, digits or hyphens, not starting with a hyphen",
	}
	repoRule = nameRule{
		what:    "repository name",
		pattern: regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`),
		code:    errors.ErrCodeInvalidInput,
		hint:    "1-100 letters, digits, hyphens, underscores or dots",
	}
)

func (r nameRule) check(v string) error {
	if v == "" {
		return errors.New(r.code, "%s is required", r.what)
	}
	if !r.pattern.MatchString(v) {
		return errors.New(r.code, "invalid %s %q: use %s", r.what, v, r.hint)
	}
	return nil
}

// ValidateOwner checks a username or organization login. Failures carry
// [errors.ErrCodeInvalidUsername].
func ValidateOwner(owner string) error { return ownerRule.check(owner) }

// ValidateRepo checks a repository name. Failures carry
// [errors.ErrCodeInvalidInput].
func ValidateRepo(repo string) error { return repoRule.check(repo) }

// ValidateRepoRef checks both halves of owner/repo.
func ValidateRepoRef(owner, repo string) error {
	if err := ValidateOwner(owner); err != nil {
		return err
	}
	return ValidateRepo(repo)
}
