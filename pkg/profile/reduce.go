package profile

import (
	"sort"
	"time"

	"github.com/matzehuels/ghprofile/pkg/errors"
)

// CountLanguages maps each language to the number of repositories using it.
// perRepo holds one language list per repository; a language listed twice
// for the same repository is counted once.
func CountLanguages(perRepo [][]string) map[string]int {
	usage := make(map[string]int)
	for _, langs := range perRepo {
		seen := make(map[string]struct{}, len(langs))
		for _, l := range langs {
			if _, dup := seen[l]; dup {
				continue
			}
			seen[l] = struct{}{}
			usage[l]++
		}
	}
	return usage
}

// SumStars returns the total stargazer count of repos.
func SumStars(repos []Repository) int {
	total := 0
	for _, r := range repos {
		total += r.Stars
	}
	return total
}

// SumForks returns the total fork count of repos.
func SumForks(repos []Repository) int {
	total := 0
	for _, r := range repos {
		total += r.Forks
	}
	return total
}

// AccountAge returns now - registeredAt, or nil when registeredAt is nil.
// A registration time in the future yields zero.
func AccountAge(registeredAt *time.Time, now time.Time) *time.Duration {
	if registeredAt == nil {
		return nil
	}
	age := max(now.Sub(*registeredAt), 0)
	return &age
}

// GoodMessageRatio returns Good / Authored. It is undefined, and returns an
// UNDEFINED_RATIO error, when no commits were authored.
func (s CommitStats) GoodMessageRatio() (float64, error) {
	if s.Authored == 0 {
		return 0, errors.New(errors.ErrCodeUndefinedRatio, "no authored commits")
	}
	return float64(s.Good) / float64(s.Authored), nil
}

// Add returns the field-wise sum of s and o.
func (s CommitStats) Add(o CommitStats) CommitStats {
	return CommitStats{
		Authored:     s.Authored + o.Authored,
		Good:         s.Good + o.Good,
		FilesChanged: s.FilesChanged + o.FilesChanged,
	}
}

// uniqueSorted returns the distinct values of in, sorted. The result is
// non-nil even for empty input.
func uniqueSorted(in []string) []string {
	set := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := set[s]; ok {
			continue
		}
		set[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
