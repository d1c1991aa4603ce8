package cli

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/ghprofile/pkg/errors"
	pkgio "github.com/matzehuels/ghprofile/pkg/io"
	"github.com/matzehuels/ghprofile/pkg/profile"
)

// unavailable is shown in place of a value that could not be determined.
const unavailable = "n/a"

// validateFormat checks a --format value.
func validateFormat(format string) error {
	if format == formatText {
		return nil
	}
	_, err := pkgio.ParseFormat(format)
	return err
}

// render writes p to w as a text summary or as a JSON or YAML report.
func render(w io.Writer, p *profile.Profile, format string) error {
	if format == formatText {
		return renderText(w, p)
	}
	f, err := pkgio.ParseFormat(format)
	if err != nil {
		return err
	}
	return pkgio.Write(p, w, f)
}

// =============================================================================
// Text Report
// =============================================================================

// renderText writes a human-readable summary of p.
func renderText(w io.Writer, p *profile.Profile) error {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(p.Username))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("generated %s · run %s",
		p.GeneratedAt.Format("2006-01-02 15:04 MST"), shortID(p.RunID))))
	b.WriteString("\n\n")

	b.WriteString(summaryTable(p).Render())
	b.WriteString("\n")

	if langs := languageLines(p); len(langs) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleTitle.Render("Languages"))
		b.WriteString("\n")
		for _, l := range langs {
			b.WriteString("  " + l + "\n")
		}
	}

	if len(p.Issues) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(fmt.Sprintf("Unavailable (%d)", len(p.Issues))))
		b.WriteString("\n")
		for _, is := range p.Issues {
			b.WriteString("  " + styleIconWarning.Render(iconWarning) + " " + issueLine(is) + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// summaryTable lays out the scalar fields of p, one per row.
func summaryTable(p *profile.Profile) *table.Table {
	rows := [][]string{
		{"Organizations", formatList(p.Organizations)},
		{"Followers", formatInt(p.FollowersCount)},
		{"Repositories", formatInt(p.RepositoriesCount)},
		{"Projects", formatInt(p.ProjectsCount)},
		{"Stars", formatInt(p.StarsTotal)},
		{"Forks", formatInt(p.ForksTotal)},
		{"Registered", formatTime(p.RegisteredAt)},
		{"Account age", formatAge(p.AccountAge)},
		{"Contributions", formatInt(p.YearlyContributions)},
	}
	if p.Commits != nil || len(p.IssuesFor(profile.FieldCommits)) > 0 {
		rows = append(rows,
			[]string{"Commits", formatCommits(p.Commits)},
			[]string{"Good messages", formatRatio(p.GoodMessageRatio)},
		)
	}
	if p.ContributedRepositories != nil || len(p.IssuesFor(profile.FieldContributedRepositories)) > 0 {
		rows = append(rows, []string{"Contributed to", formatInt(p.ContributedRepositories)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 {
				return base.Inherit(styleHeader)
			}
			if row >= 0 && row < len(rows) && rows[row][1] == unavailable {
				return base.Inherit(StyleWarning)
			}
			return base.Inherit(StyleValue)
		})
}

// languageLines lists languages by repository count, most used first.
func languageLines(p *profile.Profile) []string {
	type usage struct {
		name  string
		repos int
	}
	var langs []usage
	for name, n := range p.LanguageUsage {
		langs = append(langs, usage{name, n})
	}
	slices.SortFunc(langs, func(a, b usage) int {
		if c := cmp.Compare(b.repos, a.repos); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	lines := make([]string, len(langs))
	for i, l := range langs {
		unit := "repositories"
		if l.repos == 1 {
			unit = "repository"
		}
		lines[i] = fmt.Sprintf("%-14s %s %s", l.name, StyleNumber.Render(strconv.Itoa(l.repos)), StyleDim.Render(unit))
	}
	return lines
}

// issueLine formats an issue as "field (repo): kind: message".
func issueLine(is profile.Issue) string {
	field := is.Field
	if is.Repository != "" {
		field += " (" + is.Repository + ")"
	}
	msg := is.Message
	if is.Err != nil {
		msg = errors.UserMessage(is.Err)
	}
	return fmt.Sprintf("%s: %s: %s", field, is.Kind, msg)
}

// =============================================================================
// Value Formatting
// =============================================================================

func formatInt(v *int) string {
	if v == nil {
		return unavailable
	}
	return strconv.Itoa(*v)
}

func formatList(v []string) string {
	switch {
	case v == nil:
		return unavailable
	case len(v) == 0:
		return "0"
	case len(v) > 3:
		return fmt.Sprintf("%d (%s, …)", len(v), strings.Join(v[:3], ", "))
	default:
		return fmt.Sprintf("%d (%s)", len(v), strings.Join(v, ", "))
	}
}

func formatTime(v *time.Time) string {
	if v == nil {
		return unavailable
	}
	return v.Format("2006-01-02")
}

func formatAge(v *time.Duration) string {
	if v == nil {
		return unavailable
	}
	days := int(v.Hours() / 24)
	if days < 365 {
		return fmt.Sprintf("%d days", days)
	}
	return fmt.Sprintf("%d days (%.1f years)", days, float64(days)/365.25)
}

func formatCommits(v *profile.CommitStats) string {
	if v == nil {
		return unavailable
	}
	return fmt.Sprintf("%d authored, %d good, %d files changed", v.Authored, v.Good, v.FilesChanged)
}

func formatRatio(v *float64) string {
	if v == nil {
		return unavailable
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
