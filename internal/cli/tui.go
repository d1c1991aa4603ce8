package cli

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/ghprofile/pkg/profile"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RepoBrowserModel - Interactive repository list
// =============================================================================

// repoSort is the column the browser is sorted by.
type repoSort int

const (
	sortStars repoSort = iota
	sortForks
	sortName
)

func (s repoSort) String() string {
	switch s {
	case sortForks:
		return "forks"
	case sortName:
		return "name"
	default:
		return "stars"
	}
}

// RepoBrowserModel is the bubbletea model for browsing a profile's repositories.
type RepoBrowserModel struct {
	Username string
	Repos    []profile.Repository
	Sort     repoSort
	Cursor   int
	Height   int
	Offset   int
}

// NewRepoBrowserModel creates a browser over the repositories of p, sorted by stars.
func NewRepoBrowserModel(p *profile.Profile) RepoBrowserModel {
	m := RepoBrowserModel{
		Username: p.Username,
		Repos:    slices.Clone(p.Repositories),
		Height:   15,
	}
	m.sort()
	return m
}

func (m RepoBrowserModel) Init() tea.Cmd {
	return nil
}

func (m RepoBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Repos)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "s":
			m.Sort = (m.Sort + 1) % 3
			m.Repos = slices.Clone(m.Repos)
			m.sort()
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RepoBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Repositories of " + m.Username))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("↑/↓ navigate  s sort (%s)  q quit", m.Sort)))
	b.WriteString("\n\n")

	if len(m.Repos) == 0 {
		b.WriteString(listDimStyle.Render("  no repositories"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Repos))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Repos[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		fork := ""
		if r.Fork {
			fork = "fork"
		}
		langs := "—"
		if len(r.Languages) > 0 {
			langs = strings.Join(r.Languages, ", ")
		}
		rows = append(rows, []string{cursor, r.Name, strconv.Itoa(r.Stars), strconv.Itoa(r.Forks), fork, langs})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Repository", "Stars", "Forks", "", "Languages").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle()
			if col == 4 || col == 5 {
				base = base.Foreground(colorGray)
			}
			if m.Offset+row == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Repos))))

	return b.String()
}

// sort orders Repos by the current column. Ties fall back to the name.
func (m *RepoBrowserModel) sort() {
	slices.SortStableFunc(m.Repos, func(a, b profile.Repository) int {
		var c int
		switch m.Sort {
		case sortStars:
			c = cmp.Compare(b.Stars, a.Stars)
		case sortForks:
			c = cmp.Compare(b.Forks, a.Forks)
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
}

// browse runs the repository browser until the user quits.
func browse(ctx context.Context, p *profile.Profile) error {
	if p.Repositories == nil {
		printWarning("Repositories of %s are unavailable", p.Username)
		return nil
	}
	_, err := tea.NewProgram(NewRepoBrowserModel(p), tea.WithContext(ctx)).Run()
	return err
}
