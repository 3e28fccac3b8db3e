package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recall-cli/recall/internal/card"
	"github.com/recall-cli/recall/internal/router"
	"github.com/recall-cli/recall/internal/screen"
	"github.com/recall-cli/recall/internal/session"
	"github.com/recall-cli/recall/internal/store"
	"github.com/recall-cli/recall/internal/ui/layout"
	"github.com/recall-cli/recall/internal/ui/theme"
)

// Row is one theme's aggregated standing.
type Row struct {
	Theme    string
	Total    int
	Mastered int
	Stats    store.ThemeStats
}

type loadedMsg struct {
	rows []Row
	err  error
}

// StatsScreen shows overall and per-theme mastery and accuracy.
type StatsScreen struct {
	engine  *session.Engine
	catalog *card.Catalog
	stats   store.StatsRepo

	rows []Row
	err  error
}

var _ screen.Screen = (*StatsScreen)(nil)

func New(engine *session.Engine, catalog *card.Catalog, stats store.StatsRepo) *StatsScreen {
	return &StatsScreen{
		engine:  engine,
		catalog: catalog,
		stats:   stats,
	}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		rows, err := Collect(context.Background(), s.engine, s.catalog, s.stats)
		return loadedMsg{rows: rows, err: err}
	}
}

// Collect builds the per-theme standings from stored progress and the
// theme counters. It is shared with the non-interactive stats command.
func Collect(ctx context.Context, engine *session.Engine, catalog *card.Catalog, statsRepo store.StatsRepo) ([]Row, error) {
	units, err := engine.LoadProgress(ctx)
	if err != nil {
		return nil, err
	}

	var counters map[string]store.ThemeStats
	if statsRepo != nil {
		counters, err = statsRepo.AllThemeStats(ctx)
		if err != nil {
			return nil, err
		}
	}

	var rows []Row
	for _, name := range catalog.Themes() {
		mastered := 0
		for _, c := range catalog.ByTheme(name) {
			if units[c.Key()].Mastered {
				mastered++
			}
		}
		rows = append(rows, Row{
			Theme:    name,
			Total:    catalog.ThemeSize(name),
			Mastered: mastered,
			Stats:    counters[name],
		})
	}
	return rows, nil
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.rows = msg.rows
		s.err = msg.err
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.err != nil {
		return "\n" + theme.Incorrect.Width(width).Align(lipgloss.Center).Render("Failed to load stats: "+s.err.Error())
	}
	if s.rows == nil {
		return "\n" + theme.Subtitle.Width(width).Render("Loading…")
	}

	var b strings.Builder
	b.WriteString("\n" + theme.Title.Width(width).Render("Progress") + "\n\n")

	totalCards, totalMastered := 0, 0
	for _, r := range s.rows {
		totalCards += r.Total
		totalMastered += r.Mastered
	}
	overall := fmt.Sprintf("%s  %d/%d mastered", layout.ProgressBar(totalMastered, totalCards, 30), totalMastered, totalCards)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Body.Render(overall)) + "\n\n")

	nameWidth := 0
	for _, r := range s.rows {
		if len(r.Theme) > nameWidth {
			nameWidth = len(r.Theme)
		}
	}

	for _, r := range s.rows {
		line := fmt.Sprintf("%-*s  %s %2d/%-2d", nameWidth, r.Theme,
			layout.ProgressBar(r.Mastered, r.Total, 12), r.Mastered, r.Total)
		if r.Stats.Attempts > 0 {
			line += fmt.Sprintf("  %3.0f%% accuracy", r.Stats.Accuracy()*100)
		}
		styled := theme.Body.Render(line)
		if r.Stats.Flames > 0 {
			styled += "  " + theme.Flame.Render(fmt.Sprintf("~ %d", r.Stats.Flames))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, styled) + "\n")
	}

	return b.String()
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}
