package themes

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recall-cli/recall/internal/card"
	"github.com/recall-cli/recall/internal/progress"
	"github.com/recall-cli/recall/internal/router"
	"github.com/recall-cli/recall/internal/screen"
	"github.com/recall-cli/recall/internal/screens/study"
	"github.com/recall-cli/recall/internal/session"
	"github.com/recall-cli/recall/internal/store"
	"github.com/recall-cli/recall/internal/ui/components"
	"github.com/recall-cli/recall/internal/ui/layout"
	"github.com/recall-cli/recall/internal/ui/theme"
)

// themeRow is one theme with its mastery and flame counters resolved.
type themeRow struct {
	name     string
	total    int
	mastered int
	flames   int
}

type loadedMsg struct {
	rows []themeRow
	err  error
}

// ThemesScreen lists every theme with mastery progress and lets the
// learner start a session.
type ThemesScreen struct {
	engine  *session.Engine
	catalog *card.Catalog
	stats   store.StatsRepo

	menu components.Menu
	rows []themeRow
	err  error
}

var _ screen.Screen = (*ThemesScreen)(nil)

func New(engine *session.Engine, catalog *card.Catalog, stats store.StatsRepo) *ThemesScreen {
	return &ThemesScreen{
		engine:  engine,
		catalog: catalog,
		stats:   stats,
	}
}

func (t *ThemesScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		units, err := t.engine.LoadProgress(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}

		var flames map[string]store.ThemeStats
		if t.stats != nil {
			flames, err = t.stats.AllThemeStats(ctx)
			if err != nil {
				return loadedMsg{err: err}
			}
		}

		var rows []themeRow
		for _, name := range t.catalog.Themes() {
			rows = append(rows, themeRow{
				name:     name,
				total:    t.catalog.ThemeSize(name),
				mastered: masteredIn(t.catalog, units, name),
				flames:   flames[name].Flames,
			})
		}
		return loadedMsg{rows: rows}
	}
}

func masteredIn(catalog *card.Catalog, units map[card.Key]progress.UnitProgress, themeName string) int {
	n := 0
	for _, c := range catalog.ByTheme(themeName) {
		if units[c.Key()].Mastered {
			n++
		}
	}
	return n
}

func (t *ThemesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			t.err = msg.err
			return t, nil
		}
		t.rows = msg.rows
		t.menu = components.NewMenu(t.menuItems())
		return t, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return t, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	var cmd tea.Cmd
	t.menu, cmd = t.menu.Update(msg)
	return t, cmd
}

func (t *ThemesScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(t.rows))
	for _, row := range t.rows {
		row := row
		detail := fmt.Sprintf("%s %d/%d", layout.ProgressBar(row.mastered, row.total, 10), row.mastered, row.total)
		if row.flames > 0 {
			detail += "  " + theme.Flame.Render(fmt.Sprintf("~ %d", row.flames))
		}
		items = append(items, components.MenuItem{
			Label:  row.name,
			Detail: detail,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: study.New(t.engine, t.stats, row.name)}
				}
			},
		})
	}
	return items
}

func (t *ThemesScreen) View(width, height int) string {
	if t.err != nil {
		return "\n" + theme.Incorrect.Width(width).Align(lipgloss.Center).Render("Failed to load progress: "+t.err.Error())
	}
	if t.rows == nil {
		return "\n" + theme.Subtitle.Width(width).Render("Loading…")
	}

	title := theme.Title.Width(width).Render("Pick a theme")
	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, t.menu.View())
	return "\n\n" + title + "\n\n" + menu
}

func (t *ThemesScreen) Title() string {
	return "Themes"
}

func (t *ThemesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Study"},
		{Key: "Esc", Description: "Back"},
	}
}
