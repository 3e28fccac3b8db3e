package home

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recall-cli/recall/internal/card"
	"github.com/recall-cli/recall/internal/router"
	"github.com/recall-cli/recall/internal/screen"
	"github.com/recall-cli/recall/internal/screens/stats"
	"github.com/recall-cli/recall/internal/screens/themes"
	"github.com/recall-cli/recall/internal/session"
	"github.com/recall-cli/recall/internal/store"
	"github.com/recall-cli/recall/internal/ui/components"
	"github.com/recall-cli/recall/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	menu          components.Menu
	totalCards    int
	masteredCards int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen and computes the overall progress line
// from stored state.
func New(engine *session.Engine, catalog *card.Catalog, statsRepo store.StatsRepo) *HomeScreen {
	mastered := 0
	if engine != nil {
		if units, err := engine.LoadProgress(context.Background()); err == nil {
			for _, p := range units {
				if p.Mastered {
					mastered++
				}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "STUDY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: themes.New(engine, catalog, statsRepo)}
			}
		}},
		{Label: "STATS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(engine, catalog, statsRepo)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:          components.NewMenu(items),
		totalCards:    catalog.Len(),
		masteredCards: mastered,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Width(width).Render("Spaced-Repetition Trainer")

	pct := 0
	if h.totalCards > 0 {
		pct = h.masteredCards * 100 / h.totalCards
	}
	progressLine := theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%d/%d cards mastered (%d%%)", h.masteredCards, h.totalCards, pct))

	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())

	return "\n\n" + title + "\n" + progressLine + "\n\n\n" + menu
}

func (h *HomeScreen) Title() string {
	return "Home"
}
