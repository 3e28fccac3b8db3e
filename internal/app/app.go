package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recall-cli/recall/internal/card"
	"github.com/recall-cli/recall/internal/router"
	"github.com/recall-cli/recall/internal/screen"
	"github.com/recall-cli/recall/internal/screens/home"
	"github.com/recall-cli/recall/internal/screens/study"
	"github.com/recall-cli/recall/internal/session"
	"github.com/recall-cli/recall/internal/store"
	"github.com/recall-cli/recall/internal/ui/layout"
)

// Options carries the wired collaborators into the TUI. StartTheme,
// when set, opens straight into a session over that theme.
type Options struct {
	Engine     *session.Engine
	Catalog    *card.Catalog
	Stats      store.StatsRepo
	StartTheme string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	stack := []screen.Screen{home.New(opts.Engine, opts.Catalog, opts.Stats)}
	if opts.StartTheme != "" {
		stack = append(stack, study.New(opts.Engine, opts.Stats, opts.StartTheme))
	}
	return AppModel{
		router: router.New(stack...),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Screens own Esc (back vs. quit-confirm); only Ctrl+C is global.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	flames := 0
	if active != nil {
		title = active.Title()
		if fp, ok := active.(screen.FlameProvider); ok {
			flames = fp.Flames()
		}
	}

	header := layout.RenderHeader(title, flames, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
