package study

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recall-cli/recall/internal/progress"
	"github.com/recall-cli/recall/internal/router"
	"github.com/recall-cli/recall/internal/screen"
	"github.com/recall-cli/recall/internal/session"
	"github.com/recall-cli/recall/internal/store"
	"github.com/recall-cli/recall/internal/ui/components"
	"github.com/recall-cli/recall/internal/ui/layout"
	"github.com/recall-cli/recall/internal/ui/theme"
)

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
	phaseConfirmQuit
	phaseSummary
	phaseError
)

type startedMsg struct {
	state  *session.State
	flames int
	err    error
}

// StudyScreen runs one session over one theme: question, optional
// hints, answer, feedback, next, until the plan is exhausted or the
// learner quits. Every attempt is persisted as it lands, so quitting
// mid-session loses nothing.
type StudyScreen struct {
	engine *session.Engine
	stats  store.StatsRepo
	theme  string

	phase       phase
	state       *session.State
	input       components.AnswerInput
	hints       []string
	noMoreHints bool
	result      session.AttemptResult
	summ        session.Summary
	flames      int
	err         error

	// resume is the phase to return to when a quit-confirm is declined.
	resume phase
}

var _ screen.Screen = (*StudyScreen)(nil)

func New(engine *session.Engine, stats store.StatsRepo, themeName string) *StudyScreen {
	return &StudyScreen{
		engine: engine,
		stats:  stats,
		theme:  themeName,
		phase:  phaseLoading,
		input:  components.NewAnswerInput("your answer", 200),
	}
}

func (s *StudyScreen) Init() tea.Cmd {
	return tea.Batch(
		s.input.Init(),
		func() tea.Msg {
			ctx := context.Background()
			st, err := s.engine.Start(ctx, s.theme, progress.Today())
			if err != nil {
				return startedMsg{err: err}
			}
			flames := 0
			if s.stats != nil {
				if ts, serr := s.stats.ThemeStats(ctx, s.theme); serr == nil {
					flames = ts.Flames
				}
			}
			return startedMsg{state: st, flames: flames}
		},
	)
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.err != nil {
			s.err = msg.err
			s.phase = phaseError
			return s, nil
		}
		s.state = msg.state
		s.flames = msg.flames
		if s.state.Done() {
			// Nothing due today for this theme.
			return s.finish()
		}
		s.phase = phaseQuestion
		return s, nil

	case tea.KeyMsg:
		switch s.phase {
		case phaseQuestion:
			return s.updateQuestion(msg)
		case phaseFeedback:
			return s.updateFeedback(msg)
		case phaseConfirmQuit:
			return s.updateConfirmQuit(msg)
		case phaseSummary, phaseError:
			switch msg.String() {
			case "enter", "esc", "q":
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return s, nil
		}
	}

	if s.phase == phaseQuestion {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StudyScreen) updateQuestion(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.resume = phaseQuestion
		s.phase = phaseConfirmQuit
		return s, nil

	case "tab":
		if h, ok := s.engine.RevealNextHint(s.state); ok {
			s.hints = append(s.hints, h)
		} else {
			s.noMoreHints = true
		}
		return s, nil

	case "enter":
		res, err := s.engine.Submit(context.Background(), s.state, s.input.Value())
		if err != nil {
			s.err = err
			s.phase = phaseError
			return s, nil
		}
		s.result = res
		s.input.Submit(res.Correct)
		s.phase = phaseFeedback
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *StudyScreen) updateFeedback(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		if s.engine.Advance(s.state) {
			s.hints = nil
			s.noMoreHints = false
			s.input = components.NewAnswerInput("your answer", 200)
			s.phase = phaseQuestion
			return s, s.input.Init()
		}
		return s.finish()

	case "esc":
		s.resume = phaseFeedback
		s.phase = phaseConfirmQuit
		return s, nil
	}
	return s, nil
}

func (s *StudyScreen) updateConfirmQuit(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return s.finish()
	case "n", "N", "esc":
		s.phase = s.resume
		return s, nil
	}
	return s, nil
}

// finish closes the session, refreshes the flame counter and switches
// to the summary view.
func (s *StudyScreen) finish() (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	summ, err := s.engine.Finish(ctx, s.state)
	if err != nil {
		s.err = err
		s.phase = phaseError
		return s, nil
	}
	s.summ = summ
	if s.stats != nil {
		if ts, serr := s.stats.ThemeStats(ctx, s.theme); serr == nil {
			s.flames = ts.Flames
		}
	}
	s.phase = phaseSummary
	return s, nil
}

func (s *StudyScreen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return "\n" + theme.Subtitle.Width(width).Render("Loading…")
	case phaseError:
		return "\n" + theme.Incorrect.Width(width).Align(lipgloss.Center).Render("Session error: "+s.err.Error())
	case phaseSummary:
		return s.viewSummary(width)
	case phaseConfirmQuit:
		return s.viewConfirmQuit(width)
	default:
		return s.viewUnit(width)
	}
}

func (s *StudyScreen) viewUnit(width int) string {
	c, ok := s.state.Current()
	if !ok {
		return ""
	}

	pos := fmt.Sprintf("Card %d of %d", s.state.Index+1, len(s.state.Plan))
	bar := layout.ProgressBar(s.state.Index, len(s.state.Plan), 24)
	header := theme.Subtitle.Width(width).Render(pos + "  " + bar)

	var b strings.Builder
	b.WriteString("\n" + header + "\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Body.Bold(true).Render(c.Question)) + "\n\n")

	for i, h := range s.hints {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render(fmt.Sprintf("Hint %d: %s", i+1, h))) + "\n")
	}
	if s.noMoreHints {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Dim.Render("No more hints")) + "\n")
	}
	if len(s.hints) > 0 || s.noMoreHints {
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()) + "\n")

	if s.phase == phaseFeedback {
		b.WriteString("\n" + s.viewVerdict(width))
	}

	return b.String()
}

func (s *StudyScreen) viewVerdict(width int) string {
	var b strings.Builder

	if s.result.Correct {
		line := fmt.Sprintf("Correct!  Streak: %d/%d", s.result.Streak, s.engine.Config.ValidStreakDays)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Correct.Render(line)) + "\n")
		if s.result.NewlyMastered {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Flame.Render("Mastered! This card leaves the rotation.")) + "\n")
		}
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render("Wrong. The answer is: "+s.result.Answer)) + "\n")
	}

	c, _ := s.state.Current()
	if c.Context != "" {
		b.WriteString("\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Dim.Render(c.Context)) + "\n")
	}
	if c.Link != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Dim.Render(c.Link)) + "\n")
	}

	b.WriteString("\n" + theme.Subtitle.Width(width).Render("Enter to continue"))
	return b.String()
}

func (s *StudyScreen) viewConfirmQuit(width int) string {
	msg := theme.Body.Bold(true).Render("End the session?") + "\n\n" +
		theme.Dim.Render("Answered cards are already saved.") + "\n\n" +
		theme.Subtitle.Render("y: end   n: keep going")
	return "\n\n\n" + lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(msg)
}

func (s *StudyScreen) viewSummary(width int) string {
	var b strings.Builder

	b.WriteString("\n\n" + theme.Title.Width(width).Render("Session complete") + "\n\n")

	if s.summ.Attempted == 0 {
		b.WriteString(theme.Subtitle.Width(width).Render("Nothing to review: every card in this theme is mastered.") + "\n")
	} else {
		lines := []string{
			fmt.Sprintf("Answered   %d of %d planned", s.summ.Attempted, s.summ.Planned),
			fmt.Sprintf("Correct    %d  (%.0f%%)", s.summ.Correct, s.summ.Accuracy()*100),
			fmt.Sprintf("Mastered   %d new", s.summ.NewlyMastered),
		}
		for _, line := range lines {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Body.Render(line)) + "\n")
		}
		if s.summ.AllCorrect {
			b.WriteString("\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Flame.Render(fmt.Sprintf("Perfect session! Flame streak at %d", s.flames))) + "\n")
		}
	}

	b.WriteString("\n" + theme.Subtitle.Width(width).Render("Enter to go back"))
	return b.String()
}

func (s *StudyScreen) Title() string {
	return s.theme
}

func (s *StudyScreen) Flames() int {
	return s.flames
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Tab", Description: "Hint"},
			{Key: "Esc", Description: "End session"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "End session"},
		}
	case phaseSummary:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}
