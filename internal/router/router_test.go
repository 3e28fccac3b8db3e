package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/recall-cli/recall/internal/screen"
)

type stubScreen struct {
	name   string
	inited bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.inited = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(width, height int) string               { return s.name }
func (s *stubScreen) Title() string                               { return s.name }

func TestRouterPushPop(t *testing.T) {
	bottom := &stubScreen{name: "home"}
	r := New(bottom)

	if r.Depth() != 1 || r.Active() != bottom {
		t.Fatalf("initial stack: depth %d, active %v", r.Depth(), r.Active())
	}

	top := &stubScreen{name: "study"}
	r.Update(PushScreenMsg{Screen: top})
	if r.Depth() != 2 || r.Active() != top {
		t.Errorf("after push: depth %d, active %s", r.Depth(), r.Active().Title())
	}
	if !top.inited {
		t.Error("pushed screen's Init was not called")
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active() != bottom {
		t.Errorf("after pop: depth %d, active %s", r.Depth(), r.Active().Title())
	}

	// The last screen never pops; there is always something to render.
	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Errorf("popping the last screen changed depth to %d", r.Depth())
	}
}

func TestRouterViewRendersActive(t *testing.T) {
	r := New(&stubScreen{name: "home"}, &stubScreen{name: "study"})
	if got := r.View(80, 24); got != "study" {
		t.Errorf("View = %q, want the top screen", got)
	}
}
