package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/recall-cli/recall/internal/card"
	"github.com/recall-cli/recall/internal/config"
	"github.com/recall-cli/recall/internal/progress"
	"github.com/recall-cli/recall/internal/store"
)

func testEngine(t *testing.T, repo store.ProgressRepo, questions ...string) *Engine {
	t.Helper()
	cards := make([]card.Card, len(questions))
	for i, q := range questions {
		cards[i] = card.Card{Theme: "geo", Question: q, Answer: "right", Hint1: "h1", Hint2: "h2"}
	}
	cat, err := card.NewCatalog(cards)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.UnitsPerTheme = 10
	cfg.ValidStreakDays = 3
	return NewEngine(cat, repo, nil, nil, cfg)
}

func TestEngineFullSession(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryProgressRepo()
	e := testEngine(t, repo, "q1", "q2")
	day := progress.NewDate(2026, time.March, 1)

	st, err := e.Start(ctx, "geo", day)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Plan) != 2 {
		t.Fatalf("planned %d units, want 2", len(st.Plan))
	}

	// First unit: correct.
	res, err := e.Submit(ctx, st, "  RIGHT ")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Correct || res.Streak != 1 || res.Mastered {
		t.Errorf("first attempt: %+v", res)
	}
	if !e.Advance(st) {
		t.Fatal("Advance = false with a unit remaining")
	}

	// Second unit: wrong, then the feedback carries the canonical answer.
	res, err = e.Submit(ctx, st, "nope")
	if err != nil {
		t.Fatal(err)
	}
	if res.Correct {
		t.Error("wrong answer evaluated as correct")
	}
	if res.Answer != "right" {
		t.Errorf("AttemptResult.Answer = %q, want the canonical answer", res.Answer)
	}
	if e.Advance(st) {
		t.Error("Advance = true after the last unit")
	}

	summ, err := e.Finish(ctx, st)
	if err != nil {
		t.Fatal(err)
	}
	if summ.Planned != 2 || summ.Attempted != 2 || summ.Correct != 1 {
		t.Errorf("summary = %+v", summ)
	}
	if summ.AllCorrect {
		t.Error("AllCorrect = true after a wrong answer")
	}

	// Every attempt was persisted as it landed.
	stored := repo.Units[card.Key{Theme: "geo", Question: "q1"}]
	if stored.Streak != 1 || stored.Correct != 1 {
		t.Errorf("stored q1 = %+v", stored)
	}
	stored = repo.Units[card.Key{Theme: "geo", Question: "q2"}]
	if stored.Wrong != 1 || stored.Streak != 0 {
		t.Errorf("stored q2 = %+v", stored)
	}
}

func TestEngineMasteryAcrossSessions(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryProgressRepo()
	e := testEngine(t, repo, "q1")
	day := progress.NewDate(2026, time.March, 1)

	for i := 0; i < e.Config.ValidStreakDays; i++ {
		st, err := e.Start(ctx, "geo", day.AddDays(i))
		if err != nil {
			t.Fatal(err)
		}
		if len(st.Plan) != 1 {
			t.Fatalf("day %d: planned %d units, want 1", i, len(st.Plan))
		}
		if _, err := e.Submit(ctx, st, "right"); err != nil {
			t.Fatal(err)
		}
		e.Advance(st)
		if _, err := e.Finish(ctx, st); err != nil {
			t.Fatal(err)
		}
	}

	// Mastered now; the next session has nothing to present.
	st, err := e.Start(ctx, "geo", day.AddDays(e.Config.ValidStreakDays))
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Plan) != 0 || !st.Done() {
		t.Errorf("plan after mastery = %v", st.Plan)
	}
}

func TestEngineSameDayRestartIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryProgressRepo()
	e := testEngine(t, repo, "q1")
	day := progress.NewDate(2026, time.March, 1)

	for run := 0; run < 2; run++ {
		st, err := e.Start(ctx, "geo", day)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := e.Submit(ctx, st, "right"); err != nil {
			t.Fatal(err)
		}
	}

	stored := repo.Units[card.Key{Theme: "geo", Question: "q1"}]
	if stored.Streak != 1 {
		t.Errorf("Streak = %d after same-day replay, want 1", stored.Streak)
	}
	if stored.Correct != 2 {
		t.Errorf("Correct = %d, want 2 (lifetime counter still ticks)", stored.Correct)
	}
}

func TestEngineHintProtocol(t *testing.T) {
	ctx := context.Background()
	e := testEngine(t, store.NewMemoryProgressRepo(), "q1", "q2")
	st, err := e.Start(ctx, "geo", progress.NewDate(2026, time.March, 1))
	if err != nil {
		t.Fatal(err)
	}

	h, ok := e.RevealNextHint(st)
	if !ok || h != "h1" {
		t.Errorf("first reveal = %q, %v", h, ok)
	}
	h, ok = e.RevealNextHint(st)
	if !ok || h != "h2" {
		t.Errorf("second reveal = %q, %v", h, ok)
	}
	if _, ok := e.RevealNextHint(st); ok {
		t.Error("third reveal succeeded, want exhaustion")
	}

	shown := e.ShownHints(st)
	if len(shown) != 2 {
		t.Errorf("ShownHints = %v", shown)
	}

	// Advancing resets the hint state for the next unit.
	if _, err := e.Submit(ctx, st, "right"); err != nil {
		t.Fatal(err)
	}
	e.Advance(st)
	if st.HintsShown != 0 {
		t.Errorf("HintsShown = %d after Advance, want 0", st.HintsShown)
	}
}

func TestEngineSubmitAfterPlanExhausted(t *testing.T) {
	ctx := context.Background()
	e := testEngine(t, store.NewMemoryProgressRepo(), "q1")
	st, err := e.Start(ctx, "geo", progress.NewDate(2026, time.March, 1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Submit(ctx, st, "right"); err != nil {
		t.Fatal(err)
	}
	e.Advance(st)

	if _, err := e.Submit(ctx, st, "right"); !errors.Is(err, ErrNoCurrentUnit) {
		t.Errorf("Submit after exhaustion: err = %v, want ErrNoCurrentUnit", err)
	}
}

func TestEngineSubmitSurfacesPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryProgressRepo()
	e := testEngine(t, repo, "q1")
	st, err := e.Start(ctx, "geo", progress.NewDate(2026, time.March, 1))
	if err != nil {
		t.Fatal(err)
	}

	boom := &store.PersistenceError{Op: "save unit", Err: errors.New("disk full")}
	repo.FailWith = boom

	if _, err := e.Submit(ctx, st, "right"); !errors.Is(err, boom) {
		t.Errorf("Submit err = %v, want the persistence error surfaced", err)
	}
}

func TestEngineFinishIdempotentAndEarly(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryProgressRepo()
	e := testEngine(t, repo, "q1", "q2", "q3")
	st, err := e.Start(ctx, "geo", progress.NewDate(2026, time.March, 1))
	if err != nil {
		t.Fatal(err)
	}

	// Quit after one of three units: the processed unit stays durable.
	if _, err := e.Submit(ctx, st, "right"); err != nil {
		t.Fatal(err)
	}
	summ, err := e.Finish(ctx, st)
	if err != nil {
		t.Fatal(err)
	}
	if summ.Planned != 3 || summ.Attempted != 1 || summ.Correct != 1 {
		t.Errorf("summary = %+v", summ)
	}

	again, err := e.Finish(ctx, st)
	if err != nil {
		t.Fatal(err)
	}
	if again != summ {
		t.Errorf("second Finish = %+v, want identical summary", again)
	}

	if got := repo.Units[card.Key{Theme: "geo", Question: "q1"}]; got.Streak != 1 {
		t.Errorf("stored q1 after early quit = %+v", got)
	}
	if got := repo.Units[card.Key{Theme: "geo", Question: "q2"}]; got.Attempted() {
		t.Errorf("unattempted q2 gained state: %+v", got)
	}
}

func TestSummaryAccuracy(t *testing.T) {
	s := Summary{Attempted: 4, Correct: 3}
	if got := s.Accuracy(); got != 0.75 {
		t.Errorf("Accuracy = %v, want 0.75", got)
	}
	if got := (Summary{}).Accuracy(); got != 0 {
		t.Errorf("empty Accuracy = %v, want 0", got)
	}
}
