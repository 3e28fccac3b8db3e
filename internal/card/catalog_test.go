package card

import (
	"errors"
	"reflect"
	"testing"
)

func mkCard(theme, question string) Card {
	return Card{Theme: theme, Question: question, Answer: "a"}
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog([]Card{
		mkCard("geo", "Capital of France?"),
		mkCard("geo", "Capital of France?"),
	})
	if err == nil {
		t.Fatal("NewCatalog accepted duplicate (theme, question), want error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("error type %T, want *ValidationError", err)
	}
}

func TestNewCatalogAllowsSameQuestionAcrossThemes(t *testing.T) {
	_, err := NewCatalog([]Card{
		mkCard("geo", "What is X?"),
		mkCard("math", "What is X?"),
	})
	if err != nil {
		t.Fatalf("NewCatalog error: %v; identity is the (theme, question) pair", err)
	}
}

func TestNewCatalogRejectsInvalidCard(t *testing.T) {
	_, err := NewCatalog([]Card{{Theme: "geo", Question: "q"}})
	if err == nil {
		t.Fatal("NewCatalog accepted a card without an answer")
	}
}

func TestCatalogLookups(t *testing.T) {
	cat, err := NewCatalog([]Card{
		mkCard("geo", "g1"),
		mkCard("math", "m1"),
		mkCard("geo", "g2"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if cat.Len() != 3 {
		t.Errorf("Len = %d, want 3", cat.Len())
	}

	if got := cat.Themes(); !reflect.DeepEqual(got, []string{"geo", "math"}) {
		t.Errorf("Themes = %v, want sorted [geo math]", got)
	}

	geo := cat.ByTheme("geo")
	if len(geo) != 2 || geo[0].Question != "g1" || geo[1].Question != "g2" {
		t.Errorf("ByTheme(geo) = %v, want [g1 g2] in catalog order", geo)
	}

	if cat.ThemeSize("math") != 1 {
		t.Errorf("ThemeSize(math) = %d, want 1", cat.ThemeSize("math"))
	}
	if cat.ThemeSize("nope") != 0 {
		t.Errorf("ThemeSize(nope) = %d, want 0", cat.ThemeSize("nope"))
	}

	if c, ok := cat.Get(Key{Theme: "math", Question: "m1"}); !ok || c.Question != "m1" {
		t.Errorf("Get(math/m1) = %v, %v", c, ok)
	}
	if _, ok := cat.Get(Key{Theme: "math", Question: "missing"}); ok {
		t.Error("Get on a missing key reported ok")
	}
}

func TestCardHints(t *testing.T) {
	c := Card{Question: "q", Answer: "a", Hint1: "h1", Hint2: "h2"}
	if c.HintCount() != 2 {
		t.Errorf("HintCount = %d, want 2", c.HintCount())
	}
	if h, ok := c.Hint(2); !ok || h != "h2" {
		t.Errorf("Hint(2) = %q, %v", h, ok)
	}

	bare := Card{Question: "q", Answer: "a"}
	if bare.HintCount() != 0 {
		t.Errorf("HintCount = %d, want 0", bare.HintCount())
	}
}
