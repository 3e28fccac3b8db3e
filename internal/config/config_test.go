package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `{"UNITS_PER_THEME": 5}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UnitsPerTheme != 5 {
		t.Errorf("UnitsPerTheme = %d, want 5", cfg.UnitsPerTheme)
	}
	if cfg.ValidStreakDays != Default().ValidStreakDays {
		t.Errorf("ValidStreakDays = %d, want untouched default", cfg.ValidStreakDays)
	}
	if cfg.CardsDir != Default().CardsDir {
		t.Errorf("CardsDir = %q, want untouched default", cfg.CardsDir)
	}
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `{
		"CARDS_DIR": "decks",
		"DATA_FILE": "progress.db",
		"UNITS_PER_THEME": 7,
		"VALID_STREAK_DAYS": 4
	}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{CardsDir: "decks", DataFile: "progress.db", UnitsPerTheme: 7, ValidStreakDays: 4}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestLoadLegacyAlias(t *testing.T) {
	path := writeConfig(t, `{"REVIEW_VALIDATED": 5}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ValidStreakDays != 5 {
		t.Errorf("ValidStreakDays = %d, want 5 via REVIEW_VALIDATED", cfg.ValidStreakDays)
	}
}

func TestLoadAliasAgreementOK(t *testing.T) {
	path := writeConfig(t, `{"REVIEW_VALIDATED": 4, "VALID_STREAK_DAYS": 4}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ValidStreakDays != 4 {
		t.Errorf("ValidStreakDays = %d, want 4", cfg.ValidStreakDays)
	}
}

func TestLoadAliasConflictErrors(t *testing.T) {
	path := writeConfig(t, `{"REVIEW_VALIDATED": 4, "VALID_STREAK_DAYS": 3}`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("conflicting alias values accepted, want error")
	}
	if !strings.Contains(err.Error(), "REVIEW_VALIDATED") {
		t.Errorf("error %q does not name the conflicting keys", err)
	}
}

func TestLoadSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", `{"UNITS_PER_THME": 5}`},
		{"wrong type", `{"UNITS_PER_THEME": "five"}`},
		{"below minimum", `{"VALID_STREAK_DAYS": 0}`},
		{"not json", `UNITS_PER_THEME = 5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Errorf("Load accepted %s", tt.content)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("RECALL_CONFIG", "")
	if got := DefaultPath(); got != "config.json" {
		t.Errorf("DefaultPath = %q, want config.json", got)
	}

	t.Setenv("RECALL_CONFIG", "/tmp/alt.json")
	if got := DefaultPath(); got != "/tmp/alt.json" {
		t.Errorf("DefaultPath = %q, want env override", got)
	}
}
