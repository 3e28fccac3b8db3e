package card

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTheme is assigned to cards whose deck entry has no meta.theme.
const DefaultTheme = "misc"

// deckEntry mirrors one YAML list item in a deck file.
type deckEntry struct {
	Meta struct {
		Theme string `yaml:"theme"`
	} `yaml:"meta"`
	Question string      `yaml:"question"`
	Answer   answerField `yaml:"answer"`
	Hint1    string      `yaml:"hint1"`
	Hint2    string      `yaml:"hint2"`
	Context  string      `yaml:"context"`
	Link     string      `yaml:"link"`
}

// answerField accepts either a scalar answer or a list of accepted
// answers. The first entry is canonical.
type answerField struct {
	values []string
}

func (a *answerField) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		a.values = []string{s}
		return nil
	case yaml.SequenceNode:
		var vals []string
		if err := node.Decode(&vals); err != nil {
			return err
		}
		a.values = vals
		return nil
	default:
		return fmt.Errorf("answer must be a string or a list of strings")
	}
}

// LoadDir walks dir for .yml/.yaml deck files and builds a catalog.
// Files are visited in sorted path order so catalog order is stable.
// An empty catalog is returned (without error) when dir has no decks;
// callers decide whether that is fatal.
func LoadDir(dir string) (*Catalog, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".yml" || ext == ".yaml" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan cards dir %s: %w", dir, err)
	}
	sort.Strings(files)

	var cards []Card
	for _, path := range files {
		fileCards, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		cards = append(cards, fileCards...)
	}
	return NewCatalog(cards)
}

func loadFile(path string) ([]Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck %s: %w", path, err)
	}

	var entries []deckEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, &ValidationError{File: path, Reason: "malformed YAML", Err: err}
	}

	cards := make([]Card, 0, len(entries))
	for i, e := range entries {
		theme := strings.TrimSpace(e.Meta.Theme)
		if theme == "" {
			theme = DefaultTheme
		}
		question := strings.TrimSpace(e.Question)
		if question == "" {
			return nil, &ValidationError{
				File:   path,
				Reason: fmt.Sprintf("entry %d has no question", i+1),
			}
		}
		if len(e.Answer.values) == 0 || strings.TrimSpace(e.Answer.values[0]) == "" {
			return nil, &ValidationError{
				File:   path,
				Reason: fmt.Sprintf("card %q has no answer", question),
			}
		}

		c := Card{
			Theme:    theme,
			Question: question,
			Answer:   strings.TrimSpace(e.Answer.values[0]),
			Hint1:    e.Hint1,
			Hint2:    e.Hint2,
			Context:  e.Context,
			Link:     e.Link,
		}
		for _, alt := range e.Answer.values[1:] {
			alt = strings.TrimSpace(alt)
			if alt != "" {
				c.Alternatives = append(c.Alternatives, alt)
			}
		}
		cards = append(cards, c)
	}
	return cards, nil
}
