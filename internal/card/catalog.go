package card

import "sort"

// Catalog is an immutable ordered collection of cards. Order is deck
// order: files sorted by path, cards in file order within each file.
type Catalog struct {
	cards []Card
	index map[Key]int
}

// NewCatalog builds a catalog from cards, preserving order. Duplicate
// (theme, question) pairs and cards with empty fields are rejected.
func NewCatalog(cards []Card) (*Catalog, error) {
	c := &Catalog{
		cards: make([]Card, 0, len(cards)),
		index: make(map[Key]int, len(cards)),
	}
	for _, cd := range cards {
		if err := cd.Validate(); err != nil {
			return nil, err
		}
		k := cd.Key()
		if _, dup := c.index[k]; dup {
			return nil, &ValidationError{
				Reason: "duplicate card " + k.Question + " in theme " + k.Theme,
			}
		}
		c.index[k] = len(c.cards)
		c.cards = append(c.cards, cd)
	}
	return c, nil
}

// Len returns the total number of cards.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Get returns the card for key, or false if absent.
func (c *Catalog) Get(k Key) (Card, bool) {
	i, ok := c.index[k]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

// ByTheme returns the theme's cards in catalog order.
func (c *Catalog) ByTheme(theme string) []Card {
	var out []Card
	for _, cd := range c.cards {
		if cd.Theme == theme {
			out = append(out, cd)
		}
	}
	return out
}

// Themes returns all theme names sorted alphabetically.
func (c *Catalog) Themes() []string {
	seen := make(map[string]bool)
	var themes []string
	for _, cd := range c.cards {
		if !seen[cd.Theme] {
			seen[cd.Theme] = true
			themes = append(themes, cd.Theme)
		}
	}
	sort.Strings(themes)
	return themes
}

// ThemeSize returns the number of cards in a theme.
func (c *Catalog) ThemeSize(theme string) int {
	n := 0
	for _, cd := range c.cards {
		if cd.Theme == theme {
			n++
		}
	}
	return n
}
