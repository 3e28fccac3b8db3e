package store

import (
	"context"

	"github.com/recall-cli/recall/internal/card"
	"github.com/recall-cli/recall/internal/progress"
)

// MemoryProgressRepo is an in-memory ProgressRepo for tests and dry
// runs. Not safe for concurrent use, matching the single-learner model.
type MemoryProgressRepo struct {
	Units map[card.Key]progress.UnitProgress

	// FailWith, when set, is returned by every operation. Lets tests
	// exercise persistence failure paths.
	FailWith error
}

// NewMemoryProgressRepo returns an empty in-memory repository.
func NewMemoryProgressRepo() *MemoryProgressRepo {
	return &MemoryProgressRepo{Units: make(map[card.Key]progress.UnitProgress)}
}

func (m *MemoryProgressRepo) LoadAll(context.Context) (map[card.Key]progress.UnitProgress, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	out := make(map[card.Key]progress.UnitProgress, len(m.Units))
	for k, p := range m.Units {
		out[k] = p
	}
	return out, nil
}

func (m *MemoryProgressRepo) Put(_ context.Context, key card.Key, p progress.UnitProgress) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.Units[key] = p
	return nil
}

func (m *MemoryProgressRepo) SaveAll(_ context.Context, units map[card.Key]progress.UnitProgress) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	for k, p := range units {
		m.Units[k] = p
	}
	return nil
}

func (m *MemoryProgressRepo) Reset(_ context.Context, theme string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	for k := range m.Units {
		if theme == "" || k.Theme == theme {
			delete(m.Units, k)
		}
	}
	return nil
}

var _ ProgressRepo = (*MemoryProgressRepo)(nil)
