package composite

import (
	"cmp"
	"fmt"
	"slices"
)

// Store is an insertion-ordered sequence of layers.
type Store struct {
	layers []Layer
}

// Append validates l and adds it after every existing layer.
func (s *Store) Append(l Layer) error {
	if l == nil {
		return fmt.Errorf("composite: nil layer: %w", ErrInvalidLayer)
	}
	if err := l.Validate(); err != nil {
		return err
	}
	s.layers = append(s.layers, l)
	return nil
}

// Len returns the number of layers.
func (s *Store) Len() int {
	return len(s.layers)
}

// Sorted returns the layers ordered by ascending key. Layers with equal keys
// keep their insertion order. The store itself is not reordered.
func (s *Store) Sorted() []Layer {
	sorted := slices.Clone(s.layers)
	slices.SortStableFunc(sorted, func(a, b Layer) int {
		return cmp.Compare(a.Order(), b.Order())
	})
	return sorted
}
