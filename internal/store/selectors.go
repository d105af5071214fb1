package store

import (
	"sync"

	"github.com/atinyakov/go-webpages/internal/models"
)

// SelectWebpages returns the records. The slice is the one held by the state,
// so an unchanged list yields the same backing array. Callers must not modify it.
func SelectWebpages(s *State) []models.Webpage {
	return s.Webpages
}

// SelectIsLoading returns the loading flag.
func SelectIsLoading(s *State) bool {
	return s.IsLoading
}

// SelectError returns the failure message, empty when there is none.
func SelectError(s *State) string {
	return s.Error
}

// SelectCount returns the number of records.
func SelectCount(s *State) int {
	return len(s.Webpages)
}

// SelectWebpageByID returns the record with id, if present.
func SelectWebpageByID(s *State, id int64) (models.Webpage, bool) {
	m := lookup(s.Webpages, id)
	return m.existing, m.found
}

// Selector memoises a projection on the identity of the state it was last
// computed for. Since states are immutable, the same *State always yields the
// same result without recomputing.
type Selector[T any] struct {
	mu      sync.Mutex
	project func(*State) T
	last    *State
	value   T
}

// NewSelector wraps project in a memoising Selector.
func NewSelector[T any](project func(*State) T) *Selector[T] {
	return &Selector[T]{project: project}
}

// Select returns project(s), reusing the cached value when s is the state
// seen on the previous call.
func (sel *Selector[T]) Select(s *State) T {
	sel.mu.Lock()
	defer sel.mu.Unlock()

	if sel.last != nil && sel.last == s {
		return sel.value
	}
	sel.last = s
	sel.value = sel.project(s)
	return sel.value
}
