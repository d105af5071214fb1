// Package store is the client-side state container for the webpage list:
// a closed action vocabulary, a pure reducer, read selectors and a Store that
// serialises dispatches and hands intents to effects.
package store

import (
	"time"

	"github.com/atinyakov/go-webpages/internal/models"
)

// State is an immutable snapshot of the webpage list.
//
// A State is never modified after it has been returned by Reduce; every
// transition produces a new *State and a new Webpages slice whenever the
// records change.
type State struct {
	// Webpages is in insertion order.
	Webpages []models.Webpage
	// IsLoading is true while an intent is outstanding. Concurrent intents are
	// not counted: the last action applied wins.
	IsLoading bool
	// Error holds the message of the last failure; empty means none.
	Error string
	// LastID is the highest id ever allocated or seen. Ids are never reused,
	// even after the record holding the highest id is deleted.
	LastID int64
	// Loader is the page loader slice, reduced by ReduceLoader.
	Loader LoaderState
}

// NewState returns the initial state holding webpages.
func NewState(webpages []models.Webpage) *State {
	return &State{Webpages: webpages, LastID: maxID(webpages)}
}

// SeededState returns the initial state with the mock records.
func SeededState(now time.Time) *State {
	return NewState(models.SeedWebpages(now))
}

// HasError reports whether a failure message is set.
func (s *State) HasError() bool {
	return s.Error != ""
}
