package store

import (
	"slices"

	"github.com/atinyakov/go-webpages/internal/models"
)

// Reducer computes the next state from the current state and an action.
type Reducer func(*State, Action) *State

// Reduce is the webpage list reducer.
//
// It never mutates s. Unrecognised actions, including pointers to known
// actions, return s itself. A nil s is treated as an empty list.
func Reduce(s *State, a Action) *State {
	if s == nil {
		s = NewState(nil)
	}

	switch a := a.(type) {
	case EditWebpage, RefreshWebpages, DeleteWebpage:
		return s.loading()

	case EditWebpageSuccess:
		return s.applyEdit(a.Webpage, a.Persisted)
	case RefreshWebpagesSuccess:
		return s.applyRefresh(a)
	case DeleteWebpageSuccess:
		return s.applyDelete(a.ID)

	case EditWebpageFailure:
		return s.failed(a.Error)
	case RefreshWebpagesFailure:
		return s.failed(a.Error)
	case DeleteWebpageFailure:
		return s.failed(a.Error)

	case LoadWebpage, LoadWebpageSuccess, LoadWebpageFailure, SetCurrentURL:
		return s.reduceLoader(a)
	}

	return s
}

func (s *State) clone() *State {
	next := *s
	return &next
}

func (s *State) loading() *State {
	next := s.clone()
	next.IsLoading = true
	next.Error = ""
	return next
}

func (s *State) failed(msg string) *State {
	next := s.clone()
	next.IsLoading = false
	next.Error = msg
	return next
}

// match is the outcome of looking a record up by id: either the record was
// found at index, or it was not.
type match struct {
	found    bool
	index    int
	existing models.Webpage
}

func lookup(webpages []models.Webpage, id int64) match {
	if id <= 0 {
		return match{}
	}
	for i, w := range webpages {
		if w.ID == id {
			return match{found: true, index: i, existing: w}
		}
	}
	return match{}
}

func (s *State) applyEdit(w models.Webpage, persisted bool) *State {
	m := lookup(s.Webpages, w.ID)
	if m.found {
		return s.updateAt(m, w)
	}
	if persisted && w.HasID() {
		return s.appendWithID(w)
	}
	return s.appendNew(w)
}

// updateAt merges patch into the found record, keeping its position.
func (s *State) updateAt(m match, patch models.Webpage) *State {
	webpages := slices.Clone(s.Webpages)
	webpages[m.index] = models.Merge(m.existing, patch)

	next := s.clone()
	next.IsLoading = false
	next.Webpages = webpages
	return next
}

// appendNew assigns the next id and appends the record.
func (s *State) appendNew(w models.Webpage) *State {
	w.ID = max(s.LastID, maxID(s.Webpages)) + 1
	return s.appendWithID(w)
}

// appendWithID appends w under its own id and raises LastID to cover it.
func (s *State) appendWithID(w models.Webpage) *State {
	webpages := make([]models.Webpage, 0, len(s.Webpages)+1)
	webpages = append(webpages, s.Webpages...)
	webpages = append(webpages, w)

	next := s.clone()
	next.IsLoading = false
	next.Webpages = webpages
	next.LastID = max(s.LastID, w.ID)
	return next
}

func (s *State) applyRefresh(a RefreshWebpagesSuccess) *State {
	next := s.clone()
	next.IsLoading = false
	if a.Replace {
		next.Webpages = slices.Clone(a.Webpages)
		if next.Webpages == nil {
			next.Webpages = []models.Webpage{}
		}
		next.LastID = max(s.LastID, maxID(next.Webpages))
	}
	return next
}

func (s *State) applyDelete(id int64) *State {
	next := s.clone()
	next.IsLoading = false

	m := lookup(s.Webpages, id)
	if !m.found {
		return next
	}

	webpages := make([]models.Webpage, 0, len(s.Webpages)-1)
	for _, w := range s.Webpages {
		if w.ID != id {
			webpages = append(webpages, w)
		}
	}
	next.Webpages = webpages
	return next
}

func maxID(webpages []models.Webpage) int64 {
	var id int64
	for _, w := range webpages {
		id = max(id, w.ID)
	}
	return id
}
