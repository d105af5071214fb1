package store_test

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/go-webpages/internal/models"
	"github.com/atinyakov/go-webpages/internal/store"
)

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

type unknownAction struct{}

func (unknownAction) Type() store.ActionType { return "[Test] Unknown" }

func seeded() *store.State {
	return store.SeededState(now)
}

func snapshot(s *store.State) store.State {
	c := *s
	c.Webpages = slices.Clone(s.Webpages)
	return c
}

func TestReduce_Purity(t *testing.T) {
	actions := []store.Action{
		store.EditWebpage{Webpage: models.Webpage{URL: "https://a.com"}},
		store.EditWebpageSuccess{Webpage: models.Webpage{URL: "https://a.com"}},
		store.EditWebpageSuccess{Webpage: models.Webpage{ID: 2, Title: "X"}},
		store.EditWebpageFailure{Error: "boom"},
		store.RefreshWebpages{},
		store.RefreshWebpagesSuccess{},
		store.RefreshWebpagesFailure{Error: "boom"},
		store.DeleteWebpage{ID: 3},
		store.DeleteWebpageSuccess{ID: 3},
		store.DeleteWebpageFailure{Error: "boom"},
		store.LoadWebpage{URL: "https://a.com"},
		store.LoadWebpageSuccess{URL: "https://a.com"},
		store.LoadWebpageFailure{Error: "boom"},
		store.SetCurrentURL{URL: "https://a.com"},
	}

	for _, a := range actions {
		t.Run(string(a.Type()), func(t *testing.T) {
			s := seeded()
			before := snapshot(s)

			first := store.Reduce(s, a)
			second := store.Reduce(s, a)

			require.Equal(t, first, second)
			require.Equal(t, before, snapshot(s), "input state was mutated")
			require.NotSame(t, s, first, "known actions must produce a new state")
		})
	}
}

func TestReduce_UnknownActionReturnsSameState(t *testing.T) {
	s := seeded()

	require.Same(t, s, store.Reduce(s, unknownAction{}))
	require.Same(t, s, store.Reduce(s, &store.DeleteWebpageSuccess{ID: 1}))
}

func TestReduce_NilStateStartsEmpty(t *testing.T) {
	next := store.Reduce(nil, store.EditWebpageSuccess{Webpage: models.Webpage{URL: "https://a.com"}})

	require.Len(t, next.Webpages, 1)
	assert.Equal(t, int64(1), next.Webpages[0].ID)
}

func TestReduce_IntentsSetLoadingAndClearError(t *testing.T) {
	intents := []store.Action{
		store.EditWebpage{Webpage: models.Webpage{URL: "https://a.com"}},
		store.RefreshWebpages{},
		store.DeleteWebpage{ID: 1},
	}

	for _, a := range intents {
		t.Run(string(a.Type()), func(t *testing.T) {
			s := seeded()
			s.Error = "previous failure"

			next := store.Reduce(s, a)

			assert.True(t, next.IsLoading)
			assert.Empty(t, next.Error)
			assert.Equal(t, s.Webpages, next.Webpages)
		})
	}
}

func TestReduce_FailuresStoreError(t *testing.T) {
	failures := []store.Action{
		store.EditWebpageFailure{Error: "Failed to add webpage"},
		store.RefreshWebpagesFailure{Error: "Failed to add webpage"},
		store.DeleteWebpageFailure{Error: "Failed to add webpage"},
	}

	for _, a := range failures {
		t.Run(string(a.Type()), func(t *testing.T) {
			s := store.Reduce(seeded(), store.RefreshWebpages{})

			next := store.Reduce(s, a)

			assert.False(t, next.IsLoading)
			assert.Equal(t, "Failed to add webpage", next.Error)
			assert.True(t, next.HasError())
			assert.Len(t, next.Webpages, 5)
		})
	}
}

func TestReduce_EditSuccessAssignsNextID(t *testing.T) {
	s := store.Reduce(seeded(), store.EditWebpage{})

	next := store.Reduce(s, store.EditWebpageSuccess{Webpage: models.Webpage{URL: "https://new.com", Title: "New"}})

	require.Len(t, next.Webpages, 6)
	added := next.Webpages[5]
	assert.Equal(t, int64(6), added.ID)
	assert.Equal(t, "https://new.com", added.URL)
	assert.Equal(t, "New", added.Title)
	assert.False(t, next.IsLoading)
}

func TestReduce_EditSuccessWithUnknownIDAppends(t *testing.T) {
	next := store.Reduce(seeded(), store.EditWebpageSuccess{Webpage: models.Webpage{ID: 42, URL: "https://x.com"}})

	require.Len(t, next.Webpages, 6)
	assert.Equal(t, int64(6), next.Webpages[5].ID)
}

func TestReduce_PersistedEditKeepsBackendID(t *testing.T) {
	next := store.Reduce(seeded(), store.EditWebpageSuccess{
		Webpage:   models.Webpage{ID: 100, URL: "https://b.com"},
		Persisted: true,
	})

	require.Len(t, next.Webpages, 6)
	assert.Equal(t, int64(100), next.Webpages[5].ID)
	assert.Equal(t, int64(100), next.LastID)

	next = store.Reduce(next, store.EditWebpageSuccess{Webpage: models.Webpage{URL: "https://c.com"}})
	assert.Equal(t, int64(101), next.Webpages[6].ID)
}

func TestReduce_PersistedEditOfKnownIDMerges(t *testing.T) {
	next := store.Reduce(seeded(), store.EditWebpageSuccess{
		Webpage:   models.Webpage{ID: 2, Title: "Hub"},
		Persisted: true,
	})

	require.Len(t, next.Webpages, 5)
	assert.Equal(t, "Hub", next.Webpages[1].Title)
	assert.Equal(t, "https://www.github.com", next.Webpages[1].URL)
}

func TestReduce_EditSuccessUpdatesInPlace(t *testing.T) {
	s := seeded()
	original := s.Webpages[1]

	next := store.Reduce(s, store.EditWebpageSuccess{Webpage: models.Webpage{ID: 2, Title: "X"}})

	require.Len(t, next.Webpages, 5)
	updated := next.Webpages[1]
	assert.Equal(t, int64(2), updated.ID)
	assert.Equal(t, "X", updated.Title)
	assert.Equal(t, original.URL, updated.URL)
	assert.Equal(t, original.Description, updated.Description)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)

	for i, w := range next.Webpages {
		if i != 1 {
			assert.Equal(t, s.Webpages[i], w)
		}
	}
	assert.Equal(t, "GitHub", s.Webpages[1].Title, "previous records must not change")
}

func TestReduce_IDsAreNotReusedAfterDelete(t *testing.T) {
	s := store.Reduce(seeded(), store.EditWebpageSuccess{Webpage: models.Webpage{URL: "https://six.com"}})
	s = store.Reduce(s, store.DeleteWebpageSuccess{ID: 6})
	s = store.Reduce(s, store.EditWebpageSuccess{Webpage: models.Webpage{URL: "https://seven.com"}})

	require.Len(t, s.Webpages, 6)
	assert.Equal(t, int64(7), s.Webpages[5].ID)
}

func TestReduce_DeleteSuccessRemovesRecord(t *testing.T) {
	s := store.Reduce(seeded(), store.DeleteWebpage{ID: 3})

	next := store.Reduce(s, store.DeleteWebpageSuccess{ID: 3})

	require.Len(t, next.Webpages, 4)
	_, found := store.SelectWebpageByID(next, 3)
	assert.False(t, found)
	assert.False(t, next.IsLoading)
	assert.Len(t, s.Webpages, 5)
}

func TestReduce_DeleteSuccessAbsentIDIsNoOp(t *testing.T) {
	s := store.Reduce(seeded(), store.DeleteWebpage{ID: 9999})
	require.True(t, s.IsLoading)

	next := store.Reduce(s, store.DeleteWebpageSuccess{ID: 9999})

	assert.Equal(t, s.Webpages, next.Webpages)
	assert.Len(t, next.Webpages, 5)
	assert.False(t, next.IsLoading)
}

func TestReduce_RefreshSuccess(t *testing.T) {
	t.Run("keeps records", func(t *testing.T) {
		s := store.Reduce(seeded(), store.RefreshWebpages{})

		next := store.Reduce(s, store.RefreshWebpagesSuccess{})

		assert.False(t, next.IsLoading)
		assert.Equal(t, s.Webpages, next.Webpages)
	})

	t.Run("replaces records from a backend", func(t *testing.T) {
		s := seeded()
		listed := []models.Webpage{{ID: 10, URL: "https://ten.com"}}

		next := store.Reduce(s, store.RefreshWebpagesSuccess{Webpages: listed, Replace: true})

		require.Equal(t, listed, next.Webpages)
		assert.Equal(t, int64(10), next.LastID)

		next = store.Reduce(next, store.EditWebpageSuccess{Webpage: models.Webpage{URL: "https://b.com"}})
		assert.Equal(t, int64(11), next.Webpages[1].ID)
	})
}
