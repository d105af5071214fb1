package table_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/go-webpages/internal/models"
	"github.com/atinyakov/go-webpages/internal/table"
	"github.com/atinyakov/go-webpages/internal/testutil"
)

type person struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

var people = []person{
	{Name: "John Doe", Email: "a@x.com", Age: 40},
	{Name: "Jane", Email: "b@x.com", Age: 25},
	{Name: "Bob", Email: "c@x.com", Age: 33},
	{Name: "Alice", Email: "d@x.com", Age: 25},
}

var personColumns = []table.Column{
	{Key: "name", Label: "Name", Sortable: true},
	{Key: "email", Label: "Email"},
	{Key: "age", Label: "Age", Sortable: true, Type: table.TypeNumber},
}

func newEngine(t *testing.T, opts ...table.Option) (*table.Engine[person], *testutil.FakeClock) {
	t.Helper()
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	opts = append([]table.Option{table.WithClock(clock), table.WithColumns(personColumns...)}, opts...)
	e := table.New[person](opts...)
	t.Cleanup(e.Close)
	return e, clock
}

func names(rows []person) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestEngine_FilterAnyColumnCaseInsensitive(t *testing.T) {
	e, clock := newEngine(t)
	e.SetColumns([]table.Column{{Key: "name"}, {Key: "email"}})
	e.SetRows([]person{
		{Name: "John Doe", Email: "a@x.com"},
		{Name: "Jane", Email: "b@x.com"},
	})

	for _, term := range []string{"john", "JOHN", "jOhN"} {
		e.Search(term)
		clock.Advance(table.DefaultSearchDebounce)
		assert.Equal(t, []string{"John Doe"}, names(e.Filtered()), term)
	}

	e.Search("b@x")
	clock.Advance(table.DefaultSearchDebounce)
	assert.Equal(t, []string{"Jane"}, names(e.Filtered()))

	e.Search("   ")
	clock.Advance(table.DefaultSearchDebounce)
	assert.Len(t, e.Filtered(), 2)
}

func TestEngine_SearchIsDebounced(t *testing.T) {
	e, clock := newEngine(t)
	e.SetRows(people)

	var filters []table.FilterEvent
	e.SetEvents(table.Events[person]{Filter: func(ev table.FilterEvent) { filters = append(filters, ev) }})

	e.Search("j")
	e.Search("ja")
	e.Search("jan")
	assert.Equal(t, "jan", e.SearchTerm())
	assert.Len(t, e.Filtered(), 4)

	clock.Advance(299 * time.Millisecond)
	assert.Empty(t, filters)

	clock.Advance(time.Millisecond)
	require.Equal(t, []table.FilterEvent{{Term: "jan"}}, filters)
	assert.Equal(t, []string{"Jane"}, names(e.Filtered()))
}

func TestEngine_FlushSearch(t *testing.T) {
	e, clock := newEngine(t)
	e.SetRows(people)

	e.Search("bob")
	require.True(t, e.FlushSearch())
	assert.Equal(t, []string{"Bob"}, names(e.Rows()))
	assert.Equal(t, 0, clock.Pending())
}

func TestEngine_SearchIgnoredWhenNotSearchable(t *testing.T) {
	e, clock := newEngine(t, table.WithSearchable(false))
	e.SetRows(people)

	e.Search("bob")
	clock.Advance(time.Second)
	assert.Empty(t, e.SearchTerm())
	assert.Len(t, e.Filtered(), 4)
}

func TestEngine_SortCycle(t *testing.T) {
	e, _ := newEngine(t)
	e.SetRows(people)
	before := names(e.Filtered())

	var sorts []table.SortEvent
	e.SetEvents(table.Events[person]{Sort: func(ev table.SortEvent) { sorts = append(sorts, ev) }})

	e.Sort("name")
	assert.Equal(t, []string{"Alice", "Bob", "Jane", "John Doe"}, names(e.Filtered()))
	assert.Equal(t, table.Asc, e.SortState("name"))
	assert.Equal(t, "ascending", e.AriaSort("name"))

	e.Sort("name")
	assert.Equal(t, []string{"John Doe", "Jane", "Bob", "Alice"}, names(e.Filtered()))
	assert.Equal(t, "descending", e.AriaSort("name"))

	e.Sort("name")
	assert.Equal(t, before, names(e.Filtered()))
	assert.Equal(t, table.None, e.SortState("name"))
	assert.Equal(t, "none", e.AriaSort("name"))

	assert.Equal(t, []table.SortEvent{
		{Column: "name", Direction: table.Asc},
		{Column: "name", Direction: table.Desc},
		{Column: "name", Direction: table.None},
	}, sorts)
}

func TestEngine_SortSwitchColumnStartsAscending(t *testing.T) {
	e, _ := newEngine(t)
	e.SetRows(people)

	e.Sort("name")
	e.Sort("name")
	e.Sort("age")

	assert.Equal(t, table.Asc, e.SortState("age"))
	assert.Equal(t, table.None, e.SortState("name"))
	// Stable: Jane precedes Alice in the input and both are 25.
	assert.Equal(t, []string{"Jane", "Alice", "Bob", "John Doe"}, names(e.Filtered()))
}

func TestEngine_SortIgnoresNonSortable(t *testing.T) {
	e, _ := newEngine(t)
	e.SetRows(people)

	called := false
	e.SetEvents(table.Events[person]{Sort: func(table.SortEvent) { called = true }})

	e.Sort("email")
	e.Sort("missing")
	assert.False(t, called)
	assert.Equal(t, table.None, e.SortState("email"))
}

func TestEngine_SetSortEmitsOneEvent(t *testing.T) {
	e, _ := newEngine(t)
	e.SetRows(people)

	var sorts []table.SortEvent
	e.SetEvents(table.Events[person]{Sort: func(ev table.SortEvent) { sorts = append(sorts, ev) }})

	require.True(t, e.SetSort("name", table.Desc))
	assert.Equal(t, []string{"John Doe", "Jane", "Bob", "Alice"}, names(e.Filtered()))
	assert.Equal(t, []table.SortEvent{{Column: "name", Direction: table.Desc}}, sorts)

	require.True(t, e.SetSort("name", table.Desc))
	assert.Len(t, sorts, 1, "unchanged direction emits nothing")

	require.True(t, e.SetSort("age", table.Asc))
	assert.Equal(t, table.None, e.SortState("name"))
	assert.Equal(t, table.Asc, e.SortState("age"))

	assert.False(t, e.SetSort("email", table.Asc))
	assert.False(t, e.SetSort("missing", table.Desc))
	assert.Len(t, sorts, 2)
}

func TestEngine_SortReappliedOnNewRows(t *testing.T) {
	e, _ := newEngine(t)
	e.SetRows(people[:2])
	e.Sort("name")

	e.SetRows(people)
	assert.Equal(t, []string{"Alice", "Bob", "Jane", "John Doe"}, names(e.Filtered()))
}

func TestEngine_Pagination(t *testing.T) {
	e, _ := newEngine(t, table.WithPageSize(2))
	e.SetRows(people)

	var pages []table.PaginationEvent
	e.SetEvents(table.Events[person]{Pagination: func(ev table.PaginationEvent) { pages = append(pages, ev) }})

	require.Equal(t, 2, e.TotalPages())
	assert.Equal(t, []string{"John Doe", "Jane"}, names(e.Rows()))

	assert.False(t, e.GoToPage(0))
	assert.False(t, e.GoToPage(3))
	assert.Equal(t, 1, e.CurrentPage())
	assert.Empty(t, pages)

	require.True(t, e.GoToPage(2))
	assert.Equal(t, []string{"Bob", "Alice"}, names(e.Rows()))
	assert.Equal(t, 3, e.StartRecord())
	assert.Equal(t, 4, e.EndRecord())
	assert.Equal(t, []table.PaginationEvent{{Page: 2, PageSize: 2}}, pages)

	assert.False(t, e.NextPage())
	assert.True(t, e.PrevPage())
	assert.Equal(t, 1, e.CurrentPage())
}

func TestEngine_ChangePageSizeResetsPage(t *testing.T) {
	e, _ := newEngine(t, table.WithPageSize(1))
	e.SetRows(people)
	require.True(t, e.GoToPage(3))

	var pages []table.PaginationEvent
	e.SetEvents(table.Events[person]{Pagination: func(ev table.PaginationEvent) { pages = append(pages, ev) }})

	e.ChangePageSize(3)
	assert.Equal(t, 1, e.CurrentPage())
	assert.Equal(t, 2, e.TotalPages())
	assert.Len(t, e.Rows(), 3)
	assert.Equal(t, []table.PaginationEvent{{Page: 1, PageSize: 3}}, pages)

	e.ChangePageSize(0)
	assert.Len(t, pages, 1)
}

func TestEngine_FilterAndSortResetPage(t *testing.T) {
	e, clock := newEngine(t, table.WithPageSize(1))
	e.SetRows(people)

	require.True(t, e.GoToPage(4))
	e.Sort("name")
	assert.Equal(t, 1, e.CurrentPage())

	require.True(t, e.GoToPage(2))
	e.Search("x.com")
	clock.Advance(table.DefaultSearchDebounce)
	assert.Equal(t, 1, e.CurrentPage())
}

func TestEngine_ShrinkingRowsClampsPage(t *testing.T) {
	e, _ := newEngine(t, table.WithPageSize(2))
	e.SetRows(people)
	require.True(t, e.GoToPage(2))

	e.SetRows(people[:1])
	assert.Equal(t, 1, e.CurrentPage())
	assert.Equal(t, 1, e.TotalPages())

	e.SetRows(nil)
	v := e.View()
	assert.Equal(t, 0, v.TotalPages)
	assert.Equal(t, 1, v.Page)
	assert.Empty(t, v.Rows)
	assert.Empty(t, v.VisiblePages)
}

func TestEngine_VisiblePages(t *testing.T) {
	rows := make([]person, 20)
	e, _ := newEngine(t, table.WithPageSize(1))
	e.SetRows(rows)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, e.VisiblePages())

	require.True(t, e.GoToPage(10))
	assert.Equal(t, []int{8, 9, 10, 11, 12}, e.VisiblePages())

	require.True(t, e.GoToPage(20))
	pages := e.VisiblePages()
	assert.LessOrEqual(t, len(pages), 5)
	assert.Contains(t, pages, 20)
}

func TestEngine_RowEvents(t *testing.T) {
	e, _ := newEngine(t)

	var clicked []person
	var actions []table.RowActionEvent[person]
	e.SetEvents(table.Events[person]{
		RowClick:  func(p person) { clicked = append(clicked, p) },
		RowAction: func(ev table.RowActionEvent[person]) { actions = append(actions, ev) },
	})

	e.RowClick(people[0])
	e.RowAction("delete", people[1])

	assert.Equal(t, []person{people[0]}, clicked)
	assert.Equal(t, []table.RowActionEvent[person]{{Action: "delete", Row: people[1]}}, actions)
}

func TestEngine_EventsMayReenter(t *testing.T) {
	e, _ := newEngine(t, table.WithPageSize(1))
	e.SetRows(people)

	e.SetEvents(table.Events[person]{Sort: func(table.SortEvent) { e.GoToPage(2) }})
	e.Sort("age")
	assert.Equal(t, 2, e.CurrentPage())
}

func TestEngine_WebpageRows(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	clock := testutil.NewFakeClock(now)
	e := table.New[models.Webpage](
		table.WithClock(clock),
		table.WithColumns(
			table.Column{Key: "title", Sortable: true},
			table.Column{Key: "url"},
			table.Column{Key: "createdAt", Sortable: true, Type: table.TypeDate},
		),
	)
	e.SetRows(models.SeedWebpages(now))

	e.Sort("createdAt")
	rows := e.Filtered()
	require.Len(t, rows, 5)
	assert.Equal(t, "TypeScript", rows[0].Title)
	assert.Equal(t, "Google", rows[4].Title)

	e.Search("github")
	clock.Advance(table.DefaultSearchDebounce)
	require.Len(t, e.Rows(), 1)
	assert.Equal(t, int64(2), e.Rows()[0].ID)
}
