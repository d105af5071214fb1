package table

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/atinyakov/go-webpages/internal/timer"
)

// Defaults.
const (
	DefaultPageSize       = 10
	DefaultSearchDebounce = 300 * time.Millisecond
	maxVisiblePages       = 5
)

// Option configures an Engine.
type Option func(*settings)

type settings struct {
	columns    []Column
	pageSize   int
	searchable bool
	debounce   time.Duration
	clock      timer.Clock
}

// WithColumns sets the initial column specs.
func WithColumns(cols ...Column) Option {
	return func(s *settings) { s.columns = cols }
}

// WithPageSize sets the initial page size. Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithSearchable enables or disables the search box. Enabled by default.
func WithSearchable(v bool) Option {
	return func(s *settings) { s.searchable = v }
}

// WithDebounce sets the search quiet window.
func WithDebounce(d time.Duration) Option {
	return func(s *settings) { s.debounce = d }
}

// WithClock replaces the clock used for search debouncing.
func WithClock(c timer.Clock) Option {
	return func(s *settings) { s.clock = c }
}

// View is a snapshot of everything needed to render the table.
type View[T any] struct {
	Columns      []Column
	Rows         []T
	Filtered     int
	SearchTerm   string
	Sort         SortEvent
	Page         int
	PageSize     int
	TotalPages   int
	VisiblePages []int
	Start        int
	End          int
	Loading      bool
	Searchable   bool
}

// Engine filters, sorts and paginates rows of type T.
//
// The filtered list always holds the rows matching the applied search term,
// ordered by the active sort (or input order when the sort is None). The
// current page holds the slice of the filtered list for the current page.
type Engine[T any] struct {
	mu sync.Mutex

	columns    []Column
	rows       []T
	filtered   []T
	page       []T
	loading    bool
	searchable bool

	searchTerm  string
	appliedTerm string
	sort        SortEvent

	currentPage int
	pageSize    int
	totalPages  int

	events   Events[T]
	debounce *Debouncer
}

// New builds an engine with no rows.
func New[T any](opts ...Option) *Engine[T] {
	s := settings{
		pageSize:   DefaultPageSize,
		searchable: true,
		debounce:   DefaultSearchDebounce,
		clock:      timer.Real(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	e := &Engine[T]{
		columns:     slices.Clone(s.columns),
		searchable:  s.searchable,
		pageSize:    s.pageSize,
		currentPage: 1,
	}
	e.debounce = NewDebouncer(s.clock, s.debounce, e.applySearch)
	e.recompute()
	return e
}

// SetEvents replaces the event callbacks.
func (e *Engine[T]) SetEvents(ev Events[T]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = ev
}

// SetRows replaces the input rows and recomputes the filtered list and
// pagination. The current page is clamped to the new page count.
func (e *Engine[T]) SetRows(rows []T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rows = slices.Clone(rows)
	e.recompute()
}

// SetColumns replaces the column specs.
func (e *Engine[T]) SetColumns(cols []Column) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.columns = slices.Clone(cols)
	if e.sort.Direction != None && e.column(e.sort.Column) == nil {
		e.sort = SortEvent{}
	}
	e.recompute()
}

// SetLoading toggles the loading indicator.
func (e *Engine[T]) SetLoading(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = v
}

// SetSearchable toggles the search box.
func (e *Engine[T]) SetSearchable(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.searchable = v
}

// Search records the raw search input. Filtering runs after the debounce
// window elapses without further input; only the last term is applied.
// Search is ignored when the table is not searchable.
func (e *Engine[T]) Search(term string) {
	e.mu.Lock()
	if !e.searchable {
		e.mu.Unlock()
		return
	}
	e.searchTerm = term
	e.mu.Unlock()

	e.debounce.Trigger(term)
}

// FlushSearch applies a pending search term immediately.
func (e *Engine[T]) FlushSearch() bool {
	return e.debounce.Flush()
}

// Close drops any pending search.
func (e *Engine[T]) Close() {
	e.debounce.Cancel()
}

func (e *Engine[T]) applySearch(term string) {
	e.mu.Lock()
	e.appliedTerm = term
	e.currentPage = 1
	e.recompute()
	cb := e.events.Filter
	e.mu.Unlock()

	if cb != nil {
		cb(FilterEvent{Term: term})
	}
}

// Sort advances the sort cycle for the column with the given key. Clicking
// the active column goes asc → desc → none; clicking any other column starts
// at asc. Non-sortable and unknown columns are ignored.
func (e *Engine[T]) Sort(key string) {
	e.mu.Lock()
	col := e.column(key)
	if col == nil || !col.Sortable {
		e.mu.Unlock()
		return
	}

	dir := Asc
	if e.sort.Column == key {
		dir = e.sort.Direction.next()
	}
	e.setSortLocked(key, dir)
}

// SetSort puts the column with the given key straight into direction dir,
// emitting at most one sort event. It reports false for non-sortable and
// unknown columns. Setting the direction the column already has is a no-op.
func (e *Engine[T]) SetSort(key string, dir Direction) bool {
	e.mu.Lock()
	col := e.column(key)
	if col == nil || !col.Sortable {
		e.mu.Unlock()
		return false
	}
	current := None
	if e.sort.Column == key {
		current = e.sort.Direction
	}
	if current == dir {
		e.mu.Unlock()
		return true
	}
	e.setSortLocked(key, dir)
	return true
}

// setSortLocked is called with e.mu held and releases it.
func (e *Engine[T]) setSortLocked(key string, dir Direction) {
	e.sort = SortEvent{Column: key, Direction: dir}
	if dir == None {
		e.sort = SortEvent{}
	}
	e.currentPage = 1
	e.recompute()
	cb := e.events.Sort
	e.mu.Unlock()

	if cb != nil {
		cb(SortEvent{Column: key, Direction: dir})
	}
}

// GoToPage moves to page p. Out-of-range pages are ignored; the return value
// reports whether the page changed.
func (e *Engine[T]) GoToPage(p int) bool {
	e.mu.Lock()
	if p < 1 || p > e.totalPages {
		e.mu.Unlock()
		return false
	}
	e.currentPage = p
	e.paginate()
	cb := e.events.Pagination
	ev := PaginationEvent{Page: p, PageSize: e.pageSize}
	e.mu.Unlock()

	if cb != nil {
		cb(ev)
	}
	return true
}

// NextPage advances one page if possible.
func (e *Engine[T]) NextPage() bool {
	return e.GoToPage(e.CurrentPage() + 1)
}

// PrevPage goes back one page if possible.
func (e *Engine[T]) PrevPage() bool {
	return e.GoToPage(e.CurrentPage() - 1)
}

// ChangePageSize sets the page size and returns to the first page.
func (e *Engine[T]) ChangePageSize(n int) {
	if n < 1 {
		return
	}
	e.mu.Lock()
	e.pageSize = n
	e.currentPage = 1
	e.recompute()
	cb := e.events.Pagination
	e.mu.Unlock()

	if cb != nil {
		cb(PaginationEvent{Page: 1, PageSize: n})
	}
}

// RowClick reports a click on row.
func (e *Engine[T]) RowClick(row T) {
	e.mu.Lock()
	cb := e.events.RowClick
	e.mu.Unlock()

	if cb != nil {
		cb(row)
	}
}

// RowAction reports a host-defined action on row.
func (e *Engine[T]) RowAction(action string, row T) {
	e.mu.Lock()
	cb := e.events.RowAction
	e.mu.Unlock()

	if cb != nil {
		cb(RowActionEvent[T]{Action: action, Row: row})
	}
}

// CurrentPage returns the 1-based current page.
func (e *Engine[T]) CurrentPage() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentPage
}

// TotalPages returns the number of pages of the filtered list.
func (e *Engine[T]) TotalPages() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalPages
}

// Rows returns the rows of the current page.
func (e *Engine[T]) Rows() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.page)
}

// Filtered returns the whole filtered and sorted list.
func (e *Engine[T]) Filtered() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.filtered)
}

// SearchTerm returns the raw search input, applied or not.
func (e *Engine[T]) SearchTerm() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.searchTerm
}

// SortState returns the direction shown for the column key. Only the active
// column has a direction other than None.
func (e *Engine[T]) SortState(key string) Direction {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sort.Column != key {
		return None
	}
	return e.sort.Direction
}

// AriaSort maps SortState to an aria-sort attribute value.
func (e *Engine[T]) AriaSort(key string) string {
	switch e.SortState(key) {
	case Asc:
		return "ascending"
	case Desc:
		return "descending"
	default:
		return "none"
	}
}

// VisiblePages returns up to five page numbers starting two before the
// current page.
func (e *Engine[T]) VisiblePages() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return visiblePages(e.currentPage, e.totalPages)
}

// StartRecord is the 1-based index of the first row on the current page.
func (e *Engine[T]) StartRecord() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return (e.currentPage-1)*e.pageSize + 1
}

// EndRecord is the 1-based index of the last row on the current page.
func (e *Engine[T]) EndRecord() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return min(e.currentPage*e.pageSize, len(e.filtered))
}

// View returns a consistent snapshot of the table.
func (e *Engine[T]) View() View[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return View[T]{
		Columns:      slices.Clone(e.columns),
		Rows:         slices.Clone(e.page),
		Filtered:     len(e.filtered),
		SearchTerm:   e.searchTerm,
		Sort:         e.sort,
		Page:         e.currentPage,
		PageSize:     e.pageSize,
		TotalPages:   e.totalPages,
		VisiblePages: visiblePages(e.currentPage, e.totalPages),
		Start:        (e.currentPage-1)*e.pageSize + 1,
		End:          min(e.currentPage*e.pageSize, len(e.filtered)),
		Loading:      e.loading,
		Searchable:   e.searchable,
	}
}

func (e *Engine[T]) column(key string) *Column {
	for i := range e.columns {
		if e.columns[i].Key == key {
			return &e.columns[i]
		}
	}
	return nil
}

// recompute rebuilds the filtered list from the input rows. Caller holds mu.
func (e *Engine[T]) recompute() {
	e.filtered = e.filter(e.rows)
	if e.sort.Direction != None {
		e.sortRows(e.filtered)
	}

	e.totalPages = (len(e.filtered) + e.pageSize - 1) / e.pageSize
	if e.currentPage > max(e.totalPages, 1) {
		e.currentPage = max(e.totalPages, 1)
	}
	if e.currentPage < 1 {
		e.currentPage = 1
	}
	e.paginate()
}

func (e *Engine[T]) filter(rows []T) []T {
	if strings.TrimSpace(e.appliedTerm) == "" {
		return slices.Clone(rows)
	}

	term := strings.ToLower(e.appliedTerm)
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		for _, col := range e.columns {
			if contains(Resolve(row, col.Key), term) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

func (e *Engine[T]) sortRows(rows []T) {
	key := e.sort.Column
	desc := e.sort.Direction == Desc
	slices.SortStableFunc(rows, func(a, b T) int {
		c := compare(Resolve(a, key), Resolve(b, key))
		if desc {
			return -c
		}
		return c
	})
}

func (e *Engine[T]) paginate() {
	start := (e.currentPage - 1) * e.pageSize
	end := min(start+e.pageSize, len(e.filtered))
	if start >= end {
		e.page = nil
		return
	}
	e.page = e.filtered[start:end]
}

func visiblePages(current, total int) []int {
	start := max(1, current-maxVisiblePages/2)
	end := min(total, start+maxVisiblePages-1)

	pages := make([]int, 0, maxVisiblePages)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}
