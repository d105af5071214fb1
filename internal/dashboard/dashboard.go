// Package dashboard is the host of the webpages table. It binds the store to
// the table engine, turns user intents into actions, and reports outcomes
// through notifications.
package dashboard

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/atinyakov/go-webpages/internal/models"
	"github.com/atinyakov/go-webpages/internal/store"
	"github.com/atinyakov/go-webpages/internal/table"
	"github.com/atinyakov/go-webpages/internal/timer"
)

// Row actions.
const (
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

const activityLimit = 10

// Notifier shows user-facing notifications.
type Notifier interface {
	Success(title, message string) string
	Error(title, message string) string
	Warning(title, message string) string
	Info(title, message string) string
}

// Confirmer asks the user before a record is deleted.
type Confirmer interface {
	ConfirmDelete(ctx context.Context, item string) (bool, error)
}

// Columns is the column layout of the webpages table.
var Columns = []table.Column{
	{Key: "id", Label: "ID", Sortable: true, Type: table.TypeNumber, Width: "80px"},
	{Key: "url", Label: "URL", Sortable: true, Type: table.TypeURL, Width: "300px"},
	{Key: "title", Label: "Title", Sortable: true, Type: table.TypeText, Width: "200px"},
	{Key: "description", Label: "Description", Type: table.TypeText},
	{Key: "createdAt", Label: "Created", Sortable: true, Type: table.TypeDate, Width: "120px"},
	{Key: "actions", Label: "Actions", Type: table.TypeAction, Width: "120px"},
}

// Option configures a ListView.
type Option func(*ListView)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(v *ListView) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithClock sets the clock used for activity timestamps and passes it to the table.
func WithClock(c timer.Clock) Option {
	return func(v *ListView) {
		v.clock = c
		v.tableOpts = append(v.tableOpts, table.WithClock(c))
	}
}

// WithTableOptions passes extra options to the table engine.
func WithTableOptions(opts ...table.Option) Option {
	return func(v *ListView) {
		v.tableOpts = append(v.tableOpts, opts...)
	}
}

// ListView is the webpages list screen.
type ListView struct {
	store     *store.Store
	table     *table.Engine[models.Webpage]
	notifier  Notifier
	confirmer Confirmer
	clock     timer.Clock
	logger    *zap.Logger
	tableOpts []table.Option

	webpages *store.Selector[[]models.Webpage]

	mu        sync.Mutex
	rows      []models.Webpage
	activity  []models.ActivityEntry
	editing   models.Webpage
	isEditing bool

	unsubscribe func()
}

// New binds a ListView to s and pushes the current records into the table.
func New(s *store.Store, n Notifier, c Confirmer, opts ...Option) *ListView {
	v := &ListView{
		store:     s,
		notifier:  n,
		confirmer: c,
		clock:     timer.Real(),
		logger:    zap.NewNop(),
		webpages:  store.NewSelector(store.SelectWebpages),
	}
	for _, opt := range opts {
		opt(v)
	}

	v.table = table.New[models.Webpage](append([]table.Option{table.WithColumns(Columns...)}, v.tableOpts...)...)
	v.table.SetEvents(table.Events[models.Webpage]{
		Sort:       v.onSort,
		Filter:     v.onFilter,
		Pagination: v.onPagination,
		RowClick:   v.onRowClick,
		RowAction:  v.onRowAction,
	})

	v.sync(s.State())
	v.unsubscribe = s.Subscribe(v.onState)
	return v
}

// Table exposes the table engine for interaction.
func (v *ListView) Table() *table.Engine[models.Webpage] {
	return v.table
}

// Close detaches the view from the store and drops pending searches.
func (v *ListView) Close() {
	v.unsubscribe()
	v.table.Close()
}

// Save adds w when it has no id, otherwise merges it into the existing record.
func (v *ListView) Save(w models.Webpage) {
	v.mu.Lock()
	if v.isEditing && v.editing.ID == w.ID {
		v.isEditing = false
		v.editing = models.Webpage{}
	}
	v.mu.Unlock()

	v.store.Dispatch(store.EditWebpage{Webpage: w})
}

// Refresh reloads the records.
func (v *ListView) Refresh() {
	v.store.Dispatch(store.RefreshWebpages{})
}

// Delete asks for confirmation and, if given, removes the record with id.
// It reports whether the delete was dispatched.
func (v *ListView) Delete(ctx context.Context, id int64) (bool, error) {
	item := "this webpage"
	if w, ok := store.SelectWebpageByID(v.store.State(), id); ok {
		item = fmt.Sprintf("%q", w.Label())
	}

	ok, err := v.confirmer.ConfirmDelete(ctx, item)
	if err != nil {
		return false, fmt.Errorf("confirm delete %d: %w", id, err)
	}
	if !ok {
		v.logger.Debug("delete declined", zap.Int64("id", id))
		return false, nil
	}

	v.store.Dispatch(store.DeleteWebpage{ID: id})
	return true, nil
}

// Editing returns the record selected with the edit row action.
func (v *ListView) Editing() (models.Webpage, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editing, v.isEditing
}

// Activity returns the table activity log, newest first.
func (v *ListView) Activity() []models.ActivityEntry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.activity)
}

// View renders the table state for the wire.
func (v *ListView) View() models.TableView {
	tv := v.table.View()

	rows := tv.Rows
	if rows == nil {
		rows = []models.Webpage{}
	}
	return models.TableView{
		Rows:         rows,
		Search:       tv.SearchTerm,
		Sort:         models.SortSpec{Column: tv.Sort.Column, Direction: string(tv.Sort.Direction)},
		Page:         tv.Page,
		PageSize:     tv.PageSize,
		TotalPages:   tv.TotalPages,
		Total:        tv.Filtered,
		VisiblePages: tv.VisiblePages,
		Start:        tv.Start,
		End:          tv.End,
		Loading:      tv.Loading,
	}
}

// onState runs under the store lock and must not dispatch.
func (v *ListView) onState(s *store.State, a store.Action) {
	v.sync(s)

	switch act := a.(type) {
	case store.EditWebpageSuccess:
		v.notifier.Success("Webpage saved", act.Webpage.Label())
	case store.RefreshWebpagesSuccess:
		v.notifier.Success("Data refreshed successfully!", "")
	case store.DeleteWebpageSuccess:
		v.notifier.Success("Deleted!", "The webpage has been deleted.")
	case store.LoadWebpageSuccess, store.LoadWebpageFailure:
		// page loads are not shown in the list
	case store.Outcome:
		if act.Failed() {
			v.notifier.Error("Error Occurred", s.Error)
		}
	}
}

func (v *ListView) sync(s *store.State) {
	rows := v.webpages.Select(s)

	v.mu.Lock()
	changed := v.rows == nil || !slices.Equal(v.rows, rows)
	if changed {
		v.rows = rows
	}
	v.mu.Unlock()

	if changed {
		v.table.SetRows(rows)
	}
	v.table.SetLoading(store.SelectIsLoading(s))
}

func (v *ListView) onSort(ev table.SortEvent) {
	dir := string(ev.Direction)
	if ev.Direction == table.None {
		dir = "none"
	}
	v.log(fmt.Sprintf("Table sorted by %s (%s)", ev.Column, dir))
}

func (v *ListView) onFilter(ev table.FilterEvent) {
	v.log(fmt.Sprintf("Table filtered with term: %q", ev.Term))
}

func (v *ListView) onPagination(ev table.PaginationEvent) {
	v.log(fmt.Sprintf("Pagination changed to page %d, size %d", ev.Page, ev.PageSize))
}

func (v *ListView) onRowClick(w models.Webpage) {
	v.notifier.Info("Row clicked", "Selected: "+w.Title)
}

func (v *ListView) onRowAction(ev table.RowActionEvent[models.Webpage]) {
	switch ev.Action {
	case ActionEdit:
		v.mu.Lock()
		v.editing = ev.Row
		v.isEditing = true
		v.mu.Unlock()
	case ActionDelete:
		if _, err := v.Delete(context.Background(), ev.Row.ID); err != nil {
			v.logger.Error("row delete failed", zap.Int64("id", ev.Row.ID), zap.Error(err))
			v.notifier.Error("Error Occurred", err.Error())
		}
	default:
		v.logger.Warn("unknown row action", zap.String("action", ev.Action))
	}
}

func (v *ListView) log(msg string) {
	v.logger.Debug("table activity", zap.String("message", msg))

	v.mu.Lock()
	defer v.mu.Unlock()
	v.activity = slices.Insert(v.activity, 0, models.ActivityEntry{Timestamp: v.clock.Now(), Message: msg})
	if len(v.activity) > activityLimit {
		v.activity = v.activity[:activityLimit]
	}
}
