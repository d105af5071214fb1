// Package effects turns intent actions into outcome actions.
//
// Without a backend the work is simulated: edits complete synchronously,
// refreshes and deletes complete after a fixed delay. Scheduled work is never
// cancelled and always dispatches exactly one outcome.
package effects

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/go-webpages/internal/models"
	"github.com/atinyakov/go-webpages/internal/store"
	"github.com/atinyakov/go-webpages/internal/timer"
)

// Default delays of the simulated backend.
const (
	DefaultRefreshDelay = 1500 * time.Millisecond
	DefaultDeleteDelay  = 300 * time.Millisecond
)

// Failure messages dispatched in failure actions when no better text exists.
const (
	MsgEditFailed    = "Failed to add webpage"
	MsgRefreshFailed = "Failed to refresh webpages"
	MsgDeleteFailed  = "Failed to delete webpage"
	MsgLoadFailed    = "Failed to load webpage"
)

// ErrMalformed is returned by Validate for a record that cannot be stored.
var ErrMalformed = errors.New("malformed webpage")

// Backend is a remote webpage service. Implementations must be safe for
// concurrent use.
type Backend interface {
	List(ctx context.Context) ([]models.Webpage, error)
	Get(ctx context.Context, id int64) (models.Webpage, error)
	Create(ctx context.Context, w models.Webpage) (models.Webpage, error)
	Update(ctx context.Context, id int64, w models.Webpage) (models.Webpage, error)
	Delete(ctx context.Context, id int64) error
}

// Effects handles EditWebpage, RefreshWebpages, DeleteWebpage and LoadWebpage.
type Effects struct {
	clock        timer.Clock
	logger       *zap.Logger
	backend      Backend
	refreshDelay time.Duration
	deleteDelay  time.Duration
	timeout      time.Duration

	inflight sync.WaitGroup
}

// Option configures Effects.
type Option func(*Effects)

// WithClock sets the clock used for delays and timestamps.
func WithClock(c timer.Clock) Option {
	return func(e *Effects) { e.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Effects) { e.logger = l }
}

// WithBackend performs real calls against b instead of simulating them.
func WithBackend(b Backend) Option {
	return func(e *Effects) { e.backend = b }
}

// WithDelays overrides the simulated refresh and delete delays.
func WithDelays(refresh, del time.Duration) Option {
	return func(e *Effects) {
		e.refreshDelay = refresh
		e.deleteDelay = del
	}
}

// WithTimeout bounds each backend call.
func WithTimeout(d time.Duration) Option {
	return func(e *Effects) { e.timeout = d }
}

// New creates the effect pipeline.
func New(opts ...Option) *Effects {
	e := &Effects{
		clock:        timer.Real(),
		logger:       zap.NewNop(),
		refreshDelay: DefaultRefreshDelay,
		deleteDelay:  DefaultDeleteDelay,
		timeout:      3 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle implements store.Effect.
func (e *Effects) Handle(a store.Action, d store.Dispatcher) {
	switch a := a.(type) {
	case store.EditWebpage:
		e.edit(a, d)
	case store.RefreshWebpages:
		e.refresh(d)
	case store.DeleteWebpage:
		e.delete(a, d)
	case store.LoadWebpage:
		e.load(a, d)
	}
}

// Wait blocks until every scheduled effect has dispatched its outcome.
func (e *Effects) Wait() {
	e.inflight.Wait()
}

func (e *Effects) edit(a store.EditWebpage, d store.Dispatcher) {
	w := a.Webpage
	if err := Validate(w); err != nil {
		e.logger.Info("edit rejected", zap.Error(err))
		d.Dispatch(store.EditWebpageFailure{Error: MsgEditFailed})
		return
	}
	if w.CreatedAt.IsZero() && creates(w, d) {
		w.CreatedAt = e.clock.Now()
	}

	if e.backend == nil {
		d.Dispatch(store.EditWebpageSuccess{Webpage: w})
		return
	}

	e.goBackend(func(ctx context.Context) store.Action {
		var (
			saved models.Webpage
			err   error
		)
		if w.HasID() {
			saved, err = e.backend.Update(ctx, w.ID, w)
		} else {
			saved, err = e.backend.Create(ctx, w)
		}
		if err != nil {
			return store.EditWebpageFailure{Error: failureText(err, MsgEditFailed)}
		}
		return store.EditWebpageSuccess{Webpage: saved, Persisted: true}
	}, d)
}

// creates reports whether applying w adds a record: it has no id, or its id
// is not in the state d exposes.
func creates(w models.Webpage, d store.Dispatcher) bool {
	if !w.HasID() {
		return true
	}
	r, ok := d.(store.StateReader)
	if !ok {
		return false
	}
	_, found := store.SelectWebpageByID(r.State(), w.ID)
	return !found
}

func (e *Effects) refresh(d store.Dispatcher) {
	if e.backend == nil {
		e.after(e.refreshDelay, store.TypeRefreshWebpages, func() store.Action {
			return store.RefreshWebpagesSuccess{}
		}, d)
		return
	}

	e.goBackend(func(ctx context.Context) store.Action {
		webpages, err := e.backend.List(ctx)
		if err != nil {
			return store.RefreshWebpagesFailure{Error: failureText(err, MsgRefreshFailed)}
		}
		return store.RefreshWebpagesSuccess{Webpages: webpages, Replace: true}
	}, d)
}

func (e *Effects) delete(a store.DeleteWebpage, d store.Dispatcher) {
	if e.backend == nil {
		e.after(e.deleteDelay, store.TypeDeleteWebpage, func() store.Action {
			return store.DeleteWebpageSuccess{ID: a.ID}
		}, d)
		return
	}

	e.goBackend(func(ctx context.Context) store.Action {
		if err := e.backend.Delete(ctx, a.ID); err != nil {
			return store.DeleteWebpageFailure{Error: failureText(err, MsgDeleteFailed)}
		}
		return store.DeleteWebpageSuccess{ID: a.ID}
	}, d)
}

// load completes synchronously: opening a page needs no backend call.
func (e *Effects) load(a store.LoadWebpage, d store.Dispatcher) {
	if strings.TrimSpace(a.URL) == "" {
		e.logger.Info("load rejected: empty url")
		d.Dispatch(store.LoadWebpageFailure{Error: MsgLoadFailed})
		return
	}
	d.Dispatch(store.LoadWebpageSuccess{URL: a.URL})
}

// after dispatches outcome() once delay has elapsed on the clock.
func (e *Effects) after(delay time.Duration, intent store.ActionType, outcome func() store.Action, d store.Dispatcher) {
	e.inflight.Add(1)
	e.logger.Debug("effect scheduled", zap.String("intent", string(intent)), zap.Duration("delay", delay))

	e.clock.AfterFunc(delay, func() {
		defer e.inflight.Done()
		d.Dispatch(outcome())
	})
}

// goBackend runs call on its own goroutine and dispatches its outcome.
func (e *Effects) goBackend(call func(ctx context.Context) store.Action, d store.Dispatcher) {
	e.inflight.Add(1)

	go func() {
		defer e.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()

		outcome := call(ctx)
		if o, ok := outcome.(store.Outcome); ok && o.Failed() {
			e.logger.Warn("backend call failed", zap.String("outcome", string(outcome.Type())))
		}
		d.Dispatch(outcome)
	}()
}

// Validate reports whether w can be stored: it needs an absolute http(s) URL.
func Validate(w models.Webpage) error {
	raw := strings.TrimSpace(w.URL)
	if raw == "" {
		return errors.Join(ErrMalformed, errors.New("url is required"))
	}

	u, err := url.Parse(raw)
	if err != nil {
		return errors.Join(ErrMalformed, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Join(ErrMalformed, errors.New("url must start with http:// or https://"))
	}
	if u.Host == "" {
		return errors.Join(ErrMalformed, errors.New("url has no host"))
	}
	return nil
}

func failureText(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
