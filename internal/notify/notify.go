// Package notify keeps a list of toast-style notifications. Notifications
// that are not persistent remove themselves after their duration.
package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/go-webpages/internal/timer"
)

// Kind is the notification severity.
type Kind string

// Notification kinds.
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Durations.
const (
	DefaultDuration = 5 * time.Second
	WarningDuration = 7 * time.Second
)

// Notification is a single message shown to the user.
type Notification struct {
	ID         string        `json:"id"`
	Kind       Kind          `json:"type"`
	Title      string        `json:"title"`
	Message    string        `json:"message,omitempty"`
	Duration   time.Duration `json:"duration"`
	Persistent bool          `json:"persistent,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

// Listener receives the full list after every change.
type Listener func([]Notification)

// Service holds the current notifications.
type Service struct {
	mu        sync.Mutex
	clock     timer.Clock
	logger    *zap.Logger
	items     []Notification
	timers    map[string]timer.Timer
	listeners map[int]Listener
	nextSub   int
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the clock driving auto-removal.
func WithClock(c timer.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns an empty Service.
func New(opts ...Option) *Service {
	s := &Service{
		clock:     timer.Real(),
		logger:    zap.NewNop(),
		timers:    make(map[string]timer.Timer),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Show adds n and returns its id. ID and Timestamp are always assigned; a zero
// Duration becomes DefaultDuration.
func (s *Service) Show(n Notification) string {
	n.ID = "notification_" + uuid.NewString()
	n.Timestamp = s.clock.Now()
	if n.Duration <= 0 {
		n.Duration = DefaultDuration
	}

	s.mu.Lock()
	s.items = append(s.items, n)
	if !n.Persistent {
		id := n.ID
		s.timers[id] = s.clock.AfterFunc(n.Duration, func() { s.Remove(id) })
	}
	snapshot, listeners := s.snapshot()
	s.mu.Unlock()

	s.logger.Debug("notification shown",
		zap.String("id", n.ID),
		zap.String("type", string(n.Kind)),
		zap.String("title", n.Title),
	)
	notifyAll(listeners, snapshot)
	return n.ID
}

// Success shows a success notification.
func (s *Service) Success(title, message string) string {
	return s.Show(Notification{Kind: KindSuccess, Title: title, Message: message})
}

// Error shows a persistent error notification.
func (s *Service) Error(title, message string) string {
	return s.Show(Notification{Kind: KindError, Title: title, Message: message, Persistent: true})
}

// Warning shows a warning that stays for WarningDuration.
func (s *Service) Warning(title, message string) string {
	return s.Show(Notification{Kind: KindWarning, Title: title, Message: message, Duration: WarningDuration})
}

// Info shows an informational notification.
func (s *Service) Info(title, message string) string {
	return s.Show(Notification{Kind: KindInfo, Title: title, Message: message})
}

// Remove drops the notification with the given id. Unknown ids are ignored.
func (s *Service) Remove(id string) {
	s.mu.Lock()
	i := slices.IndexFunc(s.items, func(n Notification) bool { return n.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items = slices.Delete(s.items, i, i+1)
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	snapshot, listeners := s.snapshot()
	s.mu.Unlock()

	notifyAll(listeners, snapshot)
}

// Clear drops every notification.
func (s *Service) Clear() {
	s.mu.Lock()
	s.items = nil
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	snapshot, listeners := s.snapshot()
	s.mu.Unlock()

	notifyAll(listeners, snapshot)
}

// List returns the current notifications, oldest first.
func (s *Service) List() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *Service) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// snapshot must be called with mu held.
func (s *Service) snapshot() ([]Notification, []Listener) {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	ls := make([]Listener, 0, len(ids))
	for _, id := range ids {
		ls = append(ls, s.listeners[id])
	}
	return slices.Clone(s.items), ls
}

func notifyAll(ls []Listener, items []Notification) {
	for _, l := range ls {
		l(items)
	}
}
