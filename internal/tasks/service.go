package tasks

import (
	"context"
	"fmt"
	"log"
	"strings"
	gosync "sync"

	"github.com/nhle/todo/internal/events"
	"github.com/nhle/todo/internal/model"
)

// Kind tells subscribers what caused a change.
type Kind int

const (
	KindAdded Kind = iota + 1
	KindCompleted
	KindRemoved
	KindRefreshed
)

// String returns a short label for log lines.
func (k Kind) String() string {
	switch k {
	case KindAdded:
		return "added"
	case KindCompleted:
		return "completed"
	case KindRemoved:
		return "removed"
	case KindRefreshed:
		return "refreshed"
	default:
		return "unknown"
	}
}

// Change is published after a mutation has been persisted. Revision is the
// refresh counter: it grows by one for every change.
type Change struct {
	Revision int
	Kind     Kind
	ID       int64
}

// Gateway is the storage surface the service needs.
type Gateway interface {
	ListByStatus(ctx context.Context, done bool) ([]model.Task, error)
	ListAll(ctx context.Context) ([]model.Task, error)
	InsertTask(ctx context.Context, value string) error
	MarkDone(ctx context.Context, id int64) error
	DeleteTask(ctx context.Context, id int64) error
	Supported() bool
}

// Option configures a Service.
type Option func(*Service)

// WithDebug makes the service log every mutation and, after each insert,
// the full table contents.
func WithDebug(debug bool) Option {
	return func(s *Service) {
		s.debug = debug
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// Service runs task mutations against the gateway and tells subscribers
// once each one has completed, so they can re-query.
type Service struct {
	gw       Gateway
	hub      *events.Hub[Change]
	logger   *log.Logger
	debug    bool
	mu       gosync.Mutex
	revision int
}

// New creates a service on top of gw.
func New(gw Gateway, opts ...Option) *Service {
	s := &Service{
		gw:     gw,
		hub:    events.NewHub[Change](0),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Supported reports whether a real database backs the service.
func (s *Service) Supported() bool {
	return s.gw.Supported()
}

// Revision returns the current refresh counter.
func (s *Service) Revision() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Subscribe registers for change notifications. Close the subscription
// when done.
func (s *Service) Subscribe() *events.Subscription[Change] {
	return s.hub.Subscribe()
}

// Close ends all subscriptions.
func (s *Service) Close() {
	s.hub.Close()
}

// List returns the snapshot of one partition.
func (s *Service) List(ctx context.Context, done bool) ([]model.Task, error) {
	return s.gw.ListByStatus(ctx, done)
}

// ListAll returns every task regardless of status.
func (s *Service) ListAll(ctx context.Context) ([]model.Task, error) {
	return s.gw.ListAll(ctx)
}

// Add stores a new pending task. An empty value is declined silently and
// publishes no change.
func (s *Service) Add(ctx context.Context, value string) error {
	if value == "" {
		return nil
	}
	if err := s.gw.InsertTask(ctx, value); err != nil {
		return err
	}
	if s.debug {
		s.dumpAll(ctx)
	}
	s.publish(KindAdded, 0)
	return nil
}

// Complete marks the task done. Unknown ids still publish a change.
func (s *Service) Complete(ctx context.Context, id int64) error {
	if err := s.gw.MarkDone(ctx, id); err != nil {
		return err
	}
	s.publish(KindCompleted, id)
	return nil
}

// Remove deletes the task. Unknown ids still publish a change.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.gw.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.publish(KindRemoved, id)
	return nil
}

// Refresh publishes a change without touching storage, forcing every
// subscriber to re-query.
func (s *Service) Refresh() {
	s.publish(KindRefreshed, 0)
}

func (s *Service) publish(kind Kind, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revision++
	change := Change{Revision: s.revision, Kind: kind, ID: id}
	if s.debug {
		s.logger.Printf("task change: rev=%d kind=%s id=%d", change.Revision, kind, id)
	}
	s.hub.Publish(change)
}

// dumpAll logs the whole table.
func (s *Service) dumpAll(ctx context.Context) {
	all, err := s.gw.ListAll(ctx)
	if err != nil {
		s.logger.Printf("listing tasks for debug dump: %v", err)
		return
	}
	s.logger.Printf("items: %s", formatTasks(all))
}

func formatTasks(tasks []model.Task) string {
	var b strings.Builder
	b.WriteString("[")
	for i, t := range tasks {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "{id:%d done:%d value:%q}", t.ID, model.DoneFlag(t.Done), t.Value)
	}
	b.WriteString("]")
	return b.String()
}
