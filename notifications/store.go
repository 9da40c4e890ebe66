// Package notifications is the entity store for user notifications and the
// unread counter the badge polls.
package notifications

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/studyhub-app/studyhub-go/internal/apimsg"
	"github.com/studyhub-app/studyhub-go/rest"
	"github.com/studyhub-app/studyhub-go/state"
)

// Store holds the notification collection, the unread counter, and the
// request lifecycle.
type Store struct {
	api      *rest.Client
	validate *validator.Validate
	log      zerolog.Logger
	col      *state.Collection[Notification]

	mu          sync.RWMutex
	unreadCount int
}

// Option modifies a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates the notification store.
func NewStore(api *rest.Client, options ...Option) *Store {
	s := &Store{
		api:      api,
		validate: validator.New(),
		log:      zerolog.Nop(),
		col:      state.NewCollection[Notification](),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// FetchAll replaces the collection wholesale with the response sequence.
func (s *Store) FetchAll(ctx context.Context, filters map[string]string) ([]Notification, error) {
	s.col.Begin()

	var items []Notification
	if err := s.api.Get(ctx, "/notifications", rest.Query(filters), &items); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to fetch notifications"))
		return nil, errors.Wrap(err, "[Store.FetchAll] GET /notifications")
	}
	if err := s.check(items...); err != nil {
		s.col.Fail("Failed to fetch notifications")
		return nil, err
	}

	s.col.ReplaceAll(items)
	s.col.Succeed()
	return items, nil
}

// FetchUnreadCount refreshes the unread counter. This is the polling path,
// so it deliberately leaves the shared request lifecycle alone: a badge
// refresh firing every poll interval must not churn status or clobber a
// user-visible error.
func (s *Store) FetchUnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := s.api.Get(ctx, "/notifications/unread/count", nil, &resp); err != nil {
		return 0, errors.Wrap(err, "[Store.FetchUnreadCount] GET /notifications/unread/count")
	}

	s.mu.Lock()
	s.unreadCount = resp.Count
	s.mu.Unlock()
	return resp.Count, nil
}

// MarkAsRead marks one notification read, replacing it in place and
// decrementing the unread counter by one, floored at zero.
func (s *Store) MarkAsRead(ctx context.Context, id string) (*Notification, error) {
	s.col.Begin()

	var item Notification
	if err := s.api.Patch(ctx, "/notifications/"+id+"/read", nil, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to mark as read"))
		return nil, errors.Wrap(err, "[Store.MarkAsRead] PATCH /notifications/:id/read")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to mark as read")
		return nil, err
	}

	s.col.ReplaceByID(item)

	s.mu.Lock()
	if s.unreadCount > 0 {
		s.unreadCount--
	}
	s.mu.Unlock()

	s.col.Succeed()
	return &item, nil
}

// MarkAllAsRead marks every notification read in one round trip, flipping
// the local read flags without refetching and zeroing the counter.
func (s *Store) MarkAllAsRead(ctx context.Context) error {
	s.col.Begin()

	if err := s.api.Patch(ctx, "/notifications/read-all", nil, nil); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to mark all as read"))
		return errors.Wrap(err, "[Store.MarkAllAsRead] PATCH /notifications/read-all")
	}

	s.col.TransformAll(func(n Notification) Notification {
		n.Read = true
		return n
	})

	s.mu.Lock()
	s.unreadCount = 0
	s.mu.Unlock()

	s.col.Succeed()
	return nil
}

// Delete removes the notification from the collection by identifier.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.col.Begin()

	if err := s.api.Delete(ctx, "/notifications/"+id, nil); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to delete notification"))
		return errors.Wrap(err, "[Store.Delete] DELETE /notifications/:id")
	}

	s.col.RemoveByID(id)
	s.col.Succeed()
	return nil
}

// UnreadCount returns the unread counter.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.unreadCount
}

// Items returns the collection snapshot in insertion order.
func (s *Store) Items() []Notification { return s.col.Items() }

// Status returns the request lifecycle status.
func (s *Store) Status() state.Status { return s.col.Status() }

// LastError returns the last recorded failure message.
func (s *Store) LastError() string { return s.col.LastError() }

// ClearError resets the last error.
func (s *Store) ClearError() { s.col.ClearError() }

func (s *Store) check(items ...Notification) error {
	for _, item := range items {
		if err := s.validate.Struct(item); err != nil {
			return errors.Wrap(err, "[Store.check] notification failed validation")
		}
	}
	return nil
}
