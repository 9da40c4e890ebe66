// Package comments is the entity store for discussion comments. There is
// no currently-viewed slot; comments are only ever listed.
package comments

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/studyhub-app/studyhub-go/internal/apimsg"
	"github.com/studyhub-app/studyhub-go/rest"
	"github.com/studyhub-app/studyhub-go/state"
)

// Store holds the comment collection and its request lifecycle.
type Store struct {
	api      *rest.Client
	validate *validator.Validate
	log      zerolog.Logger
	col      *state.Collection[Comment]
}

// Option modifies a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates the comment store.
func NewStore(api *rest.Client, options ...Option) *Store {
	s := &Store{
		api:      api,
		validate: validator.New(),
		log:      zerolog.Nop(),
		col:      state.NewCollection[Comment](),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// FetchAll replaces the collection wholesale with the response sequence.
func (s *Store) FetchAll(ctx context.Context, filters map[string]string) ([]Comment, error) {
	s.col.Begin()

	var items []Comment
	if err := s.api.Get(ctx, "/comments", rest.Query(filters), &items); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to fetch comments"))
		return nil, errors.Wrap(err, "[Store.FetchAll] GET /comments")
	}
	if err := s.check(items...); err != nil {
		s.col.Fail("Failed to fetch comments")
		return nil, err
	}

	s.col.ReplaceAll(items)
	s.col.Succeed()
	return items, nil
}

// Create appends the returned comment at the end of the collection.
func (s *Store) Create(ctx context.Context, input CreateInput) (*Comment, error) {
	s.col.Begin()

	var item Comment
	if err := s.api.Post(ctx, "/comments", input, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to create comment"))
		return nil, errors.Wrap(err, "[Store.Create] POST /comments")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to create comment")
		return nil, err
	}

	s.col.Append(item)
	s.col.Succeed()
	return &item, nil
}

// Update replaces the matching comment in place.
func (s *Store) Update(ctx context.Context, id, content string) (*Comment, error) {
	s.col.Begin()

	body := map[string]string{"content": content}
	var item Comment
	if err := s.api.Put(ctx, "/comments/"+id, body, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to update comment"))
		return nil, errors.Wrap(err, "[Store.Update] PUT /comments/:id")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to update comment")
		return nil, err
	}

	s.col.ReplaceByID(item)
	s.col.Succeed()
	return &item, nil
}

// Delete removes the comment from the collection by identifier.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.col.Begin()

	if err := s.api.Delete(ctx, "/comments/"+id, nil); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to delete comment"))
		return errors.Wrap(err, "[Store.Delete] DELETE /comments/:id")
	}

	s.col.RemoveByID(id)
	s.col.Succeed()
	return nil
}

// Items returns the collection snapshot in insertion order.
func (s *Store) Items() []Comment { return s.col.Items() }

// Status returns the request lifecycle status.
func (s *Store) Status() state.Status { return s.col.Status() }

// LastError returns the last recorded failure message.
func (s *Store) LastError() string { return s.col.LastError() }

// ClearError resets the last error.
func (s *Store) ClearError() { s.col.ClearError() }

func (s *Store) check(items ...Comment) error {
	for _, item := range items {
		if err := s.validate.Struct(item); err != nil {
			return errors.Wrap(err, "[Store.check] comment failed validation")
		}
	}
	return nil
}
