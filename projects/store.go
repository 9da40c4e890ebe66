// Package projects is the entity store for projects.
package projects

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/studyhub-app/studyhub-go/internal/apimsg"
	"github.com/studyhub-app/studyhub-go/rest"
	"github.com/studyhub-app/studyhub-go/state"
)

// Store holds the project collection and its request lifecycle.
type Store struct {
	api      *rest.Client
	validate *validator.Validate
	log      zerolog.Logger
	col      *state.Collection[Project]
}

// Option modifies a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates the project store.
func NewStore(api *rest.Client, options ...Option) *Store {
	s := &Store{
		api:      api,
		validate: validator.New(),
		log:      zerolog.Nop(),
		col:      state.NewCollection[Project](),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// FetchAll replaces the collection wholesale with the response sequence.
func (s *Store) FetchAll(ctx context.Context) ([]Project, error) {
	s.col.Begin()

	var items []Project
	if err := s.api.Get(ctx, "/projects", nil, &items); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to fetch projects"))
		return nil, errors.Wrap(err, "[Store.FetchAll] GET /projects")
	}
	if err := s.check(items...); err != nil {
		s.col.Fail("Failed to fetch projects")
		return nil, err
	}

	s.col.ReplaceAll(items)
	s.col.Succeed()
	return items, nil
}

// FetchByID loads one project into the current slot without touching the
// collection.
func (s *Store) FetchByID(ctx context.Context, id string) (*Project, error) {
	s.col.Begin()

	var item Project
	if err := s.api.Get(ctx, "/projects/"+id, nil, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to fetch project"))
		return nil, errors.Wrap(err, "[Store.FetchByID] GET /projects/:id")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to fetch project")
		return nil, err
	}

	s.col.SetCurrent(item)
	s.col.Succeed()
	return &item, nil
}

// Create appends the returned project at the end of the collection.
func (s *Store) Create(ctx context.Context, input CreateInput) (*Project, error) {
	s.col.Begin()

	var item Project
	if err := s.api.Post(ctx, "/projects", input, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to create project"))
		return nil, errors.Wrap(err, "[Store.Create] POST /projects")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to create project")
		return nil, err
	}

	s.col.Append(item)
	s.col.Succeed()
	return &item, nil
}

// Update replaces the matching project in place; an identifier absent from
// the collection leaves it unchanged. The current slot is only refreshed
// when it refers to the same project.
func (s *Store) Update(ctx context.Context, id string, input UpdateInput) (*Project, error) {
	s.col.Begin()

	var item Project
	if err := s.api.Put(ctx, "/projects/"+id, input, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to update project"))
		return nil, errors.Wrap(err, "[Store.Update] PUT /projects/:id")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to update project")
		return nil, err
	}

	s.col.ReplaceByID(item)
	s.col.UpdateCurrent(item)
	s.col.Succeed()
	return &item, nil
}

// Delete removes the project from the collection by identifier. Deleting an
// identifier that is not present is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.col.Begin()

	if err := s.api.Delete(ctx, "/projects/"+id, nil); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to delete project"))
		return errors.Wrap(err, "[Store.Delete] DELETE /projects/:id")
	}

	s.col.RemoveByID(id)
	s.col.Succeed()
	return nil
}

// Items returns the collection snapshot in insertion order.
func (s *Store) Items() []Project { return s.col.Items() }

// Current returns the currently-viewed project, or nil.
func (s *Store) Current() *Project { return s.col.Current() }

// Status returns the request lifecycle status.
func (s *Store) Status() state.Status { return s.col.Status() }

// LastError returns the last recorded failure message.
func (s *Store) LastError() string { return s.col.LastError() }

// ClearError resets the last error.
func (s *Store) ClearError() { s.col.ClearError() }

// ClearCurrent resets the currently-viewed project.
func (s *Store) ClearCurrent() { s.col.ClearCurrent() }

func (s *Store) check(items ...Project) error {
	for _, item := range items {
		if err := s.validate.Struct(item); err != nil {
			return errors.Wrap(err, "[Store.check] project failed validation")
		}
	}
	return nil
}
