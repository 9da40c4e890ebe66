// Package milestones is the entity store for project milestones.
package milestones

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/studyhub-app/studyhub-go/internal/apimsg"
	"github.com/studyhub-app/studyhub-go/rest"
	"github.com/studyhub-app/studyhub-go/state"
)

// Store holds the milestone collection and its request lifecycle.
type Store struct {
	api      *rest.Client
	validate *validator.Validate
	log      zerolog.Logger
	col      *state.Collection[Milestone]
}

// Option modifies a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates the milestone store.
func NewStore(api *rest.Client, options ...Option) *Store {
	s := &Store{
		api:      api,
		validate: validator.New(),
		log:      zerolog.Nop(),
		col:      state.NewCollection[Milestone](),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// FetchAll replaces the collection wholesale with the response sequence.
func (s *Store) FetchAll(ctx context.Context, filters map[string]string) ([]Milestone, error) {
	s.col.Begin()

	var items []Milestone
	if err := s.api.Get(ctx, "/milestones", rest.Query(filters), &items); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to fetch milestones"))
		return nil, errors.Wrap(err, "[Store.FetchAll] GET /milestones")
	}
	if err := s.check(items...); err != nil {
		s.col.Fail("Failed to fetch milestones")
		return nil, err
	}

	s.col.ReplaceAll(items)
	s.col.Succeed()
	return items, nil
}

// FetchByID loads one milestone into the current slot.
func (s *Store) FetchByID(ctx context.Context, id string) (*Milestone, error) {
	s.col.Begin()

	var item Milestone
	if err := s.api.Get(ctx, "/milestones/"+id, nil, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to fetch milestone"))
		return nil, errors.Wrap(err, "[Store.FetchByID] GET /milestones/:id")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to fetch milestone")
		return nil, err
	}

	s.col.SetCurrent(item)
	s.col.Succeed()
	return &item, nil
}

// Create appends the returned milestone at the end of the collection.
func (s *Store) Create(ctx context.Context, input CreateInput) (*Milestone, error) {
	s.col.Begin()

	var item Milestone
	if err := s.api.Post(ctx, "/milestones", input, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to create milestone"))
		return nil, errors.Wrap(err, "[Store.Create] POST /milestones")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to create milestone")
		return nil, err
	}

	s.col.Append(item)
	s.col.Succeed()
	return &item, nil
}

// Update replaces the matching milestone in place.
func (s *Store) Update(ctx context.Context, id string, input UpdateInput) (*Milestone, error) {
	s.col.Begin()

	var item Milestone
	if err := s.api.Put(ctx, "/milestones/"+id, input, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to update milestone"))
		return nil, errors.Wrap(err, "[Store.Update] PUT /milestones/:id")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to update milestone")
		return nil, err
	}

	s.col.ReplaceByID(item)
	s.col.UpdateCurrent(item)
	s.col.Succeed()
	return &item, nil
}

// UpdateStatus transitions the milestone status. Follows the update
// contract.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) (*Milestone, error) {
	s.col.Begin()

	body := map[string]string{"status": status}
	var item Milestone
	if err := s.api.Patch(ctx, "/milestones/"+id+"/status", body, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to update status"))
		return nil, errors.Wrap(err, "[Store.UpdateStatus] PATCH /milestones/:id/status")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to update status")
		return nil, err
	}

	s.col.ReplaceByID(item)
	s.col.UpdateCurrent(item)
	s.col.Succeed()
	return &item, nil
}

// Delete removes the milestone from the collection by identifier.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.col.Begin()

	if err := s.api.Delete(ctx, "/milestones/"+id, nil); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to delete milestone"))
		return errors.Wrap(err, "[Store.Delete] DELETE /milestones/:id")
	}

	s.col.RemoveByID(id)
	s.col.Succeed()
	return nil
}

// Items returns the collection snapshot in insertion order.
func (s *Store) Items() []Milestone { return s.col.Items() }

// Current returns the currently-viewed milestone, or nil.
func (s *Store) Current() *Milestone { return s.col.Current() }

// Status returns the request lifecycle status.
func (s *Store) Status() state.Status { return s.col.Status() }

// LastError returns the last recorded failure message.
func (s *Store) LastError() string { return s.col.LastError() }

// ClearError resets the last error.
func (s *Store) ClearError() { s.col.ClearError() }

// ClearCurrent resets the currently-viewed milestone.
func (s *Store) ClearCurrent() { s.col.ClearCurrent() }

func (s *Store) check(items ...Milestone) error {
	for _, item := range items {
		if err := s.validate.Struct(item); err != nil {
			return errors.Wrap(err, "[Store.check] milestone failed validation")
		}
	}
	return nil
}
