// Package assignments is the entity store for project assignments. Besides
// the main collection it keeps a separate per-project list, since the admin
// views the two independently.
package assignments

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

// Store holds the assignment collection and its request lifecycle.
type Store struct {
	api      *rest.Client
	validate *validator.Validate
	log      zerolog.Logger
	col      *state.Collection[Assignment]

	mu                 sync.RWMutex
	projectAssignments []Assignment
}

// Option modifies a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates the assignment store.
func NewStore(api *rest.Client, options ...Option) *Store {
	s := &Store{
		api:      api,
		validate: validator.New(),
		log:      zerolog.Nop(),
		col:      state.NewCollection[Assignment](),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Assign creates an assignment and appends it at the end of the collection.
func (s *Store) Assign(ctx context.Context, input AssignInput) (*Assignment, error) {
	s.col.Begin()

	var item Assignment
	if err := s.api.Post(ctx, "/assignments/assign", input, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Assignment failed"))
		return nil, errors.Wrap(err, "[Store.Assign] POST /assignments/assign")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Assignment failed")
		return nil, err
	}

	s.col.Append(item)
	s.col.Succeed()
	return &item, nil
}

// FetchAll replaces the collection wholesale with the response sequence.
func (s *Store) FetchAll(ctx context.Context) ([]Assignment, error) {
	s.col.Begin()

	var items []Assignment
	if err := s.api.Get(ctx, "/assignments", nil, &items); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to fetch assignments"))
		return nil, errors.Wrap(err, "[Store.FetchAll] GET /assignments")
	}
	if err := s.check(items...); err != nil {
		s.col.Fail("Failed to fetch assignments")
		return nil, err
	}

	s.col.ReplaceAll(items)
	s.col.Succeed()
	return items, nil
}

// FetchByProject loads the per-project list. The main collection is not
// touched.
func (s *Store) FetchByProject(ctx context.Context, projectID string) ([]Assignment, error) {
	s.col.Begin()

	var items []Assignment
	if err := s.api.Get(ctx, "/assignments/project/"+projectID, nil, &items); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to fetch assignments"))
		return nil, errors.Wrap(err, "[Store.FetchByProject] GET /assignments/project/:id")
	}
	if err := s.check(items...); err != nil {
		s.col.Fail("Failed to fetch assignments")
		return nil, err
	}

	s.mu.Lock()
	s.projectAssignments = make([]Assignment, len(items))
	copy(s.projectAssignments, items)
	s.mu.Unlock()

	s.col.Succeed()
	return items, nil
}

// UpdateStatus transitions the assignment status, replacing it in place in
// the main collection.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) (*Assignment, error) {
	s.col.Begin()

	body := map[string]string{"status": status}
	var item Assignment
	if err := s.api.Patch(ctx, "/assignments/"+id+"/status", body, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to update status"))
		return nil, errors.Wrap(err, "[Store.UpdateStatus] PATCH /assignments/:id/status")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to update status")
		return nil, err
	}

	s.col.ReplaceByID(item)
	s.col.Succeed()
	return &item, nil
}

// Delete removes the assignment from the main collection by identifier.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.col.Begin()

	if err := s.api.Delete(ctx, "/assignments/"+id, nil); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to delete assignment"))
		return errors.Wrap(err, "[Store.Delete] DELETE /assignments/:id")
	}

	s.col.RemoveByID(id)
	s.col.Succeed()
	return nil
}

// Items returns the main collection snapshot in insertion order.
func (s *Store) Items() []Assignment { return s.col.Items() }

// ProjectAssignments returns the per-project list snapshot.
func (s *Store) ProjectAssignments() []Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Assignment, len(s.projectAssignments))
	copy(items, s.projectAssignments)
	return items
}

// Status returns the request lifecycle status.
func (s *Store) Status() state.Status { return s.col.Status() }

// LastError returns the last recorded failure message.
func (s *Store) LastError() string { return s.col.LastError() }

// ClearError resets the last error.
func (s *Store) ClearError() { s.col.ClearError() }

func (s *Store) check(items ...Assignment) error {
	for _, item := range items {
		if err := s.validate.Struct(item); err != nil {
			return errors.Wrap(err, "[Store.check] assignment failed validation")
		}
	}
	return nil
}
