// Package tasks is the entity store for tasks, including the status
// transition and comment operations.
package tasks

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/studyhub-app/studyhub-go/internal/apimsg"
	"github.com/studyhub-app/studyhub-go/rest"
	"github.com/studyhub-app/studyhub-go/state"
)

// Store holds the task collection and its request lifecycle.
type Store struct {
	api      *rest.Client
	validate *validator.Validate
	log      zerolog.Logger
	col      *state.Collection[Task]
}

// Option modifies a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates the task store.
func NewStore(api *rest.Client, options ...Option) *Store {
	s := &Store{
		api:      api,
		validate: validator.New(),
		log:      zerolog.Nop(),
		col:      state.NewCollection[Task](),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// FetchAll replaces the collection wholesale with the response sequence.
// filters become query parameters (projectId, groupId, assignedTo, ...).
func (s *Store) FetchAll(ctx context.Context, filters map[string]string) ([]Task, error) {
	s.col.Begin()

	var items []Task
	if err := s.api.Get(ctx, "/tasks", rest.Query(filters), &items); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to fetch tasks"))
		return nil, errors.Wrap(err, "[Store.FetchAll] GET /tasks")
	}
	if err := s.check(items...); err != nil {
		s.col.Fail("Failed to fetch tasks")
		return nil, err
	}

	s.col.ReplaceAll(items)
	s.col.Succeed()
	return items, nil
}

// FetchByID loads one task into the current slot.
func (s *Store) FetchByID(ctx context.Context, id string) (*Task, error) {
	s.col.Begin()

	var item Task
	if err := s.api.Get(ctx, "/tasks/"+id, nil, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to fetch task"))
		return nil, errors.Wrap(err, "[Store.FetchByID] GET /tasks/:id")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to fetch task")
		return nil, err
	}

	s.col.SetCurrent(item)
	s.col.Succeed()
	return &item, nil
}

// Create appends the returned task at the end of the collection.
func (s *Store) Create(ctx context.Context, input CreateInput) (*Task, error) {
	s.col.Begin()

	var item Task
	if err := s.api.Post(ctx, "/tasks", input, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to create task"))
		return nil, errors.Wrap(err, "[Store.Create] POST /tasks")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to create task")
		return nil, err
	}

	s.col.Append(item)
	s.col.Succeed()
	return &item, nil
}

// Update replaces the matching task in place.
func (s *Store) Update(ctx context.Context, id string, input UpdateInput) (*Task, error) {
	s.col.Begin()

	var item Task
	if err := s.api.Put(ctx, "/tasks/"+id, input, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to update task"))
		return nil, errors.Wrap(err, "[Store.Update] PUT /tasks/:id")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to update task")
		return nil, err
	}

	s.col.ReplaceByID(item)
	s.col.UpdateCurrent(item)
	s.col.Succeed()
	return &item, nil
}

// UpdateStatus transitions the task status. Follows the update contract.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) (*Task, error) {
	s.col.Begin()

	body := map[string]string{"status": status}
	var item Task
	if err := s.api.Patch(ctx, "/tasks/"+id+"/status", body, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to update status"))
		return nil, errors.Wrap(err, "[Store.UpdateStatus] PATCH /tasks/:id/status")
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

// AddComment posts a comment on the task. The response is returned to the
// caller; the collection is not mutated.
func (s *Store) AddComment(ctx context.Context, id, text string) (*Task, error) {
	body := map[string]string{"text": text}
	var item Task
	if err := s.api.Post(ctx, "/tasks/"+id+"/comments", body, &item); err != nil {
		return nil, errors.Wrap(err, "[Store.AddComment] POST /tasks/:id/comments")
	}
	return &item, nil
}

// Delete removes the task from the collection by identifier.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.col.Begin()

	if err := s.api.Delete(ctx, "/tasks/"+id, nil); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to delete task"))
		return errors.Wrap(err, "[Store.Delete] DELETE /tasks/:id")
	}

	s.col.RemoveByID(id)
	s.col.Succeed()
	return nil
}

// Items returns the collection snapshot in insertion order.
func (s *Store) Items() []Task { return s.col.Items() }

// Current returns the currently-viewed task, or nil.
func (s *Store) Current() *Task { return s.col.Current() }

// Status returns the request lifecycle status.
func (s *Store) Status() state.Status { return s.col.Status() }

// LastError returns the last recorded failure message.
func (s *Store) LastError() string { return s.col.LastError() }

// ClearError resets the last error.
func (s *Store) ClearError() { s.col.ClearError() }

// ClearCurrent resets the currently-viewed task.
func (s *Store) ClearCurrent() { s.col.ClearCurrent() }

func (s *Store) check(items ...Task) error {
	for _, item := range items {
		if err := s.validate.Struct(item); err != nil {
			return errors.Wrap(err, "[Store.check] task failed validation")
		}
	}
	return nil
}
