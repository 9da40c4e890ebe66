// Package submissions is the entity store for uploaded work, including the
// multipart upload and grading operations.
package submissions

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/studyhub-app/studyhub-go/internal/apimsg"
	"github.com/studyhub-app/studyhub-go/rest"
	"github.com/studyhub-app/studyhub-go/state"
)

// Store holds the submission collection and its request lifecycle.
type Store struct {
	api      *rest.Client
	validate *validator.Validate
	log      zerolog.Logger
	col      *state.Collection[Submission]
}

// Option modifies a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates the submission store.
func NewStore(api *rest.Client, options ...Option) *Store {
	s := &Store{
		api:      api,
		validate: validator.New(),
		log:      zerolog.Nop(),
		col:      state.NewCollection[Submission](),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// FetchAll replaces the collection wholesale with the response sequence.
func (s *Store) FetchAll(ctx context.Context, filters map[string]string) ([]Submission, error) {
	s.col.Begin()

	var items []Submission
	if err := s.api.Get(ctx, "/submissions", rest.Query(filters), &items); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to fetch submissions"))
		return nil, errors.Wrap(err, "[Store.FetchAll] GET /submissions")
	}
	if err := s.check(items...); err != nil {
		s.col.Fail("Failed to fetch submissions")
		return nil, err
	}

	s.col.ReplaceAll(items)
	s.col.Succeed()
	return items, nil
}

// FetchByID loads one submission into the current slot.
func (s *Store) FetchByID(ctx context.Context, id string) (*Submission, error) {
	s.col.Begin()

	var item Submission
	if err := s.api.Get(ctx, "/submissions/"+id, nil, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to fetch submission"))
		return nil, errors.Wrap(err, "[Store.FetchByID] GET /submissions/:id")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to fetch submission")
		return nil, err
	}

	s.col.SetCurrent(item)
	s.col.Succeed()
	return &item, nil
}

// Create uploads a submission as multipart/form-data (fields projectId,
// groupId, description, plus one "files" part per upload) and appends the
// returned entity at the end of the collection.
func (s *Store) Create(ctx context.Context, input CreateInput) (*Submission, error) {
	s.col.Begin()

	fields := map[string]string{
		"projectId":   input.ProjectID,
		"groupId":     input.GroupID,
		"description": input.Description,
	}
	files := make([]rest.FileField, 0, len(input.Files))
	for _, f := range input.Files {
		files = append(files, rest.FileField{Field: "files", Name: f.Name, Content: f.Content})
	}

	var item Submission
	if err := s.api.PostMultipart(ctx, "/submissions", fields, files, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to create submission"))
		return nil, errors.Wrap(err, "[Store.Create] POST /submissions")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to create submission")
		return nil, err
	}

	s.col.Append(item)
	s.col.Succeed()
	return &item, nil
}

// Grade records a grade on the submission. Follows the update contract.
func (s *Store) Grade(ctx context.Context, id string, input GradeInput) (*Submission, error) {
	s.col.Begin()

	var item Submission
	if err := s.api.Post(ctx, "/submissions/"+id+"/grade", input, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to grade submission"))
		return nil, errors.Wrap(err, "[Store.Grade] POST /submissions/:id/grade")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to grade submission")
		return nil, err
	}

	s.col.ReplaceByID(item)
	s.col.UpdateCurrent(item)
	s.col.Succeed()
	return &item, nil
}

// UpdateStatus transitions the submission status, optionally with feedback.
// Follows the update contract.
func (s *Store) UpdateStatus(ctx context.Context, id, status, feedback string) (*Submission, error) {
	s.col.Begin()

	body := map[string]string{"status": status}
	if feedback != "" {
		body["feedback"] = feedback
	}
	var item Submission
	if err := s.api.Patch(ctx, "/submissions/"+id+"/status", body, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to update status"))
		return nil, errors.Wrap(err, "[Store.UpdateStatus] PATCH /submissions/:id/status")
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

// Delete removes the submission from the collection by identifier.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.col.Begin()

	if err := s.api.Delete(ctx, "/submissions/"+id, nil); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to delete submission"))
		return errors.Wrap(err, "[Store.Delete] DELETE /submissions/:id")
	}

	s.col.RemoveByID(id)
	s.col.Succeed()
	return nil
}

// Items returns the collection snapshot in insertion order.
func (s *Store) Items() []Submission { return s.col.Items() }

// Current returns the currently-viewed submission, or nil.
func (s *Store) Current() *Submission { return s.col.Current() }

// Status returns the request lifecycle status.
func (s *Store) Status() state.Status { return s.col.Status() }

// LastError returns the last recorded failure message.
func (s *Store) LastError() string { return s.col.LastError() }

// ClearError resets the last error.
func (s *Store) ClearError() { s.col.ClearError() }

// ClearCurrent resets the currently-viewed submission.
func (s *Store) ClearCurrent() { s.col.ClearCurrent() }

func (s *Store) check(items ...Submission) error {
	for _, item := range items {
		if err := s.validate.Struct(item); err != nil {
			return errors.Wrap(err, "[Store.check] submission failed validation")
		}
	}
	return nil
}
