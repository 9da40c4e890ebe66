// Package groups is the entity store for student groups, including the
// membership operations.
package groups

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/studyhub-app/studyhub-go/internal/apimsg"
	"github.com/studyhub-app/studyhub-go/rest"
	"github.com/studyhub-app/studyhub-go/state"
)

// Store holds the group collection and its request lifecycle.
type Store struct {
	api      *rest.Client
	validate *validator.Validate
	log      zerolog.Logger
	col      *state.Collection[Group]
}

// Option modifies a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates the group store.
func NewStore(api *rest.Client, options ...Option) *Store {
	s := &Store{
		api:      api,
		validate: validator.New(),
		log:      zerolog.Nop(),
		col:      state.NewCollection[Group](),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// FetchAll replaces the collection wholesale with the response sequence.
func (s *Store) FetchAll(ctx context.Context) ([]Group, error) {
	s.col.Begin()

	var items []Group
	if err := s.api.Get(ctx, "/groups", nil, &items); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to fetch groups"))
		return nil, errors.Wrap(err, "[Store.FetchAll] GET /groups")
	}
	if err := s.check(items...); err != nil {
		s.col.Fail("Failed to fetch groups")
		return nil, err
	}

	s.col.ReplaceAll(items)
	s.col.Succeed()
	return items, nil
}

// FetchByID loads one group into the current slot.
func (s *Store) FetchByID(ctx context.Context, id string) (*Group, error) {
	s.col.Begin()

	var item Group
	if err := s.api.Get(ctx, "/groups/"+id, nil, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to fetch group"))
		return nil, errors.Wrap(err, "[Store.FetchByID] GET /groups/:id")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to fetch group")
		return nil, err
	}

	s.col.SetCurrent(item)
	s.col.Succeed()
	return &item, nil
}

// Create appends the returned group at the end of the collection.
func (s *Store) Create(ctx context.Context, input CreateInput) (*Group, error) {
	s.col.Begin()

	var item Group
	if err := s.api.Post(ctx, "/groups", input, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to create group"))
		return nil, errors.Wrap(err, "[Store.Create] POST /groups")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to create group")
		return nil, err
	}

	s.col.Append(item)
	s.col.Succeed()
	return &item, nil
}

// Update replaces the matching group in place.
func (s *Store) Update(ctx context.Context, id string, input UpdateInput) (*Group, error) {
	s.col.Begin()

	var item Group
	if err := s.api.Put(ctx, "/groups/"+id, input, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to update group"))
		return nil, errors.Wrap(err, "[Store.Update] PUT /groups/:id")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to update group")
		return nil, err
	}

	s.col.ReplaceByID(item)
	s.col.UpdateCurrent(item)
	s.col.Succeed()
	return &item, nil
}

// AddMember adds a user to the group. The response is the updated group and
// follows the update contract.
func (s *Store) AddMember(ctx context.Context, id string, member MemberInput) (*Group, error) {
	s.col.Begin()

	var item Group
	if err := s.api.Post(ctx, "/groups/"+id+"/members", member, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to add member"))
		return nil, errors.Wrap(err, "[Store.AddMember] POST /groups/:id/members")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to add member")
		return nil, err
	}

	s.col.ReplaceByID(item)
	s.col.UpdateCurrent(item)
	s.col.Succeed()
	return &item, nil
}

// RemoveMember removes a user from the group. The response is the updated
// group and follows the update contract.
func (s *Store) RemoveMember(ctx context.Context, groupID, userID string) (*Group, error) {
	s.col.Begin()

	var item Group
	if err := s.api.Delete(ctx, "/groups/"+groupID+"/members/"+userID, &item); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to remove member"))
		return nil, errors.Wrap(err, "[Store.RemoveMember] DELETE /groups/:id/members/:userId")
	}
	if err := s.check(item); err != nil {
		s.col.Fail("Failed to remove member")
		return nil, err
	}

	s.col.ReplaceByID(item)
	s.col.UpdateCurrent(item)
	s.col.Succeed()
	return &item, nil
}

// Delete removes the group from the collection by identifier.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.col.Begin()

	if err := s.api.Delete(ctx, "/groups/"+id, nil); err != nil {
		s.col.Fail(apimsg.Or(err, "Failed to delete group"))
		return errors.Wrap(err, "[Store.Delete] DELETE /groups/:id")
	}

	s.col.RemoveByID(id)
	s.col.Succeed()
	return nil
}

// Items returns the collection snapshot in insertion order.
func (s *Store) Items() []Group { return s.col.Items() }

// Current returns the currently-viewed group, or nil.
func (s *Store) Current() *Group { return s.col.Current() }

// Status returns the request lifecycle status.
func (s *Store) Status() state.Status { return s.col.Status() }

// LastError returns the last recorded failure message.
func (s *Store) LastError() string { return s.col.LastError() }

// ClearError resets the last error.
func (s *Store) ClearError() { s.col.ClearError() }

// ClearCurrent resets the currently-viewed group.
func (s *Store) ClearCurrent() { s.col.ClearCurrent() }

func (s *Store) check(items ...Group) error {
	for _, item := range items {
		if err := s.validate.Struct(item); err != nil {
			return errors.Wrap(err, "[Store.check] group failed validation")
		}
	}
	return nil
}
