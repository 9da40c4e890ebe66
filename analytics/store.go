// Package analytics is the snapshot store for dashboard and per-entity
// analytics projections. Snapshots are read-only documents; only the admin
// dashboard fetch drives the status lifecycle, the remaining fetches just
// swap their snapshot on success.
package analytics

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/studyhub-app/studyhub-go/internal/apimsg"
	"github.com/studyhub-app/studyhub-go/rest"
	"github.com/studyhub-app/studyhub-go/state"
)

// Snapshot is a server-computed analytics projection.
type Snapshot map[string]any

// Store holds the analytics snapshots.
type Store struct {
	api *rest.Client
	log zerolog.Logger

	mu               sync.RWMutex
	status           state.Status
	lastError        string
	dashboard        Snapshot
	projectAnalytics Snapshot
	groupAnalytics   Snapshot
}

// Option modifies a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates the analytics store.
func NewStore(api *rest.Client, options ...Option) *Store {
	s := &Store{
		api:    api,
		log:    zerolog.Nop(),
		status: state.StatusIdle,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// FetchAdminDashboard loads the admin dashboard snapshot. It is the only
// fetch that records the loading and failure states.
func (s *Store) FetchAdminDashboard(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	s.status = state.StatusLoading
	s.mu.Unlock()

	var snap Snapshot
	if err := s.api.Get(ctx, "/analytics/admin/dashboard", nil, &snap); err != nil {
		s.mu.Lock()
		s.status = state.StatusFailed
		s.lastError = apimsg.Or(err, "Failed to fetch dashboard")
		s.mu.Unlock()
		return nil, errors.Wrap(err, "[Store.FetchAdminDashboard] GET /analytics/admin/dashboard")
	}

	s.mu.Lock()
	s.status = state.StatusSucceeded
	s.lastError = ""
	s.dashboard = snap
	s.mu.Unlock()
	return snap, nil
}

// FetchStudentDashboard loads the student dashboard snapshot into the same
// dashboard slot the admin fetch uses.
func (s *Store) FetchStudentDashboard(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	if err := s.api.Get(ctx, "/analytics/student/dashboard", nil, &snap); err != nil {
		return nil, errors.Wrap(err, "[Store.FetchStudentDashboard] GET /analytics/student/dashboard")
	}

	s.mu.Lock()
	s.dashboard = snap
	s.mu.Unlock()
	return snap, nil
}

// FetchProjectAnalytics loads the per-project snapshot.
func (s *Store) FetchProjectAnalytics(ctx context.Context, projectID string) (Snapshot, error) {
	var snap Snapshot
	if err := s.api.Get(ctx, "/analytics/project/"+projectID, nil, &snap); err != nil {
		return nil, errors.Wrap(err, "[Store.FetchProjectAnalytics] GET /analytics/project/:id")
	}

	s.mu.Lock()
	s.projectAnalytics = snap
	s.mu.Unlock()
	return snap, nil
}

// FetchGroupAnalytics loads the per-group snapshot.
func (s *Store) FetchGroupAnalytics(ctx context.Context, groupID string) (Snapshot, error) {
	var snap Snapshot
	if err := s.api.Get(ctx, "/analytics/group/"+groupID, nil, &snap); err != nil {
		return nil, errors.Wrap(err, "[Store.FetchGroupAnalytics] GET /analytics/group/:id")
	}

	s.mu.Lock()
	s.groupAnalytics = snap
	s.mu.Unlock()
	return snap, nil
}

// Dashboard returns the last loaded dashboard snapshot.
func (s *Store) Dashboard() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dashboard
}

// ProjectAnalytics returns the last loaded per-project snapshot.
func (s *Store) ProjectAnalytics() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectAnalytics
}

// GroupAnalytics returns the last loaded per-group snapshot.
func (s *Store) GroupAnalytics() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groupAnalytics
}

// Status returns the request lifecycle status.
func (s *Store) Status() state.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// LastError returns the last recorded failure message.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// ClearError resets the last error.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}
