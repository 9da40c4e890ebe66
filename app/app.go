// Package app wires the shared API client, persisted session state and
// every entity store into a single struct.
package app

import (
	"github.com/rs/zerolog"

	"github.com/studyhub-app/studyhub-go/analytics"
	"github.com/studyhub-app/studyhub-go/assignments"
	"github.com/studyhub-app/studyhub-go/comments"
	"github.com/studyhub-app/studyhub-go/groups"
	"github.com/studyhub-app/studyhub-go/internal/config"
	"github.com/studyhub-app/studyhub-go/keyval"
	"github.com/studyhub-app/studyhub-go/milestones"
	"github.com/studyhub-app/studyhub-go/notifications"
	"github.com/studyhub-app/studyhub-go/projects"
	"github.com/studyhub-app/studyhub-go/rest"
	"github.com/studyhub-app/studyhub-go/session"
	"github.com/studyhub-app/studyhub-go/submissions"
	"github.com/studyhub-app/studyhub-go/tasks"
)

// App aggregates the stores. Stores are independent; there are no
// cross-store transactions.
type App struct {
	Session       *session.Store
	Projects      *projects.Store
	Groups        *groups.Store
	Tasks         *tasks.Store
	Milestones    *milestones.Store
	Submissions   *submissions.Store
	Notifications *notifications.Store
	Comments      *comments.Store
	Assignments   *assignments.Store
	Analytics     *analytics.Store
}

type settings struct {
	log zerolog.Logger
}

// Option modifies the App construction.
type Option func(*settings)

// WithLogger sets the logger passed to the client and every store.
func WithLogger(log zerolog.Logger) Option {
	return func(s *settings) {
		s.log = log
	}
}

// New restores the persisted session and builds every store on top of a
// shared API client.
func New(cfg *config.Config, store keyval.Store, options ...Option) *App {
	s := &settings{log: zerolog.Nop()}
	for _, opt := range options {
		opt(s)
	}

	api := rest.New(cfg.BaseURL, cfg.HTTPTimeout, store, rest.WithLogger(s.log))
	initial := session.Initialize(store)

	return &App{
		Session:       session.NewStore(api, store, initial, session.WithLogger(s.log)),
		Projects:      projects.NewStore(api, projects.WithLogger(s.log)),
		Groups:        groups.NewStore(api, groups.WithLogger(s.log)),
		Tasks:         tasks.NewStore(api, tasks.WithLogger(s.log)),
		Milestones:    milestones.NewStore(api, milestones.WithLogger(s.log)),
		Submissions:   submissions.NewStore(api, submissions.WithLogger(s.log)),
		Notifications: notifications.NewStore(api, notifications.WithLogger(s.log)),
		Comments:      comments.NewStore(api, comments.WithLogger(s.log)),
		Assignments:   assignments.NewStore(api, assignments.WithLogger(s.log)),
		Analytics:     analytics.NewStore(api, analytics.WithLogger(s.log)),
	}
}
