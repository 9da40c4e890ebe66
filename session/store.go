package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/studyhub-app/studyhub-go/internal/apimsg"
	"github.com/studyhub-app/studyhub-go/keyval"
	"github.com/studyhub-app/studyhub-go/rest"
	"github.com/studyhub-app/studyhub-go/state"
)

// Credentials are the login inputs.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is the registration payload. Registration does not log the
// user in.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Student is a row from the student directory endpoint.
type Student struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// Store is the session state container. Login and logout keep in-memory
// state and durable storage in step; every other authenticated call picks
// the credential back up from storage through the HTTP adapter.
type Store struct {
	api     *rest.Client
	store   keyval.Store
	log     zerolog.Logger
	nowTime func() time.Time

	mu           sync.RWMutex
	identity     *Identity
	user         *User
	token        string
	refreshToken string
	status       state.Status
	lastErr      string
}

// Option modifies a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithNowTime sets the clock (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// NewStore creates the session store seeded from a bootstrapped State.
func NewStore(api *rest.Client, store keyval.Store, initial State, options ...Option) *Store {
	s := &Store{
		api:          api,
		store:        store,
		log:          zerolog.Nop(),
		nowTime:      time.Now,
		identity:     initial.Identity,
		user:         initial.User,
		token:        initial.Token,
		refreshToken: initial.RefreshToken,
		status:       state.StatusIdle,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Login authenticates against the API. On success the returned credentials
// and user snapshot are persisted and the in-memory session transitions
// atomically. On failure the in-memory identity and credentials are
// cleared; durable storage is left as it was.
func (s *Store) Login(ctx context.Context, creds Credentials) (*User, error) {
	s.begin()

	var resp loginResponse
	if err := s.api.Post(ctx, "/auth/login", creds, &resp); err != nil {
		s.failAndClear(apimsg.Or(err, "Login failed"))
		return nil, errors.Wrap(err, "[Store.Login] POST /auth/login")
	}

	identity, err := decodeIdentity(resp.AccessToken, s.nowTime())
	if err != nil {
		s.failAndClear("Login failed")
		return nil, errors.Wrap(err, "[Store.Login] decode access credential")
	}

	if err := s.persist(resp); err != nil {
		s.failAndClear("Login failed")
		return nil, errors.Wrap(err, "[Store.Login] persist session")
	}

	s.mu.Lock()
	s.identity = identity
	s.user = &resp.User
	s.token = resp.AccessToken
	s.refreshToken = resp.RefreshToken
	s.status = state.StatusSucceeded
	s.lastErr = ""
	s.mu.Unlock()

	s.log.Info().Str("userId", identity.ID).Str("role", identity.Role).Msg("logged in")
	return s.User(), nil
}

// Register creates an account. A successful registration does not touch the
// identity or credentials.
func (s *Store) Register(ctx context.Context, input RegisterInput) error {
	s.begin()

	var out map[string]any
	if err := s.api.Post(ctx, "/auth/register", input, &out); err != nil {
		s.mu.Lock()
		s.status = state.StatusFailed
		s.lastErr = apimsg.Or(err, "Registration failed")
		s.mu.Unlock()
		return errors.Wrap(err, "[Store.Register] POST /auth/register")
	}

	s.mu.Lock()
	s.status = state.StatusSucceeded
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Logout clears the session from memory and durable storage. No network
// call is made.
func (s *Store) Logout() {
	s.mu.Lock()
	s.identity = nil
	s.user = nil
	s.token = ""
	s.refreshToken = ""
	s.status = state.StatusIdle
	s.lastErr = ""
	s.mu.Unlock()

	purge(s.store)
	s.log.Info().Msg("logged out")
}

// ListStudents fetches the student directory. The result is returned to the
// caller and not held in session state.
func (s *Store) ListStudents(ctx context.Context) ([]Student, error) {
	var students []Student
	if err := s.api.Get(ctx, "/auth/students", nil, &students); err != nil {
		return nil, errors.Wrap(err, "[Store.ListStudents] GET /auth/students")
	}
	return students, nil
}

// ForgotPassword requests a password-reset email.
func (s *Store) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	var out map[string]any
	if err := s.api.Post(ctx, "/auth/forgot-password", body, &out); err != nil {
		return errors.Wrap(err, "[Store.ForgotPassword] POST /auth/forgot-password")
	}
	return nil
}

// ResetPassword completes a password reset with the emailed token.
func (s *Store) ResetPassword(ctx context.Context, resetToken, password string) error {
	body := map[string]string{"password": password}
	var out map[string]any
	if err := s.api.Post(ctx, "/auth/reset-password/"+resetToken, body, &out); err != nil {
		return errors.Wrap(err, "[Store.ResetPassword] POST /auth/reset-password")
	}
	return nil
}

// Identity returns a copy of the authenticated identity, or nil.
func (s *Store) Identity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return nil
	}
	v := *s.identity
	return &v
}

// User returns a copy of the user snapshot, or nil.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	v := *s.user
	return &v
}

// Token returns the access credential held in state.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// RefreshToken returns the refresh credential. It is persisted for the
// server's benefit; no call in this layer exercises it.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.refreshToken
}

// LoggedIn reports whether an identity is present.
func (s *Store) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.identity != nil
}

// Status returns the lifecycle status of the most recently settled
// operation.
func (s *Store) Status() state.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status
}

// LastError returns the last recorded failure message.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastErr
}

// ClearError resets the last error.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastErr = ""
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = state.StatusLoading
	s.lastErr = ""
}

func (s *Store) failAndClear(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = state.StatusFailed
	s.lastErr = msg
	s.identity = nil
	s.user = nil
	s.token = ""
}

func (s *Store) persist(resp loginResponse) error {
	if err := s.store.Set(keyval.TokenKey, resp.AccessToken); err != nil {
		return err
	}
	if resp.RefreshToken != "" {
		if err := s.store.Set(keyval.RefreshTokenKey, resp.RefreshToken); err != nil {
			return err
		}
	}
	userJSON, err := json.Marshal(resp.User)
	if err != nil {
		return err
	}
	return s.store.Set(keyval.UserKey, string(userJSON))
}
