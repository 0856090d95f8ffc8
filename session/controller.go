// Package session orchestrates the client-side session lifecycle: login,
// current-user fetch, logout, and the clear-and-redirect reaction to an
// invalid session.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/go-tenant-client/client"
	interrors "github.com/jrsteele09/go-tenant-client/internal/errors"
	"github.com/jrsteele09/go-tenant-client/internal/logger"
	"github.com/jrsteele09/go-tenant-client/querycache"
	"github.com/jrsteele09/go-tenant-client/token"
)

const currentUserTTL = 30 * time.Second

// NavigateFunc performs the "go to the login destination" side effect after
// the session has been invalidated.
type NavigateFunc func()

// Deps holds all dependencies for the Controller.
type Deps struct {
	Client *client.Client   // Shared request pipeline
	Tokens token.Store      // Persisted token slot
	Cache  *querycache.Cache // Shared read cache
}

// Controller owns the session state machine: Unauthenticated, Authenticating
// (login in flight), Authenticated (valid token plus fetched user).
type Controller struct {
	deps     Deps
	log      *logger.Logger
	navigate NavigateFunc

	userBinding *querycache.Binding[*User]

	mu   sync.Mutex
	user *User
}

// ControllerOption defines a function type to modify the Controller instance.
type ControllerOption func(*Controller)

// WithNavigate sets the navigation hook invoked on session invalidation.
func WithNavigate(f NavigateFunc) ControllerOption {
	return func(c *Controller) {
		c.navigate = f
	}
}

// WithLogger attaches a diagnostic logger.
func WithLogger(l *logger.Logger) ControllerOption {
	return func(c *Controller) {
		c.log = l
	}
}

// NewController initializes a Controller and registers it as the pipeline's
// auth-invalid handler, so that an expired token or a 401 anywhere flows back
// through exactly one place.
func NewController(deps Deps, options ...ControllerOption) *Controller {
	c := &Controller{deps: deps}
	for _, opt := range options {
		opt(c)
	}
	c.userBinding = querycache.NewBinding(deps.Cache, querycache.KeyCurrentUser, currentUserTTL, c.fetchUser).
		WithEnabled(func() bool {
			_, present := deps.Tokens.Get()
			return present
		})
	deps.Client.SetAuthInvalidHandler(c.handleAuthInvalid)
	return c
}

// handleAuthInvalid runs after the pipeline has already cleared the token.
// The current-user entry is no longer trustworthy; navigation happens last.
func (c *Controller) handleAuthInvalid() {
	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()
	c.deps.Cache.Invalidate(querycache.KeyCurrentUser)
	c.log.Info("session invalidated", nil)
	if c.navigate != nil {
		c.navigate()
	}
}

func (c *Controller) fetchUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.deps.Client.Get(ctx, "/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for a token, persists it, and synchronously
// refetches the current user so IsAuthenticated is true by the time Login
// returns. On failure the stored token is left untouched.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	if err := c.deps.Client.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return client.Fallback(err, "login failed")
	}
	if resp.AccessToken == "" {
		return interrors.Wrapf(interrors.ErrInvalidCredentials, "login returned no token")
	}
	if err := c.deps.Tokens.Set(resp.AccessToken); err != nil {
		return interrors.Wrapf(err, "persisting token")
	}
	// Token write strictly precedes the user refetch.
	user, err := c.userBinding.Refetch(ctx)
	if err != nil {
		return client.Fallback(err, "failed to fetch current user")
	}
	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
	c.log.Debug("login complete", map[string]any{"email": email})
	return nil
}

// Signup creates an account. When the backend hands back a session token the
// controller logs the new user straight in, mirroring Login.
func (c *Controller) Signup(ctx context.Context, req SignupRequest) error {
	var resp signupResponse
	if err := c.deps.Client.Post(ctx, "/auth/signup", req, &resp); err != nil {
		return client.Fallback(err, "signup failed")
	}
	tok := resp.SessionToken
	if tok == nil || *tok == "" {
		return nil
	}
	if err := c.deps.Tokens.Set(*tok); err != nil {
		return interrors.Wrapf(err, "persisting token")
	}
	user, err := c.userBinding.Refetch(ctx)
	if err != nil {
		return client.Fallback(err, "failed to fetch current user")
	}
	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
	return nil
}

// CurrentUser returns the authenticated principal. With no stored token it
// yields (nil, nil) without a network call. Auth failures have already
// cleared the session by the time the error surfaces; any other failure
// propagates without touching the session.
func (c *Controller) CurrentUser(ctx context.Context) (*User, error) {
	if _, present := c.deps.Tokens.Get(); !present {
		c.mu.Lock()
		c.user = nil
		c.mu.Unlock()
		return nil, nil
	}
	user, err := c.userBinding.Get(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
	return user, nil
}

// Logout notifies the backend best-effort, then unconditionally clears the
// local token and flushes the whole cache. The notification's outcome never
// gates the local teardown and never surfaces to the caller.
func (c *Controller) Logout(ctx context.Context) error {
	if _, present := c.deps.Tokens.Get(); present {
		if err := c.deps.Client.Post(ctx, "/auth/logout", nil, nil); err != nil {
			c.log.Warn("logout notification failed", map[string]any{"error": err.Error()})
		}
	}

	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()
	c.deps.Cache.Flush()
	if err := c.deps.Tokens.Clear(); err != nil {
		return interrors.Wrapf(err, "clearing token")
	}
	return nil
}

// IsAuthenticated reports whether a user object is currently held. A present
// but unvalidated token does not count.
func (c *Controller) IsAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user != nil
}

// DebugClear wipes the token slot and all cached query state unconditionally.
func (c *Controller) DebugClear() {
	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()
	c.deps.Cache.Flush()
	if err := c.deps.Tokens.Clear(); err != nil {
		c.log.Warn("failed to clear token", map[string]any{"error": err.Error()})
	}
}

// ListSessions returns the backend's session records for the current user.
func (c *Controller) ListSessions(ctx context.Context) ([]AuthSession, error) {
	binding := querycache.NewBinding(c.deps.Cache, querycache.KeySessions, currentUserTTL, func(ctx context.Context) ([]AuthSession, error) {
		var resp sessionListResponse
		if err := c.deps.Client.Get(ctx, "/sessions", &resp); err != nil {
			return nil, err
		}
		return resp.Sessions, nil
	})
	sessions, err := binding.Get(ctx)
	if err != nil {
		return nil, client.Fallback(err, "failed to fetch sessions")
	}
	return sessions, nil
}

// RevokeSession revokes one backend session by id.
func (c *Controller) RevokeSession(ctx context.Context, id string) error {
	_, err := querycache.Mutate(ctx, c.deps.Cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.deps.Client.Delete(ctx, "/sessions/"+id)
	}, querycache.KeySessions)
	return client.Fallback(err, "failed to revoke session")
}

// RevokeAllSessions revokes every backend session, keeping the current one
// when exceptCurrent is true.
func (c *Controller) RevokeAllSessions(ctx context.Context, exceptCurrent bool) error {
	path := "/sessions/revoke-all"
	if !exceptCurrent {
		path += "?except_current=false"
	}
	_, err := querycache.Mutate(ctx, c.deps.Cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.deps.Client.Post(ctx, path, nil, nil)
	}, querycache.KeySessions)
	return client.Fallback(err, "failed to revoke sessions")
}
