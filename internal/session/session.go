// package session holds the authenticated user's state for the lifetime of
// the process: the bearer token and the resolved profile.
//
// The store is explicitly injected into every workflow rather than living as
// package-level state. Init hydrates the profile from a persisted token at
// app start; teardown clears both token and in-memory profile.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/melodex/internal/api"
	"github.com/desertthunder/melodex/internal/models"
	"github.com/desertthunder/melodex/internal/shared"
)

// Store tracks the current session. Safe for concurrent use.
type Store struct {
	client    *api.Client
	tokenPath string
	logger    *log.Logger

	mu   sync.RWMutex
	user *models.User
}

// NewStore creates a session store backed by the given API client. The
// token is persisted at tokenPath so logins survive process restarts.
func NewStore(client *api.Client, tokenPath string, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	s := &Store{
		client:    client,
		tokenPath: tokenPath,
		logger:    logger,
	}

	// A 401 anywhere means the session is gone; drop local state so every
	// protected command falls back to the login path.
	client.OnSessionExpired(func() {
		s.logger.Warn("session expired, clearing stored token")
		s.clearLocal()
	})

	return s
}

// Login authenticates with the server, persists the issued token, and
// resolves the user's profile.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	if _, err := s.client.Login(ctx, email, password); err != nil {
		return nil, err
	}

	user, err := s.client.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("authenticated but failed to resolve profile: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if err := s.persistToken(s.client.Token()); err != nil {
		// A failed write only costs a re-login next run.
		s.logger.Warn("failed to persist token", "err", err)
	}

	return user, nil
}

// Hydrate restores a session from the persisted token, if one exists, and
// re-resolves the profile against the server. Returns false when there is
// no token to restore.
func (s *Store) Hydrate(ctx context.Context) (bool, error) {
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read token file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return false, nil
	}

	s.client.SetToken(token)

	user, err := s.client.Profile(ctx)
	if err != nil {
		// Server rejected the stored token; treat it as no session.
		if api.IsUnauthorized(err) {
			return false, nil
		}
		return false, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	return true, nil
}

// Refresh re-fetches the profile for the current session, e.g. after a
// profile mutation.
func (s *Store) Refresh(ctx context.Context) (*models.User, error) {
	if !s.Authenticated() {
		return nil, shared.ErrNotAuthenticated
	}

	user, err := s.client.Profile(ctx)
	if err != nil {
		// The 401 hook has already torn down local state by the time the
		// error surfaces here.
		if api.IsUnauthorized(err) {
			return nil, fmt.Errorf("%w: %v", shared.ErrSessionExpired, err)
		}
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	return user, nil
}

// Logout clears the token and in-memory profile. Always succeeds locally
// even when the token file cannot be removed.
func (s *Store) Logout() {
	s.clearLocal()
}

// User returns the resolved profile, or nil when unauthenticated.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a session is active.
func (s *Store) Authenticated() bool {
	return s.client.Token() != "" && s.User() != nil
}

func (s *Store) clearLocal() {
	s.client.SetToken("")

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if s.tokenPath != "" {
		if err := os.Remove(s.tokenPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove token file", "err", err)
		}
	}
}

func (s *Store) persistToken(token string) error {
	if s.tokenPath == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.tokenPath), 0755); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	if err := os.WriteFile(s.tokenPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}
