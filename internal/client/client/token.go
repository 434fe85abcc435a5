package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/edcasillas/globalstats/internal/client/models"
	"github.com/edcasillas/globalstats/internal/logging"
	"golang.org/x/sync/singleflight"
)

// TokenFetcher performs the client-credentials grant.
type TokenFetcher func(ctx context.Context) (*models.AccessToken, error)

// TokenManager owns the current access token. At most one refresh is in
// flight at a time; concurrent callers wait for and share its outcome.
type TokenManager struct {
	fetch  TokenFetcher
	now    func() time.Time
	logger logging.Logger

	mu    sync.RWMutex
	token *models.AccessToken

	refresh singleflight.Group
}

// NewTokenManager builds a manager that refreshes through fetch.
func NewTokenManager(fetch TokenFetcher, logger logging.Logger, now func() time.Time) *TokenManager {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &TokenManager{fetch: fetch, now: now, logger: logger}
}

// EnsureValidToken returns immediately when the held token is still valid.
// Otherwise it fetches a new one. On failure the held token is cleared and
// the returned error wraps ErrAuth. No retry is attempted.
//
// The refresh itself ignores ctx cancellation; ctx only bounds this caller's
// wait.
func (m *TokenManager) EnsureValidToken(ctx context.Context) error {
	if m.valid() {
		m.logger.Debug(ctx, "valid access token found")
		return nil
	}

	ch := m.refresh.DoChan("token", func() (any, error) {
		if m.valid() {
			return nil, nil
		}
		return nil, m.doRefresh(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *TokenManager) doRefresh(ctx context.Context) error {
	m.logger.Debug(ctx, "fetching access token")

	tok, err := m.fetch(ctx)
	if err == nil && tok == nil {
		err = errors.New("empty token response")
	}
	if err != nil {
		m.Clear()
		m.logger.Error(ctx, "access token could not be retrieved", "error", err)
		return fmt.Errorf("%w: %w", ErrAuth, err)
	}

	issued := *tok
	if issued.CreatedAt == 0 {
		issued.CreatedAt = m.now().Unix()
	}
	if !issued.IsValid(m.now()) {
		m.Clear()
		m.logger.Error(ctx, "access token is already expired or has no expiry", "expires_in", issued.ExpiresIn.String())
		return fmt.Errorf("%w: %w: token has no usable expiry", ErrAuth, ErrParse)
	}

	m.mu.Lock()
	m.token = &issued
	m.mu.Unlock()

	m.logger.Debug(ctx, "access token retrieved", "token_type", issued.TokenType, "expires_in", issued.ExpiresIn.String())
	return nil
}

func (m *TokenManager) valid() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token.IsValid(m.now())
}

// AccessToken returns the held bearer credential, or "" when none is held.
func (m *TokenManager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == nil {
		return ""
	}
	return m.token.AccessToken
}

// Token returns a copy of the held token, or nil.
func (m *TokenManager) Token() *models.AccessToken {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == nil {
		return nil
	}
	t := *m.token
	return &t
}

// Clear drops the held token so the next call refreshes.
func (m *TokenManager) Clear() {
	m.mu.Lock()
	m.token = nil
	m.mu.Unlock()
}
