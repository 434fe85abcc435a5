// Package services contains application services for the globalstats client.
// Services built on the same Session run one operation at a time.
package services

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/edcasillas/globalstats/internal/client/client"
	"github.com/edcasillas/globalstats/internal/client/identity"
	"github.com/edcasillas/globalstats/internal/logging"
)

// Session is the state shared by the services of one client instance:
// the API, the remembered identity and a gate that admits a single
// operation at a time.
type Session struct {
	api      client.API
	identity *identity.Store
	logger   logging.Logger
	gate     *semaphore.Weighted
}

// NewSession binds api and ids into one client instance. A nil logger
// discards output.
func NewSession(api client.API, ids *identity.Store, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Session{
		api:      api,
		identity: ids,
		logger:   logger,
		gate:     semaphore.NewWeighted(1),
	}
}

// enter waits for the session gate. If ctx ends first no I/O is done and
// ctx.Err() is returned.
func (s *Session) enter(ctx context.Context) (release func(), err error) {
	if err := s.gate.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { s.gate.Release(1) }, nil
}

// resolveID prefers explicit, then the stored statistic id.
func (s *Session) resolveID(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return s.identity.StatisticID(ctx)
}
