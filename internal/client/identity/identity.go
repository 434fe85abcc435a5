// Package identity remembers which statistic record belongs to this player.
package identity

import (
	"context"
	"fmt"

	"github.com/edcasillas/globalstats/internal/client/repositories/metadata"
)

const (
	keyStatisticID = "statistic_id"
	keyUserName    = "user_name"
)

// Store persists the statistic id and display name.
// An empty statistic id means no record has been created yet.
type Store struct {
	repo metadata.Repository
}

func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) StatisticID(ctx context.Context) (string, error) {
	return s.get(ctx, keyStatisticID)
}

// SetStatisticID records id. An empty id is ignored so that a known id is
// never cleared.
func (s *Store) SetStatisticID(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.repo.Set(ctx, keyStatisticID, id); err != nil {
		return fmt.Errorf("save statistic id: %w", err)
	}
	return nil
}

func (s *Store) UserName(ctx context.Context) (string, error) {
	return s.get(ctx, keyUserName)
}

func (s *Store) SetUserName(ctx context.Context, name string) error {
	if err := s.repo.Set(ctx, keyUserName, name); err != nil {
		return fmt.Errorf("save user name: %w", err)
	}
	return nil
}

// Remember records the outcome of a successful submission in one step:
// id when non-empty, and name unconditionally.
func (s *Store) Remember(ctx context.Context, id, name string) error {
	err := s.repo.Tx(ctx, func(ctx context.Context, tx metadata.Repository) error {
		if err := NewStore(tx).SetStatisticID(ctx, id); err != nil {
			return err
		}
		return NewStore(tx).SetUserName(ctx, name)
	})
	if err != nil {
		return fmt.Errorf("remember identity: %w", err)
	}
	return nil
}

// Forget drops both values.
func (s *Store) Forget(ctx context.Context) error {
	for _, k := range []string{keyStatisticID, keyUserName} {
		if err := s.repo.Delete(ctx, k); err != nil {
			return fmt.Errorf("forget identity: %w", err)
		}
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	v, _, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return v, nil
}
