package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"

	"github.com/edcasillas/globalstats/internal/client/cache"
	"github.com/edcasillas/globalstats/internal/client/client"
	"github.com/edcasillas/globalstats/internal/client/models"
	"github.com/edcasillas/globalstats/internal/telemetry"
)

// MinUserNameLength is the shortest display name Share accepts.
const MinUserNameLength = 3

// StatisticsService submits and reads the player's statistics.
//
// Contract:
//   - Share: create the record when no id is known, otherwise update it.
//   - GetStatistics: fetch the record; nil without error when there is none
//     or it cannot be fetched.
//   - LinkStatistic: request a link handshake for the record.
//   - Statistics, StatisticID, UserName, LinkData: read-only views of state.
type StatisticsService interface {
	Share(ctx context.Context, values map[string]string, id, name string) (*models.UserStatistics, error)
	GetStatistics(ctx context.Context) (*models.UserStatistics, error)
	LinkStatistic(ctx context.Context, id string) (bool, error)

	Statistics() []models.StatisticValue
	StatisticID(ctx context.Context) (string, error)
	UserName(ctx context.Context) (string, error)
	LinkData() *models.LinkData
}

type statisticsService struct {
	*Session
	cache       *cache.Statistics
	defaultName string

	mu       sync.RWMutex
	linkData *models.LinkData
}

// NewStatisticsService builds the service. defaultName is used on create
// when no name was given and none is remembered.
func NewStatisticsService(s *Session, defaultName string) StatisticsService {
	return &statisticsService{Session: s, cache: cache.New(), defaultName: defaultName}
}

// Share submits values. On success the returned id (if any) and name are
// remembered and the values are merged into the cache. Failures leave
// identity and cache untouched.
func (s *statisticsService) Share(ctx context.Context, values map[string]string, id, name string) (_ *models.UserStatistics, err error) {
	if name != "" && utf8.RuneCountInString(name) < MinUserNameLength {
		return nil, fmt.Errorf("%w: %q is shorter than %d characters", client.ErrInvalidName, name, MinUserNameLength)
	}

	release, err := s.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, span := telemetry.Start(ctx, "statistics.share")
	defer func() { telemetry.End(span, err) }()

	id, err = s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.api.EnsureValidToken(ctx); err != nil {
		s.logger.Warn(ctx, "share skipped, no access token", "error", err)
		return nil, err
	}

	var resp *models.StatisticResponse
	if id == "" {
		name, err = s.resolveName(ctx, name)
		if err != nil {
			return nil, err
		}
		span.SetAttributes(attribute.String("statistics.mode", "create"))
		resp, err = s.api.CreateStatistic(ctx, &models.StatisticRequest{Name: name, Values: values})
	} else {
		span.SetAttributes(attribute.String("statistics.mode", "update"), attribute.String("statistics.id", id))
		resp, err = s.api.UpdateStatistic(ctx, id, &models.StatisticRequest{Values: values})
	}
	if err != nil {
		s.logger.Warn(ctx, "share failed", "id", id, "error", err)
		return nil, err
	}

	s.cache.Merge(resp.Values)
	if err := s.identity.Remember(ctx, resp.ID, resp.Name); err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "statistics shared", "id", resp.ID, "name", resp.Name, "values", len(resp.Values))
	return resp.ToUserStatistics(), nil
}

func (s *statisticsService) resolveName(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	stored, err := s.identity.UserName(ctx)
	if err != nil {
		return "", err
	}
	if stored != "" {
		return stored, nil
	}
	return s.defaultName, nil
}

// GetStatistics fetches the remembered record. Auth, transport and status
// failures are reported as (nil, nil): callers treat "no stats yet" and
// "could not fetch" alike.
func (s *statisticsService) GetStatistics(ctx context.Context) (_ *models.UserStatistics, err error) {
	release, err := s.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	id, err := s.identity.StatisticID(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}

	ctx, span := telemetry.Start(ctx, "statistics.get", attribute.String("statistics.id", id))
	defer func() { telemetry.End(span, err) }()

	if err := s.api.EnsureValidToken(ctx); err != nil {
		s.logger.Debug(ctx, "statistics unavailable", "error", err)
		return nil, nil
	}
	stats, err := s.api.GetStatistic(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, client.ErrAuth), errors.Is(err, client.ErrUnavailable), errors.Is(err, client.ErrHTTPStatus):
		s.logger.Debug(ctx, "statistics unavailable", "id", id, "error", err)
		return nil, nil
	default:
		return nil, err
	}

	s.cache.Merge(stats.Statistics)
	return stats, nil
}

// LinkStatistic requests a link handshake for the record and keeps the
// returned payload for LinkData.
func (s *statisticsService) LinkStatistic(ctx context.Context, id string) (_ bool, err error) {
	release, err := s.enter(ctx)
	if err != nil {
		return false, err
	}
	defer release()

	ctx, span := telemetry.Start(ctx, "statistics.link")
	defer func() { telemetry.End(span, err) }()

	id, err = s.resolveID(ctx, id)
	if err != nil {
		return false, err
	}
	if id == "" {
		return false, client.ErrNoIdentity
	}
	span.SetAttributes(attribute.String("statistics.id", id))

	if err := s.api.EnsureValidToken(ctx); err != nil {
		s.logger.Warn(ctx, "link skipped, no access token", "error", err)
		return false, err
	}
	data, err := s.api.RequestLink(ctx, id)
	if err != nil {
		s.logger.Warn(ctx, "link failed", "id", id, "error", err)
		return false, err
	}

	s.mu.Lock()
	s.linkData = data
	s.mu.Unlock()
	return true, nil
}

// Statistics returns a copy of the cached values in cache order.
func (s *statisticsService) Statistics() []models.StatisticValue {
	return s.cache.Snapshot()
}

func (s *statisticsService) StatisticID(ctx context.Context) (string, error) {
	return s.identity.StatisticID(ctx)
}

func (s *statisticsService) UserName(ctx context.Context) (string, error) {
	return s.identity.UserName(ctx)
}

// LinkData returns the payload of the last successful LinkStatistic, or nil.
func (s *statisticsService) LinkData() *models.LinkData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.linkData
}
