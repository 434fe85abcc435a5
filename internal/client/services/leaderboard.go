package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/edcasillas/globalstats/internal/client/client"
	"github.com/edcasillas/globalstats/internal/client/models"
	"github.com/edcasillas/globalstats/internal/telemetry"
)

// MaxLeaderboardLimit is the largest number of entries requested per board.
const MaxLeaderboardLimit = 100

// LeaderboardService reads boards and the player's neighbourhood on them.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, boardID string, limit int) (*models.Leaderboard, error)
	GetStatisticsSection(ctx context.Context, boardID string) (*models.StatisticSection, error)
}

type leaderboardService struct {
	*Session
}

func NewLeaderboardService(s *Session) LeaderboardService {
	return &leaderboardService{Session: s}
}

// ClampLimit bounds limit to [0, MaxLeaderboardLimit].
func ClampLimit(limit int) int {
	return max(0, min(limit, MaxLeaderboardLimit))
}

// GetLeaderboard fetches the top of boardID. limit is clamped, never rejected.
func (s *leaderboardService) GetLeaderboard(ctx context.Context, boardID string, limit int) (_ *models.Leaderboard, err error) {
	if strings.TrimSpace(boardID) == "" {
		return nil, client.ErrEmptyBoardID
	}
	limit = ClampLimit(limit)

	release, err := s.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, span := telemetry.Start(ctx, "leaderboard.get",
		attribute.String("leaderboard.board", boardID), attribute.Int("leaderboard.limit", limit))
	defer func() { telemetry.End(span, err) }()

	if err := s.api.EnsureValidToken(ctx); err != nil {
		return nil, err
	}
	return s.api.GetLeaderboard(ctx, boardID, limit)
}

// GetStatisticsSection fetches the ranks around the player on boardID and
// flags the player's own entry. Without a remembered statistic id it fails
// with client.ErrNoIdentity before any network call.
func (s *leaderboardService) GetStatisticsSection(ctx context.Context, boardID string) (_ *models.StatisticSection, err error) {
	if strings.TrimSpace(boardID) == "" {
		return nil, client.ErrEmptyBoardID
	}

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
		s.logger.Error(ctx, "section requested before any statistic was shared", "board", boardID)
		return nil, client.ErrNoIdentity
	}

	ctx, span := telemetry.Start(ctx, "leaderboard.section",
		attribute.String("leaderboard.board", boardID), attribute.String("statistics.id", id))
	defer func() { telemetry.End(span, err) }()

	if err := s.api.EnsureValidToken(ctx); err != nil {
		return nil, err
	}
	section, err := s.api.GetSection(ctx, id, boardID)
	if err != nil {
		return nil, err
	}
	section.MarkSelf()
	return section, nil
}
