package client

import (
	"context"

	"github.com/edcasillas/globalstats/internal/client/models"
)

// API is the transport-agnostic contract with the globalstats service.
// Every method except EnsureValidToken needs, and obtains, a valid token.
type API interface {
	EnsureValidToken(ctx context.Context) error
	CreateStatistic(ctx context.Context, req *models.StatisticRequest) (*models.StatisticResponse, error)
	UpdateStatistic(ctx context.Context, id string, req *models.StatisticRequest) (*models.StatisticResponse, error)
	GetStatistic(ctx context.Context, id string) (*models.UserStatistics, error)
	GetSection(ctx context.Context, id string, boardID string) (*models.StatisticSection, error)
	GetLeaderboard(ctx context.Context, boardID string, limit int) (*models.Leaderboard, error)
	RequestLink(ctx context.Context, id string) (*models.LinkData, error)
}
