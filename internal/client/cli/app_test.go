package cli

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edcasillas/globalstats/internal/client/client"
	"github.com/edcasillas/globalstats/internal/client/config"
	"github.com/edcasillas/globalstats/internal/client/models"
	"github.com/edcasillas/globalstats/internal/client/services"
	"github.com/edcasillas/globalstats/internal/logging"
	"github.com/edcasillas/globalstats/internal/netx"
)

type fakeStats struct {
	services.StatisticsService

	shareArgs shareArgs
	shareResp *models.UserStatistics
	shareErr  error

	getResp *models.UserStatistics

	linkID   string
	linkData *models.LinkData

	cached []models.StatisticValue
	id     string
	name   string
}

func (f *fakeStats) Share(_ context.Context, values map[string]string, id, name string) (*models.UserStatistics, error) {
	f.shareArgs = shareArgs{values: values, id: id, name: name}
	return f.shareResp, f.shareErr
}
func (f *fakeStats) GetStatistics(context.Context) (*models.UserStatistics, error) {
	return f.getResp, nil
}
func (f *fakeStats) LinkStatistic(_ context.Context, id string) (bool, error) {
	f.linkID = id
	return true, nil
}
func (f *fakeStats) LinkData() *models.LinkData                       { return f.linkData }
func (f *fakeStats) Statistics() []models.StatisticValue              { return f.cached }
func (f *fakeStats) StatisticID(context.Context) (string, error)      { return f.id, nil }
func (f *fakeStats) UserName(context.Context) (string, error)         { return f.name, nil }

type fakeBoards struct {
	board      *models.Leaderboard
	section    *models.StatisticSection
	sectionErr error
	limit      int
}

func (f *fakeBoards) GetLeaderboard(_ context.Context, _ string, limit int) (*models.Leaderboard, error) {
	f.limit = limit
	return f.board, nil
}
func (f *fakeBoards) GetStatisticsSection(context.Context, string) (*models.StatisticSection, error) {
	return f.section, f.sectionErr
}

func newTestApp(t *testing.T, stats *fakeStats, boards *fakeBoards) (*App, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var out bytes.Buffer
	return &App{stats: stats, boards: boards, logger: logging.Nop(), out: &out}, &out
}

func TestApp_ShareRendersResult(t *testing.T) {
	stats := &fakeStats{shareResp: models.NewUserStatistics("anon", []models.StatisticValue{
		{Key: "score", Value: "100", Rank: "4", ValueChange: "20"},
	})}
	app, out := newTestApp(t, stats, &fakeBoards{})

	require.NoError(t, app.Share(context.Background(), []string{"score=100", "-name", "anon"}))
	assert.Equal(t, map[string]string{"score": "100"}, stats.shareArgs.values)
	assert.Equal(t, "anon", stats.shareArgs.name)
	assert.Contains(t, out.String(), "anon")
	assert.Contains(t, out.String(), "score")
	assert.Contains(t, out.String(), "+20")
}

func TestApp_ShareUsage(t *testing.T) {
	app, out := newTestApp(t, &fakeStats{}, &fakeBoards{})
	require.Error(t, app.Share(context.Background(), nil))
	assert.Contains(t, out.String(), "Usage: share")
}

func TestApp_GetWithoutStats(t *testing.T) {
	app, out := newTestApp(t, &fakeStats{}, &fakeBoards{})
	require.NoError(t, app.Get(context.Background()))
	assert.Contains(t, out.String(), "No statistics yet")
}

func TestApp_Link(t *testing.T) {
	stats := &fakeStats{linkData: models.NewLinkData([]byte(`{"token":"hs"}`))}
	app, out := newTestApp(t, stats, &fakeBoards{})

	require.NoError(t, app.Link(context.Background(), []string{"abc"}))
	assert.Equal(t, "abc", stats.linkID)
	assert.Contains(t, out.String(), `{"token":"hs"}`)
}

func TestApp_BoardParsesLimit(t *testing.T) {
	boards := &fakeBoards{board: &models.Leaderboard{Data: []models.LeaderboardValue{
		{Name: "alice", Rank: "1", Value: "900"},
		{Name: "bob", Rank: "2", Value: "800"},
	}}}
	app, out := newTestApp(t, &fakeStats{}, boards)

	require.NoError(t, app.Board(context.Background(), []string{"score", "25"}))
	assert.Equal(t, 25, boards.limit)
	assert.Contains(t, out.String(), "alice")
	assert.NotContains(t, out.String(), "<- you")

	require.NoError(t, app.Board(context.Background(), []string{"score"}))
	assert.Equal(t, defaultBoardLimit, boards.limit)

	require.Error(t, app.Board(context.Background(), []string{"score", "lots"}))
	require.ErrorIs(t, app.Board(context.Background(), nil), client.ErrEmptyBoardID)
}

func TestApp_SectionHighlightsSelf(t *testing.T) {
	section := &models.StatisticSection{
		BetterRanks: models.RanksData{Data: []models.LeaderboardValue{{Name: "A", Rank: "1"}}},
		UserRank:    models.LeaderboardValue{Name: "P", Rank: "2"},
		WorseRanks:  models.RanksData{Data: []models.LeaderboardValue{{Name: "C", Rank: "3"}}},
	}
	app, out := newTestApp(t, &fakeStats{}, &fakeBoards{section: section})

	require.NoError(t, app.Section(context.Background(), []string{"score"}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.NotContains(t, lines[0], "<- you")
	assert.Contains(t, lines[1], "P")
	assert.Contains(t, lines[1], "<- you")
	assert.NotContains(t, lines[2], "<- you")
}

func TestApp_SectionWithoutIdentity(t *testing.T) {
	app, out := newTestApp(t, &fakeStats{}, &fakeBoards{sectionErr: client.ErrNoIdentity})

	err := app.Section(context.Background(), []string{"score"})
	require.ErrorIs(t, err, client.ErrNoIdentity)
	assert.Contains(t, out.String(), "Share a statistic first")
}

func TestApp_StatsAndWhoAmI(t *testing.T) {
	stats := &fakeStats{id: "abc123", name: "anon", cached: []models.StatisticValue{{Key: "score", Value: "100", Rank: "1"}}}
	app, out := newTestApp(t, stats, &fakeBoards{})

	require.NoError(t, app.Stats(context.Background()))
	require.NoError(t, app.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "score")
	assert.Contains(t, out.String(), "id:   abc123")
	assert.Contains(t, out.String(), "name: anon")
	assert.Equal(t, "(anon)", app.status(context.Background())())
}

func TestApp_WhoAmIWithoutIdentity(t *testing.T) {
	app, out := newTestApp(t, &fakeStats{}, &fakeBoards{})

	require.NoError(t, app.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "id:   (none)")
	assert.Equal(t, "(new player)", app.status(context.Background())())
}

func TestApp_Metrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	tr, err := netx.NewHTTPTransport(srv.URL, netx.WithMetrics(netx.NewMetrics(reg)))
	require.NoError(t, err)
	_, err = tr.Do(context.Background(), &netx.Request{Method: http.MethodGet, Path: "v1/statistics/a", Route: "v1/statistics/{id}"})
	require.NoError(t, err)

	app, out := newTestApp(t, &fakeStats{}, &fakeBoards{})
	app.registry = reg

	require.NoError(t, app.Metrics(context.Background()))
	assert.Contains(t, out.String(), "globalstats_requests_total")
	assert.Contains(t, out.String(), `endpoint="v1/statistics/{id}"`)
}

func TestNewApp_WiresServices(t *testing.T) {
	var cfg config.Config
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "gs.db")
	cfg.ClientID = "id"
	cfg.ClientSecret = "secret"

	app, err := NewApp(context.Background(), &cfg, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	id, err := app.stats.StatisticID(context.Background())
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestPromptCredentials(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return []byte("typed-secret"), nil }

	cfg := &config.Config{}
	var out bytes.Buffer
	require.NoError(t, PromptCredentials(cfg, bufio.NewReader(strings.NewReader("typed-id\n")), &out))
	assert.Equal(t, "typed-id", cfg.ClientID)
	assert.Equal(t, "typed-secret", cfg.ClientSecret)

	cfg = &config.Config{ClientID: "a", ClientSecret: "b"}
	require.NoError(t, PromptCredentials(cfg, bufio.NewReader(strings.NewReader("")), &out))
	assert.Equal(t, "a", cfg.ClientID)
}
