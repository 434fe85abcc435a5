package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/edcasillas/globalstats/internal/client/client"
	"github.com/edcasillas/globalstats/internal/client/identity"
	"github.com/edcasillas/globalstats/internal/client/models"
	"github.com/edcasillas/globalstats/internal/client/repositories/metadata"
	"github.com/edcasillas/globalstats/internal/logging"
)

type fakeAPI struct {
	client.API

	mu sync.Mutex

	TokenErr error

	CreateResp *models.StatisticResponse
	UpdateResp *models.StatisticResponse
	ShareErr   error

	GetResp *models.UserStatistics
	GetErr  error

	Board    *models.Leaderboard
	BoardErr error

	Section    *models.StatisticSection
	SectionErr error

	Link    *models.LinkData
	LinkErr error

	calls    []string
	requests []*models.StatisticRequest
	limits   []int
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) EnsureValidToken(context.Context) error {
	f.record("token")
	return f.TokenErr
}

func (f *fakeAPI) CreateStatistic(_ context.Context, req *models.StatisticRequest) (*models.StatisticResponse, error) {
	f.record("create")
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.CreateResp, f.ShareErr
}

func (f *fakeAPI) UpdateStatistic(_ context.Context, id string, req *models.StatisticRequest) (*models.StatisticResponse, error) {
	f.record("update " + id)
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.UpdateResp, f.ShareErr
}

func (f *fakeAPI) GetStatistic(_ context.Context, id string) (*models.UserStatistics, error) {
	f.record("get " + id)
	return f.GetResp, f.GetErr
}

func (f *fakeAPI) GetSection(_ context.Context, id, boardID string) (*models.StatisticSection, error) {
	f.record(fmt.Sprintf("section %s %s", id, boardID))
	return f.Section, f.SectionErr
}

func (f *fakeAPI) GetLeaderboard(_ context.Context, boardID string, limit int) (*models.Leaderboard, error) {
	f.record("board " + boardID)
	f.mu.Lock()
	f.limits = append(f.limits, limit)
	f.mu.Unlock()
	return f.Board, f.BoardErr
}

func (f *fakeAPI) RequestLink(_ context.Context, id string) (*models.LinkData, error) {
	f.record("link " + id)
	return f.Link, f.LinkErr
}

type logEntry struct {
	level string
	msg   string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries *[]logEntry
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{entries: &[]logEntry{}}
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	*l.entries = append(*l.entries, logEntry{level, msg})
	l.mu.Unlock()
}

func (l *recordingLogger) Debug(_ context.Context, msg string, _ ...any) { l.add("debug", msg) }
func (l *recordingLogger) Info(_ context.Context, msg string, _ ...any)  { l.add("info", msg) }
func (l *recordingLogger) Warn(_ context.Context, msg string, _ ...any)  { l.add("warn", msg) }
func (l *recordingLogger) Error(_ context.Context, msg string, _ ...any) { l.add("error", msg) }
func (l *recordingLogger) With(...any) logging.Logger                   { return l }

func (l *recordingLogger) Levels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(*l.entries))
	for _, e := range *l.entries {
		out = append(out, e.level)
	}
	return out
}

type fixture struct {
	api    *fakeAPI
	ids    *identity.Store
	logger *recordingLogger
	sess   *Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := &fakeAPI{}
	ids := identity.NewStore(metadata.NewMemoryRepository())
	logger := newRecordingLogger()
	return &fixture{api: api, ids: ids, logger: logger, sess: NewSession(api, ids, logger)}
}
