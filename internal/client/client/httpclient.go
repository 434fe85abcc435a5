package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/edcasillas/globalstats/internal/client/models"
	"github.com/edcasillas/globalstats/internal/logging"
	"github.com/edcasillas/globalstats/internal/netx"
)

const (
	tokenPath      = "oauth/access_token"
	tokenScope     = "endpoint_client"
	statisticsPath = "v1/statistics"
)

// Credentials identify the API client for the client-credentials grant.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// HTTPClient implements API over the globalstats REST endpoints. It owns a
// TokenManager and attaches the bearer token to every domain call.
type HTTPClient struct {
	doer   netx.Doer
	creds  Credentials
	tokens *TokenManager
	logger logging.Logger
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*httpOptions)

type httpOptions struct {
	logger logging.Logger
	now    func() time.Time
}

// WithLogger sets the logger. Request and response bodies are logged at Debug.
func WithLogger(l logging.Logger) HTTPOption {
	return func(o *httpOptions) { o.logger = l }
}

// WithClock overrides the clock used for token validity.
func WithClock(now func() time.Time) HTTPOption {
	return func(o *httpOptions) { o.now = now }
}

// NewHTTPClient builds a client that sends requests through doer.
func NewHTTPClient(doer netx.Doer, creds Credentials, opts ...HTTPOption) *HTTPClient {
	o := httpOptions{logger: logging.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	c := &HTTPClient{doer: doer, creds: creds, logger: o.logger}
	c.tokens = NewTokenManager(c.requestToken, o.logger, o.now)
	return c
}

// Tokens exposes the token manager.
func (c *HTTPClient) Tokens() *TokenManager { return c.tokens }

// EnsureValidToken implements API.
func (c *HTTPClient) EnsureValidToken(ctx context.Context) error {
	return c.tokens.EnsureValidToken(ctx)
}

func (c *HTTPClient) requestToken(ctx context.Context) (*models.AccessToken, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", tokenScope)
	form.Set("client_id", c.creds.ClientID)
	form.Set("client_secret", c.creds.ClientSecret)

	resp, err := c.doer.Do(ctx, &netx.Request{
		Method: http.MethodPost,
		Path:   tokenPath,
		Header: http.Header{"Content-Type": []string{"application/x-www-form-urlencoded"}},
		Body:   []byte(form.Encode()),
	})
	if err != nil {
		return nil, c.mapError(err)
	}
	if !resp.OK() {
		return nil, statusError(resp)
	}

	var tok models.AccessToken
	if err := json.Unmarshal(resp.Body, &tok); err != nil {
		return nil, fmt.Errorf("%w: access token: %v", ErrParse, err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: access token missing", ErrParse)
	}
	return &tok, nil
}

// CreateStatistic submits a new statistic record.
func (c *HTTPClient) CreateStatistic(ctx context.Context, req *models.StatisticRequest) (*models.StatisticResponse, error) {
	var out models.StatisticResponse
	if err := c.call(ctx, http.MethodPost, statisticsPath, statisticsPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatistic submits values for an existing record.
func (c *HTTPClient) UpdateStatistic(ctx context.Context, id string, req *models.StatisticRequest) (*models.StatisticResponse, error) {
	var out models.StatisticResponse
	path := statisticsPath + "/" + url.PathEscape(id)
	if err := c.call(ctx, http.MethodPut, path, statisticsPath+"/{id}", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStatistic fetches a record by id.
func (c *HTTPClient) GetStatistic(ctx context.Context, id string) (*models.UserStatistics, error) {
	out := &models.UserStatistics{}
	path := statisticsPath + "/" + url.PathEscape(id)
	if err := c.call(ctx, http.MethodGet, path, statisticsPath+"/{id}", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSection fetches the ranked neighbourhood of id on boardID.
func (c *HTTPClient) GetSection(ctx context.Context, id string, boardID string) (*models.StatisticSection, error) {
	var out models.StatisticSection
	path := fmt.Sprintf("%s/%s/section/%s", statisticsPath, url.PathEscape(id), url.PathEscape(boardID))
	if err := c.call(ctx, http.MethodGet, path, statisticsPath+"/{id}/section/{board}", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLeaderboard fetches the top limit entries of boardID. limit is sent as given.
func (c *HTTPClient) GetLeaderboard(ctx context.Context, boardID string, limit int) (*models.Leaderboard, error) {
	var out models.Leaderboard
	body := struct {
		Limit int `json:"limit"`
	}{limit}
	path := "v1/gtdleaderboard/" + url.PathEscape(boardID)
	if err := c.call(ctx, http.MethodPost, path, "v1/gtdleaderboard/{board}", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestLink asks for a link handshake for record id.
func (c *HTTPClient) RequestLink(ctx context.Context, id string) (*models.LinkData, error) {
	var out models.LinkData
	path := fmt.Sprintf("v1/statisticlinks/%s/request", url.PathEscape(id))
	if err := c.call(ctx, http.MethodPost, path, "v1/statisticlinks/{id}/request", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// call performs an authenticated JSON request. in may be nil for bodiless
// requests; out receives the decoded body.
func (c *HTTPClient) call(ctx context.Context, method, path, route string, in any, out any) error {
	if err := c.tokens.EnsureValidToken(ctx); err != nil {
		return err
	}

	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", route, err)
		}
		body = b
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.tokens.AccessToken())

	c.logger.Debug(ctx, "globalstats request", "method", method, "path", path, "body", string(body))

	resp, err := c.doer.Do(ctx, &netx.Request{Method: method, Path: path, Route: route, Header: header, Body: body})
	if err != nil {
		return c.mapError(err)
	}

	c.logger.Debug(ctx, "globalstats response", "status", resp.StatusCode, "request_id", resp.RequestID, "body", string(resp.Body))

	if !resp.OK() {
		if resp.StatusCode == http.StatusUnauthorized {
			c.tokens.Clear()
		}
		return statusError(resp)
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrParse, route, err)
	}
	return nil
}

func (c *HTTPClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, netx.ErrNetwork),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return fmt.Errorf("request error: %w", err)
	}
}

func statusError(resp *netx.Response) error {
	return &StatusError{
		Code:      resp.StatusCode,
		Body:      strings.TrimSpace(string(resp.Body)),
		RequestID: resp.RequestID,
	}
}
