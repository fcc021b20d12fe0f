package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/khoahotran/growth-tracker/pkg/logger"
)

const (
	pathProfiles     = "/profiles"
	pathSkills       = "/skills"
	pathGoals        = "/goals"
	pathAchievements = "/achievements"
	pathImport       = "/migrations/import"
)

// Client talks to the CRUD service. Each repository call is exactly one
// HTTP request.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  logger.Logger
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func NewClient(baseURL string, tokens TokenSource, log logger.Logger, opts ...ClientOption) *Client {
	if tokens == nil {
		tokens = StaticToken("")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
		logger:  log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Profiles() ProfileRepository {
	return &profileRepo{client: c}
}

func (c *Client) Skills() SkillRepository {
	return &collection[SkillRow]{client: c, path: pathSkills, ownerOf: func(r SkillRow) string { return r.UserID }}
}

func (c *Client) Goals() GoalRepository {
	return &collection[GoalRow]{client: c, path: pathGoals, ownerOf: func(r GoalRow) string { return r.UserID }}
}

func (c *Client) Achievements() AchievementRepository {
	return &collection[AchievementRow]{client: c, path: pathAchievements, ownerOf: func(r AchievementRow) string { return r.UserID }}
}

func (c *Client) Import(ctx context.Context, ownerID string, bundle Bundle) error {
	if ownerID == "" {
		return fmt.Errorf("%w: owner id is required", ErrInvalidRequest)
	}
	if err := c.check(bundle); err != nil {
		return err
	}
	query := url.Values{"user_id": {ownerID}}
	return c.do(ctx, http.MethodPost, pathImport, query, bundle, nil)
}

func (c *Client) check(v any) error {
	return Validate(v)
}

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate applies the row tags every request body must satisfy before it
// is sent. Store implementations other than Client call it too.
func Validate(v any) error {
	if err := requestValidator.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Method: method, Path: path, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &Error{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("Remote request", zap.String("method", method), zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Method: method, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorPayload
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(data, &payload) == nil {
			switch {
			case payload.Message != "":
				msg = payload.Message
			case payload.Error != "":
				msg = payload.Error
			}
		}
		return &Error{Method: method, Path: path, StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Method: method, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

type profileRepo struct {
	client *Client
}

func (r *profileRepo) Get(ctx context.Context, ownerID string) (*ProfileRow, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidRequest)
	}
	var row *ProfileRow
	if err := r.client.do(ctx, http.MethodGet, pathProfiles+"/"+url.PathEscape(ownerID), nil, nil, &row); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

func (r *profileRepo) Upsert(ctx context.Context, row ProfileRow) (*ProfileRow, error) {
	if err := r.client.check(row); err != nil {
		return nil, err
	}
	var saved ProfileRow
	if err := r.client.do(ctx, http.MethodPost, pathProfiles, nil, row, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

type collection[T any] struct {
	client  *Client
	path    string
	ownerOf func(T) string
}

func (r *collection[T]) List(ctx context.Context, ownerID string, opts ListOptions) ([]T, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidRequest)
	}
	query := url.Values{"user_id": {ownerID}}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	rows := make([]T, 0)
	if err := r.client.do(ctx, http.MethodGet, r.path, query, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *collection[T]) Create(ctx context.Context, row T) (*T, error) {
	if err := r.client.check(row); err != nil {
		return nil, err
	}
	var saved T
	if err := r.client.do(ctx, http.MethodPost, r.path, nil, row, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *collection[T]) Update(ctx context.Context, id string, row T) (*T, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidRequest)
	}
	if err := r.client.check(row); err != nil {
		return nil, err
	}
	query := url.Values{"user_id": {r.ownerOf(row)}}
	var saved T
	if err := r.client.do(ctx, http.MethodPut, r.path+"/"+url.PathEscape(id), query, row, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *collection[T]) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" || id == "" {
		return fmt.Errorf("%w: owner id and id are required", ErrInvalidRequest)
	}
	query := url.Values{"user_id": {ownerID}}
	return r.client.do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), query, nil, nil)
}

var _ Store = (*Client)(nil)
