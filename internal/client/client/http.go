package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/jafa/internal/client/models"
	"github.com/dmitrijs2005/jafa/internal/logging"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	maxBodySize     = 4 << 20
)

// HTTPClient implements Client against the Jafa backend's JSON API.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the backend at baseURL. The API is
// expected under baseURL + "/api". jar carries the session cookie; a nil jar
// gets an in-memory one.
func NewHTTPClient(baseURL string, timeout time.Duration, jar http.CookieJar, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if jar == nil {
		jar = newInnerJar()
	}
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout, Jar: jar},
		logger:  logger.With("module", "client"),
	}, nil
}

type envelope struct {
	Msg json.RawMessage `json:"msg"`
}

type errorBody struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/api" + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends one request and returns the raw success body. Non-2xx answers
// are turned into *APIError or ErrUnauthorized.
func (c *HTTPClient) do(ctx context.Context, method, path string, query, form url.Values) ([]byte, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	c.logger.Debug(ctx, "request", "method", method, "path", path, "request_id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.logger.Debug(ctx, "response", "path", path, "status", resp.StatusCode, "request_id", reqID)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	return nil, mapError(resp.StatusCode, data)
}

func mapError(status int, data []byte) error {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil || eb.Error == "" {
		if status == http.StatusUnauthorized {
			return ErrUnauthorized
		}
		return &APIError{Status: status, Message: http.StatusText(status)}
	}
	return &APIError{Status: status, Type: eb.Type, Message: eb.Error}
}

// message extracts the "msg" string of a success body. Non-string payloads
// are returned verbatim.
func message(data []byte) (string, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	var s string
	if err := json.Unmarshal(env.Msg, &s); err != nil {
		return string(env.Msg), nil
	}
	return s, nil
}

func (c *HTTPClient) postForm(ctx context.Context, path string, form url.Values) (string, error) {
	data, err := c.do(ctx, http.MethodPost, path, nil, form)
	if err != nil {
		return "", err
	}
	return message(data)
}

// CurrentUser returns the signed-in user, or nil when the backend has no
// session for the caller. The user object may come bare or wrapped in "msg".
func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	data, err := c.do(ctx, http.MethodGet, "/user/get", nil, nil)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, nil
		}
		return nil, err
	}

	var body struct {
		Msg *models.User `json:"msg"`
		models.User
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}

	u := body.User
	if body.Msg != nil && !body.Msg.Empty() {
		u = *body.Msg
	}
	if u.Empty() {
		return nil, nil
	}
	return &u, nil
}

func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (string, error) {
	return c.postForm(ctx, "/user/login", url.Values{
		"username": {username},
		"password": {string(password)},
	})
}

func (c *HTTPClient) Register(ctx context.Context, username string, password []byte) (string, error) {
	return c.postForm(ctx, "/user/register", url.Values{
		"username": {username},
		"password": {string(password)},
	})
}

func (c *HTTPClient) Logout(ctx context.Context) (string, error) {
	data, err := c.do(ctx, http.MethodGet, "/user/logout", nil, nil)
	if err != nil {
		return "", err
	}
	return message(data)
}

func (c *HTTPClient) Vote(ctx context.Context, postID string, isLike bool) (string, error) {
	return c.postForm(ctx, "/post/vote", url.Values{
		"post_id": {postID},
		"is_like": {strconv.FormatBool(isLike)},
	})
}

func (c *HTTPClient) ListPosts(ctx context.Context, page int) (*models.PostPage, error) {
	return c.listPosts(ctx, "", page)
}

func (c *HTTPClient) ListSubforumPosts(ctx context.Context, subforum string, page int) (*models.PostPage, error) {
	return c.listPosts(ctx, subforum, page)
}

func (c *HTTPClient) listPosts(ctx context.Context, subforum string, page int) (*models.PostPage, error) {
	q := url.Values{}
	if subforum != "" {
		q.Set("subforum", subforum)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}

	data, err := c.do(ctx, http.MethodGet, "/post/list", q, nil)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode post list: %w", err)
	}

	out := &models.PostPage{Page: page}
	trimmed := strings.TrimSpace(string(env.Msg))
	switch {
	case trimmed == "" || trimmed == "null":
	case strings.HasPrefix(trimmed, "["):
		if err := json.Unmarshal(env.Msg, &out.Posts); err != nil {
			return nil, fmt.Errorf("decode post list: %w", err)
		}
	default:
		if err := json.Unmarshal(env.Msg, out); err != nil {
			return nil, fmt.Errorf("decode post list: %w", err)
		}
	}
	return out, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, d models.PostDraft) (string, error) {
	form := url.Values{
		"subforum": {d.Subforum},
		"title":    {d.Title},
		"body":     {d.Body},
	}
	if len(d.Tags) > 0 {
		form.Set("tags", strings.Join(d.Tags, ","))
	}
	return c.postForm(ctx, "/post/create", form)
}

func (c *HTTPClient) CreateSubforum(ctx context.Context, d models.SubforumDraft) (string, error) {
	return c.postForm(ctx, "/subforum/create", url.Values{
		"title":       {d.Title},
		"description": {d.Description},
	})
}
