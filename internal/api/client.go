// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vrcgroup/vrcgroup-cli/internal/cache"
	"github.com/vrcgroup/vrcgroup-cli/internal/errors"
	"github.com/vrcgroup/vrcgroup-cli/internal/models"
	"github.com/vrcgroup/vrcgroup-cli/internal/utils"
	"github.com/vrcgroup/vrcgroup-cli/pkg/version"
)

const (
	DefaultAPIURL  = "https://api.vrchat.cloud/api/1"
	DefaultTimeout = 30 * time.Second

	authCookieName  = "auth"
	requestIDHeader = "X-Request-ID"
)

// Client talks to the VRChat API on behalf of the user owning the auth
// token. Requests are sent once; failures are returned to the caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	debug      bool
	logger     *slog.Logger
	session    *cache.SessionCache
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSessionCache shares a session cache between clients
func WithSessionCache(s *cache.SessionCache) Option {
	return func(c *Client) {
		if s != nil {
			c.session = s
		}
	}
}

func NewClient(token, baseURL string, debug bool, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		debug:   debug,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.session == nil {
		c.session = cache.NewSessionCache()
	}
	return c
}

// BaseURL returns the API root the client sends requests to
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: c.token})
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.debug {
		c.logger.Debug("API request",
			"method", method,
			"url", req.URL.String(),
			"request_id", requestID,
			"cookie", utils.RedactCookieHeader(req.Header.Get("Cookie")),
			"has_body", body != nil,
		)
		if body != nil {
			b, _ := json.Marshal(body)
			c.logger.Debug("Request body", "request_id", requestID, "body", string(b))
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &errors.NetworkError{
			Err:       fmt.Errorf("%s", utils.SanitizeErrorMessage(err, c.token)),
			Operation: fmt.Sprintf("%s %s", method, path),
			URL:       c.baseURL + path,
		}
	}

	if c.debug {
		c.logger.Debug("API response",
			"request_id", requestID,
			"status", resp.Status,
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	}

	return resp, nil
}

// call sends one request, checks the status and decodes the body into out
// when out is not nil
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := ValidateResponseOKOrNoContent(resp); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if c.debug {
		c.logger.Debug("Response body", "path", path, "bytes", len(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// VerifyAuth fetches the authenticated user, bypassing the cache
func (c *Client) VerifyAuth(ctx context.Context) (*models.UserInfo, error) {
	if c.token == "" {
		return nil, errors.NoTokenError()
	}

	var user models.UserInfo
	if err := c.call(ctx, http.MethodGet, EndpointCurrentUser, nil, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, &errors.AuthError{Message: "response did not include a user ID", Reason: "invalid_user"}
	}

	c.session.SetUser(user)
	return &user, nil
}

// CurrentUser returns the authenticated user, cached for cache.UserTTL
func (c *Client) CurrentUser(ctx context.Context) (*models.UserInfo, error) {
	if user, ok := c.session.GetUser(); ok {
		return user, nil
	}
	return c.VerifyAuth(ctx)
}

// ListGroups returns every group the authenticated user belongs to
func (c *Client) ListGroups(ctx context.Context) ([]models.Group, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	var groups []models.Group
	if err := c.call(ctx, http.MethodGet, UserGroupsURL(user.ID), nil, &groups); err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []models.Group{}
	}
	return groups, nil
}

// RepresentedGroup returns the group the user currently represents, or
// nil when there is none
func (c *Client) RepresentedGroup(ctx context.Context) (*models.Group, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.call(ctx, http.MethodGet, RepresentedGroupURL(user.ID), nil, &raw); err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodeRepresentedGroup(raw)
}

// decodeRepresentedGroup accepts a single group object or a list of groups
func decodeRepresentedGroup(raw json.RawMessage) (*models.Group, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var groups []models.Group
		if err := json.Unmarshal(trimmed, &groups); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		for i := range groups {
			if groups[i].ID != "" {
				groups[i].IsRepresenting = true
				return &groups[i], nil
			}
		}
		return nil, nil
	}

	var probe struct {
		ID string `json:"groupId"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if probe.ID == "" {
		return nil, nil
	}
	var group models.Group
	if err := json.Unmarshal(trimmed, &group); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	group.IsRepresenting = true
	return &group, nil
}

// SetVisibility changes how the user's membership of groupID is shown
func (c *Client) SetVisibility(ctx context.Context, groupID string, visibility models.Visibility) error {
	if groupID == "" {
		return &errors.ValidationError{Field: "groupId", Message: "group ID cannot be empty"}
	}
	if _, err := models.ParseVisibility(string(visibility)); err != nil {
		return &errors.ValidationError{Field: "visibility", Value: string(visibility), Message: err.Error()}
	}

	user, err := c.CurrentUser(ctx)
	if err != nil {
		return err
	}

	body := map[string]string{"visibility": string(visibility)}
	return c.call(ctx, http.MethodPut, GroupMemberURL(groupID, user.ID), body, nil)
}

// SetRepresentation makes groupID the represented group, or stops
// representing it when representing is false
func (c *Client) SetRepresentation(ctx context.Context, groupID string, representing bool) error {
	if groupID == "" {
		return &errors.ValidationError{Field: "groupId", Message: "group ID cannot be empty"}
	}

	body := map[string]bool{"isRepresenting": representing}
	return c.call(ctx, http.MethodPut, GroupRepresentationURL(groupID), body, nil)
}
