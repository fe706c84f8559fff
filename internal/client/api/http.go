package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/portalcli/internal/common"
)

// HTTPClient is the concrete Client talking JSON over HTTP(S).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
	clientID   string
}

// NewHTTPClient constructs a client for the Portal API at baseURL.
// clientID, when non-empty, is sent on every request so the server can
// correlate sessions issued to the same install.
func NewHTTPClient(baseURL string, timeout time.Duration, clientID string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		clientID:   clientID,
	}
}

// SetToken installs the bearer token attached to authenticated calls.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+c.token)
	}
	if c.clientID != "" {
		req.Header.Set(common.ClientIDHeaderName, c.clientID)
	}
	return req, nil
}

// do executes the request and returns the response body on 2xx.
// Transport failures map to ErrUnavailable; non-2xx statuses are mapped
// by mapStatus.
func (c *HTTPClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, errors.Join(ErrUnavailable, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading body: %w", req.Method, req.URL.Path, errors.Join(ErrUnavailable, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, mapStatus(resp.StatusCode, body)
	}
	return body, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	contentType := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// mapStatus converts a non-2xx response into one of the error
// categories of this package.
func mapStatus(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized

	case status == http.StatusTooManyRequests:
		var hint struct {
			RetryAfter int `json:"retryAfter"`
		}
		_ = json.Unmarshal(body, &hint)
		return &RateLimitError{RetryAfter: hint.RetryAfter}

	case status >= 500:
		return fmt.Errorf("http %d: %w", status, ErrUnavailable)

	default:
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &e)
		return &APIError{StatusCode: status, Message: e.Error}
	}
}

// ---- auth endpoints ----

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		Session string `json:"session"`
		User    *User  `json:"user"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Endpoint: "/api/auth/login", Err: err}
	}
	if !resp.Success || resp.Token == "" || resp.User == nil {
		return nil, &ParseError{Endpoint: "/api/auth/login", Err: errors.New("missing success/token/user")}
	}
	return &LoginResult{Token: resp.Token, SessionToken: resp.Session, User: resp.User}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success              bool   `json:"success"`
		Token                string `json:"token"`
		User                 *User  `json:"user"`
		RequiresVerification bool   `json:"requiresVerification"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Endpoint: "/api/auth/register", Err: err}
	}
	if !resp.Success || resp.User == nil {
		return nil, &ParseError{Endpoint: "/api/auth/register", Err: errors.New("missing success/user")}
	}
	return &RegisterResult{
		Token:                resp.Token,
		User:                 resp.User,
		RequiresVerification: resp.RequiresVerification,
	}, nil
}

func (c *HTTPClient) Verify(ctx context.Context) (*User, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/api/auth/verify", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Endpoint: "/api/auth/verify", Err: err}
	}
	if resp.User == nil {
		return nil, &ParseError{Endpoint: "/api/auth/verify", Err: errors.New("missing user")}
	}
	return resp.User, nil
}

// Logout notifies the server; the local token is cleared by the caller
// regardless of the outcome.
func (c *HTTPClient) Logout(ctx context.Context, sessionToken string) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout", map[string]string{
		"sessionToken": sessionToken,
	})
	return err
}

// ---- admin endpoints ----

func (c *HTTPClient) ListUsers(ctx context.Context) ([]*User, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/api/admin/users", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Users []*User `json:"users"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Endpoint: "/api/admin/users", Err: err}
	}
	if resp.Users == nil {
		return nil, &ParseError{Endpoint: "/api/admin/users", Err: errors.New("missing users")}
	}
	return resp.Users, nil
}

func (c *HTTPClient) patchUser(ctx context.Context, id int64, field string, value bool) error {
	path := fmt.Sprintf("/api/admin/users/%d", id)
	_, err := c.doJSON(ctx, http.MethodPatch, path, map[string]bool{field: value})
	return err
}

func (c *HTTPClient) SetUserAdmin(ctx context.Context, id int64, admin bool) error {
	return c.patchUser(ctx, id, "isAdmin", admin)
}

func (c *HTTPClient) SetUserActive(ctx context.Context, id int64, active bool) error {
	return c.patchUser(ctx, id, "isActive", active)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", id), nil)
	return err
}

func (c *HTTPClient) ListLocations(ctx context.Context) ([]*Location, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/api/admin/locations", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Locations []*Location `json:"locations"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Endpoint: "/api/admin/locations", Err: err}
	}
	if resp.Locations == nil {
		return nil, &ParseError{Endpoint: "/api/admin/locations", Err: errors.New("missing locations")}
	}
	return resp.Locations, nil
}

func (c *HTTPClient) DeleteLocation(ctx context.Context, id int64) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/locations/%d", id), nil)
	return err
}

func (c *HTTPClient) DeletePhoto(ctx context.Context, id int64) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/photos/%d", id), nil)
	return err
}

func (c *HTTPClient) TableRows(ctx context.Context, name string) (*Table, error) {
	path := "/api/admin/tables/" + url.PathEscape(name)
	body, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Endpoint: path, Err: err}
	}
	if resp.Columns == nil {
		return nil, &ParseError{Endpoint: path, Err: errors.New("missing columns")}
	}
	return &Table{Name: name, Columns: resp.Columns, Rows: resp.Rows}, nil
}

// ---- photos ----

func (c *HTTPClient) UploadPhoto(ctx context.Context, filename string, data []byte) (*Photo, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/photos", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool   `json:"success"`
		Photo   *Photo `json:"photo"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Endpoint: "/api/photos", Err: err}
	}
	if !resp.Success || resp.Photo == nil {
		return nil, &ParseError{Endpoint: "/api/photos", Err: errors.New("missing success/photo")}
	}
	return resp.Photo, nil
}
