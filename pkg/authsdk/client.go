package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a typed client for the depot auth service. Unauthenticated
// operations hang off Client; Login and VerifyMFA hand back a Session for
// the authenticated surface.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/v1/auth/register", req, "", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login performs the password step. When the returned response has
// RequiresMFA set, call VerifyMFA to finish; Session is nil in that case.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, *Session, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{Email: email, Password: password}, "", &resp)
	if err != nil {
		return nil, nil, err
	}
	if resp.RequiresMFA {
		return &resp, nil, nil
	}
	return &resp, &Session{client: c, token: resp.Token}, nil
}

// VerifyMFA completes a login that required MFA.
func (c *Client) VerifyMFA(ctx context.Context, req MFAVerifyRequest) (*AuthResponse, *Session, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/mfa/verify", req, "", &resp); err != nil {
		return nil, nil, err
	}
	return &resp, &Session{client: c, token: resp.Token}, nil
}

// NewSessionFromToken wraps an existing session token, e.g. one persisted
// from an earlier login.
func (c *Client) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// Livez reports process liveness.
func (c *Client) Livez(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/livez", nil, "", nil)
}

// Readyz reports readiness, including store connectivity.
func (c *Client) Readyz(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/readyz", nil, "", nil)
}

// do performs one request, marshaling body (when non-nil) and unmarshaling
// a 2xx response into out (when non-nil). Non-2xx responses come back as
// *APIError.
func (c *Client) do(ctx context.Context, method, path string, body any, token string, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseAPIError turns an error response into *APIError, tolerating bodies
// that are not the expected JSON shape.
func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    resp.Status,
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	var body ErrorResponse
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		apiErr.Code = body.Error
		apiErr.Message = body.Message
	}
	return apiErr
}
