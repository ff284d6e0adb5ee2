// Package client is the Go SDK for the fintrack API. It owns the session
// lifecycle on the caller's side: attaching the stored token to requests and
// tearing the session down when the server reports it expired.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"fintrack-platform/pkg/client/session"
)

// CodeExpiredToken is the wire error code that forces a logout. It is the
// only signal on which the client invalidates its stored token.
const CodeExpiredToken = "EXPIREDTOKEN"

// Navigator performs a hard navigation, abandoning all in-memory state.
type Navigator interface {
	Navigate(url string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(url string)

func (f NavigatorFunc) Navigate(url string) { f(url) }

// APIError is a structured error response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

// Client calls the fintrack API. All methods are safe for concurrent use.
type Client struct {
	// HTTPClient may be replaced before first use.
	HTTPClient *http.Client

	baseURL string
	store   *session.Store
	nav     Navigator

	// expireMu serializes expiry handling so racing responses converge on a
	// single clear + navigate.
	expireMu sync.Mutex
}

func New(baseURL string, store *session.Store, nav Navigator) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		nav:        nav,
	}
}

// do sends one request. The stored raw token, when present, rides in the
// Authorization header as-is; requests without a session go out bare.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.store.Token(); ok && token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &envelope) == nil {
			apiErr.Code = envelope.Code
			apiErr.Message = envelope.Message
		}
		if apiErr.Code == CodeExpiredToken {
			c.handleExpired()
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// handleExpired tears the session down once. When several in-flight requests
// all come back expired, the first one through clears the token and triggers
// the hard navigation; the rest see an already-empty store and do nothing.
func (c *Client) handleExpired() {
	c.expireMu.Lock()
	defer c.expireMu.Unlock()

	if _, ok := c.store.Token(); !ok {
		return
	}
	_ = c.store.ClearToken()
	if c.nav != nil {
		c.nav.Navigate("/")
	}
}

/* ===================== AUTH ===================== */

type loginResponse struct {
	OK    bool   `json:"ok"`
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Login authenticates and persists the returned token in the session store.
func (c *Client) Login(ctx context.Context, email, password string) (role string, err error) {
	var resp loginResponse
	err = c.do(ctx, http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return "", err
	}
	if !resp.OK || resp.Token == "" {
		return "", fmt.Errorf("login response missing token")
	}
	if err := c.store.SetToken(resp.Token); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}
	return resp.Role, nil
}

// Logout drops the local session. The server keeps no session state.
func (c *Client) Logout() error {
	return c.store.ClearToken()
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/reset-password/"+token, map[string]string{"password": password}, nil)
}

/* ===================== ORGANIZATIONS ===================== */

func (c *Client) RegisterOrganization(ctx context.Context, in RegisterOrganizationInput) (Organization, error) {
	var resp struct {
		Organization Organization `json:"organization"`
	}
	err := c.do(ctx, http.MethodPost, "/v1/organizations/with-admin-account", in, &resp)
	return resp.Organization, err
}

func (c *Client) MyOrganization(ctx context.Context) (Organization, error) {
	var org Organization
	err := c.do(ctx, http.MethodGet, "/v1/organizations/me", nil, &org)
	return org, err
}

func (c *Client) MyOrganizationStatistics(ctx context.Context) (OrganizationStatistics, error) {
	var stats OrganizationStatistics
	err := c.do(ctx, http.MethodGet, "/v1/organizations/me/statistics", nil, &stats)
	return stats, err
}

/* ===================== SELF SERVICE ===================== */

func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/v1/users/me", nil, &u)
	return u, err
}

func (c *Client) MyStatistics(ctx context.Context) (MyStatistics, error) {
	var stats MyStatistics
	err := c.do(ctx, http.MethodGet, "/v1/users/me/statistics", nil, &stats)
	return stats, err
}

func (c *Client) MySavings(ctx context.Context) ([]SavingsEntry, error) {
	var resp struct {
		Savings []SavingsEntry `json:"savings"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/savings/me", nil, &resp)
	return resp.Savings, err
}

func (c *Client) MyLoans(ctx context.Context) ([]Loan, error) {
	var resp struct {
		Loans []Loan `json:"loans"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/loans/me", nil, &resp)
	return resp.Loans, err
}

func (c *Client) RequestLoan(ctx context.Context, in RequestLoanInput) (Loan, error) {
	var l Loan
	err := c.do(ctx, http.MethodPost, "/v1/loans/request", in, &l)
	return l, err
}

func (c *Client) MyRepayments(ctx context.Context) ([]Repayment, error) {
	var resp struct {
		Repayments []Repayment `json:"repayments"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/repayments/me", nil, &resp)
	return resp.Repayments, err
}

func (c *Client) CreateRepayment(ctx context.Context, in CreateRepaymentInput) (Repayment, error) {
	var rp Repayment
	err := c.do(ctx, http.MethodPost, "/v1/repayments", in, &rp)
	return rp, err
}

// MyProfile returns the caller's employment profile with the account embedded.
func (c *Client) MyProfile(ctx context.Context) (Profile, error) {
	var p Profile
	err := c.do(ctx, http.MethodGet, "/v1/profiles/me", nil, &p)
	return p, err
}

/* ===================== PERSONAL GOALS ===================== */

func (c *Client) MyGoals(ctx context.Context) ([]Goal, error) {
	var resp struct {
		Goals []Goal `json:"goals"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/goals", nil, &resp)
	return resp.Goals, err
}

func (c *Client) CreateGoal(ctx context.Context, in CreateGoalInput) (Goal, error) {
	var g Goal
	err := c.do(ctx, http.MethodPost, "/v1/goals", in, &g)
	return g, err
}

func (c *Client) UpdateGoal(ctx context.Context, id string, in UpdateGoalInput) (Goal, error) {
	var g Goal
	err := c.do(ctx, http.MethodPut, "/v1/goals/"+id, in, &g)
	return g, err
}

func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/goals/"+id, nil, nil)
}
