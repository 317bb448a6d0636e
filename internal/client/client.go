// Package client is a Go client for the WellBot HTTP API. It carries the
// session state a UI needs: login status, the bearer token, and whether the
// profile editor is open.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type errorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

type tokenBody struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, f RegisterForm) error {
	if err := f.Validate(); err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPost, "/register", "", map[string]string{
		"name":     f.Name,
		"email":    f.Email,
		"password": f.Password,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusBadRequest:
		return ErrEmailAlreadyRegistered
	default:
		return apiError(resp)
	}
}

// Login authenticates and stores the token in s.
func (c *Client) Login(ctx context.Context, s *Session, f LoginForm) error {
	if err := f.Validate(); err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPost, "/login", "", map[string]string{
		"email":    f.Email,
		"password": f.Password,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return ErrInvalidPassword
	case http.StatusNotFound:
		return ErrEmailNotRegistered
	default:
		return apiError(resp)
	}

	var tok tokenBody
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	if tok.AccessToken == "" {
		return errors.New("login response carried no access token")
	}

	s.signIn(f.Email, tok.AccessToken)
	return nil
}

// GetProfile returns the caller's profile, or nil when none is set yet.
// A missing profile opens the editor (s.EditMode).
func (c *Client) GetProfile(ctx context.Context, s *Session) (*Profile, error) {
	if !s.Authenticated {
		return nil, ErrUnauthorized
	}

	resp, err := c.do(ctx, http.MethodGet, "/profile", s.Token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkProfileStatus(s, resp); err != nil {
		return nil, err
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if p.AgeGroup == nil && p.Gender == nil && p.Language == nil {
		s.EditMode = true
		return nil, nil
	}
	return &p, nil
}

// UpdateProfile saves the form as a full replace and closes the editor.
func (c *Client) UpdateProfile(ctx context.Context, s *Session, f ProfileForm) error {
	if !s.Authenticated {
		return ErrUnauthorized
	}
	if err := f.Validate(); err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPut, "/profile", s.Token, f.profile())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkProfileStatus(s, resp); err != nil {
		return err
	}

	s.EditMode = false
	return nil
}

// Logout clears s. The token is stateless, so no request is made.
func (c *Client) Logout(s *Session) {
	s.Logout()
}

func (c *Client) checkProfileStatus(s *Session, resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		s.Logout()
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrUserNotFound
	default:
		return apiError(resp)
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	return resp, nil
}

func apiError(resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&eb)
	return &APIError{StatusCode: resp.StatusCode, Code: eb.Code, Detail: eb.Detail}
}
