package zvm

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	vpgtools "github.com/erraggy/vpgtools"
	"github.com/erraggy/vpgtools/vpgerrors"
)

// tokenPath is the Keycloak client-credentials endpoint on the appliance.
const tokenPath = "/auth/realms/zerto/protocol/openid-connect/token"

// Client talks to one ZVM appliance. Safe for concurrent use.
type Client struct {
	baseURL string
	cfg     Config
	http    *http.Client
	logger  zerolog.Logger

	mu    sync.Mutex
	token string
}

// New builds a client from a connection config. The config must carry an
// address and Keycloak credentials; the first API call fetches the token.
func New(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	base := cfg.Address
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	base = strings.TrimRight(base, "/")
	if _, err := url.Parse(base); err != nil {
		return nil, &vpgerrors.InputError{Source: "config", Message: fmt.Sprintf("invalid address %q", cfg.Address), Cause: err}
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		baseURL: base,
		cfg:     cfg,
		http:    &http.Client{Transport: transport, Timeout: 90 * time.Second},
		logger:  cfg.Logger,
	}, nil
}

// do issues one authenticated API request, decoding a JSON response into
// out when non-nil. A 401 triggers exactly one token refresh and resend.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("%s: encoding request body: %w", op, err)
		}
	}

	token, err := c.currentToken(ctx)
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, method, path, query, payload, token)
	if err != nil {
		return &vpgerrors.TransportError{Op: op, Message: "request failed", Cause: err}
	}
	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		if token, err = c.refreshToken(ctx); err != nil {
			return err
		}
		if resp, err = c.send(ctx, method, path, query, payload, token); err != nil {
			return &vpgerrors.TransportError{Op: op, Message: "request failed after token refresh", Cause: err}
		}
	}
	defer drain(resp)

	c.logger.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &vpgerrors.TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    bodySnippet(resp),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &vpgerrors.TransportError{Op: op, StatusCode: resp.StatusCode, Message: "decoding response", Cause: err}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", vpgtools.UserAgent())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

// currentToken returns the cached bearer token, fetching one if none is
// held yet.
func (c *Client) currentToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token, nil
	}
	return c.fetchTokenLocked(ctx)
}

// refreshToken discards the cached token and fetches a fresh one.
func (c *Client) refreshToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	return c.fetchTokenLocked(ctx)
}

func (c *Client) fetchTokenLocked(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &vpgerrors.TransportError{Op: "token", Message: "building token request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &vpgerrors.TransportError{Op: "token", Message: "token request failed", Cause: err}
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return "", &vpgerrors.TransportError{Op: "token", StatusCode: resp.StatusCode, Message: bodySnippet(resp)}
	}

	var tr struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", &vpgerrors.TransportError{Op: "token", Message: "decoding token response", Cause: err}
	}
	if tr.AccessToken == "" {
		return "", &vpgerrors.TransportError{Op: "token", Message: "empty access token in response"}
	}

	c.logger.Debug().Msg("fetched api token")
	c.token = tr.AccessToken
	return c.token, nil
}

// bodySnippet reads a bounded prefix of an error response body for the
// TransportError message.
func bodySnippet(resp *http.Response) string {
	b, err := io.ReadAll(io.LimitReader(resp.Body, 512))
	if err != nil || len(bytes.TrimSpace(b)) == 0 {
		return resp.Status
	}
	return string(bytes.TrimSpace(b))
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
