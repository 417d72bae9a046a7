package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrUnauthorized is returned when the API rejects the bearer token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrServerError is returned for non-2xx responses other than 401.
	ErrServerError = errors.New("server error")
)

// Client is a thin typed client over the content API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a Client for the API at baseURL. An empty token puts
// the client in read-only mode: fetches work, saves are rejected upstream.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// HasToken reports whether the client carries a bearer token.
func (c *Client) HasToken() bool {
	return c.token != ""
}

type siteDataResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Login exchanges credentials for a bearer token and stores it on the
// client, switching a read-only client into write mode.
func (c *Client) Login(ctx context.Context, username, password string) error {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}

	if body.Token == "" {
		return ErrUnauthorized
	}

	c.token = body.Token

	return nil
}

// FetchDocument retrieves the stored document. It returns (nil, nil) when
// no document has been stored yet.
func (c *Client) FetchDocument(ctx context.Context) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/sitedata", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)
	}

	var body siteDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if len(body.Data) == 0 || string(body.Data) == "null" {
		return nil, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(body.Data, &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// SaveDocument persists the document through the authenticated write
// endpoint.
func (c *Client) SaveDocument(ctx context.Context, doc map[string]any) error {
	payload, err := json.Marshal(map[string]any{"data": doc})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/sitedata", bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)
	}
}

// Verify checks the bearer token against the verification endpoint.
func (c *Client) Verify(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/verify", nil)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)
	}
}
