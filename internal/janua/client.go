// Package janua implements the Janua admin API calls needed to bootstrap the
// Enclii CLI OAuth client: an email/password login that yields a bearer token,
// and the client registration call itself.
package janua

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/madfam-org/enclii-oauth-bootstrap/internal/buildinfo"
	"github.com/madfam-org/enclii-oauth-bootstrap/internal/config"
	"github.com/madfam-org/enclii-oauth-bootstrap/internal/util"
)

const (
	loginPath   = "/api/v1/auth/login"
	clientsPath = "/api/v1/oauth/clients"
)

// Client talks to the Janua admin API.
type Client struct {
	baseURL    string
	userAgent  string
	requestLog bool
	httpClient *http.Client
}

// NewClient constructs a Client with a proxy-aware transport from the
// configuration. The base URL is taken verbatim minus any trailing slash.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.APIURL, "/"),
		userAgent:  "enclii-oauth-bootstrap/" + buildinfo.Version,
		requestLog: cfg.RequestLog,
		httpClient: util.SetProxy(cfg, &http.Client{Timeout: 30 * time.Second}),
	}
}

// Login exchanges admin credentials for a bearer access token.
//
// Janua deployments have returned the token under both "access_token" and
// "token" depending on version; both field names are accepted, in that order.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", fmt.Errorf("janua login: email and password are required")
	}

	payload, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("janua login: encode request failed: %w", err)
	}
	if c.requestLog {
		// Never let the password reach the log.
		if masked, errMask := sjson.SetBytes(payload, "password", "********"); errMask == nil {
			log.Debugf("janua login request: POST %s%s body=%s", c.baseURL, loginPath, string(masked))
		}
	}

	req, err := c.newRequest(ctx, loginPath, payload)
	if err != nil {
		return "", fmt.Errorf("janua login: create request failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("janua login: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("janua login: read response failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Debugf("janua login failed: status=%d body=%s", resp.StatusCode, string(body))
		return "", &AuthenticationError{Message: errorMessage(body), HTTPStatus: resp.StatusCode}
	}

	token := gjson.GetBytes(body, "access_token").String()
	if token == "" {
		token = gjson.GetBytes(body, "token").String()
	}
	if token == "" {
		log.Debug(string(body))
		return "", fmt.Errorf("janua login: missing access token in response")
	}
	return token, nil
}

// RegisterClient creates an OAuth client record using the given bearer token.
// A 409 response maps to ClientAlreadyExistsError, any other non-201 response
// to RegistrationError.
func (c *Client) RegisterClient(ctx context.Context, token string, clientCfg ClientConfig) (*ClientRecord, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("janua clients: access token is empty")
	}

	payload, err := json.Marshal(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("janua clients: encode request failed: %w", err)
	}
	if c.requestLog {
		log.Debugf("janua clients request: POST %s%s body=%s", c.baseURL, clientsPath, string(payload))
	}

	req, err := c.newRequest(ctx, clientsPath, payload)
	if err != nil {
		return nil, fmt.Errorf("janua clients: create request failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("janua clients: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("janua clients: read response failed: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusCreated:
	case http.StatusConflict:
		return nil, &ClientAlreadyExistsError{Name: clientCfg.Name}
	default:
		log.Debugf("janua clients failed: status=%d body=%s", resp.StatusCode, string(body))
		return nil, &RegistrationError{Message: errorMessage(body), HTTPStatus: resp.StatusCode}
	}

	var record ClientRecord
	if err = json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("janua clients: decode response failed: %w", err)
	}
	if record.ClientID == "" {
		log.Debug(string(body))
		return nil, fmt.Errorf("janua clients: missing client_id in response")
	}
	return &record, nil
}

func (c *Client) newRequest(ctx context.Context, path string, payload []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// errorMessage extracts error.message from a structured error body, falling
// back to the raw body text when the response is not structured JSON.
func errorMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "error.message").String(); msg != "" {
		return msg
	}
	return strings.TrimSpace(string(body))
}
