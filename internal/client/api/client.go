// Package api implements the HTTP gateway to the library server.
//
// Every outbound request carries the stored access token as a bearer
// credential; the gateway does not pre-check expiry and relies on the
// server's 401 instead. A 401 triggers at most one silent refresh and
// one resubmit of the original request. Concurrent requests that 401
// at the same time each refresh independently; the last refresh wins
// and every retried request carries a then-valid access token.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/shelfctl/internal/client/storage"
	"github.com/iudanet/shelfctl/pkg/api"
)

const refreshPath = "/auth/token/refresh/"

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient    *http.Client
	tokens        storage.TokenStorage
	onAuthExpired func()
	baseURL       string
	clientID      string
}

// NewClient создает новый API клиент
func NewClient(baseURL string, tokens storage.TokenStorage) *Client {
	tr := &http.Transport{
		MaxIdleConns:      20,
		MaxConnsPerHost:   20,
		IdleConnTimeout:   30 * time.Second,
		ForceAttemptHTTP2: true,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: tr,
		},
	}
}

// OnAuthExpired registers the callback invoked when a refresh attempt
// fails and the stored tokens have been cleared. The CLI uses it to
// point the user back at the login command.
func (c *Client) OnAuthExpired(fn func()) {
	c.onAuthExpired = fn
}

// SetClientID sets the install-unique identifier attached to outgoing
// requests as X-Client-ID.
func (c *Client) SetClientID(id string) {
	c.clientID = id
}

// doRequest выполняет HTTP запрос с декорацией токеном и одним
// повтором после silent refresh
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	var payload []byte
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = jsonData
	}

	status, respBody, err := c.send(ctx, method, path, query, payload)
	if err != nil {
		return err
	}

	// Протокол восстановления: ровно одна попытка refresh на исходный
	// запрос, второй 401 уходит вызывающему как есть
	if status == http.StatusUnauthorized {
		retry, refreshErr := c.tryRefresh(ctx)
		if refreshErr != nil {
			return refreshErr
		}
		if retry {
			status, respBody, err = c.send(ctx, method, path, query, payload)
			if err != nil {
				return err
			}
		}
	}

	if status < 200 || status >= 300 {
		return api.ParseError(status, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// send выполняет одну попытку запроса
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte) (int, []byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.clientID != "" {
		req.Header.Set("X-Client-ID", c.clientID)
	}

	// Декорация токеном безусловная, без проверки срока действия
	if auth, err := c.tokens.GetAuth(ctx); err == nil && auth.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+auth.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, respBody, nil
}

// tryRefresh exchanges the stored refresh token for a new access token.
// Returns (true, nil) when the original request should be resubmitted.
// A 401 with no stored session at all is not a recovery case (nothing
// expired: the caller simply is not logged in), so it surfaces as-is.
func (c *Client) tryRefresh(ctx context.Context) (bool, error) {
	auth, err := c.tokens.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get auth data: %w", err)
	}

	if auth.RefreshToken == "" {
		c.expireSession(ctx)
		return false, fmt.Errorf("no refresh token present")
	}

	// Отдельный запрос без декорации и без перехвата 401
	newAccess, refreshErr := c.refreshAccessToken(ctx, auth.RefreshToken)
	if refreshErr != nil {
		c.expireSession(ctx)
		return false, fmt.Errorf("token refresh failed: %w", refreshErr)
	}

	// Сохраняем новый access token, refresh token не меняется
	auth.AccessToken = newAccess
	if err := c.tokens.SaveAuth(ctx, auth); err != nil {
		return false, fmt.Errorf("failed to save refreshed tokens: %w", err)
	}

	return true, nil
}

// refreshAccessToken выполняет прямой вызов refresh endpoint
func (c *Client) refreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	payload, err := json.Marshal(api.RefreshRequest{Refresh: refreshToken})
	if err != nil {
		return "", fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("refresh request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read refresh response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", api.ParseError(resp.StatusCode, respBody)
	}

	var refreshResp api.RefreshResponse
	if err := json.Unmarshal(respBody, &refreshResp); err != nil {
		return "", fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if refreshResp.Access == "" {
		return "", fmt.Errorf("refresh response contains no access token")
	}

	return refreshResp.Access, nil
}

// expireSession очищает токены и уведомляет приложение
func (c *Client) expireSession(ctx context.Context) {
	if err := c.tokens.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		slog.Warn("failed to clear tokens after refresh failure", "error", err)
	}
	if c.onAuthExpired != nil {
		c.onAuthExpired()
	}
}
