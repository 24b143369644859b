package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// expiryMargin is how close to expiry a cached token may get before it is
// refreshed. A token inside the margin is never handed to a caller.
const expiryMargin = 60 * time.Second

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// TokenSource caches one bearer token for the inventory API and refreshes
// it on demand. Concurrent refreshes collapse into a single credential
// exchange via singleflight.
type TokenSource struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	group singleflight.Group
	now   func() time.Time
}

func NewTokenSource(baseURL, apiKey, apiSecret string, httpClient *http.Client) *TokenSource {
	return &TokenSource{
		baseURL:    baseURL,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// Token returns the cached bearer token, refreshing it when absent or
// within 60 seconds of expiry. On refresh failure the cache stays empty.
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	if token, ok := t.cached(); ok {
		return token, nil
	}

	value, err, _ := t.group.Do("token", func() (interface{}, error) {
		// a refresh that finished while we queued behind it is good enough
		if token, ok := t.cached(); ok {
			return token, nil
		}

		return t.refresh(ctx)
	})
	if err != nil {
		return "", err
	}

	return value.(string), nil
}

func (t *TokenSource) cached() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && t.expiresAt.Sub(t.now()) > expiryMargin {
		return t.token, true
	}

	return "", false
}

func (t *TokenSource) refresh(ctx context.Context) (string, error) {
	if t.apiKey == "" || t.apiSecret == "" {
		return "", ErrMissingCredentials
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {t.apiKey},
		"client_secret": {t.apiSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrAuthenticationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: %s", ErrAuthenticationFailed, resp.Status)
	}

	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decode response: %s", ErrAuthenticationFailed, err)
	}

	t.mu.Lock()
	t.token = payload.AccessToken
	t.expiresAt = t.now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	t.mu.Unlock()

	return payload.AccessToken, nil
}
