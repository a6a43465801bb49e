package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/noteleaf/noteleaf/internal/config"
	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/utils"
	"github.com/noteleaf/noteleaf/models"
	"github.com/sethvargo/go-retry"
)

type httpStoreAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPStoreAdapter constructs an HTTP/REST implementation of
// [StoreAdapter]. It normalises and validates the base URL from
// cfg.BaseURL and configures the underlying HTTP client with the resolved
// base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid
// URL.
func NewHTTPStoreAdapter(cfg config.DeviceAdapter, logger *logger.Logger) (StoreAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote store address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpStoreAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [StoreAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpStoreAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [StoreAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpStoreAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [StoreAdapter]. It POSTs the account credentials to
// POST /api/auth/register. On success the bearer token is extracted from
// the Authorization response header and stored via SetToken. Returns an
// error if the request fails, the store returns a non-2xx status, or the
// token cannot be parsed.
func (h *httpStoreAdapter) Register(ctx context.Context, account models.Account) (models.Account, error) {
	return h.authenticate(ctx, "/api/auth/register", account)
}

// Login implements [StoreAdapter]. It POSTs the account credentials to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpStoreAdapter) Login(ctx context.Context, account models.Account) (models.Account, error) {
	return h.authenticate(ctx, "/api/auth/login", account)
}

func (h *httpStoreAdapter) authenticate(ctx context.Context, path string, account models.Account) (models.Account, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(account).
		Post(path)
	if err != nil {
		return models.Account{}, fmt.Errorf("auth request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Account{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Account{}, fmt.Errorf("auth parse bearer token: %w", err)
	}

	var registered models.Account
	if err = json.Unmarshal(resp.Body(), &registered); err != nil {
		return models.Account{}, fmt.Errorf("auth decode response: %w", err)
	}

	h.SetToken(token)
	return registered, nil
}

// Push implements [StoreAdapter]. It POSTs the dirty batch to
// POST /sync/push with retry of transient failures. The push protocol is
// idempotent (create entries are deduplicated server-side by live name, and
// deletes tolerate already-gone records), so a replayed batch is harmless.
func (h *httpStoreAdapter) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	var pushed models.PushResponse

	err := h.withRetry(ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(req).
			SetResult(&pushed).
			Post("/sync/push")
	})
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("push: %w", err)
	}

	return pushed, nil
}

// PullChanges implements [StoreAdapter]. It GETs /sync/changes with retry
// of transient failures. A nil since omits the query parameter and requests
// a full pull.
func (h *httpStoreAdapter) PullChanges(ctx context.Context, since *time.Time) (models.ChangesResponse, error) {
	var changes models.ChangesResponse

	err := h.withRetry(ctx, func(ctx context.Context) (*resty.Response, error) {
		req := h.authedRequest(ctx).SetResult(&changes)
		if since != nil {
			req.SetQueryParam("since", since.Format(time.RFC3339Nano))
		}
		return req.Get("/sync/changes")
	})
	if err != nil {
		return models.ChangesResponse{}, fmt.Errorf("pull changes: %w", err)
	}

	return changes, nil
}

// CreateWebSession implements [StoreAdapter]. It POSTs to
// POST /web-session/create and returns the minted pairing session. Not
// retried: a duplicate request would mint a second session and orphan the
// first one's relay mailbox.
func (h *httpStoreAdapter) CreateWebSession(ctx context.Context) (models.PairingSession, error) {
	var session models.PairingSession

	resp, err := h.authedRequest(ctx).
		SetResult(&session).
		Post("/web-session/create")
	if err != nil {
		return models.PairingSession{}, fmt.Errorf("create web session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PairingSession{}, err
	}

	return session, nil
}

// PurgeRemoteData implements [StoreAdapter]. It issues
// DELETE /sync/remote-data and returns the deletion counts.
func (h *httpStoreAdapter) PurgeRemoteData(ctx context.Context) (models.PurgeStats, error) {
	var purged models.PurgeResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&purged).
		Delete("/sync/remote-data")
	if err != nil {
		return models.PurgeStats{}, fmt.Errorf("purge remote data request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PurgeStats{}, err
	}

	return purged.Stats, nil
}

func (h *httpStoreAdapter) authedRequest(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+h.Token())
}

// withRetry replays do on network errors and 5xx responses. Client-side
// errors (4xx) are returned immediately.
func (h *httpStoreAdapter) withRetry(ctx context.Context, do func(ctx context.Context) (*resty.Response, error)) error {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(100*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := do(ctx)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("request: %w", err))
		}
		if mapped := mapHTTPError(resp); mapped != nil {
			if retryable(resp) {
				return retry.RetryableError(mapped)
			}
			return mapped
		}
		return nil
	})
}
