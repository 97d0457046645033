package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/avasiliev/timeshelf/models"
)

type HTTPClientConfig struct {
	BaseURL          string
	DeviceToken      string
	Timeout          time.Duration
	MaxRetryAttempts int
	InitialBackoff   time.Duration
}

type httpRemoteClient struct {
	client         *resty.Client
	maxAttempts    int
	initialBackoff time.Duration

	mu    sync.RWMutex
	token string
}

func NewHTTPRemoteClient(cfg HTTPClientConfig) RemoteClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetryAttempts <= 0 {
		cfg.MaxRetryAttempts = 3
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpRemoteClient{
		client:         cli,
		maxAttempts:    cfg.MaxRetryAttempts,
		initialBackoff: cfg.InitialBackoff,
		token:          strings.TrimSpace(cfg.DeviceToken),
	}
}

func (h *httpRemoteClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpRemoteClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpRemoteClient) HealthCheck(ctx context.Context) error {
	_, err := h.do(ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.authedRequest(ctx).Get("/sync/health")
	})
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}

	return nil
}

func (h *httpRemoteClient) PushBatch(ctx context.Context, req models.BatchRequest) (models.BatchResponse, error) {
	resp, err := h.do(ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(req).
			Post("/sync/batch")
	})
	if err != nil {
		return models.BatchResponse{}, fmt.Errorf("push batch: %w", err)
	}

	var batchResp models.BatchResponse
	if err = json.Unmarshal(resp.Body(), &batchResp); err != nil {
		return models.BatchResponse{}, fmt.Errorf("decode batch response: %w", err)
	}

	return batchResp, nil
}

func (h *httpRemoteClient) Pull(ctx context.Context, since time.Time) (models.BatchRequest, error) {
	resp, err := h.do(ctx, func(ctx context.Context) (*resty.Response, error) {
		req := h.authedRequest(ctx)
		if !since.IsZero() {
			req.SetQueryParam("since", since.UTC().Format(time.RFC3339Nano))
		}
		return req.Get("/sync/pull")
	})
	if err != nil {
		return models.BatchRequest{}, fmt.Errorf("pull: %w", err)
	}

	var changes models.BatchRequest
	if err = json.Unmarshal(resp.Body(), &changes); err != nil {
		return models.BatchRequest{}, fmt.Errorf("decode pull response: %w", err)
	}

	return changes, nil
}

func (h *httpRemoteClient) UpsertResource(ctx context.Context, resource models.Resource) (models.Resource, error) {
	resp, err := h.do(ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(resource).
			Put("/api/resources/" + resource.LocalID)
	})
	if err != nil {
		return models.Resource{}, fmt.Errorf("upsert resource: %w", err)
	}

	var stored models.Resource
	if err = json.Unmarshal(resp.Body(), &stored); err != nil {
		return models.Resource{}, fmt.Errorf("decode resource response: %w", err)
	}

	return stored, nil
}

func (h *httpRemoteClient) DeleteResource(ctx context.Context, clientID string) error {
	_, err := h.do(ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.authedRequest(ctx).Delete("/api/resources/" + clientID)
	})
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}

	return nil
}

func (h *httpRemoteClient) UpsertTimeSlot(ctx context.Context, slot models.TimeSlot) (models.TimeSlot, error) {
	resp, err := h.do(ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(slot).
			Put("/api/timeslots/" + slot.LocalID)
	})
	if err != nil {
		return models.TimeSlot{}, fmt.Errorf("upsert time slot: %w", err)
	}

	var stored models.TimeSlot
	if err = json.Unmarshal(resp.Body(), &stored); err != nil {
		return models.TimeSlot{}, fmt.Errorf("decode time slot response: %w", err)
	}

	return stored, nil
}

func (h *httpRemoteClient) DeleteTimeSlot(ctx context.Context, clientID string) error {
	_, err := h.do(ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.authedRequest(ctx).Delete("/api/timeslots/" + clientID)
	})
	if err != nil {
		return fmt.Errorf("delete time slot: %w", err)
	}

	return nil
}

func (h *httpRemoteClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// do sends a request with the configured retry policy: up to maxAttempts
// total attempts, waiting initialBackoff before the first retry and doubling
// after each further one. Only network-class failures are retried; timeouts
// and rejections surface immediately.
func (h *httpRemoteClient) do(ctx context.Context, send func(ctx context.Context) (*resty.Response, error)) (*resty.Response, error) {
	var resp *resty.Response

	backoff := retry.WithMaxRetries(uint64(h.maxAttempts-1), retry.NewExponential(h.initialBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, sendErr := send(ctx)
		if sendErr != nil {
			classified := classifyRequestError(sendErr)
			if errors.Is(classified, ErrNetwork) {
				return retry.RetryableError(classified)
			}
			return classified
		}

		resp = r
		if mapped := mapHTTPError(r); mapped != nil {
			if errors.Is(mapped, ErrNetwork) {
				return retry.RetryableError(mapped)
			}
			return mapped
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// classifyRequestError maps a transport-level failure (no HTTP response) to
// the package's error taxonomy: deadline expiry becomes ErrTimeout, anything
// else becomes ErrNetwork.
func classifyRequestError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %s", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %s", ErrNetwork, err)
}

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	switch {
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case code == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrVersionConflict, body)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d: %s", ErrNetwork, code, body)
	case code >= http.StatusBadRequest:
		return fmt.Errorf("%w: http %d: %s", ErrRejected, code, body)
	default:
		return fmt.Errorf("http %d: %s", code, body)
	}
}
