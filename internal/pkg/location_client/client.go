// Package location_client отправляет снимки позиции райдера в POST /rider/location.
package location_client

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

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
)

const (
	locationPath   = "/rider/location"
	requestTimeout = 5 * time.Second
	maxErrorBody   = 512

	initialInterval = 200 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 10 * time.Second
	randomization   = 0.3
	multiplier      = 2
)

// StatusError ответ сервера не 201. 4xx не ретраятся.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	retrier retrier.Retrier
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
		retrier: backoff_adapter.New(retrier.Config{
			InitialInterval: initialInterval,
			MaxInterval:     maxInterval,
			MaxElapsedTime:  maxElapsedTime,
			Randomization:   randomization,
			Multiplier:      multiplier,
			ShouldRetry:     isRetryable,
		}),
	}
}

func (c *Client) Report(ctx context.Context, snapshot entities.LocationSnapshot) error {
	lat, lng := snapshot.Point.Lat, snapshot.Point.Lng
	body, err := json.Marshal(dto.LocationRequest{
		Lat:      &lat,
		Lng:      &lng,
		Heading:  snapshot.Heading,
		Speed:    snapshot.Speed,
		Accuracy: snapshot.Accuracy,
		OrderID:  snapshot.OrderID,
	})
	if err != nil {
		return fmt.Errorf("marshal location: %w", err)
	}

	return c.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return c.post(ctx, body)
	})
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+locationPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post location: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
}

func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled)
}
