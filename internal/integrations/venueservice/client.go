package venueservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с VenueService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента VenueService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCourt получает корт по ID
func (c *Client) GetCourt(ctx context.Context, courtID int64) (*Court, error) {
	url := fmt.Sprintf("%s/internal/courts/%d", c.baseURL, courtID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid court ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrCourtNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var court Court
	if err := json.NewDecoder(resp.Body).Decode(&court); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &court, nil
}

// GetCourtWithGracefulDegradation получает корт с graceful degradation.
// Несуществующий корт — бизнес-ошибка и пробрасывается как есть. Недоступность
// venue-сервиса превращается в ErrServiceDegraded: вызывающая сторона может
// продолжить работу на локальных данных вместо отказа всему запросу.
func (c *Client) GetCourtWithGracefulDegradation(ctx context.Context, courtID int64) (*Court, error) {
	court, err := c.GetCourt(ctx, courtID)
	if err != nil {
		if err == ErrCourtNotFound {
			c.log.Info("Court not found in venue service: court_id=%d", courtID)
			return nil, err
		}

		c.log.Error("VenueService unavailable, applying graceful degradation for court_id=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: court_id=%d, error=%v", ErrServiceDegraded, courtID, err)
	}

	return court, nil
}
