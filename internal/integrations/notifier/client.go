package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Counter счетчик отправленных предупреждений (prometheus.Counter)
type Counter interface {
	Inc()
}

// Client клиент вебхука для предупреждений об окончании времени сервиса
type Client struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
	counter    Counter
	log        Logger
}

// NewClient создает новый экземпляр клиента.
// Пустой url отключает доставку: предупреждения только логируются.
func NewClient(url string, timeout time.Duration, counter Counter, log Logger) *Client {
	return &Client{
		url:     url,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		counter: counter,
		log:     log,
	}
}

// SessionWarning фиксирует предупреждение и отправляет его в фоне (fire-and-forget)
func (c *Client) SessionWarning(w Warning) {
	if c.counter != nil {
		c.counter.Inc()
	}
	c.log.Warn("Session id=%s of staff=%s ends in %d seconds", w.SessionID, w.StaffEmail, w.RemainingSeconds)

	if c.url == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		if err := c.Send(ctx, w); err != nil {
			c.log.Error("Failed to deliver warning for session id=%s: %v", w.SessionID, err)
		}
	}()
}

// Send синхронно отправляет предупреждение на вебхук
func (c *Client) Send(ctx context.Context, w Warning) error {
	if c.url == "" {
		return ErrDisabled
	}

	body, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("%w: failed to encode warning: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		var errResp ErrorResponse
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(data))
	}
}
