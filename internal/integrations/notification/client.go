package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

// Client клиент сервиса уведомлений. Доставка best effort: ошибки возвращаются,
// но вызывающая сторона только логирует их.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NotifyCreated отправляет подтверждение бронирования вместе с plaintext credential отмены
func (c *Client) NotifyCreated(ctx context.Context, summary domain.ReservationSummary, cancelToken string) error {
	return c.send(ctx, newMessage(EventReservationCreated, summary, cancelToken))
}

// NotifyCancelled отправляет уведомление об отмене
func (c *Client) NotifyCancelled(ctx context.Context, summary domain.ReservationSummary) error {
	return c.send(ctx, newMessage(EventReservationCancelled, summary, ""))
}

func (c *Client) send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/internal/notifications", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: event=%s reservation=%d status=%d", ErrRejected, msg.Event, msg.ReservationID, resp.StatusCode)
	}

	c.log.Info("Notify: event=%s reservation=%d delivered", msg.Event, msg.ReservationID)
	return nil
}

// Noop заглушка для отключённых уведомлений
type Noop struct{}

// NotifyCreated ничего не делает
func (Noop) NotifyCreated(context.Context, domain.ReservationSummary, string) error { return nil }

// NotifyCancelled ничего не делает
func (Noop) NotifyCancelled(context.Context, domain.ReservationSummary) error { return nil }
