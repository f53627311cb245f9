package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с NotifyService (push/WhatsApp уведомления клиентам)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendReviewPrompt отправляет клиенту предложение оставить отзыв после
// завершенной записи. Недоступность сервиса не блокирует завершение записи:
// возвращается ErrServiceDegraded, вызывающий только логирует.
func (c *Client) SendReviewPrompt(ctx context.Context, req ReviewPromptRequest) error {
	if err := c.post(ctx, "/internal/notifications/review-prompt", req); err != nil {
		c.log.Error("NotifyService unavailable, review prompt dropped for appointment=%d: %v", req.AppointmentID, err)
		return fmt.Errorf("%w: appointment_id=%d, error=%v", ErrServiceDegraded, req.AppointmentID, err)
	}

	c.log.Info("Review prompt sent for appointment=%d client=%d", req.AppointmentID, req.ClientID)
	return nil
}

// SendRescheduleProposal уведомляет клиента об отмене записи барбером
// с предложением выбрать новое время
func (c *Client) SendRescheduleProposal(ctx context.Context, req RescheduleProposalRequest) error {
	if err := c.post(ctx, "/internal/notifications/reschedule-proposal", req); err != nil {
		c.log.Error("NotifyService unavailable, reschedule proposal dropped for appointment=%d: %v", req.AppointmentID, err)
		return fmt.Errorf("%w: appointment_id=%d, error=%v", ErrServiceDegraded, req.AppointmentID, err)
	}

	c.log.Info("Reschedule proposal sent for appointment=%d client=%d", req.AppointmentID, req.ClientID)
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}
