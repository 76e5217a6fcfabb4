package notify

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

	"bakery-be/internal/logger"
	"bakery-be/internal/utils"

	"go.uber.org/zap"
)

const (
	whatsAppPath = "/functions/v1/send-whatsapp-notification"
	emailPath    = "/functions/v1/send-order-email"

	defaultCountryCode = "62"

	// maxResponseBody caps how much of a reply is read for logs and errors.
	maxResponseBody = 4 << 10
)

var (
	ErrNotConfigured = errors.New("notification endpoint not configured")
	ErrNoRecipient   = errors.New("notification has no recipient")
)

type httpDispatcher struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ----------------- Constructor -----------------

func NewHTTPDispatcher(baseURL, apiKey string) Dispatcher {
	if baseURL == "" {
		logger.L().Warn("notification base URL is empty, notifications will fail")
	}
	if apiKey == "" {
		logger.L().Warn("notification API key is empty")
	}

	return &httpDispatcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ----------------- WhatsApp -----------------

func (d *httpDispatcher) SendWhatsApp(ctx context.Context, n OrderNotice) error {
	phone := utils.NormalizePhone(n.CustomerPhone, defaultCountryCode)
	if phone == "" {
		return ErrNoRecipient
	}

	return d.post(ctx, whatsAppPath, n.OrderID, whatsAppRequest{
		Phone:   phone,
		Message: FormatWhatsApp(n),
		OrderID: n.OrderID,
	})
}

// ----------------- Email -----------------

func (d *httpDispatcher) SendOrderEmail(ctx context.Context, n OrderNotice) error {
	if strings.TrimSpace(n.CustomerEmail) == "" {
		return ErrNoRecipient
	}

	return d.post(ctx, emailPath, n.OrderID, emailRequest{
		To:      n.CustomerEmail,
		Subject: emailSubject(n),
		Order:   n,
	})
}

func (d *httpDispatcher) post(ctx context.Context, path, orderID string, payload any) error {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", orderID),
		zap.String("function", path),
	)

	if d.baseURL == "" {
		return ErrNotConfigured
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		log.Error("failed to marshal notification", zap.Error(err))
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return err
	}

	req.Header.Set("Authorization", "Bearer "+d.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		log.Error("notification request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("failed to read notification response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error("notification function returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return fmt.Errorf("notification error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	log.Info("notification sent")
	return nil
}
