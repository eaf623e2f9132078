package messenger

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/karibbean/cart-service/internal/core/port"
)

const whatsappTimeout = 15 * time.Second

var _ port.OrderSubmitter = (*WhatsAppSubmitter)(nil)

// A WhatsAppSubmitter sends the formatted order as a WhatsApp Cloud API
// text message to the store's business number.
type WhatsAppSubmitter struct {
	httpClient    *resty.Client
	phoneNumberID string
	recipient     string
	storeName     string
}

type WhatsAppConfig struct {
	BaseURL       string
	APIVersion    string
	AccessToken   string
	PhoneNumberID string
	Recipient     string
	StoreName     string
}

func NewWhatsAppSubmitter(cfg WhatsAppConfig) *WhatsAppSubmitter {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	httpClient := resty.New()
	httpClient.
		SetBaseURL(fmt.Sprintf("%s/%s", base, cfg.APIVersion)).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AccessToken)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(whatsappTimeout)

	return &WhatsAppSubmitter{
		httpClient:    httpClient,
		phoneNumberID: cfg.PhoneNumberID,
		recipient:     cfg.Recipient,
		storeName:     cfg.StoreName,
	}
}

// apiError mirrors a WhatsApp Cloud API error payload.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (s *WhatsAppSubmitter) SubmitOrder(
	ctx context.Context, o domain.Order,
) error {
	const op = "WhatsAppSubmitter.SubmitOrder"

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                s.recipient,
		"type":              "text",
		"text": map[string]any{
			"body":        orderMessage(s.storeName, o),
			"preview_url": false,
		},
	}

	apiErr := new(apiError)
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetError(apiErr).
		Post(fmt.Sprintf("%s/messages", s.phoneNumberID))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		code := resp.StatusCode()
		if apiErr.Error.Code != 0 {
			code = apiErr.Error.Code
		}
		return fmt.Errorf("%s: api error: code=%d message=%s",
			op, code, apiErr.Error.Message,
		)
	}

	return nil
}
