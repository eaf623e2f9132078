package messenger

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/karibbean/cart-service/internal/core/port"
)

const emailTimeout = 15 * time.Second

var _ port.OrderSubmitter = (*EmailSubmitter)(nil)

// An EmailSubmitter relays the order confirmation through a
// template-based email API.
type EmailSubmitter struct {
	httpClient *resty.Client
	serviceID  string
	templateID string
	publicKey  string
	storeName  string
}

type EmailConfig struct {
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
	StoreName  string
}

func NewEmailSubmitter(cfg EmailConfig) *EmailSubmitter {
	httpClient := resty.New()
	httpClient.
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(emailTimeout)

	return &EmailSubmitter{
		httpClient: httpClient,
		serviceID:  cfg.ServiceID,
		templateID: cfg.TemplateID,
		publicKey:  cfg.PublicKey,
		storeName:  cfg.StoreName,
	}
}

func (s *EmailSubmitter) SubmitOrder(
	ctx context.Context, o domain.Order,
) error {
	const op = "EmailSubmitter.SubmitOrder"

	payload := map[string]any{
		"service_id":  s.serviceID,
		"template_id": s.templateID,
		"user_id":     s.publicKey,
		"template_params": map[string]any{
			"to_name":        s.storeName,
			"from_name":      o.Customer.Name,
			"from_email":     o.Customer.Email,
			"phone":          o.Customer.Phone,
			"address":        o.Customer.Address,
			"payment_method": o.Customer.PaymentMethod,
			"order_notes":    orderNotes(o),
			"order_items":    orderItemLines(o),
			"order_total":    fmt.Sprintf("$%s", o.Total.StringFixed(2)),
			"order_date":     o.PlacedAt.Format(orderDateLayout),
		},
	}

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/api/v1.0/email/send")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("%s: api error: code=%d body=%s",
			op, resp.StatusCode(), resp.String(),
		)
	}

	return nil
}

func orderNotes(o domain.Order) string {
	if o.Customer.Notes == "" {
		return "No additional notes"
	}
	return o.Customer.Notes
}
