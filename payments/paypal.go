// Package payments talks to the PayPal REST API.
package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type Config struct {
	APIURL    string
	ClientID  string
	AppSecret string
	Timeout   time.Duration
}

type Capture struct {
	ID           string
	Status       string
	EmailAddress string
	Amount       string
}

type PayPal struct {
	client    *resty.Client
	clientID  string
	appSecret string
}

func NewPayPal(cfg Config) *PayPal {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	client := resty.New().
		SetBaseURL(cfg.APIURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	return &PayPal{client: client, clientID: cfg.ClientID, appSecret: cfg.AppSecret}
}

type apiError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("paypal: %s: %s", e.Name, e.Message)
}

func (p *PayPal) accessToken(ctx context.Context) (string, error) {
	var body struct {
		AccessToken string `json:"access_token"`
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetBasicAuth(p.clientID, p.appSecret).
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		SetResult(&body).
		SetError(&apiError{}).
		Post("/v1/oauth2/token")
	if err != nil {
		return "", fmt.Errorf("requesting paypal token: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("paypal token request failed with status %d: %w", resp.StatusCode(), asAPIError(resp))
	}
	if body.AccessToken == "" {
		return "", errors.New("paypal token missing in response")
	}
	return body.AccessToken, nil
}

// CreateOrder opens a PayPal order for amount (USD, two decimals) and returns
// its id.
func (p *PayPal) CreateOrder(ctx context.Context, amount string) (string, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return "", err
	}

	var body struct {
		ID string `json:"id"`
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"intent": "CAPTURE",
			"purchase_units": []map[string]any{{
				"amount": map[string]string{"currency_code": "USD", "value": amount},
			}},
		}).
		SetResult(&body).
		SetError(&apiError{}).
		Post("/v2/checkout/orders")
	if err != nil {
		return "", fmt.Errorf("creating paypal order: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("paypal create order failed with status %d: %w", resp.StatusCode(), asAPIError(resp))
	}
	return body.ID, nil
}

func (p *PayPal) CaptureOrder(ctx context.Context, paypalOrderID string) (*Capture, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	var body struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Payer  struct {
			EmailAddress string `json:"email_address"`
		} `json:"payer"`
		PurchaseUnits []struct {
			Payments struct {
				Captures []struct {
					Amount struct {
						Value string `json:"value"`
					} `json:"amount"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", paypalOrderID).
		SetResult(&body).
		SetError(&apiError{}).
		Post("/v2/checkout/orders/{id}/capture")
	if err != nil {
		return nil, fmt.Errorf("capturing paypal order: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("paypal capture failed with status %d: %w", resp.StatusCode(), asAPIError(resp))
	}

	capture := &Capture{ID: body.ID, Status: body.Status, EmailAddress: body.Payer.EmailAddress}
	if len(body.PurchaseUnits) > 0 && len(body.PurchaseUnits[0].Payments.Captures) > 0 {
		capture.Amount = body.PurchaseUnits[0].Payments.Captures[0].Amount.Value
	}
	return capture, nil
}

func asAPIError(resp *resty.Response) error {
	if e, ok := resp.Error().(*apiError); ok && e.Name != "" {
		return e
	}
	return errors.New(string(resp.Body()))
}
