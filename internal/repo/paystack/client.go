// Package paystack wraps the subset of the Paystack REST API the
// checkout flow needs: initializing a card transaction and verifying it
// after the customer returns from the gateway.
package paystack

import (
	"context"
	"fmt"
	"math"

	"github.com/go-resty/resty/v2"

	"github.com/nee-commerce/backend/internal/config"
	"github.com/nee-commerce/backend/pkg/util"
)

type Client interface {
	InitializeTransaction(ctx context.Context, req InitializeRequest) (*Transaction, error)
	VerifyTransaction(ctx context.Context, reference string) (*Transaction, error)
	Enabled() bool
}

type InitializeRequest struct {
	Email       string  `json:"email"`
	AmountNaira float64 `json:"-"`
	AmountKobo  int64   `json:"amount"`
	Reference   string  `json:"reference,omitempty"`
	CallbackURL string  `json:"callback_url,omitempty"`
}

type Transaction struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
	Status           string `json:"status"`
}

type apiResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    Transaction `json:"data"`
}

type client struct {
	http        *resty.Client
	baseURL     string
	secretKey   string
	callbackURL string
}

func NewClient(cfg *config.Config) Client {
	return &client{
		http:        util.NewRestyClient(),
		baseURL:     cfg.Paystack.BaseURL,
		secretKey:   cfg.Paystack.SecretKey,
		callbackURL: cfg.Paystack.CallbackURL,
	}
}

// Enabled reports whether a secret key is configured. Without one the
// checkout flow records orders directly instead of going through the
// gateway.
func (c *client) Enabled() bool {
	return c.secretKey != ""
}

func (c *client) InitializeTransaction(ctx context.Context, req InitializeRequest) (*Transaction, error) {
	// Paystack amounts are in kobo.
	req.AmountKobo = int64(math.Round(req.AmountNaira * 100))
	if req.CallbackURL == "" {
		req.CallbackURL = c.callbackURL
	}

	var out apiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.secretKey).
		SetBody(req).
		SetResult(&out).
		Post(c.baseURL + "/transaction/initialize")
	if err != nil {
		return nil, fmt.Errorf("initialize transaction: %w", err)
	}
	if resp.IsError() || !out.Status {
		return nil, fmt.Errorf("initialize transaction: %s (http %d)", out.Message, resp.StatusCode())
	}

	return &out.Data, nil
}

func (c *client) VerifyTransaction(ctx context.Context, reference string) (*Transaction, error) {
	var out apiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.secretKey).
		SetResult(&out).
		Get(c.baseURL + "/transaction/verify/" + reference)
	if err != nil {
		return nil, fmt.Errorf("verify transaction: %w", err)
	}
	if resp.IsError() || !out.Status {
		return nil, fmt.Errorf("verify transaction: %s (http %d)", out.Message, resp.StatusCode())
	}

	return &out.Data, nil
}
