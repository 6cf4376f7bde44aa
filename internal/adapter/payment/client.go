package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kioskpos/bundle_service/internal/core/domain"
)

// Client is a thin JSON client for the external payment authorizer.
// A decline is a normal outcome carried in the Authorization result;
// errors mean the request itself could not be completed.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type authorizeRequest struct {
	Amount    int64  `json:"amount"`
	Method    string `json:"method"`
	Reference string `json:"reference"`
}

type authorizeResponse struct {
	TransactionID string `json:"transaction_id"`
	Approved      bool   `json:"approved"`
	DeclineReason string `json:"decline_reason,omitempty"`
}

func (c *Client) Authorize(ctx context.Context, amount int64, method domain.PaymentMethod, reference string) (*domain.Authorization, error) {
	payload, err := json.Marshal(authorizeRequest{
		Amount:    amount,
		Method:    string(method),
		Reference: reference,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/authorizations", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	// The authorizer dedupes on this header, so a retried request after a
	// network timeout settles on the original charge.
	req.Header.Set("Idempotency-Key", reference)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment authorizer unreachable: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPaymentRequired {
		return nil, fmt.Errorf("payment authorizer returned status %d: %s", resp.StatusCode, string(body))
	}

	var out authorizeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode authorizer response: %w", err)
	}

	return &domain.Authorization{
		TransactionID: out.TransactionID,
		Approved:      out.Approved,
		DeclineReason: out.DeclineReason,
	}, nil
}
