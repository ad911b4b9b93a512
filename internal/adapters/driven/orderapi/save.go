package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/matchdesk/ordermatch/internal/core/domain"
	"github.com/matchdesk/ordermatch/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.OrderGateway = (*Client)(nil)

// saveDraftRequest is the /save-draft request format.
type saveDraftRequest struct {
	OrderID string            `json:"order_id"`
	Items   []domain.LineItem `json:"items"`
}

// saveFinalRequest is the /save-final request format.
type saveFinalRequest struct {
	OrderID string                 `json:"order_id"`
	Items   []domain.FinalizedItem `json:"items"`
}

// SaveDraft checkpoints the full row set under the order identifier.
func (c *Client) SaveDraft(ctx context.Context, orderID string, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	return c.postJSON(ctx, "/save-draft", saveDraftRequest{OrderID: orderID, Items: items})
}

// SaveFinal persists the reconciled rows. The caller must not emit any
// export artifact unless this returns nil.
func (c *Client) SaveFinal(ctx context.Context, orderID string, items []domain.FinalizedItem) error {
	if items == nil {
		items = []domain.FinalizedItem{}
	}
	return c.postJSON(ctx, "/save-final", saveFinalRequest{OrderID: orderID, Items: items})
}

// postJSON posts a JSON body and checks for a 200. Both save endpoints
// report success or failure only; the response body is not interpreted.
func (c *Client) postJSON(ctx context.Context, path string, body any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}
