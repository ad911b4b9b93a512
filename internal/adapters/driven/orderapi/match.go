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
var _ driven.Matcher = (*Client)(nil)

// matchRequest is the /match request format.
type matchRequest struct {
	Queries []string `json:"queries"`
}

// matchResponse is the /match response format.
type matchResponse struct {
	Results map[string][]domain.MatchCandidate `json:"results"`
}

// MatchBatch posts every row's description to /match in one call and
// returns ranked candidates keyed by query text.
func (c *Client) MatchBatch(ctx context.Context, queries []string) (domain.MatchResults, error) {
	jsonBody, err := json.Marshal(matchRequest{Queries: queries})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/match", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var matchResp matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&matchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return domain.MatchResults(matchResp.Results), nil
}
