package orderapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matchdesk/ordermatch/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.CatalogSearcher = (*Client)(nil)

// searchResponse is the /catalog/search response format.
type searchResponse struct {
	Results []string `json:"results"`
}

// Search queries /catalog/search for catalog names containing the query
// text. Calls are rate-limited: search traffic follows keystrokes, and a
// blocked wait is preferable to hammering the backend.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/catalog/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return searchResp.Results, nil
}
