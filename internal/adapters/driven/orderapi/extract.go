package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/matchdesk/ordermatch/internal/core/domain"
	"github.com/matchdesk/ordermatch/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.Extractor = (*Client)(nil)

// Extract posts the PDF as multipart form data to /extract and returns the
// extracted line items. Raw records use whatever column names the source
// document had; normalizeItem maps them onto the canonical four fields.
func (c *Client) Extract(ctx context.Context, filename string, file io.Reader) ([]domain.LineItem, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.extractHTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var raw []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := make([]domain.LineItem, len(raw))
	for i, r := range raw {
		items[i] = normalizeItem(r)
	}
	return items, nil
}

// numberRun matches the first run of digits and dots in a string.
var numberRun = regexp.MustCompile(`[\d.]+`)

// parseNumber leniently extracts a number from arbitrary extraction
// output: thousands separators are stripped, the first numeric run wins,
// and anything unparseable is 0.
func parseNumber(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return v
	case int:
		return float64(v)
	}
	s := strings.ReplaceAll(fmt.Sprintf("%v", raw), ",", "")
	m := numberRun.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

// normalizeItem maps a raw extracted record onto the canonical line item.
// Extraction output varies by document: quantity may arrive as Qty,
// Quantity or Amount; unit price as Cost, Price, Unit Cost or Unit Price;
// the total as Total, Amount (when a separate quantity exists) or Ext Cost.
// Qty, Quantity and Total count as present even when zero; the price and
// name aliases fall through on zero or blank values, which extraction
// emits when it detects a column but cannot read the cell.
func normalizeItem(raw map[string]any) domain.LineItem {
	qty := firstPresent(raw, "Qty", "Quantity")
	if qty == nil {
		qty = raw["Amount"]
	}

	unit := firstTruthy(raw, "Cost", "Price", "Unit Cost", "Unit Price")

	total := raw["Total"]
	if total == nil {
		if firstTruthy(raw, "Qty", "Quantity") != nil && raw["Amount"] != nil {
			total = raw["Amount"]
		} else {
			total = raw["Ext Cost"]
		}
	}

	name := ""
	if v := firstTruthy(raw, "Request Item", "Item"); v != nil {
		name = fmt.Sprintf("%v", v)
	}

	return domain.LineItem{
		RequestItem: name,
		Quantity:    parseNumber(qty),
		UnitPrice:   parseNumber(unit),
		TotalAmount: parseNumber(total),
	}
}

// firstPresent returns the first non-nil value among the given keys.
func firstPresent(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstTruthy returns the first value among the given keys that is set
// and not a zero scalar.
func firstTruthy(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && truthy(v) {
			return v
		}
	}
	return nil
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case int:
		return x != 0
	case string:
		return x != ""
	}
	return true
}
