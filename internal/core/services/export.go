package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matchdesk/ordermatch/internal/core/domain"
	"github.com/matchdesk/ordermatch/internal/core/ports/driven"
	"github.com/matchdesk/ordermatch/internal/core/ports/driving"
	"github.com/matchdesk/ordermatch/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// DefaultExportName is the artifact filename used when none is given.
const DefaultExportName = "order_export.csv"

// exportHeader is the fixed CSV header row.
var exportHeader = []string{"Request Item", "Match Item", "Quantity", "Unit Price", "Total Amount"}

// ExportService serializes the reconciled draft. Remote persistence comes
// strictly before artifact emission: no CSV exists without a corresponding
// server-side record.
type ExportService struct {
	draft   *DraftService
	gateway driven.OrderGateway
	orderID string
}

// NewExportService creates an export service for the draft.
func NewExportService(draft *DraftService, gateway driven.OrderGateway, orderID string) *ExportService {
	return &ExportService{draft: draft, gateway: gateway, orderID: orderID}
}

// Export persists the reconciled rows via the gateway and, only on
// success, writes the CSV serialization to w. On gateway failure nothing
// is written and the error is returned.
func (s *ExportService) Export(ctx context.Context, w io.Writer) error {
	rows := s.draft.Rows()
	finalized := make([]domain.FinalizedItem, len(rows))
	for i := range rows {
		finalized[i] = rows[i].Finalize()
	}

	if err := s.gateway.SaveFinal(ctx, s.orderID, finalized); err != nil {
		return fmt.Errorf("final save failed: %w", err)
	}

	if _, err := io.WriteString(w, serializeCSV(finalized)); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	logger.Info("exported %d reconciled rows for order %s", len(finalized), s.orderID)
	return nil
}

// ExportFile runs Export into the file at path. The file is created only
// after the remote save succeeded, so an aborted export leaves no artifact.
func (s *ExportService) ExportFile(ctx context.Context, path string) error {
	if path == "" {
		path = DefaultExportName
	}
	var buf strings.Builder
	if err := s.Export(ctx, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// serializeCSV renders the finalized rows: fixed header, text fields
// double-quoted with internal quotes doubled, numeric fields unquoted,
// CRLF row separators. encoding/csv is deliberately not used here: it only
// quotes on demand, and this format always quotes text columns.
func serializeCSV(items []domain.FinalizedItem) string {
	var b strings.Builder
	b.WriteString(strings.Join(exportHeader, ","))
	for _, it := range items {
		b.WriteString("\r\n")
		b.WriteString(quoteField(it.RequestItem))
		b.WriteByte(',')
		b.WriteString(quoteField(it.MatchItem))
		b.WriteByte(',')
		b.WriteString(formatNumber(it.Quantity))
		b.WriteByte(',')
		b.WriteString(formatNumber(it.UnitPrice))
		b.WriteByte(',')
		b.WriteString(formatNumber(it.TotalAmount))
	}
	return b.String()
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
