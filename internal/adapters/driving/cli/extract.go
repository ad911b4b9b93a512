package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matchdesk/ordermatch/internal/core/domain"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract line items from a purchase-order PDF",
	Long: `Sends the PDF to the extraction service and loads the resulting
line items into the draft, replacing any previous draft. The draft is
mirrored to the local cache, so later commands (items, export) see it.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	workflowService.StageFile(args[0])

	if err := workflowService.ConfirmExtract(cmd.Context()); err != nil {
		return fmt.Errorf("extraction: %w", err)
	}

	items := draftService.Snapshot()
	cmd.Printf("Extracted %d line items:\n\n", len(items))
	printItems(cmd, items)
	return nil
}

// printItems renders items as an aligned table.
func printItems(cmd *cobra.Command, items []domain.LineItem) {
	if len(items) == 0 {
		cmd.Println("No line items.")
		return
	}
	cmd.Printf("  %-3s %-50s %10s %12s %12s\n", "#", "Request Item", "Quantity", "Unit Price", "Total")
	for i, it := range items {
		name := it.RequestItem
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		cmd.Printf("  %-3d %-50s %10g %12g %12g\n", i, name, it.Quantity, it.UnitPrice, it.TotalAmount)
	}
}
