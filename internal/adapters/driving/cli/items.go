package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matchdesk/ordermatch/internal/core/domain"
)

var (
	editItem  string
	editQty   float64
	editPrice float64
	editTotal float64
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Inspect and edit the draft line items",
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the draft line items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		printItems(cmd, draftService.Snapshot())
		return nil
	},
}

var itemsEditCmd = &cobra.Command{
	Use:   "edit <index>",
	Short: "Edit one line item",
	Long: `Replaces fields of the line item at the given index. Flags that are
not set keep the current value; the update itself is always a full row
replace. Total amount stays independently editable and is not recomputed
from quantity and unit price.`,
	Args: cobra.ExactArgs(1),
	RunE: runItemsEdit,
}

var itemsDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete one line item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		if err := draftService.Remove(index); err != nil {
			return err
		}
		cmd.Printf("Deleted row %d; %d rows remain.\n", index, draftService.Len())
		return nil
	},
}

func init() {
	itemsEditCmd.Flags().StringVar(&editItem, "item", "", "request item text")
	itemsEditCmd.Flags().Float64Var(&editQty, "qty", -1, "quantity")
	itemsEditCmd.Flags().Float64Var(&editPrice, "price", -1, "unit price")
	itemsEditCmd.Flags().Float64Var(&editTotal, "total", -1, "total amount")

	itemsCmd.AddCommand(itemsListCmd)
	itemsCmd.AddCommand(itemsEditCmd)
	itemsCmd.AddCommand(itemsDeleteCmd)
	rootCmd.AddCommand(itemsCmd)
}

func runItemsEdit(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	items := draftService.Snapshot()
	if index < 0 || index >= len(items) {
		return domain.ErrIndexOutOfRange
	}

	// Carry unedited fields forward: the service only does full replaces.
	item := items[index]
	if cmd.Flags().Changed("item") {
		item.RequestItem = editItem
	}
	if cmd.Flags().Changed("qty") {
		item.Quantity = editQty
	}
	if cmd.Flags().Changed("price") {
		item.UnitPrice = editPrice
	}
	if cmd.Flags().Changed("total") {
		item.TotalAmount = editTotal
	}

	if err := draftService.Update(index, item); err != nil {
		return err
	}
	cmd.Printf("Updated row %d.\n", index)
	return nil
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q is not a number", domain.ErrInvalidInput, arg)
	}
	return index, nil
}
