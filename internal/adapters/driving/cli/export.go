package cli

import (
	"github.com/spf13/cobra"

	"github.com/matchdesk/ordermatch/internal/core/services"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save the reconciled order remotely and write the CSV artifact",
	Long: `Persists the reconciled rows to the order service and, only when
that save succeeds, writes the CSV export. Match selections live only in
an interactive session; exporting from a fresh process emits empty match
columns for rows that were never reconciled.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := exportService.ExportFile(cmd.Context(), exportOutput); err != nil {
			return err
		}
		name := exportOutput
		if name == "" {
			name = services.DefaultExportName
		}
		cmd.Printf("Exported %d rows to %s.\n", draftService.Len(), name)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default "+services.DefaultExportName+")")
	rootCmd.AddCommand(exportCmd)
}
