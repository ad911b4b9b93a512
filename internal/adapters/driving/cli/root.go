// Package cli provides the cobra command tree for ordermatch.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/matchdesk/ordermatch/internal/adapters/driven/config/file"
	"github.com/matchdesk/ordermatch/internal/adapters/driven/orderapi"
	"github.com/matchdesk/ordermatch/internal/adapters/driven/storage/memory"
	"github.com/matchdesk/ordermatch/internal/adapters/driven/storage/sqlite"
	"github.com/matchdesk/ordermatch/internal/core/ports/driven"
	"github.com/matchdesk/ordermatch/internal/core/services"
	"github.com/matchdesk/ordermatch/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	flagVerbose bool
	flagAPIURL  string
	flagOrderID string
	flagDataDir string
	flagNoCache bool
)

// Services wired by initServices for the command implementations.
var (
	draftService    *services.DraftService
	matchService    *services.MatchService
	workflowService *services.WorkflowService
	exportService   *services.ExportService

	cacheStore *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "ordermatch",
	Short: "Extract and reconcile purchase-order line items",
	Long: `ordermatch turns a PDF purchase order into reconciled catalog rows.

The workflow has three phases: upload a PDF, review the extracted line
items, then match each row against the catalog before exporting a CSV.
Run "ordermatch tui" for the interactive session, or use the extract,
items and export subcommands directly.`,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return initServices(cmd.Context()) },
	PersistentPostRun: func(*cobra.Command, []string) { closeServices() },
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "order backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagOrderID, "order-id", "", "order identifier for remote saves (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "local draft cache directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "run without a durable draft cache")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initServices builds the adapter and service graph from config and flags,
// then restores the draft from the local cache.
func initServices(ctx context.Context) error {
	logger.SetVerbose(flagVerbose)

	cfg, err := configfile.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}
	if flagOrderID != "" {
		cfg.OrderID = flagOrderID
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}

	client, err := orderapi.NewClient(orderapi.Config{BaseURL: cfg.APIURL})
	if err != nil {
		return err
	}

	cache, err := openCache(cfg.DataDir)
	if err != nil {
		return err
	}

	draftService = services.NewDraftService(cache)
	matchService = services.NewMatchService(draftService, client, cfg.SearchLimit)
	workflowService = services.NewWorkflowService(draftService, matchService, client, client, client, cfg.OrderID)
	exportService = services.NewExportService(draftService, client, cfg.OrderID)

	if err := draftService.Restore(ctx); err != nil {
		// Cache restore is best-effort: a corrupt cache must not block
		// starting a fresh draft.
		logger.Warn("draft cache restore failed: %v", err)
	}
	return nil
}

// openCache opens the durable cache, falling back to memory when disabled
// or unavailable. The local cache is best-effort and never gates running
// the tool.
func openCache(dataDir string) (driven.DraftCache, error) {
	if flagNoCache {
		return memory.NewDraftCache(), nil
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("draft cache unavailable, continuing without: %v", err)
		return memory.NewDraftCache(), nil
	}
	cacheStore = store
	return store, nil
}

// closeServices releases adapter resources.
func closeServices() {
	if cacheStore != nil {
		if err := cacheStore.Close(); err != nil {
			logger.Warn("closing draft cache: %v", err)
		}
		cacheStore = nil
	}
}
