package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"dropsync/core/config"
	"dropsync/core/database"
	"dropsync/core/engine"
	"dropsync/core/feed"
	"dropsync/core/logger"
	"dropsync/core/trading"
	accountmodels "dropsync/feature/account/models"
	suppliermodels "dropsync/feature/supplier/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Flags for the sync command
	syncAccountID uint
	syncFeedID    uint
	syncFeedURL   string
	syncFeedType  string
	syncSKUCol    string
	syncQtyCol    string
	syncMode      string
	syncAppID     string
	syncDevID     string
	syncCertID    string
	syncToken     string
	syncDryRun    bool
	syncYes       bool
)

// syncCmd runs one feed-to-listings sync from the terminal.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one supplier feed sync against an eBay account",
	Long: `Downloads a supplier feed, compares it against the account's active
listings and revises listing quantities that drifted.

The feed and credentials come either from stored rows (--account-id,
--feed-id) or directly from flags.

Examples:
  # Plan only, from stored rows (no listing is touched)
  sync --account-id 3 --feed-id 7 --dry-run

  # Apply with interactive confirmation
  sync --account-id 3 --feed-id 7

  # Apply non-interactively
  sync --account-id 3 --feed-id 7 --yes

  # Fully flag-driven, no database
  sync --feed-url https://supplier.example.com/stock.csv --feed-type azuregreen \
       --app-id APP --dev-id DEV --cert-id CERT --token TOKEN --dry-run`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().UintVar(&syncAccountID, "account-id", 0, "Load credentials from this stored eBay account")
	syncCmd.Flags().UintVar(&syncFeedID, "feed-id", 0, "Load feed settings from this stored supplier feed")
	syncCmd.Flags().StringVar(&syncFeedURL, "feed-url", "", "Supplier feed URL (alternative to --feed-id)")
	syncCmd.Flags().StringVar(&syncFeedType, "feed-type", "", "Feed format: azuregreen, diecast or custom")
	syncCmd.Flags().StringVar(&syncSKUCol, "sku-column", "", "SKU column name for custom feeds")
	syncCmd.Flags().StringVar(&syncQtyCol, "quantity-column", "", "Quantity column name for custom feeds")
	syncCmd.Flags().StringVar(&syncMode, "mode", "", "Quantity mode: binary or exact (default binary)")
	syncCmd.Flags().StringVar(&syncAppID, "app-id", "", "eBay application ID (alternative to --account-id)")
	syncCmd.Flags().StringVar(&syncDevID, "dev-id", "", "eBay developer ID")
	syncCmd.Flags().StringVar(&syncCertID, "cert-id", "", "eBay certificate ID")
	syncCmd.Flags().StringVar(&syncToken, "token", "", "eBay user token")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Plan and report only, revise nothing")
	syncCmd.Flags().BoolVar(&syncYes, "yes", false, "Auto-confirm quantity updates (non-interactive)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Stored rows need a database connection, flag-driven runs do not.
	var db *gorm.DB
	if syncAccountID > 0 || syncFeedID > 0 {
		db, err = database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	feedURL, feedType, columns, err := resolveFeed(db)
	if err != nil {
		return err
	}

	creds, storedMode, err := resolveCredentials(db)
	if err != nil {
		return err
	}

	mode, err := resolveMode(storedMode)
	if err != nil {
		return err
	}

	l.Info("Starting sync run",
		zap.String("feed_url", feedURL),
		zap.String("feed_type", string(feedType)),
		zap.String("mode", string(mode)),
	)

	// Step 1: Plan (always runs, touches nothing)
	raw, err := feed.Fetch(ctx, nil, feedURL)
	if err != nil {
		return fmt.Errorf("failed to download feed: %w", err)
	}
	stock := feed.Normalize(raw, feedType, columns, mode)

	api := trading.NewClient(nil, l)
	listings, err := api.FetchActiveListings(ctx, creds)
	if err != nil {
		return fmt.Errorf("failed to fetch active listings: %w", err)
	}

	updates, unmatched := engine.Diff(listings, stock)

	// Step 2: Print report
	printSyncPlan(l, len(stock), len(listings), unmatched, updates)

	if len(updates) == 0 {
		l.Info("All listing quantities already match the feed.")
		return nil
	}

	// Step 3: Apply (if confirmed)
	if syncDryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if !confirmQuantityUpdates(len(updates)) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Applying quantity updates...")
	applied, failed := applyPlannedUpdates(ctx, api, creds, updates, l)

	l.Info("Sync run finished",
		zap.Int("items_updated", applied),
		zap.Int("items_failed", failed),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d updates failed", failed, len(updates))
	}
	return nil
}

// resolveFeed returns the feed settings from the stored row or from flags.
func resolveFeed(db *gorm.DB) (string, feed.Type, feed.ColumnMapping, error) {
	if syncFeedID > 0 {
		var row suppliermodels.SupplierFeed
		if err := db.First(&row, syncFeedID).Error; err != nil {
			return "", "", feed.ColumnMapping{}, fmt.Errorf("failed to load feed %d: %w", syncFeedID, err)
		}
		typ, err := feed.ParseType(row.FeedType)
		if err != nil {
			return "", "", feed.ColumnMapping{}, fmt.Errorf("stored feed %d: %w", syncFeedID, err)
		}
		return row.FeedURL, typ, feed.ColumnMapping{
			SKUColumn:      row.SKUColumn,
			QuantityColumn: row.QuantityColumn,
		}, nil
	}

	if syncFeedURL == "" || syncFeedType == "" {
		return "", "", feed.ColumnMapping{}, fmt.Errorf("either --feed-id or both --feed-url and --feed-type are required")
	}
	typ, err := feed.ParseType(syncFeedType)
	if err != nil {
		return "", "", feed.ColumnMapping{}, err
	}
	return syncFeedURL, typ, feed.ColumnMapping{
		SKUColumn:      syncSKUCol,
		QuantityColumn: syncQtyCol,
	}, nil
}

// resolveCredentials returns the marketplace credentials from the stored
// account or from flags, plus the account's stored quantity mode.
func resolveCredentials(db *gorm.DB) (trading.Credentials, string, error) {
	if syncAccountID > 0 {
		var row accountmodels.EbayAccount
		if err := db.First(&row, syncAccountID).Error; err != nil {
			return trading.Credentials{}, "", fmt.Errorf("failed to load account %d: %w", syncAccountID, err)
		}
		return trading.Credentials{
			AppID:     row.AppID,
			DevID:     row.DevID,
			CertID:    row.CertID,
			AuthToken: row.AccessToken,
		}, row.QuantityMode, nil
	}

	if syncAppID == "" || syncDevID == "" || syncCertID == "" || syncToken == "" {
		return trading.Credentials{}, "", fmt.Errorf("either --account-id or all of --app-id, --dev-id, --cert-id and --token are required")
	}
	return trading.Credentials{
		AppID:     syncAppID,
		DevID:     syncDevID,
		CertID:    syncCertID,
		AuthToken: syncToken,
	}, "", nil
}

// resolveMode picks the quantity mode: the --mode flag wins, then the
// stored account's mode, then binary.
func resolveMode(storedMode string) (feed.Mode, error) {
	if syncMode != "" {
		return feed.ParseMode(syncMode)
	}
	return feed.ParseMode(storedMode)
}

// printSyncPlan prints the planned updates using the logger.
func printSyncPlan(l *zap.Logger, feedSKUs, listings, unmatched int, updates []engine.PendingUpdate) {
	outOfStock := 0
	for _, u := range updates {
		if u.NewQuantity == 0 {
			outOfStock++
		}
	}

	l.Info("Sync plan",
		zap.Int("feed_skus", feedSKUs),
		zap.Int("listings_checked", listings),
		zap.Int("planned_updates", len(updates)),
		zap.Int("going_out_of_stock", outOfStock),
		zap.Int("unmatched_skus", unmatched),
	)

	// Show sample of updates (max 5 for logger)
	maxShow := 5
	if len(updates) < maxShow {
		maxShow = len(updates)
	}
	for i := 0; i < maxShow; i++ {
		u := updates[i]
		l.Info("Planned update",
			zap.String("item_id", u.ItemID),
			zap.String("sku", u.SKU),
			zap.Int("old_qty", u.OldQuantity),
			zap.Int("new_qty", u.NewQuantity),
		)
	}
	if len(updates) > maxShow {
		l.Info("Additional updates not shown", zap.Int("count", len(updates)-maxShow))
	}
}

// applyPlannedUpdates pushes the planned updates in batches of at most
// trading.MaxReviseItems. A failing batch counts entirely failed and never
// stops the batches after it.
func applyPlannedUpdates(ctx context.Context, api trading.API, creds trading.Credentials, updates []engine.PendingUpdate, l *zap.Logger) (applied, failed int) {
	for start := 0; start < len(updates); start += trading.MaxReviseItems {
		end := start + trading.MaxReviseItems
		if end > len(updates) {
			end = len(updates)
		}
		batch := updates[start:end]

		items := make([]trading.InventoryStatus, len(batch))
		for i, u := range batch {
			items[i] = trading.InventoryStatus{ItemID: u.ItemID, Quantity: u.NewQuantity}
		}

		n, err := api.ReviseQuantities(ctx, creds, items)
		if err != nil {
			l.Error("Batch update failed", zap.Error(err), zap.Int("batch_size", len(batch)))
			failed += len(batch)
			continue
		}

		applied += n
		if n < len(batch) {
			failed += len(batch) - n
		}
	}
	return applied, failed
}

// confirmQuantityUpdates prompts the user for confirmation or uses --yes flag.
func confirmQuantityUpdates(count int) bool {
	if syncYes {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  Type 'yes' to revise %d listing quantities: ", count)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
