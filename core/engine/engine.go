package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dropsync/core/feed"
	"dropsync/core/trading"

	"go.uber.org/zap"
)

// Run executes one sync described by spec and returns its Result.
//
// Run never returns an error and never lets a panic escape: feed and
// listing failures produce a failed Result with all counts at zero, and
// batch update failures are absorbed into the ItemsFailed counter.
func Run(ctx context.Context, spec Spec) (result Result) {
	start := time.Now()

	l := spec.Logger
	if l == nil {
		l = zap.NewNop()
	}

	defer func() {
		if r := recover(); r != nil {
			l.Error("Sync run panicked", zap.Any("panic", r))
			result = failedResult(start, KindInternal, fmt.Sprintf("internal error: %v", r))
		}
	}()

	// 1. Supplier stock
	l.Info("Downloading supplier feed",
		zap.String("feed_url", spec.FeedURL),
		zap.String("feed_type", string(spec.FeedType)),
	)
	raw, err := feed.Fetch(ctx, spec.FeedClient, spec.FeedURL)
	if err != nil {
		l.Error("Feed download failed", zap.Error(err))
		return failedResult(start, classify(err), err.Error())
	}
	if spec.Snapshot != nil {
		spec.Snapshot(ctx, raw)
	}

	stock := feed.Normalize(raw, spec.FeedType, spec.Columns, spec.Mode)
	l.Info("Loaded supplier stock", zap.Int("skus", len(stock)))

	// 2. Marketplace listings
	api := spec.Trading
	if api == nil {
		api = trading.NewClient(nil, l)
	}
	listings, err := api.FetchActiveListings(ctx, spec.Credentials)
	if err != nil {
		l.Error("Listing fetch failed", zap.Error(err))
		return failedResult(start, classify(err), err.Error())
	}

	// 3. Diff
	updates, unmatched := Diff(listings, stock)
	l.Info("Computed corrective updates",
		zap.Int("listings", len(listings)),
		zap.Int("updates", len(updates)),
		zap.Int("unmatched_skus", unmatched),
	)

	// 4. Apply
	var updated, failed int
	if len(updates) > 0 {
		updated, failed = applyUpdates(ctx, api, spec.Credentials, updates, l)
	}

	outOfStock := 0
	for _, update := range updates {
		if update.NewQuantity == 0 {
			outOfStock++
		}
	}

	result = Result{
		Status:               StatusCompleted,
		TotalListingsChecked: len(listings),
		ItemsUpdated:         updated,
		ItemsFailed:          failed,
		ItemsOutOfStock:      outOfStock,
		UnmatchedSKUs:        unmatched,
		DurationSeconds:      time.Since(start).Seconds(),
		FeedSKUs:             len(stock),
	}

	l.Info("Sync run completed",
		zap.Int("items_updated", result.ItemsUpdated),
		zap.Int("items_failed", result.ItemsFailed),
		zap.Int("items_out_of_stock", result.ItemsOutOfStock),
		zap.Float64("duration_seconds", result.DurationSeconds),
	)
	return result
}

// applyUpdates pushes updates in consecutive batches of at most
// trading.MaxReviseItems. A failing batch is counted entirely failed and
// never stops the batches after it.
func applyUpdates(ctx context.Context, api trading.API, creds trading.Credentials, updates []PendingUpdate, l *zap.Logger) (succeeded, failed int) {
	for start := 0; start < len(updates); start += trading.MaxReviseItems {
		end := start + trading.MaxReviseItems
		if end > len(updates) {
			end = len(updates)
		}
		batch := updates[start:end]

		items := make([]trading.InventoryStatus, len(batch))
		for i, update := range batch {
			items[i] = trading.InventoryStatus{ItemID: update.ItemID, Quantity: update.NewQuantity}
		}

		n, err := api.ReviseQuantities(ctx, creds, items)
		if err != nil {
			l.Error("Batch update failed",
				zap.Error(err),
				zap.Int("batch_size", len(batch)),
			)
			failed += len(batch)
			continue
		}

		succeeded += n
		if n < len(batch) {
			failed += len(batch) - n
		}
	}
	return succeeded, failed
}

// failedResult builds the terminal record of an aborted run. Counts stay
// at zero: the failure is total from the caller's perspective.
func failedResult(start time.Time, kind ErrorKind, message string) Result {
	return Result{
		Status:          StatusFailed,
		DurationSeconds: time.Since(start).Seconds(),
		ErrorKind:       kind,
		ErrorMessage:    message,
	}
}

// classify maps an error to its machine-readable kind.
func classify(err error) ErrorKind {
	var fetchErr *feed.FetchError
	if errors.As(err, &fetchErr) {
		return KindFeedFetch
	}
	var protocolErr *trading.ProtocolError
	if errors.As(err, &protocolErr) {
		return KindRemoteProtocol
	}
	var transportErr *trading.TransportError
	if errors.As(err, &transportErr) {
		return KindRemoteTransport
	}
	return KindInternal
}
