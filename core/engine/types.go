package engine

import (
	"context"
	"net/http"

	"dropsync/core/feed"
	"dropsync/core/trading"

	"go.uber.org/zap"
)

// Run outcomes.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ErrorKind classifies the failure that ended a run.
type ErrorKind string

const (
	// KindFeedFetch is a transport or HTTP failure downloading the
	// supplier feed.
	KindFeedFetch ErrorKind = "feed_fetch"
	// KindRemoteTransport is a network or HTTP failure calling the
	// marketplace API.
	KindRemoteTransport ErrorKind = "remote_transport"
	// KindRemoteProtocol is a non-success acknowledgment from the
	// marketplace API.
	KindRemoteProtocol ErrorKind = "remote_protocol"
	// KindInternal is anything the engine did not expect.
	KindInternal ErrorKind = "internal"
)

// PendingUpdate is one corrective quantity change for a single listing.
// It exists only within the run that produced it.
type PendingUpdate struct {
	// ItemID is the marketplace listing identifier.
	ItemID string `json:"item_id"`

	// SKU joins the listing to the supplier stock row.
	SKU string `json:"sku"`

	// OldQuantity is the listing's current available quantity.
	OldQuantity int `json:"old_qty"`

	// NewQuantity is the supplier availability to push. Always differs
	// from OldQuantity.
	NewQuantity int `json:"new_qty"`
}

// Spec configures a single sync run. It is passed by value and read only;
// concurrent runs with separate specs share nothing.
type Spec struct {
	// FeedURL locates the supplier feed document.
	FeedURL string

	// FeedType selects the feed format.
	FeedType feed.Type

	// Columns maps the SKU/quantity columns for feed.TypeCustom.
	// Ignored by the other feed types.
	Columns feed.ColumnMapping

	// Mode reduces parsed quantities. The zero value is binary.
	Mode feed.Mode

	// Credentials authorize the marketplace calls of this run.
	Credentials trading.Credentials

	// Trading overrides the marketplace client. Nil uses the live
	// Trading API endpoint.
	Trading trading.API

	// FeedClient overrides the HTTP client for the feed download.
	FeedClient *http.Client

	// Logger receives run progress. Nil disables logging.
	Logger *zap.Logger

	// Snapshot, when set, receives the raw feed document after a
	// successful download. It is best-effort: the hook owns its own
	// failures and must not block the run.
	Snapshot func(ctx context.Context, data []byte)
}

// Result is the terminal, immutable record of one run. The JSON keys are
// the persisted wire format of sync job rows and must not change.
type Result struct {
	// Status is StatusCompleted or StatusFailed.
	Status string `json:"status"`

	// TotalListingsChecked counts the active listings fetched.
	TotalListingsChecked int `json:"total_listings_checked"`

	// ItemsUpdated counts listing quantities the marketplace acknowledged.
	ItemsUpdated int `json:"items_updated"`

	// ItemsFailed counts updates the marketplace rejected or that failed
	// with their batch.
	ItemsFailed int `json:"items_failed"`

	// ItemsOutOfStock counts updates that set a quantity to zero.
	ItemsOutOfStock int `json:"items_out_of_stock"`

	// UnmatchedSKUs counts listings with no supplier stock row.
	UnmatchedSKUs int `json:"unmatched_skus"`

	// DurationSeconds is the wall-clock length of the run, measured to
	// the failure point on the failed path.
	DurationSeconds float64 `json:"duration_seconds"`

	// ErrorKind classifies the failure. Empty on success.
	ErrorKind ErrorKind `json:"error_kind,omitempty"`

	// ErrorMessage describes the failure. Empty on success.
	ErrorMessage string `json:"error_message,omitempty"`

	// FeedSKUs counts the distinct SKUs loaded from the feed. It feeds
	// supplier bookkeeping and is not part of the wire format.
	FeedSKUs int `json:"-"`
}
