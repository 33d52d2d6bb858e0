package trading

import (
	"context"
	"time"
)

const (
	// DefaultAPIURL is the production Trading API endpoint.
	DefaultAPIURL = "https://api.ebay.com/ws/api.dll"
	// DefaultSiteID is the US marketplace.
	DefaultSiteID = "0"

	// EntriesPerPage is the GetSellerList page size.
	EntriesPerPage = 200
	// ListingWindowDays is the widest StartTime window GetSellerList accepts.
	ListingWindowDays = 119
	// MaxPages caps pagination against a server that never stops reporting
	// more items. Hitting it keeps the partial result.
	MaxPages = 500
	// MaxReviseItems is the hard per-request item cap of ReviseInventoryStatus.
	MaxReviseItems = 4

	// DefaultTimeout bounds one Trading API call.
	DefaultTimeout = 60 * time.Second

	compatibilityLevel = "967"
	errorLanguage      = "en_US"
	warningLevel       = "High"

	// listingTimeFormat is the millisecond UTC layout the API expects.
	listingTimeFormat = "2006-01-02T15:04:05.000Z"
)

// Trading API call names.
const (
	CallGetSellerList         = "GetSellerList"
	CallReviseInventoryStatus = "ReviseInventoryStatus"
)

// Credentials identifies one eBay account and application for the duration
// of a run. The token and key values are secrets and are never logged.
type Credentials struct {
	// AppID, DevID and CertID are the application keys from the seller's
	// developer account, sent as request headers.
	AppID  string
	DevID  string
	CertID string

	// AuthToken is the user token authorizing calls for this seller.
	AuthToken string

	// APIURL overrides DefaultAPIURL (e.g. the sandbox endpoint).
	APIURL string

	// SiteID overrides DefaultSiteID.
	SiteID string
}

func (c Credentials) endpoint() string {
	if c.APIURL != "" {
		return c.APIURL
	}
	return DefaultAPIURL
}

func (c Credentials) site() string {
	if c.SiteID != "" {
		return c.SiteID
	}
	return DefaultSiteID
}

// Listing is one active marketplace listing.
type Listing struct {
	// ItemID is the marketplace's listing identifier.
	ItemID string
	// SKU joins the listing to a supplier stock row.
	SKU string
	// Quantity is the available count: max(0, total - sold).
	Quantity int
}

// InventoryStatus is one item of a ReviseInventoryStatus request, and one
// acknowledged item of its response.
type InventoryStatus struct {
	ItemID   string `xml:"ItemID"`
	Quantity int    `xml:"Quantity"`
}

// API is the surface of the Trading API the sync engine consumes.
// Tests substitute it with a mock (see core/trading/mocks).
type API interface {
	// FetchActiveListings retrieves every active listing of the seller.
	FetchActiveListings(ctx context.Context, creds Credentials) ([]Listing, error)

	// ReviseQuantities submits one quantity revision request for at most
	// MaxReviseItems items and returns how many the remote side
	// acknowledged. A non-accepted Ack yields (0, *ProtocolError).
	ReviseQuantities(ctx context.Context, creds Credentials, items []InventoryStatus) (int, error)
}
