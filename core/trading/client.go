package trading

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"dropsync/core/utils"

	"go.uber.org/zap"
)

// Client is the live Trading API implementation of API.
// The zero value is not usable; create one with NewClient.
type Client struct {
	http   *http.Client
	logger *zap.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a Trading API client. A nil httpClient gets a default
// with DefaultTimeout and strict connection timeouts; a nil logger
// disables client logging.
func NewClient(httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   DefaultTimeout,
			Transport: defaultTransport(),
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{http: httpClient, logger: logger}
}

// defaultTransport bounds connection setup separately from the overall
// call timeout so a black-holed endpoint fails fast.
func defaultTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// FetchActiveListings retrieves every active listing of the seller,
// paging until the server reports the set complete.
func (c *Client) FetchActiveListings(ctx context.Context, creds Credentials) ([]Listing, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -ListingWindowDays).Format(listingTimeFormat)
	to := now.Format(listingTimeFormat)

	var all []Listing
	page := 1
	for {
		listings, totalPages, hasMore, err := c.fetchListingsPage(ctx, creds, page, from, to)
		if err != nil {
			return nil, err
		}
		all = append(all, listings...)

		c.logger.Info("Fetched listings page",
			zap.Int("page", page),
			zap.Int("total_pages", totalPages),
			zap.Int("active_listings", len(listings)),
		)

		if page >= totalPages && !hasMore {
			break
		}
		page++

		if page > MaxPages {
			// Partial results are still worth reconciling.
			c.logger.Warn("Listing pagination hit the page ceiling", zap.Int("max_pages", MaxPages))
			break
		}
	}

	c.logger.Info("Fetched all active listings", zap.Int("total", len(all)))
	return all, nil
}

// fetchListingsPage fetches one GetSellerList page and returns its active
// listings plus the server's pagination verdict.
func (c *Client) fetchListingsPage(ctx context.Context, creds Credentials, page int, from, to string) ([]Listing, int, bool, error) {
	request := getSellerListRequest{
		Credentials:   requesterCredentials{EBayAuthToken: creds.AuthToken},
		ErrorLanguage: errorLanguage,
		WarningLevel:  warningLevel,
		StartTimeFrom: from,
		StartTimeTo:   to,
		Pagination:    paginationRequest{EntriesPerPage: EntriesPerPage, PageNumber: page},
		Granularity:   "Fine",
	}

	var response getSellerListResponse
	if err := c.call(ctx, creds, CallGetSellerList, request, &response); err != nil {
		return nil, 0, false, err
	}
	if !ackAccepted(response.Ack) {
		return nil, 0, false, &ProtocolError{
			Call:   CallGetSellerList,
			Ack:    response.Ack,
			Errors: toAPIErrors(response.Errors),
		}
	}

	listings := make([]Listing, 0, len(response.Items))
	for _, item := range response.Items {
		if item.SellingStatus.ListingStatus != "Active" {
			continue
		}

		itemID := item.ItemID
		sku := strings.TrimSpace(item.SKU)
		if itemID == "" || sku == "" {
			continue
		}

		total := utils.ToInt(item.Quantity)
		sold := utils.ToInt(item.SellingStatus.QuantitySold)
		available := total - sold
		if available < 0 {
			available = 0
		}

		listings = append(listings, Listing{ItemID: itemID, SKU: sku, Quantity: available})
	}

	totalPages := 1
	if s := strings.TrimSpace(response.Pagination.TotalNumberOfPages); s != "" {
		totalPages = utils.ToInt(s)
	}
	hasMore := utils.ToBool(response.HasMoreItems)

	return listings, totalPages, hasMore, nil
}

// ReviseQuantities submits one ReviseInventoryStatus request and returns
// the number of items the response acknowledges. The count can fall short
// of len(items) when the endpoint rejects individual items.
func (c *Client) ReviseQuantities(ctx context.Context, creds Credentials, items []InventoryStatus) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if len(items) > MaxReviseItems {
		return 0, fmt.Errorf("at most %d items per %s call, got %d", MaxReviseItems, CallReviseInventoryStatus, len(items))
	}

	request := reviseInventoryStatusRequest{
		Credentials:   requesterCredentials{EBayAuthToken: creds.AuthToken},
		ErrorLanguage: errorLanguage,
		WarningLevel:  warningLevel,
		Items:         items,
	}

	var response reviseInventoryStatusResponse
	if err := c.call(ctx, creds, CallReviseInventoryStatus, request, &response); err != nil {
		return 0, err
	}
	if !ackAccepted(response.Ack) {
		return 0, &ProtocolError{
			Call:   CallReviseInventoryStatus,
			Ack:    response.Ack,
			Errors: toAPIErrors(response.Errors),
		}
	}

	return len(response.Items), nil
}

// call posts one Trading API request and decodes the response body into
// out. Failures before a decoded response are *TransportError.
func (c *Client) call(ctx context.Context, creds Credentials, callName string, payload any, out any) error {
	body, err := xml.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", callName, err)
	}
	body = append([]byte(xml.Header), body...)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, creds.endpoint(), bytes.NewReader(body))
	if err != nil {
		return &TransportError{Call: callName, Err: err}
	}

	req.Header.Set("X-EBAY-API-SITEID", creds.site())
	req.Header.Set("X-EBAY-API-COMPATIBILITY-LEVEL", compatibilityLevel)
	req.Header.Set("X-EBAY-API-CALL-NAME", callName)
	req.Header.Set("X-EBAY-API-APP-NAME", creds.AppID)
	req.Header.Set("X-EBAY-API-DEV-NAME", creds.DevID)
	req.Header.Set("X-EBAY-API-CERT-NAME", creds.CertID)
	req.Header.Set("Content-Type", "text/xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Call: callName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Call: callName, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Call: callName, Err: err}
	}
	if err := xml.Unmarshal(raw, out); err != nil {
		return &TransportError{Call: callName, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}
