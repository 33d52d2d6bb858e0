package trading

import "encoding/xml"

// Wire types for the eBay Trading API XML payloads. Numeric response
// fields stay strings and are coerced leniently; the endpoint blanks
// fields it has no value for.

const xmlns = "urn:ebay:apis:eBLBaseComponents"

type requesterCredentials struct {
	EBayAuthToken string `xml:"eBayAuthToken"`
}

type paginationRequest struct {
	EntriesPerPage int `xml:"EntriesPerPage"`
	PageNumber     int `xml:"PageNumber"`
}

type getSellerListRequest struct {
	XMLName       xml.Name             `xml:"urn:ebay:apis:eBLBaseComponents GetSellerListRequest"`
	Credentials   requesterCredentials `xml:"RequesterCredentials"`
	ErrorLanguage string               `xml:"ErrorLanguage"`
	WarningLevel  string               `xml:"WarningLevel"`
	StartTimeFrom string               `xml:"StartTimeFrom"`
	StartTimeTo   string               `xml:"StartTimeTo"`
	Pagination    paginationRequest    `xml:"Pagination"`
	Granularity   string               `xml:"GranularityLevel"`
}

type reviseInventoryStatusRequest struct {
	XMLName       xml.Name             `xml:"urn:ebay:apis:eBLBaseComponents ReviseInventoryStatusRequest"`
	Credentials   requesterCredentials `xml:"RequesterCredentials"`
	ErrorLanguage string               `xml:"ErrorLanguage"`
	WarningLevel  string               `xml:"WarningLevel"`
	Items         []InventoryStatus    `xml:"InventoryStatus"`
}

type apiErrorResponse struct {
	ErrorCode    string `xml:"ErrorCode"`
	ShortMessage string `xml:"ShortMessage"`
	LongMessage  string `xml:"LongMessage"`
}

// message prefers the long form, matching what sellers see in error mails.
func (e apiErrorResponse) message() string {
	if e.LongMessage != "" {
		return e.LongMessage
	}
	return e.ShortMessage
}

type sellingStatusResponse struct {
	ListingStatus string `xml:"ListingStatus"`
	QuantitySold  string `xml:"QuantitySold"`
}

type itemResponse struct {
	ItemID        string                `xml:"ItemID"`
	SKU           string                `xml:"SKU"`
	Quantity      string                `xml:"Quantity"`
	SellingStatus sellingStatusResponse `xml:"SellingStatus"`
}

type paginationResultResponse struct {
	TotalNumberOfPages string `xml:"TotalNumberOfPages"`
}

type getSellerListResponse struct {
	XMLName      xml.Name                 `xml:"GetSellerListResponse"`
	Ack          string                   `xml:"Ack"`
	Errors       []apiErrorResponse       `xml:"Errors"`
	Items        []itemResponse           `xml:"ItemArray>Item"`
	Pagination   paginationResultResponse `xml:"PaginationResult"`
	HasMoreItems string                   `xml:"HasMoreItems"`
}

type inventoryStatusResponse struct {
	ItemID   string `xml:"ItemID"`
	Quantity string `xml:"Quantity"`
}

type reviseInventoryStatusResponse struct {
	XMLName xml.Name                  `xml:"ReviseInventoryStatusResponse"`
	Ack     string                    `xml:"Ack"`
	Errors  []apiErrorResponse        `xml:"Errors"`
	Items   []inventoryStatusResponse `xml:"InventoryStatus"`
}

func toAPIErrors(responseErrors []apiErrorResponse) []APIError {
	apiErrors := make([]APIError, len(responseErrors))
	for i, respErr := range responseErrors {
		apiErrors[i] = APIError{Code: respErr.ErrorCode, Message: respErr.message()}
	}
	return apiErrors
}
