// Package trading is a minimal eBay Trading API client covering the two
// calls the sync engine needs: GetSellerList and ReviseInventoryStatus.
//
// The Trading API is XML over HTTP POST against a single endpoint, with
// the call name and the three application credentials carried in request
// headers and the user token in the request body. Call-level success is
// reported by an Ack field ("Success"/"Warning"/"Failure") independent of
// the HTTP status.
//
// # Error Taxonomy
//
// Failures split into two typed errors:
//
//   - *TransportError: the endpoint was unreachable, answered with a bad
//     HTTP status, or returned a payload that does not decode.
//   - *ProtocolError: the endpoint answered but the Ack was not accepted;
//     it carries the (code, message) pairs from the response.
//
// # Pagination
//
// GetSellerList pages through the seller's listings 200 entries at a time
// over the most recent 119 days (the widest window the API accepts).
// Paging stops when the reported page total is reached and the server no
// longer signals more items, or at a hard 500-page ceiling that keeps a
// misbehaving endpoint from pinning a run forever.
//
// # Usage
//
//	client := trading.NewClient(nil, logger)
//	listings, err := client.FetchActiveListings(ctx, creds)
//	n, err := client.ReviseQuantities(ctx, creds, items)
package trading
