package engine

import (
	"dropsync/core/feed"
	"dropsync/core/trading"
)

// Diff compares active listings against supplier availability and returns
// the minimal set of corrective updates plus the number of listings whose
// SKU has no supplier row.
//
// Diff is pure: no side effects, no failure modes, and the update order
// follows the input listing order, so identical inputs always yield
// identical output.
func Diff(listings []trading.Listing, stock feed.StockMap) ([]PendingUpdate, int) {
	var updates []PendingUpdate
	unmatched := 0

	for _, listing := range listings {
		want, ok := stock[listing.SKU]
		if !ok {
			unmatched++
			continue
		}
		if want == listing.Quantity {
			continue
		}
		updates = append(updates, PendingUpdate{
			ItemID:      listing.ItemID,
			SKU:         listing.SKU,
			OldQuantity: listing.Quantity,
			NewQuantity: want,
		})
	}

	return updates, unmatched
}
