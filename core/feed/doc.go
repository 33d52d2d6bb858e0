// Package feed downloads and normalizes supplier stock feeds.
//
// A feed is a delimited text document served over plain HTTP. Normalization
// produces a StockMap (SKU -> availability) that the sync engine diffs
// against live marketplace listings.
//
// # Feed Types
//
// Three formats are supported, selected by a closed Type enum:
//
//   - TypeAzureGreen: SKU in "NUMBER", quantity in "UNITS", with a
//     "CANTSELL" flag that forces availability to zero.
//   - TypeDiecast: SKU in "Product ID", visibility in "Product Visible"
//     (numeric, or a yes/true/available token).
//   - TypeCustom: column names supplied by the caller, falling back to
//     "SKU"/"Quantity".
//
// # Robustness
//
// Feeds are messy. Malformed rows are skipped, never fatal; rows with an
// empty SKU are dropped; quantity cells that fail to parse degrade to 0;
// duplicate SKUs resolve last-row-wins. Only the download itself can fail,
// with a *FetchError.
package feed
