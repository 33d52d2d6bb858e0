package feed

import "fmt"

// Type identifies a supported supplier feed format.
type Type string

const (
	// TypeAzureGreen is the AzureGreen wholesale CSV format.
	TypeAzureGreen Type = "azuregreen"
	// TypeDiecast is the diecast distributor visibility CSV format.
	TypeDiecast Type = "diecast"
	// TypeCustom is a caller-mapped CSV format.
	TypeCustom Type = "custom"
)

// ParseType validates a feed type received from external input
// (API payloads, stored rows, CLI flags).
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeAzureGreen, TypeDiecast, TypeCustom:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown feed type %q", s)
	}
}

// Mode controls how parsed quantities are reduced before they reach the
// stock map.
type Mode string

const (
	// ModeBinary reduces any positive quantity to 1 and everything else
	// to 0. Listings only need an in-stock signal in this mode.
	ModeBinary Mode = "binary"
	// ModeExact passes the parsed count through, clamped at zero.
	ModeExact Mode = "exact"
)

// ParseMode validates a quantity mode. The empty string maps to ModeBinary,
// matching the account default.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBinary, ModeExact:
		return Mode(s), nil
	case "":
		return ModeBinary, nil
	default:
		return "", fmt.Errorf("unknown quantity mode %q", s)
	}
}

// Default column names for TypeCustom when the caller maps nothing.
const (
	DefaultSKUColumn      = "SKU"
	DefaultQuantityColumn = "Quantity"
)

// ColumnMapping names the SKU and quantity columns of a TypeCustom feed.
// Empty fields fall back to DefaultSKUColumn / DefaultQuantityColumn.
type ColumnMapping struct {
	SKUColumn      string
	QuantityColumn string
}

// StockMap maps a supplier SKU to its availability. Keys are trimmed,
// non-empty and case-sensitive; they must match marketplace SKUs exactly
// for reconciliation to succeed. A StockMap is built fresh for every run
// and never persisted.
type StockMap map[string]int
