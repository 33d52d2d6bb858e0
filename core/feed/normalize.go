package feed

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"dropsync/core/utils"
)

// AzureGreen column names.
const (
	azureSKUColumn      = "NUMBER"
	azureQuantityColumn = "UNITS"
	azureCantSellColumn = "CANTSELL"
)

// Diecast column names.
const (
	diecastSKUColumn      = "Product ID"
	diecastQuantityColumn = "Product Visible"
)

// Normalize parses a raw feed document into a StockMap.
//
// It never fails: rows that cannot be parsed are skipped, rows with an
// empty SKU are dropped, and unparseable quantity cells degrade to 0.
// Duplicate SKUs resolve last-row-wins since rows are applied in file
// order. An unknown Type yields an empty map; callers validate types
// with ParseType before data reaches this point.
func Normalize(data []byte, typ Type, mapping ColumnMapping, mode Mode) StockMap {
	stock := make(StockMap)

	r := csv.NewReader(bytes.NewReader(data))
	// Feeds pad or truncate rows freely; column lookups bound-check instead.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return stock
	}
	idx := columnIndex(header)

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed row, skip it.
			continue
		}

		var sku string
		var qty int
		switch typ {
		case TypeAzureGreen:
			sku, qty = azureGreenRow(idx, row)
		case TypeDiecast:
			sku, qty = diecastRow(idx, row)
		case TypeCustom:
			sku, qty = customRow(idx, row, mapping)
		default:
			return stock
		}

		if sku == "" {
			continue
		}
		stock[sku] = reduce(qty, mode)
	}

	return stock
}

// azureGreenRow extracts one AzureGreen row. Only the CANTSELL flag
// suppresses availability; a DISCONT column, when present, is ignored.
func azureGreenRow(idx map[string]int, row []string) (string, int) {
	sku := strings.TrimSpace(cell(idx, row, azureSKUColumn))
	if sku == "" {
		return "", 0
	}

	qty := utils.ToTruncatedInt(cell(idx, row, azureQuantityColumn))
	if strings.TrimSpace(cell(idx, row, azureCantSellColumn)) == "1" {
		qty = 0
	}
	return sku, qty
}

// diecastRow extracts one diecast row. The visibility cell is numeric for
// some distributors and a token for others.
func diecastRow(idx map[string]int, row []string) (string, int) {
	sku := strings.TrimSpace(cell(idx, row, diecastSKUColumn))
	if sku == "" {
		return "", 0
	}

	raw := strings.TrimSpace(cell(idx, row, diecastQuantityColumn))
	if n, err := strconv.Atoi(raw); err == nil {
		return sku, n
	}
	switch strings.ToLower(raw) {
	case "yes", "true", "available":
		return sku, 1
	default:
		return sku, 0
	}
}

// customRow extracts one caller-mapped row, falling back to the default
// column names where the mapping is silent.
func customRow(idx map[string]int, row []string, mapping ColumnMapping) (string, int) {
	skuColumn := mapping.SKUColumn
	if skuColumn == "" {
		skuColumn = DefaultSKUColumn
	}
	quantityColumn := mapping.QuantityColumn
	if quantityColumn == "" {
		quantityColumn = DefaultQuantityColumn
	}

	sku := strings.TrimSpace(cell(idx, row, skuColumn))
	if sku == "" {
		return "", 0
	}
	return sku, utils.ToTruncatedInt(cell(idx, row, quantityColumn))
}

// reduce applies the quantity mode. Binary collapses to an in-stock
// signal; exact passes counts through but never below zero.
func reduce(qty int, mode Mode) int {
	if mode == ModeExact {
		if qty < 0 {
			return 0
		}
		return qty
	}
	if qty > 0 {
		return 1
	}
	return 0
}

// columnIndex maps header names to positions. A duplicated header name
// resolves to its last occurrence.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	return idx
}

// cell returns the value of the named column, or "" when the column is
// missing from the header or the row is too short.
func cell(idx map[string]int, row []string, column string) string {
	i, ok := idx[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
