package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalize_AzureGreen covers the CANTSELL override and parse fallbacks.
func TestNormalize_AzureGreen(t *testing.T) {
	data := []byte("NUMBER,UNITS,CANTSELL,DISCONT\n" +
		"X1,5,1,0\n" + // positive stock but CANTSELL wins
		"X2,3,0,1\n" + // DISCONT is ignored
		"X3,0,0,0\n" +
		"X4,2.9,0,0\n" + // float quantity truncates
		"X5,junk,0,0\n" + // non-numeric degrades to 0
		"X6,-1,0,0\n")

	stock := Normalize(data, TypeAzureGreen, ColumnMapping{}, ModeBinary)

	assert.Equal(t, StockMap{
		"X1": 0,
		"X2": 1,
		"X3": 0,
		"X4": 1,
		"X5": 0,
		"X6": 0,
	}, stock)
}

// TestNormalize_Diecast covers numeric and token visibility values.
func TestNormalize_Diecast(t *testing.T) {
	data := []byte("Product ID,Product Visible\n" +
		"D1,available\n" +
		"D2,0\n" +
		"D3,YES\n" +
		"D4,no\n" +
		"D5,3\n")

	stock := Normalize(data, TypeDiecast, ColumnMapping{}, ModeBinary)

	assert.Equal(t, StockMap{
		"D1": 1,
		"D2": 0,
		"D3": 1,
		"D4": 0,
		"D5": 1,
	}, stock)
}

// TestNormalize_Custom covers caller mappings and their defaults.
func TestNormalize_Custom(t *testing.T) {
	t.Run("MappedColumns", func(t *testing.T) {
		data := []byte("ref,stock\nC1,4\nC2,0\n")
		mapping := ColumnMapping{SKUColumn: "ref", QuantityColumn: "stock"}

		stock := Normalize(data, TypeCustom, mapping, ModeBinary)

		assert.Equal(t, StockMap{"C1": 1, "C2": 0}, stock)
	})

	t.Run("DefaultColumns", func(t *testing.T) {
		data := []byte("SKU,Quantity\nC9,7\n")

		stock := Normalize(data, TypeCustom, ColumnMapping{}, ModeBinary)

		assert.Equal(t, StockMap{"C9": 1}, stock)
	})
}

// TestNormalize_SkipsEmptySKU verifies the unconditional empty-SKU rule
// for every feed type.
func TestNormalize_SkipsEmptySKU(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		data string
	}{
		{"AzureGreen", TypeAzureGreen, "NUMBER,UNITS\n,5\n   ,2\nOK,1\n"},
		{"Diecast", TypeDiecast, "Product ID,Product Visible\n,yes\n\t,yes\nOK,yes\n"},
		{"Custom", TypeCustom, "SKU,Quantity\n,5\n  ,3\nOK,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stock := Normalize([]byte(tt.data), tt.typ, ColumnMapping{}, ModeBinary)
			assert.Equal(t, StockMap{"OK": 1}, stock)
		})
	}
}

// TestNormalize_LastRowWins verifies duplicate SKUs resolve in file order.
func TestNormalize_LastRowWins(t *testing.T) {
	data := []byte("NUMBER,UNITS\nA1,5\nA1,0\n")

	stock := Normalize(data, TypeAzureGreen, ColumnMapping{}, ModeBinary)

	assert.Equal(t, StockMap{"A1": 0}, stock)
}

// TestNormalize_MalformedRows verifies bad rows are skipped without
// aborting the remaining rows.
func TestNormalize_MalformedRows(t *testing.T) {
	// The middle row carries a bare quote and fails to parse.
	data := []byte("NUMBER,UNITS\nA1,2\nbro\"ken,1\nA2,3\n")

	stock := Normalize(data, TypeAzureGreen, ColumnMapping{}, ModeBinary)

	assert.Equal(t, StockMap{"A1": 1, "A2": 1}, stock)
}

// TestNormalize_ExactMode verifies counts pass through unreduced but
// clamped at zero, and that CANTSELL still empties the row.
func TestNormalize_ExactMode(t *testing.T) {
	data := []byte("NUMBER,UNITS,CANTSELL\nA1,7,0\nA2,7,1\nA3,-2,0\n")

	stock := Normalize(data, TypeAzureGreen, ColumnMapping{}, ModeExact)

	assert.Equal(t, StockMap{"A1": 7, "A2": 0, "A3": 0}, stock)
}

// TestNormalize_ShortRows verifies rows shorter than the header degrade
// instead of panicking.
func TestNormalize_ShortRows(t *testing.T) {
	data := []byte("NUMBER,UNITS,CANTSELL\nA1\nA2,4\n")

	stock := Normalize(data, TypeAzureGreen, ColumnMapping{}, ModeBinary)

	assert.Equal(t, StockMap{"A1": 0, "A2": 1}, stock)
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Type
		wantErr bool
	}{
		{"AzureGreen", "azuregreen", TypeAzureGreen, false},
		{"Diecast", "diecast", TypeDiecast, false},
		{"Custom", "custom", TypeCustom, false},
		{"Unknown", "shopify", "", true},
		{"Empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Mode
		wantErr bool
	}{
		{"Binary", "binary", ModeBinary, false},
		{"Exact", "exact", ModeExact, false},
		{"EmptyDefaultsToBinary", "", ModeBinary, false},
		{"Unknown", "approximate", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
