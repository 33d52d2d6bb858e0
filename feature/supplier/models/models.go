package models

import "time"

// Column defaults applied when a feed is added without a mapping. They
// match the AzureGreen wholesale CSV, the format most feeds use.
const (
	DefaultSKUColumn      = "NUMBER"
	DefaultQuantityColumn = "UNITS"
)

// SupplierFeed is a downloadable supplier stock CSV and the column
// mapping the sync engine normalizes it with.
type SupplierFeed struct {
	ID     uint `gorm:"primaryKey;column:id"`
	UserID uint `gorm:"column:user_id;not null;index"`

	// Feed source
	Name     string `gorm:"column:name;type:varchar(255);not null"`
	FeedURL  string `gorm:"column:feed_url;type:text;not null"`
	FeedType string `gorm:"column:feed_type;type:varchar(50);not null"`

	// Column mapping for custom feeds
	SKUColumn          string `gorm:"column:sku_column;type:varchar(100);default:NUMBER"`
	QuantityColumn     string `gorm:"column:quantity_column;type:varchar(100);default:UNITS"`
	DiscontinuedColumn string `gorm:"column:discontinued_column;type:varchar(100)"`
	CantSellColumn     string `gorm:"column:cant_sell_column;type:varchar(100)"`

	// Metadata
	IsActive      bool       `gorm:"column:is_active;default:true"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	LastFetchedAt *time.Time `gorm:"column:last_fetched_at"`
	TotalSKUs     int        `gorm:"column:total_skus;default:0"`
}

func (SupplierFeed) TableName() string {
	return "supplier_feeds"
}
