package models

import "time"

// Quantity modes. Binary collapses supplier stock to 0/1 so listings
// flip between in and out of stock; exact mirrors supplier quantities.
const (
	QuantityModeBinary = "binary"
	QuantityModeExact  = "exact"
)

// EbayAccount is a connected eBay seller account with its Trading API
// credentials and sync settings.
type EbayAccount struct {
	ID     uint `gorm:"primaryKey;column:id"`
	UserID uint `gorm:"column:user_id;not null;index"`

	// Credentials
	StoreName      string     `gorm:"column:store_name;type:varchar(255)"`
	EbayUserID     string     `gorm:"column:ebay_user_id;type:varchar(255)"`
	AccessToken    string     `gorm:"column:access_token;type:text;not null"`
	RefreshToken   string     `gorm:"column:refresh_token;type:text"`
	TokenExpiresAt *time.Time `gorm:"column:token_expires_at"`

	// Developer keys
	AppID  string `gorm:"column:app_id;type:varchar(255);not null"`
	DevID  string `gorm:"column:dev_id;type:varchar(255);not null"`
	CertID string `gorm:"column:cert_id;type:varchar(255);not null"`

	// Sync settings
	SyncEnabled   bool   `gorm:"column:sync_enabled;default:true"`
	SyncFrequency string `gorm:"column:sync_frequency;type:varchar(50);default:daily"`
	SyncTime      string `gorm:"column:sync_time;type:varchar(10);default:06:00"`
	QuantityMode  string `gorm:"column:quantity_mode;type:varchar(20);default:binary"`

	// Metadata
	CreatedAt  time.Time  `gorm:"column:created_at"`
	LastSyncAt *time.Time `gorm:"column:last_sync_at"`
	IsActive   bool       `gorm:"column:is_active;default:true"`
}

func (EbayAccount) TableName() string {
	return "ebay_accounts"
}
