package models

import "time"

// Plan tiers. The plan decides the limits stamped onto the user row.
const (
	PlanFreeTrial    = "free_trial"
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// Limits stamped onto newly registered free-trial users.
const (
	DefaultMaxAccounts = 1
	DefaultMaxListings = 10000
	DefaultMaxFeeds    = 2
)

// User is a registered DropSync user.
type User struct {
	ID           uint   `gorm:"primaryKey;column:id"`
	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	FullName     string `gorm:"column:full_name;type:varchar(255)"`

	// Subscription
	Plan                  string     `gorm:"column:plan;type:varchar(50);default:free_trial"`
	StripeCustomerID      *string    `gorm:"column:stripe_customer_id;type:varchar(255);unique"`
	StripeSubscriptionID  *string    `gorm:"column:stripe_subscription_id;type:varchar(255)"`
	SubscriptionExpiresAt *time.Time `gorm:"column:subscription_expires_at"`

	// Limits applied by the plan
	MaxAccounts int `gorm:"column:max_accounts;default:1"`
	MaxListings int `gorm:"column:max_listings;default:10000"`
	MaxFeeds    int `gorm:"column:max_feeds;default:2"`

	// Metadata
	CreatedAt   time.Time  `gorm:"column:created_at"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`
	IsActive    bool       `gorm:"column:is_active;default:true"`
}

func (User) TableName() string {
	return "users"
}
