package user

import "time"

// User represents a registered tenant
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	PasswordHash     string    `json:"-"` // Not exposed in JSON
	Role             string    `json:"role"`
	SubscriptionTier string    `json:"subscriptionTier"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// User roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Subscription tiers
const (
	TierFree       = "FREE"
	TierPro        = "PRO"
	TierEnterprise = "ENTERPRISE"
)

// Session is the result of a successful register or login
type Session struct {
	User         *User
	AccessToken  string
	RefreshToken string
}
