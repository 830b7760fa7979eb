package model

import "time"

// Role distinguishes regular learners from console administrators.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// SubscriptionStatus enumerates account entitlement tiers.
type SubscriptionStatus string

const (
	SubscriptionFree    SubscriptionStatus = "free"
	SubscriptionPremium SubscriptionStatus = "premium"
)

// User is a platform account.
type User struct {
	ID                 int64              `json:"id"`
	Email              string             `json:"email"`
	Name               string             `json:"name"`
	PasswordHash       string             `json:"-"`
	Role               Role               `json:"role"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	PremiumUntil       *time.Time         `json:"premium_until,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

// IsPremiumAt reports whether the account holds an active premium
// entitlement at the given instant. A nil PremiumUntil on a premium account
// means the entitlement does not expire.
func (u *User) IsPremiumAt(now time.Time) bool {
	if u.SubscriptionStatus != SubscriptionPremium {
		return false
	}
	return u.PremiumUntil == nil || u.PremiumUntil.After(now)
}

// LoginRequest is the payload for email/password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// CreateUserRequest is the payload for account registration.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}
