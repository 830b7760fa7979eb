package model

import (
	"testing"
	"time"
)

func TestIsPremiumAt(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name string
		user User
		want bool
	}{
		{"free account", User{SubscriptionStatus: SubscriptionFree}, false},
		{"free with stale premium_until", User{SubscriptionStatus: SubscriptionFree, PremiumUntil: &future}, false},
		{"premium unbounded", User{SubscriptionStatus: SubscriptionPremium}, true},
		{"premium active", User{SubscriptionStatus: SubscriptionPremium, PremiumUntil: &future}, true},
		{"premium expired", User{SubscriptionStatus: SubscriptionPremium, PremiumUntil: &past}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.IsPremiumAt(now); got != tt.want {
				t.Errorf("IsPremiumAt = %v, want %v", got, tt.want)
			}
		})
	}
}
