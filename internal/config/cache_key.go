package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's login session.
func (r *CacheKeyStruct) UserSessionKey(userID int64) string {
	return fmt.Sprintf("login:%d", userID)
}

// UserEntitlementKey returns the cache key for a user's premium entitlement flag.
func (r *CacheKeyStruct) UserEntitlementKey(userID int64) string {
	return fmt.Sprintf("user:%d:entitlement", userID)
}

var CacheKey = NewCacheKeyStruct()
