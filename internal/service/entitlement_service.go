package service

import (
	"context"
	"errors"
	"time"

	"github.com/kelasfokus/fokus-backend/internal/config"
	"github.com/kelasfokus/fokus-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// entitlementCacheTTL keeps premium lookups off PostgreSQL on the hot exam
// path. Short enough that a voucher redemption shows up quickly.
const entitlementCacheTTL = 60 * time.Second

// EntitlementService answers whether a user may see full course content or
// only the trial subset. Truncation itself happens in ExamService, upstream
// of the session controller.
type EntitlementService struct {
	userRepo *repository.UserRepository
	rdb      *redis.Client
	log      zerolog.Logger
}

// NewEntitlementService creates a new EntitlementService.
func NewEntitlementService(userRepo *repository.UserRepository, rdb *redis.Client, log zerolog.Logger) *EntitlementService {
	return &EntitlementService{
		userRepo: userRepo,
		rdb:      rdb,
		log:      log.With().Str("component", "entitlement_service").Logger(),
	}
}

// IsFullAccess reports whether the user holds an active premium
// entitlement. Cache failures degrade to a direct database check rather
// than denying access.
func (s *EntitlementService) IsFullAccess(ctx context.Context, userID int64) bool {
	cacheKey := config.CacheKey.UserEntitlementKey(userID)

	cached, err := s.rdb.Get(ctx, cacheKey).Result()
	if err == nil {
		return cached == "premium"
	}
	if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("Entitlement cache read failed")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("Entitlement lookup failed, defaulting to trial")
		return false
	}

	tier := "free"
	if user.IsPremiumAt(time.Now()) {
		tier = "premium"
	}
	if err := s.rdb.Set(ctx, cacheKey, tier, entitlementCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("Entitlement cache write failed")
	}

	return tier == "premium"
}

// Invalidate drops the cached entitlement, e.g. after a voucher redemption
// or an admin revoke.
func (s *EntitlementService) Invalidate(ctx context.Context, userID int64) {
	if err := s.rdb.Del(ctx, config.CacheKey.UserEntitlementKey(userID)).Err(); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("Entitlement cache invalidation failed")
	}
}
