package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kelasfokus/fokus-backend/internal/model"
	"github.com/kelasfokus/fokus-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Voucher redemption outcomes.
var (
	ErrVoucherInvalid = errors.New("voucher code not found")
	ErrVoucherUsed    = errors.New("voucher code already used")
)

// VoucherService handles minting and redeeming premium access vouchers.
// Redemption touches both vouchers and users, so it runs its own
// transaction on the pool rather than going through the repositories.
type VoucherService struct {
	voucherRepo  *repository.VoucherRepository
	entitlements *EntitlementService
	pool         *pgxpool.Pool
	log          zerolog.Logger
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(voucherRepo *repository.VoucherRepository, entitlements *EntitlementService, pool *pgxpool.Pool, log zerolog.Logger) *VoucherService {
	return &VoucherService{
		voucherRepo:  voucherRepo,
		entitlements: entitlements,
		pool:         pool,
		log:          log.With().Str("component", "voucher_service").Logger(),
	}
}

// List returns all vouchers for the admin console.
func (s *VoucherService) List(ctx context.Context) ([]model.Voucher, error) {
	return s.voucherRepo.List(ctx)
}

// Create mints a voucher. An empty code gets a generated one in the
// KF-XXXXXX form the storefront emails out.
func (s *VoucherService) Create(ctx context.Context, req *model.CreateVoucherRequest) (*model.Voucher, error) {
	code := NormalizeVoucherCode(req.Code)
	if code == "" {
		code = GenerateVoucherCode()
	}

	v := &model.Voucher{Code: code, DurationDays: req.DurationDays}
	if err := s.voucherRepo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("create voucher: %w", err)
	}
	return v, nil
}

// Delete removes an unused voucher.
func (s *VoucherService) Delete(ctx context.Context, id int64) error {
	return s.voucherRepo.Delete(ctx, id)
}

// Redeem consumes a voucher for the user and extends their premium window
// by the voucher's duration. Single-use is enforced with a row lock: two
// concurrent redemptions of the same code cannot both succeed.
func (s *VoucherService) Redeem(ctx context.Context, userID int64, rawCode string) (*model.User, error) {
	code := NormalizeVoucherCode(rawCode)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		voucherID    int64
		durationDays int
		usedBy       *int64
	)
	err = tx.QueryRow(ctx,
		`SELECT id, duration_days, used_by FROM vouchers WHERE code = $1 FOR UPDATE`,
		code,
	).Scan(&voucherID, &durationDays, &usedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVoucherInvalid
		}
		return nil, fmt.Errorf("lookup voucher: %w", err)
	}
	if usedBy != nil {
		return nil, ErrVoucherUsed
	}

	now := time.Now()
	if _, err := tx.Exec(ctx,
		`UPDATE vouchers SET used_by = $1, used_at = $2 WHERE id = $3`,
		userID, now, voucherID,
	); err != nil {
		return nil, fmt.Errorf("mark voucher used: %w", err)
	}

	// Extend from the current expiry when it is still in the future, so
	// stacking vouchers adds up instead of overwriting.
	var premiumUntil time.Time
	err = tx.QueryRow(ctx,
		`UPDATE users
		 SET subscription_status = 'premium',
		     premium_until = GREATEST(COALESCE(premium_until, NOW()), NOW()) + make_interval(days => $1)
		 WHERE id = $2
		 RETURNING premium_until`,
		durationDays, userID,
	).Scan(&premiumUntil)
	if err != nil {
		return nil, fmt.Errorf("upgrade user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit redeem: %w", err)
	}

	s.entitlements.Invalidate(ctx, userID)
	s.log.Info().
		Int64("user_id", userID).
		Str("code", code).
		Time("premium_until", premiumUntil).
		Msg("Voucher redeemed")

	return &model.User{
		ID:                 userID,
		SubscriptionStatus: model.SubscriptionPremium,
		PremiumUntil:       &premiumUntil,
	}, nil
}

// NormalizeVoucherCode uppercases and trims a user-typed code.
func NormalizeVoucherCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// GenerateVoucherCode produces a short unique code like KF-8X92MA.
func GenerateVoucherCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "KF-" + id[:6]
}
