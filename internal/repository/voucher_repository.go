package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kelasfokus/fokus-backend/internal/model"
)

// VoucherRepository handles voucher data access. The transactional redeem
// path lives in service.VoucherService because it also touches users.
type VoucherRepository struct {
	pool *pgxpool.Pool
}

// NewVoucherRepository creates a new VoucherRepository.
func NewVoucherRepository(pool *pgxpool.Pool) *VoucherRepository {
	return &VoucherRepository{pool: pool}
}

// List retrieves all vouchers, newest first.
func (r *VoucherRepository) List(ctx context.Context) ([]model.Voucher, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, duration_days, used_by, used_at, created_at
		 FROM vouchers
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vouchers []model.Voucher
	for rows.Next() {
		var v model.Voucher
		if err := rows.Scan(&v.ID, &v.Code, &v.DurationDays, &v.UsedBy, &v.UsedAt, &v.CreatedAt); err != nil {
			return nil, err
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, rows.Err()
}

// Create inserts a new voucher.
func (r *VoucherRepository) Create(ctx context.Context, v *model.Voucher) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO vouchers (code, duration_days)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		v.Code, v.DurationDays,
	).Scan(&v.ID, &v.CreatedAt)
}

// Delete removes an unused voucher.
func (r *VoucherRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM vouchers WHERE id = $1 AND used_by IS NULL`, id)
	return err
}
