package model

import "time"

// Voucher is a single-use premium access code sold outside the platform and
// redeemed in-app.
type Voucher struct {
	ID           int64      `json:"id"`
	Code         string     `json:"code"`
	DurationDays int        `json:"duration_days"`
	UsedBy       *int64     `json:"used_by,omitempty"`
	UsedAt       *time.Time `json:"used_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CreateVoucherRequest is the admin payload for minting a voucher.
// An empty code means the server generates one.
type CreateVoucherRequest struct {
	Code         string `json:"code" binding:"omitempty,min=4,max=32"`
	DurationDays int    `json:"duration_days" binding:"required,min=1,max=3650"`
}

// RedeemVoucherRequest is the user payload for redeeming a voucher code.
type RedeemVoucherRequest struct {
	Code string `json:"code" binding:"required,min=4,max=32"`
}
