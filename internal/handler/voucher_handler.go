package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kelasfokus/fokus-backend/internal/middleware"
	"github.com/kelasfokus/fokus-backend/internal/model"
	"github.com/kelasfokus/fokus-backend/internal/response"
	"github.com/kelasfokus/fokus-backend/internal/service"
	"github.com/kelasfokus/fokus-backend/internal/validator"
)

// VoucherHandler handles the student-facing voucher redemption endpoint.
type VoucherHandler struct {
	voucherService *service.VoucherService
}

// NewVoucherHandler creates a new VoucherHandler.
func NewVoucherHandler(voucherService *service.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// Redeem godoc
// POST /api/v1/vouchers/redeem
// Redeems a single-use code, extending the caller's premium window. Codes
// are matched case-insensitively.
func (h *VoucherHandler) Redeem(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.RedeemVoucherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.voucherService.Redeem(c.Request.Context(), claims.UserID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVoucherInvalid):
			response.Fail(c, http.StatusNotFound, response.ErrVoucherInvalid)
		case errors.Is(err, service.ErrVoucherUsed):
			response.Fail(c, http.StatusConflict, response.ErrVoucherUsed)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
