package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kelasfokus/fokus-backend/internal/model"
	"github.com/kelasfokus/fokus-backend/internal/response"
	"github.com/kelasfokus/fokus-backend/internal/service"
	"github.com/kelasfokus/fokus-backend/internal/validator"
)

// AdminUserHandler handles the admin console's account and voucher
// management.
type AdminUserHandler struct {
	userService    *service.UserService
	voucherService *service.VoucherService
}

// NewAdminUserHandler creates a new AdminUserHandler.
func NewAdminUserHandler(userService *service.UserService, voucherService *service.VoucherService) *AdminUserHandler {
	return &AdminUserHandler{userService: userService, voucherService: voucherService}
}

// ListUsers godoc
// GET /api/v1/admin/users?page=1&per_page=20
func (h *AdminUserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	users, pagination, err := h.userService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"users": users}, pagination)
}

// RevokePremium godoc
// DELETE /api/v1/admin/users/:user_id/premium
// Downgrades the account to the free tier immediately.
func (h *AdminUserHandler) RevokePremium(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.userService.RevokePremium(c.Request.Context(), userID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ListVouchers godoc
// GET /api/v1/admin/vouchers
// All codes with their redemption state.
func (h *AdminUserHandler) ListVouchers(c *gin.Context) {
	vouchers, err := h.voucherService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vouchers": vouchers})
}

// CreateVoucher godoc
// POST /api/v1/admin/vouchers
// Creates a single-use code. An empty code in the payload gets a generated
// one.
func (h *AdminUserHandler) CreateVoucher(c *gin.Context) {
	var req model.CreateVoucherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	voucher, err := h.voucherService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusConflict, response.ErrConflict)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"voucher": voucher})
}

// DeleteVoucher godoc
// DELETE /api/v1/admin/vouchers/:voucher_id
// Only unredeemed codes can be deleted.
func (h *AdminUserHandler) DeleteVoucher(c *gin.Context) {
	voucherID, ok := parseIDParam(c, "voucher_id")
	if !ok {
		return
	}

	if err := h.voucherService.Delete(c.Request.Context(), voucherID); err != nil {
		response.Fail(c, http.StatusConflict, response.ErrConflict)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
