package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/models"
	"github.com/sakurakids/nursery-api/internal/repository"
	"github.com/sakurakids/nursery-api/internal/services"
	"github.com/sakurakids/nursery-api/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	paymentRepo    repository.PaymentRepository
}

func NewPaymentHandler(paymentService *services.PaymentService, paymentRepo repository.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		paymentRepo:    paymentRepo,
	}
}

// ListPayments returns payments in the active organization, filterable by
// child and status
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	var childID *uint64
	if raw := c.Query("child_id"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			apierrors.BadRequest(c, "Invalid child ID")
			return
		}
		childID = &id
	}

	var status *models.PaymentStatus
	if raw := c.Query("status"); raw != "" {
		s := models.PaymentStatus(raw)
		switch s {
		case models.PaymentStatusPending, models.PaymentStatusCompleted, models.PaymentStatusFailed:
			status = &s
		default:
			apierrors.BadRequest(c, "Invalid payment status")
			return
		}
	}

	payments, total, err := h.paymentRepo.List(orgID, childID, status, params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch payments")
		return
	}

	respondList(c, payments, params, total)
}

// CreatePayment creates a pending payment for a child in the active
// organization
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	type CreatePaymentRequest struct {
		ChildID     uint64 `json:"child_id" binding:"required"`
		Amount      int64  `json:"amount" binding:"required,min=0"`
		Currency    string `json:"currency"`
		Description string `json:"description"`
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var child models.Child
	if err := database.GetDB().
		Scopes(database.InOrganization(orgID)).
		First(&child, req.ChildID).Error; err != nil {
		apierrors.NotFound(c, "Child not found")
		return
	}

	payment := models.Payment{
		OrganizationID: orgID,
		ChildID:        child.ID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Status:         models.PaymentStatusPending,
		Description:    req.Description,
	}
	if payment.Currency == "" {
		payment.Currency = "IDR"
	}

	if err := h.paymentRepo.Create(&payment); err != nil {
		apierrors.InternalError(c, "Failed to create payment")
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayment returns one payment
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "payment ID")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(orgID, id)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// UpdatePayment applies a partial update; status changes go through the
// service so paid_at stays consistent
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "payment ID")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(orgID, id)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	type UpdatePaymentRequest struct {
		Amount      *int64                `json:"amount"`
		Currency    *string               `json:"currency"`
		Description *string               `json:"description"`
		Status      *models.PaymentStatus `json:"status"`
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Amount != nil {
		if *req.Amount < 0 {
			apierrors.BadRequest(c, "Amount must not be negative")
			return
		}
		payment.Amount = *req.Amount
	}
	if req.Currency != nil {
		payment.Currency = *req.Currency
	}
	if req.Description != nil {
		payment.Description = *req.Description
	}

	if req.Status != nil {
		if err := h.paymentService.UpdateStatus(payment, *req.Status); err != nil {
			respondPaymentError(c, err)
			return
		}
	} else if err := h.paymentRepo.Update(payment); err != nil {
		apierrors.InternalError(c, "Failed to update payment")
		return
	}

	c.JSON(http.StatusOK, payment)
}

// UpdatePaymentStatus applies a status transition only
func (h *PaymentHandler) UpdatePaymentStatus(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "payment ID")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(orgID, id)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	type UpdateStatusRequest struct {
		Status models.PaymentStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Status is required")
		return
	}

	if err := h.paymentService.UpdateStatus(payment, req.Status); err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// Checkout starts a gateway checkout for a pending payment and returns the
// redirect URL
func (h *PaymentHandler) Checkout(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "payment ID")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(orgID, id)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		apierrors.InternalError(c, "Failed to load user")
		return
	}

	payment, err = h.paymentService.Checkout(payment, user.Email)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id":     payment.OrderID,
		"checkout_url": payment.CheckoutURL,
	})
}

// DeletePayment removes a payment record
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "payment ID")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(orgID, id)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	if err := h.paymentRepo.Delete(payment.ID); err != nil {
		apierrors.InternalError(c, "Failed to delete payment")
		return
	}

	respondDeleted(c, "Payment deleted successfully")
}

func respondPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPaymentNotFound):
		apierrors.NotFound(c, "Payment not found")
	case errors.Is(err, services.ErrInvalidPaymentStatus):
		apierrors.BadRequest(c, "Invalid payment status")
	case errors.Is(err, services.ErrPaymentNotPending):
		apierrors.BadRequest(c, "Payment is not pending")
	case errors.Is(err, services.ErrGatewayNotConfigured):
		apierrors.ServiceUnavailable(c, "Payment gateway not configured")
	default:
		apierrors.InternalError(c, "Payment operation failed")
	}
}
