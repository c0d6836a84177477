package services

import (
	"errors"
	"fmt"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/sakurakids/nursery-api/internal/models"
	"github.com/sakurakids/nursery-api/internal/repository"
	"github.com/sakurakids/nursery-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentNotPending    = errors.New("payment is not pending")
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// PaymentService handles payment records and gateway checkout. The gateway
// client is optional; without a server key checkout is refused but CRUD works.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	snapClient  *snap.Client
}

// NewPaymentService creates a new PaymentService. serverKey may be empty.
func NewPaymentService(paymentRepo repository.PaymentRepository, serverKey string, production bool) *PaymentService {
	var client *snap.Client
	if serverKey != "" {
		client = &snap.Client{}
		env := midtrans.Sandbox
		if production {
			env = midtrans.Production
		}
		client.New(serverKey, env)
	}

	return &PaymentService{
		paymentRepo: paymentRepo,
		snapClient:  client,
	}
}

// GetPayment retrieves a payment scoped to one tenant.
func (s *PaymentService) GetPayment(organizationID, id uint64) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	if payment.OrganizationID != organizationID {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// UpdateStatus applies a status transition. paid_at is stamped exactly when the
// status becomes completed and cleared when it leaves completed.
func (s *PaymentService) UpdateStatus(payment *models.Payment, status models.PaymentStatus) error {
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusCompleted, models.PaymentStatusFailed:
	default:
		return ErrInvalidPaymentStatus
	}

	if status == models.PaymentStatusCompleted && payment.Status != models.PaymentStatusCompleted {
		now := time.Now()
		payment.PaidAt = &now
	}
	if status != models.PaymentStatusCompleted {
		payment.PaidAt = nil
	}
	payment.Status = status

	if err := s.paymentRepo.Update(payment); err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

// Checkout creates a snap transaction for a pending payment and stores the
// gateway order id and redirect URL on the row.
func (s *PaymentService) Checkout(payment *models.Payment, payerEmail string) (*models.Payment, error) {
	if s.snapClient == nil {
		return nil, ErrGatewayNotConfigured
	}
	if payment.Status != models.PaymentStatusPending {
		return nil, ErrPaymentNotPending
	}

	orderID := utils.NewOrderID()
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: payment.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: payerEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    fmt.Sprintf("payment-%d", payment.ID),
				Price: payment.Amount,
				Qty:   1,
				Name:  payment.Description,
			},
		},
	}

	resp, snapErr := s.snapClient.CreateTransaction(req)
	if snapErr != nil {
		return nil, fmt.Errorf("failed to create gateway transaction: %w", snapErr)
	}

	payment.OrderID = &orderID
	payment.CheckoutURL = &resp.RedirectURL
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, fmt.Errorf("failed to store checkout reference: %w", err)
	}
	return payment, nil
}
