package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sakurakids/nursery-api/internal/models"
	"github.com/sakurakids/nursery-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPaymentService(t *testing.T, serverKey string) (*PaymentService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Organization{},
		&models.Child{},
		&models.Payment{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewPaymentService(repository.NewPaymentRepository(db), serverKey, false), db
}

func createPayment(t *testing.T, db *gorm.DB, orgID uint64, status models.PaymentStatus) *models.Payment {
	t.Helper()

	payment := &models.Payment{
		OrganizationID: orgID,
		ChildID:        1,
		Amount:         150000,
		Currency:       "IDR",
		Status:         status,
		Description:    "Monthly tuition",
	}
	require.NoError(t, db.Create(payment).Error)
	return payment
}

func TestPaymentService_GetPayment_WrongTenant(t *testing.T) {
	service, db := setupPaymentService(t, "")
	payment := createPayment(t, db, 1, models.PaymentStatusPending)

	_, err := service.GetPayment(2, payment.ID)
	require.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestPaymentService_UpdateStatus_StampsPaidAt(t *testing.T) {
	service, db := setupPaymentService(t, "")
	payment := createPayment(t, db, 1, models.PaymentStatusPending)

	require.NoError(t, service.UpdateStatus(payment, models.PaymentStatusCompleted))
	require.NotNil(t, payment.PaidAt)
	firstPaidAt := *payment.PaidAt

	// Completing an already completed payment keeps the original timestamp
	require.NoError(t, service.UpdateStatus(payment, models.PaymentStatusCompleted))
	require.NotNil(t, payment.PaidAt)
	require.Equal(t, firstPaidAt, *payment.PaidAt)
}

func TestPaymentService_UpdateStatus_ClearsPaidAtOnLeave(t *testing.T) {
	service, db := setupPaymentService(t, "")
	payment := createPayment(t, db, 1, models.PaymentStatusPending)

	require.NoError(t, service.UpdateStatus(payment, models.PaymentStatusCompleted))
	require.NotNil(t, payment.PaidAt)

	require.NoError(t, service.UpdateStatus(payment, models.PaymentStatusFailed))
	require.Nil(t, payment.PaidAt)

	var reloaded models.Payment
	require.NoError(t, db.First(&reloaded, payment.ID).Error)
	require.Nil(t, reloaded.PaidAt)
	require.Equal(t, models.PaymentStatusFailed, reloaded.Status)
}

func TestPaymentService_UpdateStatus_Invalid(t *testing.T) {
	service, db := setupPaymentService(t, "")
	payment := createPayment(t, db, 1, models.PaymentStatusPending)

	err := service.UpdateStatus(payment, models.PaymentStatus("refunded"))
	require.ErrorIs(t, err, ErrInvalidPaymentStatus)
}

func TestPaymentService_Checkout_NoGateway(t *testing.T) {
	service, db := setupPaymentService(t, "")
	payment := createPayment(t, db, 1, models.PaymentStatusPending)

	_, err := service.Checkout(payment, "parent@example.com")
	require.ErrorIs(t, err, ErrGatewayNotConfigured)
}

func TestPaymentService_Checkout_NotPending(t *testing.T) {
	service, db := setupPaymentService(t, "dummy-server-key")
	payment := createPayment(t, db, 1, models.PaymentStatusCompleted)

	_, err := service.Checkout(payment, "parent@example.com")
	require.ErrorIs(t, err, ErrPaymentNotPending)
}
