package services

import (
	"context"
	"errors"
	"testing"

	"github.com/adithyaaneesh/swiggy-api/entity"
	"github.com/adithyaaneesh/swiggy-api/pkg/apperr"
	"github.com/adithyaaneesh/swiggy-api/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// mockProvider stands in for the external gateway.
type mockProvider struct {
	intentCalls  int
	confirmCalls int
	failIntent   bool
	failConfirm  bool
}

func (m *mockProvider) CreateIntent(ctx context.Context, reference string, amount decimal.Decimal) (string, error) {
	m.intentCalls++
	if m.failIntent {
		return "", errors.New("gateway down")
	}
	return "approval-" + reference, nil
}

func (m *mockProvider) Confirm(ctx context.Context, approvalRef, token string) error {
	m.confirmCalls++
	if m.failConfirm {
		return errors.New("gateway down")
	}
	return nil
}

func paymentFixture(t *testing.T) (*gorm.DB, *PaymentService, *mockProvider, uint, uint) {
	t.Helper()
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com", entity.RoleCustomer)
	rest := seedRestaurant(t, db, 99)
	item := seedMenuItem(t, db, rest.ID, "Dosa", "10.00")
	orderSvc := newOrderService(db)
	orderID := seedOrder(t, orderSvc, newCartService(db), user.ID, item.ID)

	provider := &mockProvider{}
	svc := NewPaymentService(db, repository.NewPaymentRepository(db), orderSvc, provider)
	return db, svc, provider, user.ID, orderID
}

func TestCreateIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an intent for a PENDING order", func(t *testing.T) {
		db, svc, provider, userID, orderID := paymentFixture(t)

		out, err := svc.CreateIntent(ctx, userID, orderID)
		require.NoError(t, err)
		assert.NotEmpty(t, out.ApprovalRef)
		assert.Equal(t, 1, provider.intentCalls)

		var p entity.Payment
		require.NoError(t, db.Where("order_id = ?", orderID).First(&p).Error)
		assert.Equal(t, entity.PaymentPending, p.Status)
		assert.True(t, p.Amount.Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("is idempotent per order", func(t *testing.T) {
		_, svc, provider, userID, orderID := paymentFixture(t)

		first, err := svc.CreateIntent(ctx, userID, orderID)
		require.NoError(t, err)
		second, err := svc.CreateIntent(ctx, userID, orderID)
		require.NoError(t, err)

		assert.Equal(t, first.ApprovalRef, second.ApprovalRef)
		assert.Equal(t, 1, provider.intentCalls)
	})

	t.Run("rejects a non-owner", func(t *testing.T) {
		db, svc, _, _, orderID := paymentFixture(t)
		other := seedUser(t, db, "b@example.com", entity.RoleCustomer)

		_, err := svc.CreateIntent(ctx, other.ID, orderID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("refuses once the order left PENDING", func(t *testing.T) {
		_, svc, _, userID, orderID := paymentFixture(t)

		admin := Actor{UserID: 1, Role: entity.RoleAdmin}
		_, err := svc.Orders.Transition(admin, orderID, entity.StatusAccepted)
		require.NoError(t, err)

		_, err = svc.CreateIntent(ctx, userID, orderID)
		assert.ErrorIs(t, err, apperr.ErrInvalidState)
	})

	t.Run("provider failure surfaces and stores nothing", func(t *testing.T) {
		db, svc, provider, userID, orderID := paymentFixture(t)
		provider.failIntent = true

		_, err := svc.CreateIntent(ctx, userID, orderID)
		assert.ErrorIs(t, err, apperr.ErrPaymentProvider)

		var count int64
		require.NoError(t, db.Model(&entity.Payment{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("advances the order to ACCEPTED", func(t *testing.T) {
		db, svc, _, userID, orderID := paymentFixture(t)

		_, err := svc.CreateIntent(ctx, userID, orderID)
		require.NoError(t, err)

		out, err := svc.Confirm(ctx, userID, orderID, "tok")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAccepted, out.Status)

		var o entity.Order
		require.NoError(t, db.First(&o, orderID).Error)
		assert.Equal(t, entity.StatusAccepted, o.Status)

		var p entity.Payment
		require.NoError(t, db.Where("order_id = ?", orderID).First(&p).Error)
		assert.Equal(t, entity.PaymentPaid, p.Status)
		assert.NotNil(t, p.PaidAt)
	})

	t.Run("provider failure leaves order and payment untouched", func(t *testing.T) {
		db, svc, provider, userID, orderID := paymentFixture(t)

		_, err := svc.CreateIntent(ctx, userID, orderID)
		require.NoError(t, err)
		provider.failConfirm = true

		_, err = svc.Confirm(ctx, userID, orderID, "tok")
		assert.ErrorIs(t, err, apperr.ErrPaymentProvider)

		var o entity.Order
		require.NoError(t, db.First(&o, orderID).Error)
		assert.Equal(t, entity.StatusPending, o.Status)

		var p entity.Payment
		require.NoError(t, db.Where("order_id = ?", orderID).First(&p).Error)
		assert.Equal(t, entity.PaymentPending, p.Status)
	})

	t.Run("a second confirmation is a no-op", func(t *testing.T) {
		_, svc, provider, userID, orderID := paymentFixture(t)

		_, err := svc.CreateIntent(ctx, userID, orderID)
		require.NoError(t, err)
		_, err = svc.Confirm(ctx, userID, orderID, "tok")
		require.NoError(t, err)

		out, err := svc.Confirm(ctx, userID, orderID, "tok")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAccepted, out.Status)
		assert.Equal(t, 1, provider.confirmCalls)
	})

	t.Run("confirm without an intent fails with NotFound", func(t *testing.T) {
		_, svc, _, userID, orderID := paymentFixture(t)

		_, err := svc.Confirm(ctx, userID, orderID, "tok")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
