//go:build unit
// +build unit

package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turrs/bank-skd/internal/domain/billing"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/testutil"
)

func testBillingSettings() *config.BillingSettings {
	return &config.BillingSettings{
		Gateway:                 config.ManualGateway,
		ServerKey:               "server-key-123",
		MentorCommissionPercent: 70,
		MinWithdrawal:           50000,
		TransferInstructions:    "BCA 123456 a.n. Bank SKD.",
	}
}

func TestManualGateway_CreateCheckout(t *testing.T) {
	g := NewManualGateway(testBillingSettings(), testutil.SetupTestLogger(t))

	p := billing.NewPayment(uuid.NewString(), uuid.NewString(), 75000, 0, time.Now().UTC())
	session, err := g.CreateCheckout(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, p.OrderID, session.Token)
	assert.Contains(t, session.Instructions, "BCA 123456")
	assert.Contains(t, session.Instructions, "Rp75000")
}

func TestManualGateway_VerifyNotification(t *testing.T) {
	g := NewManualGateway(testBillingSettings(), testutil.SetupTestLogger(t))

	valid := &billing.Notification{
		OrderID:           "SKD-20240101-deadbeef",
		TransactionStatus: billing.NotificationSettlement,
	}
	valid.Signature = g.Sign(valid.OrderID, valid.TransactionStatus)
	assert.NoError(t, g.VerifyNotification(valid))

	tampered := *valid
	tampered.TransactionStatus = billing.NotificationCancel
	assert.ErrorIs(t, g.VerifyNotification(&tampered), billing.ErrInvalidSignature)

	garbage := *valid
	garbage.Signature = "zz"
	assert.ErrorIs(t, g.VerifyNotification(&garbage), billing.ErrInvalidSignature)
}

func TestNewGateway(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	g, err := NewGateway(testBillingSettings(), log)
	require.NoError(t, err)
	assert.IsType(t, &ManualGateway{}, g)

	bad := testBillingSettings()
	bad.Gateway = "midtrans"
	_, err = NewGateway(bad, log)
	assert.Error(t, err)
}
