// Package gateway adapts payment processors to billing.CheckoutGateway.
package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/turrs/bank-skd/internal/domain/billing"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// ManualGateway settles payments by bank transfer. Buyers upload a receipt
// and an admin confirms it; a back-office integration may instead post a
// status notification signed with the shared server key.
type ManualGateway struct {
	serverKey    []byte
	instructions string
	logger       logger.Logger
}

// NewGateway returns the gateway selected in billing settings
func NewGateway(settings *config.BillingSettings, logger logger.Logger) (billing.CheckoutGateway, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	switch settings.Gateway {
	case config.ManualGateway:
		return NewManualGateway(settings, logger), nil
	default:
		return nil, fmt.Errorf("unsupported payment gateway: %s", settings.Gateway)
	}
}

// NewManualGateway creates a ManualGateway
func NewManualGateway(settings *config.BillingSettings, logger logger.Logger) *ManualGateway {
	return &ManualGateway{
		serverKey:    []byte(settings.ServerKey),
		instructions: settings.TransferInstructions,
		logger:       logger,
	}
}

// CreateCheckout returns transfer instructions keyed by the order ID
func (g *ManualGateway) CreateCheckout(_ context.Context, payment *billing.Payment) (*billing.CheckoutSession, error) {
	instructions := g.instructions
	if instructions == "" {
		instructions = "Transfer the exact amount and upload the receipt as payment proof."
	}

	g.logger.Info("Opened manual checkout for order ", payment.OrderID)
	return &billing.CheckoutSession{
		Token:        payment.OrderID,
		Instructions: fmt.Sprintf("%s Order %s, amount Rp%d.", instructions, payment.OrderID, payment.FinalAmount),
	}, nil
}

// Sign computes the hex HMAC-SHA256 of order ID and status
func (g *ManualGateway) Sign(orderID, status string) string {
	mac := hmac.New(sha256.New, g.serverKey)
	mac.Write([]byte(orderID + status))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyNotification checks the notification signature
func (g *ManualGateway) VerifyNotification(n *billing.Notification) error {
	expected, err := hex.DecodeString(g.Sign(n.OrderID, n.TransactionStatus))
	if err != nil {
		return err
	}
	got, err := hex.DecodeString(n.Signature)
	if err != nil || !hmac.Equal(expected, got) {
		g.logger.Warn("Rejected notification with bad signature for order ", n.OrderID)
		return billing.ErrInvalidSignature
	}
	return nil
}
