package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ManualGateway settles payments through proof upload and admin confirmation
const ManualGateway = "manual"

// BillingSettings configures checkout, mentor commission and withdrawals
type BillingSettings struct {
	Gateway                 string `mapstructure:"gateway" validate:"required,oneof=manual"`
	ServerKey               string `mapstructure:"server_key" validate:"required,min=8"`
	MentorCommissionPercent int    `mapstructure:"mentor_commission_percent" validate:"gte=0,lte=100"`
	MinWithdrawal           int64  `mapstructure:"min_withdrawal" validate:"gte=1"`
	TransferInstructions    string `mapstructure:"transfer_instructions"`
}

// Validate checks that all fields in BillingSettings are valid
func (s *BillingSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for BillingSettings: %w", err)
	}
	return nil
}
