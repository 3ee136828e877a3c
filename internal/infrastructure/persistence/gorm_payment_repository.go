package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/turrs/bank-skd/internal/domain/billing"
	"github.com/turrs/bank-skd/internal/infrastructure/persistence/models"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// gormPaymentRepository is the implementation of the PaymentRepository interface
type gormPaymentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPaymentRepository creates a new gormPaymentRepository instance
func NewGormPaymentRepository(db *gorm.DB, logger logger.Logger) (billing.PaymentRepository, error) {
	return &gormPaymentRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Create adds a new payment and claims its voucher reservation
func (r *gormPaymentRepository) Create(ctx context.Context, payment *billing.Payment, reservation *billing.VoucherUsage) error {
	if err := payment.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PaymentModel{}
	model.FromDomain(payment)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return errors.Wrap(err, "failed to create payment")
		}
		if reservation == nil {
			return nil
		}

		usage := &models.VoucherUsageModel{}
		usage.FromDomain(reservation)
		if err := tx.Create(usage).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return billing.ErrVoucherAlreadyUsed
			}
			return errors.Wrap(err, "failed to reserve voucher")
		}

		res := tx.Model(&models.VoucherModel{}).
			Where("id = ? AND (max_uses = 0 OR used_count < max_uses)", reservation.VoucherID).
			Update("used_count", gorm.Expr("used_count + 1"))
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to consume voucher")
		}
		if res.RowsAffected == 0 {
			return billing.ErrVoucherExhausted
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Created payment with id ", payment.ID, " for order ", payment.OrderID)
	return nil
}

// GetByID retrieves a payment by its ID
func (r *gormPaymentRepository) GetByID(ctx context.Context, paymentID string) (*billing.Payment, error) {
	return r.first(ctx, "id = ?", paymentID)
}

// GetByOrderID retrieves a payment by its gateway order ID
func (r *gormPaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*billing.Payment, error) {
	return r.first(ctx, "order_id = ?", orderID)
}

// FindPending returns the open payment of a user for a package
func (r *gormPaymentRepository) FindPending(ctx context.Context, userID, packageID string) (*billing.Payment, error) {
	return r.first(ctx, "user_id = ? AND package_id = ? AND status = ?", userID, packageID, billing.PaymentPending)
}

func (r *gormPaymentRepository) first(ctx context.Context, where string, args ...interface{}) (*billing.Payment, error) {
	var model models.PaymentModel
	err := r.db.WithContext(ctx).Where(where, args...).Order("date_time_created desc").First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrPaymentNotFound
		}
		return nil, errors.Wrap(err, "failed to fetch payment")
	}
	return model.ToDomain(), nil
}

// HasCompletedPurchase reports whether a user paid for a package
func (r *gormPaymentRepository) HasCompletedPurchase(ctx context.Context, userID, packageID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("user_id = ? AND package_id = ? AND status = ?", userID, packageID, billing.PaymentCompleted).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check purchase")
	}
	return count > 0, nil
}

// List retrieves payments matching the query, newest first
func (r *gormPaymentRepository) List(ctx context.Context, query *billing.PaymentQuery) ([]*billing.Payment, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.PaymentModel{})
	if query.UserID != "" {
		dbQuery = dbQuery.Where("user_id = ?", query.UserID)
	}
	if query.PackageID != "" {
		dbQuery = dbQuery.Where("package_id = ?", query.PackageID)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	dbQuery = paginate(dbQuery.Order("date_time_created desc"), query.Limit, query.Offset)

	var found []models.PaymentModel
	if err := dbQuery.Find(&found).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list payments")
	}

	result := make([]*billing.Payment, len(found))
	for i := range found {
		result[i] = found[i].ToDomain()
	}
	return result, nil
}

// UpdateByID updates the gateway and proof fields of a pending payment
func (r *gormPaymentRepository) UpdateByID(ctx context.Context, payment *billing.Payment) error {
	if err := payment.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	res := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("id = ? AND status = ?", payment.ID, billing.PaymentPending).
		Updates(map[string]interface{}{
			"checkout_token": payment.CheckoutToken,
			"redirect_url":   payment.RedirectURL,
			"proof_media_id": payment.ProofMediaID,
		})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to update payment")
	}
	if res.RowsAffected == 0 {
		return billing.ErrPaymentNotPending
	}

	r.logger.Info("Updated payment with id ", payment.ID)
	return nil
}

// Settle completes a pending payment and credits the mentor
func (r *gormPaymentRepository) Settle(ctx context.Context, settlement *billing.Settlement) error {
	payment := settlement.Payment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PaymentModel{}).
			Where("id = ? AND status = ?", payment.ID, billing.PaymentPending).
			Updates(map[string]interface{}{
				"status":  billing.PaymentCompleted,
				"paid_at": settlement.PaidAt,
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to complete payment")
		}
		if res.RowsAffected == 0 {
			return billing.ErrPaymentNotPending
		}

		if settlement.MentorID != "" && settlement.Commission > 0 {
			credit := &models.MentorBalanceModel{
				MentorID:    settlement.MentorID,
				Balance:     settlement.Commission,
				TotalEarned: settlement.Commission,
				UpdatedAt:   settlement.PaidAt,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "mentor_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"balance":      gorm.Expr("mentor_balances.balance + excluded.balance"),
					"total_earned": gorm.Expr("mentor_balances.total_earned + excluded.total_earned"),
					"updated_at":   gorm.Expr("excluded.updated_at"),
				}),
			}).Create(credit).Error
			if err != nil {
				return errors.Wrap(err, "failed to credit mentor balance")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	payment.Status = billing.PaymentCompleted
	paidAt := settlement.PaidAt
	payment.PaidAt = &paidAt

	r.logger.Info("Settled payment with id ", payment.ID)
	return nil
}

// MarkFailed moves a pending payment to failed and gives its voucher use back
func (r *gormPaymentRepository) MarkFailed(ctx context.Context, paymentID string, at time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PaymentModel{}).
			Where("id = ? AND status = ?", paymentID, billing.PaymentPending).
			Update("status", billing.PaymentFailed)
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to mark payment failed")
		}
		if res.RowsAffected == 0 {
			return billing.ErrPaymentNotPending
		}

		var usage models.VoucherUsageModel
		err := tx.Where("payment_id = ?", paymentID).First(&usage).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to load voucher reservation")
		}

		if err := tx.Delete(&usage).Error; err != nil {
			return errors.Wrap(err, "failed to release voucher reservation")
		}
		err = tx.Model(&models.VoucherModel{}).
			Where("id = ? AND used_count > 0", usage.VoucherID).
			Update("used_count", gorm.Expr("used_count - 1")).Error
		if err != nil {
			return errors.Wrap(err, "failed to release voucher")
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Payment with id ", paymentID, " failed at ", at.Format(time.RFC3339))
	return nil
}

// gormVoucherRepository is the implementation of the VoucherRepository interface
type gormVoucherRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormVoucherRepository creates a new gormVoucherRepository instance
func NewGormVoucherRepository(db *gorm.DB, logger logger.Logger) (billing.VoucherRepository, error) {
	return &gormVoucherRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Create adds a new voucher to the database
func (r *gormVoucherRepository) Create(ctx context.Context, voucher *billing.Voucher) error {
	if err := voucher.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.VoucherModel{}
	model.FromDomain(voucher)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return billing.ErrVoucherCodeTaken
		}
		return errors.Wrap(err, "failed to create voucher")
	}

	r.logger.Info("Created voucher with id ", voucher.ID)
	return nil
}

// GetByID retrieves a voucher by its ID
func (r *gormVoucherRepository) GetByID(ctx context.Context, voucherID string) (*billing.Voucher, error) {
	return r.first(ctx, "id = ?", voucherID)
}

// GetByCode retrieves a voucher by its normalized code
func (r *gormVoucherRepository) GetByCode(ctx context.Context, code string) (*billing.Voucher, error) {
	return r.first(ctx, "code = ?", billing.NormalizeCode(code))
}

func (r *gormVoucherRepository) first(ctx context.Context, where string, args ...interface{}) (*billing.Voucher, error) {
	var model models.VoucherModel
	if err := r.db.WithContext(ctx).Where(where, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrVoucherNotFound
		}
		return nil, errors.Wrap(err, "failed to fetch voucher")
	}
	return model.ToDomain(), nil
}

// List retrieves vouchers matching the query
func (r *gormVoucherRepository) List(ctx context.Context, query *billing.VoucherQuery) ([]*billing.Voucher, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.VoucherModel{})
	if query.Code != "" {
		dbQuery = dbQuery.Where("code LIKE ?", "%"+billing.NormalizeCode(query.Code)+"%")
	}
	if query.ActiveOnly {
		dbQuery = dbQuery.Where("is_active = ?", true)
	}
	dbQuery = paginate(dbQuery.Order("date_time_created desc"), query.Limit, query.Offset)

	var found []models.VoucherModel
	if err := dbQuery.Find(&found).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list vouchers")
	}

	result := make([]*billing.Voucher, len(found))
	for i := range found {
		result[i] = found[i].ToDomain()
	}
	return result, nil
}

// UpdateByID updates the editable fields of a voucher; used_count is left alone
func (r *gormVoucherRepository) UpdateByID(ctx context.Context, voucher *billing.Voucher) error {
	if err := voucher.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.VoucherModel{}
	model.FromDomain(voucher)

	res := r.db.WithContext(ctx).Model(&models.VoucherModel{}).Where("id = ?", voucher.ID).
		Select("*").Omit("id", "used_count", "date_time_created").Updates(model)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return billing.ErrVoucherCodeTaken
		}
		return errors.Wrap(res.Error, "failed to update voucher")
	}
	if res.RowsAffected == 0 {
		return billing.ErrVoucherNotFound
	}

	r.logger.Info("Updated voucher with id ", voucher.ID)
	return nil
}

// DeleteByID removes a voucher by its ID
func (r *gormVoucherRepository) DeleteByID(ctx context.Context, voucherID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", voucherID).Delete(&models.VoucherModel{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete voucher")
	}
	if res.RowsAffected == 0 {
		return billing.ErrVoucherNotFound
	}

	r.logger.Info("Deleted voucher with id ", voucherID)
	return nil
}

// HasUsage reports whether a user already redeemed a voucher
func (r *gormVoucherRepository) HasUsage(ctx context.Context, voucherID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.VoucherUsageModel{}).
		Where("voucher_id = ? AND user_id = ?", voucherID, userID).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check voucher usage")
	}
	return count > 0, nil
}
