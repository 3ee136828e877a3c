package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/turrs/bank-skd/internal/domain/billing"
	"github.com/turrs/bank-skd/internal/domain/mentors"
	"github.com/turrs/bank-skd/internal/infrastructure/persistence/models"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// gormMentorRepository is the implementation of the MentorRepository interface
type gormMentorRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormMentorRepository creates a new gormMentorRepository instance
func NewGormMentorRepository(db *gorm.DB, logger logger.Logger) (mentors.MentorRepository, error) {
	return &gormMentorRepository{
		db:     db,
		logger: logger,
	}, nil
}

// GetBalance returns the mentor balance, zero when nothing was earned yet
func (r *gormMentorRepository) GetBalance(ctx context.Context, mentorID string) (*mentors.Balance, error) {
	var model models.MentorBalanceModel
	err := r.db.WithContext(ctx).Where("mentor_id = ?", mentorID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &mentors.Balance{MentorID: mentorID}, nil
		}
		return nil, errors.Wrap(err, "failed to fetch mentor balance")
	}
	return model.ToDomain(), nil
}

// CreateWithdrawal debits the balance and stores the request in one transaction
func (r *gormMentorRepository) CreateWithdrawal(ctx context.Context, withdrawal *mentors.Withdrawal) error {
	if err := withdrawal.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.MentorWithdrawalModel{}
	model.FromDomain(withdrawal)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.MentorBalanceModel{}).
			Where("mentor_id = ? AND balance >= ?", withdrawal.MentorID, withdrawal.Amount).
			Updates(map[string]interface{}{
				"balance":    gorm.Expr("balance - ?", withdrawal.Amount),
				"updated_at": withdrawal.DateTimeCreated,
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to debit mentor balance")
		}
		if res.RowsAffected == 0 {
			return mentors.ErrInsufficientBalance
		}
		if err := tx.Create(model).Error; err != nil {
			return errors.Wrap(err, "failed to create withdrawal")
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Created withdrawal with id ", withdrawal.ID, " for mentor ", withdrawal.MentorID)
	return nil
}

// GetWithdrawal retrieves a withdrawal by its ID
func (r *gormMentorRepository) GetWithdrawal(ctx context.Context, withdrawalID string) (*mentors.Withdrawal, error) {
	var model models.MentorWithdrawalModel
	if err := r.db.WithContext(ctx).Where("id = ?", withdrawalID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mentors.ErrWithdrawalNotFound
		}
		return nil, errors.Wrap(err, "failed to fetch withdrawal")
	}
	return model.ToDomain(), nil
}

// ListWithdrawals retrieves withdrawals matching the query, newest first
func (r *gormMentorRepository) ListWithdrawals(ctx context.Context, query *mentors.WithdrawalQuery) ([]*mentors.Withdrawal, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.MentorWithdrawalModel{})
	if query.MentorID != "" {
		dbQuery = dbQuery.Where("mentor_id = ?", query.MentorID)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	dbQuery = paginate(dbQuery.Order("date_time_created desc"), query.Limit, query.Offset)

	var found []models.MentorWithdrawalModel
	if err := dbQuery.Find(&found).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list withdrawals")
	}

	result := make([]*mentors.Withdrawal, len(found))
	for i := range found {
		result[i] = found[i].ToDomain()
	}
	return result, nil
}

// ApproveWithdrawal marks a pending withdrawal paid out
func (r *gormMentorRepository) ApproveWithdrawal(ctx context.Context, withdrawalID string, at time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := r.closePending(tx, withdrawalID, mentors.WithdrawalApproved, "", at)
		if err != nil {
			return err
		}
		return tx.Model(&models.MentorBalanceModel{}).Where("mentor_id = ?", w.MentorID).
			Updates(map[string]interface{}{
				"total_withdrawn": gorm.Expr("total_withdrawn + ?", w.Amount),
				"updated_at":      at,
			}).Error
	})
	if err != nil {
		return err
	}

	r.logger.Info("Approved withdrawal with id ", withdrawalID)
	return nil
}

// RejectWithdrawal marks a pending withdrawal rejected and refunds the mentor
func (r *gormMentorRepository) RejectWithdrawal(ctx context.Context, withdrawalID, note string, at time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := r.closePending(tx, withdrawalID, mentors.WithdrawalRejected, note, at)
		if err != nil {
			return err
		}
		return tx.Model(&models.MentorBalanceModel{}).Where("mentor_id = ?", w.MentorID).
			Updates(map[string]interface{}{
				"balance":    gorm.Expr("balance + ?", w.Amount),
				"updated_at": at,
			}).Error
	})
	if err != nil {
		return err
	}

	r.logger.Info("Rejected withdrawal with id ", withdrawalID)
	return nil
}

// closePending moves a pending withdrawal to status inside tx
func (r *gormMentorRepository) closePending(tx *gorm.DB, withdrawalID, status, note string, at time.Time) (*models.MentorWithdrawalModel, error) {
	var w models.MentorWithdrawalModel
	if err := tx.Where("id = ?", withdrawalID).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mentors.ErrWithdrawalNotFound
		}
		return nil, errors.Wrap(err, "failed to fetch withdrawal")
	}

	res := tx.Model(&models.MentorWithdrawalModel{}).
		Where("id = ? AND status = ?", withdrawalID, mentors.WithdrawalPending).
		Updates(map[string]interface{}{
			"status":       status,
			"note":         note,
			"processed_at": at,
		})
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "failed to update withdrawal")
	}
	if res.RowsAffected == 0 {
		return nil, mentors.ErrWithdrawalProcessed
	}
	return &w, nil
}

// SalesReport sums completed payments per package created by the mentor
func (r *gormMentorRepository) SalesReport(ctx context.Context, mentorID string) ([]*mentors.SalesLine, error) {
	var lines []*mentors.SalesLine
	err := r.db.WithContext(ctx).Table("payments AS p").
		Select("p.package_id AS package_id, q.title AS title, COUNT(*) AS sales, SUM(p.final_amount) AS revenue").
		Joins("JOIN question_packages AS q ON q.id = p.package_id").
		Where("q.created_by = ? AND p.status = ?", mentorID, billing.PaymentCompleted).
		Group("p.package_id, q.title").
		Order("revenue desc").
		Scan(&lines).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute sales report")
	}
	return lines, nil
}
