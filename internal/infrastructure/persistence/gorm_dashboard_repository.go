package persistence

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/turrs/bank-skd/internal/domain/billing"
	"github.com/turrs/bank-skd/internal/domain/dashboard"
	"github.com/turrs/bank-skd/internal/domain/mentors"
	"github.com/turrs/bank-skd/internal/domain/tryout"
	"github.com/turrs/bank-skd/internal/infrastructure/persistence/models"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// gormStatsRepository is the implementation of the StatsRepository interface
type gormStatsRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormStatsRepository creates a new gormStatsRepository instance
func NewGormStatsRepository(db *gorm.DB, logger logger.Logger) (dashboard.StatsRepository, error) {
	return &gormStatsRepository{
		db:     db,
		logger: logger,
	}, nil
}

type roleCount struct {
	Role  string
	Count int64
}

// Stats computes the admin overview
func (r *gormStatsRepository) Stats(ctx context.Context) (*dashboard.Stats, error) {
	db := r.db.WithContext(ctx)
	stats := &dashboard.Stats{UsersByRole: map[string]int64{}}

	var roles []roleCount
	if err := db.Model(&models.UserModel{}).Select("role, COUNT(*) AS count").Group("role").Scan(&roles).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}
	for _, rc := range roles {
		stats.UsersByRole[rc.Role] = rc.Count
	}

	counts := []struct {
		model interface{}
		where string
		arg   interface{}
		dest  *int64
	}{
		{&models.PackageModel{}, "is_active = ?", true, &stats.ActivePackages},
		{&models.TryoutSessionModel{}, "status = ?", tryout.StatusCompleted, &stats.CompletedSessions},
		{&models.PaymentModel{}, "status = ?", billing.PaymentPending, &stats.PendingPayments},
		{&models.MentorWithdrawalModel{}, "status = ?", mentors.WithdrawalPending, &stats.PendingWithdrawals},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where(c.where, c.arg).Count(c.dest).Error; err != nil {
			return nil, errors.Wrap(err, "failed to compute dashboard counts")
		}
	}

	err := db.Model(&models.PaymentModel{}).Where("status = ?", billing.PaymentCompleted).
		Select("COALESCE(SUM(final_amount), 0)").Scan(&stats.Revenue).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to sum revenue")
	}
	return stats, nil
}
