// Package dashboard aggregates back-office figures.
package dashboard

import "context"

// Stats is the admin overview
type Stats struct {
	UsersByRole        map[string]int64 `json:"users_by_role"`
	ActivePackages     int64            `json:"active_packages"`
	CompletedSessions  int64            `json:"completed_sessions"`
	Revenue            int64            `json:"revenue"`
	PendingPayments    int64            `json:"pending_payments"`
	PendingWithdrawals int64            `json:"pending_withdrawals"`
}

// StatsService serves the admin overview
type StatsService interface {
	Stats(ctx context.Context) (*Stats, error)
}

// StatsRepository computes the overview from storage
type StatsRepository interface {
	Stats(ctx context.Context) (*Stats, error)
}
