//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/turrs/bank-skd/internal/domain/billing"
	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/chat"
	"github.com/turrs/bank-skd/internal/domain/dashboard"
	"github.com/turrs/bank-skd/internal/domain/media"
	"github.com/turrs/bank-skd/internal/domain/mentors"
	"github.com/turrs/bank-skd/internal/domain/tryout"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/infrastructure/connector"
	"github.com/turrs/bank-skd/internal/infrastructure/gateway"
	"github.com/turrs/bank-skd/internal/infrastructure/persistence"
	"github.com/turrs/bank-skd/internal/infrastructure/token"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/testutil"
)

// Test settings shared by the service integration tests
const (
	TestServerKey         = "test-server-key"
	TestCommissionPercent = 20
	TestMinWithdrawal     = 50000
	TestMaxUploadBytes    = 1 << 20
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	AuthService      users.AuthService
	UserAdminService users.UserAdminService
	PackageService   catalog.PackageService
	QuestionService  catalog.QuestionService
	TryoutService    tryout.TryoutService
	VoucherService   billing.VoucherService
	PaymentService   billing.PaymentService
	MentorService    mentors.MentorService
	ChatService      chat.ChatService
	MediaService     media.MediaService
	StatsService     dashboard.StatsService

	// Infrastructure
	Gateway   *gateway.ManualGateway
	Issuer    *token.JWTIssuer
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	ctx := context.Background()
	logger := testutil.SetupTestLogger(t)

	// Setup database
	dbContext := persistence.SetupTestDB(t, dbType)

	// Setup media connector
	mediaSettings := &config.MediaConnectorSettings{
		Provider:       config.LocalStorageProvider,
		LocalDir:       t.TempDir(),
		MaxUploadBytes: TestMaxUploadBytes,
	}
	mediaConnector, err := connector.NewMediaConnector(ctx, mediaSettings, logger)
	require.NoError(t, err, "Failed to create media connector")

	issuer, err := token.NewJWTIssuer(config.AuthSettings{
		JWTSecret: "integration-test-secret",
		Issuer:    "bank-skd-test",
		TokenTTL:  time.Hour,
	})
	require.NoError(t, err, "Failed to create token issuer")

	billingSettings := &config.BillingSettings{
		Gateway:                 config.ManualGateway,
		ServerKey:               TestServerKey,
		MentorCommissionPercent: TestCommissionPercent,
		MinWithdrawal:           TestMinWithdrawal,
	}
	manualGateway := gateway.NewManualGateway(billingSettings, logger)

	tryoutSettings := config.TryoutSettings{
		ExpiryScanInterval: time.Minute,
		ExpiryBatchSize:    50,
		DefaultPassingTWK:  catalog.DefaultPassingTWK,
		DefaultPassingTIU:  catalog.DefaultPassingTIU,
		DefaultPassingTKP:  catalog.DefaultPassingTKP,
	}

	services, err := NewServices(Dependencies{
		Repositories:   dbContext.Repositories,
		MediaConnector: mediaConnector,
		Gateway:        manualGateway,
		Issuer:         issuer,
		Auth:           config.AuthSettings{BcryptCost: bcrypt.MinCost},
		Tryout:         tryoutSettings,
		Billing:        billingSettings,
		MaxUploadBytes: mediaSettings.MaxUploadBytes,
	}, logger)
	require.NoError(t, err, "Failed to create services")

	return &TestServices{
		AuthService:      services.Auth,
		UserAdminService: services.UserAdmin,
		PackageService:   services.Packages,
		QuestionService:  services.Questions,
		TryoutService:    services.Tryouts,
		VoucherService:   services.Vouchers,
		PaymentService:   services.Payments,
		MentorService:    services.Mentors,
		ChatService:      services.Chat,
		MediaService:     services.Media,
		StatsService:     services.Stats,
		Gateway:          manualGateway,
		Issuer:           issuer,
		DBContext:        dbContext,
	}
}

// SetClock makes the time dependent services read now instead of the wall clock
func (ts *TestServices) SetClock(now func() time.Time) {
	ts.TryoutService.(*tryoutService).now = now
	ts.VoucherService.(*voucherService).now = now
	ts.PaymentService.(*paymentService).now = now
	ts.MentorService.(*mentorService).now = now
	ts.ChatService.(*chatService).now = now
}
