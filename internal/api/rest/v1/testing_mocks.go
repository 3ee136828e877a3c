//go:build unit
// +build unit

package v1

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/turrs/bank-skd/internal/domain/billing"
	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/chat"
	"github.com/turrs/bank-skd/internal/domain/dashboard"
	"github.com/turrs/bank-skd/internal/domain/media"
	"github.com/turrs/bank-skd/internal/domain/mentors"
	"github.com/turrs/bank-skd/internal/domain/tryout"
	"github.com/turrs/bank-skd/internal/domain/users"
)

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(user *users.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenIssuer) Parse(token string) (*users.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.Claims), args.Error(1)
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password, fullName, phone string) (*users.User, error) {
	args := m.Called(ctx, email, password, fullName, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*users.AuthToken, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.AuthToken), args.Error(1)
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID string) (*users.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID, fullName, phone string) (*users.User, error) {
	args := m.Called(ctx, userID, fullName, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

// MockUserAdminService is a mock implementation of UserAdminService
type MockUserAdminService struct {
	mock.Mock
}

func (m *MockUserAdminService) List(ctx context.Context, query *users.UserQuery) ([]*users.User, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*users.User), args.Error(1)
}

func (m *MockUserAdminService) SetRole(ctx context.Context, actor users.Actor, userID, role string) (*users.User, error) {
	args := m.Called(ctx, actor, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserAdminService) SetActive(ctx context.Context, actor users.Actor, userID string, active bool) (*users.User, error) {
	args := m.Called(ctx, actor, userID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserAdminService) DeleteByID(ctx context.Context, actor users.Actor, userID string) error {
	args := m.Called(ctx, actor, userID)
	return args.Error(0)
}

func (m *MockUserAdminService) EnsureAdmin(ctx context.Context, email, password, fullName string) (*users.User, error) {
	args := m.Called(ctx, email, password, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

// MockPackageService is a mock implementation of PackageService
type MockPackageService struct {
	mock.Mock
}

func (m *MockPackageService) Create(ctx context.Context, actor users.Actor, pkg *catalog.Package) (*catalog.Package, error) {
	args := m.Called(ctx, actor, pkg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Package), args.Error(1)
}

func (m *MockPackageService) Update(ctx context.Context, actor users.Actor, pkg *catalog.Package) (*catalog.Package, error) {
	args := m.Called(ctx, actor, pkg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Package), args.Error(1)
}

func (m *MockPackageService) Delete(ctx context.Context, actor users.Actor, packageID string) error {
	args := m.Called(ctx, actor, packageID)
	return args.Error(0)
}

func (m *MockPackageService) List(ctx context.Context, query *catalog.PackageQuery) ([]*catalog.Package, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Package), args.Error(1)
}

func (m *MockPackageService) GetByID(ctx context.Context, packageID string) (*catalog.Package, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Package), args.Error(1)
}

func (m *MockPackageService) HasAccess(ctx context.Context, actor users.Actor, pkg *catalog.Package) (bool, error) {
	args := m.Called(ctx, actor, pkg)
	return args.Bool(0), args.Error(1)
}

// MockQuestionService is a mock implementation of QuestionService
type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) Create(ctx context.Context, actor users.Actor, question *catalog.Question) (*catalog.Question, error) {
	args := m.Called(ctx, actor, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Question), args.Error(1)
}

func (m *MockQuestionService) Update(ctx context.Context, actor users.Actor, question *catalog.Question) (*catalog.Question, error) {
	args := m.Called(ctx, actor, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Question), args.Error(1)
}

func (m *MockQuestionService) Delete(ctx context.Context, actor users.Actor, questionID string) error {
	args := m.Called(ctx, actor, questionID)
	return args.Error(0)
}

func (m *MockQuestionService) GetByID(ctx context.Context, actor users.Actor, questionID string) (*catalog.Question, error) {
	args := m.Called(ctx, actor, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Question), args.Error(1)
}

func (m *MockQuestionService) ListByPackage(ctx context.Context, actor users.Actor, packageID string) ([]*catalog.Question, error) {
	args := m.Called(ctx, actor, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Question), args.Error(1)
}

func (m *MockQuestionService) Import(ctx context.Context, actor users.Actor, packageID string, questions []*catalog.Question) (int, error) {
	args := m.Called(ctx, actor, packageID, questions)
	return args.Int(0), args.Error(1)
}

// MockTryoutService is a mock implementation of TryoutService
type MockTryoutService struct {
	mock.Mock
}

func (m *MockTryoutService) Start(ctx context.Context, actor users.Actor, packageID string) (*tryout.Session, bool, error) {
	args := m.Called(ctx, actor, packageID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*tryout.Session), args.Bool(1), args.Error(2)
}

func (m *MockTryoutService) GetState(ctx context.Context, actor users.Actor, sessionID string) (*tryout.State, error) {
	args := m.Called(ctx, actor, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tryout.State), args.Error(1)
}

func (m *MockTryoutService) SaveAnswer(ctx context.Context, actor users.Actor, sessionID string, input *tryout.AnswerInput) (*tryout.Answer, error) {
	args := m.Called(ctx, actor, sessionID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tryout.Answer), args.Error(1)
}

func (m *MockTryoutService) Submit(ctx context.Context, actor users.Actor, sessionID string) (*tryout.Result, error) {
	args := m.Called(ctx, actor, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tryout.Result), args.Error(1)
}

func (m *MockTryoutService) Result(ctx context.Context, actor users.Actor, sessionID string) (*tryout.Result, error) {
	args := m.Called(ctx, actor, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tryout.Result), args.Error(1)
}

func (m *MockTryoutService) Review(ctx context.Context, actor users.Actor, sessionID string) ([]*tryout.ReviewItem, error) {
	args := m.Called(ctx, actor, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tryout.ReviewItem), args.Error(1)
}

func (m *MockTryoutService) History(ctx context.Context, actor users.Actor, query *tryout.SessionQuery) ([]*tryout.Session, error) {
	args := m.Called(ctx, actor, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tryout.Session), args.Error(1)
}

func (m *MockTryoutService) Ranking(ctx context.Context, packageID string, limit int) ([]*tryout.RankingEntry, error) {
	args := m.Called(ctx, packageID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tryout.RankingEntry), args.Error(1)
}

func (m *MockTryoutService) TagStats(ctx context.Context, actor users.Actor) ([]*tryout.TagStat, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tryout.TagStat), args.Error(1)
}

func (m *MockTryoutService) FinalizeExpired(ctx context.Context, limit int) (int, error) {
	args := m.Called(ctx, limit)
	return args.Int(0), args.Error(1)
}

// MockVoucherService is a mock implementation of VoucherService
type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) Create(ctx context.Context, voucher *billing.Voucher) (*billing.Voucher, error) {
	args := m.Called(ctx, voucher)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Voucher), args.Error(1)
}

func (m *MockVoucherService) Update(ctx context.Context, voucher *billing.Voucher) (*billing.Voucher, error) {
	args := m.Called(ctx, voucher)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Voucher), args.Error(1)
}

func (m *MockVoucherService) DeleteByID(ctx context.Context, voucherID string) error {
	args := m.Called(ctx, voucherID)
	return args.Error(0)
}

func (m *MockVoucherService) GetByID(ctx context.Context, voucherID string) (*billing.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Voucher), args.Error(1)
}

func (m *MockVoucherService) List(ctx context.Context, query *billing.VoucherQuery) ([]*billing.Voucher, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Voucher), args.Error(1)
}

func (m *MockVoucherService) Quote(ctx context.Context, code, userID string, amount int64) (*billing.Voucher, int64, error) {
	args := m.Called(ctx, code, userID, amount)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*billing.Voucher), args.Get(1).(int64), args.Error(2)
}

// MockPaymentService is a mock implementation of PaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Checkout(ctx context.Context, actor users.Actor, packageID, voucherCode string) (*billing.CheckoutResult, error) {
	args := m.Called(ctx, actor, packageID, voucherCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.CheckoutResult), args.Error(1)
}

func (m *MockPaymentService) AttachProof(ctx context.Context, actor users.Actor, paymentID, mediaID string) (*billing.Payment, error) {
	args := m.Called(ctx, actor, paymentID, mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentService) HandleNotification(ctx context.Context, notification *billing.Notification) (*billing.Payment, error) {
	args := m.Called(ctx, notification)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentService) Confirm(ctx context.Context, paymentID string) (*billing.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentService) Fail(ctx context.Context, paymentID string) (*billing.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentService) Cancel(ctx context.Context, actor users.Actor, paymentID string) (*billing.Payment, error) {
	args := m.Called(ctx, actor, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentService) GetByID(ctx context.Context, actor users.Actor, paymentID string) (*billing.Payment, error) {
	args := m.Called(ctx, actor, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentService) List(ctx context.Context, query *billing.PaymentQuery) ([]*billing.Payment, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Payment), args.Error(1)
}

// MockMentorService is a mock implementation of MentorService
type MockMentorService struct {
	mock.Mock
}

func (m *MockMentorService) GetBalance(ctx context.Context, actor users.Actor) (*mentors.Balance, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mentors.Balance), args.Error(1)
}

func (m *MockMentorService) RequestWithdrawal(ctx context.Context, actor users.Actor, req *mentors.WithdrawalRequest) (*mentors.Withdrawal, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mentors.Withdrawal), args.Error(1)
}

func (m *MockMentorService) Approve(ctx context.Context, withdrawalID string) (*mentors.Withdrawal, error) {
	args := m.Called(ctx, withdrawalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mentors.Withdrawal), args.Error(1)
}

func (m *MockMentorService) Reject(ctx context.Context, withdrawalID, note string) (*mentors.Withdrawal, error) {
	args := m.Called(ctx, withdrawalID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mentors.Withdrawal), args.Error(1)
}

func (m *MockMentorService) ListWithdrawals(ctx context.Context, actor users.Actor, query *mentors.WithdrawalQuery) ([]*mentors.Withdrawal, error) {
	args := m.Called(ctx, actor, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mentors.Withdrawal), args.Error(1)
}

func (m *MockMentorService) SalesReport(ctx context.Context, actor users.Actor) ([]*mentors.SalesLine, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mentors.SalesLine), args.Error(1)
}

// MockChatService is a mock implementation of ChatService
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) CreateRoom(ctx context.Context, actor users.Actor, name string, participantIDs []string, isGroup bool) (*chat.Room, error) {
	args := m.Called(ctx, actor, name, participantIDs, isGroup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Room), args.Error(1)
}

func (m *MockChatService) ListRooms(ctx context.Context, actor users.Actor) ([]*chat.RoomSummary, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chat.RoomSummary), args.Error(1)
}

func (m *MockChatService) SendMessage(ctx context.Context, actor users.Actor, roomID, content string) (*chat.Message, error) {
	args := m.Called(ctx, actor, roomID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Message), args.Error(1)
}

func (m *MockChatService) ListMessages(ctx context.Context, actor users.Actor, query *chat.MessageQuery) ([]*chat.Message, error) {
	args := m.Called(ctx, actor, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chat.Message), args.Error(1)
}

func (m *MockChatService) MarkRead(ctx context.Context, actor users.Actor, roomID string) error {
	args := m.Called(ctx, actor, roomID)
	return args.Error(0)
}

// MockMediaService is a mock implementation of MediaService
type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) Upload(ctx context.Context, actor users.Actor, purpose, name, contentType string, data []byte) (*media.Media, error) {
	args := m.Called(ctx, actor, purpose, name, contentType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Media), args.Error(1)
}

func (m *MockMediaService) GetByID(ctx context.Context, actor users.Actor, mediaID string) (*media.Media, error) {
	args := m.Called(ctx, actor, mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Media), args.Error(1)
}

func (m *MockMediaService) Download(ctx context.Context, actor users.Actor, mediaID string) (*media.Media, []byte, error) {
	args := m.Called(ctx, actor, mediaID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*media.Media), args.Get(1).([]byte), args.Error(2)
}

func (m *MockMediaService) DeleteByID(ctx context.Context, actor users.Actor, mediaID string) error {
	args := m.Called(ctx, actor, mediaID)
	return args.Error(0)
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Stats(ctx context.Context) (*dashboard.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Stats), args.Error(1)
}

// newMockServices returns Services backed by fresh mocks
func newMockServices() (*Services, *mockSet) {
	set := &mockSet{
		Auth:      new(MockAuthService),
		UserAdmin: new(MockUserAdminService),
		Packages:  new(MockPackageService),
		Questions: new(MockQuestionService),
		Tryouts:   new(MockTryoutService),
		Vouchers:  new(MockVoucherService),
		Payments:  new(MockPaymentService),
		Mentors:   new(MockMentorService),
		Chat:      new(MockChatService),
		Media:     new(MockMediaService),
		Stats:     new(MockStatsService),
	}
	return &Services{
		Auth:           set.Auth,
		UserAdmin:      set.UserAdmin,
		Packages:       set.Packages,
		Questions:      set.Questions,
		Tryouts:        set.Tryouts,
		Vouchers:       set.Vouchers,
		Payments:       set.Payments,
		Mentors:        set.Mentors,
		Chat:           set.Chat,
		Media:          set.Media,
		Stats:          set.Stats,
		MaxUploadBytes: 1 << 20,
	}, set
}

type mockSet struct {
	Auth      *MockAuthService
	UserAdmin *MockUserAdminService
	Packages  *MockPackageService
	Questions *MockQuestionService
	Tryouts   *MockTryoutService
	Vouchers  *MockVoucherService
	Payments  *MockPaymentService
	Mentors   *MockMentorService
	Chat      *MockChatService
	Media     *MockMediaService
	Stats     *MockStatsService
}
