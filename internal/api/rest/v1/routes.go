package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/turrs/bank-skd/internal/domain/billing"
	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/chat"
	"github.com/turrs/bank-skd/internal/domain/dashboard"
	"github.com/turrs/bank-skd/internal/domain/media"
	"github.com/turrs/bank-skd/internal/domain/mentors"
	"github.com/turrs/bank-skd/internal/domain/tryout"
	"github.com/turrs/bank-skd/internal/domain/users"
)

// Services bundles everything the handlers call
type Services struct {
	Auth           users.AuthService
	UserAdmin      users.UserAdminService
	Packages       catalog.PackageService
	Questions      catalog.QuestionService
	Tryouts        tryout.TryoutService
	Vouchers       billing.VoucherService
	Payments       billing.PaymentService
	Mentors        mentors.MentorService
	Chat           chat.ChatService
	Media          media.MediaService
	Stats          dashboard.StatsService
	MaxUploadBytes int64
}

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, services *Services, issuer users.TokenIssuer) {
	v1 := r.Group(BasePath) // lookup in version file

	authHandler := NewAuthHandler(services.Auth)
	packageHandler := NewPackageHandler(services.Packages, services.Questions, services.Tryouts)
	tryoutHandler := NewTryoutHandler(services.Tryouts)
	voucherHandler := NewVoucherHandler(services.Vouchers, services.Packages)
	paymentHandler := NewPaymentHandler(services.Payments)
	mentorHandler := NewMentorHandler(services.Mentors)
	chatHandler := NewChatHandler(services.Chat)
	mediaHandler := NewMediaHandler(services.Media, services.MaxUploadBytes)
	adminHandler := NewAdminHandler(services.UserAdmin, services.Stats)

	// Public routes
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/packages", packageHandler.List)
	v1.GET("/packages/:id", packageHandler.GetByID)
	v1.POST("/payments/notifications", paymentHandler.Notify)

	authed := v1.Group("", AuthMiddleware(issuer, services.Auth))

	// Account routes
	authed.GET("/me", authHandler.GetProfile)
	authed.PUT("/me", authHandler.UpdateProfile)
	authed.PUT("/me/password", authHandler.ChangePassword)
	authed.GET("/me/tag-stats", tryoutHandler.TagStats)

	// Catalog routes
	authed.GET("/packages/:id/ranking", packageHandler.Ranking)
	authed.GET("/packages/:id/questions", packageHandler.ListQuestions)
	managers := authed.Group("", RequireRoles(users.RoleMentor, users.RoleAdmin))
	managers.POST("/packages", packageHandler.Create)
	managers.PUT("/packages/:id", packageHandler.Update)
	managers.DELETE("/packages/:id", packageHandler.Delete)
	managers.POST("/packages/:id/questions", packageHandler.CreateQuestion)
	managers.POST("/packages/:id/questions/import", packageHandler.ImportQuestions)
	managers.PUT("/questions/:id", packageHandler.UpdateQuestion)
	managers.DELETE("/questions/:id", packageHandler.DeleteQuestion)

	// Tryout routes
	authed.POST("/tryouts", tryoutHandler.Start)
	authed.GET("/tryouts", tryoutHandler.History)
	authed.GET("/tryouts/:id", tryoutHandler.GetState)
	authed.PUT("/tryouts/:id/answers", tryoutHandler.SaveAnswer)
	authed.POST("/tryouts/:id/submit", tryoutHandler.Submit)
	authed.GET("/tryouts/:id/result", tryoutHandler.Result)
	authed.GET("/tryouts/:id/review", tryoutHandler.Review)

	// Billing routes
	authed.POST("/vouchers/validate", voucherHandler.Quote)
	authed.POST("/payments/checkout", paymentHandler.Checkout)
	authed.GET("/payments", paymentHandler.ListOwn)
	authed.GET("/payments/:id", paymentHandler.GetByID)
	authed.POST("/payments/:id/proof", paymentHandler.AttachProof)
	authed.POST("/payments/:id/cancel", paymentHandler.Cancel)

	// Mentor routes
	mentor := authed.Group("/mentor", RequireRoles(users.RoleMentor))
	mentor.GET("/balance", mentorHandler.GetBalance)
	mentor.GET("/sales", mentorHandler.SalesReport)
	mentor.GET("/withdrawals", mentorHandler.ListWithdrawals)
	mentor.POST("/withdrawals", mentorHandler.RequestWithdrawal)

	// Chat routes
	authed.GET("/chat/rooms", chatHandler.ListRooms)
	authed.POST("/chat/rooms", chatHandler.CreateRoom)
	authed.GET("/chat/rooms/:id/messages", chatHandler.ListMessages)
	authed.POST("/chat/rooms/:id/messages", chatHandler.SendMessage)
	authed.POST("/chat/rooms/:id/read", chatHandler.MarkRead)

	// Media routes
	authed.POST("/media", mediaHandler.Upload)
	authed.GET("/media/:id", mediaHandler.GetByID)
	authed.GET("/media/:id/file", mediaHandler.DownloadByID)
	authed.DELETE("/media/:id", mediaHandler.DeleteByID)

	// Admin routes
	admin := authed.Group("/admin", RequireRoles(users.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/role", adminHandler.SetRole)
	admin.PUT("/users/:id/active", adminHandler.SetActive)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/vouchers", voucherHandler.List)
	admin.POST("/vouchers", voucherHandler.Create)
	admin.GET("/vouchers/:id", voucherHandler.GetByID)
	admin.PUT("/vouchers/:id", voucherHandler.Update)
	admin.DELETE("/vouchers/:id", voucherHandler.DeleteByID)
	admin.GET("/payments", paymentHandler.List)
	admin.POST("/payments/:id/confirm", paymentHandler.Confirm)
	admin.POST("/payments/:id/fail", paymentHandler.Fail)
	admin.GET("/withdrawals", mentorHandler.ListWithdrawals)
	admin.POST("/withdrawals/:id/approve", mentorHandler.Approve)
	admin.POST("/withdrawals/:id/reject", mentorHandler.Reject)
}
