package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turrs/bank-skd/internal/domain/mentors"
)

// MentorHandler defines the interface for mentor earnings and payouts
type MentorHandler interface {
	GetBalance(ctx *gin.Context)
	RequestWithdrawal(ctx *gin.Context)
	ListWithdrawals(ctx *gin.Context)
	SalesReport(ctx *gin.Context)
	Approve(ctx *gin.Context)
	Reject(ctx *gin.Context)
}

type mentorHandler struct {
	mentorService mentors.MentorService
}

// NewMentorHandler creates a new MentorHandler
func NewMentorHandler(mentorService mentors.MentorService) MentorHandler {
	return &mentorHandler{mentorService: mentorService}
}

// GetBalance returns the caller's earnings
func (handler *mentorHandler) GetBalance(ctx *gin.Context) {
	balance, err := handler.mentorService.GetBalance(ctx, actorFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, balance)
}

// RequestWithdrawal asks for a payout
func (handler *mentorHandler) RequestWithdrawal(ctx *gin.Context) {
	var req mentors.WithdrawalRequest
	if !bindJSON(ctx, &req) {
		return
	}

	withdrawal, err := handler.mentorService.RequestWithdrawal(ctx, actorFrom(ctx), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, withdrawal)
}

// ListWithdrawals lists the caller's withdrawals, all of them for admins
func (handler *mentorHandler) ListWithdrawals(ctx *gin.Context) {
	query := &mentors.WithdrawalQuery{
		MentorID: ctx.Query("mentorId"),
		Status:   ctx.Query("status"),
	}

	var ok bool
	if query.Limit, ok = queryInt(ctx, "limit", 50); !ok {
		return
	}
	if query.Offset, ok = queryInt(ctx, "offset", 0); !ok {
		return
	}

	withdrawals, err := handler.mentorService.ListWithdrawals(ctx, actorFrom(ctx), query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if withdrawals == nil {
		withdrawals = []*mentors.Withdrawal{}
	}
	ctx.JSON(http.StatusOK, withdrawals)
}

// SalesReport returns sales per package of the caller
func (handler *mentorHandler) SalesReport(ctx *gin.Context) {
	lines, err := handler.mentorService.SalesReport(ctx, actorFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	if lines == nil {
		lines = []*mentors.SalesLine{}
	}
	ctx.JSON(http.StatusOK, lines)
}

// Approve marks a withdrawal paid out
func (handler *mentorHandler) Approve(ctx *gin.Context) {
	withdrawal, err := handler.mentorService.Approve(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, withdrawal)
}

// Reject refuses a withdrawal and refunds the balance
func (handler *mentorHandler) Reject(ctx *gin.Context) {
	var req RejectWithdrawalRequest
	if !bindJSON(ctx, &req) {
		return
	}

	withdrawal, err := handler.mentorService.Reject(ctx, ctx.Param("id"), req.Note)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, withdrawal)
}
