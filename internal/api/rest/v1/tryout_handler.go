package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turrs/bank-skd/internal/domain/tryout"
)

// TryoutHandler defines the interface for taking tryouts
type TryoutHandler interface {
	Start(ctx *gin.Context)
	History(ctx *gin.Context)
	GetState(ctx *gin.Context)
	SaveAnswer(ctx *gin.Context)
	Submit(ctx *gin.Context)
	Result(ctx *gin.Context)
	Review(ctx *gin.Context)
	TagStats(ctx *gin.Context)
}

type tryoutHandler struct {
	tryoutService tryout.TryoutService
}

// NewTryoutHandler creates a new TryoutHandler
func NewTryoutHandler(tryoutService tryout.TryoutService) TryoutHandler {
	return &tryoutHandler{tryoutService: tryoutService}
}

// Start begins a new attempt or resumes the running one
func (handler *tryoutHandler) Start(ctx *gin.Context) {
	var req StartTryoutRequest
	if !bindJSON(ctx, &req) {
		return
	}

	session, resumed, err := handler.tryoutService.Start(ctx, actorFrom(ctx), req.PackageID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	status := http.StatusCreated
	if resumed {
		status = http.StatusOK
	}
	ctx.JSON(status, StartTryoutResponse{Session: session, Resumed: resumed})
}

// History lists the caller's sessions
func (handler *tryoutHandler) History(ctx *gin.Context) {
	query := &tryout.SessionQuery{
		PackageID: ctx.Query("packageId"),
		Status:    ctx.Query("status"),
	}

	var ok bool
	if query.Limit, ok = queryInt(ctx, "limit", 50); !ok {
		return
	}
	if query.Offset, ok = queryInt(ctx, "offset", 0); !ok {
		return
	}

	sessions, err := handler.tryoutService.History(ctx, actorFrom(ctx), query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if sessions == nil {
		sessions = []*tryout.Session{}
	}
	ctx.JSON(http.StatusOK, sessions)
}

// GetState returns what is needed to continue an attempt
func (handler *tryoutHandler) GetState(ctx *gin.Context) {
	state, err := handler.tryoutService.GetState(ctx, actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newTryoutStateResponse(state))
}

// SaveAnswer stores the answer to one question
func (handler *tryoutHandler) SaveAnswer(ctx *gin.Context) {
	var req tryout.AnswerInput
	if !bindJSON(ctx, &req) {
		return
	}

	answer, err := handler.tryoutService.SaveAnswer(ctx, actorFrom(ctx), ctx.Param("id"), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, AnswerView{SelectedOption: answer.SelectedOption, Flagged: answer.Flagged})
}

// Submit finishes an attempt and returns its result
func (handler *tryoutHandler) Submit(ctx *gin.Context) {
	result, err := handler.tryoutService.Submit(ctx, actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newResultResponse(result))
}

// Result returns the score of a finished attempt
func (handler *tryoutHandler) Result(ctx *gin.Context) {
	result, err := handler.tryoutService.Result(ctx, actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newResultResponse(result))
}

// Review returns every question with its key and the chosen answer
func (handler *tryoutHandler) Review(ctx *gin.Context) {
	items, err := handler.tryoutService.Review(ctx, actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newReviewResponse(items))
}

// TagStats returns the caller's weakest tags first
func (handler *tryoutHandler) TagStats(ctx *gin.Context) {
	stats, err := handler.tryoutService.TagStats(ctx, actorFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	if stats == nil {
		stats = []*tryout.TagStat{}
	}
	ctx.JSON(http.StatusOK, stats)
}
