package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/tryout"
)

// PackageHandler defines the interface for package and question endpoints
type PackageHandler interface {
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
	ListQuestions(ctx *gin.Context)
	CreateQuestion(ctx *gin.Context)
	ImportQuestions(ctx *gin.Context)
	UpdateQuestion(ctx *gin.Context)
	DeleteQuestion(ctx *gin.Context)
	Ranking(ctx *gin.Context)
}

type packageHandler struct {
	packageService  catalog.PackageService
	questionService catalog.QuestionService
	tryoutService   tryout.TryoutService
}

// NewPackageHandler creates a new PackageHandler
func NewPackageHandler(packageService catalog.PackageService, questionService catalog.QuestionService, tryoutService tryout.TryoutService) PackageHandler {
	return &packageHandler{
		packageService:  packageService,
		questionService: questionService,
		tryoutService:   tryoutService,
	}
}

// List fetches the catalog optionally filtered by query parameters
func (handler *packageHandler) List(ctx *gin.Context) {
	query := catalog.NewPackageQuery()

	if title := ctx.Query("title"); len(title) > 0 {
		query.Title = title
	}
	if createdBy := ctx.Query("createdBy"); len(createdBy) > 0 {
		query.CreatedBy = createdBy
	}
	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}
	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	var ok bool
	if query.Limit, ok = queryInt(ctx, "limit", query.Limit); !ok {
		return
	}
	if query.Offset, ok = queryInt(ctx, "offset", 0); !ok {
		return
	}
	if query.IncludeInactive, ok = queryBool(ctx, "includeInactive"); !ok {
		return
	}

	if err := query.Validate(); err != nil {
		respondError(ctx, err)
		return
	}

	packages, err := handler.packageService.List(ctx, query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if packages == nil {
		packages = []*catalog.Package{}
	}
	ctx.JSON(http.StatusOK, packages)
}

// GetByID fetches one package
func (handler *packageHandler) GetByID(ctx *gin.Context) {
	pkg, err := handler.packageService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, pkg)
}

// Create adds a package owned by the caller
func (handler *packageHandler) Create(ctx *gin.Context) {
	var req PackageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	pkg, err := handler.packageService.Create(ctx, actorFrom(ctx), req.ToDomain(""))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, pkg)
}

// Update replaces a package
func (handler *packageHandler) Update(ctx *gin.Context) {
	var req PackageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	pkg, err := handler.packageService.Update(ctx, actorFrom(ctx), req.ToDomain(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, pkg)
}

// Delete removes a package and its questions
func (handler *packageHandler) Delete(ctx *gin.Context) {
	if err := handler.packageService.Delete(ctx, actorFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	noContent(ctx)
}

// ListQuestions returns full questions to the package manager
func (handler *packageHandler) ListQuestions(ctx *gin.Context) {
	questions, err := handler.questionService.ListByPackage(ctx, actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	if questions == nil {
		questions = []*catalog.Question{}
	}
	ctx.JSON(http.StatusOK, questions)
}

// CreateQuestion adds one question to a package
func (handler *packageHandler) CreateQuestion(ctx *gin.Context) {
	var req QuestionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	question, err := handler.questionService.Create(ctx, actorFrom(ctx), req.ToDomain("", ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, question)
}

// ImportQuestions appends a batch of questions to a package
func (handler *packageHandler) ImportQuestions(ctx *gin.Context) {
	var req ImportQuestionsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	packageID := ctx.Param("id")
	questions := make([]*catalog.Question, 0, len(req.Questions))
	for i := range req.Questions {
		questions = append(questions, req.Questions[i].ToDomain("", packageID))
	}

	n, err := handler.questionService.Import(ctx, actorFrom(ctx), packageID, questions)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, ImportQuestionsResponse{Imported: n})
}

// UpdateQuestion replaces a question
func (handler *packageHandler) UpdateQuestion(ctx *gin.Context) {
	var req QuestionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	question, err := handler.questionService.Update(ctx, actorFrom(ctx), req.ToDomain(ctx.Param("id"), ""))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion removes a question
func (handler *packageHandler) DeleteQuestion(ctx *gin.Context) {
	if err := handler.questionService.Delete(ctx, actorFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	noContent(ctx)
}

// Ranking lists best scores of a package
func (handler *packageHandler) Ranking(ctx *gin.Context) {
	limit, ok := queryInt(ctx, "limit", tryout.DefaultRankingLimit)
	if !ok {
		return
	}

	entries, err := handler.tryoutService.Ranking(ctx, ctx.Param("id"), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if entries == nil {
		entries = []*tryout.RankingEntry{}
	}
	ctx.JSON(http.StatusOK, entries)
}
