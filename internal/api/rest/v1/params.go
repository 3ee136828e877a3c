package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// queryInt reads an integer query parameter. It answers 400 and returns false
// when the value is not a number.
func queryInt(ctx *gin.Context, name string, def int) (int, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(ctx, name+" must be a number")
		return 0, false
	}
	return v, true
}

// queryBool reads a boolean query parameter, false when absent
func queryBool(ctx *gin.Context, name string) (bool, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		badRequest(ctx, name+" must be true or false")
		return false, false
	}
	return v, true
}

// queryTime reads an RFC3339 query parameter, nil when absent
func queryTime(ctx *gin.Context, name string) (*time.Time, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		badRequest(ctx, name+" must be an RFC3339 timestamp")
		return nil, false
	}
	return &v, true
}

// bindJSON decodes the body into req and validates it
func bindJSON(ctx *gin.Context, req interface{ Validate() error }) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		badRequest(ctx, "invalid request body")
		return false
	}
	if err := req.Validate(); err != nil {
		respondError(ctx, err)
		return false
	}
	return true
}

// noContent answers 204 and flushes the header right away
func noContent(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
	ctx.Writer.WriteHeaderNow()
}
