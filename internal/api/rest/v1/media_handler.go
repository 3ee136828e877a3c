package v1

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turrs/bank-skd/internal/domain/media"
)

// MediaHandler defines the interface for uploaded files
type MediaHandler interface {
	Upload(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	DownloadByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

type mediaHandler struct {
	mediaService   media.MediaService
	maxUploadBytes int64
}

// NewMediaHandler creates a new MediaHandler. Bodies beyond maxUploadBytes
// are cut off before they reach the service.
func NewMediaHandler(mediaService media.MediaService, maxUploadBytes int64) MediaHandler {
	return &mediaHandler{mediaService: mediaService, maxUploadBytes: maxUploadBytes}
}

// Upload stores the multipart field "file" for the given purpose
func (handler *mediaHandler) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		badRequest(ctx, "invalid form data")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequest(ctx, "invalid form data")
		return
	}
	defer file.Close()

	// one byte past the limit lets the service report the upload as too large
	data, err := io.ReadAll(io.LimitReader(file, handler.maxUploadBytes+1))
	if err != nil {
		badRequest(ctx, "invalid form data")
		return
	}

	m, err := handler.mediaService.Upload(ctx, actorFrom(ctx), ctx.PostForm("purpose"), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, m)
}

// GetByID returns file metadata
func (handler *mediaHandler) GetByID(ctx *gin.Context) {
	m, err := handler.mediaService.GetByID(ctx, actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, m)
}

// DownloadByID streams the file content
func (handler *mediaHandler) DownloadByID(ctx *gin.Context) {
	m, data, err := handler.mediaService.Download(ctx, actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Writer.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", m.Name))
	ctx.Data(http.StatusOK, m.ContentType, data)
}

// DeleteByID removes a file
func (handler *mediaHandler) DeleteByID(ctx *gin.Context) {
	if err := handler.mediaService.DeleteByID(ctx, actorFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	noContent(ctx)
}
