package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/foodtrace/backend/internal/service"
	"github.com/pageza/foodtrace/backend/internal/types"
)

// ImageHandler hands out presigned upload URLs for item images.
type ImageHandler struct {
	images service.IImageService
}

func NewImageHandler(images service.IImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

func (h *ImageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/items/:id/image-upload", h.UploadURL)
}

func (h *ImageHandler) UploadURL(c *gin.Context) {
	id, err := ParseID(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	var req types.ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, ErrMalformedBody)
		return
	}

	resp, err := h.images.UploadURL(c.Request.Context(), id, &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
