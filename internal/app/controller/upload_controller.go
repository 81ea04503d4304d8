package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/historin/historin-backend/internal/errors"
	"github.com/historin/historin-backend/internal/middleware"
	"github.com/historin/historin-backend/internal/storage"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3Storage *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: s3Storage,
	}
}

type PresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder" binding:"omitempty,oneof=uploads cities streets works ads qr-codes"`
}

// GetPresignedURL hands the admin panel a short-lived S3 PUT URL for an
// image upload
// POST /api/admin/upload/presigned-url
func (ctrl *UploadController) GetPresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid presigned url request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, bindingErrorMessage(err))
		return
	}

	if err := ctrl.storage.ValidateContentType(req.ContentType, storage.ImageContentTypes); err != nil {
		log.Warn("Upload rejected: content type not allowed", map[string]interface{}{
			"content_type": req.ContentType,
		})
		errors.BadRequest(c, errors.UploadInvalidFileType, "Only image uploads are allowed")
		return
	}

	response, err := ctrl.storage.GeneratePresignedURL(c.Request.Context(), req.Filename, req.ContentType, req.Folder)
	if err != nil {
		log.Error("Failed to generate presigned url", err, map[string]interface{}{
			"filename": req.Filename,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, errors.UploadFailed, "Failed to generate upload URL")
		return
	}

	log.Info("Presigned upload url issued", map[string]interface{}{
		"key": response.Key,
	})
	c.JSON(http.StatusOK, response)
}
