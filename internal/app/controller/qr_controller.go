package controller

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/internal/app/service"
	"github.com/historin/historin-backend/internal/errors"
	"github.com/historin/historin-backend/internal/middleware"
	"github.com/lib/pq"
)

type QrHuntController struct {
	qrHuntService service.QrHuntService
}

func NewQrHuntController(qrHuntService service.QrHuntService) *QrHuntController {
	return &QrHuntController{
		qrHuntService: qrHuntService,
	}
}

// GetHunt returns the active codes, plus the caller's scans and progress
// when a userId is supplied
// GET /api/qr-hunt?userId=
func (ctrl *QrHuntController) GetHunt(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	codes, err := ctrl.qrHuntService.ListActiveCodes()
	if err != nil {
		log.Error("Failed to list active qr codes", err)
		errors.InternalError(c, "Failed to load qr hunt")
		return
	}

	response := gin.H{"qrCodes": codes}

	userID := strings.TrimSpace(c.Query("userId"))
	if userID != "" {
		scans, err := ctrl.qrHuntService.ListScans(userID)
		if err != nil {
			log.Error("Failed to list user scans", err, map[string]interface{}{
				"user_id": userID,
			})
			errors.InternalError(c, "Failed to load qr hunt")
			return
		}

		progress, err := ctrl.qrHuntService.GetProgress(userID)
		if err != nil {
			log.Error("Failed to compute progress", err, map[string]interface{}{
				"user_id": userID,
			})
			errors.InternalError(c, "Failed to load qr hunt")
			return
		}

		response["scans"] = scans
		response["progress"] = progress
	}

	c.JSON(http.StatusOK, response)
}

type RecordScanRequest struct {
	UserID   string `json:"userId" binding:"required"`
	QrCodeID string `json:"qrCodeId" binding:"required"`
}

// RecordScan stores one user's find of one code
// POST /api/qr-hunt
func (ctrl *QrHuntController) RecordScan(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RecordScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid scan request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, bindingErrorMessage(err))
		return
	}

	scan, code, progress, err := ctrl.qrHuntService.RecordScan(req.UserID, req.QrCodeID)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrInvalidQrCode):
			errors.BadRequest(c, errors.QrInvalidCode, "Invalid QR code")
		case stderrors.Is(err, service.ErrDuplicateScan):
			errors.Conflict(c, errors.QrDuplicateScan, "QR code already scanned")
		default:
			log.Error("Failed to record scan", err, map[string]interface{}{
				"user_id": req.UserID,
			})
			errors.InternalError(c, "Failed to record scan")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"scan":     scan,
		"qrCode":   code,
		"progress": progress,
	})
}

type CreateQrCodeRequest struct {
	Code         string   `json:"code" binding:"required"`
	StreetID     uint     `json:"street_id" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	ValidStrings []string `json:"valid_strings" binding:"required,min=1,dive,required"`
	Active       *bool    `json:"active"`
}

// CreateCode creates a hunt code
// POST /api/admin/qr-codes
func (ctrl *QrHuntController) CreateCode(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateQrCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid qr code creation request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, bindingErrorMessage(err))
		return
	}

	code := &model.QrCode{
		Code:         req.Code,
		StreetID:     req.StreetID,
		Name:         req.Name,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		ValidStrings: pq.StringArray(req.ValidStrings),
		Active:       true,
	}
	if req.Active != nil {
		code.Active = *req.Active
	}

	if err := ctrl.qrHuntService.CreateCode(code); err != nil {
		info := errors.ParseError(err, "qr code")
		log.Error("Failed to create qr code", err, map[string]interface{}{
			"code": req.Code,
		})
		status := http.StatusInternalServerError
		if info.Code == errors.ResourceAlreadyExists {
			status = http.StatusConflict
		}
		errors.RespondWithError(c, status, info.Code, info.Message)
		return
	}

	log.Info("QR code created", map[string]interface{}{
		"qr_code_id": code.ID,
		"code":       code.Code,
	})
	c.JSON(http.StatusCreated, gin.H{"data": code})
}

// ListCodes lists hunt codes for the admin panel
// GET /api/admin/qr-codes?limit=&offset=
func (ctrl *QrHuntController) ListCodes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, offset := parsePagination(c)
	codes, err := ctrl.qrHuntService.ListCodes(limit, offset)
	if err != nil {
		log.Error("Failed to list qr codes", err)
		errors.InternalError(c, "Failed to list qr codes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": codes})
}

type UpdateQrCodeRequest struct {
	Code         *string  `json:"code"`
	StreetID     *uint    `json:"street_id"`
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	ValidStrings []string `json:"valid_strings" binding:"omitempty,min=1,dive,required"`
	Active       *bool    `json:"active"`
}

// UpdateCode merges the fields present into a partial update
// PUT|PATCH /api/admin/qr-codes/:id
func (ctrl *QrHuntController) UpdateCode(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseID(c)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid id")
		return
	}

	var req UpdateQrCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid qr code update request", map[string]interface{}{
			"qr_code_id": id,
			"error":      err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, bindingErrorMessage(err))
		return
	}

	fields := map[string]interface{}{}
	patchRequiredString(fields, "code", req.Code)
	patchValue(fields, "street_id", req.StreetID)
	patchRequiredString(fields, "name", req.Name)
	patchValue(fields, "description", req.Description)
	patchValue(fields, "latitude", req.Latitude)
	patchValue(fields, "longitude", req.Longitude)
	patchValue(fields, "active", req.Active)
	if req.ValidStrings != nil {
		fields["valid_strings"] = pq.StringArray(req.ValidStrings)
	}

	if len(fields) == 0 {
		errors.BadRequest(c, errors.ValidationEmptyPatch, "No valid fields to update")
		return
	}

	code, err := ctrl.qrHuntService.PatchCode(id, fields)
	if err != nil {
		if stderrors.Is(err, service.ErrQrCodeNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "QR code not found")
			return
		}
		info := errors.ParseError(err, "qr code")
		log.Error("Failed to update qr code", err, map[string]interface{}{
			"qr_code_id": id,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	log.Info("QR code updated", map[string]interface{}{
		"qr_code_id": id,
	})
	c.JSON(http.StatusOK, gin.H{"data": code})
}

// DeleteCode removes a hunt code
// DELETE /api/admin/qr-codes/:id
func (ctrl *QrHuntController) DeleteCode(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseID(c)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid id")
		return
	}

	if err := ctrl.qrHuntService.DeleteCode(id); err != nil {
		if stderrors.Is(err, service.ErrQrCodeNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "QR code not found")
			return
		}
		log.Error("Failed to delete qr code", err, map[string]interface{}{
			"qr_code_id": id,
		})
		errors.InternalError(c, "Failed to delete qr code")
		return
	}

	log.Info("QR code deleted", map[string]interface{}{
		"qr_code_id": id,
	})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
