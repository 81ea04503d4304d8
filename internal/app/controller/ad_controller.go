package controller

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/internal/app/service"
	"github.com/historin/historin-backend/internal/errors"
	"github.com/historin/historin-backend/internal/middleware"
	"github.com/lib/pq"
)

type AdController struct {
	adService service.AdService
}

func NewAdController(adService service.AdService) *AdController {
	return &AdController{
		adService: adService,
	}
}

// SelectAd picks at most one ad for the public site
// GET /api/ads?ruaId=
func (ctrl *AdController) SelectAd(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var streetID *uint
	// ruaId is the parameter name the site has always sent; streetId is
	// accepted as an alias.
	raw := c.Query("ruaId")
	if raw == "" {
		raw = c.Query("streetId")
	}
	if raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			errors.BadRequest(c, errors.ValidationInvalidID, "Invalid ruaId")
			return
		}
		id := uint(parsed)
		streetID = &id
	}

	ad, err := ctrl.adService.SelectAd(streetID)
	if err != nil {
		if stderrors.Is(err, service.ErrNoAdAvailable) {
			errors.BadRequest(c, errors.AdNoneAvailable, "No ad available")
			return
		}
		log.Error("Failed to select ad", err, map[string]interface{}{
			"street_id": streetID,
		})
		errors.InternalError(c, "Failed to select ad")
		return
	}

	c.JSON(http.StatusOK, ad)
}

type CreateAdRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	ImageURL    string            `json:"image_url"`
	LinkURL     string            `json:"link_url"`
	LinkText    string            `json:"link_text"`
	Tag         string            `json:"tag"`
	Priority    int               `json:"priority"`
	Placement   model.AdPlacement `json:"placement" binding:"omitempty,oneof=top after_match"`
	Keywords    []string          `json:"keywords"`
	StreetID    *uint             `json:"street_id"`
	WorkID      *uint             `json:"work_id"`
	BusinessID  *uint             `json:"business_id"`
	Active      *bool             `json:"active"`
	StartAt     *time.Time        `json:"start_at"`
	EndAt       *time.Time        `json:"end_at"`
}

// CreateAd creates an advertisement
// POST /api/admin/ads
func (ctrl *AdController) CreateAd(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid ad creation request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, bindingErrorMessage(err))
		return
	}

	ad := &model.Ad{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		LinkURL:     req.LinkURL,
		LinkText:    req.LinkText,
		Tag:         req.Tag,
		Priority:    req.Priority,
		Placement:   model.PlacementTop,
		Keywords:    pq.StringArray(req.Keywords),
		StreetID:    req.StreetID,
		WorkID:      req.WorkID,
		BusinessID:  req.BusinessID,
		Active:      true,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
	}
	if req.Placement != "" {
		ad.Placement = req.Placement
	}
	if req.Active != nil {
		ad.Active = *req.Active
	}

	if err := ctrl.adService.CreateAd(ad); err != nil {
		info := errors.ParseError(err, "ad")
		log.Error("Failed to create ad", err, map[string]interface{}{
			"title": req.Title,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	log.Info("Ad created", map[string]interface{}{
		"ad_id": ad.ID,
		"title": ad.Title,
	})
	c.JSON(http.StatusCreated, gin.H{"data": ad})
}

// ListAds lists ads for the admin panel
// GET /api/admin/ads?limit=&offset=
func (ctrl *AdController) ListAds(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, offset := parsePagination(c)
	ads, err := ctrl.adService.ListAds(limit, offset)
	if err != nil {
		log.Error("Failed to list ads", err)
		errors.InternalError(c, "Failed to list ads")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ads})
}

type UpdateAdRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	ImageURL    *string            `json:"image_url"`
	LinkURL     *string            `json:"link_url"`
	LinkText    *string            `json:"link_text"`
	Tag         *string            `json:"tag"`
	Priority    *int               `json:"priority"`
	Placement   *model.AdPlacement `json:"placement" binding:"omitempty,oneof=top after_match"`
	Keywords    []string           `json:"keywords"`
	StreetID    *uint              `json:"street_id"`
	WorkID      *uint              `json:"work_id"`
	BusinessID  *uint              `json:"business_id"`
	Active      *bool              `json:"active"`
	StartAt     *time.Time         `json:"start_at"`
	EndAt       *time.Time         `json:"end_at"`
}

// UpdateAd merges the fields present into a partial update
// PUT|PATCH /api/admin/ads/:id
func (ctrl *AdController) UpdateAd(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseID(c)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid id")
		return
	}

	var req UpdateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid ad update request", map[string]interface{}{
			"ad_id": id,
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, bindingErrorMessage(err))
		return
	}

	fields := map[string]interface{}{}
	patchRequiredString(fields, "title", req.Title)
	patchValue(fields, "description", req.Description)
	patchValue(fields, "image_url", req.ImageURL)
	patchValue(fields, "link_url", req.LinkURL)
	patchValue(fields, "link_text", req.LinkText)
	patchValue(fields, "tag", req.Tag)
	patchValue(fields, "priority", req.Priority)
	patchValue(fields, "placement", req.Placement)
	patchValue(fields, "street_id", req.StreetID)
	patchValue(fields, "work_id", req.WorkID)
	patchValue(fields, "business_id", req.BusinessID)
	patchValue(fields, "active", req.Active)
	patchValue(fields, "start_at", req.StartAt)
	patchValue(fields, "end_at", req.EndAt)
	if req.Keywords != nil {
		fields["keywords"] = pq.StringArray(req.Keywords)
	}

	if len(fields) == 0 {
		errors.BadRequest(c, errors.ValidationEmptyPatch, "No valid fields to update")
		return
	}

	ad, err := ctrl.adService.PatchAd(id, fields)
	if err != nil {
		if stderrors.Is(err, service.ErrAdNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Ad not found")
			return
		}
		info := errors.ParseError(err, "ad")
		log.Error("Failed to update ad", err, map[string]interface{}{
			"ad_id": id,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	log.Info("Ad updated", map[string]interface{}{
		"ad_id": id,
	})
	c.JSON(http.StatusOK, gin.H{"data": ad})
}

// DeleteAd removes an ad
// DELETE /api/admin/ads/:id
func (ctrl *AdController) DeleteAd(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseID(c)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid id")
		return
	}

	if err := ctrl.adService.DeleteAd(id); err != nil {
		if stderrors.Is(err, service.ErrAdNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Ad not found")
			return
		}
		log.Error("Failed to delete ad", err, map[string]interface{}{
			"ad_id": id,
		})
		errors.InternalError(c, "Failed to delete ad")
		return
	}

	log.Info("Ad deleted", map[string]interface{}{
		"ad_id": id,
	})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
