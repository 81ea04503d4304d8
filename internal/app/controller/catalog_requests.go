package controller

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/historin/historin-backend/internal/app/model"
)

// Declarative request schemas for the catalog resources. Create DTOs carry
// binding tags; update DTOs use pointer fields so only the fields present in
// the body land in the patch. A required field sent as blank is dropped from
// the patch rather than blanking the column.

func patchValue[V any](fields map[string]interface{}, key string, value *V) {
	if value != nil {
		fields[key] = *value
	}
}

func patchRequiredString(fields map[string]interface{}, key string, value *string) {
	if value != nil && strings.TrimSpace(*value) != "" {
		fields[key] = *value
	}
}

// ==================== Cities ====================

type CreateCityRequest struct {
	Name        string `json:"name" binding:"required"`
	State       string `json:"state"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func BindCreateCity(c *gin.Context) (*model.City, error) {
	var req CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &model.City{
		Name:        req.Name,
		State:       req.State,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}, nil
}

type UpdateCityRequest struct {
	Name        *string `json:"name"`
	State       *string `json:"state"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

func BindPatchCity(c *gin.Context) (map[string]interface{}, error) {
	var req UpdateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	patchRequiredString(fields, "name", req.Name)
	patchValue(fields, "state", req.State)
	patchValue(fields, "description", req.Description)
	patchValue(fields, "image_url", req.ImageURL)
	return fields, nil
}

// ==================== Streets ====================

type CreateStreetRequest struct {
	CityID      uint    `json:"city_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

func BindCreateStreet(c *gin.Context) (*model.Street, error) {
	var req CreateStreetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &model.Street{
		CityID:      req.CityID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}, nil
}

type UpdateStreetRequest struct {
	CityID      *uint    `json:"city_id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func BindPatchStreet(c *gin.Context) (map[string]interface{}, error) {
	var req UpdateStreetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	patchValue(fields, "city_id", req.CityID)
	patchRequiredString(fields, "name", req.Name)
	patchValue(fields, "description", req.Description)
	patchValue(fields, "image_url", req.ImageURL)
	patchValue(fields, "latitude", req.Latitude)
	patchValue(fields, "longitude", req.Longitude)
	return fields, nil
}

// ==================== Authors ====================

type CreateAuthorRequest struct {
	Name     string `json:"name" binding:"required"`
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url"`
}

func BindCreateAuthor(c *gin.Context) (*model.Author, error) {
	var req CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &model.Author{
		Name:     req.Name,
		Bio:      req.Bio,
		ImageURL: req.ImageURL,
	}, nil
}

type UpdateAuthorRequest struct {
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
	ImageURL *string `json:"image_url"`
}

func BindPatchAuthor(c *gin.Context) (map[string]interface{}, error) {
	var req UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	patchRequiredString(fields, "name", req.Name)
	patchValue(fields, "bio", req.Bio)
	patchValue(fields, "image_url", req.ImageURL)
	return fields, nil
}

// ==================== Works ====================

type CreateWorkRequest struct {
	StreetID uint   `json:"street_id" binding:"required"`
	AuthorID *uint  `json:"author_id"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Year     *int   `json:"year"`
	ImageURL string `json:"image_url"`
}

func BindCreateWork(c *gin.Context) (*model.Work, error) {
	var req CreateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &model.Work{
		StreetID: req.StreetID,
		AuthorID: req.AuthorID,
		Title:    req.Title,
		Content:  req.Content,
		Year:     req.Year,
		ImageURL: req.ImageURL,
	}, nil
}

type UpdateWorkRequest struct {
	StreetID *uint   `json:"street_id"`
	AuthorID *uint   `json:"author_id"`
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Year     *int    `json:"year"`
	ImageURL *string `json:"image_url"`
}

func BindPatchWork(c *gin.Context) (map[string]interface{}, error) {
	var req UpdateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	patchValue(fields, "street_id", req.StreetID)
	patchValue(fields, "author_id", req.AuthorID)
	patchRequiredString(fields, "title", req.Title)
	patchValue(fields, "content", req.Content)
	patchValue(fields, "year", req.Year)
	patchValue(fields, "image_url", req.ImageURL)
	return fields, nil
}

// ==================== Businesses ====================

type CreateBusinessRequest struct {
	StreetID    *uint  `json:"street_id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	LinkURL     string `json:"link_url"`
	ImageURL    string `json:"image_url"`
}

func BindCreateBusiness(c *gin.Context) (*model.Business, error) {
	var req CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &model.Business{
		StreetID:    req.StreetID,
		Name:        req.Name,
		Description: req.Description,
		LinkURL:     req.LinkURL,
		ImageURL:    req.ImageURL,
	}, nil
}

type UpdateBusinessRequest struct {
	StreetID    *uint   `json:"street_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	LinkURL     *string `json:"link_url"`
	ImageURL    *string `json:"image_url"`
}

func BindPatchBusiness(c *gin.Context) (map[string]interface{}, error) {
	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	patchValue(fields, "street_id", req.StreetID)
	patchRequiredString(fields, "name", req.Name)
	patchValue(fields, "description", req.Description)
	patchValue(fields, "link_url", req.LinkURL)
	patchValue(fields, "image_url", req.ImageURL)
	return fields, nil
}

// ==================== Organizations ====================

type CreateOrganizationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	LinkURL     string `json:"link_url"`
}

func BindCreateOrganization(c *gin.Context) (*model.Organization, error) {
	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &model.Organization{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		LinkURL:     req.LinkURL,
	}, nil
}

type UpdateOrganizationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
	LinkURL     *string `json:"link_url"`
}

func BindPatchOrganization(c *gin.Context) (map[string]interface{}, error) {
	var req UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	patchRequiredString(fields, "name", req.Name)
	patchValue(fields, "description", req.Description)
	patchValue(fields, "logo_url", req.LogoURL)
	patchValue(fields, "link_url", req.LinkURL)
	return fields, nil
}

// ==================== Reference sites ====================

type CreateReferenceSiteRequest struct {
	Name        string `json:"name" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Description string `json:"description"`
}

func BindCreateReferenceSite(c *gin.Context) (*model.ReferenceSite, error) {
	var req CreateReferenceSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &model.ReferenceSite{
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
	}, nil
}

type UpdateReferenceSiteRequest struct {
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
}

func BindPatchReferenceSite(c *gin.Context) (map[string]interface{}, error) {
	var req UpdateReferenceSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	patchRequiredString(fields, "name", req.Name)
	patchRequiredString(fields, "url", req.URL)
	patchValue(fields, "description", req.Description)
	return fields, nil
}

// ==================== Popup ads ====================

type CreatePopupAdRequest struct {
	Title    string     `json:"title" binding:"required"`
	ImageURL string     `json:"image_url"`
	LinkURL  string     `json:"link_url"`
	Active   *bool      `json:"active"`
	StartAt  *time.Time `json:"start_at"`
	EndAt    *time.Time `json:"end_at"`
}

func BindCreatePopupAd(c *gin.Context) (*model.PopupAd, error) {
	var req CreatePopupAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	popupAd := &model.PopupAd{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Active:   true,
		StartAt:  req.StartAt,
		EndAt:    req.EndAt,
	}
	if req.Active != nil {
		popupAd.Active = *req.Active
	}
	return popupAd, nil
}

type UpdatePopupAdRequest struct {
	Title    *string    `json:"title"`
	ImageURL *string    `json:"image_url"`
	LinkURL  *string    `json:"link_url"`
	Active   *bool      `json:"active"`
	StartAt  *time.Time `json:"start_at"`
	EndAt    *time.Time `json:"end_at"`
}

func BindPatchPopupAd(c *gin.Context) (map[string]interface{}, error) {
	var req UpdatePopupAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	patchRequiredString(fields, "title", req.Title)
	patchValue(fields, "image_url", req.ImageURL)
	patchValue(fields, "link_url", req.LinkURL)
	patchValue(fields, "active", req.Active)
	patchValue(fields, "start_at", req.StartAt)
	patchValue(fields, "end_at", req.EndAt)
	return fields, nil
}
