package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/historin/historin-backend/internal/app/service"
	"github.com/historin/historin-backend/internal/errors"
	"github.com/historin/historin-backend/internal/middleware"
)

// ResourceController serves the uniform admin CRUD shape for one catalog
// resource. Each resource supplies a create binder (full DTO with binding
// tags) and a patch binder (pointer-field DTO reduced to a column map); see
// catalog_requests.go.
type ResourceController[T any] struct {
	name       string
	svc        service.CatalogService[T]
	bindCreate func(*gin.Context) (*T, error)
	bindPatch  func(*gin.Context) (map[string]interface{}, error)
}

func NewResourceController[T any](
	name string,
	svc service.CatalogService[T],
	bindCreate func(*gin.Context) (*T, error),
	bindPatch func(*gin.Context) (map[string]interface{}, error),
) *ResourceController[T] {
	return &ResourceController[T]{
		name:       name,
		svc:        svc,
		bindCreate: bindCreate,
		bindPatch:  bindPatch,
	}
}

// List returns a page of records
// GET /api/admin/{resource}?limit=&offset=
func (ctrl *ResourceController[T]) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, offset := parsePagination(c)
	records, err := ctrl.svc.List(limit, offset)
	if err != nil {
		info := errors.ParseError(err, ctrl.name)
		log.Error("Failed to list records", err, map[string]interface{}{
			"resource": ctrl.name,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}

// Get returns one record by id
// GET /api/admin/{resource}/:id
func (ctrl *ResourceController[T]) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseID(c)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid id")
		return
	}

	record, err := ctrl.svc.Get(id)
	if err != nil {
		if stderrors.Is(err, service.ErrRecordNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Record not found")
			return
		}
		info := errors.ParseError(err, ctrl.name)
		log.Error("Failed to fetch record", err, map[string]interface{}{
			"resource": ctrl.name,
			"id":       id,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record})
}

// Create validates and inserts a record
// POST /api/admin/{resource}
func (ctrl *ResourceController[T]) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	record, err := ctrl.bindCreate(c)
	if err != nil {
		log.Warn("Invalid create request", map[string]interface{}{
			"resource": ctrl.name,
			"error":    err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, bindingErrorMessage(err))
		return
	}

	if err := ctrl.svc.Create(record); err != nil {
		info := errors.ParseError(err, ctrl.name)
		log.Error("Failed to create record", err, map[string]interface{}{
			"resource": ctrl.name,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	log.Info("Record created", map[string]interface{}{
		"resource": ctrl.name,
	})
	c.JSON(http.StatusCreated, gin.H{"data": record})
}

// Update merges only the fields present and valid into a partial update
// PUT|PATCH /api/admin/{resource}/:id
func (ctrl *ResourceController[T]) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseID(c)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid id")
		return
	}

	fields, err := ctrl.bindPatch(c)
	if err != nil {
		log.Warn("Invalid update request", map[string]interface{}{
			"resource": ctrl.name,
			"id":       id,
			"error":    err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, bindingErrorMessage(err))
		return
	}

	if len(fields) == 0 {
		errors.BadRequest(c, errors.ValidationEmptyPatch, "No valid fields to update")
		return
	}

	record, err := ctrl.svc.Patch(id, fields)
	if err != nil {
		if stderrors.Is(err, service.ErrRecordNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Record not found")
			return
		}
		info := errors.ParseError(err, ctrl.name)
		log.Error("Failed to update record", err, map[string]interface{}{
			"resource": ctrl.name,
			"id":       id,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	log.Info("Record updated", map[string]interface{}{
		"resource": ctrl.name,
		"id":       id,
	})
	c.JSON(http.StatusOK, gin.H{"data": record})
}

// Delete removes a record by id
// DELETE /api/admin/{resource}/:id
func (ctrl *ResourceController[T]) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseID(c)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid id")
		return
	}

	if err := ctrl.svc.Delete(id); err != nil {
		if stderrors.Is(err, service.ErrRecordNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Record not found")
			return
		}
		info := errors.ParseError(err, ctrl.name)
		log.Error("Failed to delete record", err, map[string]interface{}{
			"resource": ctrl.name,
			"id":       id,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	log.Info("Record deleted", map[string]interface{}{
		"resource": ctrl.name,
		"id":       id,
	})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
