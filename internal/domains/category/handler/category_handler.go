package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moviecatalog-backend/internal/domains/category"
	"moviecatalog-backend/internal/shared/response"
	"moviecatalog-backend/pkg/logger"
)

type CategoryHandler struct {
	service category.CategoryService
}

func NewCategoryHandler(svc category.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Write(c, http.StatusCreated, "Category created successfully", resp)
}

// PUT /categories
func (h *CategoryHandler) Update(c *gin.Context) {
	var req category.UpdateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Write(c, http.StatusOK, "Category updated successfully", resp)
}

// DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Write(c, http.StatusOK, "Category deleted successfully", nil)
}

// GET /categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Write(c, http.StatusOK, "Category retrieved successfully", resp)
}

// GET /categories
func (h *CategoryHandler) GetAll(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	message := "Categories retrieved successfully"
	if len(resp) == 0 {
		message = "No categories found"
	}
	response.Write(c, http.StatusOK, message, resp)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, category.ErrInvalidCategoryID
	}
	return id, nil
}

// respondError maps service errors to status codes. Conflicts carry their
// payload; anything unrecognized is downgraded to a generic 500.
func (h *CategoryHandler) respondError(c *gin.Context, err error) {
	status := category.GetHTTPStatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error("category handler: unexpected error", err)
		response.InternalError(c)
		return
	}

	var conflict *category.ConflictError
	if errors.As(err, &conflict) {
		response.Write(c, status, conflict.Err.Error(), conflict.Data)
		return
	}

	response.Write(c, status, err.Error(), nil)
}
