package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moviecatalog-backend/internal/domains/movie"
	"moviecatalog-backend/internal/shared/response"
	"moviecatalog-backend/pkg/logger"
)

type MovieHandler struct {
	service movie.MovieService
}

func NewMovieHandler(svc movie.MovieService) *MovieHandler {
	return &MovieHandler{service: svc}
}

// POST /movies
func (h *MovieHandler) Create(c *gin.Context) {
	var req movie.CreateMovieReq
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

	response.Write(c, http.StatusCreated, "Movie created successfully", resp)
}

// PUT /movies
func (h *MovieHandler) Update(c *gin.Context) {
	var req movie.UpdateMovieReq
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

	response.Write(c, http.StatusOK, "Movie updated successfully", resp)
}

// DELETE /movies/:id
func (h *MovieHandler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Write(c, http.StatusOK, "Movie deleted successfully", nil)
}

// GET /movies/:id
func (h *MovieHandler) GetByID(c *gin.Context) {
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

	response.Write(c, http.StatusOK, "Movie retrieved successfully", resp)
}

// GET /movies?page=&itemsPerPage=&searchQuery=&categoryId=&sortBy=&sortOrder=
func (h *MovieHandler) GetAll(c *gin.Context) {
	params := movie.SearchParams{
		Page:         queryInt(c, "page"),
		ItemsPerPage: queryInt(c, "itemsPerPage"),
		SearchQuery:  c.Query("searchQuery"),
		CategoryID:   int64(queryInt(c, "categoryId")),
		SortBy:       c.Query("sortBy"),
		SortOrder:    c.Query("sortOrder"),
	}

	resp, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		h.respondError(c, err)
		return
	}

	message := "Movies retrieved successfully"
	if len(resp) == 0 {
		message = "No movies found"
	}
	response.Write(c, http.StatusOK, message, resp)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, movie.ErrInvalidMovieID
	}
	return id, nil
}

// queryInt coerces a numeric query parameter; malformed or missing values
// become zero and pick up the service defaults.
func queryInt(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}

// respondError maps service errors to status codes. Conflicts carry their
// payload; anything unrecognized is downgraded to a generic 500.
func (h *MovieHandler) respondError(c *gin.Context, err error) {
	status := movie.GetHTTPStatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error("movie handler: unexpected error", err)
		response.InternalError(c)
		return
	}

	var conflict *movie.ConflictError
	if errors.As(err, &conflict) {
		response.Write(c, status, conflict.Err.Error(), conflict.Data)
		return
	}

	response.Write(c, status, err.Error(), nil)
}
