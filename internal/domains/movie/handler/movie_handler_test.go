package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviecatalog-backend/internal/domains/movie"
	"moviecatalog-backend/internal/shared/response"
)

type stubMovieService struct {
	createResp *movie.MovieResp
	createErr  error
	updateResp *movie.MovieResp
	updateErr  error
	deleteErr  error
	getResp    *movie.MovieResp
	getErr     error
	listResp   []movie.MovieResp
	listErr    error

	lastParams *movie.SearchParams
}

func (s *stubMovieService) Create(context.Context, *movie.CreateMovieReq) (*movie.MovieResp, error) {
	return s.createResp, s.createErr
}
func (s *stubMovieService) Update(context.Context, *movie.UpdateMovieReq) (*movie.MovieResp, error) {
	return s.updateResp, s.updateErr
}
func (s *stubMovieService) Delete(context.Context, int64) error { return s.deleteErr }
func (s *stubMovieService) GetByID(context.Context, int64) (*movie.MovieResp, error) {
	return s.getResp, s.getErr
}
func (s *stubMovieService) List(_ context.Context, params movie.SearchParams) ([]movie.MovieResp, error) {
	s.lastParams = &params
	return s.listResp, s.listErr
}

func newRouter(svc movie.MovieService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMovieHandler(svc)

	r := gin.New()
	r.POST("/movies", h.Create)
	r.PUT("/movies", h.Update)
	r.DELETE("/movies/:id", h.Delete)
	r.GET("/movies/:id", h.GetByID)
	r.GET("/movies", h.GetAll)
	return r
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func perform(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, w.Code, env.Status, "body status must mirror the HTTP status")
	return w, env
}

func TestMovieHandler_Create(t *testing.T) {
	svc := &stubMovieService{createResp: &movie.MovieResp{
		ID:          1,
		Title:       "Inception",
		Description: "A heist in dreams",
		Category:    movie.MovieCategoryResp{ID: 1, Name: "Action"},
	}}
	r := newRouter(svc)

	w, env := perform(t, r, http.MethodPost, "/movies", gin.H{
		"title":       "Inception",
		"description": "A heist in dreams",
		"categoryId":  1,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Movie created successfully", env.Message)

	var data movie.MovieResp
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Action", data.Category.Name)
}

func TestMovieHandler_Create_ValidationError(t *testing.T) {
	r := newRouter(&stubMovieService{})

	w, env := perform(t, r, http.MethodPost, "/movies", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation error", env.Message)

	var fields []response.FieldError
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	require.Len(t, fields, 3)
	// paths come back sorted
	assert.Equal(t, "categoryId", fields[0].Path)
	assert.Equal(t, "description", fields[1].Path)
	assert.Equal(t, "title", fields[2].Path)
}

func TestMovieHandler_Create_UnknownCategory(t *testing.T) {
	svc := &stubMovieService{createErr: &movie.UnknownCategoryError{ID: 42}}
	r := newRouter(svc)

	w, env := perform(t, r, http.MethodPost, "/movies", gin.H{
		"title":       "Inception",
		"description": "x",
		"categoryId":  42,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "There is no category with the given id: 42", env.Message)
}

func TestMovieHandler_Create_Conflict(t *testing.T) {
	existing := &movie.MovieResp{ID: 3, Title: "Inception"}
	svc := &stubMovieService{
		createErr: &movie.ConflictError{Err: movie.ErrDuplicateMovie, Data: existing},
	}
	r := newRouter(svc)

	w, env := perform(t, r, http.MethodPost, "/movies", gin.H{
		"title":       "Inception",
		"description": "x",
		"categoryId":  1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Movie already exists", env.Message)

	var data movie.MovieResp
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, int64(3), data.ID)
}

func TestMovieHandler_Update(t *testing.T) {
	svc := &stubMovieService{updateResp: &movie.MovieResp{ID: 1, Title: "The Matrix"}}
	r := newRouter(svc)

	w, env := perform(t, r, http.MethodPut, "/movies", gin.H{"id": 1, "title": "The Matrix"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Movie updated successfully", env.Message)
}

func TestMovieHandler_Update_NotFound(t *testing.T) {
	svc := &stubMovieService{updateErr: movie.ErrMovieNotFound}
	r := newRouter(svc)

	w, env := perform(t, r, http.MethodPut, "/movies", gin.H{"id": 99, "title": "The Matrix"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Movie not found", env.Message)
}

func TestMovieHandler_Delete(t *testing.T) {
	r := newRouter(&stubMovieService{})

	w, env := perform(t, r, http.MethodDelete, "/movies/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Movie deleted successfully", env.Message)
}

func TestMovieHandler_GetByID_InvalidID(t *testing.T) {
	r := newRouter(&stubMovieService{})

	w, env := perform(t, r, http.MethodGet, "/movies/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid movie ID", env.Message)
}

func TestMovieHandler_GetAll_QueryParams(t *testing.T) {
	svc := &stubMovieService{listResp: []movie.MovieResp{{ID: 1, Title: "Inception"}}}
	r := newRouter(svc)

	w, env := perform(t, r, http.MethodGet,
		"/movies?page=2&itemsPerPage=25&searchQuery=incep&categoryId=3&sortBy=createdAt&sortOrder=asc", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Movies retrieved successfully", env.Message)

	require.NotNil(t, svc.lastParams)
	assert.Equal(t, 2, svc.lastParams.Page)
	assert.Equal(t, 25, svc.lastParams.ItemsPerPage)
	assert.Equal(t, "incep", svc.lastParams.SearchQuery)
	assert.Equal(t, int64(3), svc.lastParams.CategoryID)
	assert.Equal(t, "createdAt", svc.lastParams.SortBy)
	assert.Equal(t, "asc", svc.lastParams.SortOrder)
}

func TestMovieHandler_GetAll_MalformedNumbersIgnored(t *testing.T) {
	svc := &stubMovieService{listResp: []movie.MovieResp{}}
	r := newRouter(svc)

	w, env := perform(t, r, http.MethodGet, "/movies?page=two&categoryId=x", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No movies found", env.Message)

	require.NotNil(t, svc.lastParams)
	assert.Zero(t, svc.lastParams.Page)
	assert.Zero(t, svc.lastParams.CategoryID)
}

func TestMovieHandler_UnexpectedError(t *testing.T) {
	svc := &stubMovieService{listErr: errors.New("connection refused")}
	r := newRouter(svc)

	w, env := perform(t, r, http.MethodGet, "/movies", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", env.Message)
}
