package movie

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMovieReq_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateMovieReq
		wantErr []string
	}{
		{
			name: "valid",
			req:  CreateMovieReq{Title: "Inception", Description: "A heist in dreams", CategoryID: 1},
		},
		{
			name:    "missing title",
			req:     CreateMovieReq{Description: "x", CategoryID: 1},
			wantErr: []string{"title"},
		},
		{
			name:    "whitespace-only title",
			req:     CreateMovieReq{Title: "   ", Description: "x", CategoryID: 1},
			wantErr: []string{"title"},
		},
		{
			name:    "whitespace-only description",
			req:     CreateMovieReq{Title: "Inception", Description: " \t ", CategoryID: 1},
			wantErr: []string{"description"},
		},
		{
			name:    "missing description",
			req:     CreateMovieReq{Title: "Inception", CategoryID: 1},
			wantErr: []string{"description"},
		},
		{
			name:    "missing category",
			req:     CreateMovieReq{Title: "Inception", Description: "x"},
			wantErr: []string{"categoryId"},
		},
		{
			name:    "negative category",
			req:     CreateMovieReq{Title: "Inception", Description: "x", CategoryID: -2},
			wantErr: []string{"categoryId"},
		},
		{
			name:    "every violation reported",
			req:     CreateMovieReq{},
			wantErr: []string{"title", "description", "categoryId"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			assertFieldErrors(t, err, tt.wantErr)
		})
	}
}

func TestUpdateMovieReq_Validate(t *testing.T) {
	title := "The Matrix"
	empty := ""
	blank := "   "
	zero := int64(0)
	negative := int64(-1)

	tests := []struct {
		name    string
		req     UpdateMovieReq
		wantErr []string
	}{
		{
			name: "valid partial",
			req:  UpdateMovieReq{ID: 1, Title: &title},
		},
		{
			name: "valid id only",
			req:  UpdateMovieReq{ID: 1},
		},
		{
			name:    "missing id",
			req:     UpdateMovieReq{Title: &title},
			wantErr: []string{"id"},
		},
		{
			name:    "empty title",
			req:     UpdateMovieReq{ID: 1, Title: &empty},
			wantErr: []string{"title"},
		},
		{
			name:    "whitespace-only title",
			req:     UpdateMovieReq{ID: 1, Title: &blank},
			wantErr: []string{"title"},
		},
		{
			name:    "whitespace-only description",
			req:     UpdateMovieReq{ID: 1, Description: &blank},
			wantErr: []string{"description"},
		},
		{
			name:    "zero category",
			req:     UpdateMovieReq{ID: 1, CategoryID: &zero},
			wantErr: []string{"categoryId"},
		},
		{
			name:    "negative category",
			req:     UpdateMovieReq{ID: 1, CategoryID: &negative},
			wantErr: []string{"categoryId"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			assertFieldErrors(t, err, tt.wantErr)
		})
	}
}

func TestToResp_UnknownCategory(t *testing.T) {
	name := "Action"

	m := &Movie{ID: 1, Title: "Inception", Description: "x", CategoryID: 2, CategoryName: &name}
	assert.Equal(t, "Action", ToResp(m).Category.Name)

	m.CategoryName = nil
	assert.Equal(t, "Unknown", ToResp(m).Category.Name)
}

func assertFieldErrors(t *testing.T, err error, wantFields []string) {
	t.Helper()

	if len(wantFields) == 0 {
		assert.NoError(t, err)
		return
	}

	require.Error(t, err)
	verrs, ok := err.(validation.Errors)
	require.True(t, ok, "expected validation.Errors, got %T", err)
	assert.Len(t, verrs, len(wantFields))
	for _, field := range wantFields {
		assert.Contains(t, verrs, field)
	}
}
