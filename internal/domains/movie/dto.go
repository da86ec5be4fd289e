package movie

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"moviecatalog-backend/internal/shared/rules"
)

type CreateMovieReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  int64  `json:"categoryId"`
}

// Validate collects every violated field instead of stopping at the first.
func (r CreateMovieReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("Title is required"),
			rules.NotBlank("Title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Required.Error("Description is required"),
			rules.NotBlank("Description is required"),
		),
		validation.Field(&r.CategoryID,
			validation.Required.Error("Invalid category ID"),
			validation.Min(int64(1)).Error("Invalid category ID"),
		),
	)
}

type UpdateMovieReq struct {
	ID          int64   `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CategoryID  *int64  `json:"categoryId"`
}

func (r UpdateMovieReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID,
			validation.Required.Error("Invalid movie ID"),
			validation.Min(int64(1)).Error("Invalid movie ID"),
		),
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("Title is required"),
			rules.NotBlank("Title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.NilOrNotEmpty.Error("Description is required"),
			rules.NotBlank("Description is required"),
		),
		validation.Field(&r.CategoryID,
			validation.NilOrNotEmpty.Error("Invalid category ID"),
			validation.Min(int64(1)).Error("Invalid category ID"),
		),
	)
}

// MovieCategoryResp is the projected owning category inside a movie DTO.
type MovieCategoryResp struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type MovieResp struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    MovieCategoryResp `json:"category"`
}

// ToResp projects the entity into the client-facing shape. A missing join
// yields the "Unknown" category name.
func ToResp(m *Movie) *MovieResp {
	if m == nil {
		return nil
	}

	name := "Unknown"
	if m.CategoryName != nil {
		name = *m.CategoryName
	}

	return &MovieResp{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Category: MovieCategoryResp{
			ID:   m.CategoryID,
			Name: name,
		},
	}
}

func ToRespList(movies []Movie) []MovieResp {
	resps := make([]MovieResp, 0, len(movies))
	for i := range movies {
		resps = append(resps, *ToResp(&movies[i]))
	}
	return resps
}
