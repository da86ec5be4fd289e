package category

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"moviecatalog-backend/internal/shared/rules"
)

type CreateCategoryReq struct {
	Name string `json:"name"`
}

// Validate collects every violated field instead of stopping at the first.
func (r CreateCategoryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("Category name is required"),
			rules.NotBlank("Category name is required"),
			validation.Length(1, 255),
		),
	)
}

type UpdateCategoryReq struct {
	ID   int64   `json:"id"`
	Name *string `json:"name"`
}

func (r UpdateCategoryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID,
			validation.Required.Error("Invalid category ID"),
			validation.Min(int64(1)).Error("Invalid category ID"),
		),
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("Category name is required"),
			rules.NotBlank("Category name is required"),
			validation.Length(1, 255),
		),
	)
}

type CategoryResp struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToResp(c *Category) *CategoryResp {
	if c == nil {
		return nil
	}
	return &CategoryResp{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToRespList(categories []Category) []CategoryResp {
	resps := make([]CategoryResp, 0, len(categories))
	for i := range categories {
		resps = append(resps, *ToResp(&categories[i]))
	}
	return resps
}
