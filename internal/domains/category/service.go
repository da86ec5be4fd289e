package category

import "context"

// CategoryService owns the cross-entity business rules: uniqueness on
// create/update and the dependent-movie guard on delete.
type CategoryService interface {
	Create(ctx context.Context, req *CreateCategoryReq) (*CategoryResp, error)
	Update(ctx context.Context, req *UpdateCategoryReq) (*CategoryResp, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*CategoryResp, error)
	List(ctx context.Context) ([]CategoryResp, error)
}
