package movie

import "context"

// MovieService owns the cross-entity business rules: title uniqueness and
// the category existence check on every write.
type MovieService interface {
	Create(ctx context.Context, req *CreateMovieReq) (*MovieResp, error)
	Update(ctx context.Context, req *UpdateMovieReq) (*MovieResp, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*MovieResp, error)
	List(ctx context.Context, params SearchParams) ([]MovieResp, error)
}
