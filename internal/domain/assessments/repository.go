package assessments

import "context"

type Repository interface {
	Create(ctx context.Context, a Assessment) error
}
