package consultations

import "context"

type Repository interface {
	CreateInitial(ctx context.Context, c Initial) error
	CreateFollowUp(ctx context.Context, f FollowUp) error
}
