package visits

import "context"

type Repository interface {
	Create(ctx context.Context, v VetVisit) error
	GetByID(ctx context.Context, id string) (VetVisit, error)
	Update(ctx context.Context, v VetVisit) error
	Delete(ctx context.Context, id string) error
	ListByPet(ctx context.Context, petID, ownerUserID string) ([]VetVisit, error)
}
