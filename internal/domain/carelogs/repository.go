package carelogs

import "context"

type Repository interface {
	Create(ctx context.Context, l CareLog) error
	GetByID(ctx context.Context, id string) (CareLog, error)
	Delete(ctx context.Context, id string) error
	ListByPet(ctx context.Context, petID, ownerUserID string) ([]CareLog, error)
}
