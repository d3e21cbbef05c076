package routines

import "context"

type Repository interface {
	Create(ctx context.Context, rt Routine) error
	GetByID(ctx context.Context, id string) (Routine, error)
	Update(ctx context.Context, rt Routine) error
	ListByOwner(ctx context.Context, ownerUserID string, f ListFilter) ([]Routine, error)
}

type ListFilter struct {
	PetID           string // vacío = todas las mascotas del usuario
	IncludeInactive bool
}
