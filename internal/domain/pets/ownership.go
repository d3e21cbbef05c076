package pets

import (
	"context"
	"strings"
)

// GetOwned es el owner guard: busca la mascota filtrando por id + dueño.
// Devuelve ErrNotFound tanto si no existe como si pertenece a otro usuario,
// para no filtrar la existencia de datos ajenos.
func (s *Service) GetOwned(ctx context.Context, id, ownerUserID string) (Pet, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrNotFound
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	if p.OwnerUserID != ownerUserID {
		return Pet{}, ErrNotFound
	}
	return p, nil
}
