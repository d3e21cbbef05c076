package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-care-tracker/internal/domain/carelogs"
)

type careLogRepo struct {
	mu   sync.RWMutex
	byID map[string]carelogs.CareLog
}

func NewCareLogRepo() carelogs.Repository {
	return &careLogRepo{
		byID: make(map[string]carelogs.CareLog),
	}
}

func (r *careLogRepo) Create(ctx context.Context, l carelogs.CareLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(l.ID) == "" {
		return errors.New("care log id required")
	}
	if _, exists := r.byID[l.ID]; exists {
		return errors.New("care log already exists")
	}
	r.byID[l.ID] = l
	return nil
}

func (r *careLogRepo) GetByID(ctx context.Context, id string) (carelogs.CareLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return carelogs.CareLog{}, ErrNotFound
	}
	return l, nil
}

func (r *careLogRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *careLogRepo) ListByPet(ctx context.Context, petID, ownerUserID string) ([]carelogs.CareLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]carelogs.CareLog, 0)
	for _, l := range r.byID {
		if l.PetID == petID && l.OwnerUserID == ownerUserID {
			out = append(out, l)
		}
	}

	// Más recientes primero, como el timeline del repo SQL
	sort.Slice(out, func(i, j int) bool {
		return out[i].LogDateTime.After(out[j].LogDateTime)
	})

	return out, nil
}
