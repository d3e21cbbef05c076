package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-care-tracker/internal/domain/visits"
)

type visitRepo struct {
	mu   sync.RWMutex
	byID map[string]visits.VetVisit
}

func NewVisitRepo() visits.Repository {
	return &visitRepo{
		byID: make(map[string]visits.VetVisit),
	}
}

func (r *visitRepo) Create(ctx context.Context, v visits.VetVisit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("visit id required")
	}
	if _, exists := r.byID[v.ID]; exists {
		return errors.New("visit already exists")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *visitRepo) GetByID(ctx context.Context, id string) (visits.VetVisit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return visits.VetVisit{}, ErrNotFound
	}
	return v, nil
}

func (r *visitRepo) Update(ctx context.Context, v visits.VetVisit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[v.ID]; !exists {
		return ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *visitRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *visitRepo) ListByPet(ctx context.Context, petID, ownerUserID string) ([]visits.VetVisit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]visits.VetVisit, 0)
	for _, v := range r.byID {
		if v.PetID == petID && v.OwnerUserID == ownerUserID {
			out = append(out, v)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].VisitDate.After(out[j].VisitDate)
	})

	return out, nil
}
