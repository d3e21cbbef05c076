package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-care-tracker/internal/domain/routines"
)

type routineRepo struct {
	mu   sync.RWMutex
	byID map[string]routines.Routine
}

func NewRoutineRepo() routines.Repository {
	return &routineRepo{
		byID: make(map[string]routines.Routine),
	}
}

func (r *routineRepo) Create(ctx context.Context, rt routines.Routine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rt.ID) == "" {
		return errors.New("routine id required")
	}
	if _, exists := r.byID[rt.ID]; exists {
		return errors.New("routine already exists")
	}
	r.byID[rt.ID] = rt
	return nil
}

func (r *routineRepo) GetByID(ctx context.Context, id string) (routines.Routine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.byID[id]
	if !ok {
		return routines.Routine{}, ErrNotFound
	}
	return rt, nil
}

func (r *routineRepo) Update(ctx context.Context, rt routines.Routine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rt.ID]; !exists {
		return ErrNotFound
	}
	r.byID[rt.ID] = rt
	return nil
}

func (r *routineRepo) ListByOwner(ctx context.Context, ownerUserID string, f routines.ListFilter) ([]routines.Routine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]routines.Routine, 0)
	for _, rt := range r.byID {
		if rt.OwnerUserID != ownerUserID {
			continue
		}
		if f.PetID != "" && rt.PetID != f.PetID {
			continue
		}
		if !f.IncludeInactive && !rt.IsActive {
			continue
		}
		out = append(out, rt)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
