package routines

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// GetOwned es el owner guard de rutinas: ErrNotFound tanto para inexistente
// como para ajena, sin distinguir ambos casos.
func (s *Service) GetOwned(ctx context.Context, id, ownerUserID string) (Routine, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(ownerUserID) == "" {
		return Routine{}, ErrNotFound
	}

	rt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Routine{}, ErrNotFound
	}
	if rt.OwnerUserID != ownerUserID {
		return Routine{}, ErrNotFound
	}
	return rt, nil
}

type CreateInput struct {
	PetID          string
	Name           string
	Description    string
	Frequency      string
	TimeOfDayLocal string
	DaysOfWeek     []string
}

// Create asume que el caller ya validó ownership de la mascota destino.
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Routine, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(in.PetID) == "" {
		return Routine{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Routine{}, ErrInvalidInput
	}

	now := s.now()
	rt := Routine{
		ID:             uuid.NewString(),
		PetID:          strings.TrimSpace(in.PetID),
		OwnerUserID:    ownerUserID,
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		Frequency:      strings.TrimSpace(in.Frequency),
		TimeOfDayLocal: strings.TrimSpace(in.TimeOfDayLocal),
		DaysOfWeek:     normalizeDays(in.DaysOfWeek),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, rt); err != nil {
		return Routine{}, err
	}
	return rt, nil
}

// UpdateInput usa punteros para PATCH real. DaysOfWeek presente reemplaza el
// set completo, no lo mergea.
type UpdateInput struct {
	PetID          *string
	Name           *string
	Description    *string
	Frequency      *string
	TimeOfDayLocal *string
	DaysOfWeek     *[]string
	IsActive       *bool
}

// Update aplica solo campos presentes y bumpea UpdatedAt. Si PetID cambia,
// el caller debe haber validado ownership de la nueva mascota.
func (s *Service) Update(ctx context.Context, id, ownerUserID string, in UpdateInput) error {
	rt, err := s.GetOwned(ctx, id, ownerUserID)
	if err != nil {
		return err
	}

	if in.PetID != nil {
		petID := strings.TrimSpace(*in.PetID)
		if petID == "" {
			return ErrInvalidInput
		}
		rt.PetID = petID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return ErrInvalidInput
		}
		rt.Name = name
	}
	if in.Description != nil {
		rt.Description = strings.TrimSpace(*in.Description)
	}
	if in.Frequency != nil {
		rt.Frequency = strings.TrimSpace(*in.Frequency)
	}
	if in.TimeOfDayLocal != nil {
		rt.TimeOfDayLocal = strings.TrimSpace(*in.TimeOfDayLocal)
	}
	if in.DaysOfWeek != nil {
		rt.DaysOfWeek = normalizeDays(*in.DaysOfWeek)
	}
	if in.IsActive != nil {
		rt.IsActive = *in.IsActive
	}

	rt.UpdatedAt = s.now()

	return s.repo.Update(ctx, rt)
}

// Archive marca la rutina como inactiva. Es idempotente: archivar una rutina
// ya archivada deja IsActive=false y responde ok. No hay transición inversa
// expuesta como operación propia.
func (s *Service) Archive(ctx context.Context, id, ownerUserID string) error {
	rt, err := s.GetOwned(ctx, id, ownerUserID)
	if err != nil {
		return err
	}

	rt.IsActive = false
	rt.UpdatedAt = s.now()

	return s.repo.Update(ctx, rt)
}

// List filtra por dueño; por defecto excluye archivadas.
func (s *Service) List(ctx context.Context, ownerUserID string, f ListFilter) ([]Routine, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID, f)
}

func normalizeDays(days []string) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		out = append(out, d)
	}
	return out
}
