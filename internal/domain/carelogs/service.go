package carelogs

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

type CreateInput struct {
	PetID       string
	RoutineID   string
	LogDateTime *time.Time // nil = usar el momento de creación
	Status      Status
	Notes       string
}

// Create asume que el caller ya validó ownership de la mascota (y de la
// rutina, si viene) más la coherencia rutina/mascota.
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (CareLog, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(in.PetID) == "" {
		return CareLog{}, ErrInvalidInput
	}
	switch in.Status {
	case "", StatusDone, StatusSkipped:
	default:
		return CareLog{}, ErrInvalidInput
	}

	now := s.now()

	logAt := now
	if in.LogDateTime != nil {
		logAt = *in.LogDateTime
	}

	l := CareLog{
		ID:          uuid.NewString(),
		PetID:       strings.TrimSpace(in.PetID),
		RoutineID:   strings.TrimSpace(in.RoutineID),
		OwnerUserID: ownerUserID,
		LogDateTime: logAt,
		Status:      in.Status,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return CareLog{}, err
	}
	return l, nil
}

// Delete hace el owner check inline: existe + es del caller, o ErrNotFound.
func (s *Service) Delete(ctx context.Context, id, ownerUserID string) error {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(ownerUserID) == "" {
		return ErrNotFound
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if l.OwnerUserID != ownerUserID {
		return ErrNotFound
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID, ownerUserID string) ([]CareLog, error) {
	if strings.TrimSpace(petID) == "" || strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID, ownerUserID)
}
