package pets

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
	Name      string
	Species   string
	Breed     string
	Gender    string
	BirthDate *time.Time
	Color     string
	WeightKg  *float64
	Notes     string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Species:     strings.TrimSpace(in.Species),
		Breed:       strings.TrimSpace(in.Breed),
		Gender:      strings.TrimSpace(in.Gender),
		BirthDate:   in.BirthDate,
		Color:       strings.TrimSpace(in.Color),
		WeightKg:    in.WeightKg,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// UpdateInput usa punteros para PATCH real: nil = no tocar el campo.
type UpdateInput struct {
	Name      *string
	Species   *string
	Breed     *string
	Gender    *string
	BirthDate *time.Time
	Color     *string
	WeightKg  *float64
	Notes     *string
}

// UpdateProfile aplica solo los campos presentes y siempre bumpea UpdatedAt.
func (s *Service) UpdateProfile(ctx context.Context, id, ownerUserID string, in UpdateInput) error {
	p, err := s.GetOwned(ctx, id, ownerUserID)
	if err != nil {
		return err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return ErrInvalidInput
		}
		p.Name = name
	}
	if in.Species != nil {
		p.Species = strings.TrimSpace(*in.Species)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Gender != nil {
		p.Gender = strings.TrimSpace(*in.Gender)
	}
	if in.BirthDate != nil {
		p.BirthDate = in.BirthDate
	}
	if in.Color != nil {
		p.Color = strings.TrimSpace(*in.Color)
	}
	if in.WeightKg != nil {
		p.WeightKg = in.WeightKg
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	p.UpdatedAt = s.now()

	return s.repo.Update(ctx, p)
}

// Delete borra la fila sin cascada: rutinas, logs y visitas de la mascota
// quedan como historial (decisión heredada del contrato original).
func (s *Service) Delete(ctx context.Context, id, ownerUserID string) error {
	if _, err := s.GetOwned(ctx, id, ownerUserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}
