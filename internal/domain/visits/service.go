package visits

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
	PetID        string
	VisitDate    *time.Time // nil = usar el momento de creación
	ClinicName   string
	Reason       string
	Diagnosis    string
	Treatment    string
	Medications  string
	FollowUpDate *time.Time
}

// Create asume que el caller ya validó ownership de la mascota destino.
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (VetVisit, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(in.PetID) == "" {
		return VetVisit{}, ErrInvalidInput
	}

	now := s.now()

	visitAt := now
	if in.VisitDate != nil {
		visitAt = *in.VisitDate
	}

	v := VetVisit{
		ID:           uuid.NewString(),
		PetID:        strings.TrimSpace(in.PetID),
		OwnerUserID:  ownerUserID,
		VisitDate:    visitAt,
		ClinicName:   strings.TrimSpace(in.ClinicName),
		Reason:       strings.TrimSpace(in.Reason),
		Diagnosis:    strings.TrimSpace(in.Diagnosis),
		Treatment:    strings.TrimSpace(in.Treatment),
		Medications:  strings.TrimSpace(in.Medications),
		FollowUpDate: in.FollowUpDate,
		CreatedAt:    now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return VetVisit{}, err
	}
	return v, nil
}

type UpdateInput struct {
	PetID        *string
	VisitDate    *time.Time
	ClinicName   *string
	Reason       *string
	Diagnosis    *string
	Treatment    *string
	Medications  *string
	FollowUpDate *time.Time
}

// Update hace el owner check inline y aplica solo campos presentes.
// No hay updated_at que bumpear; createdAt queda intacto.
func (s *Service) Update(ctx context.Context, id, ownerUserID string, in UpdateInput) error {
	v, err := s.getOwned(ctx, id, ownerUserID)
	if err != nil {
		return err
	}

	if in.PetID != nil {
		petID := strings.TrimSpace(*in.PetID)
		if petID == "" {
			return ErrInvalidInput
		}
		v.PetID = petID
	}
	if in.VisitDate != nil {
		v.VisitDate = *in.VisitDate
	}
	if in.ClinicName != nil {
		v.ClinicName = strings.TrimSpace(*in.ClinicName)
	}
	if in.Reason != nil {
		v.Reason = strings.TrimSpace(*in.Reason)
	}
	if in.Diagnosis != nil {
		v.Diagnosis = strings.TrimSpace(*in.Diagnosis)
	}
	if in.Treatment != nil {
		v.Treatment = strings.TrimSpace(*in.Treatment)
	}
	if in.Medications != nil {
		v.Medications = strings.TrimSpace(*in.Medications)
	}
	if in.FollowUpDate != nil {
		v.FollowUpDate = in.FollowUpDate
	}

	return s.repo.Update(ctx, v)
}

func (s *Service) Delete(ctx context.Context, id, ownerUserID string) error {
	if _, err := s.getOwned(ctx, id, ownerUserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID, ownerUserID string) ([]VetVisit, error) {
	if strings.TrimSpace(petID) == "" || strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID, ownerUserID)
}

func (s *Service) getOwned(ctx context.Context, id, ownerUserID string) (VetVisit, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(ownerUserID) == "" {
		return VetVisit{}, ErrNotFound
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return VetVisit{}, ErrNotFound
	}
	if v.OwnerUserID != ownerUserID {
		return VetVisit{}, ErrNotFound
	}
	return v, nil
}
