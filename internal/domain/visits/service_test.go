package visits

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]VetVisit
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]VetVisit{}}
}

func (r *testRepo) Create(ctx context.Context, v VetVisit) error {
	if _, ok := r.byID[v.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (VetVisit, error) {
	v, ok := r.byID[id]
	if !ok {
		return VetVisit{}, errRepoNotFound
	}
	return v, nil
}

func (r *testRepo) Update(ctx context.Context, v VetVisit) error {
	if _, ok := r.byID[v.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID, ownerUserID string) ([]VetVisit, error) {
	out := make([]VetVisit, 0)
	for _, v := range r.byID {
		if v.PetID == petID && v.OwnerUserID == ownerUserID {
			out = append(out, v)
		}
	}
	return out, nil
}

func TestCreate_DefaultsVisitDate(t *testing.T) {
	svc := NewService(newTestRepo())

	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	v, err := svc.Create(context.Background(), "owner-1", CreateInput{PetID: "pet-1"})
	require.NoError(t, err)
	require.Equal(t, t0, v.VisitDate)
	require.Equal(t, t0, v.CreatedAt)
}

func TestUpdate_PartialLeavesCreatedAtUntouched(t *testing.T) {
	svc := NewService(newTestRepo())

	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	v, err := svc.Create(context.Background(), "owner-1", CreateInput{
		PetID:      "pet-1",
		ClinicName: "VetPlus",
		Reason:     "checkup",
	})
	require.NoError(t, err)

	svc.now = func() time.Time { return t0.Add(time.Hour) }

	diagnosis := "all good"
	err = svc.Update(context.Background(), v.ID, "owner-1", UpdateInput{Diagnosis: &diagnosis})
	require.NoError(t, err)

	got, err := svc.repo.GetByID(context.Background(), v.ID)
	require.NoError(t, err)
	require.Equal(t, "all good", got.Diagnosis)
	require.Equal(t, "VetPlus", got.ClinicName, "absent fields stay untouched")
	require.Equal(t, "checkup", got.Reason)
	require.Equal(t, t0, got.CreatedAt)
}

func TestUpdate_ReassignsPet(t *testing.T) {
	svc := NewService(newTestRepo())

	v, err := svc.Create(context.Background(), "owner-1", CreateInput{PetID: "pet-1"})
	require.NoError(t, err)

	newPet := "pet-2"
	err = svc.Update(context.Background(), v.ID, "owner-1", UpdateInput{PetID: &newPet})
	require.NoError(t, err)

	got, err := svc.ListByPet(context.Background(), "pet-2", "owner-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, v.ID, got[0].ID)
}

func TestUpdateDelete_ForeignVisitIsNotFound(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	v, err := svc.Create(context.Background(), "owner-1", CreateInput{PetID: "pet-1"})
	require.NoError(t, err)

	reason := "hacked"
	require.ErrorIs(t, svc.Update(context.Background(), v.ID, "owner-2", UpdateInput{Reason: &reason}), ErrNotFound)
	require.ErrorIs(t, svc.Delete(context.Background(), v.ID, "owner-2"), ErrNotFound)
	require.Contains(t, repo.byID, v.ID)
}
