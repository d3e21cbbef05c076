package routines

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Routine
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Routine{}}
}

func (r *testRepo) Create(ctx context.Context, rt Routine) error {
	if _, ok := r.byID[rt.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[rt.ID] = rt
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Routine, error) {
	rt, ok := r.byID[id]
	if !ok {
		return Routine{}, errRepoNotFound
	}
	return rt, nil
}

func (r *testRepo) Update(ctx context.Context, rt Routine) error {
	if _, ok := r.byID[rt.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[rt.ID] = rt
	return nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string, f ListFilter) ([]Routine, error) {
	out := make([]Routine, 0)
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
	return out, nil
}

func TestCreate_DefaultsActiveAndNormalizesDays(t *testing.T) {
	svc := NewService(newTestRepo())

	rt, err := svc.Create(context.Background(), "owner-1", CreateInput{
		PetID:      "pet-1",
		Name:       "Morning feeding",
		Frequency:  "daily",
		DaysOfWeek: []string{" Mon", "WED ", ""},
	})
	require.NoError(t, err)
	require.True(t, rt.IsActive)
	require.Equal(t, []string{"mon", "wed"}, rt.DaysOfWeek)
}

func TestArchive_IsIdempotent(t *testing.T) {
	svc := NewService(newTestRepo())

	rt, err := svc.Create(context.Background(), "owner-1", CreateInput{PetID: "pet-1", Name: "Walk"})
	require.NoError(t, err)

	require.NoError(t, svc.Archive(context.Background(), rt.ID, "owner-1"))
	require.NoError(t, svc.Archive(context.Background(), rt.ID, "owner-1"))

	got, err := svc.GetOwned(context.Background(), rt.ID, "owner-1")
	require.NoError(t, err)
	require.False(t, got.IsActive)
}

func TestArchive_ForeignRoutineIsNotFound(t *testing.T) {
	svc := NewService(newTestRepo())

	rt, err := svc.Create(context.Background(), "owner-1", CreateInput{PetID: "pet-1", Name: "Walk"})
	require.NoError(t, err)

	err = svc.Archive(context.Background(), rt.ID, "owner-2")
	require.ErrorIs(t, err, ErrNotFound)

	got, err := svc.GetOwned(context.Background(), rt.ID, "owner-1")
	require.NoError(t, err)
	require.True(t, got.IsActive, "foreign archive must not mutate")
}

func TestList_ExcludesArchivedByDefault(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	active, err := svc.Create(ctx, "owner-1", CreateInput{PetID: "pet-1", Name: "Feeding"})
	require.NoError(t, err)
	archived, err := svc.Create(ctx, "owner-1", CreateInput{PetID: "pet-1", Name: "Walk"})
	require.NoError(t, err)
	require.NoError(t, svc.Archive(ctx, archived.ID, "owner-1"))

	got, err := svc.List(ctx, "owner-1", ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, active.ID, got[0].ID)

	got, err = svc.List(ctx, "owner-1", ListFilter{IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestUpdate_ReplacesDaysOfWeekAndBumpsUpdatedAt(t *testing.T) {
	svc := NewService(newTestRepo())

	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	rt, err := svc.Create(context.Background(), "owner-1", CreateInput{
		PetID:      "pet-1",
		Name:       "Feeding",
		DaysOfWeek: []string{"mon", "tue", "wed"},
	})
	require.NoError(t, err)

	t1 := t0.Add(time.Hour)
	svc.now = func() time.Time { return t1 }

	days := []string{"sat"}
	err = svc.Update(context.Background(), rt.ID, "owner-1", UpdateInput{DaysOfWeek: &days})
	require.NoError(t, err)

	got, err := svc.GetOwned(context.Background(), rt.ID, "owner-1")
	require.NoError(t, err)
	require.Equal(t, []string{"sat"}, got.DaysOfWeek, "days set is replaced, not merged")
	require.Equal(t, "Feeding", got.Name)
	require.Equal(t, t1, got.UpdatedAt)
}
