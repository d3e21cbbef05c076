package carelogs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]CareLog
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]CareLog{}}
}

func (r *testRepo) Create(ctx context.Context, l CareLog) error {
	if _, ok := r.byID[l.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[l.ID] = l
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (CareLog, error) {
	l, ok := r.byID[id]
	if !ok {
		return CareLog{}, errRepoNotFound
	}
	return l, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID, ownerUserID string) ([]CareLog, error) {
	out := make([]CareLog, 0)
	for _, l := range r.byID {
		if l.PetID == petID && l.OwnerUserID == ownerUserID {
			out = append(out, l)
		}
	}
	return out, nil
}

func TestCreate_DefaultsLogDateTime(t *testing.T) {
	svc := NewService(newTestRepo())

	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	l, err := svc.Create(context.Background(), "owner-1", CreateInput{PetID: "pet-1", Status: StatusDone})
	require.NoError(t, err)
	require.Equal(t, t0, l.LogDateTime)
	require.Equal(t, t0, l.CreatedAt)

	// Y respeta el valor explícito cuando viene
	explicit := t0.Add(-24 * time.Hour)
	l, err = svc.Create(context.Background(), "owner-1", CreateInput{PetID: "pet-1", LogDateTime: &explicit})
	require.NoError(t, err)
	require.Equal(t, explicit, l.LogDateTime)
}

func TestCreate_RejectsUnknownStatus(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), "owner-1", CreateInput{PetID: "pet-1", Status: "maybe"})
	require.ErrorIs(t, err, ErrInvalidInput)

	for _, st := range []Status{"", StatusDone, StatusSkipped} {
		_, err := svc.Create(context.Background(), "owner-1", CreateInput{PetID: "pet-1", Status: st})
		require.NoError(t, err, "status %q should be accepted", st)
	}
}

func TestDelete_InlineOwnerGuard(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	l, err := svc.Create(context.Background(), "owner-1", CreateInput{PetID: "pet-1"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(context.Background(), "no-such-id", "owner-1"), ErrNotFound)
	require.ErrorIs(t, svc.Delete(context.Background(), l.ID, "owner-2"), ErrNotFound)
	require.Contains(t, repo.byID, l.ID)

	require.NoError(t, svc.Delete(context.Background(), l.ID, "owner-1"))
	require.NotContains(t, repo.byID, l.ID)
}
