package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-care-tracker/internal/domain/routines"
)

type RoutinesRepo struct {
	db *sql.DB
}

func NewRoutinesRepo(db *sql.DB) *RoutinesRepo {
	return &RoutinesRepo{db: db}
}

func (r *RoutinesRepo) Create(ctx context.Context, rt routines.Routine) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO care_routines (
			id, pet_id, owner_user_id,
			name, description, frequency, time_of_day_local, days_of_week,
			is_active, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		rt.ID,
		rt.PetID,
		rt.OwnerUserID,
		rt.Name,
		rt.Description,
		rt.Frequency,
		rt.TimeOfDayLocal,
		daysToText(rt.DaysOfWeek),
		rt.IsActive,
		rt.CreatedAt,
		rt.UpdatedAt,
	)
	return err
}

func (r *RoutinesRepo) GetByID(ctx context.Context, id string) (routines.Routine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return routines.Routine{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id, owner_user_id,
			name, description, frequency, time_of_day_local, days_of_week,
			is_active, created_at, updated_at
		FROM care_routines
		WHERE id = $1
	`, id)

	return scanRoutine(row)
}

func (r *RoutinesRepo) Update(ctx context.Context, rt routines.Routine) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE care_routines
		SET
			pet_id = $2,
			name = $3,
			description = $4,
			frequency = $5,
			time_of_day_local = $6,
			days_of_week = $7,
			is_active = $8,
			updated_at = $9
		WHERE id = $1
	`,
		rt.ID,
		rt.PetID,
		rt.Name,
		rt.Description,
		rt.Frequency,
		rt.TimeOfDayLocal,
		daysToText(rt.DaysOfWeek),
		rt.IsActive,
		rt.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoutinesRepo) ListByOwner(ctx context.Context, ownerUserID string, f routines.ListFilter) ([]routines.Routine, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	query := `
		SELECT
			id, pet_id, owner_user_id,
			name, description, frequency, time_of_day_local, days_of_week,
			is_active, created_at, updated_at
		FROM care_routines
		WHERE owner_user_id = $1
	`
	args := []any{ownerUserID}

	if f.PetID != "" {
		args = append(args, f.PetID)
		query += ` AND pet_id = $2`
	}
	if !f.IncludeInactive {
		query += ` AND is_active`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]routines.Routine, 0)
	for rows.Next() {
		rt, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}

	return out, rows.Err()
}

func scanRoutine(row rowScanner) (routines.Routine, error) {
	var rt routines.Routine
	var days string

	if err := row.Scan(
		&rt.ID,
		&rt.PetID,
		&rt.OwnerUserID,
		&rt.Name,
		&rt.Description,
		&rt.Frequency,
		&rt.TimeOfDayLocal,
		&days,
		&rt.IsActive,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return routines.Routine{}, ErrNotFound
		}
		return routines.Routine{}, err
	}

	rt.DaysOfWeek = textToDays(days)
	return rt, nil
}

// days_of_week se guarda como lista serializada "mon,wed,fri".
func daysToText(days []string) string {
	return strings.Join(days, ",")
}

func textToDays(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
