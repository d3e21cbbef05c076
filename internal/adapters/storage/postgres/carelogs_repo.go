package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-care-tracker/internal/domain/carelogs"
)

type CareLogsRepo struct {
	db *sql.DB
}

func NewCareLogsRepo(db *sql.DB) *CareLogsRepo {
	return &CareLogsRepo{db: db}
}

func (r *CareLogsRepo) Create(ctx context.Context, l carelogs.CareLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO care_logs (
			id, pet_id, routine_id, owner_user_id,
			log_date_time, status, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		l.ID,
		l.PetID,
		toNullString(l.RoutineID),
		l.OwnerUserID,
		l.LogDateTime,
		toNullString(string(l.Status)),
		l.Notes,
		l.CreatedAt,
	)
	return err
}

func (r *CareLogsRepo) GetByID(ctx context.Context, id string) (carelogs.CareLog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return carelogs.CareLog{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id, routine_id, owner_user_id,
			log_date_time, status, notes, created_at
		FROM care_logs
		WHERE id = $1
	`, id)

	return scanCareLog(row)
}

func (r *CareLogsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM care_logs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CareLogsRepo) ListByPet(ctx context.Context, petID, ownerUserID string) ([]carelogs.CareLog, error) {
	petID = strings.TrimSpace(petID)
	ownerUserID = strings.TrimSpace(ownerUserID)
	if petID == "" || ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, routine_id, owner_user_id,
			log_date_time, status, notes, created_at
		FROM care_logs
		WHERE pet_id = $1 AND owner_user_id = $2
		ORDER BY log_date_time DESC
	`, petID, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]carelogs.CareLog, 0)
	for rows.Next() {
		l, err := scanCareLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	return out, rows.Err()
}

func scanCareLog(row rowScanner) (carelogs.CareLog, error) {
	var l carelogs.CareLog
	var routineID sql.NullString
	var status sql.NullString

	if err := row.Scan(
		&l.ID,
		&l.PetID,
		&routineID,
		&l.OwnerUserID,
		&l.LogDateTime,
		&status,
		&l.Notes,
		&l.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return carelogs.CareLog{}, ErrNotFound
		}
		return carelogs.CareLog{}, err
	}

	l.RoutineID = routineID.String
	l.Status = carelogs.Status(status.String)

	return l, nil
}
