package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-care-tracker/internal/domain/visits"
)

type VisitsRepo struct {
	db *sql.DB
}

func NewVisitsRepo(db *sql.DB) *VisitsRepo {
	return &VisitsRepo{db: db}
}

func (r *VisitsRepo) Create(ctx context.Context, v visits.VetVisit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vet_visits (
			id, pet_id, owner_user_id,
			visit_date, clinic_name, reason, diagnosis, treatment, medications,
			follow_up_date, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		v.ID,
		v.PetID,
		v.OwnerUserID,
		v.VisitDate,
		v.ClinicName,
		v.Reason,
		v.Diagnosis,
		v.Treatment,
		v.Medications,
		toNullTime(v.FollowUpDate),
		v.CreatedAt,
	)
	return err
}

func (r *VisitsRepo) GetByID(ctx context.Context, id string) (visits.VetVisit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return visits.VetVisit{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id, owner_user_id,
			visit_date, clinic_name, reason, diagnosis, treatment, medications,
			follow_up_date, created_at
		FROM vet_visits
		WHERE id = $1
	`, id)

	return scanVisit(row)
}

func (r *VisitsRepo) Update(ctx context.Context, v visits.VetVisit) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vet_visits
		SET
			pet_id = $2,
			visit_date = $3,
			clinic_name = $4,
			reason = $5,
			diagnosis = $6,
			treatment = $7,
			medications = $8,
			follow_up_date = $9
		WHERE id = $1
	`,
		v.ID,
		v.PetID,
		v.VisitDate,
		v.ClinicName,
		v.Reason,
		v.Diagnosis,
		v.Treatment,
		v.Medications,
		toNullTime(v.FollowUpDate),
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

func (r *VisitsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vet_visits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VisitsRepo) ListByPet(ctx context.Context, petID, ownerUserID string) ([]visits.VetVisit, error) {
	petID = strings.TrimSpace(petID)
	ownerUserID = strings.TrimSpace(ownerUserID)
	if petID == "" || ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, owner_user_id,
			visit_date, clinic_name, reason, diagnosis, treatment, medications,
			follow_up_date, created_at
		FROM vet_visits
		WHERE pet_id = $1 AND owner_user_id = $2
		ORDER BY visit_date DESC
	`, petID, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]visits.VetVisit, 0)
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, rows.Err()
}

func scanVisit(row rowScanner) (visits.VetVisit, error) {
	var v visits.VetVisit
	var followUp sql.NullTime

	if err := row.Scan(
		&v.ID,
		&v.PetID,
		&v.OwnerUserID,
		&v.VisitDate,
		&v.ClinicName,
		&v.Reason,
		&v.Diagnosis,
		&v.Treatment,
		&v.Medications,
		&followUp,
		&v.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return visits.VetVisit{}, ErrNotFound
		}
		return visits.VetVisit{}, err
	}

	if followUp.Valid {
		t := followUp.Time
		v.FollowUpDate = &t
	}

	return v, nil
}
