package visits

import "time"

// VetVisit es el registro de una consulta veterinaria de una mascota.
// A diferencia de Pet y Routine no lleva updated_at: solo createdAt, que
// nunca se modifica.
type VetVisit struct {
	ID          string
	PetID       string
	OwnerUserID string

	VisitDate    time.Time
	ClinicName   string
	Reason       string
	Diagnosis    string
	Treatment    string
	Medications  string
	FollowUpDate *time.Time

	CreatedAt time.Time
}
