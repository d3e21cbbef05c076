package routines

import "time"

// Routine es una pauta de cuidado recurrente asociada a una mascota.
// frequency y timeOfDayLocal son etiquetas libres ("daily", "08:00"...);
// el scheduling real queda fuera de este backend.
type Routine struct {
	ID          string
	PetID       string
	OwnerUserID string

	Name           string
	Description    string
	Frequency      string
	TimeOfDayLocal string
	DaysOfWeek     []string

	// false = archivada (soft delete). Las rutinas nunca se borran.
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
