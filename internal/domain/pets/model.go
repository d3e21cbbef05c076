package pets

import "time"

// Pet representa el perfil de una mascota registrada por un usuario.
// species/breed/gender son etiquetas libres: no se validan contra un enum.
type Pet struct {
	ID          string
	OwnerUserID string

	Name      string
	Species   string
	Breed     string
	Gender    string
	BirthDate *time.Time
	Color     string
	WeightKg  *float64
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
