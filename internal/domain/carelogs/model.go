package carelogs

import "time"

// Status marca el resultado del cuidado registrado.
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
)

// CareLog registra un cuidado puntual de una mascota, opcionalmente ligado a
// una rutina. Es inmutable: solo se crea y se borra, nunca se edita.
type CareLog struct {
	ID          string
	PetID       string
	RoutineID   string // vacío = log suelto, sin rutina
	OwnerUserID string

	LogDateTime time.Time
	Status      Status // done, skipped o vacío
	Notes       string

	CreatedAt time.Time
}
