package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// Kind clasifica errores de cara al caller. Son terminales: esta capa nunca reintenta.
type Kind string

const (
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindNotFound     Kind = "NOT_FOUND"
	KindForbidden    Kind = "FORBIDDEN"
	KindValidation   Kind = "VALIDATION"
	KindInternal     Kind = "INTERNAL"
)

// Todas las respuestas comparten este envelope:
//   ok:    {"success":true,"data":{...}}
//   error: {"success":false,"error":{"kind":"NOT_FOUND","message":"..."}}
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Kind    Kind              `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ListData envuelve listados con su count, como espera el contrato.
type ListData struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

func WriteData(w http.ResponseWriter, status int, data any) {
	write(w, status, envelope{Success: true, Data: data})
}

// WriteOK responde success sin data (updates/deletes no devuelven el registro).
func WriteOK(w http.ResponseWriter) {
	write(w, http.StatusOK, envelope{Success: true})
}

func WriteError(w http.ResponseWriter, kind Kind, message string) {
	write(w, statusFor(kind), envelope{
		Success: false,
		Error:   &errorBody{Kind: kind, Message: message},
	})
}

// WriteValidation agrega detalle por campo para errores de forma/tipo.
func WriteValidation(w http.ResponseWriter, message string, fields map[string]string) {
	write(w, http.StatusBadRequest, envelope{
		Success: false,
		Error:   &errorBody{Kind: KindValidation, Message: message, Fields: fields},
	})
}

func statusFor(kind Kind) int {
	switch kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func write(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// ParseTime normaliza fechas de entrada: RFC3339 o YYYY-MM-DD.
// Ambas formas terminan en el mismo time.Time interno.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
