package carelogs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/routines"
	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service, routinesSvc *routines.Service) {
	r.Route("/pets/{petID}/care-logs", func(lr chi.Router) {
		lr.Post("/", createCareLogHandler(svc, petsSvc, routinesSvc))
		lr.Get("/", listCareLogsHandler(svc, petsSvc))
	})

	r.Delete("/care-logs/{logID}", deleteCareLogHandler(svc))
}

type createCareLogRequest struct {
	RoutineID   string `json:"routine_id"`
	LogDateTime string `json:"log_date_time"` // RFC3339 o YYYY-MM-DD, opcional
	Status      string `json:"status" enums:"done,skipped"`
	Notes       string `json:"notes"`
}

type careLogResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	RoutineID   string    `json:"routine_id,omitempty"`
	OwnerUserID string    `json:"owner_user_id"`
	LogDateTime time.Time `json:"log_date_time"`
	Status      Status    `json:"status,omitempty"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// createCareLogHandler godoc
// @Summary Registrar cuidado realizado
// @Description Crea un log de cuidado para la mascota. Si viene routine_id, la rutina debe ser del caller y pertenecer a la misma mascota; un mismatch responde FORBIDDEN.
// @Tags care-logs
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createCareLogRequest true "Datos del log"
// @Success 201 {object} careLogResponse
// @Failure 400 {string} string "validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "routine does not belong to pet"
// @Failure 404 {string} string "pet/routine not found"
// @Router /pets/{petID}/care-logs [post]
func createCareLogHandler(svc *Service, petsSvc *pets.Service, routinesSvc *routines.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, httpx.KindUnauthorized, "missing caller identity")
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.GetOwned(r.Context(), petID, claims.UserID); err != nil {
			httpx.WriteError(w, httpx.KindNotFound, "pet not found")
			return
		}

		var req createCareLogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteValidation(w, "invalid json", nil)
			return
		}

		// Coherencia rutina/mascota: la rutina referenciada tiene que ser del
		// caller y de esta misma mascota.
		if rid := strings.TrimSpace(req.RoutineID); rid != "" {
			rt, err := routinesSvc.GetOwned(r.Context(), rid, claims.UserID)
			if err != nil {
				httpx.WriteError(w, httpx.KindNotFound, "routine not found")
				return
			}
			if rt.PetID != petID {
				httpx.WriteError(w, httpx.KindForbidden, "routine does not belong to pet")
				return
			}
		}

		var logAt *time.Time
		if strings.TrimSpace(req.LogDateTime) != "" {
			t, err := httpx.ParseTime(req.LogDateTime)
			if err != nil {
				httpx.WriteValidation(w, "invalid date", map[string]string{"log_date_time": "must be RFC3339 or YYYY-MM-DD"})
				return
			}
			logAt = &t
		}

		l, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			PetID:       petID,
			RoutineID:   req.RoutineID,
			LogDateTime: logAt,
			Status:      Status(req.Status),
			Notes:       req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.WriteValidation(w, "invalid input", map[string]string{"status": "must be done or skipped"})
				return
			}
			writeServiceError(w, err)
			return
		}

		httpx.WriteData(w, http.StatusCreated, toCareLogResponse(l))
	}
}

func listCareLogsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, httpx.KindUnauthorized, "missing caller identity")
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.GetOwned(r.Context(), petID, claims.UserID); err != nil {
			httpx.WriteError(w, httpx.KindNotFound, "pet not found")
			return
		}

		items, err := svc.ListByPet(r.Context(), petID, claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]careLogResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toCareLogResponse(l))
		}

		httpx.WriteData(w, http.StatusOK, httpx.ListData{Items: out, Count: len(out)})
	}
}

func deleteCareLogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, httpx.KindUnauthorized, "missing caller identity")
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "logID"), claims.UserID); err != nil {
			writeServiceError(w, err)
			return
		}

		httpx.WriteOK(w)
	}
}

func toCareLogResponse(l CareLog) careLogResponse {
	return careLogResponse{
		ID:          l.ID,
		PetID:       l.PetID,
		RoutineID:   l.RoutineID,
		OwnerUserID: l.OwnerUserID,
		LogDateTime: l.LogDateTime,
		Status:      l.Status,
		Notes:       l.Notes,
		CreatedAt:   l.CreatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, httpx.KindNotFound, "care log not found")
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteValidation(w, "invalid input", nil)
	default:
		httpx.WriteError(w, httpx.KindInternal, "internal error")
	}
}
