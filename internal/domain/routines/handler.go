package routines

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	// Creación anidada bajo la mascota; el resto opera por id de rutina.
	r.Post("/pets/{petID}/routines", createRoutineHandler(svc, petsSvc))

	r.Route("/routines", func(rr chi.Router) {
		rr.Get("/", listRoutinesHandler(svc))
		rr.Patch("/{routineID}", updateRoutineHandler(svc, petsSvc))
		rr.Post("/{routineID}/archive", archiveRoutineHandler(svc))
	})
}

type createRoutineRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Frequency      string   `json:"frequency"` // etiqueta libre: daily, weekly...
	TimeOfDayLocal string   `json:"time_of_day_local"`
	DaysOfWeek     []string `json:"days_of_week"`
}

type updateRoutineRequest struct {
	PetID          *string   `json:"pet_id"`
	Name           *string   `json:"name"`
	Description    *string   `json:"description"`
	Frequency      *string   `json:"frequency"`
	TimeOfDayLocal *string   `json:"time_of_day_local"`
	DaysOfWeek     *[]string `json:"days_of_week"`
	IsActive       *bool     `json:"is_active"`
}

type routineResponse struct {
	ID             string    `json:"id"`
	PetID          string    `json:"pet_id"`
	OwnerUserID    string    `json:"owner_user_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Frequency      string    `json:"frequency"`
	TimeOfDayLocal string    `json:"time_of_day_local"`
	DaysOfWeek     []string  `json:"days_of_week"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// createRoutineHandler godoc
// @Summary Crear rutina de cuidado
// @Description Crea una rutina recurrente para una mascota del usuario. La mascota debe pertenecer al caller; si no existe o es ajena responde NOT_FOUND.
// @Tags routines
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createRoutineRequest true "Datos de la rutina"
// @Success 201 {object} routineResponse
// @Failure 400 {string} string "validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/routines [post]
func createRoutineHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		var req createRoutineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteValidation(w, "invalid json", nil)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			httpx.WriteValidation(w, "missing required field", map[string]string{"name": "required"})
			return
		}

		rt, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			PetID:          petID,
			Name:           req.Name,
			Description:    req.Description,
			Frequency:      req.Frequency,
			TimeOfDayLocal: req.TimeOfDayLocal,
			DaysOfWeek:     req.DaysOfWeek,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		httpx.WriteData(w, http.StatusCreated, toRoutineResponse(rt))
	}
}

func listRoutinesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, httpx.KindUnauthorized, "missing caller identity")
			return
		}

		f := ListFilter{PetID: strings.TrimSpace(r.URL.Query().Get("pet_id"))}
		if v := r.URL.Query().Get("include_inactive"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				httpx.WriteValidation(w, "invalid query", map[string]string{"include_inactive": "must be a boolean"})
				return
			}
			f.IncludeInactive = b
		}

		items, err := svc.List(r.Context(), claims.UserID, f)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]routineResponse, 0, len(items))
		for _, rt := range items {
			out = append(out, toRoutineResponse(rt))
		}

		httpx.WriteData(w, http.StatusOK, httpx.ListData{Items: out, Count: len(out)})
	}
}

func updateRoutineHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, httpx.KindUnauthorized, "missing caller identity")
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateRoutineRequest
		if err := dec.Decode(&req); err != nil {
			httpx.WriteValidation(w, "invalid json", nil)
			return
		}

		// Si se reasigna a otra mascota, la nueva también debe ser del caller.
		if req.PetID != nil {
			if _, err := petsSvc.GetOwned(r.Context(), *req.PetID, claims.UserID); err != nil {
				httpx.WriteError(w, httpx.KindNotFound, "pet not found")
				return
			}
		}

		err := svc.Update(r.Context(), chi.URLParam(r, "routineID"), claims.UserID, UpdateInput{
			PetID:          req.PetID,
			Name:           req.Name,
			Description:    req.Description,
			Frequency:      req.Frequency,
			TimeOfDayLocal: req.TimeOfDayLocal,
			DaysOfWeek:     req.DaysOfWeek,
			IsActive:       req.IsActive,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		httpx.WriteOK(w)
	}
}

func archiveRoutineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, httpx.KindUnauthorized, "missing caller identity")
			return
		}

		if err := svc.Archive(r.Context(), chi.URLParam(r, "routineID"), claims.UserID); err != nil {
			writeServiceError(w, err)
			return
		}

		httpx.WriteOK(w)
	}
}

func toRoutineResponse(rt Routine) routineResponse {
	days := rt.DaysOfWeek
	if days == nil {
		days = []string{}
	}
	return routineResponse{
		ID:             rt.ID,
		PetID:          rt.PetID,
		OwnerUserID:    rt.OwnerUserID,
		Name:           rt.Name,
		Description:    rt.Description,
		Frequency:      rt.Frequency,
		TimeOfDayLocal: rt.TimeOfDayLocal,
		DaysOfWeek:     days,
		IsActive:       rt.IsActive,
		CreatedAt:      rt.CreatedAt,
		UpdatedAt:      rt.UpdatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, httpx.KindNotFound, "routine not found")
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteValidation(w, "invalid input", nil)
	default:
		httpx.WriteError(w, httpx.KindInternal, "internal error")
	}
}
