package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	Name      string   `json:"name"`
	Species   string   `json:"species"`
	Breed     string   `json:"breed"`
	Gender    string   `json:"gender"`
	BirthDate string   `json:"birth_date"` // RFC3339 o YYYY-MM-DD, opcional
	Color     string   `json:"color"`
	WeightKg  *float64 `json:"weight_kg"`
	Notes     string   `json:"notes"`
}

// updatePetRequest usa punteros para PATCH real: nil = no tocar.
type updatePetRequest struct {
	Name      *string  `json:"name"`
	Species   *string  `json:"species"`
	Breed     *string  `json:"breed"`
	Gender    *string  `json:"gender"`
	BirthDate *string  `json:"birth_date"`
	Color     *string  `json:"color"`
	WeightKg  *float64 `json:"weight_kg"`
	Notes     *string  `json:"notes"`
}

type petResponse struct {
	ID          string     `json:"id"`
	OwnerUserID string     `json:"owner_user_id"`
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed"`
	Gender      string     `json:"gender"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Color       string     `json:"color"`
	WeightKg    *float64   `json:"weight_kg,omitempty"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Crea una mascota para el usuario autenticado. name es obligatorio; el resto de campos son opcionales. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "validación"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, httpx.KindUnauthorized, "missing caller identity")
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteValidation(w, "invalid json", nil)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			httpx.WriteValidation(w, "missing required field", map[string]string{"name": "required"})
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := httpx.ParseTime(req.BirthDate)
			if err != nil {
				httpx.WriteValidation(w, "invalid date", map[string]string{"birth_date": "must be RFC3339 or YYYY-MM-DD"})
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Gender:    req.Gender,
			BirthDate: bd,
			Color:     req.Color,
			WeightKg:  req.WeightKg,
			Notes:     req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		httpx.WriteData(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, httpx.KindUnauthorized, "missing caller identity")
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		httpx.WriteData(w, http.StatusOK, httpx.ListData{Items: out, Count: len(out)})
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, httpx.KindUnauthorized, "missing caller identity")
			return
		}

		p, err := svc.GetOwned(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		httpx.WriteData(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, httpx.KindUnauthorized, "missing caller identity")
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			httpx.WriteValidation(w, "invalid json", nil)
			return
		}

		var bd *time.Time
		if req.BirthDate != nil {
			t, err := httpx.ParseTime(*req.BirthDate)
			if err != nil {
				httpx.WriteValidation(w, "invalid date", map[string]string{"birth_date": "must be RFC3339 or YYYY-MM-DD"})
				return
			}
			bd = &t
		}

		err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "petID"), claims.UserID, UpdateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Gender:    req.Gender,
			BirthDate: bd,
			Color:     req.Color,
			WeightKg:  req.WeightKg,
			Notes:     req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		// No se devuelve el registro actualizado, solo el flag.
		httpx.WriteOK(w)
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, httpx.KindUnauthorized, "missing caller identity")
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), claims.UserID); err != nil {
			writeServiceError(w, err)
			return
		}

		httpx.WriteOK(w)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		Gender:      p.Gender,
		BirthDate:   p.BirthDate,
		Color:       p.Color,
		WeightKg:    p.WeightKg,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, httpx.KindNotFound, "pet not found")
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteValidation(w, "invalid input", nil)
	default:
		httpx.WriteError(w, httpx.KindInternal, "internal error")
	}
}
