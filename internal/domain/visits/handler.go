package visits

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/visits", func(vr chi.Router) {
		vr.Post("/", createVisitHandler(svc, petsSvc))
		vr.Get("/", listVisitsHandler(svc, petsSvc))
	})

	r.Route("/visits", func(vr chi.Router) {
		vr.Patch("/{visitID}", updateVisitHandler(svc, petsSvc))
		vr.Delete("/{visitID}", deleteVisitHandler(svc))
	})
}

type createVisitRequest struct {
	VisitDate    string `json:"visit_date"` // RFC3339 o YYYY-MM-DD, opcional
	ClinicName   string `json:"clinic_name"`
	Reason       string `json:"reason"`
	Diagnosis    string `json:"diagnosis"`
	Treatment    string `json:"treatment"`
	Medications  string `json:"medications"`
	FollowUpDate string `json:"follow_up_date"`
}

type updateVisitRequest struct {
	PetID        *string `json:"pet_id"`
	VisitDate    *string `json:"visit_date"`
	ClinicName   *string `json:"clinic_name"`
	Reason       *string `json:"reason"`
	Diagnosis    *string `json:"diagnosis"`
	Treatment    *string `json:"treatment"`
	Medications  *string `json:"medications"`
	FollowUpDate *string `json:"follow_up_date"`
}

type visitResponse struct {
	ID           string     `json:"id"`
	PetID        string     `json:"pet_id"`
	OwnerUserID  string     `json:"owner_user_id"`
	VisitDate    time.Time  `json:"visit_date"`
	ClinicName   string     `json:"clinic_name"`
	Reason       string     `json:"reason"`
	Diagnosis    string     `json:"diagnosis"`
	Treatment    string     `json:"treatment"`
	Medications  string     `json:"medications"`
	FollowUpDate *time.Time `json:"follow_up_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func createVisitHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		var req createVisitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteValidation(w, "invalid json", nil)
			return
		}

		visitAt, fieldErr := optionalDate(req.VisitDate, "visit_date")
		if fieldErr != nil {
			httpx.WriteValidation(w, "invalid date", fieldErr)
			return
		}
		followUp, fieldErr := optionalDate(req.FollowUpDate, "follow_up_date")
		if fieldErr != nil {
			httpx.WriteValidation(w, "invalid date", fieldErr)
			return
		}

		v, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			PetID:        petID,
			VisitDate:    visitAt,
			ClinicName:   req.ClinicName,
			Reason:       req.Reason,
			Diagnosis:    req.Diagnosis,
			Treatment:    req.Treatment,
			Medications:  req.Medications,
			FollowUpDate: followUp,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		httpx.WriteData(w, http.StatusCreated, toVisitResponse(v))
	}
}

func listVisitsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		out := make([]visitResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVisitResponse(v))
		}

		httpx.WriteData(w, http.StatusOK, httpx.ListData{Items: out, Count: len(out)})
	}
}

func updateVisitHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, httpx.KindUnauthorized, "missing caller identity")
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateVisitRequest
		if err := dec.Decode(&req); err != nil {
			httpx.WriteValidation(w, "invalid json", nil)
			return
		}

		// Reasignación de mascota: la nueva también debe ser del caller.
		if req.PetID != nil {
			if _, err := petsSvc.GetOwned(r.Context(), *req.PetID, claims.UserID); err != nil {
				httpx.WriteError(w, httpx.KindNotFound, "pet not found")
				return
			}
		}

		in := UpdateInput{
			PetID:       req.PetID,
			ClinicName:  req.ClinicName,
			Reason:      req.Reason,
			Diagnosis:   req.Diagnosis,
			Treatment:   req.Treatment,
			Medications: req.Medications,
		}
		if req.VisitDate != nil {
			t, err := httpx.ParseTime(*req.VisitDate)
			if err != nil {
				httpx.WriteValidation(w, "invalid date", map[string]string{"visit_date": "must be RFC3339 or YYYY-MM-DD"})
				return
			}
			in.VisitDate = &t
		}
		if req.FollowUpDate != nil {
			t, err := httpx.ParseTime(*req.FollowUpDate)
			if err != nil {
				httpx.WriteValidation(w, "invalid date", map[string]string{"follow_up_date": "must be RFC3339 or YYYY-MM-DD"})
				return
			}
			in.FollowUpDate = &t
		}

		if err := svc.Update(r.Context(), chi.URLParam(r, "visitID"), claims.UserID, in); err != nil {
			writeServiceError(w, err)
			return
		}

		httpx.WriteOK(w)
	}
}

func deleteVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, httpx.KindUnauthorized, "missing caller identity")
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "visitID"), claims.UserID); err != nil {
			writeServiceError(w, err)
			return
		}

		httpx.WriteOK(w)
	}
}

func optionalDate(s, field string) (*time.Time, map[string]string) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := httpx.ParseTime(s)
	if err != nil {
		return nil, map[string]string{field: "must be RFC3339 or YYYY-MM-DD"}
	}
	return &t, nil
}

func toVisitResponse(v VetVisit) visitResponse {
	return visitResponse{
		ID:           v.ID,
		PetID:        v.PetID,
		OwnerUserID:  v.OwnerUserID,
		VisitDate:    v.VisitDate,
		ClinicName:   v.ClinicName,
		Reason:       v.Reason,
		Diagnosis:    v.Diagnosis,
		Treatment:    v.Treatment,
		Medications:  v.Medications,
		FollowUpDate: v.FollowUpDate,
		CreatedAt:    v.CreatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, httpx.KindNotFound, "visit not found")
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteValidation(w, "invalid input", nil)
	default:
		httpx.WriteError(w, httpx.KindInternal, "internal error")
	}
}
