package router

import (
	"database/sql"
	"net/http"

	_ "pet-care-tracker/docs"
	mem "pet-care-tracker/internal/adapters/storage/memory"
	pg "pet-care-tracker/internal/adapters/storage/postgres"
	"pet-care-tracker/internal/domain/carelogs"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/routines"
	"pet-care-tracker/internal/domain/visits"
	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // nil = modo dev (X-Debug-User-ID)

	// Si viene, usa Postgres. Si no, repos in-memory.
	DB *sql.DB

	Logger logger.Logger // nil = sin request logging
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	var (
		petRepo     pets.Repository
		routineRepo routines.Repository
		careLogRepo carelogs.Repository
		visitRepo   visits.Repository
	)

	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
		routineRepo = pg.NewRoutinesRepo(opts.DB)
		careLogRepo = pg.NewCareLogsRepo(opts.DB)
		visitRepo = pg.NewVisitsRepo(opts.DB)
	} else {
		petRepo = mem.NewPetRepo()
		routineRepo = mem.NewRoutineRepo()
		careLogRepo = mem.NewCareLogRepo()
		visitRepo = mem.NewVisitRepo()
	}

	petsSvc := pets.NewService(petRepo)
	routinesSvc := routines.NewService(routineRepo)
	careLogsSvc := carelogs.NewService(careLogRepo)
	visitsSvc := visits.NewService(visitRepo)

	pets.RegisterRoutes(r, petsSvc)
	routines.RegisterRoutes(r, routinesSvc, petsSvc)
	carelogs.RegisterRoutes(r, careLogsSvc, petsSvc, routinesSvc)
	visits.RegisterRoutes(r, visitsSvc, petsSvc)

	return r
}
