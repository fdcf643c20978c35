package router

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	_ "myvet/docs"
	"myvet/internal/adapters/auth/localjwt"
	mem "myvet/internal/adapters/storage/memory"
	pg "myvet/internal/adapters/storage/postgres"
	"myvet/internal/domain/accounts"
	"myvet/internal/domain/appointments"
	"myvet/internal/domain/feedback"
	"myvet/internal/domain/pets"
	"myvet/internal/domain/triage"
	"myvet/internal/middleware"
	"myvet/internal/platform/logger"
	"myvet/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// DefaultAPIPrefix es donde la app busca la API primero.
const DefaultAPIPrefix = "/api"

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Issuer firma los tokens de login/register. Si es nil se usa un
	// firmador local con secreto de desarrollo.
	Issuer auth.TokenIssuer

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// APIPrefix monta las rutas de negocio. "" las deja en la raíz
	// (sirve para probar el fallback /api del cliente).
	APIPrefix string

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := logger.OrNop(opts.Log)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		accountRepo     accounts.Repository
		petRepo         pets.Repository
		appointmentRepo appointments.Repository
		feedbackRepo    feedback.Repository
	)

	if opts.DB != nil {
		accountRepo = pg.NewAccountsRepo(opts.DB)
		petRepo = pg.NewPetsRepo(opts.DB)
		appointmentRepo = pg.NewAppointmentsRepo(opts.DB)
		feedbackRepo = pg.NewFeedbackRepo(opts.DB)
	} else {
		accountRepo = mem.NewAccountRepo()
		petRepo = mem.NewPetRepo()
		appointmentRepo = mem.NewAppointmentRepo()
		feedbackRepo = mem.NewFeedbackRepo()
	}

	issuer := opts.Issuer
	if issuer == nil {
		issuer = localjwt.New(localjwt.Config{Secret: "dev-secret", Issuer: "myvet-sandbox"})
	}

	// Services por módulo
	accountsSvc := accounts.NewService(accountRepo, issuer)
	petsSvc := pets.NewService(petRepo)
	appointmentsSvc := appointments.NewService(appointmentRepo, petsSvc)
	feedbackSvc := feedback.NewService(feedbackRepo)

	// Rutas por módulo
	mount := func(ar chi.Router) {
		accounts.RegisterRoutes(ar, accountsSvc)
		pets.RegisterRoutes(ar, petsSvc, accountsSvc, accounts.RoleOwner, accounts.RoleVet)
		appointments.RegisterRoutes(ar, appointmentsSvc, directory{pets: petsSvc, accounts: accountsSvc},
			accounts.RoleOwner, accounts.RoleVet)
		feedback.RegisterRoutes(ar, feedbackSvc)
		triage.RegisterRoutes(ar)
	}

	prefix := strings.TrimRight(strings.TrimSpace(opts.APIPrefix), "/")
	if prefix == "" {
		mount(r)
	} else {
		r.Route(prefix, mount)
	}

	log.Info("router ready", map[string]any{"api_prefix": prefix, "postgres": opts.DB != nil})
	return r
}

// directory junta los nombres que la agenda del veterinario necesita.
type directory struct {
	pets     *pets.Service
	accounts *accounts.Service
}

func (d directory) PetName(ctx context.Context, petID string) string {
	return d.pets.NameOf(ctx, petID)
}

func (d directory) OwnerName(ctx context.Context, userID string) string {
	return d.accounts.DisplayName(ctx, userID)
}
