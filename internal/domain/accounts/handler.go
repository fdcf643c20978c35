package accounts

import (
	"encoding/json"
	"errors"
	"net/http"

	"myvet/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/auth/register", registerHandler(svc))
	r.Post("/auth/login", loginHandler(svc))

	r.Group(func(or chi.Router) {
		or.Use(middleware.RequireRole(RoleOwner))
		or.Get("/owners/me/profile", getOwnerProfileHandler(svc))
		or.Post("/owners/me/profile", saveOwnerProfileHandler(svc))
	})

	r.Group(func(vr chi.Router) {
		vr.Use(middleware.RequireRole(RoleVet))
		vr.Get("/vet/me", getVetProfileHandler(svc))
		vr.Post("/vet/me/profile", saveVetProfileHandler(svc))
		vr.Get("/vet/owners", listOwnersHandler(svc))
	})
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role" enums:"owner,veterinario"`
	Name     string `json:"nombre"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"nombre,omitempty"`
	Role  string `json:"role"`
}

// authResponse es el contrato que guarda la app en su sesión.
type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type ownerProfileRequest struct {
	Name    string `json:"nombre"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
}

type vetProfileRequest struct {
	Name               string `json:"nombre"`
	Phone              string `json:"telefono"`
	Address            string `json:"direccion"`
	ClinicName         string `json:"clinicName"`
	ClinicPhone        string `json:"clinicPhone"`
	ClinicAddress      string `json:"clinicAddress"`
	Speciality         string `json:"speciality"`
	RegistrationNumber string `json:"registrationNumber"`
}

type vetProfileResponse struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"nombre"`
	Phone              string `json:"telefono"`
	Address            string `json:"direccion"`
	ClinicName         string `json:"clinicName"`
	ClinicPhone        string `json:"clinicPhone"`
	ClinicAddress      string `json:"clinicAddress"`
	Speciality         string `json:"speciality"`
	RegistrationNumber string `json:"registrationNumber"`
}

type ownerSummaryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
}

// registerHandler godoc
// @Summary Registrar cuenta
// @Description Crea una cuenta owner o veterinario y devuelve un token listo para usar.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos de la cuenta; role por defecto owner"
// @Success 201 {object} authResponse
// @Failure 400 {string} string "invalid input"
// @Failure 409 {string} string "email ya registrado"
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.Register(r.Context(), RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
			Name:     req.Name,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrEmailTaken):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toAuthResponse(sess))
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} authResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "credenciales inválidas"
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrInvalidCredentials):
				http.Error(w, err.Error(), http.StatusUnauthorized)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAuthResponse(sess))
	}
}

func getOwnerProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, err := svc.OwnerProfile(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ownerProfileRequest{Name: p.Name, Phone: p.Phone, Address: p.Address})
	}
}

// saveOwnerProfileHandler godoc
// @Summary Guardar perfil del dueño
// @Tags owners
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body ownerProfileRequest true "nombre obligatorio"
// @Success 200 {object} ownerProfileRequest
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /owners/me/profile [post]
func saveOwnerProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req ownerProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.SaveOwnerProfile(r.Context(), claims.UserID, OwnerProfileInput(req))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ownerProfileRequest{Name: p.Name, Phone: p.Phone, Address: p.Address})
	}
}

// getVetProfileHandler godoc
// @Summary Perfil del veterinario
// @Tags vet
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {object} vetProfileResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /vet/me [get]
func getVetProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		u, p, err := svc.VetProfile(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toVetProfileResponse(u, p))
	}
}

func saveVetProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req vetProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if _, err := svc.SaveVetProfile(r.Context(), claims.UserID, VetProfileInput(req)); err != nil {
			writeError(w, err)
			return
		}
		u, p, err := svc.VetProfile(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toVetProfileResponse(u, p))
	}
}

// listOwnersHandler godoc
// @Summary Directorio de dueños
// @Tags vet
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {array} ownerSummaryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /vet/owners [get]
func listOwnersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Owners(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]ownerSummaryResponse, 0, len(items))
		for _, u := range items {
			out = append(out, ownerSummaryResponse{ID: u.ID, Name: u.Name, Email: u.Email})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func toAuthResponse(s Session) authResponse {
	return authResponse{
		Token: s.Token,
		User: userResponse{
			ID:    s.User.ID,
			Email: s.User.Email,
			Name:  s.User.Name,
			Role:  s.User.Role,
		},
	}
}

func toVetProfileResponse(u User, p VetProfile) vetProfileResponse {
	return vetProfileResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               p.Name,
		Phone:              p.Phone,
		Address:            p.Address,
		ClinicName:         p.ClinicName,
		ClinicPhone:        p.ClinicPhone,
		ClinicAddress:      p.ClinicAddress,
		Speciality:         p.Speciality,
		RegistrationNumber: p.RegistrationNumber,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
