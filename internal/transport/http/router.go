package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/urep/registration-api/internal/application/formfield"
	"github.com/urep/registration-api/internal/application/identity"
	"github.com/urep/registration-api/internal/application/otp"
	"github.com/urep/registration-api/internal/application/programme"
	"github.com/urep/registration-api/internal/application/response"
	"github.com/urep/registration-api/internal/application/user"
	"github.com/urep/registration-api/internal/config"
	"github.com/urep/registration-api/internal/domain"
	"github.com/urep/registration-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/urep/registration-api/internal/infrastructure/jwt"
	"github.com/urep/registration-api/internal/infrastructure/otpstore"
	"github.com/urep/registration-api/internal/infrastructure/qoreid"
	"github.com/urep/registration-api/internal/infrastructure/sms"
	"github.com/urep/registration-api/internal/transport/http/handler"
	appmiddleware "github.com/urep/registration-api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	AdminRepo        *dynamo.AdminRepo
	ProgrammeRepo    *dynamo.ProgrammeRepo
	FormFieldRepo    *dynamo.FormFieldRepo
	RegistrationRepo *dynamo.RegistrationRepo
	ResponseRepo     *dynamo.ResponseRepo
	ProgramInfoRepo  *dynamo.ProgramInfoRepo
	IdentityClient   *qoreid.Client
	OTPStore         *otpstore.Store
	SMSSender        sms.Sender
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	otpSvc := otp.NewService(deps.OTPStore, deps.SMSSender, cfg.PhoneCountryCode, cfg.IsDevelopment())
	identitySvc := identity.NewService(deps.IdentityClient, otpSvc, cfg.PhoneCountryCode)
	userSvc := user.NewService(deps.UserRepo, deps.AdminRepo, deps.ProgramInfoRepo, deps.JWTProvider, cfg.PhoneCountryCode)
	programmeSvc := programme.NewService(deps.ProgrammeRepo)
	formFieldSvc := formfield.NewService(deps.FormFieldRepo, deps.ProgrammeRepo)
	responseSvc := response.NewService(deps.RegistrationRepo, deps.ResponseRepo, deps.UserRepo, deps.ProgrammeRepo)

	healthH := handler.NewHealthHandler()
	identityH := handler.NewIdentityHandler(identitySvc)
	otpH := handler.NewOTPHandler(otpSvc, cfg.PhoneCountryCode)
	authH := handler.NewAuthHandler(userSvc)
	programmeH := handler.NewProgrammeHandler(programmeSvc)
	formFieldH := handler.NewFormFieldHandler(formFieldSvc)
	responseH := handler.NewResponseHandler(responseSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/nin/verify", identityH.Verify)
		r.With(sensitiveRL.Limit).Post("/sms/send-otp", otpH.Send)
		r.With(sensitiveRL.Limit).Post("/sms/verify-otp", otpH.Verify)

		r.With(sensitiveRL.Limit).Post("/auth/signup", authH.Signup)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/admin/login", authH.AdminLogin)

		r.Get("/programmes", programmeH.List)
		r.Get("/programmes/active", programmeH.ListActive)
		r.Get("/programmes/{id}", programmeH.Get)
		r.Get("/programmes/{programmeID}/form", formFieldH.ListByProgramme)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/auth/program-info", authH.ProgramInfo)
			r.Post("/responses", responseH.Submit)
			r.Get("/registrations/{id}", responseH.GetRegistration)
			r.Get("/users/{userID}/registrations", responseH.ListByUser)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Post("/programmes", programmeH.Create)
				r.Put("/programmes/{id}", programmeH.Update)
				r.Delete("/programmes/{id}", programmeH.Delete)

				r.Post("/forms", formFieldH.CreateForm)
				r.Put("/forms/fields/{id}", formFieldH.Update)
				r.Delete("/forms/fields/{id}", formFieldH.Delete)
			})
		})
	})

	return r
}
