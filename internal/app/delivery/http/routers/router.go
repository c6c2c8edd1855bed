package routers

import (
	"fmt"
	"net/http"
	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/app/delivery/http/controllers"
	"referral-portal-service/internal/app/delivery/http/middlewares"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/utils"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controllers groups every HTTP controller the portal mounts.
type Controllers struct {
	Auth           *controllers.AuthController
	User           *controllers.UserController
	ClinicReferral *controllers.ClinicReferralController
	AdminReferral  *controllers.AdminReferralController
	PriorAuth      *controllers.PriorAuthController
	Pharmacy       *controllers.PharmacyController
	Patient        *controllers.PatientController
	Dashboard      *controllers.DashboardController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	registry *prometheus.Registry,
	controllers *Controllers,
) {
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.Metrics)

	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderXRequestID, constvars.HeaderContentDisposition},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RateLimit())
	router.Use(middlewares.BodyLimit)

	router.Get("/health", healthHandler(internalConfig.App.Version))
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	endpointPrefix := fmt.Sprintf("/%s", strings.Trim(internalConfig.App.EndpointPrefix, "/"))
	versionPrefix := fmt.Sprintf("/%s", strings.Trim(internalConfig.App.Version, "/"))

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, middlewares, controllers.Auth)
			})

			r.Route("/clinic", func(r chi.Router) {
				r.Use(middlewares.Authenticate, middlewares.Authorize)
				attachClinicRoutes(r, controllers)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewares.Authenticate, middlewares.Authorize)
				attachAdminRoutes(r, controllers)
			})
		})
	})
}

func healthHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, map[string]string{
			"status":  "ok",
			"version": version,
		})
	}
}
