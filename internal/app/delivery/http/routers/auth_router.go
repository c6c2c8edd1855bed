package routers

import (
	"referral-portal-service/internal/app/delivery/http/controllers"
	"referral-portal-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	router.With(middlewares.LoginRateLimit()).Post("/login", authController.Login)
	router.With(middlewares.Authenticate, middlewares.Authorize).Post("/logout", authController.Logout)
	router.With(middlewares.Authenticate, middlewares.Authorize).Get("/me", authController.Me)
}
