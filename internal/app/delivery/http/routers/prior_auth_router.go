package routers

import (
	"referral-portal-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachPriorAuthRoutes(router chi.Router, priorAuthController *controllers.PriorAuthController) {
	router.Get("/", priorAuthController.GetWorkflow)
	router.Post("/edit", priorAuthController.Edit)
	router.Post("/cancel", priorAuthController.Cancel)
	router.Put("/decision", priorAuthController.SelectDecision)
	router.Put("/draft", priorAuthController.ReplaceDraft)
	router.Post("/letter", priorAuthController.UploadLetter)
	router.Delete("/letter", priorAuthController.RemoveLetter)
	router.Post("/save", priorAuthController.Save)
}
