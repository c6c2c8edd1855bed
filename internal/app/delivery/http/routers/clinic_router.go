package routers

import (
	"github.com/go-chi/chi/v5"
)

// attachClinicRoutes mounts the clinic portal. Every usecase behind these
// routes scopes data to the session's clinic.
func attachClinicRoutes(router chi.Router, controllers *Controllers) {
	router.Get("/dashboard", controllers.Dashboard.ClinicDashboard)

	router.Route("/referrals", func(r chi.Router) {
		r.Get("/", controllers.ClinicReferral.ListReferrals)
		r.Post("/", controllers.ClinicReferral.CreateReferral)
		r.Get("/{referral_id}", controllers.ClinicReferral.FindReferral)
		r.Post("/{referral_id}/documents", controllers.ClinicReferral.UploadDocument)
	})

	router.Route("/patients", func(r chi.Router) {
		r.Get("/", controllers.Patient.ListPatients)
		r.Get("/{patient_id}", controllers.Patient.FindPatient)
	})
}
