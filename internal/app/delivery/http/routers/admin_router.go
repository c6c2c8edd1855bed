package routers

import (
	"github.com/go-chi/chi/v5"
)

func attachAdminRoutes(router chi.Router, controllers *Controllers) {
	router.Get("/dashboard", controllers.Dashboard.AdminDashboard)
	router.Post("/users", controllers.User.CreatePortalUser)

	router.Route("/referrals", func(r chi.Router) {
		r.Get("/", controllers.AdminReferral.ListReferrals)
		r.Get("/blocked", controllers.AdminReferral.ListBlockedReferrals)

		r.Route("/{referral_id}", func(r chi.Router) {
			r.Get("/", controllers.AdminReferral.FindReferral)
			r.Post("/process", controllers.AdminReferral.TriggerProcessing)
			r.Post("/decision", controllers.AdminReferral.MakeDecision)
			r.Patch("/extracted-data", controllers.AdminReferral.UpdateExtractedData)
			r.Get("/pdf", controllers.AdminReferral.FetchPDF)
			r.Post("/reassign-pharmacy", controllers.AdminReferral.ReassignPharmacy)
			r.Get("/audit", controllers.AdminReferral.AuditTrail)

			r.Route("/pa", func(r chi.Router) {
				attachPriorAuthRoutes(r, controllers.PriorAuth)
			})
		})
	})

	router.Route("/pharmacies", func(r chi.Router) {
		r.Get("/", controllers.Pharmacy.ListPharmacies)
		r.Post("/", controllers.Pharmacy.CreatePharmacy)
		r.Get("/{pharmacy_id}", controllers.Pharmacy.FindPharmacy)
		r.Put("/{pharmacy_id}", controllers.Pharmacy.UpdatePharmacy)
	})

	router.Route("/patients", func(r chi.Router) {
		r.Get("/", controllers.Patient.ListPatients)
		r.Get("/{patient_id}", controllers.Patient.FindPatient)
	})
}
