package responses

import "referral-portal-service/internal/app/models"

type PharmacyList struct {
	Items []models.Pharmacy `json:"items"`
	Total int               `json:"total"`
}
