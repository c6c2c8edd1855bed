package models

// ListView is the saved filter, sort and page of a referral or patient list.
type ListView struct {
	Search   string `json:"search"`
	Clinic   string `json:"clinic"`
	Bucket   string `json:"bucket"`
	PASort   string `json:"pa_sort"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}
