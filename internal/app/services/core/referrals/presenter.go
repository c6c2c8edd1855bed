package referrals

import (
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/confidence"
	"referral-portal-service/internal/pkg/dto/responses"
	"referral-portal-service/internal/pkg/lifecycle"
	"referral-portal-service/internal/pkg/listing"
	"referral-portal-service/internal/pkg/pastatus"
	"sort"
	"time"
)

// BuildRow renders a referral as a table row for the viewer's role.
func BuildRow(r models.Referral, info pastatus.Info, role string) responses.ReferralRow {
	return responses.ReferralRow{
		ID:               r.ID,
		PatientName:      r.PatientName,
		ClinicName:       r.ClinicName,
		Drug:             r.Drug,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		PharmacyName:     r.PharmacyName,
		RejectionReason:  r.RejectionReason,
		PAExpirationDate: r.RawPAExpirationDate(),
		StatusBadge:      lifecycle.Badge(r.Status, role),
		PA:               info,
		PABadge:          lifecycle.PABadge(info),
	}
}

func buildRows(page listing.Page, role string) []responses.ReferralRow {
	rows := make([]responses.ReferralRow, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, BuildRow(item.Referral, item.PAInfo, role))
	}
	return rows
}

func buildDetail(r models.Referral, role string, actions responses.ReferralActions, now time.Time) *responses.ReferralDetail {
	info := pastatus.Derive(r, now)
	detail := &responses.ReferralDetail{
		Referral:       r,
		StatusBadge:    lifecycle.Badge(r.Status, role),
		PA:             info,
		PABadge:        lifecycle.PABadge(info),
		HistoryInSync:  r.HistoryInSync(),
		AllowedActions: actions,
	}
	if r.ExtractedData != nil {
		detail.Confidence = confidence.Indicators(r.ExtractedData.Confidence)
		detail.NeedsReview = confidence.NeedsReview(r.ExtractedData.Confidence)
	}
	return detail
}

// adminActions derives which admin buttons the referral's status allows.
func adminActions(r models.Referral) responses.ReferralActions {
	status := lifecycle.Parse(r.Status)
	hasExtraction := r.ExtractedData != nil
	return responses.ReferralActions{
		CanProcess:     status == lifecycle.Uploaded,
		CanApprove:     lifecycle.CanTransition(status, lifecycle.ApprovedToSend),
		CanReject:      lifecycle.CanTransition(status, lifecycle.Rejected),
		CanEditData:    hasExtraction && !status.Terminal() && status.Known(),
		CanReassign:    status == lifecycle.ApprovedToSend || status == lifecycle.SentToPharmacy,
		CanDownloadPDF: hasExtraction,
	}
}

func clinicNames(items []models.Referral) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, r := range items {
		if r.ClinicName == "" || seen[r.ClinicName] {
			continue
		}
		seen[r.ClinicName] = true
		names = append(names, r.ClinicName)
	}
	sort.Strings(names)
	return names
}

func listViewResponse(state listing.ListState, page listing.Page) responses.ListView {
	return responses.ListView{
		Search:     state.Search,
		Clinic:     state.Clinic,
		Status:     string(state.Bucket),
		PASort:     string(state.Sort),
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
}

const resourceReferral = "referral"
