package lifecycle

import (
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/pastatus"
)

type BadgeView struct {
	Status     string `json:"status"`
	Label      string `json:"label"`
	ColorClass string `json:"color_class"`
	Icon       string `json:"icon"`
	Animated   bool   `json:"animated"`
	Known      bool   `json:"known"`
}

type badgeStyle struct {
	colorClass string
	icon       string
}

var statusStyles = map[Status]badgeStyle{
	Uploaded:       {colorClass: "status-uploaded", icon: "upload"},
	Processing:     {colorClass: "status-processing", icon: "loader"},
	ReadyForReview: {colorClass: "status-review", icon: "eye"},
	ApprovedToSend: {colorClass: "status-approved", icon: "check-circle"},
	SentToPharmacy: {colorClass: "status-sent", icon: "send"},
	Rejected:       {colorClass: "status-rejected", icon: "x-circle"},
}

var clinicLabels = map[Status]string{
	Uploaded:       "Received",
	Processing:     "In Review",
	ReadyForReview: "In Review",
	ApprovedToSend: "Approved",
	SentToPharmacy: "Sent to Pharmacy",
	Rejected:       "Needs Attention",
}

var adminLabels = map[Status]string{
	Uploaded:       "Received",
	Processing:     "Processing",
	ReadyForReview: "Needs Review",
	ApprovedToSend: "Approved",
	SentToPharmacy: "Sent to Pharmacy",
	Rejected:       "Rejected",
}

const (
	unknownLabel      = "Unknown status"
	unknownColorClass = "status-unknown"
	unknownIcon       = "help-circle"
)

// Badge renders a stored status for a viewer role. Unknown statuses render a
// distinct marker and keep the raw value so drift is visible.
func Badge(raw string, role string) BadgeView {
	status := Parse(raw)
	style, ok := statusStyles[status]
	if !ok {
		return BadgeView{
			Status:     raw,
			Label:      unknownLabel,
			ColorClass: unknownColorClass,
			Icon:       unknownIcon,
		}
	}

	labels := clinicLabels
	if role == constvars.RoleInternalAdmin {
		labels = adminLabels
	}
	return BadgeView{
		Status:     string(status),
		Label:      labels[status],
		ColorClass: style.colorClass,
		Icon:       style.icon,
		Animated:   status == Processing,
		Known:      true,
	}
}

type paBadgeStyle struct {
	label      string
	colorClass string
	icon       string
}

var paStyles = map[pastatus.Status]paBadgeStyle{
	pastatus.NotRequired:        {label: "No PA", colorClass: "pa-not-required", icon: "shield"},
	pastatus.Expired:            {label: "PA Expired", colorClass: "pa-expired", icon: "x-circle"},
	pastatus.RequiredApproved:   {label: "PA Approved", colorClass: "pa-approved", icon: "check-circle"},
	pastatus.RequiredDenied:     {label: "PA Denied", colorClass: "pa-denied", icon: "x-circle"},
	pastatus.RequiredSubmitted:  {label: "PA Submitted", colorClass: "pa-submitted", icon: "clock"},
	pastatus.RequiredProcessing: {label: "PA Required", colorClass: "pa-required", icon: "alert-triangle"},
}

// PABadge renders a derived PA status. The processing state is animated.
func PABadge(info pastatus.Info) BadgeView {
	style, ok := paStyles[info.Status]
	if !ok {
		return BadgeView{
			Status:     string(info.Status),
			Label:      unknownLabel,
			ColorClass: unknownColorClass,
			Icon:       unknownIcon,
		}
	}
	return BadgeView{
		Status:     string(info.Status),
		Label:      style.label,
		ColorClass: style.colorClass,
		Icon:       style.icon,
		Animated:   info.Status == pastatus.RequiredProcessing,
		Known:      true,
	}
}
