// Package listing filters, sorts and paginates referral lists without
// touching the source slice.
package listing

import (
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/lifecycle"
	"referral-portal-service/internal/pkg/pastatus"
	"strings"
	"time"
)

type Bucket string

const (
	BucketAll      Bucket = "all"
	BucketPending  Bucket = "pending"
	BucketReview   Bucket = "review"
	BucketApproved Bucket = "approved"
	BucketRejected Bucket = "rejected"
	BucketSent     Bucket = "sent"
	BucketBlocked  Bucket = "blocked"
)

var bucketStates = map[Bucket][]lifecycle.Status{
	BucketPending:  {lifecycle.Uploaded, lifecycle.Processing, lifecycle.ReadyForReview},
	BucketReview:   {lifecycle.ReadyForReview},
	BucketApproved: {lifecycle.ApprovedToSend},
	BucketRejected: {lifecycle.Rejected},
	BucketSent:     {lifecycle.SentToPharmacy},
}

func ParseBucket(s string) (Bucket, bool) {
	b := Bucket(strings.ToLower(strings.TrimSpace(s)))
	if b == "" {
		return BucketAll, true
	}
	if b == BucketAll || b == BucketBlocked {
		return b, true
	}
	_, ok := bucketStates[b]
	return b, ok
}

// Matches reports whether a lifecycle state falls in the bucket. Blocked
// membership is decided by Query.BlockedIDs, not by state.
func (b Bucket) Matches(s lifecycle.Status) bool {
	if b == BucketAll || b == "" {
		return true
	}
	for _, candidate := range bucketStates[b] {
		if candidate == s {
			return true
		}
	}
	return false
}

const (
	DefaultPageSize = 10
	DefaultPage     = 1
)

var allowedPageSizes = []int{5, 10, 25, 50}

func AllowedPageSizes() []int {
	return append([]int(nil), allowedPageSizes...)
}

func ValidPageSize(size int) bool {
	for _, s := range allowedPageSizes {
		if s == size {
			return true
		}
	}
	return false
}

type Query struct {
	Search     string
	Clinic     string
	Bucket     Bucket
	Sort       pastatus.SortDirection
	Page       int
	PageSize   int
	BlockedIDs map[string]bool
}

type Row struct {
	Referral models.Referral `json:"referral"`
	PAInfo   pastatus.Info   `json:"pa_info"`
}

type Page struct {
	Items      []Row `json:"items"`
	Total      int   `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// Filter returns the referrals matching every criterion in q, in input
// order.
func Filter(items []models.Referral, q Query) []models.Referral {
	out := make([]models.Referral, 0, len(items))
	for _, r := range items {
		if !ContainsFolded(q.Search, r.PatientName, r.ID, r.Drug) {
			continue
		}
		if q.Clinic != "" && r.ClinicName != q.Clinic {
			continue
		}
		if q.Bucket == BucketBlocked {
			if !q.BlockedIDs[r.ID] {
				continue
			}
		} else if !q.Bucket.Matches(lifecycle.Parse(r.Status)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Apply filters, sorts by PA rank when a direction is set and returns the
// requested page. A page past the end is clamped to the last page.
func Apply(items []models.Referral, q Query, now time.Time) Page {
	filtered := Filter(items, q)

	rows := make([]Row, 0, len(filtered))
	for _, r := range filtered {
		rows = append(rows, Row{Referral: r, PAInfo: pastatus.Derive(r, now)})
	}
	rows = pastatus.SortByRank(rows, q.Sort, func(r Row) int { return pastatus.Rank(r.PAInfo.Status) })

	window, page, pageSize, totalPages := Paginate(rows, q.Page, q.PageSize)
	return Page{
		Items:      window,
		Total:      len(rows),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// Paginate slices a 1-indexed page out of items. Invalid sizes fall back to
// the default and pages are clamped into [1, totalPages].
func Paginate[T any](items []T, page, pageSize int) ([]T, int, int, int) {
	if !ValidPageSize(pageSize) {
		pageSize = DefaultPageSize
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return append([]T{}, items[start:end]...), page, pageSize, totalPages
}
