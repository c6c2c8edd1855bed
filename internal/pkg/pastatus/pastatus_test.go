package pastatus

import (
	"referral-portal-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

var frozenNow = time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

func TestDerive(t *testing.T) {
	tests := []struct {
		name           string
		referral       models.Referral
		expectedStatus Status
		expectedReason string
	}{
		{
			name:           "required with no pa status keeps reason verbatim",
			referral:       models.Referral{PARequired: true, PARequiredReason: "New Drug: Dupixent"},
			expectedStatus: RequiredProcessing,
			expectedReason: "New Drug: Dupixent",
		},
		{
			name:           "approved in the past is expired",
			referral:       models.Referral{PARequired: true, PAStatus: strPtr("approved"), PAExpirationDate: strPtr("2020-01-01")},
			expectedStatus: Expired,
			expectedReason: ReasonExpired,
		},
		{
			name:           "not required wins over stale approval",
			referral:       models.Referral{PARequired: false, PAStatus: strPtr("approved"), PAExpirationDate: strPtr("2020-01-01")},
			expectedStatus: NotRequired,
			expectedReason: ReasonNotRequired,
		},
		{
			name:           "not required ignores malformed expiration",
			referral:       models.Referral{PARequired: false, PAStatus: strPtr("denied"), PAExpirationDate: strPtr("not-a-date"), PARequiredReason: "Continuation of existing therapy"},
			expectedStatus: NotRequired,
			expectedReason: "Continuation of existing therapy",
		},
		{
			name:           "approved in the future",
			referral:       models.Referral{PARequired: true, PAStatus: strPtr("approved"), PAExpirationDate: strPtr("2026-08-15")},
			expectedStatus: RequiredApproved,
			expectedReason: ReasonApproved,
		},
		{
			name:           "approved without expiration",
			referral:       models.Referral{PARequired: true, PAStatus: strPtr("approved")},
			expectedStatus: RequiredApproved,
			expectedReason: ReasonApproved,
		},
		{
			name:           "approved with unparseable expiration is not expired",
			referral:       models.Referral{PARequired: true, PAStatus: strPtr("approved"), PAExpirationDate: strPtr("someday")},
			expectedStatus: RequiredApproved,
			expectedReason: ReasonApproved,
		},
		{
			name:           "denied",
			referral:       models.Referral{PARequired: true, PAStatus: strPtr("denied")},
			expectedStatus: RequiredDenied,
			expectedReason: ReasonRequired,
		},
		{
			name:           "submitted",
			referral:       models.Referral{PARequired: true, PAStatus: strPtr("submitted")},
			expectedStatus: RequiredSubmitted,
			expectedReason: ReasonRequired,
		},
		{
			name:           "pending is processing",
			referral:       models.Referral{PARequired: true, PAStatus: strPtr("pending")},
			expectedStatus: RequiredProcessing,
			expectedReason: ReasonRequired,
		},
		{
			name:           "sent to pharmacy is processing",
			referral:       models.Referral{PARequired: true, PAStatus: strPtr("sent_to_pharmacy")},
			expectedStatus: RequiredProcessing,
			expectedReason: ReasonRequired,
		},
		{
			name:           "unrecognised pa status falls back to processing",
			referral:       models.Referral{PARequired: true, PAStatus: strPtr("escalated")},
			expectedStatus: RequiredProcessing,
			expectedReason: ReasonRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Derive(tt.referral, frozenNow)
			assert.Equal(t, tt.expectedStatus, info.Status)
			assert.Equal(t, tt.expectedReason, info.Reason)
		})
	}
}

func TestDeriveExpirationBoundary(t *testing.T) {
	referral := models.Referral{PARequired: true, PAStatus: strPtr("approved"), PAExpirationDate: strPtr("2026-02-07T12:00:00Z")}

	assert.Equal(t, RequiredApproved, Derive(referral, frozenNow).Status, "expiration equal to now is not expired")
	assert.Equal(t, Expired, Derive(referral, frozenNow.Add(time.Nanosecond)).Status)
	assert.Equal(t, RequiredApproved, Derive(referral, frozenNow.Add(-time.Nanosecond)).Status)
}

func TestExpiresWithin(t *testing.T) {
	tests := []struct {
		name       string
		expiration string
		want       bool
	}{
		{"inside window", "2026-02-20", true},
		{"now itself", "2026-02-07T12:00:00Z", true},
		{"window edge", "2026-03-09T12:00:00Z", true},
		{"past window", "2026-03-10", false},
		{"already expired", "2026-02-01", false},
		{"blank", "", false},
		{"garbage", "next week", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpiresWithin(tt.expiration, frozenNow, 30))
		})
	}
}

func TestDeriveIsIdempotent(t *testing.T) {
	referral := models.Referral{PARequired: true, PAStatus: strPtr("approved"), PAExpirationDate: strPtr("2026-02-07")}

	first := Derive(referral, frozenNow)
	second := Derive(referral, frozenNow)
	assert.Equal(t, first, second)
	assert.Equal(t, "approved", *referral.PAStatus, "input must not be modified")
}

func TestRequiredFamily(t *testing.T) {
	assert.True(t, RequiredProcessing.Required())
	assert.True(t, RequiredDenied.Required())
	assert.True(t, RequiredSubmitted.Required())
	assert.True(t, RequiredApproved.Required())
	assert.False(t, Expired.Required())
	assert.False(t, NotRequired.Required())
	assert.False(t, Unknown.Required())
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, RequiredDenied, ParseStatus("required_denied"))
	assert.Equal(t, Expired, ParseStatus("pa_expired"))
	assert.Equal(t, NotRequired, ParseStatus(" NO_PA "))
	assert.Equal(t, Unknown, ParseStatus("mystery"))
}

func TestLegacyAdapter(t *testing.T) {
	assert.Equal(t, LegacyNoPA, NotRequired.Legacy())
	assert.Equal(t, LegacyPAExpired, Expired.Legacy())
	assert.Equal(t, LegacyPAApproved, RequiredApproved.Legacy())
	assert.Equal(t, LegacyPARequired, RequiredDenied.Legacy())
	assert.Equal(t, LegacyPARequired, RequiredProcessing.Legacy())

	assert.Less(t, LegacyRank(LegacyPARequired), LegacyRank(LegacyPAExpired))
	assert.Less(t, LegacyRank(LegacyPAExpired), LegacyRank(LegacyPAApproved))
	assert.Less(t, LegacyRank(LegacyPAApproved), LegacyRank(LegacyNoPA))
}

func TestSortDirectionCycle(t *testing.T) {
	d := SortNone
	d = d.Next()
	assert.Equal(t, SortAsc, d)
	d = d.Next()
	assert.Equal(t, SortDesc, d)
	d = d.Next()
	assert.Equal(t, SortNone, d)
}

func TestSortByRank(t *testing.T) {
	type row struct {
		id     string
		status Status
	}
	rows := []row{
		{"a", NotRequired},
		{"b", RequiredProcessing},
		{"c", RequiredApproved},
		{"d", RequiredProcessing},
		{"e", Unknown},
		{"f", NotRequired},
		{"g", Expired},
		{"h", RequiredDenied},
	}
	rank := func(r row) int { return Rank(r.status) }
	ids := func(rs []row) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.id)
		}
		return out
	}

	t.Run("ascending groups stay in input order", func(t *testing.T) {
		sorted := SortByRank(rows, SortAsc, rank)
		assert.Equal(t, []string{"b", "d", "g", "h", "c", "a", "f", "e"}, ids(sorted))
	})

	t.Run("descending keeps ties stable", func(t *testing.T) {
		sorted := SortByRank(rows, SortDesc, rank)
		assert.Equal(t, []string{"e", "a", "f", "c", "g", "h", "b", "d"}, ids(sorted))
	})

	t.Run("resorting is a fixed point", func(t *testing.T) {
		once := SortByRank(rows, SortAsc, rank)
		twice := SortByRank(once, SortAsc, rank)
		assert.Equal(t, ids(once), ids(twice))
	})

	t.Run("none keeps input order and copies", func(t *testing.T) {
		sorted := SortByRank(rows, SortNone, rank)
		assert.Equal(t, ids(rows), ids(sorted))
		sorted[0].id = "changed"
		assert.Equal(t, "a", rows[0].id)
	})
}
