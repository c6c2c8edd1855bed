package pastatus

// LegacyStatus is the four value PA status of the first portal schema.
type LegacyStatus string

const (
	LegacyPARequired LegacyStatus = "pa_required"
	LegacyPAExpired  LegacyStatus = "pa_expired"
	LegacyPAApproved LegacyStatus = "pa_approved"
	LegacyNoPA       LegacyStatus = "no_pa"
)

var legacyToCanonical = map[LegacyStatus]Status{
	LegacyPARequired: RequiredProcessing,
	LegacyPAExpired:  Expired,
	LegacyPAApproved: RequiredApproved,
	LegacyNoPA:       NotRequired,
}

var legacyRanks = map[LegacyStatus]int{
	LegacyPARequired: 0,
	LegacyPAExpired:  1,
	LegacyPAApproved: 2,
	LegacyNoPA:       3,
}

// Legacy collapses the required_* family other than approved into pa_required.
func (s Status) Legacy() LegacyStatus {
	switch s {
	case NotRequired:
		return LegacyNoPA
	case Expired:
		return LegacyPAExpired
	case RequiredApproved:
		return LegacyPAApproved
	default:
		return LegacyPARequired
	}
}

func LegacyRank(s LegacyStatus) int {
	if rank, ok := legacyRanks[s]; ok {
		return rank
	}
	return len(legacyRanks)
}
