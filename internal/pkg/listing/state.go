package listing

import "referral-portal-service/internal/pkg/pastatus"

// ListState is a saved list view. Any change other than the page itself
// sends the user back to page 1.
type ListState struct {
	Search   string                 `json:"search"`
	Clinic   string                 `json:"clinic"`
	Bucket   Bucket                 `json:"bucket"`
	Sort     pastatus.SortDirection `json:"sort"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

func NewListState() ListState {
	return ListState{Bucket: BucketAll, Sort: pastatus.SortNone, Page: DefaultPage, PageSize: DefaultPageSize}
}

func (s ListState) SetSearch(search string) ListState {
	s.Search = search
	s.Page = DefaultPage
	return s
}

func (s ListState) SetClinic(clinic string) ListState {
	s.Clinic = clinic
	s.Page = DefaultPage
	return s
}

func (s ListState) SetBucket(b Bucket) ListState {
	s.Bucket = b
	s.Page = DefaultPage
	return s
}

func (s ListState) SetSort(d pastatus.SortDirection) ListState {
	s.Sort = d
	s.Page = DefaultPage
	return s
}

func (s ListState) ToggleSort() ListState {
	return s.SetSort(s.Sort.Next())
}

// SetPageSize ignores sizes outside 5/10/25/50.
func (s ListState) SetPageSize(size int) ListState {
	if !ValidPageSize(size) {
		return s
	}
	s.PageSize = size
	s.Page = DefaultPage
	return s
}

func (s ListState) SetPage(page int) ListState {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

func (s ListState) Query() Query {
	return Query{
		Search:   s.Search,
		Clinic:   s.Clinic,
		Bucket:   s.Bucket,
		Sort:     s.Sort,
		Page:     s.Page,
		PageSize: s.PageSize,
	}
}
