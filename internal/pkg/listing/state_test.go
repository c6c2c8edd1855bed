package listing

import (
	"referral-portal-service/internal/pkg/pastatus"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListStateResetsPage(t *testing.T) {
	onPageThree := NewListState().SetPage(3)

	tests := []struct {
		name   string
		change func(ListState) ListState
	}{
		{name: "search", change: func(s ListState) ListState { return s.SetSearch("doe") }},
		{name: "bucket", change: func(s ListState) ListState { return s.SetBucket(BucketRejected) }},
		{name: "clinic", change: func(s ListState) ListState { return s.SetClinic("Fort Worth Allergy Center") }},
		{name: "page size", change: func(s ListState) ListState { return s.SetPageSize(25) }},
		{name: "sort toggle", change: func(s ListState) ListState { return s.ToggleSort() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := tt.change(onPageThree)
			assert.Equal(t, DefaultPage, next.Page)
			assert.Equal(t, 3, onPageThree.Page)
		})
	}
}

func TestListStateIgnoresInvalidPageSize(t *testing.T) {
	state := NewListState().SetPage(2).SetPageSize(12)
	assert.Equal(t, DefaultPageSize, state.PageSize)
	assert.Equal(t, 2, state.Page)
}

func TestListStateQuery(t *testing.T) {
	state := NewListState().SetSearch("skyrizi").SetBucket(BucketPending).ToggleSort().SetPage(2)

	q := state.Query()
	assert.Equal(t, "skyrizi", q.Search)
	assert.Equal(t, BucketPending, q.Bucket)
	assert.Equal(t, pastatus.SortAsc, q.Sort)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "jose", Fold(" José "))
	assert.Equal(t, "strasse", Fold("STRASSE"))
	assert.True(t, ContainsFolded("", "anything"))
	assert.False(t, ContainsFolded("x", "", "abc"))
}
