package referrals

import (
	"context"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/exceptions"
	"referral-portal-service/internal/pkg/listing"
	"referral-portal-service/internal/pkg/pastatus"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// pasortToggle asks for the next direction in the none, asc, desc cycle.
const pasortToggle = "toggle"

// listViews loads and saves a user's list state. Storage failures are logged
// and fall back to the default view; they never fail the list request.
type listViews struct {
	Repository contracts.ListViewRepository
	Log        *zap.Logger
}

func (v listViews) load(ctx context.Context, session *models.Session, listKey string, reset bool) listing.ListState {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if reset {
		if err := v.Repository.Delete(ctx, session.UserID, listKey); err != nil {
			v.Log.Warn("listViews.load failed to delete saved view",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
		return listing.NewListState()
	}

	saved, err := v.Repository.Load(ctx, session.UserID, listKey)
	if err != nil {
		v.Log.Warn("listViews.load failed to load saved view",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return listing.NewListState()
	}
	if saved == nil {
		return listing.NewListState()
	}
	return stateFromView(*saved)
}

func (v listViews) save(ctx context.Context, session *models.Session, listKey string, state listing.ListState) {
	view := viewFromState(state)
	if err := v.Repository.Save(ctx, session.UserID, listKey, &view); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		v.Log.Warn("listViews.save failed to save view",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}

// applyQuery moves the saved state by the parameters the caller sent. A
// setter only runs when its value changes, so resending the current search
// with a new page keeps that page. Clinic filter, PA sort and the blocked
// bucket are admin only.
func applyQuery(state listing.ListState, query *requests.ListReferrals, admin bool) (listing.ListState, error) {
	if query == nil {
		return state, nil
	}

	if query.Search != nil {
		search := strings.TrimSpace(*query.Search)
		if search != state.Search {
			state = state.SetSearch(search)
		}
	}

	if query.Status != nil {
		bucket, ok := listing.ParseBucket(*query.Status)
		if !ok || (bucket == listing.BucketBlocked && !admin) {
			return state, exceptions.ErrInvalidListQuery(nil, constvars.QueryParamStatus, *query.Status)
		}
		if bucket != state.Bucket {
			state = state.SetBucket(bucket)
		}
	}

	if query.Clinic != nil && admin {
		clinic := strings.TrimSpace(*query.Clinic)
		if clinic != state.Clinic {
			state = state.SetClinic(clinic)
		}
	}

	if query.PASort != nil && admin {
		raw := strings.ToLower(strings.TrimSpace(*query.PASort))
		if raw == pasortToggle {
			state = state.ToggleSort()
		} else {
			direction, ok := pastatus.ParseSortDirection(raw)
			if !ok {
				return state, exceptions.ErrInvalidListQuery(nil, constvars.QueryParamPASort, *query.PASort)
			}
			if direction != state.Sort {
				state = state.SetSort(direction)
			}
		}
	}

	if query.PageSize != nil && *query.PageSize != state.PageSize {
		if !listing.ValidPageSize(*query.PageSize) {
			return state, exceptions.ErrInvalidListQuery(nil, constvars.QueryParamPageSize, strconv.Itoa(*query.PageSize))
		}
		state = state.SetPageSize(*query.PageSize)
	}

	if query.Page != nil {
		state = state.SetPage(*query.Page)
	}
	return state, nil
}

func stateFromView(view models.ListView) listing.ListState {
	state := listing.NewListState()
	state.Search = view.Search
	state.Clinic = view.Clinic
	if bucket, ok := listing.ParseBucket(view.Bucket); ok {
		state.Bucket = bucket
	}
	if direction, ok := pastatus.ParseSortDirection(view.PASort); ok {
		state.Sort = direction
	}
	if listing.ValidPageSize(view.PageSize) {
		state.PageSize = view.PageSize
	}
	if view.Page > 0 {
		state.Page = view.Page
	}
	return state
}

func viewFromState(state listing.ListState) models.ListView {
	return models.ListView{
		Search:   state.Search,
		Clinic:   state.Clinic,
		Bucket:   string(state.Bucket),
		PASort:   string(state.Sort),
		Page:     state.Page,
		PageSize: state.PageSize,
	}
}
