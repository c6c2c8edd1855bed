package pharmacies

import (
	"context"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/dto/responses"
	"referral-portal-service/internal/pkg/exceptions"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const resourcePharmacy = "pharmacy"

type pharmacyUsecase struct {
	PharmacyClient contracts.PharmacyClient
	Recorder       contracts.ActivityRecorder
	Log            *zap.Logger
}

func NewPharmacyUsecase(pharmacyClient contracts.PharmacyClient, recorder contracts.ActivityRecorder, logger *zap.Logger) contracts.PharmacyUsecase {
	return &pharmacyUsecase{
		PharmacyClient: pharmacyClient,
		Recorder:       recorder,
		Log:            logger,
	}
}

// ListPharmacies sorts by name. activeOnly backs the reassignment picker.
func (uc *pharmacyUsecase) ListPharmacies(ctx context.Context, activeOnly bool) (*responses.PharmacyList, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("pharmacyUsecase.ListPharmacies called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool(constvars.LoggingActiveOnlyKey, activeOnly),
	)

	pharmacies, err := uc.PharmacyClient.ListPharmacies(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.Pharmacy, 0, len(pharmacies))
	for _, p := range pharmacies {
		if activeOnly && !p.IsActive() {
			continue
		}
		items = append(items, p.Normalize())
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	uc.Log.Info("pharmacyUsecase.ListPharmacies succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(items)),
	)
	return &responses.PharmacyList{Items: items, Total: len(items)}, nil
}

func (uc *pharmacyUsecase) FindPharmacy(ctx context.Context, pharmacyID string) (*models.Pharmacy, error) {
	pharmacy, err := uc.PharmacyClient.FindPharmacyByID(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}
	if pharmacy == nil || pharmacy.ID == "" {
		return nil, exceptions.ErrNotFound(nil, constvars.ErrClientPharmacyNotFound, resourcePharmacy, pharmacyID, constvars.RecoveryPathPharmacies)
	}
	return pharmacy, nil
}

func (uc *pharmacyUsecase) CreatePharmacy(ctx context.Context, session *models.Session, request *requests.Pharmacy) (*models.Pharmacy, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("pharmacyUsecase.CreatePharmacy called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	pharmacy := pharmacyFromRequest(request)
	created, err := uc.PharmacyClient.CreatePharmacy(ctx, &pharmacy)
	if err != nil {
		return nil, err
	}

	uc.Recorder.Record(ctx, models.Activity{
		Actor:     session,
		Action:    constvars.AuditActionPharmacyCreate,
		EventType: constvars.EventPharmacyCreated,
		EntityID:  created.ID,
		Detail:    map[string]interface{}{"name": created.Name, "status": created.Status},
	})

	uc.Log.Info("pharmacyUsecase.CreatePharmacy succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPharmacyIDKey, created.ID),
	)
	return created, nil
}

// UpdatePharmacy is a full replace. The pharmacy must exist so a stale form
// gets the not-found recovery path instead of recreating the record.
func (uc *pharmacyUsecase) UpdatePharmacy(ctx context.Context, session *models.Session, pharmacyID string, request *requests.Pharmacy) (*models.Pharmacy, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("pharmacyUsecase.UpdatePharmacy called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPharmacyIDKey, pharmacyID),
	)

	existing, err := uc.FindPharmacy(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}

	pharmacy := pharmacyFromRequest(request)
	pharmacy.ID = pharmacyID
	updated, err := uc.PharmacyClient.UpdatePharmacy(ctx, pharmacyID, &pharmacy)
	if err != nil {
		return nil, err
	}

	detail := map[string]interface{}{"name": updated.Name, "status": updated.Status}
	if existing.Status != updated.Status {
		detail["previous_status"] = existing.Status
	}
	uc.Recorder.Record(ctx, models.Activity{
		Actor:     session,
		Action:    constvars.AuditActionPharmacyUpdate,
		EventType: constvars.EventPharmacyUpdated,
		EntityID:  pharmacyID,
		Detail:    detail,
	})

	uc.Log.Info("pharmacyUsecase.UpdatePharmacy succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPharmacyIDKey, pharmacyID),
	)
	return updated, nil
}

// pharmacyFromRequest always writes the multi-location schema. A form that
// only sent a flat address becomes a single location.
func pharmacyFromRequest(request *requests.Pharmacy) models.Pharmacy {
	pharmacy := models.Pharmacy{
		Name:                   strings.TrimSpace(request.Name),
		ContactEmail:           strings.TrimSpace(request.ContactEmail),
		Phone:                  strings.TrimSpace(request.Phone),
		Fax:                    strings.TrimSpace(request.Fax),
		Address:                strings.TrimSpace(request.Address),
		Status:                 strings.ToLower(request.Status),
		InsuranceCompatibility: compact(request.InsuranceCompatibility),
	}

	for _, l := range request.Locations {
		pharmacy.Locations = append(pharmacy.Locations, models.PharmacyLocation{
			ID:           l.ID,
			Name:         strings.TrimSpace(l.Name),
			Address:      strings.TrimSpace(l.Address),
			City:         strings.TrimSpace(l.City),
			State:        strings.ToUpper(strings.TrimSpace(l.State)),
			Zip:          strings.TrimSpace(l.Zip),
			ZipsServed:   compact(l.ZipsServed),
			Phone:        strings.TrimSpace(l.Phone),
			Fax:          strings.TrimSpace(l.Fax),
			ContactEmail: strings.TrimSpace(l.ContactEmail),
			Active:       l.Active,
		})
	}

	pharmacy = pharmacy.Normalize()
	if len(pharmacy.Locations) > 0 {
		pharmacy.Address = ""
	}
	return pharmacy
}

// compact trims entries and drops blanks and duplicates, keeping order.
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
