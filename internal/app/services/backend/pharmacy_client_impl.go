package backend

import (
	"context"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

const resourcePharmacy = "pharmacy"

type pharmacyClient struct {
	Transport *Transport
	Log       *zap.Logger
}

func NewPharmacyClient(transport *Transport, logger *zap.Logger) contracts.PharmacyClient {
	return &pharmacyClient{
		Transport: transport,
		Log:       logger,
	}
}

var pharmacyNotFound = &notFound{constvars.ErrClientPharmacyNotFound, constvars.RecoveryPathPharmacies}

// ListPharmacies returns pharmacies normalized to the multi-location shape.
func (c *pharmacyClient) ListPharmacies(ctx context.Context) ([]models.Pharmacy, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("pharmacyClient.ListPharmacies called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	data, _, err := c.Transport.sendBytes(ctx, call{
		method:   constvars.MethodGet,
		path:     "/pharmacies",
		resource: resourcePharmacy,
	})
	if err != nil {
		c.Log.Error("pharmacyClient.ListPharmacies error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	pharmacies, err := decodeList[models.Pharmacy](data)
	if err != nil {
		return nil, exceptions.ErrBackendDecodeResponse(err, resourcePharmacy)
	}
	for i := range pharmacies {
		pharmacies[i] = pharmacies[i].Normalize()
	}
	return pharmacies, nil
}

func (c *pharmacyClient) FindPharmacyByID(ctx context.Context, pharmacyID string) (*models.Pharmacy, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("pharmacyClient.FindPharmacyByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPharmacyIDKey, pharmacyID),
	)

	pharmacy := new(models.Pharmacy)
	err := c.Transport.sendJSON(ctx, call{
		method:     constvars.MethodGet,
		path:       "/pharmacies/" + escape(pharmacyID),
		resource:   resourcePharmacy,
		resourceID: pharmacyID,
		notFound:   pharmacyNotFound,
	}, pharmacy)
	if err != nil {
		c.Log.Error("pharmacyClient.FindPharmacyByID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPharmacyIDKey, pharmacyID),
			zap.Error(err),
		)
		return nil, err
	}

	normalized := pharmacy.Normalize()
	return &normalized, nil
}

func (c *pharmacyClient) CreatePharmacy(ctx context.Context, pharmacy *models.Pharmacy) (*models.Pharmacy, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("pharmacyClient.CreatePharmacy called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	created := new(models.Pharmacy)
	err := c.Transport.sendJSON(ctx, call{
		method:   constvars.MethodPost,
		path:     "/pharmacies",
		body:     pharmacy,
		resource: resourcePharmacy,
	}, created)
	if err != nil {
		c.Log.Error("pharmacyClient.CreatePharmacy error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	normalized := created.Normalize()
	c.Log.Info("pharmacyClient.CreatePharmacy succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPharmacyIDKey, normalized.ID),
	)
	return &normalized, nil
}

func (c *pharmacyClient) UpdatePharmacy(ctx context.Context, pharmacyID string, pharmacy *models.Pharmacy) (*models.Pharmacy, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("pharmacyClient.UpdatePharmacy called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPharmacyIDKey, pharmacyID),
	)

	updated := new(models.Pharmacy)
	err := c.Transport.sendJSON(ctx, call{
		method:     constvars.MethodPut,
		path:       "/pharmacies/" + escape(pharmacyID),
		body:       pharmacy,
		resource:   resourcePharmacy,
		resourceID: pharmacyID,
		notFound:   pharmacyNotFound,
	}, updated)
	if err != nil {
		c.Log.Error("pharmacyClient.UpdatePharmacy error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPharmacyIDKey, pharmacyID),
			zap.Error(err),
		)
		return nil, err
	}

	if updated.ID == "" {
		updated = pharmacy
		updated.ID = pharmacyID
	}
	normalized := updated.Normalize()
	return &normalized, nil
}
