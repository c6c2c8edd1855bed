package backend

import (
	"context"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

const resourcePatient = "patient"

type patientClient struct {
	Transport *Transport
	Log       *zap.Logger
}

func NewPatientClient(transport *Transport, logger *zap.Logger) contracts.PatientClient {
	return &patientClient{
		Transport: transport,
		Log:       logger,
	}
}

func (c *patientClient) ListPatients(ctx context.Context) ([]models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("patientClient.ListPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	data, _, err := c.Transport.sendBytes(ctx, call{
		method:   constvars.MethodGet,
		path:     "/patients",
		resource: resourcePatient,
	})
	if err != nil {
		c.Log.Error("patientClient.ListPatients error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	patients, err := decodeList[models.Patient](data)
	if err != nil {
		return nil, exceptions.ErrBackendDecodeResponse(err, resourcePatient)
	}
	return patients, nil
}

func (c *patientClient) FindPatientByID(ctx context.Context, patientID string) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("patientClient.FindPatientByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	patient := new(models.Patient)
	err := c.Transport.sendJSON(ctx, call{
		method:     constvars.MethodGet,
		path:       "/patients/" + escape(patientID),
		resource:   resourcePatient,
		resourceID: patientID,
		notFound:   &notFound{constvars.ErrClientPatientNotFound, constvars.RecoveryPathPatients},
	}, patient)
	if err != nil {
		c.Log.Error("patientClient.FindPatientByID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return nil, err
	}
	return patient, nil
}
