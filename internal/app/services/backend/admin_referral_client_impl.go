package backend

import (
	"context"
	"net/url"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type adminReferralClient struct {
	Transport *Transport
	Log       *zap.Logger
}

func NewAdminReferralClient(transport *Transport, logger *zap.Logger) contracts.AdminReferralClient {
	return &adminReferralClient{
		Transport: transport,
		Log:       logger,
	}
}

var adminReferralNotFound = &notFound{constvars.ErrClientReferralNotFound, constvars.RecoveryPathAdminReferrals}

func (c *adminReferralClient) referralCall(method, referralID, suffix string) call {
	return call{
		method:     method,
		path:       "/admin/referrals/" + escape(referralID) + suffix,
		resource:   resourceReferral,
		resourceID: referralID,
		notFound:   adminReferralNotFound,
	}
}

// ListReferrals passes status through to the backend when set.
func (c *adminReferralClient) ListReferrals(ctx context.Context, status string) ([]models.Referral, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("adminReferralClient.ListReferrals called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, status),
	)

	var query url.Values
	if status != "" {
		query = url.Values{constvars.QueryParamStatus: []string{status}}
	}

	data, _, err := c.Transport.sendBytes(ctx, call{
		method:   constvars.MethodGet,
		path:     "/admin/referrals",
		query:    query,
		resource: resourceReferral,
	})
	if err != nil {
		c.Log.Error("adminReferralClient.ListReferrals error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	referrals, err := decodeList[models.Referral](data)
	if err != nil {
		return nil, exceptions.ErrBackendDecodeResponse(err, resourceReferral)
	}
	c.Log.Debug("adminReferralClient.ListReferrals succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(referrals)),
	)
	return referrals, nil
}

func (c *adminReferralClient) FindReferralByID(ctx context.Context, referralID string) (*models.Referral, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("adminReferralClient.FindReferralByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)

	data, _, err := c.Transport.sendBytes(ctx, c.referralCall(constvars.MethodGet, referralID, ""))
	if err != nil {
		c.Log.Error("adminReferralClient.FindReferralByID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return nil, err
	}
	return decodeReferral(data)
}

func (c *adminReferralClient) TriggerProcessing(ctx context.Context, referralID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("adminReferralClient.TriggerProcessing called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)

	err := c.Transport.sendJSON(ctx, c.referralCall(constvars.MethodPost, referralID, "/process"), nil)
	if err != nil {
		c.Log.Error("adminReferralClient.TriggerProcessing error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// MakeDecision returns the updated referral, or nil when the backend
// replied without one.
func (c *adminReferralClient) MakeDecision(ctx context.Context, referralID string, decision models.ReferralDecision) (*models.Referral, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("adminReferralClient.MakeDecision called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
		zap.String(constvars.LoggingDecisionKey, decision.Decision),
	)

	request := c.referralCall(constvars.MethodPost, referralID, "/decision")
	request.body = decision
	data, _, err := c.Transport.sendBytes(ctx, request)
	if err != nil {
		c.Log.Error("adminReferralClient.MakeDecision error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("adminReferralClient.MakeDecision succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)
	return decodeReferral(data)
}

// UpdateExtractedData replaces the whole extracted_data document.
func (c *adminReferralClient) UpdateExtractedData(ctx context.Context, referralID string, extractedData []byte) (*models.Referral, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("adminReferralClient.UpdateExtractedData called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)

	request := c.referralCall(constvars.MethodPatch, referralID, "")
	request.body = map[string]json.RawMessage{"extracted_data": extractedData}
	data, _, err := c.Transport.sendBytes(ctx, request)
	if err != nil {
		c.Log.Error("adminReferralClient.UpdateExtractedData error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return nil, err
	}
	return decodeReferral(data)
}

func (c *adminReferralClient) FetchPDF(ctx context.Context, referralID string, preview bool) (*models.BinaryPayload, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("adminReferralClient.FetchPDF called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)

	request := c.referralCall(constvars.MethodGet, referralID, "/pdf")
	if preview {
		request.query = url.Values{constvars.QueryParamPreview: []string{"true"}}
	}
	data, header, err := c.Transport.sendBytes(ctx, request)
	if err != nil {
		c.Log.Error("adminReferralClient.FetchPDF error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return nil, err
	}

	contentType := header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = constvars.MIMEApplicationPDF
	}
	return &models.BinaryPayload{
		ContentType: contentType,
		Disposition: header.Get(constvars.HeaderContentDisposition),
		Body:        data,
	}, nil
}

func (c *adminReferralClient) SubmitPA(ctx context.Context, referralID string, submission models.PASubmission) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("adminReferralClient.SubmitPA called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)

	request := c.referralCall(constvars.MethodPost, referralID, "/pa/submit")
	request.body = submission
	if err := c.Transport.sendJSON(ctx, request, nil); err != nil {
		c.Log.Error("adminReferralClient.SubmitPA error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return err
	}

	c.Log.Info("adminReferralClient.SubmitPA succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)
	return nil
}

func (c *adminReferralClient) RecordPADecision(ctx context.Context, referralID string, decision models.PADecision) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("adminReferralClient.RecordPADecision called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
		zap.String(constvars.LoggingDecisionKey, decision.Decision),
	)

	request := c.referralCall(constvars.MethodPost, referralID, "/pa/decision")
	request.body = decision
	if err := c.Transport.sendJSON(ctx, request, nil); err != nil {
		c.Log.Error("adminReferralClient.RecordPADecision error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return err
	}

	c.Log.Info("adminReferralClient.RecordPADecision succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
		zap.String(constvars.LoggingDecisionKey, decision.Decision),
	)
	return nil
}

func (c *adminReferralClient) ListBlockedReferrals(ctx context.Context) ([]models.BlockedReferral, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("adminReferralClient.ListBlockedReferrals called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	data, _, err := c.Transport.sendBytes(ctx, call{
		method:   constvars.MethodGet,
		path:     "/admin/referrals/blocked",
		resource: resourceReferral,
	})
	if err != nil {
		c.Log.Error("adminReferralClient.ListBlockedReferrals error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	blocked, err := decodeList[models.BlockedReferral](data)
	if err != nil {
		return nil, exceptions.ErrBackendDecodeResponse(err, resourceReferral)
	}
	return blocked, nil
}

func (c *adminReferralClient) ReassignPharmacy(ctx context.Context, referralID string, reassignment models.PharmacyReassignment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("adminReferralClient.ReassignPharmacy called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
		zap.String(constvars.LoggingPharmacyIDKey, reassignment.NewPharmacyID),
	)

	request := c.referralCall(constvars.MethodPost, referralID, "/reassign-pharmacy")
	request.body = reassignment
	if err := c.Transport.sendJSON(ctx, request, nil); err != nil {
		c.Log.Error("adminReferralClient.ReassignPharmacy error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
