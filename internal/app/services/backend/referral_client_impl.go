package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const resourceReferral = "referral"

type clinicReferralClient struct {
	Transport *Transport
	Log       *zap.Logger
}

func NewClinicReferralClient(transport *Transport, logger *zap.Logger) contracts.ClinicReferralClient {
	return &clinicReferralClient{
		Transport: transport,
		Log:       logger,
	}
}

func (c *clinicReferralClient) ListReferrals(ctx context.Context) ([]models.Referral, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("clinicReferralClient.ListReferrals called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	data, _, err := c.Transport.sendBytes(ctx, call{
		method:   constvars.MethodGet,
		path:     "/referrals",
		resource: resourceReferral,
	})
	if err != nil {
		c.Log.Error("clinicReferralClient.ListReferrals error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	referrals, err := decodeList[models.Referral](data)
	if err != nil {
		return nil, exceptions.ErrBackendDecodeResponse(err, resourceReferral)
	}

	c.Log.Debug("clinicReferralClient.ListReferrals succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(referrals)),
	)
	return referrals, nil
}

func (c *clinicReferralClient) FindReferralByID(ctx context.Context, referralID string) (*models.Referral, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("clinicReferralClient.FindReferralByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)

	data, _, err := c.Transport.sendBytes(ctx, call{
		method:     constvars.MethodGet,
		path:       "/referrals/" + escape(referralID),
		resource:   resourceReferral,
		resourceID: referralID,
		notFound:   &notFound{constvars.ErrClientReferralNotFound, constvars.RecoveryPathClinicReferrals},
	})
	if err != nil {
		c.Log.Error("clinicReferralClient.FindReferralByID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return nil, err
	}
	return decodeReferral(data)
}

func (c *clinicReferralClient) CreateReferral(ctx context.Context, request *requests.CreateReferral) (*models.Referral, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("clinicReferralClient.CreateReferral called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	data, _, err := c.Transport.sendBytes(ctx, call{
		method:   constvars.MethodPost,
		path:     "/referrals",
		body:     request,
		resource: resourceReferral,
	})
	if err != nil {
		c.Log.Error("clinicReferralClient.CreateReferral error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	referral, err := decodeReferral(data)
	if err != nil {
		return nil, err
	}
	if referral == nil {
		return nil, exceptions.ErrBackendDecodeResponse(fmt.Errorf("created referral has no id"), resourceReferral)
	}
	c.Log.Info("clinicReferralClient.CreateReferral succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referral.ID),
	)
	return referral, nil
}

// UploadDocument re-encodes the upload as multipart with the file and
// doc_type fields.
func (c *clinicReferralClient) UploadDocument(ctx context.Context, referralID string, document models.UploadedDocument, file io.Reader) (*models.ReferralDocument, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("clinicReferralClient.UploadDocument called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set(constvars.HeaderContentDisposition, fmt.Sprintf(`form-data; name=%q; filename=%q`, constvars.FormFieldFile, document.FileName))
	contentType := document.ContentType
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}
	header.Set(constvars.HeaderContentType, contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	if err := writer.WriteField(constvars.FormFieldDocType, document.DocType); err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	if err := writer.Close(); err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}

	uploaded := new(models.ReferralDocument)
	err = c.Transport.sendJSON(ctx, call{
		method:      constvars.MethodPost,
		path:        "/referrals/" + escape(referralID) + "/documents",
		rawBody:     body,
		contentType: writer.FormDataContentType(),
		resource:    resourceReferral,
		resourceID:  referralID,
		notFound:    &notFound{constvars.ErrClientReferralNotFound, constvars.RecoveryPathClinicReferrals},
	}, uploaded)
	if err != nil {
		c.Log.Error("clinicReferralClient.UploadDocument error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return nil, err
	}

	if uploaded.Type == "" {
		uploaded.Type = document.DocType
	}
	if uploaded.Name == "" {
		uploaded.Name = document.FileName
	}
	c.Log.Info("clinicReferralClient.UploadDocument succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)
	return uploaded, nil
}

// decodeReferral accepts a referral object or one wrapped as
// {"referral": {...}}. A reply without an id decodes to nil so callers
// can refetch.
func decodeReferral(data []byte) (*models.Referral, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var wrapped struct {
		Referral *models.Referral `json:"referral"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err == nil && wrapped.Referral != nil && wrapped.Referral.ID != "" {
		return wrapped.Referral, nil
	}

	referral := new(models.Referral)
	if err := json.Unmarshal(trimmed, referral); err != nil {
		return nil, exceptions.ErrBackendDecodeResponse(err, resourceReferral)
	}
	if referral.ID == "" {
		return nil, nil
	}
	return referral, nil
}
