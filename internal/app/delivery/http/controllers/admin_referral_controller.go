package controllers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/exceptions"
	"referral-portal-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// pdfTimeout is longer than usecaseTimeout because the backend renders
// the document on demand.
const pdfTimeout = 60 * time.Second

type AdminReferralController struct {
	Log                  *zap.Logger
	AdminReferralUsecase contracts.AdminReferralUsecase
}

func NewAdminReferralController(logger *zap.Logger, adminReferralUsecase contracts.AdminReferralUsecase) *AdminReferralController {
	return &AdminReferralController{
		Log:                  logger,
		AdminReferralUsecase: adminReferralUsecase,
	}
}

func (ctrl *AdminReferralController) ListReferrals(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	list, err := ctrl.AdminReferralUsecase.ListReferrals(ctx, session, listReferralsQuery(r))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetReferralsSuccessMessage, list)
}

func (ctrl *AdminReferralController) FindReferral(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	referralID, ok := urlParam(ctrl.Log, w, r, constvars.URLParamReferralID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	detail, err := ctrl.AdminReferralUsecase.FindReferral(ctx, session, referralID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetReferralSuccessMessage, detail)
}

func (ctrl *AdminReferralController) TriggerProcessing(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	referralID, ok := urlParam(ctrl.Log, w, r, constvars.URLParamReferralID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	detail, err := ctrl.AdminReferralUsecase.TriggerProcessing(ctx, session, referralID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusAccepted, constvars.ProcessReferralSuccessMessage, detail)
}

func (ctrl *AdminReferralController) MakeDecision(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.RequestIDFromRequest(r)
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	referralID, ok := urlParam(ctrl.Log, w, r, constvars.URLParamReferralID)
	if !ok {
		return
	}

	request := new(requests.ReferralDecision)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	detail, err := ctrl.AdminReferralUsecase.MakeDecision(ctx, session, referralID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "referral_decided", requestID,
		zap.String(constvars.LoggingReferralIDKey, referralID),
		zap.String(constvars.LoggingDecisionKey, request.Decision),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RecordReferralDecisionSuccessMessage, detail)
}

// UpdateExtractedData forwards the body untouched; the usecase checks it is
// a JSON object and sends it as a full replace.
func (ctrl *AdminReferralController) UpdateExtractedData(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	referralID, ok := urlParam(ctrl.Log, w, r, constvars.URLParamReferralID)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if !json.Valid(bytes.TrimSpace(body)) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrExtractedDataInvalid(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	detail, err := ctrl.AdminReferralUsecase.UpdateExtractedData(ctx, session, referralID, body)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateExtractedDataSuccessMessage, detail)
}

func (ctrl *AdminReferralController) FetchPDF(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	referralID, ok := urlParam(ctrl.Log, w, r, constvars.URLParamReferralID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pdfTimeout)
	defer cancel()

	payload, err := ctrl.AdminReferralUsecase.FetchPDF(ctx, session, referralID, utils.QueryBool(r, constvars.QueryParamPreview))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	if err := utils.BuildBinaryResponse(w, payload.ContentType, payload.Disposition, bytes.NewReader(payload.Body)); err != nil {
		ctrl.Log.Warn("AdminReferralController.FetchPDF client went away",
			zap.String(constvars.LoggingRequestIDKey, utils.RequestIDFromRequest(r)),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
	}
}

func (ctrl *AdminReferralController) ListBlockedReferrals(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	blocked, err := ctrl.AdminReferralUsecase.ListBlockedReferrals(ctx, session)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetBlockedReferralsSuccessMessage, blocked)
}

func (ctrl *AdminReferralController) ReassignPharmacy(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	referralID, ok := urlParam(ctrl.Log, w, r, constvars.URLParamReferralID)
	if !ok {
		return
	}

	request := new(requests.ReassignPharmacy)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	if err := ctrl.AdminReferralUsecase.ReassignPharmacy(ctx, session, referralID, request); err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "pharmacy_reassigned", utils.RequestIDFromRequest(r),
		zap.String(constvars.LoggingReferralIDKey, referralID),
		zap.String(constvars.LoggingPharmacyIDKey, request.NewPharmacyID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReassignPharmacySuccessMessage, nil)
}

func (ctrl *AdminReferralController) AuditTrail(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	referralID, ok := urlParam(ctrl.Log, w, r, constvars.URLParamReferralID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	events, err := ctrl.AdminReferralUsecase.AuditTrail(ctx, session, referralID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAuditTrailSuccessMessage, events)
}
