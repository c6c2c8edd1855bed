package controllers

import (
	"context"
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

// documentMaxUploadBytes bounds referral documents forwarded to the backend.
const documentMaxUploadBytes = 25 * megabyte

type ClinicReferralController struct {
	Log                   *zap.Logger
	ClinicReferralUsecase contracts.ClinicReferralUsecase
}

func NewClinicReferralController(logger *zap.Logger, clinicReferralUsecase contracts.ClinicReferralUsecase) *ClinicReferralController {
	return &ClinicReferralController{
		Log:                   logger,
		ClinicReferralUsecase: clinicReferralUsecase,
	}
}

func (ctrl *ClinicReferralController) ListReferrals(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	list, err := ctrl.ClinicReferralUsecase.ListReferrals(ctx, session, listReferralsQuery(r))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetReferralsSuccessMessage, list)
}

func (ctrl *ClinicReferralController) FindReferral(w http.ResponseWriter, r *http.Request) {
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

	detail, err := ctrl.ClinicReferralUsecase.FindReferral(ctx, session, referralID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetReferralSuccessMessage, detail)
}

func (ctrl *ClinicReferralController) CreateReferral(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.RequestIDFromRequest(r)
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctrl.Log.Debug("Referral creation started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	request := new(requests.CreateReferral)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("Failed to parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeCreateReferralRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	detail, err := ctrl.ClinicReferralUsecase.CreateReferral(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("Failed to create referral",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "referral_created", requestID,
		zap.String(constvars.LoggingReferralIDKey, detail.Referral.ID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateReferralSuccessMessage, detail)
}

func (ctrl *ClinicReferralController) UploadDocument(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	referralID, ok := urlParam(ctrl.Log, w, r, constvars.URLParamReferralID)
	if !ok {
		return
	}

	document, file, err := readUpload(w, r, documentMaxUploadBytes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	uploaded, err := ctrl.ClinicReferralUsecase.UploadDocument(ctx, session, referralID, document, file)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "referral_document_uploaded", utils.RequestIDFromRequest(r),
		zap.String(constvars.LoggingReferralIDKey, referralID),
		zap.Int64("size", document.Size),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.UploadDocumentSuccessMessage, uploaded)
}

// listReferralsQuery keeps absent parameters nil so the saved list view
// fills them in.
func listReferralsQuery(r *http.Request) *requests.ListReferrals {
	query := &requests.ListReferrals{Reset: utils.QueryBool(r, constvars.QueryParamReset)}
	if value, ok := utils.QueryString(r, constvars.QueryParamSearch); ok {
		query.Search = &value
	}
	if value, ok := utils.QueryString(r, constvars.QueryParamStatus); ok {
		query.Status = &value
	}
	if value, ok := utils.QueryString(r, constvars.QueryParamClinic); ok {
		query.Clinic = &value
	}
	if value, ok := utils.QueryString(r, constvars.QueryParamPASort); ok {
		query.PASort = &value
	}
	if value, ok := utils.QueryInt(r, constvars.QueryParamPage); ok {
		query.Page = &value
	}
	if value, ok := utils.QueryInt(r, constvars.QueryParamPageSize); ok {
		query.PageSize = &value
	}
	return query
}
