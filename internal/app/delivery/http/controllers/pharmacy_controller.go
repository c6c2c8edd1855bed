package controllers

import (
	"context"
	"net/http"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/exceptions"
	"referral-portal-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const queryParamActive = "active"

type PharmacyController struct {
	Log             *zap.Logger
	PharmacyUsecase contracts.PharmacyUsecase
}

func NewPharmacyController(logger *zap.Logger, pharmacyUsecase contracts.PharmacyUsecase) *PharmacyController {
	return &PharmacyController{
		Log:             logger,
		PharmacyUsecase: pharmacyUsecase,
	}
}

// ListPharmacies returns every pharmacy, or only active ones with ?active=true.
func (ctrl *PharmacyController) ListPharmacies(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	list, err := ctrl.PharmacyUsecase.ListPharmacies(ctx, utils.QueryBool(r, queryParamActive))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPharmaciesSuccessMessage, list)
}

func (ctrl *PharmacyController) FindPharmacy(w http.ResponseWriter, r *http.Request) {
	pharmacyID, ok := urlParam(ctrl.Log, w, r, constvars.URLParamPharmacyID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	pharmacy, err := ctrl.PharmacyUsecase.FindPharmacy(ctx, pharmacyID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPharmacySuccessMessage, pharmacy)
}

func (ctrl *PharmacyController) CreatePharmacy(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	request, err := ctrl.bindPharmacy(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	pharmacy, err := ctrl.PharmacyUsecase.CreatePharmacy(ctx, session, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreatePharmacySuccessMessage, pharmacy)
}

func (ctrl *PharmacyController) UpdatePharmacy(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	pharmacyID, ok := urlParam(ctrl.Log, w, r, constvars.URLParamPharmacyID)
	if !ok {
		return
	}
	request, err := ctrl.bindPharmacy(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	pharmacy, err := ctrl.PharmacyUsecase.UpdatePharmacy(ctx, session, pharmacyID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdatePharmacySuccessMessage, pharmacy)
}

func (ctrl *PharmacyController) bindPharmacy(r *http.Request) (*requests.Pharmacy, error) {
	request := new(requests.Pharmacy)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	utils.SanitizePharmacyRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	return request, nil
}
