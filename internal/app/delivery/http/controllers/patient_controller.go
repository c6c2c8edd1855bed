package controllers

import (
	"context"
	"net/http"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type PatientController struct {
	Log            *zap.Logger
	PatientUsecase contracts.PatientUsecase
}

func NewPatientController(logger *zap.Logger, patientUsecase contracts.PatientUsecase) *PatientController {
	return &PatientController{
		Log:            logger,
		PatientUsecase: patientUsecase,
	}
}

func (ctrl *PatientController) ListPatients(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}

	query := &requests.ListPatients{
		Search: r.URL.Query().Get(constvars.QueryParamSearch),
		Filter: r.URL.Query().Get(constvars.QueryParamFilter),
	}
	query.Page, _ = utils.QueryInt(r, constvars.QueryParamPage)
	query.PageSize, _ = utils.QueryInt(r, constvars.QueryParamPageSize)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	list, err := ctrl.PatientUsecase.ListPatients(ctx, session, query)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	pagination := utils.BuildPaginationResponse(list.Total, list.Page, list.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetPatientsSuccessMessage, pagination, list)
}

func (ctrl *PatientController) FindPatient(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	patientID, ok := urlParam(ctrl.Log, w, r, constvars.URLParamPatientID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	detail, err := ctrl.PatientUsecase.FindPatient(ctx, session, patientID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientSuccessMessage, detail)
}
