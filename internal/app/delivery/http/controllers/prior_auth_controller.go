package controllers

import (
	"context"
	"net/http"
	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/dto/responses"
	"referral-portal-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

// PriorAuthController exposes the per referral PA workflow. Every handler
// answers with the full workflow so the client can re-render from it.
type PriorAuthController struct {
	Log              *zap.Logger
	PriorAuthUsecase contracts.PriorAuthUsecase
	InternalConfig   *config.InternalConfig
}

func NewPriorAuthController(logger *zap.Logger, priorAuthUsecase contracts.PriorAuthUsecase, internalConfig *config.InternalConfig) *PriorAuthController {
	return &PriorAuthController{
		Log:              logger,
		PriorAuthUsecase: priorAuthUsecase,
		InternalConfig:   internalConfig,
	}
}

type workflowStep func(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error)

func (ctrl *PriorAuthController) run(w http.ResponseWriter, r *http.Request, message string, step workflowStep) {
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

	workflow, err := step(ctx, session, referralID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, workflow)
}

func (ctrl *PriorAuthController) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	ctrl.run(w, r, constvars.GetPAWorkflowSuccessMessage, ctrl.PriorAuthUsecase.GetWorkflow)
}

func (ctrl *PriorAuthController) Edit(w http.ResponseWriter, r *http.Request) {
	ctrl.run(w, r, constvars.UpdatePAWorkflowSuccessMessage, ctrl.PriorAuthUsecase.Edit)
}

func (ctrl *PriorAuthController) Cancel(w http.ResponseWriter, r *http.Request) {
	ctrl.run(w, r, constvars.UpdatePAWorkflowSuccessMessage, ctrl.PriorAuthUsecase.Cancel)
}

func (ctrl *PriorAuthController) RemoveLetter(w http.ResponseWriter, r *http.Request) {
	ctrl.run(w, r, constvars.RemovePALetterSuccessMessage, ctrl.PriorAuthUsecase.RemoveLetter)
}

func (ctrl *PriorAuthController) SelectDecision(w http.ResponseWriter, r *http.Request) {
	request := new(requests.PASelectDecision)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	ctrl.run(w, r, constvars.UpdatePAWorkflowSuccessMessage, func(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error) {
		return ctrl.PriorAuthUsecase.SelectDecision(ctx, session, referralID, request)
	})
}

func (ctrl *PriorAuthController) ReplaceDraft(w http.ResponseWriter, r *http.Request) {
	request := new(requests.PADraft)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	ctrl.run(w, r, constvars.UpdatePAWorkflowSuccessMessage, func(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error) {
		return ctrl.PriorAuthUsecase.ReplaceDraft(ctx, session, referralID, request)
	})
}

func (ctrl *PriorAuthController) UploadLetter(w http.ResponseWriter, r *http.Request) {
	limit := ctrl.InternalConfig.PAWorkflow.LetterMaxUploadSizeInMB * megabyte
	letter, file, err := readUpload(w, r, limit)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	defer file.Close()

	ctrl.run(w, r, constvars.UploadPALetterSuccessMessage, func(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error) {
		return ctrl.PriorAuthUsecase.UploadLetter(ctx, session, referralID, letter, file)
	})
}

func (ctrl *PriorAuthController) Save(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	request := new(requests.PASave)
	if r.ContentLength != 0 {
		if err := utils.DecodeAndValidate(r, request); err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, err)
			return
		}
	}

	ctrl.run(w, r, constvars.SavePAWorkflowSuccessMessage, func(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error) {
		workflow, err := ctrl.PriorAuthUsecase.Save(ctx, session, referralID, request)
		if err == nil {
			utils.LogBusinessEvent(ctrl.Log, "pa_saved", utils.RequestIDFromRequest(r),
				zap.String(constvars.LoggingReferralIDKey, referralID),
				zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			)
		}
		return workflow, err
	})
}
