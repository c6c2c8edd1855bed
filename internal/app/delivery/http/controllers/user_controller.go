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

// UserController lets an internal admin provision portal accounts.
type UserController struct {
	Log         *zap.Logger
	AuthUsecase contracts.AuthUsecase
}

func NewUserController(logger *zap.Logger, authUsecase contracts.AuthUsecase) *UserController {
	return &UserController{
		Log:         logger,
		AuthUsecase: authUsecase,
	}
}

func (ctrl *UserController) CreatePortalUser(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.CreatePortalUser)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeCreatePortalUserRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	user, err := ctrl.AuthUsecase.CreatePortalUser(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "portal_user_created", utils.RequestIDFromRequest(r),
		zap.String(constvars.LoggingUserIDKey, user.ID),
		zap.String("created_by", session.UserID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreatePortalUserSuccessMessage, user)
}
