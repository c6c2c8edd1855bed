package auth

import (
	"context"
	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/dto/responses"
	"referral-portal-service/internal/pkg/exceptions"
	"referral-portal-service/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

type authUsecase struct {
	UserRepository contracts.UserRepository
	SessionService contracts.SessionService
	TokenManager   contracts.TokenManager
	LoginLimiter   contracts.LoginLimiter
	Authorizer     contracts.Authorizer
	Recorder       contracts.ActivityRecorder
	InternalConfig *config.InternalConfig
	Clock          clock.Clock
	Log            *zap.Logger
}

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	sessionService contracts.SessionService,
	tokenManager contracts.TokenManager,
	loginLimiter contracts.LoginLimiter,
	authorizer contracts.Authorizer,
	recorder contracts.ActivityRecorder,
	internalConfig *config.InternalConfig,
	clk clock.Clock,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		UserRepository: userRepository,
		SessionService: sessionService,
		TokenManager:   tokenManager,
		LoginLimiter:   loginLimiter,
		Authorizer:     authorizer,
		Recorder:       recorder,
		InternalConfig: internalConfig,
		Clock:          clk,
		Log:            logger,
	}
}

// Login throttles per email before touching the user store, so a locked out
// address is rejected even with the right password.
func (uc *authUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	email := strings.ToLower(strings.TrimSpace(request.Email))
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, email),
	)

	allowed, retryAfter, err := uc.LoginLimiter.Allow(ctx, email)
	if err != nil {
		uc.Log.Error("authUsecase.Login error checking login limiter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !allowed {
		uc.Log.Warn("authUsecase.Login throttled",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEmailKey, email),
			zap.Int(constvars.LoggingRetryAfterKey, retryAfter),
		)
		return nil, exceptions.ErrLoginThrottled(nil, email)
	}

	user, err := uc.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		uc.Log.Error("authUsecase.Login error finding user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(request.Password, user.PasswordHash) {
		uc.Log.Info("authUsecase.Login invalid credentials",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEmailKey, email),
		)
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}

	now := uc.Clock.Now().UTC()
	ttl := time.Duration(uc.InternalConfig.JWT.ExpTimeInHour) * time.Hour
	session := &models.Session{
		SessionID:  utils.GenerateSessionID(),
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       user.Role,
		ClinicName: user.ClinicName,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}

	if err := uc.SessionService.CreateSession(ctx, session, ttl); err != nil {
		uc.Log.Error("authUsecase.Login error creating session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	token, err := uc.TokenManager.CreateToken(ctx, session.SessionID)
	if err != nil {
		uc.Log.Error("authUsecase.Login error creating token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := uc.UserRepository.UpdateLastLogin(ctx, user.ID); err != nil {
		uc.Log.Warn("authUsecase.Login failed to update last login",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	me, err := uc.buildMe(session)
	if err != nil {
		return nil, err
	}

	uc.Recorder.Record(ctx, models.Activity{
		Actor:    session,
		Action:   constvars.AuditActionLogin,
		EntityID: user.ID,
	})

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return &responses.Login{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      *me,
	}, nil
}

func (uc *authUsecase) Logout(ctx context.Context, session *models.Session) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := uc.SessionService.DeleteSession(ctx, session.SessionID); err != nil {
		uc.Log.Error("authUsecase.Logout error deleting session from Redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("authUsecase.Logout succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

// Me re-reads the account behind the session so a removed user stops
// resolving while the session is still live.
func (uc *authUsecase) Me(ctx context.Context, session *models.Session) (*responses.Me, error) {
	user, err := uc.UserRepository.FindByID(ctx, session.UserID)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("authUsecase.Me error finding user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExists(nil)
	}
	return uc.buildMe(session)
}

// Authenticate resolves a bearer token to its live session. A token whose
// session was deleted by logout no longer authenticates.
func (uc *authUsecase) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	sessionID, err := uc.TokenManager.VerifyToken(ctx, token)
	if err != nil {
		uc.Log.Info("authUsecase.Authenticate invalid token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	session, err := uc.SessionService.GetSession(ctx, sessionID)
	if err != nil {
		uc.Log.Info("authUsecase.Authenticate session lookup failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if uc.Clock.Now().After(session.ExpiresAt) {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return session, nil
}

func (uc *authUsecase) CreatePortalUser(ctx context.Context, request *requests.CreatePortalUser) (*responses.PortalUser, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.CreatePortalUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	user := &models.PortalUser{
		Email:        strings.ToLower(strings.TrimSpace(request.Email)),
		Name:         strings.TrimSpace(request.Name),
		PasswordHash: hash,
		Role:         request.Role,
	}
	if request.Role == constvars.RoleClinicUser {
		user.ClinicName = strings.TrimSpace(request.ClinicName)
	}
	user.SetCreatedAtUpdatedAt(uc.Clock.Now().UTC())

	userID, err := uc.UserRepository.CreateUser(ctx, user)
	if err != nil {
		uc.Log.Error("authUsecase.CreatePortalUser error creating user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("authUsecase.CreatePortalUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return &responses.PortalUser{
		ID:         userID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       user.Role,
		ClinicName: user.ClinicName,
	}, nil
}

func (uc *authUsecase) buildMe(session *models.Session) (*responses.Me, error) {
	permissions, err := uc.Authorizer.PermissionsFor(session.Role)
	if err != nil {
		return nil, exceptions.ErrRBACEnforce(err)
	}
	return &responses.Me{
		UserID:      session.UserID,
		Email:       session.Email,
		Name:        session.Name,
		Role:        session.Role,
		ClinicName:  session.ClinicName,
		Permissions: permissions,
	}, nil
}
