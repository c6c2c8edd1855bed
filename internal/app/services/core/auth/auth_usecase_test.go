package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/app/contracts/mocks"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var frozenNow = time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

type authFixture struct {
	users      *mocks.UserRepository
	sessions   *mocks.SessionService
	tokens     *mocks.TokenManager
	limiter    *mocks.LoginLimiter
	authorizer *mocks.Authorizer
	recorder   *mocks.ActivityRecorder
	clock      *clock.ManagedClock
	usecase    *authUsecase
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:      new(mocks.UserRepository),
		sessions:   new(mocks.SessionService),
		tokens:     new(mocks.TokenManager),
		limiter:    new(mocks.LoginLimiter),
		authorizer: new(mocks.Authorizer),
		recorder:   new(mocks.ActivityRecorder),
		clock:      clock.NewManaged(frozenNow),
	}
	f.recorder.On("Record", mock.Anything, mock.Anything).Return()
	cfg := &config.InternalConfig{JWT: config.AppJWT{Secret: "secret", ExpTimeInHour: 8}}
	f.usecase = NewAuthUsecase(f.users, f.sessions, f.tokens, f.limiter, f.authorizer, f.recorder, cfg, f.clock, zap.NewNop()).(*authUsecase)
	return f
}

func hashed(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func clinicUser(t *testing.T) *models.PortalUser {
	return &models.PortalUser{
		ID:           "65f000000000000000000001",
		Email:        "nurse@riverside.test",
		Name:         "Riverside Nurse",
		PasswordHash: hashed(t, "correct-horse"),
		Role:         constvars.RoleClinicUser,
		ClinicName:   "Riverside Clinic",
	}
}

func TestLogin(t *testing.T) {
	t.Run("creates a session and token", func(t *testing.T) {
		f := newAuthFixture()
		user := clinicUser(t)
		f.limiter.On("Allow", mock.Anything, "nurse@riverside.test").Return(true, 0, nil)
		f.users.On("FindByEmail", mock.Anything, "nurse@riverside.test").Return(user, nil)
		f.sessions.On("CreateSession", mock.Anything, mock.AnythingOfType("*models.Session"), 8*time.Hour).Return(nil)
		f.tokens.On("CreateToken", mock.Anything, mock.AnythingOfType("string")).Return("signed-token", nil)
		f.users.On("UpdateLastLogin", mock.Anything, user.ID).Return(nil)
		f.authorizer.On("PermissionsFor", constvars.RoleClinicUser).Return([]string{"GET /api/v1/clinic/referrals"}, nil)

		result, err := f.usecase.Login(context.Background(), &requests.Login{Email: "  Nurse@Riverside.test ", Password: "correct-horse"})
		require.NoError(t, err)

		assert.Equal(t, "signed-token", result.Token)
		assert.Equal(t, frozenNow.Add(8*time.Hour), result.ExpiresAt)
		assert.Equal(t, "Riverside Clinic", result.User.ClinicName)
		assert.Equal(t, []string{"GET /api/v1/clinic/referrals"}, result.User.Permissions)

		session := f.sessions.Calls[0].Arguments.Get(1).(*models.Session)
		assert.NotEmpty(t, session.SessionID)
		assert.Equal(t, session.SessionID, f.tokens.Calls[0].Arguments.String(1))
		assert.Equal(t, user.ID, session.UserID)

		require.Len(t, f.recorder.Recorded, 1)
		assert.Equal(t, constvars.AuditActionLogin, f.recorder.Recorded[0].Action)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture()
		f.limiter.On("Allow", mock.Anything, mock.Anything).Return(true, 0, nil)
		f.users.On("FindByEmail", mock.Anything, mock.Anything).Return(clinicUser(t), nil)

		_, err := f.usecase.Login(context.Background(), &requests.Login{Email: "nurse@riverside.test", Password: "wrong"})
		require.Error(t, err)
		assert.Equal(t, constvars.StatusUnauthorized, exceptions.StatusCodeOf(err))
		f.sessions.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown email looks like a wrong password", func(t *testing.T) {
		f := newAuthFixture()
		f.limiter.On("Allow", mock.Anything, mock.Anything).Return(true, 0, nil)
		f.users.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, nil)

		_, err := f.usecase.Login(context.Background(), &requests.Login{Email: "ghost@riverside.test", Password: "x"})
		require.Error(t, err)
		assert.Equal(t, constvars.StatusUnauthorized, exceptions.StatusCodeOf(err))
	})

	t.Run("throttled before the user store is read", func(t *testing.T) {
		f := newAuthFixture()
		f.limiter.On("Allow", mock.Anything, mock.Anything).Return(false, 120, nil)

		_, err := f.usecase.Login(context.Background(), &requests.Login{Email: "nurse@riverside.test", Password: "correct-horse"})
		require.Error(t, err)
		assert.Equal(t, constvars.StatusTooManyRequests, exceptions.StatusCodeOf(err))
		f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("last login failure does not fail the login", func(t *testing.T) {
		f := newAuthFixture()
		user := clinicUser(t)
		f.limiter.On("Allow", mock.Anything, mock.Anything).Return(true, 0, nil)
		f.users.On("FindByEmail", mock.Anything, mock.Anything).Return(user, nil)
		f.sessions.On("CreateSession", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.tokens.On("CreateToken", mock.Anything, mock.Anything).Return("signed-token", nil)
		f.users.On("UpdateLastLogin", mock.Anything, user.ID).Return(errors.New("mongo down"))
		f.authorizer.On("PermissionsFor", mock.Anything).Return([]string{}, nil)

		result, err := f.usecase.Login(context.Background(), &requests.Login{Email: user.Email, Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, "signed-token", result.Token)
	})
}

func TestAuthenticate(t *testing.T) {
	live := &models.Session{SessionID: "sess-1", Role: constvars.RoleInternalAdmin, ExpiresAt: frozenNow.Add(time.Hour)}

	t.Run("valid token", func(t *testing.T) {
		f := newAuthFixture()
		f.tokens.On("VerifyToken", mock.Anything, "token").Return("sess-1", nil)
		f.sessions.On("GetSession", mock.Anything, "sess-1").Return(live, nil)

		session, err := f.usecase.Authenticate(context.Background(), "token")
		require.NoError(t, err)
		assert.Equal(t, live, session)
	})

	t.Run("logged out session", func(t *testing.T) {
		f := newAuthFixture()
		f.tokens.On("VerifyToken", mock.Anything, "token").Return("sess-1", nil)
		f.sessions.On("GetSession", mock.Anything, "sess-1").Return(nil, exceptions.ErrSessionNotFound(nil))

		_, err := f.usecase.Authenticate(context.Background(), "token")
		assert.Equal(t, constvars.StatusUnauthorized, exceptions.StatusCodeOf(err))
	})

	t.Run("expired session", func(t *testing.T) {
		f := newAuthFixture()
		f.tokens.On("VerifyToken", mock.Anything, "token").Return("sess-1", nil)
		f.sessions.On("GetSession", mock.Anything, "sess-1").Return(live, nil)
		f.clock.WarpForward(2 * time.Hour)

		_, err := f.usecase.Authenticate(context.Background(), "token")
		assert.Equal(t, constvars.StatusUnauthorized, exceptions.StatusCodeOf(err))
	})

	t.Run("bad token never reaches redis", func(t *testing.T) {
		f := newAuthFixture()
		f.tokens.On("VerifyToken", mock.Anything, "bad").Return("", exceptions.ErrTokenInvalidOrExpired(nil))

		_, err := f.usecase.Authenticate(context.Background(), "bad")
		require.Error(t, err)
		f.sessions.AssertNotCalled(t, "GetSession", mock.Anything, mock.Anything)
	})
}

func TestLogout(t *testing.T) {
	f := newAuthFixture()
	f.sessions.On("DeleteSession", mock.Anything, "sess-1").Return(nil)

	require.NoError(t, f.usecase.Logout(context.Background(), &models.Session{SessionID: "sess-1"}))
	f.sessions.AssertExpectations(t)
}

func TestMe(t *testing.T) {
	session := &models.Session{SessionID: "sess-1", UserID: "65f000000000000000000001", Email: "nurse@riverside.test", Role: constvars.RoleClinicUser, ClinicName: "Riverside Clinic"}

	t.Run("live user", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByID", mock.Anything, session.UserID).Return(clinicUser(t), nil)
		f.authorizer.On("PermissionsFor", constvars.RoleClinicUser).Return([]string{"GET /api/v1/referrals"}, nil)

		me, err := f.usecase.Me(context.Background(), session)
		require.NoError(t, err)
		assert.Equal(t, "Riverside Clinic", me.ClinicName)
		assert.Equal(t, []string{"GET /api/v1/referrals"}, me.Permissions)
	})

	t.Run("removed user", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByID", mock.Anything, session.UserID).Return(nil, nil)

		_, err := f.usecase.Me(context.Background(), session)
		require.Error(t, err)
		assert.Equal(t, constvars.StatusUnauthorized, exceptions.StatusCodeOf(err))
		assert.Contains(t, err.Error(), constvars.ErrDevUserNotExists)
		f.authorizer.AssertNotCalled(t, "PermissionsFor", mock.Anything)
	})

	t.Run("lookup failure", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByID", mock.Anything, session.UserID).Return(nil, errors.New("mongo down"))

		_, err := f.usecase.Me(context.Background(), session)
		require.EqualError(t, err, "mongo down")
	})
}

func TestCreatePortalUser(t *testing.T) {
	t.Run("admin drops clinic name", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.PortalUser")).Return("65f000000000000000000009", nil)

		created, err := f.usecase.CreatePortalUser(context.Background(), &requests.CreatePortalUser{
			Email:      "Ops@Portal.test",
			Password:   "long-enough",
			Name:       "Ops",
			Role:       constvars.RoleInternalAdmin,
			ClinicName: "Riverside Clinic",
		})
		require.NoError(t, err)
		assert.Equal(t, "ops@portal.test", created.Email)
		assert.Empty(t, created.ClinicName)

		stored := f.users.Calls[0].Arguments.Get(1).(*models.PortalUser)
		assert.NotEqual(t, "long-enough", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("long-enough")))
		assert.Equal(t, frozenNow, stored.CreatedAt)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("CreateUser", mock.Anything, mock.Anything).Return("", exceptions.ErrEmailAlreadyExist(nil))

		_, err := f.usecase.CreatePortalUser(context.Background(), &requests.CreatePortalUser{
			Email: "ops@portal.test", Password: "long-enough", Name: "Ops", Role: constvars.RoleInternalAdmin,
		})
		require.Error(t, err)
	})
}
