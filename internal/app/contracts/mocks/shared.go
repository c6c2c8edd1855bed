package mocks

import (
	"context"
	"io"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/paworkflow"
	"time"

	"github.com/stretchr/testify/mock"
)

type RedisRepository struct {
	mock.Mock
}

func (m *RedisRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *RedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *RedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *RedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error) {
	args := m.Called(ctx, key, ttl)
	return args.Int(0), args.Error(1)
}

func (m *RedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *RedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	return m.Called(ctx, key, exp).Error(0)
}

type LockerService struct {
	mock.Mock
}

func (m *LockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *LockerService) Unlock(ctx context.Context, key, lockValue string) error {
	return m.Called(ctx, key, lockValue).Error(0)
}

func (m *LockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return m.Called(ctx, key, lockValue, expiration).Error(0)
}

type Storage struct {
	mock.Mock
}

func (m *Storage) UploadObject(ctx context.Context, file io.Reader, object models.StoredObject) (*models.StoredObject, error) {
	args := m.Called(ctx, file, object)
	stored, _ := args.Get(0).(*models.StoredObject)
	return stored, args.Error(1)
}

func (m *Storage) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	return m.Called(ctx, bucketName, objectName).Error(0)
}

func (m *Storage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiryTime)
	return args.String(0), args.Error(1)
}

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, queue string, event *models.DomainEvent) error {
	return m.Called(ctx, queue, event).Error(0)
}

type AuditRepository struct {
	mock.Mock
}

func (m *AuditRepository) Insert(ctx context.Context, event *models.AuditEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *AuditRepository) FindByReferralID(ctx context.Context, referralID string, limit int64) ([]models.AuditEvent, error) {
	args := m.Called(ctx, referralID, limit)
	events, _ := args.Get(0).([]models.AuditEvent)
	return events, args.Error(1)
}

// ActivityRecorder keeps every recorded activity for assertions.
type ActivityRecorder struct {
	mock.Mock
	Recorded []models.Activity
}

func (m *ActivityRecorder) Record(ctx context.Context, activity models.Activity) {
	m.Recorded = append(m.Recorded, activity)
	m.Called(ctx, activity)
}

// EventTypes lists the event types recorded so far, in order.
func (m *ActivityRecorder) EventTypes() []string {
	types := make([]string, 0, len(m.Recorded))
	for _, activity := range m.Recorded {
		types = append(types, activity.EventType)
	}
	return types
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*models.PortalUser, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.PortalUser)
	return user, args.Error(1)
}

func (m *UserRepository) FindByID(ctx context.Context, userID string) (*models.PortalUser, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.PortalUser)
	return user, args.Error(1)
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.PortalUser) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepository) UpdateLastLogin(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type SessionService struct {
	mock.Mock
}

func (m *SessionService) CreateSession(ctx context.Context, session *models.Session, exp time.Duration) error {
	return m.Called(ctx, session, exp).Error(0)
}

func (m *SessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func (m *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) CreateToken(ctx context.Context, subject string) (string, error) {
	args := m.Called(ctx, subject)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) VerifyToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type LoginLimiter struct {
	mock.Mock
}

func (m *LoginLimiter) Allow(ctx context.Context, email string) (bool, int, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Int(1), args.Error(2)
}

type Authorizer struct {
	mock.Mock
}

func (m *Authorizer) Authorize(role, method, path string) (bool, error) {
	args := m.Called(role, method, path)
	return args.Bool(0), args.Error(1)
}

func (m *Authorizer) PermissionsFor(role string) ([]string, error) {
	args := m.Called(role)
	permissions, _ := args.Get(0).([]string)
	return permissions, args.Error(1)
}

type ListViewRepository struct {
	mock.Mock
}

func (m *ListViewRepository) Load(ctx context.Context, userID, listKey string) (*models.ListView, error) {
	args := m.Called(ctx, userID, listKey)
	view, _ := args.Get(0).(*models.ListView)
	return view, args.Error(1)
}

func (m *ListViewRepository) Save(ctx context.Context, userID, listKey string, view *models.ListView) error {
	return m.Called(ctx, userID, listKey, view).Error(0)
}

func (m *ListViewRepository) Delete(ctx context.Context, userID, listKey string) error {
	return m.Called(ctx, userID, listKey).Error(0)
}

type PAWorkflowRepository struct {
	mock.Mock
}

func (m *PAWorkflowRepository) Load(ctx context.Context, referralID, userID string) (*paworkflow.State, error) {
	args := m.Called(ctx, referralID, userID)
	state, _ := args.Get(0).(*paworkflow.State)
	return state, args.Error(1)
}

func (m *PAWorkflowRepository) Save(ctx context.Context, referralID, userID string, state *paworkflow.State) error {
	return m.Called(ctx, referralID, userID, state).Error(0)
}

func (m *PAWorkflowRepository) Delete(ctx context.Context, referralID, userID string) error {
	return m.Called(ctx, referralID, userID).Error(0)
}
