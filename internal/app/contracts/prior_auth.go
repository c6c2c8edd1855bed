package contracts

import (
	"context"
	"io"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/dto/responses"
	"referral-portal-service/internal/pkg/paworkflow"
)

type PriorAuthUsecase interface {
	GetWorkflow(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error)
	Edit(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error)
	Cancel(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error)
	SelectDecision(ctx context.Context, session *models.Session, referralID string, request *requests.PASelectDecision) (*responses.PAWorkflow, error)
	ReplaceDraft(ctx context.Context, session *models.Session, referralID string, request *requests.PADraft) (*responses.PAWorkflow, error)
	UploadLetter(ctx context.Context, session *models.Session, referralID string, letter models.UploadedDocument, file io.Reader) (*responses.PAWorkflow, error)
	RemoveLetter(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error)
	Save(ctx context.Context, session *models.Session, referralID string, request *requests.PASave) (*responses.PAWorkflow, error)
}

// PAWorkflowRepository stores one workflow per referral and user.
type PAWorkflowRepository interface {
	Load(ctx context.Context, referralID, userID string) (*paworkflow.State, error)
	Save(ctx context.Context, referralID, userID string, state *paworkflow.State) error
	Delete(ctx context.Context, referralID, userID string) error
}
