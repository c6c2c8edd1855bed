package controllers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/exceptions"
	"referral-portal-service/internal/pkg/utils"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	usecaseTimeout = 30 * time.Second
	// multipartOverhead leaves room for boundaries and form fields on top of
	// the file itself.
	multipartOverhead = 1 << 20
	multipartMemory   = 8 << 20
	megabyte          = 1 << 20
)

// sessionFromRequest returns the session stored by the Authenticate
// middleware, writing a 401 when it is missing.
func sessionFromRequest(log *zap.Logger, w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok || session == nil {
		utils.BuildErrorResponse(log, w, exceptions.ErrTokenMissing(nil))
		return nil, false
	}
	return session, true
}

// urlParam reads a chi path parameter, writing a 400 when it is blank.
func urlParam(log *zap.Logger, w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	if value == "" {
		utils.BuildErrorResponse(log, w, exceptions.ErrURLParamIDValidation(nil, name))
		return "", false
	}
	return value, true
}

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if err == context.DeadlineExceeded {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

// readUpload parses a multipart request with a single file field. The
// caller closes the returned file.
func readUpload(w http.ResponseWriter, r *http.Request, maxFileBytes int64) (models.UploadedDocument, multipart.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFileBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return models.UploadedDocument{}, nil, exceptions.ErrUploadTooLarge(err, maxFileBytes)
		}
		return models.UploadedDocument{}, nil, exceptions.ErrCannotParseMultipartForm(err)
	}

	file, header, err := r.FormFile(constvars.FormFieldFile)
	if err != nil {
		return models.UploadedDocument{}, nil, exceptions.ErrCannotParseMultipartForm(err)
	}

	contentType := header.Header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}
	return models.UploadedDocument{
		FileName:    header.Filename,
		ContentType: contentType,
		DocType:     strings.TrimSpace(r.FormValue(constvars.FormFieldDocType)),
		Size:        header.Size,
	}, file, nil
}
