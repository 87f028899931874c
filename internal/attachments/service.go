package attachments

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"healthoffice-backend/internal/applications"
	"healthoffice-backend/internal/audit"
	"healthoffice-backend/internal/shared/storage/object"
)

// Service stores application documents and their metadata.
type Service struct {
	Repo         Repo
	Applications applications.Repo
	Store        object.ObjectStore
	Provider     string
	Audit        *audit.Service
}

// NewService constructs an attachments Service. provider names the backing
// object store kind recorded on each row ("local" or "s3").
func NewService(repo Repo, appRepo applications.Repo, store object.ObjectStore, provider string, auditSvc *audit.Service) *Service {
	return &Service{Repo: repo, Applications: appRepo, Store: store, Provider: provider, Audit: auditSvc}
}

// Upload streams a document into the object store and records its metadata
// under the given application.
func (s *Service) Upload(ctx context.Context, applicationID, uploadedByUserID, fileName string, r io.Reader) (Attachment, error) {
	if strings.TrimSpace(fileName) == "" {
		return Attachment{}, fmt.Errorf("attachments: %w: file name is required", ErrInvalidInput)
	}

	app, err := s.Applications.GetByID(ctx, applicationID)
	if err != nil {
		return Attachment{}, err
	}

	storageKey, sizeBytes, mimeType, err := s.Store.Save(ctx, app.ID, fileName, r)
	if err != nil {
		return Attachment{}, fmt.Errorf("attachments: store object: %w", err)
	}

	a := Attachment{
		ID:               uuid.NewString(),
		ApplicationID:    app.ID,
		UploadedByUserID: uploadedByUserID,
		FileName:         fileName,
		MimeType:         mimeType,
		SizeBytes:        sizeBytes,
		StorageProvider:  s.Provider,
		StorageKey:       storageKey,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return Attachment{}, err
	}

	if err := s.Audit.LogUser(ctx, uploadedByUserID, "UPLOAD_ATTACHMENT", "APPLICATION", app.ID, fileName); err != nil {
		return Attachment{}, err
	}
	return a, nil
}

// GetByID returns attachment metadata.
func (s *Service) GetByID(ctx context.Context, id string) (Attachment, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListByApplication returns an application's attachments.
func (s *Service) ListByApplication(ctx context.Context, applicationID string) ([]Attachment, error) {
	return s.Repo.ListByApplication(ctx, applicationID)
}

// OpenContent returns a reader over the stored bytes plus the metadata row.
// The caller is responsible for closing the reader.
func (s *Service) OpenContent(ctx context.Context, id string) (Attachment, io.ReadCloser, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Attachment{}, nil, err
	}
	rc, err := s.Store.Open(ctx, a.StorageKey)
	if err != nil {
		return Attachment{}, nil, fmt.Errorf("attachments: open object: %w", err)
	}
	return a, rc, nil
}
