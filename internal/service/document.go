package service

import (
	"context"
	"time"

	"github.com/pathways-hq/pathways/internal/api/dto"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/s3"
	"github.com/pathways-hq/pathways/internal/types"
)

// DocumentService archives candidate documents in object storage and
// tracks their expiry.
type DocumentService interface {
	UploadDocument(ctx context.Context, req dto.UploadDocumentRequest) (*dto.DocumentResponse, error)
	GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error)
	ListDocuments(ctx context.Context, filter *types.DocumentFilter) (*dto.ListDocumentsResponse, error)
	DeleteDocument(ctx context.Context, id string) error
	RunExpiryScan(ctx context.Context, withinDays int, notify bool, notifyTo string) (*dto.ExpiryScanResponse, error)
}

type documentService struct {
	ServiceParams
}

func NewDocumentService(params ServiceParams) DocumentService {
	return &documentService{ServiceParams: params}
}

func (s *documentService) UploadDocument(ctx context.Context, req dto.UploadDocumentRequest) (*dto.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(req.Body) == 0 {
		return nil, ierr.NewError("document body is empty").
			WithHint("Upload a non-empty file").
			Mark(ierr.ErrValidation)
	}
	if s.S3 == nil {
		return nil, ierr.NewError("object storage is not configured").
			WithHint("Document archival requires object storage to be enabled").
			Mark(ierr.ErrSystem)
	}

	if _, err := s.CandidateRepo.Get(ctx, req.CandidateID); err != nil {
		return nil, err
	}

	documentID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT)
	storageKey := s3.DocumentKey(req.CandidateID, documentID, req.FileName)

	if err := s.S3.Upload(ctx, s3.BucketDocuments, storageKey, req.ContentType, req.Body); err != nil {
		return nil, err
	}

	doc := req.ToDocument(ctx, documentID, storageKey)
	if err := s.DocumentRepo.Create(ctx, doc); err != nil {
		// The stored object is orphaned; best effort cleanup
		if delErr := s.S3.Delete(ctx, s3.BucketDocuments, storageKey); delErr != nil {
			s.Logger.Errorw("failed to clean up orphaned object",
				"storage_key", storageKey, "error", delErr)
		}
		return nil, err
	}

	s.publishActivity(ctx, entityTypeDocument, doc.ID, types.ActivityActionUploaded, map[string]any{
		"candidate_id":  doc.CandidateID,
		"document_type": doc.DocumentType,
		"file_name":     doc.FileName,
	})

	return &dto.DocumentResponse{Document: doc}, nil
}

func (s *documentService) GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := s.DocumentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.DocumentResponse{Document: doc}
	if s.S3 != nil {
		url, err := s.S3.GetPresignedURL(ctx, s3.BucketDocuments, doc.StorageKey)
		if err != nil {
			s.Logger.Errorw("failed to presign document",
				"document_id", doc.ID, "error", err)
		} else {
			resp.DownloadURL = url
		}
	}
	return resp, nil
}

func (s *documentService) ListDocuments(ctx context.Context, filter *types.DocumentFilter) (*dto.ListDocumentsResponse, error) {
	if filter == nil {
		filter = types.NewDocumentFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	documents, err := s.DocumentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.DocumentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.DocumentResponse, len(documents))
	for i, d := range documents {
		items[i] = &dto.DocumentResponse{Document: d}
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	doc, err := s.DocumentRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.DocumentRepo.Delete(ctx, id); err != nil {
		return err
	}

	// Keep the object; the row is soft deleted and the archive must
	// stay recoverable.
	s.publishActivity(ctx, entityTypeDocument, doc.ID, types.ActivityActionDeleted, nil)
	return nil
}

// RunExpiryScan finds documents expiring within the window. When
// notify is set each expiring document produces a renewal notice.
func (s *documentService) RunExpiryScan(ctx context.Context, withinDays int, notify bool, notifyTo string) (*dto.ExpiryScanResponse, error) {
	if withinDays <= 0 {
		withinDays = 30
	}

	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, withinDays)

	expiring, err := s.DocumentRepo.ListExpiring(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	resp := &dto.ExpiryScanResponse{Expiring: len(expiring)}

	total, err := s.DocumentRepo.Count(ctx, &types.DocumentFilter{QueryFilter: types.NewNoLimitQueryFilter()})
	if err != nil {
		return nil, err
	}
	resp.Scanned = total

	if notify && s.Email != nil && notifyTo != "" {
		for _, doc := range expiring {
			daysLeft := 0
			if doc.ExpiresAt != nil {
				daysLeft = int(doc.ExpiresAt.Sub(now).Hours() / 24)
			}
			s.Email.SendDocumentExpiryNotice(ctx, notifyTo, doc.FileName, daysLeft)
		}
	}

	s.Logger.Infow("document expiry scan complete",
		"scanned", resp.Scanned,
		"expiring", resp.Expiring,
		"within_days", withinDays,
	)

	return resp, nil
}
