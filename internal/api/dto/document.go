package dto

import (
	"context"
	"time"

	"github.com/pathways-hq/pathways/internal/validator"
	"github.com/pathways-hq/pathways/internal/domain/document"
	"github.com/pathways-hq/pathways/internal/types"
)

// UploadDocumentRequest archives a candidate document. The file body
// is carried as multipart form data alongside these fields.
type UploadDocumentRequest struct {
	CandidateID  string             `json:"candidate_id" validate:"required"`
	DocumentType types.DocumentType `json:"document_type" validate:"required"`
	FileName     string             `json:"file_name" validate:"required,max=255"`
	ContentType  string             `json:"content_type" validate:"required,max=100"`
	ExpiresAt    *time.Time         `json:"expires_at"`
	Body         []byte             `json:"-"`
}

type DocumentResponse struct {
	*document.Document
	// DownloadURL is a short lived presigned URL, set only on single
	// document fetches when object storage is enabled
	DownloadURL string `json:"download_url,omitempty"`
}

// ListDocumentsResponse represents the response for listing documents
type ListDocumentsResponse = types.ListResponse[*DocumentResponse]

// ExpiryScanResponse summarizes a document expiry scan
type ExpiryScanResponse struct {
	Scanned  int `json:"scanned"`
	Expiring int `json:"expiring"`
}

func (r *UploadDocumentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.DocumentType.Validate()
}

func (r *UploadDocumentRequest) ToDocument(ctx context.Context, id, storageKey string) *document.Document {
	return &document.Document{
		ID:           id,
		CandidateID:  r.CandidateID,
		DocumentType: r.DocumentType,
		FileName:     r.FileName,
		ContentType:  r.ContentType,
		SizeBytes:    int64(len(r.Body)),
		StorageKey:   storageKey,
		ExpiresAt:    r.ExpiresAt,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}
