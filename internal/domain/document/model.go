package document

import (
	"time"

	"github.com/pathways-hq/pathways/internal/types"
)

// Document represents an archived candidate document stored in object
// storage.
type Document struct {
	ID           string             `db:"id" json:"id"`
	CandidateID  string             `db:"candidate_id" json:"candidate_id"`
	DocumentType types.DocumentType `db:"document_type" json:"document_type"`
	FileName     string             `db:"file_name" json:"file_name"`
	ContentType  string             `db:"content_type" json:"content_type"`
	SizeBytes    int64              `db:"size_bytes" json:"size_bytes"`
	StorageKey   string             `db:"storage_key" json:"storage_key"`
	ExpiresAt    *time.Time         `db:"expires_at" json:"expires_at,omitempty"`
	types.BaseModel
}

// IsExpiringWithin reports whether the document expires within the
// given number of days from now. Documents without an expiry never
// expire.
func (d *Document) IsExpiringWithin(now time.Time, days int) bool {
	if d.ExpiresAt == nil {
		return false
	}
	return d.ExpiresAt.Before(now.AddDate(0, 0, days))
}
