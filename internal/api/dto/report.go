package dto

import (
	"github.com/pathways-hq/pathways/internal/validator"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/samber/lo"
)

// ReportType identifies a CSV report
type ReportType string

const (
	ReportTypeCandidates  ReportType = "candidates"
	ReportTypeCompliance  ReportType = "compliance"
	ReportTypeComplaints  ReportType = "complaints"
	ReportTypeRemittances ReportType = "remittances"
)

var knownReportTypes = []ReportType{
	ReportTypeCandidates,
	ReportTypeCompliance,
	ReportTypeComplaints,
	ReportTypeRemittances,
}

// ExportReportRequest asks for a report to be generated and stored in
// object storage instead of streamed.
type ExportReportRequest struct {
	ReportType ReportType `json:"report_type" validate:"required"`
}

// ExportReportResponse points at a stored report
type ExportReportResponse struct {
	ExportID    string `json:"export_id"`
	StorageKey  string `json:"storage_key"`
	DownloadURL string `json:"download_url,omitempty"`
	Rows        int    `json:"rows"`
}

func (t ReportType) Validate() error {
	if !lo.Contains(knownReportTypes, t) {
		return ierr.NewError("invalid report type").
			WithHintf("Report type must be one of %v", knownReportTypes).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *ExportReportRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.ReportType.Validate()
}
