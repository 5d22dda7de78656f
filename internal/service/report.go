package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/pathways-hq/pathways/internal/api/dto"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/s3"
	"github.com/pathways-hq/pathways/internal/types"
)

// ReportService generates CSV reports, either streamed to the caller
// or exported to object storage.
type ReportService interface {
	WriteReport(ctx context.Context, reportType dto.ReportType, w io.Writer) (int, error)
	ExportReport(ctx context.Context, req dto.ExportReportRequest) (*dto.ExportReportResponse, error)
}

type reportService struct {
	ServiceParams
}

func NewReportService(params ServiceParams) ReportService {
	return &reportService{ServiceParams: params}
}

// WriteReport streams the report as CSV to w and returns the number
// of data rows written.
func (s *reportService) WriteReport(ctx context.Context, reportType dto.ReportType, w io.Writer) (int, error) {
	if err := reportType.Validate(); err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	var rows int
	var err error

	switch reportType {
	case dto.ReportTypeCandidates:
		rows, err = s.writeCandidates(ctx, cw)
	case dto.ReportTypeCompliance:
		rows, err = s.writeCompliance(ctx, cw)
	case dto.ReportTypeComplaints:
		rows, err = s.writeComplaints(ctx, cw)
	case dto.ReportTypeRemittances:
		rows, err = s.writeRemittances(ctx, cw)
	}
	if err != nil {
		return rows, err
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return rows, ierr.WithError(err).
			WithHint("Failed to write report").
			Mark(ierr.ErrSystem)
	}

	s.publishActivity(ctx, entityTypeReport, string(reportType), types.ActivityActionExported, map[string]any{
		"rows": rows,
	})

	return rows, nil
}

// ExportReport renders the report and stores it in the reports bucket.
func (s *reportService) ExportReport(ctx context.Context, req dto.ExportReportRequest) (*dto.ExportReportResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.S3 == nil {
		return nil, ierr.NewError("object storage is not configured").
			WithHint("Report export requires object storage to be enabled").
			Mark(ierr.ErrSystem)
	}

	var buf bytes.Buffer
	rows, err := s.WriteReport(ctx, req.ReportType, &buf)
	if err != nil {
		return nil, err
	}

	exportID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EXPORT)
	key := s3.ReportKey(exportID)
	if err := s.S3.Upload(ctx, s3.BucketReports, key, "text/csv", buf.Bytes()); err != nil {
		return nil, err
	}

	resp := &dto.ExportReportResponse{
		ExportID:   exportID,
		StorageKey: key,
		Rows:       rows,
	}
	if url, err := s.S3.GetPresignedURL(ctx, s3.BucketReports, key); err == nil {
		resp.DownloadURL = url
	} else {
		s.Logger.Errorw("failed to presign report", "export_id", exportID, "error", err)
	}
	return resp, nil
}

func (s *reportService) writeCandidates(ctx context.Context, cw *csv.Writer) (int, error) {
	header := []string{"id", "full_name", "cnic", "phone", "district", "status", "campus_id", "trade_id", "batch_id", "oep_id", "created_at"}
	if err := cw.Write(header); err != nil {
		return 0, ierr.WithError(err).WithHint("Failed to write report").Mark(ierr.ErrSystem)
	}

	filter := &types.CandidateFilter{QueryFilter: types.NewNoLimitQueryFilter()}
	candidates, err := s.CandidateRepo.List(ctx, filter)
	if err != nil {
		return 0, err
	}

	for _, c := range candidates {
		record := []string{
			c.ID,
			c.FullName,
			c.CNIC,
			c.Phone,
			c.District,
			c.CandidateStatus.String(),
			types.FromNillableString(c.CampusID),
			types.FromNillableString(c.TradeID),
			types.FromNillableString(c.BatchID),
			types.FromNillableString(c.OEPID),
			c.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return 0, ierr.WithError(err).WithHint("Failed to write report").Mark(ierr.ErrSystem)
		}
	}
	return len(candidates), nil
}

func (s *reportService) writeCompliance(ctx context.Context, cw *csv.Writer) (int, error) {
	header := []string{"departure_id", "candidate_id", "departure_date", "destination_country", "compliance_status", "compliance_pct", "last_checked_at"}
	if err := cw.Write(header); err != nil {
		return 0, ierr.WithError(err).WithHint("Failed to write report").Mark(ierr.ErrSystem)
	}

	filter := &types.DepartureFilter{QueryFilter: types.NewNoLimitQueryFilter()}
	departures, err := s.DepartureRepo.List(ctx, filter)
	if err != nil {
		return 0, err
	}

	for _, d := range departures {
		lastChecked := ""
		if d.LastCheckedAt != nil {
			lastChecked = d.LastCheckedAt.Format(time.RFC3339)
		}
		record := []string{
			d.ID,
			d.CandidateID,
			d.DepartureDate.Format("2006-01-02"),
			d.DestinationCountry,
			d.ComplianceStatus.String(),
			strconv.Itoa(d.CompliancePct),
			lastChecked,
		}
		if err := cw.Write(record); err != nil {
			return 0, ierr.WithError(err).WithHint("Failed to write report").Mark(ierr.ErrSystem)
		}
	}
	return len(departures), nil
}

func (s *reportService) writeComplaints(ctx context.Context, cw *csv.Writer) (int, error) {
	header := []string{"reference", "candidate_id", "subject", "category", "priority", "status", "sla_days", "sla_deadline", "overdue", "created_at"}
	if err := cw.Write(header); err != nil {
		return 0, ierr.WithError(err).WithHint("Failed to write report").Mark(ierr.ErrSystem)
	}

	filter := &types.ComplaintFilter{QueryFilter: types.NewNoLimitQueryFilter()}
	complaints, err := s.ComplaintRepo.List(ctx, filter)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	for _, c := range complaints {
		record := []string{
			c.Reference,
			types.FromNillableString(c.CandidateID),
			c.Subject,
			c.Category,
			c.Priority.String(),
			c.ComplaintStatus.String(),
			strconv.Itoa(c.SLADays),
			c.SLADeadline().Format(time.RFC3339),
			strconv.FormatBool(c.IsOverdue(now)),
			c.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return 0, ierr.WithError(err).WithHint("Failed to write report").Mark(ierr.ErrSystem)
		}
	}
	return len(complaints), nil
}

func (s *reportService) writeRemittances(ctx context.Context, cw *csv.Writer) (int, error) {
	header := []string{"id", "candidate_id", "amount", "currency", "sent_at", "channel", "has_proof"}
	if err := cw.Write(header); err != nil {
		return 0, ierr.WithError(err).WithHint("Failed to write report").Mark(ierr.ErrSystem)
	}

	filter := &types.RemittanceFilter{QueryFilter: types.NewNoLimitQueryFilter()}
	remittances, err := s.RemittanceRepo.List(ctx, filter)
	if err != nil {
		return 0, err
	}

	for _, r := range remittances {
		record := []string{
			r.ID,
			r.CandidateID,
			r.Amount.String(),
			r.Currency,
			r.SentAt.Format(time.RFC3339),
			r.Channel,
			strconv.FormatBool(r.HasProof()),
		}
		if err := cw.Write(record); err != nil {
			return 0, ierr.WithError(err).WithHint("Failed to write report").Mark(ierr.ErrSystem)
		}
	}
	return len(remittances), nil
}
