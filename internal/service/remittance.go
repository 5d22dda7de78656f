package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pathways-hq/pathways/internal/api/dto"
	"github.com/pathways-hq/pathways/internal/domain/remittance"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/types"
	"github.com/shopspring/decimal"
)

// RemittanceService records remittances and runs the anomaly scan
// that raises and resolves remittance alerts.
type RemittanceService interface {
	RecordRemittance(ctx context.Context, req dto.CreateRemittanceRequest) (*dto.RemittanceResponse, error)
	GetRemittance(ctx context.Context, id string) (*dto.RemittanceResponse, error)
	ListRemittances(ctx context.Context, filter *types.RemittanceFilter) (*dto.ListRemittancesResponse, error)
	ListAlerts(ctx context.Context, filter *types.RemittanceAlertFilter) (*dto.ListRemittanceAlertsResponse, error)
	ResolveAlert(ctx context.Context, alertID string) (*dto.RemittanceAlertResponse, error)
	GenerateAlerts(ctx context.Context, candidateID string) (*dto.AlertScanResponse, error)
	GenerateAllAlerts(ctx context.Context, notify bool, notifyTo string, dryRun bool) (*dto.AlertScanResponse, error)
}

type remittanceService struct {
	ServiceParams
}

func NewRemittanceService(params ServiceParams) RemittanceService {
	return &remittanceService{ServiceParams: params}
}

func (s *remittanceService) RecordRemittance(ctx context.Context, req dto.CreateRemittanceRequest) (*dto.RemittanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cand, err := s.CandidateRepo.Get(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}
	if cand.CandidateStatus != types.CandidateStatusDeparted {
		return nil, ierr.NewError("candidate has not departed").
			WithHint("Remittances can only be recorded for departed candidates").
			Mark(ierr.ErrInvalidOperation)
	}

	if req.ProofDocumentID != nil && *req.ProofDocumentID != "" {
		if _, err := s.DocumentRepo.Get(ctx, *req.ProofDocumentID); err != nil {
			return nil, err
		}
	}

	r := req.ToRemittance(ctx)
	if err := s.RemittanceRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, entityTypeRemittance, r.ID, types.ActivityActionCreated, map[string]any{
		"candidate_id": r.CandidateID,
		"amount":       r.Amount.String(),
		"currency":     r.Currency,
	})

	return &dto.RemittanceResponse{Remittance: r}, nil
}

func (s *remittanceService) GetRemittance(ctx context.Context, id string) (*dto.RemittanceResponse, error) {
	r, err := s.RemittanceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.RemittanceResponse{Remittance: r}, nil
}

func (s *remittanceService) ListRemittances(ctx context.Context, filter *types.RemittanceFilter) (*dto.ListRemittancesResponse, error) {
	if filter == nil {
		filter = types.NewRemittanceFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	remittances, err := s.RemittanceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.RemittanceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.RemittanceResponse, len(remittances))
	for i, r := range remittances {
		items[i] = &dto.RemittanceResponse{Remittance: r}
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *remittanceService) ListAlerts(ctx context.Context, filter *types.RemittanceAlertFilter) (*dto.ListRemittanceAlertsResponse, error) {
	if filter == nil {
		filter = types.NewRemittanceAlertFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	alerts, err := s.RemittanceAlertRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.RemittanceAlertRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.RemittanceAlertResponse, len(alerts))
	for i, a := range alerts {
		items[i] = &dto.RemittanceAlertResponse{Alert: a}
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *remittanceService) ResolveAlert(ctx context.Context, alertID string) (*dto.RemittanceAlertResponse, error) {
	a, err := s.RemittanceAlertRepo.Get(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if a.AlertStatus == types.RemittanceAlertStatusResolved {
		return nil, ierr.NewError("alert is already resolved").
			WithHint("The alert has already been resolved").
			Mark(ierr.ErrInvalidOperation)
	}

	now := time.Now().UTC()
	a.AlertStatus = types.RemittanceAlertStatusResolved
	a.ResolvedAt = &now
	if err := s.RemittanceAlertRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, entityTypeAlert, a.ID, types.ActivityActionAlertResolved, map[string]any{
		"alert_type": a.AlertType,
	})

	return &dto.RemittanceAlertResponse{Alert: a}, nil
}

// GenerateAlerts runs the anomaly scan for a single candidate.
func (s *remittanceService) GenerateAlerts(ctx context.Context, candidateID string) (*dto.AlertScanResponse, error) {
	cand, err := s.CandidateRepo.Get(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if cand.CandidateStatus != types.CandidateStatusDeparted {
		return nil, ierr.NewError("candidate has not departed").
			WithHint("Remittance alerts apply only to departed candidates").
			Mark(ierr.ErrInvalidOperation)
	}

	resp := &dto.AlertScanResponse{
		CandidatesScanned: 1,
		Breakdown:         make(map[types.RemittanceAlertType]int),
	}
	if err := s.scanCandidate(ctx, candidateID, time.Now().UTC(), resp, false); err != nil {
		return nil, err
	}
	return resp, nil
}

// GenerateAllAlerts runs the anomaly scan over every departed
// candidate. The scan is idempotent: a condition that already has an
// open alert is skipped, and open alerts whose condition has cleared
// are resolved. A dry run counts what the scan would raise and
// resolve without writing alerts or sending the digest.
func (s *remittanceService) GenerateAllAlerts(ctx context.Context, notify bool, notifyTo string, dryRun bool) (*dto.AlertScanResponse, error) {
	filter := &types.CandidateFilter{
		QueryFilter:       types.NewNoLimitQueryFilter(),
		CandidateStatuses: []types.CandidateStatus{types.CandidateStatusDeparted},
	}
	candidates, err := s.CandidateRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.AlertScanResponse{
		Breakdown: make(map[types.RemittanceAlertType]int),
		DryRun:    dryRun,
	}
	now := time.Now().UTC()

	for _, cand := range candidates {
		resp.CandidatesScanned++
		if err := s.scanCandidate(ctx, cand.ID, now, resp, dryRun); err != nil {
			s.Logger.Errorw("remittance scan failed for candidate",
				"candidate_id", cand.ID, "error", err)
		}
	}

	s.Logger.Infow("remittance alert scan complete",
		"candidates_scanned", resp.CandidatesScanned,
		"raised", resp.Raised,
		"skipped", resp.Skipped,
		"resolved", resp.Resolved,
		"dry_run", dryRun,
	)

	if notify && !dryRun && resp.Raised > 0 && s.Email != nil && notifyTo != "" {
		breakdown := make(map[string]int, len(resp.Breakdown))
		for t, n := range resp.Breakdown {
			breakdown[t.String()] = n
		}
		s.Email.SendRemittanceAlertsDigest(ctx, notifyTo, resp.Raised, breakdown)
	}

	return resp, nil
}

// desiredAlert is one anomaly found by evaluating a candidate's
// remittance history.
type desiredAlert struct {
	alertType    types.RemittanceAlertType
	severity     types.AlertSeverity
	message      string
	remittanceID *string
}

// scanCandidate evaluates one candidate's remittance history, raises
// alerts for anomalies without an open alert, and resolves open
// alerts whose anomaly has cleared. With dryRun set the counters are
// updated but nothing is written or published.
func (s *remittanceService) scanCandidate(ctx context.Context, candidateID string, now time.Time, resp *dto.AlertScanResponse, dryRun bool) error {
	dep, err := s.DepartureRepo.GetByCandidateID(ctx, candidateID)
	if err != nil {
		return err
	}

	remittances, err := s.RemittanceRepo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return err
	}

	desired := s.evaluate(dep.DepartureDate, remittances, now)

	desiredTypes := make(map[types.RemittanceAlertType]bool, len(desired))
	for _, d := range desired {
		desiredTypes[d.alertType] = true
	}

	// Resolve open alerts whose condition no longer holds
	open, err := s.RemittanceAlertRepo.ListOpenByCandidate(ctx, candidateID)
	if err != nil {
		return err
	}
	for _, a := range open {
		if desiredTypes[a.AlertType] {
			continue
		}
		if !dryRun {
			a.AlertStatus = types.RemittanceAlertStatusResolved
			resolvedAt := now
			a.ResolvedAt = &resolvedAt
			if err := s.RemittanceAlertRepo.Update(ctx, a); err != nil {
				return err
			}
		}
		resp.Resolved++
	}

	// Raise alerts for new conditions
	for _, d := range desired {
		existing, err := s.RemittanceAlertRepo.GetOpenByCandidateAndType(ctx, candidateID, d.alertType)
		if err != nil && !ierr.IsNotFound(err) {
			return err
		}
		if existing != nil {
			resp.Skipped++
			continue
		}

		if dryRun {
			resp.Raised++
			resp.Breakdown[d.alertType]++
			continue
		}

		alert := &remittance.Alert{
			ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REMITTANCE_ALERT),
			CandidateID:  candidateID,
			AlertType:    d.alertType,
			AlertStatus:  types.RemittanceAlertStatusOpen,
			Severity:     d.severity,
			Message:      d.message,
			RemittanceID: d.remittanceID,
			BaseModel:    types.GetDefaultBaseModel(ctx),
		}
		if err := s.RemittanceAlertRepo.Create(ctx, alert); err != nil {
			return err
		}
		resp.Raised++
		resp.Breakdown[d.alertType]++

		s.publishActivity(ctx, entityTypeAlert, alert.ID, types.ActivityActionAlertRaised, map[string]any{
			"candidate_id": candidateID,
			"alert_type":   d.alertType,
			"severity":     d.severity,
		})
	}

	return nil
}

// evaluate derives the set of anomalies present in a candidate's
// remittance history as of now. Remittances arrive sorted by sent_at
// ascending.
func (s *remittanceService) evaluate(departureDate time.Time, remittances []*remittance.Remittance, now time.Time) []desiredAlert {
	cfg := s.Config.Remittance
	var desired []desiredAlert

	daysSinceDeparture := int(now.Sub(departureDate).Hours() / 24)

	if len(remittances) == 0 {
		if daysSinceDeparture > cfg.FirstRemittanceDays {
			desired = append(desired, desiredAlert{
				alertType: types.RemittanceAlertFirstDelay,
				severity:  types.AlertSeverityCritical,
				message: fmt.Sprintf("No remittance received %d days after departure (expected within %d days)",
					daysSinceDeparture, cfg.FirstRemittanceDays),
			})
		}
		return desired
	}

	last := remittances[len(remittances)-1]

	// Gap since the most recent remittance
	daysSinceLast := int(now.Sub(last.SentAt).Hours() / 24)
	if daysSinceLast > cfg.MissingAfterDays {
		desired = append(desired, desiredAlert{
			alertType: types.RemittanceAlertMissingRemittance,
			severity:  types.AlertSeverityWarning,
			message: fmt.Sprintf("No remittance in the last %d days (threshold %d days)",
				daysSinceLast, cfg.MissingAfterDays),
			remittanceID: &last.ID,
		})
	}

	// Any remittance without a proof document
	for _, r := range remittances {
		if !r.HasProof() {
			rid := r.ID
			desired = append(desired, desiredAlert{
				alertType:    types.RemittanceAlertMissingProof,
				severity:     types.AlertSeverityInfo,
				message:      fmt.Sprintf("Remittance of %s %s sent on %s has no proof document", r.Amount, r.Currency, r.SentAt.Format("2006-01-02")),
				remittanceID: &rid,
			})
			break
		}
	}

	// Gap between consecutive remittances
	for i := 1; i < len(remittances); i++ {
		gap := int(remittances[i].SentAt.Sub(remittances[i-1].SentAt).Hours() / 24)
		if gap > cfg.LowFrequencyGapDays {
			rid := remittances[i].ID
			desired = append(desired, desiredAlert{
				alertType: types.RemittanceAlertLowFrequency,
				severity:  types.AlertSeverityWarning,
				message: fmt.Sprintf("Gap of %d days between remittances (threshold %d days)",
					gap, cfg.LowFrequencyGapDays),
				remittanceID: &rid,
			})
			break
		}
	}

	// Latest amount against the historical average
	if len(remittances) >= 2 {
		sum := decimal.Zero
		for _, r := range remittances[:len(remittances)-1] {
			sum = sum.Add(r.Amount)
		}
		avg := sum.Div(decimal.NewFromInt(int64(len(remittances) - 1)))
		if avg.IsPositive() {
			deviation := last.Amount.Sub(avg).Abs().Div(avg).Mul(decimal.NewFromInt(100))
			threshold := decimal.NewFromInt(int64(cfg.UnusualDeviationPct))
			if deviation.GreaterThan(threshold) {
				rid := last.ID
				desired = append(desired, desiredAlert{
					alertType: types.RemittanceAlertUnusualAmount,
					severity:  types.AlertSeverityWarning,
					message: fmt.Sprintf("Latest remittance %s %s deviates %s%% from the average %s %s",
						last.Amount, last.Currency, deviation.Round(0), avg.Round(2), last.Currency),
					remittanceID: &rid,
				})
			}
		}
	}

	return desired
}
