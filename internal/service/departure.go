package service

import (
	"context"
	"strings"
	"time"

	"github.com/pathways-hq/pathways/internal/api/dto"
	"github.com/pathways-hq/pathways/internal/domain/departure"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/types"
	"github.com/samber/lo"
)

// DepartureService manages post-departure monitoring records and the
// compliance checks run against them.
type DepartureService interface {
	GetDeparture(ctx context.Context, id string) (*dto.DepartureResponse, error)
	GetDepartureByCandidate(ctx context.Context, candidateID string) (*dto.DepartureResponse, error)
	ListDepartures(ctx context.Context, filter *types.DepartureFilter) (*dto.ListDeparturesResponse, error)
	UpdateChecklistItem(ctx context.Context, departureID string, req dto.UpdateChecklistItemRequest) (*dto.DepartureResponse, error)
	ConfirmSalary(ctx context.Context, departureID string) (*dto.DepartureResponse, error)
	RunComplianceCheck(ctx context.Context, departureID string) (*dto.ComplianceCheckResponse, error)
	RunComplianceScan(ctx context.Context, notify, dryRun bool) (*dto.ComplianceScanResponse, error)
}

type departureService struct {
	ServiceParams
}

func NewDepartureService(params ServiceParams) DepartureService {
	return &departureService{ServiceParams: params}
}

func (s *departureService) GetDeparture(ctx context.Context, id string) (*dto.DepartureResponse, error) {
	dep, err := s.DepartureRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withChecklist(ctx, dep)
}

func (s *departureService) GetDepartureByCandidate(ctx context.Context, candidateID string) (*dto.DepartureResponse, error) {
	dep, err := s.DepartureRepo.GetByCandidateID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return s.withChecklist(ctx, dep)
}

func (s *departureService) ListDepartures(ctx context.Context, filter *types.DepartureFilter) (*dto.ListDeparturesResponse, error) {
	if filter == nil {
		filter = types.NewDepartureFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	departures, err := s.DepartureRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.DepartureRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.DepartureResponse, len(departures))
	for i, d := range departures {
		items[i] = &dto.DepartureResponse{Departure: d}
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// UpdateChecklistItem marks a checklist item met or unmet and
// recomputes the departure's compliance score in the same transaction.
func (s *departureService) UpdateChecklistItem(ctx context.Context, departureID string, req dto.UpdateChecklistItemRequest) (*dto.DepartureResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dep, err := s.DepartureRepo.Get(ctx, departureID)
	if err != nil {
		return nil, err
	}

	items, err := s.DepartureRepo.ListChecklistItems(ctx, departureID)
	if err != nil {
		return nil, err
	}

	item, found := lo.Find(items, func(i *departure.ChecklistItem) bool {
		return i.Code == req.Code
	})
	if !found {
		return nil, ierr.NewError("checklist item not found").
			WithHintf("No checklist item with code %s", req.Code).
			Mark(ierr.ErrNotFound)
	}

	now := time.Now().UTC()
	item.Met = req.Met
	if req.Met {
		item.MetAt = &now
	} else {
		item.MetAt = nil
	}
	item.UpdatedAt = now
	item.UpdatedBy = types.GetUserID(ctx)

	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.DepartureRepo.UpdateChecklistItem(txCtx, item); err != nil {
			return err
		}
		return s.recompute(txCtx, dep, items, now)
	})
	if err != nil {
		return nil, err
	}

	s.publishActivity(ctx, entityTypeDeparture, dep.ID, types.ActivityActionComplianceChecked, map[string]any{
		"item": req.Code,
		"met":  req.Met,
	})

	return &dto.DepartureResponse{Departure: dep, Checklist: items}, nil
}

// ConfirmSalary is a shortcut for marking the first salary checklist
// item met.
func (s *departureService) ConfirmSalary(ctx context.Context, departureID string) (*dto.DepartureResponse, error) {
	resp, err := s.UpdateChecklistItem(ctx, departureID, dto.UpdateChecklistItemRequest{
		Code: types.ComplianceItemSalary,
		Met:  true,
	})
	if err != nil {
		return nil, err
	}
	s.publishActivity(ctx, entityTypeDeparture, departureID, types.ActivityActionSalaryConfirmed, nil)
	return resp, nil
}

// RunComplianceCheck evaluates one departure's checklist and persists
// the resulting score and status.
func (s *departureService) RunComplianceCheck(ctx context.Context, departureID string) (*dto.ComplianceCheckResponse, error) {
	dep, err := s.DepartureRepo.Get(ctx, departureID)
	if err != nil {
		return nil, err
	}

	items, err := s.DepartureRepo.ListChecklistItems(ctx, departureID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.recompute(ctx, dep, items, now); err != nil {
		return nil, err
	}

	result := departure.EvaluateCompliance(dep, items, now)
	return &dto.ComplianceCheckResponse{
		DepartureID: dep.ID,
		CandidateID: dep.CandidateID,
		Result:      result,
	}, nil
}

// RunComplianceScan evaluates every departure. When notify is set,
// non compliant departures trigger a follow-up email to the
// candidate's registered address. A dry run reports the derived
// statuses without persisting scores or sending mail.
func (s *departureService) RunComplianceScan(ctx context.Context, notify, dryRun bool) (*dto.ComplianceScanResponse, error) {
	filter := &types.DepartureFilter{QueryFilter: types.NewNoLimitQueryFilter()}
	departures, err := s.DepartureRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ComplianceScanResponse{DryRun: dryRun}
	now := time.Now().UTC()

	for _, dep := range departures {
		resp.Scanned++

		items, err := s.DepartureRepo.ListChecklistItems(ctx, dep.ID)
		if err != nil {
			s.Logger.Errorw("compliance scan: failed to load checklist",
				"departure_id", dep.ID, "error", err)
			resp.Failed++
			continue
		}

		result := departure.EvaluateCompliance(dep, items, now)

		if !dryRun {
			if err := s.recompute(ctx, dep, items, now); err != nil {
				s.Logger.Errorw("compliance scan: failed to update departure",
					"departure_id", dep.ID, "error", err)
				resp.Failed++
				continue
			}
		}

		switch result.Status {
		case types.ComplianceStatusCompliant:
			resp.Compliant++
		case types.ComplianceStatusPartial:
			resp.Partial++
		case types.ComplianceStatusNonCompliant:
			resp.NonCompliant++
			if notify && !dryRun {
				s.notifyNonCompliance(ctx, dep, result)
			}
		default:
			resp.Pending++
		}
	}

	s.Logger.Infow("compliance scan complete",
		"scanned", resp.Scanned,
		"compliant", resp.Compliant,
		"partial", resp.Partial,
		"pending", resp.Pending,
		"non_compliant", resp.NonCompliant,
		"failed", resp.Failed,
		"dry_run", dryRun,
	)

	return resp, nil
}

// recompute re-evaluates the checklist and persists the derived score,
// status, and joined failing labels onto the departure row.
func (s *departureService) recompute(ctx context.Context, dep *departure.Departure, items []*departure.ChecklistItem, now time.Time) error {
	result := departure.EvaluateCompliance(dep, items, now)

	dep.ComplianceStatus = result.Status
	dep.CompliancePct = result.Percentage
	dep.FailingItems = strings.Join(result.FailingLabels, "; ")
	dep.LastCheckedAt = &now
	dep.UpdatedAt = now
	dep.UpdatedBy = types.GetUserID(ctx)

	return s.DepartureRepo.Update(ctx, dep)
}

func (s *departureService) notifyNonCompliance(ctx context.Context, dep *departure.Departure, result *departure.ComplianceResult) {
	if s.Email == nil {
		return
	}
	cand, err := s.CandidateRepo.Get(ctx, dep.CandidateID)
	if err != nil {
		s.Logger.Errorw("compliance scan: failed to load candidate for notification",
			"candidate_id", dep.CandidateID, "error", err)
		return
	}
	if cand.Email == nil || *cand.Email == "" {
		return
	}
	s.Email.SendNonComplianceNotice(ctx, *cand.Email, cand.FullName, result.DaysSinceDeparture, result.FailingLabels)
}

func (s *departureService) withChecklist(ctx context.Context, dep *departure.Departure) (*dto.DepartureResponse, error) {
	items, err := s.DepartureRepo.ListChecklistItems(ctx, dep.ID)
	if err != nil {
		return nil, err
	}
	return &dto.DepartureResponse{Departure: dep, Checklist: items}, nil
}
