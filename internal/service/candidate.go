package service

import (
	"context"

	"github.com/pathways-hq/pathways/internal/api/dto"
	"github.com/pathways-hq/pathways/internal/domain/candidate"
	"github.com/pathways-hq/pathways/internal/domain/departure"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/types"
)

// CandidateService manages candidates and their movement through the
// migration pipeline.
type CandidateService interface {
	CreateCandidate(ctx context.Context, req dto.CreateCandidateRequest) (*dto.CandidateResponse, error)
	GetCandidate(ctx context.Context, id string) (*dto.CandidateResponse, error)
	GetCandidateByCNIC(ctx context.Context, cnic string) (*dto.CandidateResponse, error)
	UpdateCandidate(ctx context.Context, id string, req dto.UpdateCandidateRequest) (*dto.CandidateResponse, error)
	DeleteCandidate(ctx context.Context, id string) error
	ListCandidates(ctx context.Context, filter *types.CandidateFilter) (*dto.ListCandidatesResponse, error)
	TransitionCandidate(ctx context.Context, id string, req dto.TransitionCandidateRequest) (*dto.CandidateResponse, error)
	ListTransitions(ctx context.Context, id string) ([]*dto.StatusTransitionResponse, error)
	GetPipelineSummary(ctx context.Context) (*dto.PipelineSummaryResponse, error)
}

type candidateService struct {
	ServiceParams
}

func NewCandidateService(params ServiceParams) CandidateService {
	return &candidateService{ServiceParams: params}
}

func (s *candidateService) CreateCandidate(ctx context.Context, req dto.CreateCandidateRequest) (*dto.CandidateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cand := req.ToCandidate(ctx)
	if err := s.CandidateRepo.Create(ctx, cand); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, entityTypeCandidate, cand.ID, types.ActivityActionCreated, map[string]any{
		"cnic":     cand.CNIC,
		"district": cand.District,
	})

	return s.toResponse(cand), nil
}

func (s *candidateService) GetCandidate(ctx context.Context, id string) (*dto.CandidateResponse, error) {
	cand, err := s.CandidateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(cand), nil
}

func (s *candidateService) GetCandidateByCNIC(ctx context.Context, cnic string) (*dto.CandidateResponse, error) {
	cand, err := s.CandidateRepo.GetByCNIC(ctx, cnic)
	if err != nil {
		return nil, err
	}
	return s.toResponse(cand), nil
}

func (s *candidateService) UpdateCandidate(ctx context.Context, id string, req dto.UpdateCandidateRequest) (*dto.CandidateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cand, err := s.CandidateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		cand.FullName = *req.FullName
	}
	if req.PassportNumber != nil {
		cand.PassportNumber = req.PassportNumber
	}
	if req.Phone != nil {
		cand.Phone = *req.Phone
	}
	if req.Email != nil {
		cand.Email = req.Email
	}
	if req.DateOfBirth != nil {
		cand.DateOfBirth = req.DateOfBirth
	}
	if req.District != nil {
		cand.District = *req.District
	}
	if req.CampusID != nil {
		cand.CampusID = req.CampusID
	}
	if req.TradeID != nil {
		cand.TradeID = req.TradeID
	}
	if req.BatchID != nil {
		if err := s.validateBatchAssignment(ctx, cand, *req.BatchID); err != nil {
			return nil, err
		}
		cand.BatchID = req.BatchID
	}
	if req.OEPID != nil {
		cand.OEPID = req.OEPID
	}
	if req.EmployerID != nil {
		cand.EmployerID = req.EmployerID
	}
	if req.VisaNumber != nil {
		cand.VisaNumber = req.VisaNumber
	}
	if req.Remarks != nil {
		cand.Remarks = req.Remarks
	}

	if err := s.CandidateRepo.Update(ctx, cand); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, entityTypeCandidate, cand.ID, types.ActivityActionUpdated, nil)

	return s.toResponse(cand), nil
}

func (s *candidateService) DeleteCandidate(ctx context.Context, id string) error {
	if _, err := s.CandidateRepo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.CandidateRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishActivity(ctx, entityTypeCandidate, id, types.ActivityActionDeleted, nil)
	return nil
}

func (s *candidateService) ListCandidates(ctx context.Context, filter *types.CandidateFilter) (*dto.ListCandidatesResponse, error) {
	if filter == nil {
		filter = types.NewCandidateFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	candidates, err := s.CandidateRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.CandidateRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CandidateResponse, len(candidates))
	for i, c := range candidates {
		items[i] = s.toResponse(c)
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// TransitionCandidate moves a candidate to a new pipeline status. The
// move must be allowed by the transition table and the candidate must
// satisfy the target stage's data prerequisites. Moving to departed
// also opens the post-departure monitoring record, atomically with the
// status change.
func (s *candidateService) TransitionCandidate(ctx context.Context, id string, req dto.TransitionCandidateRequest) (*dto.CandidateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cand, err := s.CandidateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fromStatus := cand.CandidateStatus
	if err := fromStatus.ValidateTransition(req.ToStatus); err != nil {
		return nil, err
	}

	if issues := cand.PrerequisiteIssues(req.ToStatus); len(issues) > 0 {
		return nil, ierr.NewError("candidate does not meet transition prerequisites").
			WithHintf("Candidate is missing required data for %s", req.ToStatus).
			WithReportableDetails(map[string]any{
				"to_status": req.ToStatus,
				"issues":    issues,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if req.ToStatus == types.CandidateStatusDeparted {
		if req.DepartureDate == nil {
			return nil, ierr.NewError("departure date is required").
				WithHint("Provide the departure date when marking a candidate departed").
				Mark(ierr.ErrValidation)
		}
		if req.DestinationCountry == "" {
			return nil, ierr.NewError("destination country is required").
				WithHint("Provide the destination country when marking a candidate departed").
				Mark(ierr.ErrValidation)
		}
	}

	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		cand.CandidateStatus = req.ToStatus
		if err := s.CandidateRepo.Update(txCtx, cand); err != nil {
			return err
		}

		transition := &candidate.StatusTransition{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CANDIDATE),
			CandidateID: cand.ID,
			FromStatus:  fromStatus,
			ToStatus:    req.ToStatus,
			Reason:      req.Reason,
			BaseModel:   types.GetDefaultBaseModel(txCtx),
		}
		if err := s.CandidateRepo.CreateTransition(txCtx, transition); err != nil {
			return err
		}

		if req.ToStatus == types.CandidateStatusDeparted {
			return s.openDeparture(txCtx, cand, req)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishActivity(ctx, entityTypeCandidate, cand.ID, types.ActivityActionStatusChanged, map[string]any{
		"from": fromStatus,
		"to":   req.ToStatus,
	})

	return s.toResponse(cand), nil
}

// openDeparture creates the departure record and its default
// checklist inside the transition's transaction.
func (s *candidateService) openDeparture(ctx context.Context, cand *candidate.Candidate, req dto.TransitionCandidateRequest) error {
	dep := &departure.Departure{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DEPARTURE),
		CandidateID:        cand.ID,
		EmployerID:         cand.EmployerID,
		DepartureDate:      req.DepartureDate.UTC(),
		DestinationCity:    req.DestinationCity,
		DestinationCountry: req.DestinationCountry,
		ComplianceStatus:   types.ComplianceStatusPending,
		CompliancePct:      0,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	if err := s.DepartureRepo.Create(ctx, dep); err != nil {
		return err
	}

	items := departure.DefaultChecklistItems(dep.ID)
	for _, item := range items {
		item.BaseModel = types.GetDefaultBaseModel(ctx)
	}
	return s.DepartureRepo.CreateChecklistItems(ctx, items)
}

func (s *candidateService) ListTransitions(ctx context.Context, id string) ([]*dto.StatusTransitionResponse, error) {
	if _, err := s.CandidateRepo.Get(ctx, id); err != nil {
		return nil, err
	}

	transitions, err := s.CandidateRepo.ListTransitions(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.StatusTransitionResponse, len(transitions))
	for i, t := range transitions {
		items[i] = &dto.StatusTransitionResponse{StatusTransition: t}
	}
	return items, nil
}

// GetPipelineSummary counts candidates per pipeline stage and flags
// the stage holding the largest share of in-flight candidates as the
// bottleneck.
func (s *candidateService) GetPipelineSummary(ctx context.Context) (*dto.PipelineSummaryResponse, error) {
	counts, err := s.CandidateRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.PipelineSummaryResponse{
		Rejected: counts[types.CandidateStatusRejected],
		Returned: counts[types.CandidateStatusReturned],
	}

	maxCount := 0
	maxIdx := -1
	for i, status := range types.CandidatePipelineOrder {
		count := counts[status]
		resp.Total += count
		resp.Stages = append(resp.Stages, dto.PipelineStageSummary{
			Status: status,
			Count:  count,
		})
		// Departed is the pipeline exit, not a holding stage
		if status != types.CandidateStatusDeparted && count > maxCount {
			maxCount = count
			maxIdx = i
		}
	}
	resp.Total += resp.Rejected + resp.Returned

	if maxIdx >= 0 {
		resp.Stages[maxIdx].Bottleneck = true
	}

	return resp, nil
}

// validateBatchAssignment rejects assignments to full or completed
// batches.
func (s *candidateService) validateBatchAssignment(ctx context.Context, cand *candidate.Candidate, batchID string) error {
	if batchID == "" {
		return nil
	}
	if cand.BatchID != nil && *cand.BatchID == batchID {
		return nil
	}

	batch, err := s.BatchRepo.Get(ctx, batchID)
	if err != nil {
		return err
	}
	if batch.BatchStatus == types.BatchStatusCompleted {
		return ierr.NewError("batch is completed").
			WithHintf("Batch %s has already completed", batch.Name).
			Mark(ierr.ErrInvalidOperation)
	}

	enrolled, err := s.CandidateRepo.CountByBatch(ctx, batchID)
	if err != nil {
		return err
	}
	if enrolled >= batch.Capacity {
		return ierr.NewError("batch is at capacity").
			WithHintf("Batch %s is full (%d/%d)", batch.Name, enrolled, batch.Capacity).
			WithReportableDetails(map[string]any{
				"batch_id": batchID,
				"capacity": batch.Capacity,
				"enrolled": enrolled,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

func (s *candidateService) toResponse(cand *candidate.Candidate) *dto.CandidateResponse {
	return &dto.CandidateResponse{
		Candidate:          cand,
		AllowedTransitions: cand.CandidateStatus.AllowedTransitions(),
	}
}
