package service

import (
	"context"
	"time"

	"github.com/pathways-hq/pathways/internal/api/dto"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/types"
)

// ComplaintService manages candidate grievances and their SLA clocks.
type ComplaintService interface {
	CreateComplaint(ctx context.Context, req dto.CreateComplaintRequest) (*dto.ComplaintResponse, error)
	GetComplaint(ctx context.Context, id string) (*dto.ComplaintResponse, error)
	GetComplaintByReference(ctx context.Context, reference string) (*dto.ComplaintResponse, error)
	UpdateComplaint(ctx context.Context, id string, req dto.UpdateComplaintRequest) (*dto.ComplaintResponse, error)
	AssignComplaint(ctx context.Context, id string, req dto.AssignComplaintRequest) (*dto.ComplaintResponse, error)
	StartProgress(ctx context.Context, id string) (*dto.ComplaintResponse, error)
	ResolveComplaint(ctx context.Context, id string, req dto.ResolveComplaintRequest) (*dto.ComplaintResponse, error)
	ListComplaints(ctx context.Context, filter *types.ComplaintFilter) (*dto.ListComplaintsResponse, error)
	RunSLAScan(ctx context.Context, notify bool, notifyTo string) (*dto.SLAScanResponse, error)
}

type complaintService struct {
	ServiceParams
}

func NewComplaintService(params ServiceParams) ComplaintService {
	return &complaintService{ServiceParams: params}
}

func (s *complaintService) CreateComplaint(ctx context.Context, req dto.CreateComplaintRequest) (*dto.ComplaintResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.CandidateID != nil && *req.CandidateID != "" {
		if _, err := s.CandidateRepo.Get(ctx, *req.CandidateID); err != nil {
			return nil, err
		}
	}

	c := req.ToComplaint(ctx)
	if err := s.ComplaintRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, entityTypeComplaint, c.ID, types.ActivityActionCreated, map[string]any{
		"reference": c.Reference,
		"priority":  c.Priority,
	})

	return dto.NewComplaintResponse(c, time.Now().UTC()), nil
}

func (s *complaintService) GetComplaint(ctx context.Context, id string) (*dto.ComplaintResponse, error) {
	c, err := s.ComplaintRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewComplaintResponse(c, time.Now().UTC()), nil
}

func (s *complaintService) GetComplaintByReference(ctx context.Context, reference string) (*dto.ComplaintResponse, error) {
	c, err := s.ComplaintRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	return dto.NewComplaintResponse(c, time.Now().UTC()), nil
}

func (s *complaintService) UpdateComplaint(ctx context.Context, id string, req dto.UpdateComplaintRequest) (*dto.ComplaintResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.ComplaintRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.ComplaintStatus.IsSettled() {
		return nil, ierr.NewError("complaint is settled").
			WithHint("Settled complaints cannot be edited").
			Mark(ierr.ErrInvalidOperation)
	}

	if req.Subject != nil {
		c.Subject = *req.Subject
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Category != nil {
		c.Category = *req.Category
	}
	if req.Priority != nil {
		c.Priority = *req.Priority
	}
	if req.SLADays != nil {
		c.SLADays = *req.SLADays
	}

	if err := s.ComplaintRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, entityTypeComplaint, c.ID, types.ActivityActionUpdated, nil)

	return dto.NewComplaintResponse(c, time.Now().UTC()), nil
}

func (s *complaintService) AssignComplaint(ctx context.Context, id string, req dto.AssignComplaintRequest) (*dto.ComplaintResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.ComplaintRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.ComplaintStatus.IsSettled() {
		return nil, ierr.NewError("complaint is settled").
			WithHint("Settled complaints cannot be reassigned").
			Mark(ierr.ErrInvalidOperation)
	}

	if _, err := s.UserRepo.Get(ctx, req.AssigneeID); err != nil {
		return nil, err
	}

	c.AssigneeID = &req.AssigneeID
	if c.ComplaintStatus == types.ComplaintStatusOpen {
		c.ComplaintStatus = types.ComplaintStatusAssigned
	}

	if err := s.ComplaintRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, entityTypeComplaint, c.ID, types.ActivityActionAssigned, map[string]any{
		"assignee_id": req.AssigneeID,
	})

	return dto.NewComplaintResponse(c, time.Now().UTC()), nil
}

func (s *complaintService) StartProgress(ctx context.Context, id string) (*dto.ComplaintResponse, error) {
	c, err := s.ComplaintRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.ComplaintStatus != types.ComplaintStatusAssigned {
		return nil, ierr.NewError("complaint is not assigned").
			WithHint("Only assigned complaints can move to in progress").
			Mark(ierr.ErrInvalidOperation)
	}

	c.ComplaintStatus = types.ComplaintStatusInProgress
	if err := s.ComplaintRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return dto.NewComplaintResponse(c, time.Now().UTC()), nil
}

func (s *complaintService) ResolveComplaint(ctx context.Context, id string, req dto.ResolveComplaintRequest) (*dto.ComplaintResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.ComplaintRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.ComplaintStatus.IsSettled() {
		return nil, ierr.NewError("complaint is already settled").
			WithHintf("Complaint %s is already %s", c.Reference, c.ComplaintStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	now := time.Now().UTC()
	c.Resolution = &req.Resolution
	c.ResolvedAt = &now
	if req.Close {
		c.ComplaintStatus = types.ComplaintStatusClosed
	} else {
		c.ComplaintStatus = types.ComplaintStatusResolved
	}

	if err := s.ComplaintRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, entityTypeComplaint, c.ID, types.ActivityActionResolved, map[string]any{
		"reference": c.Reference,
		"closed":    req.Close,
	})

	return dto.NewComplaintResponse(c, now), nil
}

func (s *complaintService) ListComplaints(ctx context.Context, filter *types.ComplaintFilter) (*dto.ListComplaintsResponse, error) {
	if filter == nil {
		filter = types.NewComplaintFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	complaints, err := s.ComplaintRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.ComplaintRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]*dto.ComplaintResponse, 0, len(complaints))
	for _, c := range complaints {
		resp := dto.NewComplaintResponse(c, now)
		if filter.OverdueOnly && !resp.Overdue {
			continue
		}
		items = append(items, resp)
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// RunSLAScan walks unsettled complaints and reports the ones past
// their SLA deadline. When notify is set the overdue references are
// emailed as a digest.
func (s *complaintService) RunSLAScan(ctx context.Context, notify bool, notifyTo string) (*dto.SLAScanResponse, error) {
	complaints, err := s.ComplaintRepo.ListUnsettled(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	resp := &dto.SLAScanResponse{Scanned: len(complaints)}

	for _, c := range complaints {
		if c.IsOverdue(now) {
			resp.Overdue++
			resp.OverdueReferences = append(resp.OverdueReferences, c.Reference)
		}
	}

	s.Logger.Infow("complaint SLA scan complete",
		"scanned", resp.Scanned,
		"overdue", resp.Overdue,
	)

	if notify && resp.Overdue > 0 && s.Email != nil && notifyTo != "" {
		s.Email.SendOverdueComplaintsDigest(ctx, notifyTo, resp.OverdueReferences)
	}

	return resp, nil
}
