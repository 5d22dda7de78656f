package service

import (
	"testing"
	"time"

	"github.com/pathways-hq/pathways/internal/api/dto"
	"github.com/pathways-hq/pathways/internal/domain/complaint"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/testutil"
	"github.com/pathways-hq/pathways/internal/types"
	"github.com/stretchr/testify/suite"
)

type ComplaintServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ComplaintService
}

func TestComplaintService(t *testing.T) {
	suite.Run(t, new(ComplaintServiceSuite))
}

func (s *ComplaintServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewComplaintService(ServiceParams{
		Logger:            s.GetLogger(),
		Config:            s.GetConfig(),
		CandidateRepo:     stores.Candidate,
		ComplaintRepo:     stores.Complaint,
		ActivityPublisher: s.GetPublisher(),
	})
}

func (s *ComplaintServiceSuite) seedComplaint(created time.Time, slaDays int, status types.ComplaintStatus) *complaint.Complaint {
	c := &complaint.Complaint{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COMPLAINT),
		Reference:       types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_COMPLAINT),
		Subject:         "Unpaid wages",
		Description:     "Employer has not paid for two months",
		Category:        "wages",
		Priority:        types.ComplaintPriorityHigh,
		ComplaintStatus: status,
		SLADays:         slaDays,
		BaseModel:       types.GetDefaultBaseModel(s.GetContext()),
	}
	c.CreatedAt = created
	s.Require().NoError(s.GetStores().Complaint.Create(s.GetContext(), c))
	return c
}

func (s *ComplaintServiceSuite) TestCreateComplaintDefaults() {
	resp, err := s.service.CreateComplaint(s.GetContext(), dto.CreateComplaintRequest{
		Subject:     "Passport withheld",
		Description: "Employer is holding the passport",
		Category:    "documents",
		Priority:    types.ComplaintPriorityCritical,
	})
	s.Require().NoError(err)

	s.NotEmpty(resp.Reference)
	s.Equal(types.ComplaintStatusOpen, resp.ComplaintStatus)
	s.Equal(0, resp.SLADays)
	// With no SLA of its own the complaint falls to the 72 hour default
	s.Equal(resp.CreatedAt.Add(72*time.Hour), resp.SLADeadline)
	s.False(resp.Overdue)
}

func (s *ComplaintServiceSuite) TestCreateComplaintRejectsUnknownCandidate() {
	candidateID := "cand_missing"
	_, err := s.service.CreateComplaint(s.GetContext(), dto.CreateComplaintRequest{
		CandidateID: &candidateID,
		Subject:     "Test",
		Description: "Test",
		Category:    "other",
		Priority:    types.ComplaintPriorityLow,
	})
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ComplaintServiceSuite) TestSLAScanFlagsBreachedComplaints() {
	now := time.Now().UTC()

	// Three-day SLA breached a day ago
	overdue := s.seedComplaint(now.AddDate(0, 0, -4), 3, types.ComplaintStatusInProgress)
	// Same age but already resolved, must not count
	s.seedComplaint(now.AddDate(0, 0, -4), 3, types.ComplaintStatusResolved)
	// Fresh complaint well within its SLA
	s.seedComplaint(now.Add(-2*time.Hour), 3, types.ComplaintStatusOpen)

	resp, err := s.service.RunSLAScan(s.GetContext(), false, "")
	s.Require().NoError(err)

	s.Equal(2, resp.Scanned)
	s.Equal(1, resp.Overdue)
	s.Equal([]string{overdue.Reference}, resp.OverdueReferences)
}

func (s *ComplaintServiceSuite) TestResolveComplaint() {
	c := s.seedComplaint(time.Now().UTC(), 3, types.ComplaintStatusInProgress)

	resp, err := s.service.ResolveComplaint(s.GetContext(), c.ID, dto.ResolveComplaintRequest{
		Resolution: "Wages recovered through the labor attache",
	})
	s.Require().NoError(err)
	s.Equal(types.ComplaintStatusResolved, resp.ComplaintStatus)
	s.NotNil(resp.ResolvedAt)
	s.False(resp.Overdue)

	// A second resolution attempt must fail
	_, err = s.service.ResolveComplaint(s.GetContext(), c.ID, dto.ResolveComplaintRequest{
		Resolution: "Duplicate",
	})
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ComplaintServiceSuite) TestResolveWithCloseFlag() {
	c := s.seedComplaint(time.Now().UTC(), 0, types.ComplaintStatusOpen)

	resp, err := s.service.ResolveComplaint(s.GetContext(), c.ID, dto.ResolveComplaintRequest{
		Resolution: "Withdrawn by the complainant",
		Close:      true,
	})
	s.Require().NoError(err)
	s.Equal(types.ComplaintStatusClosed, resp.ComplaintStatus)
}

func (s *ComplaintServiceSuite) TestStartProgressRequiresAssignment() {
	c := s.seedComplaint(time.Now().UTC(), 3, types.ComplaintStatusOpen)

	_, err := s.service.StartProgress(s.GetContext(), c.ID)
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
}
