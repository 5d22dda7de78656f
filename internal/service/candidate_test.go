package service

import (
	"testing"
	"time"

	"github.com/pathways-hq/pathways/internal/api/dto"
	"github.com/pathways-hq/pathways/internal/domain/candidate"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/testutil"
	"github.com/pathways-hq/pathways/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type CandidateServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CandidateService
}

func TestCandidateService(t *testing.T) {
	suite.Run(t, new(CandidateServiceSuite))
}

func (s *CandidateServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewCandidateService(ServiceParams{
		Logger:            s.GetLogger(),
		Config:            s.GetConfig(),
		CandidateRepo:     stores.Candidate,
		DepartureRepo:     stores.Departure,
		ActivityPublisher: s.GetPublisher(),
	})
}

func (s *CandidateServiceSuite) seedCandidate(status types.CandidateStatus) *candidate.Candidate {
	c := &candidate.Candidate{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CANDIDATE),
		FullName:        "Ahmed Khan",
		CNIC:            "35202-1234567-1",
		Phone:           "+923001234567",
		Gender:          "male",
		District:        "Lahore",
		CandidateStatus: status,
		BaseModel:       types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().Candidate.Create(s.GetContext(), c))
	return c
}

func (s *CandidateServiceSuite) TestTransitionRejectsPipelineSkip() {
	c := s.seedCandidate(types.CandidateStatusTraining)
	c.VisaNumber = lo.ToPtr("V-9999")

	departed := time.Now().UTC()
	_, err := s.service.TransitionCandidate(s.GetContext(), c.ID, dto.TransitionCandidateRequest{
		ToStatus:           types.CandidateStatusDeparted,
		DepartureDate:      &departed,
		DestinationCountry: "Saudi Arabia",
	})
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
	s.Contains(err.Error(), string(types.CandidateStatusVisaProcessing))

	// The candidate's status must be untouched and no transition recorded
	got, getErr := s.GetStores().Candidate.Get(s.GetContext(), c.ID)
	s.Require().NoError(getErr)
	s.Equal(types.CandidateStatusTraining, got.CandidateStatus)

	transitions, listErr := s.GetStores().Candidate.ListTransitions(s.GetContext(), c.ID)
	s.Require().NoError(listErr)
	s.Empty(transitions)
}

func (s *CandidateServiceSuite) TestTransitionRejectsMissingPrerequisites() {
	c := s.seedCandidate(types.CandidateStatusVisaProcessing)
	// No visa number on record

	departed := time.Now().UTC()
	_, err := s.service.TransitionCandidate(s.GetContext(), c.ID, dto.TransitionCandidateRequest{
		ToStatus:           types.CandidateStatusDeparted,
		DepartureDate:      &departed,
		DestinationCountry: "Saudi Arabia",
	})
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
	s.Contains(err.Error(), "visa_number")
}

func (s *CandidateServiceSuite) TestTransitionToDepartedRequiresDepartureDetails() {
	c := s.seedCandidate(types.CandidateStatusVisaProcessing)
	c.VisaNumber = lo.ToPtr("V-9999")

	_, err := s.service.TransitionCandidate(s.GetContext(), c.ID, dto.TransitionCandidateRequest{
		ToStatus: types.CandidateStatusDeparted,
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CandidateServiceSuite) TestTransitionRejectsSameStatus() {
	c := s.seedCandidate(types.CandidateStatusScreening)

	_, err := s.service.TransitionCandidate(s.GetContext(), c.ID, dto.TransitionCandidateRequest{
		ToStatus: types.CandidateStatusScreening,
	})
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *CandidateServiceSuite) TestGetPipelineSummary() {
	s.seedCandidateWithCNIC(types.CandidateStatusListed, "35202-0000001-1")
	s.seedCandidateWithCNIC(types.CandidateStatusListed, "35202-0000002-1")
	s.seedCandidateWithCNIC(types.CandidateStatusTraining, "35202-0000003-1")
	s.seedCandidateWithCNIC(types.CandidateStatusDeparted, "35202-0000004-1")
	s.seedCandidateWithCNIC(types.CandidateStatusRejected, "35202-0000005-1")

	resp, err := s.service.GetPipelineSummary(s.GetContext())
	s.Require().NoError(err)

	s.Equal(5, resp.Total)
	s.Equal(1, resp.Rejected)
	s.Equal(0, resp.Returned)
	s.Len(resp.Stages, len(types.CandidatePipelineOrder))

	// Listed holds the most candidates, so it is the bottleneck
	for _, stage := range resp.Stages {
		if stage.Status == types.CandidateStatusListed {
			s.Equal(2, stage.Count)
			s.True(stage.Bottleneck)
		} else {
			s.False(stage.Bottleneck)
		}
	}
}

func (s *CandidateServiceSuite) seedCandidateWithCNIC(status types.CandidateStatus, cnic string) *candidate.Candidate {
	c := &candidate.Candidate{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CANDIDATE),
		FullName:        "Test Candidate",
		CNIC:            cnic,
		Phone:           "+923000000000",
		Gender:          "female",
		District:        "Multan",
		CandidateStatus: status,
		BaseModel:       types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().Candidate.Create(s.GetContext(), c))
	return c
}

func (s *CandidateServiceSuite) TestCreateCandidateRejectsDuplicateCNIC() {
	s.seedCandidate(types.CandidateStatusListed)

	_, err := s.service.CreateCandidate(s.GetContext(), dto.CreateCandidateRequest{
		FullName: "Another Person",
		CNIC:     "35202-1234567-1",
		Phone:    "+923009999999",
		Gender:   "male",
		District: "Lahore",
	})
	s.Require().Error(err)
	s.True(ierr.IsAlreadyExists(err))
}
