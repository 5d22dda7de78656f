package service

import (
	"testing"
	"time"

	"github.com/pathways-hq/pathways/internal/domain/departure"
	"github.com/pathways-hq/pathways/internal/testutil"
	"github.com/pathways-hq/pathways/internal/types"
	"github.com/stretchr/testify/suite"
)

type DepartureServiceSuite struct {
	testutil.BaseServiceTestSuite
	service DepartureService
}

func TestDepartureService(t *testing.T) {
	suite.Run(t, new(DepartureServiceSuite))
}

func (s *DepartureServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewDepartureService(ServiceParams{
		Logger:            s.GetLogger(),
		Config:            s.GetConfig(),
		CandidateRepo:     stores.Candidate,
		DepartureRepo:     stores.Departure,
		ActivityPublisher: s.GetPublisher(),
	})
}

// seedDeparture creates a departure with the default checklist, with
// the items named in met marked as satisfied.
func (s *DepartureServiceSuite) seedDeparture(departed time.Time, met ...string) *departure.Departure {
	ctx := s.GetContext()
	dep := &departure.Departure{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DEPARTURE),
		CandidateID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CANDIDATE),
		DepartureDate:      departed,
		DestinationCountry: "Saudi Arabia",
		ComplianceStatus:   types.ComplianceStatusPending,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	s.Require().NoError(s.GetStores().Departure.Create(ctx, dep))

	items := departure.DefaultChecklistItems(dep.ID)
	for _, item := range items {
		item.BaseModel = types.GetDefaultBaseModel(ctx)
		for _, code := range met {
			if item.Code == code {
				item.Met = true
				now := time.Now().UTC()
				item.MetAt = &now
			}
		}
	}
	s.Require().NoError(s.GetStores().Departure.CreateChecklistItems(ctx, items))
	return dep
}

func (s *DepartureServiceSuite) TestRunComplianceCheckHalfMetPastWindow() {
	now := time.Now().UTC()
	dep := s.seedDeparture(now.AddDate(0, 0, -95),
		types.ComplianceItemIqama, types.ComplianceItemAbsher)

	resp, err := s.service.RunComplianceCheck(s.GetContext(), dep.ID)
	s.Require().NoError(err)

	s.Equal(dep.ID, resp.DepartureID)
	s.Equal(types.ComplianceStatusNonCompliant, resp.Result.Status)
	s.Equal(50, resp.Result.Percentage)
	s.Equal(2, resp.Result.MetCount)
	s.Equal(4, resp.Result.TotalCount)

	// The derived score must be persisted onto the departure row
	stored, err := s.GetStores().Departure.Get(s.GetContext(), dep.ID)
	s.Require().NoError(err)
	s.Equal(types.ComplianceStatusNonCompliant, stored.ComplianceStatus)
	s.Equal(50, stored.CompliancePct)
	s.Equal("First salary confirmed; 90-day status report submitted", stored.FailingItems)
	s.NotNil(stored.LastCheckedAt)
}

func (s *DepartureServiceSuite) TestRunComplianceCheckFreshDeparture() {
	now := time.Now().UTC()
	dep := s.seedDeparture(now.AddDate(0, 0, -40))

	resp, err := s.service.RunComplianceCheck(s.GetContext(), dep.ID)
	s.Require().NoError(err)

	s.Equal(types.ComplianceStatusPending, resp.Result.Status)
	s.Equal(0, resp.Result.Percentage)
}

func (s *DepartureServiceSuite) TestRunComplianceScanCountsByStatus() {
	now := time.Now().UTC()
	s.seedDeparture(now.AddDate(0, 0, -100),
		types.ComplianceItemIqama,
		types.ComplianceItemAbsher,
		types.ComplianceItemSalary,
		types.ComplianceItemNinetyDayRpt)
	s.seedDeparture(now.AddDate(0, 0, -95), types.ComplianceItemIqama)
	s.seedDeparture(now.AddDate(0, 0, -10))

	resp, err := s.service.RunComplianceScan(s.GetContext(), false, false)
	s.Require().NoError(err)

	s.Equal(3, resp.Scanned)
	s.Equal(1, resp.Compliant)
	s.Equal(1, resp.NonCompliant)
	s.Equal(1, resp.Pending)
	s.Equal(0, resp.Partial)
	s.Equal(0, resp.Failed)
}

func (s *DepartureServiceSuite) TestRunComplianceScanDryRunDoesNotPersist() {
	now := time.Now().UTC()
	dep := s.seedDeparture(now.AddDate(0, 0, -95),
		types.ComplianceItemIqama, types.ComplianceItemAbsher)

	resp, err := s.service.RunComplianceScan(s.GetContext(), false, true)
	s.Require().NoError(err)

	// Counts reflect the evaluation
	s.True(resp.DryRun)
	s.Equal(1, resp.Scanned)
	s.Equal(1, resp.NonCompliant)

	// The stored row stays untouched
	stored, err := s.GetStores().Departure.Get(s.GetContext(), dep.ID)
	s.Require().NoError(err)
	s.Equal(types.ComplianceStatusPending, stored.ComplianceStatus)
	s.Equal(0, stored.CompliancePct)
	s.Empty(stored.FailingItems)
	s.Nil(stored.LastCheckedAt)

	// A real scan afterwards persists the score
	resp, err = s.service.RunComplianceScan(s.GetContext(), false, false)
	s.Require().NoError(err)
	s.False(resp.DryRun)

	stored, err = s.GetStores().Departure.Get(s.GetContext(), dep.ID)
	s.Require().NoError(err)
	s.Equal(types.ComplianceStatusNonCompliant, stored.ComplianceStatus)
	s.Equal(50, stored.CompliancePct)
	s.NotNil(stored.LastCheckedAt)
}
