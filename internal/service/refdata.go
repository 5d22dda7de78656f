package service

import (
	"context"
	"time"

	"github.com/pathways-hq/pathways/internal/api/dto"
	"github.com/pathways-hq/pathways/internal/cache"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/types"
)

// RefDataService manages the reference entities candidates are linked
// to. Single-entity reads are cached; writes invalidate the entity's
// cache prefix.
type RefDataService interface {
	CreateCampus(ctx context.Context, req dto.CreateCampusRequest) (*dto.CampusResponse, error)
	GetCampus(ctx context.Context, id string) (*dto.CampusResponse, error)
	UpdateCampus(ctx context.Context, id string, req dto.UpdateCampusRequest) (*dto.CampusResponse, error)
	DeleteCampus(ctx context.Context, id string) error
	ListCampuses(ctx context.Context, filter *types.QueryFilter) (*dto.ListCampusesResponse, error)

	CreateTrade(ctx context.Context, req dto.CreateTradeRequest) (*dto.TradeResponse, error)
	GetTrade(ctx context.Context, id string) (*dto.TradeResponse, error)
	UpdateTrade(ctx context.Context, id string, req dto.UpdateTradeRequest) (*dto.TradeResponse, error)
	DeleteTrade(ctx context.Context, id string) error
	ListTrades(ctx context.Context, filter *types.QueryFilter) (*dto.ListTradesResponse, error)

	CreateBatch(ctx context.Context, req dto.CreateBatchRequest) (*dto.BatchResponse, error)
	GetBatch(ctx context.Context, id string) (*dto.BatchResponse, error)
	UpdateBatch(ctx context.Context, id string, req dto.UpdateBatchRequest) (*dto.BatchResponse, error)
	DeleteBatch(ctx context.Context, id string) error
	ListBatches(ctx context.Context, filter *types.BatchFilter) (*dto.ListBatchesResponse, error)

	CreateOEP(ctx context.Context, req dto.CreateOEPRequest) (*dto.OEPResponse, error)
	GetOEP(ctx context.Context, id string) (*dto.OEPResponse, error)
	UpdateOEP(ctx context.Context, id string, req dto.UpdateOEPRequest) (*dto.OEPResponse, error)
	DeleteOEP(ctx context.Context, id string) error
	ListOEPs(ctx context.Context, filter *types.QueryFilter) (*dto.ListOEPsResponse, error)

	CreateInstructor(ctx context.Context, req dto.CreateInstructorRequest) (*dto.InstructorResponse, error)
	GetInstructor(ctx context.Context, id string) (*dto.InstructorResponse, error)
	UpdateInstructor(ctx context.Context, id string, req dto.UpdateInstructorRequest) (*dto.InstructorResponse, error)
	DeleteInstructor(ctx context.Context, id string) error
	ListInstructors(ctx context.Context, filter *types.QueryFilter) (*dto.ListInstructorsResponse, error)

	CreateEmployer(ctx context.Context, req dto.CreateEmployerRequest) (*dto.EmployerResponse, error)
	GetEmployer(ctx context.Context, id string) (*dto.EmployerResponse, error)
	UpdateEmployer(ctx context.Context, id string, req dto.UpdateEmployerRequest) (*dto.EmployerResponse, error)
	DeleteEmployer(ctx context.Context, id string) error
	ListEmployers(ctx context.Context, filter *types.QueryFilter) (*dto.ListEmployersResponse, error)
}

type refDataService struct {
	ServiceParams
}

func NewRefDataService(params ServiceParams) RefDataService {
	return &refDataService{ServiceParams: params}
}

func (s *refDataService) cacheTTL() time.Duration {
	return time.Duration(s.Config.Cache.TTLSeconds) * time.Second
}

func (s *refDataService) invalidate(ctx context.Context, prefix string) {
	if s.Cache != nil {
		s.Cache.DeleteByPrefix(ctx, prefix)
	}
}

// Campus

func (s *refDataService) CreateCampus(ctx context.Context, req dto.CreateCampusRequest) (*dto.CampusResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	campus := req.ToCampus(ctx)
	if err := s.CampusRepo.Create(ctx, campus); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.PrefixCampus)
	s.publishActivity(ctx, entityTypeCampus, campus.ID, types.ActivityActionCreated, nil)
	return &dto.CampusResponse{Campus: campus}, nil
}

func (s *refDataService) GetCampus(ctx context.Context, id string) (*dto.CampusResponse, error) {
	key := cache.GenerateKey(cache.PrefixCampus, id)
	if s.Cache != nil {
		if cached, found := s.Cache.Get(ctx, key); found {
			if resp, ok := cached.(*dto.CampusResponse); ok {
				return resp, nil
			}
		}
	}

	campus, err := s.CampusRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &dto.CampusResponse{Campus: campus}
	if s.Cache != nil {
		s.Cache.Set(ctx, key, resp, s.cacheTTL())
	}
	return resp, nil
}

func (s *refDataService) UpdateCampus(ctx context.Context, id string, req dto.UpdateCampusRequest) (*dto.CampusResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	campus, err := s.CampusRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		campus.Name = *req.Name
	}
	if req.City != nil {
		campus.City = *req.City
	}
	if req.District != nil {
		campus.District = *req.District
	}
	if req.Address != nil {
		campus.Address = *req.Address
	}
	if err := s.CampusRepo.Update(ctx, campus); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.PrefixCampus)
	s.publishActivity(ctx, entityTypeCampus, campus.ID, types.ActivityActionUpdated, nil)
	return &dto.CampusResponse{Campus: campus}, nil
}

func (s *refDataService) DeleteCampus(ctx context.Context, id string) error {
	if _, err := s.CampusRepo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.CampusRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.PrefixCampus)
	s.publishActivity(ctx, entityTypeCampus, id, types.ActivityActionDeleted, nil)
	return nil
}

func (s *refDataService) ListCampuses(ctx context.Context, filter *types.QueryFilter) (*dto.ListCampusesResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	campuses, err := s.CampusRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.CampusRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.CampusResponse, len(campuses))
	for i, c := range campuses {
		items[i] = &dto.CampusResponse{Campus: c}
	}
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// Trade

func (s *refDataService) CreateTrade(ctx context.Context, req dto.CreateTradeRequest) (*dto.TradeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	trade := req.ToTrade(ctx)
	if err := s.TradeRepo.Create(ctx, trade); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.PrefixTrade)
	s.publishActivity(ctx, entityTypeTrade, trade.ID, types.ActivityActionCreated, nil)
	return &dto.TradeResponse{Trade: trade}, nil
}

func (s *refDataService) GetTrade(ctx context.Context, id string) (*dto.TradeResponse, error) {
	key := cache.GenerateKey(cache.PrefixTrade, id)
	if s.Cache != nil {
		if cached, found := s.Cache.Get(ctx, key); found {
			if resp, ok := cached.(*dto.TradeResponse); ok {
				return resp, nil
			}
		}
	}

	trade, err := s.TradeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &dto.TradeResponse{Trade: trade}
	if s.Cache != nil {
		s.Cache.Set(ctx, key, resp, s.cacheTTL())
	}
	return resp, nil
}

func (s *refDataService) UpdateTrade(ctx context.Context, id string, req dto.UpdateTradeRequest) (*dto.TradeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	trade, err := s.TradeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		trade.Name = *req.Name
	}
	if req.Code != nil {
		trade.Code = *req.Code
	}
	if req.DurationWeeks != nil {
		trade.DurationWeeks = *req.DurationWeeks
	}
	if err := s.TradeRepo.Update(ctx, trade); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.PrefixTrade)
	s.publishActivity(ctx, entityTypeTrade, trade.ID, types.ActivityActionUpdated, nil)
	return &dto.TradeResponse{Trade: trade}, nil
}

func (s *refDataService) DeleteTrade(ctx context.Context, id string) error {
	if _, err := s.TradeRepo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.TradeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.PrefixTrade)
	s.publishActivity(ctx, entityTypeTrade, id, types.ActivityActionDeleted, nil)
	return nil
}

func (s *refDataService) ListTrades(ctx context.Context, filter *types.QueryFilter) (*dto.ListTradesResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	trades, err := s.TradeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.TradeRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.TradeResponse, len(trades))
	for i, t := range trades {
		items[i] = &dto.TradeResponse{Trade: t}
	}
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// Batch

func (s *refDataService) CreateBatch(ctx context.Context, req dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.CampusRepo.Get(ctx, req.CampusID); err != nil {
		return nil, err
	}
	if _, err := s.TradeRepo.Get(ctx, req.TradeID); err != nil {
		return nil, err
	}
	if req.InstructorID != nil && *req.InstructorID != "" {
		if _, err := s.InstructorRepo.Get(ctx, *req.InstructorID); err != nil {
			return nil, err
		}
	}

	batch := req.ToBatch(ctx)
	if err := s.BatchRepo.Create(ctx, batch); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.PrefixBatch)
	s.publishActivity(ctx, entityTypeBatch, batch.ID, types.ActivityActionCreated, nil)
	return &dto.BatchResponse{Batch: batch}, nil
}

func (s *refDataService) GetBatch(ctx context.Context, id string) (*dto.BatchResponse, error) {
	batch, err := s.BatchRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	enrolled, err := s.CandidateRepo.CountByBatch(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.BatchResponse{Batch: batch, EnrolledCount: enrolled}, nil
}

func (s *refDataService) UpdateBatch(ctx context.Context, id string, req dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	batch, err := s.BatchRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		batch.Name = *req.Name
	}
	if req.InstructorID != nil {
		batch.InstructorID = req.InstructorID
	}
	if req.Capacity != nil {
		batch.Capacity = *req.Capacity
	}
	if req.StartDate != nil {
		batch.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		batch.EndDate = req.EndDate
	}
	if req.BatchStatus != nil {
		batch.BatchStatus = *req.BatchStatus
	}
	if err := s.BatchRepo.Update(ctx, batch); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.PrefixBatch)
	s.publishActivity(ctx, entityTypeBatch, batch.ID, types.ActivityActionUpdated, nil)
	return &dto.BatchResponse{Batch: batch}, nil
}

func (s *refDataService) DeleteBatch(ctx context.Context, id string) error {
	if _, err := s.BatchRepo.Get(ctx, id); err != nil {
		return err
	}
	enrolled, err := s.CandidateRepo.CountByBatch(ctx, id)
	if err != nil {
		return err
	}
	if enrolled > 0 {
		return ierr.NewError("batch has enrolled candidates").
			WithHintf("Batch still has %d enrolled candidates", enrolled).
			Mark(ierr.ErrInvalidOperation)
	}
	if err := s.BatchRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.PrefixBatch)
	s.publishActivity(ctx, entityTypeBatch, id, types.ActivityActionDeleted, nil)
	return nil
}

func (s *refDataService) ListBatches(ctx context.Context, filter *types.BatchFilter) (*dto.ListBatchesResponse, error) {
	if filter == nil {
		filter = types.NewBatchFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	batches, err := s.BatchRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.BatchRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.BatchResponse, len(batches))
	for i, b := range batches {
		enrolled, err := s.CandidateRepo.CountByBatch(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		items[i] = &dto.BatchResponse{Batch: b, EnrolledCount: enrolled}
	}
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// OEP

func (s *refDataService) CreateOEP(ctx context.Context, req dto.CreateOEPRequest) (*dto.OEPResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	oep := req.ToOEP(ctx)
	if err := s.OEPRepo.Create(ctx, oep); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.PrefixOEP)
	s.publishActivity(ctx, entityTypeOEP, oep.ID, types.ActivityActionCreated, nil)
	return &dto.OEPResponse{OEP: oep}, nil
}

func (s *refDataService) GetOEP(ctx context.Context, id string) (*dto.OEPResponse, error) {
	key := cache.GenerateKey(cache.PrefixOEP, id)
	if s.Cache != nil {
		if cached, found := s.Cache.Get(ctx, key); found {
			if resp, ok := cached.(*dto.OEPResponse); ok {
				return resp, nil
			}
		}
	}

	oep, err := s.OEPRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &dto.OEPResponse{OEP: oep}
	if s.Cache != nil {
		s.Cache.Set(ctx, key, resp, s.cacheTTL())
	}
	return resp, nil
}

func (s *refDataService) UpdateOEP(ctx context.Context, id string, req dto.UpdateOEPRequest) (*dto.OEPResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	oep, err := s.OEPRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		oep.Name = *req.Name
	}
	if req.LicenseNumber != nil {
		oep.LicenseNumber = *req.LicenseNumber
	}
	if req.ContactPerson != nil {
		oep.ContactPerson = *req.ContactPerson
	}
	if req.Phone != nil {
		oep.Phone = *req.Phone
	}
	if req.Email != nil {
		oep.Email = *req.Email
	}
	if err := s.OEPRepo.Update(ctx, oep); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.PrefixOEP)
	s.publishActivity(ctx, entityTypeOEP, oep.ID, types.ActivityActionUpdated, nil)
	return &dto.OEPResponse{OEP: oep}, nil
}

func (s *refDataService) DeleteOEP(ctx context.Context, id string) error {
	if _, err := s.OEPRepo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.OEPRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.PrefixOEP)
	s.publishActivity(ctx, entityTypeOEP, id, types.ActivityActionDeleted, nil)
	return nil
}

func (s *refDataService) ListOEPs(ctx context.Context, filter *types.QueryFilter) (*dto.ListOEPsResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	oeps, err := s.OEPRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.OEPRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.OEPResponse, len(oeps))
	for i, o := range oeps {
		items[i] = &dto.OEPResponse{OEP: o}
	}
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// Instructor

func (s *refDataService) CreateInstructor(ctx context.Context, req dto.CreateInstructorRequest) (*dto.InstructorResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	instructor := req.ToInstructor(ctx)
	if err := s.InstructorRepo.Create(ctx, instructor); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.PrefixInstructor)
	s.publishActivity(ctx, entityTypeInstructor, instructor.ID, types.ActivityActionCreated, nil)
	return &dto.InstructorResponse{Instructor: instructor}, nil
}

func (s *refDataService) GetInstructor(ctx context.Context, id string) (*dto.InstructorResponse, error) {
	instructor, err := s.InstructorRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.InstructorResponse{Instructor: instructor}, nil
}

func (s *refDataService) UpdateInstructor(ctx context.Context, id string, req dto.UpdateInstructorRequest) (*dto.InstructorResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	instructor, err := s.InstructorRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		instructor.Name = *req.Name
	}
	if req.Phone != nil {
		instructor.Phone = *req.Phone
	}
	if req.CampusID != nil {
		instructor.CampusID = req.CampusID
	}
	if req.TradeID != nil {
		instructor.TradeID = req.TradeID
	}
	if err := s.InstructorRepo.Update(ctx, instructor); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.PrefixInstructor)
	s.publishActivity(ctx, entityTypeInstructor, instructor.ID, types.ActivityActionUpdated, nil)
	return &dto.InstructorResponse{Instructor: instructor}, nil
}

func (s *refDataService) DeleteInstructor(ctx context.Context, id string) error {
	if _, err := s.InstructorRepo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.InstructorRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.PrefixInstructor)
	s.publishActivity(ctx, entityTypeInstructor, id, types.ActivityActionDeleted, nil)
	return nil
}

func (s *refDataService) ListInstructors(ctx context.Context, filter *types.QueryFilter) (*dto.ListInstructorsResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	instructors, err := s.InstructorRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.InstructorRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.InstructorResponse, len(instructors))
	for i, in := range instructors {
		items[i] = &dto.InstructorResponse{Instructor: in}
	}
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// Employer

func (s *refDataService) CreateEmployer(ctx context.Context, req dto.CreateEmployerRequest) (*dto.EmployerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	employer := req.ToEmployer(ctx)
	if err := s.EmployerRepo.Create(ctx, employer); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.PrefixEmployer)
	s.publishActivity(ctx, entityTypeEmployer, employer.ID, types.ActivityActionCreated, nil)
	return &dto.EmployerResponse{Employer: employer}, nil
}

func (s *refDataService) GetEmployer(ctx context.Context, id string) (*dto.EmployerResponse, error) {
	key := cache.GenerateKey(cache.PrefixEmployer, id)
	if s.Cache != nil {
		if cached, found := s.Cache.Get(ctx, key); found {
			if resp, ok := cached.(*dto.EmployerResponse); ok {
				return resp, nil
			}
		}
	}

	employer, err := s.EmployerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &dto.EmployerResponse{Employer: employer}
	if s.Cache != nil {
		s.Cache.Set(ctx, key, resp, s.cacheTTL())
	}
	return resp, nil
}

func (s *refDataService) UpdateEmployer(ctx context.Context, id string, req dto.UpdateEmployerRequest) (*dto.EmployerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	employer, err := s.EmployerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		employer.Name = *req.Name
	}
	if req.Country != nil {
		employer.Country = *req.Country
	}
	if req.City != nil {
		employer.City = *req.City
	}
	if req.ContactPerson != nil {
		employer.ContactPerson = *req.ContactPerson
	}
	if req.Phone != nil {
		employer.Phone = *req.Phone
	}
	if err := s.EmployerRepo.Update(ctx, employer); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.PrefixEmployer)
	s.publishActivity(ctx, entityTypeEmployer, employer.ID, types.ActivityActionUpdated, nil)
	return &dto.EmployerResponse{Employer: employer}, nil
}

func (s *refDataService) DeleteEmployer(ctx context.Context, id string) error {
	if _, err := s.EmployerRepo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.EmployerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.PrefixEmployer)
	s.publishActivity(ctx, entityTypeEmployer, id, types.ActivityActionDeleted, nil)
	return nil
}

func (s *refDataService) ListEmployers(ctx context.Context, filter *types.QueryFilter) (*dto.ListEmployersResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	employers, err := s.EmployerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.EmployerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.EmployerResponse, len(employers))
	for i, e := range employers {
		items[i] = &dto.EmployerResponse{Employer: e}
	}
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}
