package testutil

import (
	"context"

	"github.com/pathways-hq/pathways/internal/config"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/types"
	"github.com/pathways-hq/pathways/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories shared by service test
// suites
type Stores struct {
	Candidate       *InMemoryCandidateStore
	Departure       *InMemoryDepartureStore
	Complaint       *InMemoryComplaintStore
	Remittance      *InMemoryRemittanceStore
	RemittanceAlert *InMemoryRemittanceAlertStore
}

// BaseServiceTestSuite provides common fixtures for service test
// suites: fresh in-memory stores, a default configuration, and a
// context carrying a test user.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	stores    Stores
	publisher *InMemoryActivityPublisher
	logger    *logger.Logger
	config    *config.Configuration
}

// SetupTest resets all fixtures before each test
func (s *BaseServiceTestSuite) SetupTest() {
	validator.NewValidator()

	s.ctx = context.WithValue(context.Background(), types.CtxUserID, "user_test")
	s.stores = Stores{
		Candidate:       NewInMemoryCandidateStore(),
		Departure:       NewInMemoryDepartureStore(),
		Complaint:       NewInMemoryComplaintStore(),
		Remittance:      NewInMemoryRemittanceStore(),
		RemittanceAlert: NewInMemoryRemittanceAlertStore(),
	}
	s.publisher = NewInMemoryActivityPublisher()
	s.config = config.GetDefaultConfig()

	log, err := logger.NewLogger()
	s.Require().NoError(err)
	s.logger = log
}

// GetContext returns the test context with an authenticated user
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the in-memory stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetPublisher returns the in-memory activity publisher
func (s *BaseServiceTestSuite) GetPublisher() *InMemoryActivityPublisher {
	return s.publisher
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the default test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}
