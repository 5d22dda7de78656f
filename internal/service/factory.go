package service

import (
	"context"

	activitypub "github.com/pathways-hq/pathways/internal/activity"
	"github.com/pathways-hq/pathways/internal/cache"
	"github.com/pathways-hq/pathways/internal/config"
	"github.com/pathways-hq/pathways/internal/domain/activity"
	"github.com/pathways-hq/pathways/internal/domain/candidate"
	"github.com/pathways-hq/pathways/internal/domain/complaint"
	"github.com/pathways-hq/pathways/internal/domain/departure"
	"github.com/pathways-hq/pathways/internal/domain/document"
	"github.com/pathways-hq/pathways/internal/domain/refdata"
	"github.com/pathways-hq/pathways/internal/domain/remittance"
	"github.com/pathways-hq/pathways/internal/domain/user"
	"github.com/pathways-hq/pathways/internal/email"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/postgres"
	"github.com/pathways-hq/pathways/internal/s3"
	"github.com/pathways-hq/pathways/internal/types"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     *postgres.DB
	Cache  cache.Cache
	S3     s3.Service
	Email  email.Service

	// Repositories
	CandidateRepo       candidate.Repository
	DepartureRepo       departure.Repository
	ComplaintRepo       complaint.Repository
	RemittanceRepo      remittance.Repository
	RemittanceAlertRepo remittance.AlertRepository
	DocumentRepo        document.Repository
	CampusRepo          refdata.CampusRepository
	TradeRepo           refdata.TradeRepository
	BatchRepo           refdata.BatchRepository
	OEPRepo             refdata.OEPRepository
	InstructorRepo      refdata.InstructorRepository
	EmployerRepo        refdata.EmployerRepository
	UserRepo            user.Repository
	ActivityRepo        activity.Repository

	// Publishers
	ActivityPublisher activitypub.Publisher
}

// NewServiceParams builds the common service dependency set
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db *postgres.DB,
	cacheClient cache.Cache,
	s3Service s3.Service,
	emailService email.Service,
	candidateRepo candidate.Repository,
	departureRepo departure.Repository,
	complaintRepo complaint.Repository,
	remittanceRepo remittance.Repository,
	remittanceAlertRepo remittance.AlertRepository,
	documentRepo document.Repository,
	campusRepo refdata.CampusRepository,
	tradeRepo refdata.TradeRepository,
	batchRepo refdata.BatchRepository,
	oepRepo refdata.OEPRepository,
	instructorRepo refdata.InstructorRepository,
	employerRepo refdata.EmployerRepository,
	userRepo user.Repository,
	activityRepo activity.Repository,
	activityPublisher activitypub.Publisher,
) ServiceParams {
	return ServiceParams{
		Logger:              logger,
		Config:              config,
		DB:                  db,
		Cache:               cacheClient,
		S3:                  s3Service,
		Email:               emailService,
		CandidateRepo:       candidateRepo,
		DepartureRepo:       departureRepo,
		ComplaintRepo:       complaintRepo,
		RemittanceRepo:      remittanceRepo,
		RemittanceAlertRepo: remittanceAlertRepo,
		DocumentRepo:        documentRepo,
		CampusRepo:          campusRepo,
		TradeRepo:           tradeRepo,
		BatchRepo:           batchRepo,
		OEPRepo:             oepRepo,
		InstructorRepo:      instructorRepo,
		EmployerRepo:        employerRepo,
		UserRepo:            userRepo,
		ActivityRepo:        activityRepo,
		ActivityPublisher:   activityPublisher,
	}
}

// publishActivity emits an activity event without failing the calling
// operation. Activity logging is observability, not business state.
func (p ServiceParams) publishActivity(ctx context.Context, entityType, entityID, action string, detail map[string]any) {
	if p.ActivityPublisher == nil {
		return
	}
	event := types.NewActivityEvent(entityType, entityID, action, types.GetUserID(ctx), detail)
	if err := p.ActivityPublisher.Publish(ctx, event); err != nil {
		p.Logger.Errorw("failed to publish activity event",
			"entity_type", entityType,
			"entity_id", entityID,
			"action", action,
			"error", err,
		)
	}
}

// Activity entity type names
const (
	entityTypeCandidate  = "candidate"
	entityTypeDeparture  = "departure"
	entityTypeComplaint  = "complaint"
	entityTypeRemittance = "remittance"
	entityTypeAlert      = "remittance_alert"
	entityTypeDocument   = "document"
	entityTypeCampus     = "campus"
	entityTypeTrade      = "trade"
	entityTypeBatch      = "batch"
	entityTypeOEP        = "oep"
	entityTypeInstructor = "instructor"
	entityTypeEmployer   = "employer"
	entityTypeUser       = "user"
	entityTypeReport     = "report"
)
