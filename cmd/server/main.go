package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pathways-hq/pathways/internal/activity"
	"github.com/pathways-hq/pathways/internal/api"
	v1 "github.com/pathways-hq/pathways/internal/api/v1"
	"github.com/pathways-hq/pathways/internal/cache"
	"github.com/pathways-hq/pathways/internal/config"
	"github.com/pathways-hq/pathways/internal/email"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/postgres"
	"github.com/pathways-hq/pathways/internal/rbac"
	"github.com/pathways-hq/pathways/internal/repository"
	"github.com/pathways-hq/pathways/internal/s3"
	"github.com/pathways-hq/pathways/internal/service"
	"github.com/pathways-hq/pathways/internal/validator"
	"go.uber.org/fx"
)

// @title Pathways API
// @version 1.0
// @description Case management service for overseas labor migration
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,

			// Object storage
			s3.NewService,

			// Email
			email.NewClient,
			email.NewService,

			// RBAC
			rbac.NewRBACService,

			// Repositories
			repository.NewCandidateRepository,
			repository.NewDepartureRepository,
			repository.NewComplaintRepository,
			repository.NewRemittanceRepository,
			repository.NewRemittanceAlertRepository,
			repository.NewDocumentRepository,
			repository.NewCampusRepository,
			repository.NewTradeRepository,
			repository.NewBatchRepository,
			repository.NewOEPRepository,
			repository.NewInstructorRepository,
			repository.NewEmployerRepository,
			repository.NewUserRepository,
			repository.NewActivityRepository,
		),
	)

	// Activity event pipeline
	opts = append(opts, activity.Module)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewAuthService,
			service.NewUserService,
			service.NewCandidateService,
			service.NewDepartureService,
			service.NewComplaintService,
			service.NewRemittanceService,
			service.NewDocumentService,
			service.NewRefDataService,
			service.NewReportService,
			service.NewActivityService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	authService service.AuthService,
	userService service.UserService,
	candidateService service.CandidateService,
	departureService service.DepartureService,
	complaintService service.ComplaintService,
	remittanceService service.RemittanceService,
	documentService service.DocumentService,
	refDataService service.RefDataService,
	reportService service.ReportService,
	activityService service.ActivityService,
) api.Handlers {
	return api.Handlers{
		Auth:       v1.NewAuthHandler(authService, logger),
		User:       v1.NewUserHandler(userService, logger),
		Candidate:  v1.NewCandidateHandler(candidateService, logger),
		Departure:  v1.NewDepartureHandler(departureService, logger),
		Complaint:  v1.NewComplaintHandler(complaintService, logger),
		Remittance: v1.NewRemittanceHandler(remittanceService, logger),
		Document:   v1.NewDocumentHandler(documentService, logger),
		RefData:    v1.NewRefDataHandler(refDataService, logger),
		Report:     v1.NewReportHandler(reportService, logger),
		Activity:   v1.NewActivityHandler(activityService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger, rbacService *rbac.RBACService) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger, rbacService)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
