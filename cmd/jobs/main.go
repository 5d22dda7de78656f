package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pathways-hq/pathways/internal/activity"
	"github.com/pathways-hq/pathways/internal/cache"
	"github.com/pathways-hq/pathways/internal/config"
	"github.com/pathways-hq/pathways/internal/email"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/postgres"
	"github.com/pathways-hq/pathways/internal/repository"
	"github.com/pathways-hq/pathways/internal/s3"
	"github.com/pathways-hq/pathways/internal/service"
	"github.com/pathways-hq/pathways/internal/validator"
)

const usage = `Usage: jobs <command> [flags]

Commands:
  compliance-check   Evaluate post-departure compliance for all open departures
  sla-check          Flag complaints that have breached their SLA deadline
  remittance-alerts  Scan departed candidates and raise remittance alerts
  document-expiry    List documents expiring within the coming window
  activity-cleanup   Delete old activity log entries
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	command := os.Args[1]
	args := os.Args[2:]

	validator.NewValidator()

	flags := flag.NewFlagSet(command, flag.ExitOnError)
	notify := flags.Bool("notify", false, "Send notification emails")
	notifyTo := flags.String("notify-to", "", "Recipient for digest emails")
	days := flags.Int("days", 0, "Day window for the command (expiry window or cleanup age)")
	dryRun := flags.Bool("dry-run", false, "Report what would be done without writing")
	if err := flags.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.NewLogger()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	db, err := postgres.NewDB(cfg, logg)
	if err != nil {
		logg.Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	s3Service, err := s3.NewService(cfg)
	if err != nil {
		logg.Fatalw("failed to initialize object storage", "error", err)
	}

	activityRepo := repository.NewActivityRepository(db, logg)

	ps, err := activity.NewPubSub(cfg, logg)
	if err != nil {
		logg.Fatalw("failed to initialize pubsub", "error", err)
	}
	publisher := activity.NewPublisher(ps, logg)
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	// Persist activity events emitted by the job itself
	consumer := activity.NewConsumer(ps, activityRepo, logg)
	if err := consumer.Start(ctx); err != nil {
		logg.Fatalw("failed to start activity consumer", "error", err)
	}

	params := service.NewServiceParams(
		logg,
		cfg,
		db,
		cache.NewInMemoryCache(),
		s3Service,
		email.NewService(email.NewClient(cfg), logg),
		repository.NewCandidateRepository(db, logg),
		repository.NewDepartureRepository(db, logg),
		repository.NewComplaintRepository(db, logg),
		repository.NewRemittanceRepository(db, logg),
		repository.NewRemittanceAlertRepository(db, logg),
		repository.NewDocumentRepository(db, logg),
		repository.NewCampusRepository(db, logg),
		repository.NewTradeRepository(db, logg),
		repository.NewBatchRepository(db, logg),
		repository.NewOEPRepository(db, logg),
		repository.NewInstructorRepository(db, logg),
		repository.NewEmployerRepository(db, logg),
		repository.NewUserRepository(db, logg),
		activityRepo,
		publisher,
	)

	if err := run(ctx, command, params, jobFlags{
		notify:   *notify,
		notifyTo: *notifyTo,
		days:     *days,
		dryRun:   *dryRun,
	}); err != nil {
		logg.Errorw("job failed", "command", command, "error", err)
		os.Exit(1)
	}

	// Give the consumer a moment to drain pending activity events
	time.Sleep(time.Second)
}

type jobFlags struct {
	notify   bool
	notifyTo string
	days     int
	dryRun   bool
}

func run(ctx context.Context, command string, params service.ServiceParams, f jobFlags) error {
	logg := params.Logger

	switch command {
	case "compliance-check":
		resp, err := service.NewDepartureService(params).RunComplianceScan(ctx, f.notify, f.dryRun)
		if err != nil {
			return err
		}
		logg.Infow("compliance scan complete",
			"scanned", resp.Scanned,
			"compliant", resp.Compliant,
			"partial", resp.Partial,
			"pending", resp.Pending,
			"non_compliant", resp.NonCompliant,
			"failed", resp.Failed,
			"dry_run", resp.DryRun,
		)
		return nil

	case "sla-check":
		if f.dryRun {
			return fmt.Errorf("--dry-run is not supported for %s", command)
		}
		resp, err := service.NewComplaintService(params).RunSLAScan(ctx, f.notify, f.notifyTo)
		if err != nil {
			return err
		}
		logg.Infow("sla scan complete",
			"scanned", resp.Scanned,
			"overdue", resp.Overdue,
			"references", resp.OverdueReferences,
		)
		return nil

	case "remittance-alerts":
		resp, err := service.NewRemittanceService(params).GenerateAllAlerts(ctx, f.notify, f.notifyTo, f.dryRun)
		if err != nil {
			return err
		}
		logg.Infow("remittance alert scan complete",
			"candidates_scanned", resp.CandidatesScanned,
			"raised", resp.Raised,
			"skipped", resp.Skipped,
			"resolved", resp.Resolved,
			"dry_run", resp.DryRun,
		)
		return nil

	case "document-expiry":
		if f.dryRun {
			return fmt.Errorf("--dry-run is not supported for %s", command)
		}
		resp, err := service.NewDocumentService(params).RunExpiryScan(ctx, f.days, f.notify, f.notifyTo)
		if err != nil {
			return err
		}
		logg.Infow("document expiry scan complete",
			"scanned", resp.Scanned,
			"expiring", resp.Expiring,
		)
		return nil

	case "activity-cleanup":
		resp, err := service.NewActivityService(params).Cleanup(ctx, f.days, f.dryRun)
		if err != nil {
			return err
		}
		logg.Infow("activity cleanup complete",
			"deleted", resp.Deleted,
			"dry_run", resp.DryRun,
		)
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}
