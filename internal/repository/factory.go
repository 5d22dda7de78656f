package repository

import (
	"github.com/pathways-hq/pathways/internal/domain/activity"
	"github.com/pathways-hq/pathways/internal/domain/candidate"
	"github.com/pathways-hq/pathways/internal/domain/complaint"
	"github.com/pathways-hq/pathways/internal/domain/departure"
	"github.com/pathways-hq/pathways/internal/domain/document"
	"github.com/pathways-hq/pathways/internal/domain/refdata"
	"github.com/pathways-hq/pathways/internal/domain/remittance"
	"github.com/pathways-hq/pathways/internal/domain/user"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/postgres"
	postgresRepo "github.com/pathways-hq/pathways/internal/repository/postgres"
)

func NewCandidateRepository(db *postgres.DB, logger *logger.Logger) candidate.Repository {
	return postgresRepo.NewCandidateRepository(db, logger)
}

func NewDepartureRepository(db *postgres.DB, logger *logger.Logger) departure.Repository {
	return postgresRepo.NewDepartureRepository(db, logger)
}

func NewComplaintRepository(db *postgres.DB, logger *logger.Logger) complaint.Repository {
	return postgresRepo.NewComplaintRepository(db, logger)
}

func NewRemittanceRepository(db *postgres.DB, logger *logger.Logger) remittance.Repository {
	return postgresRepo.NewRemittanceRepository(db, logger)
}

func NewRemittanceAlertRepository(db *postgres.DB, logger *logger.Logger) remittance.AlertRepository {
	return postgresRepo.NewRemittanceAlertRepository(db, logger)
}

func NewDocumentRepository(db *postgres.DB, logger *logger.Logger) document.Repository {
	return postgresRepo.NewDocumentRepository(db, logger)
}

func NewCampusRepository(db *postgres.DB, logger *logger.Logger) refdata.CampusRepository {
	return postgresRepo.NewCampusRepository(db, logger)
}

func NewTradeRepository(db *postgres.DB, logger *logger.Logger) refdata.TradeRepository {
	return postgresRepo.NewTradeRepository(db, logger)
}

func NewBatchRepository(db *postgres.DB, logger *logger.Logger) refdata.BatchRepository {
	return postgresRepo.NewBatchRepository(db, logger)
}

func NewOEPRepository(db *postgres.DB, logger *logger.Logger) refdata.OEPRepository {
	return postgresRepo.NewOEPRepository(db, logger)
}

func NewInstructorRepository(db *postgres.DB, logger *logger.Logger) refdata.InstructorRepository {
	return postgresRepo.NewInstructorRepository(db, logger)
}

func NewEmployerRepository(db *postgres.DB, logger *logger.Logger) refdata.EmployerRepository {
	return postgresRepo.NewEmployerRepository(db, logger)
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewActivityRepository(db *postgres.DB, logger *logger.Logger) activity.Repository {
	return postgresRepo.NewActivityRepository(db, logger)
}
