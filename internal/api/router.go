package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	v1 "github.com/pathways-hq/pathways/internal/api/v1"
	"github.com/pathways-hq/pathways/internal/config"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/rbac"
	"github.com/pathways-hq/pathways/internal/rest/middleware"
)

type Handlers struct {
	Auth       *v1.AuthHandler
	Candidate  *v1.CandidateHandler
	Departure  *v1.DepartureHandler
	Complaint  *v1.ComplaintHandler
	Remittance *v1.RemittanceHandler
	Document   *v1.DocumentHandler
	RefData    *v1.RefDataHandler
	Report     *v1.ReportHandler
	User       *v1.UserHandler
	Activity   *v1.ActivityHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger, rbacService *rbac.RBACService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes
	public := router.Group("/v1/auth")
	{
		public.POST("/signup", handlers.Auth.SignUp)
		public.POST("/login", handlers.Auth.Login)
	}

	private := router.Group("/v1")
	private.Use(middleware.AuthenticateMiddleware(cfg, log))

	perm := func(entity, action string) gin.HandlerFunc {
		return middleware.RequirePermission(rbacService, log, entity, action)
	}

	registerV1Routes(private, handlers, perm)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers, perm func(entity, action string) gin.HandlerFunc) {
	candidates := router.Group("/candidates")
	{
		candidates.POST("", perm("candidate", "create"), handlers.Candidate.CreateCandidate)
		candidates.GET("", perm("candidate", "read"), handlers.Candidate.ListCandidates)
		candidates.GET("/pipeline", perm("candidate", "read"), handlers.Candidate.GetPipelineSummary)
		candidates.GET("/:id", perm("candidate", "read"), handlers.Candidate.GetCandidate)
		candidates.PUT("/:id", perm("candidate", "update"), handlers.Candidate.UpdateCandidate)
		candidates.DELETE("/:id", perm("candidate", "delete"), handlers.Candidate.DeleteCandidate)
		candidates.POST("/:id/transition", perm("candidate", "transition"), handlers.Candidate.TransitionCandidate)
		candidates.GET("/:id/transitions", perm("candidate", "read"), handlers.Candidate.ListTransitions)
		candidates.POST("/:id/remittance-scan", perm("remittance", "create"), handlers.Remittance.GenerateAlerts)
	}

	departures := router.Group("/departures")
	{
		departures.GET("", perm("departure", "read"), handlers.Departure.ListDepartures)
		departures.GET("/:id", perm("departure", "read"), handlers.Departure.GetDeparture)
		departures.PUT("/:id/checklist", perm("departure", "update"), handlers.Departure.UpdateChecklistItem)
		departures.POST("/:id/confirm-salary", perm("departure", "update"), handlers.Departure.ConfirmSalary)
		departures.POST("/:id/compliance-check", perm("departure", "update"), handlers.Departure.RunComplianceCheck)
	}

	complaints := router.Group("/complaints")
	{
		complaints.POST("", perm("complaint", "create"), handlers.Complaint.CreateComplaint)
		complaints.GET("", perm("complaint", "read"), handlers.Complaint.ListComplaints)
		complaints.GET("/reference/:reference", perm("complaint", "read"), handlers.Complaint.GetComplaintByReference)
		complaints.GET("/:id", perm("complaint", "read"), handlers.Complaint.GetComplaint)
		complaints.PUT("/:id", perm("complaint", "update"), handlers.Complaint.UpdateComplaint)
		complaints.POST("/:id/assign", perm("complaint", "assign"), handlers.Complaint.AssignComplaint)
		complaints.POST("/:id/start", perm("complaint", "update"), handlers.Complaint.StartProgress)
		complaints.POST("/:id/resolve", perm("complaint", "resolve"), handlers.Complaint.ResolveComplaint)
	}

	remittances := router.Group("/remittances")
	{
		remittances.POST("", perm("remittance", "create"), handlers.Remittance.RecordRemittance)
		remittances.GET("", perm("remittance", "read"), handlers.Remittance.ListRemittances)
		remittances.GET("/alerts", perm("remittance", "read"), handlers.Remittance.ListAlerts)
		remittances.POST("/alerts/:id/resolve", perm("remittance", "update"), handlers.Remittance.ResolveAlert)
		remittances.GET("/:id", perm("remittance", "read"), handlers.Remittance.GetRemittance)
	}

	documents := router.Group("/documents")
	{
		documents.POST("", perm("document", "create"), handlers.Document.UploadDocument)
		documents.GET("", perm("document", "read"), handlers.Document.ListDocuments)
		documents.GET("/:id", perm("document", "read"), handlers.Document.GetDocument)
		documents.DELETE("/:id", perm("document", "delete"), handlers.Document.DeleteDocument)
	}

	campuses := router.Group("/campuses")
	{
		campuses.POST("", perm("refdata", "create"), handlers.RefData.CreateCampus)
		campuses.GET("", perm("refdata", "read"), handlers.RefData.ListCampuses)
		campuses.GET("/:id", perm("refdata", "read"), handlers.RefData.GetCampus)
		campuses.PUT("/:id", perm("refdata", "update"), handlers.RefData.UpdateCampus)
		campuses.DELETE("/:id", perm("refdata", "delete"), handlers.RefData.DeleteCampus)
	}

	trades := router.Group("/trades")
	{
		trades.POST("", perm("refdata", "create"), handlers.RefData.CreateTrade)
		trades.GET("", perm("refdata", "read"), handlers.RefData.ListTrades)
		trades.GET("/:id", perm("refdata", "read"), handlers.RefData.GetTrade)
		trades.PUT("/:id", perm("refdata", "update"), handlers.RefData.UpdateTrade)
		trades.DELETE("/:id", perm("refdata", "delete"), handlers.RefData.DeleteTrade)
	}

	batches := router.Group("/batches")
	{
		batches.POST("", perm("refdata", "create"), handlers.RefData.CreateBatch)
		batches.GET("", perm("refdata", "read"), handlers.RefData.ListBatches)
		batches.GET("/:id", perm("refdata", "read"), handlers.RefData.GetBatch)
		batches.PUT("/:id", perm("refdata", "update"), handlers.RefData.UpdateBatch)
		batches.DELETE("/:id", perm("refdata", "delete"), handlers.RefData.DeleteBatch)
	}

	oeps := router.Group("/oeps")
	{
		oeps.POST("", perm("refdata", "create"), handlers.RefData.CreateOEP)
		oeps.GET("", perm("refdata", "read"), handlers.RefData.ListOEPs)
		oeps.GET("/:id", perm("refdata", "read"), handlers.RefData.GetOEP)
		oeps.PUT("/:id", perm("refdata", "update"), handlers.RefData.UpdateOEP)
		oeps.DELETE("/:id", perm("refdata", "delete"), handlers.RefData.DeleteOEP)
	}

	instructors := router.Group("/instructors")
	{
		instructors.POST("", perm("refdata", "create"), handlers.RefData.CreateInstructor)
		instructors.GET("", perm("refdata", "read"), handlers.RefData.ListInstructors)
		instructors.GET("/:id", perm("refdata", "read"), handlers.RefData.GetInstructor)
		instructors.PUT("/:id", perm("refdata", "update"), handlers.RefData.UpdateInstructor)
		instructors.DELETE("/:id", perm("refdata", "delete"), handlers.RefData.DeleteInstructor)
	}

	employers := router.Group("/employers")
	{
		employers.POST("", perm("refdata", "create"), handlers.RefData.CreateEmployer)
		employers.GET("", perm("refdata", "read"), handlers.RefData.ListEmployers)
		employers.GET("/:id", perm("refdata", "read"), handlers.RefData.GetEmployer)
		employers.PUT("/:id", perm("refdata", "update"), handlers.RefData.UpdateEmployer)
		employers.DELETE("/:id", perm("refdata", "delete"), handlers.RefData.DeleteEmployer)
	}

	reports := router.Group("/reports")
	{
		reports.GET("/:type", perm("report", "read"), handlers.Report.DownloadReport)
		reports.POST("/export", perm("report", "export"), handlers.Report.ExportReport)
	}

	users := router.Group("/users")
	{
		users.GET("/me", handlers.User.GetCurrentUser)
		users.GET("", perm("user", "read"), handlers.User.ListUsers)
		users.GET("/:id", perm("user", "read"), handlers.User.GetUser)
		users.PUT("/:id", perm("user", "update"), handlers.User.UpdateUser)
		users.DELETE("/:id", perm("user", "delete"), handlers.User.DeleteUser)
	}

	activities := router.Group("/activities")
	{
		activities.GET("", perm("activity", "read"), handlers.Activity.ListActivities)
	}
}
