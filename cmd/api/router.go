package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/scolarite-api/api/swagger"
	"github.com/noah-isme/scolarite-api/internal/handler"
	"github.com/noah-isme/scolarite-api/internal/middleware"
	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/internal/service"
	"github.com/noah-isme/scolarite-api/pkg/config"
	"github.com/noah-isme/scolarite-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/scolarite-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/scolarite-api/pkg/middleware/requestid"
)

type routes struct {
	verifier middleware.TokenValidator
	metrics  *service.MetricsService
	health   *handler.MetricsHandler

	programs      *handler.ProgramHandler
	classes       *handler.ClassHandler
	subjects      *handler.SubjectHandler
	students      *handler.StudentHandler
	registrations *handler.RegistrationHandler
	sessions      *handler.SessionHandler
	evaluations   *handler.EvaluationHandler
	scores        *handler.ScoreHandler
	results       *handler.ResultHandler
	snapshots     *handler.SnapshotHandler
	documents     *handler.DocumentHandler
	fees          *handler.FeeHandler
	statistics    *handler.StatisticsHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, h routes) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(h.metrics))

	r.GET("/health", h.health.Health)
	r.GET("/ready", h.health.Ready)
	r.GET("/metrics", h.health.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	// public: signed links and QR verification
	api.GET("/documents/download", h.documents.Download)
	api.GET("/certificates/verify/*number", h.documents.VerifyCertificate)

	secured := api.Group("")
	secured.Use(middleware.JWT(h.verifier))

	admin := middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)
	scoring := middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin, models.RoleTeacher)
	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(logr, action, resource)
	}

	programs := secured.Group("/programs")
	programs.GET("", h.programs.List)
	programs.GET("/:id", h.programs.Get)
	programs.POST("", admin, audit("create", "program"), h.programs.Create)
	programs.DELETE("/:id", admin, audit("delete", "program"), h.programs.Delete)

	classes := secured.Group("/classes")
	classes.GET("", h.classes.List)
	classes.GET("/:id", h.classes.Get)
	classes.POST("", admin, audit("create", "class"), h.classes.Create)
	classes.PUT("/:id", admin, audit("update", "class"), h.classes.Update)
	classes.DELETE("/:id", admin, audit("delete", "class"), h.classes.Delete)

	subjects := secured.Group("/subjects")
	subjects.GET("", h.subjects.List)
	subjects.GET("/:id", h.subjects.Get)
	subjects.POST("", admin, audit("create", "subject"), h.subjects.Create)
	subjects.PUT("/:id", admin, audit("update", "subject"), h.subjects.Update)
	subjects.DELETE("/:id", admin, audit("delete", "subject"), h.subjects.Delete)

	students := secured.Group("/students")
	students.GET("", h.students.List)
	students.GET("/matricule/:matricule", h.students.GetByMatricule)
	students.GET("/:id", h.students.Get)
	students.POST("", admin, audit("create", "student"), h.students.Create)
	students.PUT("/:id", admin, audit("update", "student"), h.students.Update)
	students.PATCH("/:id/active", admin, audit("set_active", "student"), h.students.SetActive)
	students.DELETE("/:id", admin, audit("delete", "student"), h.students.Delete)

	registrations := secured.Group("/registrations")
	registrations.GET("", admin, h.registrations.List)
	registrations.POST("", admin, audit("create", "registration"), h.registrations.Create)
	registrations.POST("/:id/validate", admin, audit("validate", "registration"), h.registrations.Validate)
	registrations.POST("/:id/reject", admin, audit("reject", "registration"), h.registrations.Reject)

	sessions := secured.Group("/sessions")
	sessions.GET("", h.sessions.List)
	sessions.GET("/:id", h.sessions.Get)
	sessions.POST("", admin, audit("create", "session"), h.sessions.Create)
	sessions.DELETE("/:id", admin, audit("delete", "session"), h.sessions.Delete)

	evaluations := secured.Group("/evaluations")
	evaluations.GET("", h.evaluations.List)
	evaluations.GET("/:id", h.evaluations.Get)
	evaluations.GET("/:id/scores", h.scores.ListByEvaluation)
	evaluations.POST("", scoring, audit("create", "evaluation"), h.evaluations.Create)
	evaluations.POST("/ensure", scoring, h.evaluations.Ensure)
	evaluations.DELETE("/:id", admin, audit("delete", "evaluation"), h.evaluations.Delete)

	scores := secured.Group("/scores")
	scores.POST("", scoring, audit("record", "score"), h.scores.Record)
	scores.POST("/bulk", scoring, audit("bulk_record", "score"), h.scores.Bulk)
	scores.DELETE("/:id", scoring, audit("delete", "score"), h.scores.Delete)

	results := secured.Group("/results")
	results.GET("/students/:id", h.results.Student)
	results.GET("/students/:id/subjects/:subject_id", h.results.Subject)
	results.GET("/classes/:id", h.results.Class)

	settings := secured.Group("/result-settings")
	settings.GET("", h.snapshots.GetSetting)
	settings.POST("", admin, audit("create", "result_setting"), h.snapshots.CreateSetting)
	settings.PUT("", admin, audit("update", "result_setting"), h.snapshots.UpdateSetting)

	snapshots := secured.Group("/snapshots")
	snapshots.GET("", h.snapshots.List)
	snapshots.GET("/students/:id", h.snapshots.GetStudent)
	snapshots.POST("/students/:id", admin, audit("regenerate", "snapshot"), h.snapshots.RegenerateStudent)
	snapshots.POST("/classes/:id", admin, audit("regenerate_class", "snapshot"), h.snapshots.RegenerateClass)

	secured.GET("/documents/transcripts/:student_id", h.documents.Transcript)

	certificates := secured.Group("/certificates")
	certificates.GET("", h.documents.ListCertificates)
	certificates.GET("/:id", h.documents.GetCertificate)
	certificates.POST("", admin, audit("issue", "certificate"), h.documents.IssueCertificate)
	certificates.POST("/:id/revoke", admin, audit("revoke", "certificate"), h.documents.RevokeCertificate)

	fees := secured.Group("/fees", admin)
	fees.GET("", h.fees.List)
	fees.POST("", audit("create", "fee"), h.fees.Create)
	fees.PUT("/:id", audit("update", "fee"), h.fees.Update)
	fees.DELETE("/:id", audit("delete", "fee"), h.fees.Delete)
	fees.GET("/students/:id/summary", h.fees.StudentSummary)
	fees.GET("/classes/:id", h.fees.ClassSummary)

	secured.GET("/system/metrics", admin, h.health.Summary)

	stats := secured.Group("/statistics")
	stats.GET("", h.statistics.General)
	stats.GET("/classes", h.statistics.Classes)

	return r
}
