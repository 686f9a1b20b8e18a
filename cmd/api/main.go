package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/projectrack-api/api/swagger"
	"github.com/noah-isme/projectrack-api/internal/handler"
	"github.com/noah-isme/projectrack-api/internal/middleware"
	"github.com/noah-isme/projectrack-api/internal/models"
	"github.com/noah-isme/projectrack-api/internal/repository"
	"github.com/noah-isme/projectrack-api/internal/service"
	"github.com/noah-isme/projectrack-api/pkg/config"
	"github.com/noah-isme/projectrack-api/pkg/database"
	"github.com/noah-isme/projectrack-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/projectrack-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/projectrack-api/pkg/middleware/requestid"
	"github.com/noah-isme/projectrack-api/pkg/storage"
)

// @title ProjecTrack API
// @version 1.0.0
// @description University project tracking: groups, proposals, milestones and document submissions
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	store, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	groupSvc := service.NewGroupService(groupRepo, invitationRepo, userRepo, validate, logr)
	projectSvc := service.NewProjectService(projectRepo, groupRepo, userRepo, milestoneRepo, validate, logr)
	milestoneSvc := service.NewMilestoneService(milestoneRepo, projectRepo, groupRepo, validate, logr)
	submissionSvc := service.NewSubmissionService(submissionRepo, projectRepo, groupRepo, store, cfg.Uploads, logr)
	metricsSvc := service.NewMetricsService()

	authHandler := handler.NewAuthHandler(authSvc)
	groupHandler := handler.NewGroupHandler(groupSvc)
	projectHandler := handler.NewProjectHandler(projectSvc)
	milestoneHandler := handler.NewMilestoneHandler(milestoneSvc)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	authed.GET("/auth/profile", authHandler.Profile)
	authed.PUT("/auth/profile", authHandler.UpdateProfile)

	groups := authed.Group("/groups")
	groups.POST("", middleware.RequireRoles(models.RoleStudent), groupHandler.Create)
	groups.GET("", groupHandler.ListMine)
	groups.POST("/:groupId/invitations", middleware.RequireRoles(models.RoleStudent), groupHandler.Invite)
	groups.GET("/invitations/pending", middleware.RequireRoles(models.RoleStudent), groupHandler.PendingInvitations)
	groups.PATCH("/invitations/:invitationId/respond", middleware.RequireRoles(models.RoleStudent), groupHandler.Respond)

	projects := authed.Group("/projects")
	projects.POST("", middleware.RequireRoles(models.RoleStudent), projectHandler.Propose)
	projects.GET("/proposals/my", middleware.RequireRoles(models.RoleTeacher), projectHandler.MyProposals)
	projects.GET("/:projectId", projectHandler.Detail)
	projects.PATCH("/:projectId/status", middleware.RequireRoles(models.RoleTeacher), middleware.Audit(userRepo, models.AuditActionDecision, "project"), projectHandler.Decide)
	projects.GET("/:projectId/report", projectHandler.Report)
	projects.POST("/:projectId/milestones", milestoneHandler.Add)
	projects.GET("/:projectId/milestones", milestoneHandler.List)

	authed.PATCH("/milestones/:milestoneId", milestoneHandler.Update)

	submissions := authed.Group("/submissions")
	submissions.POST("/project/:projectId", submissionHandler.Submit)
	submissions.GET("/project/:projectId", submissionHandler.List)
	submissions.GET("/:submissionId/download", submissionHandler.Download)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
