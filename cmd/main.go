package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/config"
	"github.com/GeisyGP/sistema-ppi/internal/handlers"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/services"
	"github.com/GeisyGP/sistema-ppi/pkg/database"
	"github.com/GeisyGP/sistema-ppi/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.EnsureRootCourse(cfg.SysadminRegistration, cfg.SysadminPassword); err != nil {
		log.Fatalf("Failed to bootstrap root course: %v", err)
	}

	store, err := storage.NewStorage(cfg.UploadPath, cfg.MaxFileSize)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Repositories
	courseRepo := repository.NewCourseRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)
	subjectRepo := repository.NewSubjectRepository(db.DB)
	ppiRepo := repository.NewPPIRepository(db.DB)
	projectRepo := repository.NewProjectRepository(db.DB)
	groupRepo := repository.NewGroupRepository(db.DB)
	deliverableRepo := repository.NewDeliverableRepository(db.DB)
	contentRepo := repository.NewDeliverableContentRepository(db.DB)
	artifactRepo := repository.NewArtifactRepository(db.DB)

	// Authorization core
	resolver := authz.NewResolver(subjectRepo, ppiRepo, projectRepo, groupRepo)
	access := authz.NewService(resolver, contentRepo)

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration)
	courseService := services.NewCourseService(courseRepo, access)
	userService := services.NewUserService(userRepo, access)
	subjectService := services.NewSubjectService(subjectRepo, access)
	ppiService := services.NewPPIService(ppiRepo, access)
	projectService := services.NewProjectService(projectRepo, ppiRepo, access)
	groupService := services.NewGroupService(groupRepo, projectRepo, access)
	deliverableService := services.NewDeliverableService(deliverableRepo, projectRepo, access)
	contentService := services.NewContentService(contentRepo, deliverableRepo, projectRepo, groupRepo, access)
	artifactService := services.NewArtifactService(artifactRepo, deliverableRepo, projectRepo, groupRepo, store, access)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	courseHandler := handlers.NewCourseHandler(courseService)
	userHandler := handlers.NewUserHandler(userService)
	subjectHandler := handlers.NewSubjectHandler(subjectService)
	ppiHandler := handlers.NewPPIHandler(ppiService)
	projectHandler := handlers.NewProjectHandler(projectService)
	groupHandler := handlers.NewGroupHandler(groupService)
	deliverableHandler := handlers.NewDeliverableHandler(deliverableService)
	contentHandler := handlers.NewContentHandler(contentService)
	artifactHandler := handlers.NewArtifactHandler(artifactService)

	router := gin.Default()

	router.POST("/api/auth/login", authHandler.Login)

	api := router.Group("/api")
	api.Use(handlers.AuthMiddleware(authService))
	{
		api.POST("/courses", courseHandler.Create)
		api.GET("/courses", courseHandler.List)
		api.GET("/courses/:id", courseHandler.Get)
		api.PUT("/courses/:id", courseHandler.Update)
		api.DELETE("/courses/:id", courseHandler.Delete)

		api.POST("/users", userHandler.Create)
		api.GET("/users", userHandler.List)
		api.GET("/users/:id", userHandler.Get)
		api.PUT("/users/me", userHandler.UpdateSelf)
		api.PUT("/users/:id", userHandler.Update)
		api.DELETE("/users/:id", userHandler.Delete)

		api.POST("/subjects", subjectHandler.Create)
		api.GET("/subjects", subjectHandler.List)
		api.GET("/subjects/:id", subjectHandler.Get)
		api.PUT("/subjects/:id", subjectHandler.Update)
		api.DELETE("/subjects/:id", subjectHandler.Delete)
		api.POST("/subjects/:id/teachers", subjectHandler.AddTeacher)
		api.DELETE("/subjects/:id/teachers/:userId", subjectHandler.RemoveTeacher)

		api.POST("/ppis", ppiHandler.Create)
		api.GET("/ppis", ppiHandler.List)
		api.GET("/ppis/:id", ppiHandler.Get)
		api.PUT("/ppis/:id", ppiHandler.Update)
		api.DELETE("/ppis/:id", ppiHandler.Delete)
		api.POST("/ppis/:id/subjects", ppiHandler.AddSubject)
		api.GET("/ppis/:id/subjects", ppiHandler.ListSubjects)
		api.DELETE("/ppis/:id/subjects/:subjectId", ppiHandler.RemoveSubject)

		api.POST("/projects", projectHandler.Create)
		api.GET("/projects", projectHandler.List)
		api.GET("/projects/:id", projectHandler.Get)
		api.PUT("/projects/:id", projectHandler.Update)
		api.DELETE("/projects/:id", projectHandler.Delete)
		api.PATCH("/projects/:id/status", projectHandler.ChangeStatus)
		api.PATCH("/projects/:id/visibility", projectHandler.ChangeVisibility)

		api.POST("/projects/:id/groups", groupHandler.Create)
		api.GET("/projects/:id/groups", groupHandler.ListByProject)
		api.GET("/groups/:id", groupHandler.Get)
		api.PUT("/groups/:id", groupHandler.Update)
		api.DELETE("/groups/:id", groupHandler.Delete)
		api.POST("/groups/:id/members", groupHandler.AddMember)
		api.GET("/groups/:id/members", groupHandler.ListMembers)
		api.DELETE("/groups/:id/members/:userId", groupHandler.RemoveMember)

		api.POST("/projects/:id/deliverables", deliverableHandler.Create)
		api.GET("/projects/:id/deliverables", deliverableHandler.List)
		api.GET("/deliverables/:id", deliverableHandler.Get)
		api.PUT("/deliverables/:id", deliverableHandler.Update)
		api.DELETE("/deliverables/:id", deliverableHandler.Delete)

		api.POST("/deliverables/:id/contents", contentHandler.Create)
		api.GET("/deliverables/:id/contents", contentHandler.ListByDeliverable)
		api.PUT("/contents/:id", contentHandler.Update)
		api.DELETE("/contents/:id", contentHandler.Delete)

		api.POST("/deliverables/:id/artifacts", artifactHandler.Upload)
		api.GET("/deliverables/:id/artifacts", artifactHandler.ListByDeliverable)
		api.DELETE("/artifacts/:id", artifactHandler.Delete)
	}

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Printf("Server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
