package router

import (
	"log"

	"github.com/askforum/backend/internal/chat"
	"github.com/askforum/backend/internal/handlers"
	"github.com/askforum/backend/internal/middleware"
	"github.com/askforum/backend/internal/models"
	"github.com/askforum/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware.
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes migrates the schema, seeds the built-in roles, and wires all
// application routes with their dependencies.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, hub *chat.Hub, jwtSecret string) {
	err := pgdb.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Tag{},
		&models.Question{},
		&models.Comment{},
		&models.Notification{},
		&models.Article{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	roleRepo := repositories.NewPostgresRoleRepository(pgdb)
	tagRepo := repositories.NewPostgresTagRepository(pgdb)
	questionRepo := repositories.NewPostgresQuestionRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	articleRepo := repositories.NewPostgresArticleRepository(pgdb)

	seedRoles(roleRepo)

	// --- API routes; identity is resolved when a token is present, and the
	// per-endpoint authorization gates decide what anonymous actors may do.
	api := e.Group("/api")
	api.Use(middleware.ActorMiddleware(userRepo, jwtSecret))

	authHandler := handlers.NewAuthHandler(userRepo, jwtSecret)
	authHandler.RegisterAuthRoutes(api.Group("/auth"))
	log.Println("Auth routes configured.")

	userHandler := handlers.NewUserHandler(userRepo, roleRepo)
	userHandler.RegisterUserRoutes(api.Group("/users"))
	log.Println("User routes configured.")

	roleHandler := handlers.NewRoleHandler(roleRepo)
	roleHandler.RegisterRoleRoutes(api.Group("/roles"))
	log.Println("Role routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api.Group("/notifications"))
	log.Println("Notification routes configured.")

	forum := api.Group("/forum")
	questionHandler := handlers.NewQuestionHandler(questionRepo, tagRepo, userRepo)
	questionHandler.RegisterQuestionRoutes(forum.Group("/questions"))
	commentHandler := handlers.NewCommentHandler(commentRepo, questionRepo, userRepo)
	commentHandler.RegisterCommentRoutes(forum.Group("/comments"))
	tagHandler := handlers.NewTagHandler(tagRepo)
	tagHandler.RegisterTagRoutes(forum.Group("/tags"))
	log.Println("Forum routes configured.")

	articleHandler := handlers.NewArticleHandler(articleRepo)
	articleHandler.RegisterArticleRoutes(api.Group("/news/articles"))
	log.Println("News routes configured.")

	chatHandler := chat.NewHandler(hub, userRepo, jwtSecret)
	e.GET("/ws/chat", chatHandler.ServeWS)
	log.Println("Chat relay configured.")

	log.Println("All routes configured.")
}

// seedRoles makes sure the built-in roles exist. Privilege checks compare
// Role.Kind, so retitling these rows later cannot break them.
func seedRoles(roleRepo repositories.RoleRepository) {
	if _, err := roleRepo.EnsureRole("Admin", models.RoleKindAdmin); err != nil {
		log.Fatalf("Failed to seed Admin role: %v", err)
	}
	if _, err := roleRepo.EnsureRole("User", models.RoleKindUser); err != nil {
		log.Fatalf("Failed to seed User role: %v", err)
	}
	log.Println("Built-in roles seeded.")
}
