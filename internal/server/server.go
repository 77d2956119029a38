// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"sunflowerpost/internal/cache"
	"sunflowerpost/internal/config"
	"sunflowerpost/internal/database"
	"sunflowerpost/internal/featureflags"
	"sunflowerpost/internal/middleware"
	"sunflowerpost/internal/models"
	"sunflowerpost/internal/repository"
	"sunflowerpost/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	tokenIssuer   = "sunflowerpost-api"
	tokenAudience = "sunflowerpost-client"
	tokenLifetime = 7 * 24 * time.Hour
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo       repository.UserRepository
	followRepo     repository.FollowRepository
	reactionRepo   repository.ReactionRepository
	savedRepo      repository.SavedRepository
	bookRepo       repository.BookRepository
	tvMovieRepo    repository.TVMovieRepository
	discussionRepo repository.DiscussionRepository
	journalRepo    repository.JournalRepository
	listItemRepo   repository.ListItemRepository

	followService  *service.FollowService
	userService    *service.UserService
	journalService *service.JournalService

	featureFlags *featureflags.Manager

	// aliasRand feeds alias generation at signup; rand.Rand is not
	// goroutine-safe, hence the mutex.
	aliasMu   sync.Mutex
	aliasRand *rand.Rand
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	savedRepo := repository.NewSavedRepository(db)
	bookRepo := repository.NewBookRepository(db)
	tvMovieRepo := repository.NewTVMovieRepository(db)
	discussionRepo := repository.NewDiscussionRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	listItemRepo := repository.NewListItemRepository(db)

	prom := middleware.InitMetrics("sunflowerpost-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		followRepo:     followRepo,
		reactionRepo:   reactionRepo,
		savedRepo:      savedRepo,
		bookRepo:       bookRepo,
		tvMovieRepo:    tvMovieRepo,
		discussionRepo: discussionRepo,
		journalRepo:    journalRepo,
		listItemRepo:   listItemRepo,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		aliasRand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	server.followService = service.NewFollowService(followRepo, userRepo)
	server.userService = service.NewUserService(userRepo, bookRepo, tvMovieRepo, discussionRepo, listItemRepo)

	journalService, err := service.NewJournalService(journalRepo, service.JournalAIConfig{
		APIKey:  cfg.AIAPIKey,
		BaseURL: cfg.AIBaseURL,
		Model:   cfg.AIModel,
	})
	if err != nil {
		return nil, fmt.Errorf("journal assistant init failed: %w", err)
	}
	server.journalService = journalService

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.AuthRequired(), s.Logout)
	auth.Get("/me", s.AuthRequired(), s.Me)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// User and profile routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/preview", s.GetSuggestedUsers)
	// Specific /:id/:resource routes must come before the generic /:id route
	users.Get("/:id/activity", s.GetUserActivity)
	users.Post("/:id/follow", s.FollowUser)
	users.Delete("/:id/follow", s.UnfollowUser)
	users.Get("/:id/followers", s.GetFollowers)
	users.Get("/:id/following", s.GetFollowing)
	users.Get("/:id/mutual", s.GetMutualConnections)
	users.Get("/:id", s.GetUserProfile)

	protected.Put("/settings/privacy", s.UpdatePrivacy)
	protected.Put("/profile/customize", s.UpdateCustomization)

	// Follow request routes
	followRequests := protected.Group("/follows/requests")
	followRequests.Get("/", s.GetPendingFollowRequests)
	followRequests.Post("/:id/approve", s.ApproveFollowRequest)
	followRequests.Post("/:id/decline", s.DeclineFollowRequest)

	// Room reaction routes
	roomGroup := protected.Group("/rooms/:room")
	roomGroup.Get("/reaction-kinds", s.GetReactionKinds)
	roomGroup.Post("/:id/reactions", s.ToggleReaction)
	roomGroup.Get("/:id/reactions", s.GetReactions)
	roomGroup.Get("/list-items", s.GetListItems)
	roomGroup.Post("/list-items", s.CreateListItem)
	protected.Get("/reactions/me", s.GetMyReactions)

	// Saved items
	saved := protected.Group("/saved")
	saved.Get("/", s.GetSavedItems)
	saved.Put("/", s.SaveItem)
	saved.Delete("/", s.UnsaveItem)

	// Book club
	books := protected.Group("/books")
	books.Get("/", s.GetBooks)
	books.Post("/", s.CreateBook)
	books.Put("/:id", s.UpdateBook)
	books.Delete("/:id", s.DeleteBook)
	books.Get("/:id", s.GetBook)

	// Screening room
	tvMovies := protected.Group("/tv-movies")
	tvMovies.Get("/", s.GetTVMovies)
	tvMovies.Post("/", s.CreateTVMovie)
	tvMovies.Put("/:id", s.UpdateTVMovie)
	tvMovies.Delete("/:id", s.DeleteTVMovie)
	tvMovies.Get("/:id", s.GetTVMovie)

	// Discussions and replies
	discussions := protected.Group("/discussions")
	discussions.Get("/", s.GetDiscussions)
	discussions.Post("/", s.CreateDiscussion)
	discussions.Post("/:id/replies", s.CreateReply)
	discussions.Get("/:id/replies", s.GetReplies)
	discussions.Delete("/:id/replies/:replyId", s.DeleteReply)
	discussions.Put("/:id", s.UpdateDiscussion)
	discussions.Delete("/:id", s.DeleteDiscussion)
	discussions.Get("/:id", s.GetDiscussion)

	// List item mutation by id
	listItems := protected.Group("/list-items")
	listItems.Put("/:id", s.UpdateListItem)
	listItems.Delete("/:id", s.DeleteListItem)

	// Private journal
	journal := protected.Group("/journal")
	journal.Get("/", s.GetJournalEntries)
	journal.Post("/", s.CreateJournalEntry)
	journal.Put("/:id", s.UpdateJournalEntry)
	journal.Delete("/:id", s.DeleteJournalEntry)
	journal.Get("/:id", s.GetJournalEntry)

	// Journaling assistant
	protected.Post("/journal-ai", middleware.RateLimit(
		s.redis, 5, time.Minute, "journal_ai"), s.JournalReflect)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}

		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Check JTI for revocation
		if jti, exists := claims["jti"].(string); exists && jti != "" {
			if s.redis != nil {
				isBlacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
				if err == nil && isBlacklisted > 0 {
					return models.RespondWithError(c, fiber.StatusUnauthorized,
						models.NewUnauthorizedError("Token has been revoked"))
				}
			}
		}

		// Store user ID in context
		c.Locals("userID", uint(userID))
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// optionalUserID attempts to extract userID from the Authorization header but
// does not enforce it.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "The Sunflower Post API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
