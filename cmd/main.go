package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/underthec/deepsea/internal/auth"
	usercmd "github.com/underthec/deepsea/internal/command"
	"github.com/underthec/deepsea/internal/config"
	"github.com/underthec/deepsea/internal/events"
	"github.com/underthec/deepsea/internal/handler"
	"github.com/underthec/deepsea/internal/middleware"
	userqry "github.com/underthec/deepsea/internal/query"
	dsredis "github.com/underthec/deepsea/internal/redis"
	"github.com/underthec/deepsea/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// Database connection (write store)
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	if err := repository.RunMigrations(context.Background(), db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis connection (read model store + event streaming)
	redis, err := dsredis.NewClient(dsredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	// --- CQRS wiring ---
	publisher := events.NewPublisher(redis.Client)

	writeRepo := repository.NewUserWriteRepository(db)
	readRepo := repository.NewUserReadRepository(db, redis.Client)

	commandSvc := usercmd.NewUserCommandService(writeRepo, readRepo, publisher)
	querySvc := userqry.NewUserQueryService(readRepo, writeRepo)

	userHandler := handler.NewUserHandler(commandSvc, querySvc)

	// Setup router
	router := gin.Default()
	router.Use(middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	store := auth.NewStore(cfg.SessionSecret, cfg.GinMode == gin.ReleaseMode)
	router.Use(sessions.Sessions(auth.SessionCookieName, store))

	user := router.Group("/user")
	{
		user.GET("/id", userHandler.GetByID)
		user.GET("/me", userHandler.Me)
		user.POST("/add", userHandler.Register)
		user.PATCH("/update", userHandler.Update)
		user.DELETE("/delete", userHandler.Delete)
		user.POST("/login", userHandler.Login)
		user.POST("/logout", userHandler.Logout)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Start the audit consumer for user lifecycle events
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
			Group:    "user-audit-group",
			Consumer: "user-audit-1",
			Stream:   events.UserEventsStream,
			Handler:  events.AuditLog,
		})
		if err := subscriber.Start(ctx); err != nil {
			log.Printf("Subscriber stopped: %v", err)
		}
	}()

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	log.Printf("User service starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
