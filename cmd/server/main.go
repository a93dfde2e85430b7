package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"

	config "smmagent/configs"
	"smmagent/internal/ai"
	"smmagent/internal/api/handlers"
	job "smmagent/internal/jobs"
	"smmagent/internal/platforms"
	"smmagent/internal/repository"
	"smmagent/internal/scheduler"
	"smmagent/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	var db *sql.DB
	if cfg.PostgresURI != "" {
		var err error
		db, err = sql.Open("postgres", cfg.PostgresURI)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer closeDB(db)

		if err := db.Ping(); err != nil {
			log.Fatalf("Database is unreachable: %v", err)
		}
	} else {
		log.Println("POSTGRES_URI not set, running with in-memory storage only")
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	productRepo := repository.NewProductRepository()

	var aiClient ai.Client
	openaiClient, err := ai.NewOpenAIClient(*cfg)
	if err != nil {
		log.Println("Warning: OpenAI client unavailable, using canned responses:", err)
		aiClient = ai.MockClient{}
	} else {
		aiClient = openaiClient
	}

	var mediaService *service.MediaService
	if ms := service.NewMediaService(*cfg); ms.Enabled() {
		mediaService = ms
	} else {
		log.Println("R2 credentials not set, generated images will keep their upstream URLs")
	}

	adapters := map[string]platforms.Adapter{
		"instagram": platforms.NewInstagramAdapter(*cfg),
		"facebook":  platforms.NewFacebookAdapter(*cfg),
		"twitter":   platforms.NewTwitterAdapter(*cfg),
		"telegram":  platforms.NewTelegramAdapter(*cfg),
	}

	productService := service.NewProductService(productRepo)
	contentService := service.NewContentService(aiClient, productRepo, mediaService)
	dispatchService := service.NewDispatchService(adapters)
	analyticsService := service.NewAnalyticsService()

	sched := scheduler.New(dispatchService, time.Duration(cfg.PollInterval)*time.Second)
	sched.Start()

	connectionCheckJob := job.NewConnectionCheckJob(dispatchService)

	c := cron.New()
	c.AddFunc("@every 00h10m00s", connectionCheckJob.CheckConnections)
	c.Start()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"scheduler": sched.Running(),
		})
	})

	api := app.Group("/api/v1")

	product := handlers.NewProductHandler(productService)
	api.Post("/products", product.CreateProduct)
	api.Get("/products", product.ListProducts)
	api.Get("/products/:id", product.GetProduct)
	api.Put("/products/:id", product.UpdateProduct)
	api.Delete("/products/:id", product.DeleteProduct)
	api.Post("/products/:id/content-plan", product.CreateContentPlan)

	content := handlers.NewContentHandler(contentService)
	api.Post("/content/generate", content.GenerateContent)
	api.Post("/content/generate/posts", content.GeneratePosts)
	api.Post("/content/generate/images", content.GenerateImages)
	api.Post("/content/generate/video-scripts", content.GenerateVideoScripts)
	api.Post("/content/optimize", content.OptimizeContent)
	api.Post("/content/analyze", content.AnalyzeContent)
	api.Post("/content/calendar", content.GenerateCalendar)

	social := handlers.NewSocialHandler(dispatchService, sched)
	api.Post("/social/publish", social.PublishPost)
	api.Post("/social/schedule", social.SchedulePosts)
	api.Post("/social/scheduler/start", social.StartScheduler)
	api.Post("/social/scheduler/stop", social.StopScheduler)
	api.Get("/social/scheduler/status", social.SchedulerStatus)
	api.Get("/social/platforms", social.ListPlatforms)
	api.Post("/social/test-connection/:platform", social.TestConnection)
	api.Get("/social/analytics/:platform/:post_id", social.GetPostAnalytics)
	api.Delete("/social/posts/:platform/:post_id", social.DeletePost)
	api.Put("/social/posts/:platform/:post_id", social.UpdatePost)

	analytics := handlers.NewAnalyticsHandler(analyticsService)
	api.Get("/analytics/overview", analytics.Overview)
	api.Get("/analytics/platforms/:platform", analytics.PlatformAnalytics)
	api.Get("/analytics/posts", analytics.TopPosts)
	api.Get("/analytics/trends", analytics.Trends)
	api.Get("/analytics/performance/:metric", analytics.Performance)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, db, sched, c)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB, sched *scheduler.Scheduler, c *cron.Cron) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	c.Stop()
	sched.Stop()

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	log.Println("Server shutdown complete.")
}
