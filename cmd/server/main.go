package main

import (
	"context"
	"errors"
	"log"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/resumeready/backend/internal/config"
	"github.com/resumeready/backend/internal/domain/fiber/handler"
	"github.com/resumeready/backend/internal/middleware"
	"github.com/resumeready/backend/internal/repository"
	"github.com/resumeready/backend/internal/service"
	"github.com/resumeready/backend/internal/usecase"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Load .env file
	ctx := context.Background()
	err := godotenv.Load()
	if err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	// Recognized at startup even though checkout itself happens at the
	// payment processor.
	if config.LoadStripeConfig().SecretKey == "" {
		log.Println("Warning: STRIPE_SECRET_KEY not set, membership upgrades run without a processor")
	}

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: config.LoadAppConfig().Env != "production",
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return config.LoadAppConfig().Env != "production"
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectMongo(ctx)

	userRepo := repository.NewUserRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	openAI := service.NewOpenAIService()
	gemini, err := service.NewGeminiService(ctx)
	if err != nil {
		log.Fatal(err)
	}

	enrichUC := usecase.NewEnrichmentUsecase(openAI)
	appUC := usecase.NewApplicationUsecase(userRepo, appRepo, enrichUC)

	userHandler := handler.NewUserHandler(appUC)
	resumeHandler := handler.NewResumeHandler(appUC, gemini)
	applicationHandler := handler.NewApplicationHandler(appUC)

	userHandler.RegisterRoutes(app)
	resumeHandler.RegisterRoutes(app)
	applicationHandler.RegisterRoutes(app)

	// Uploaded files stay retrievable by URL.
	app.Static("/uploads", config.LoadStorageConfig().UploadDir)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

// ConnectMongo opens the process-wide client. The store multiplexes
// connections internally, so the one client is shared by every request for
// the process lifetime.
func ConnectMongo(ctx context.Context) *mongo.Database {
	mongoConfig := config.LoadMongoConfig()
	if mongoConfig.URI == "" {
		log.Fatal("MONGODB_URI is required")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoConfig.URI))
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		log.Fatalf("Could not reach database: %v", err)
	}

	return client.Database(mongoConfig.Database)
}
