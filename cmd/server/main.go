package main

import (
	"errors"
	"log"
	"runtime"
	"time"

	"github.com/fadilmartias/freelance-ledger/internal/config"
	"github.com/fadilmartias/freelance-ledger/internal/domain/fiber/handler"
	"github.com/fadilmartias/freelance-ledger/internal/export"
	"github.com/fadilmartias/freelance-ledger/internal/middleware"
	"github.com/fadilmartias/freelance-ledger/internal/model"
	"github.com/fadilmartias/freelance-ledger/internal/repository"
	"github.com/fadilmartias/freelance-ledger/internal/service"
	"github.com/fadilmartias/freelance-ledger/internal/usecase"
	"github.com/fadilmartias/freelance-ledger/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return util.ErrorResponse(ctx, util.ErrorResponseFormat{
				Code:    code,
				Message: message,
				Error:   message,
			})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		// compressing would buffer the event stream
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/events"
		},
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	gw := ConnectGateway()

	taskRepo := repository.NewTaskRepository(gw)
	freelancerRepo := repository.NewFreelancerRepository(gw)
	rateRepo := repository.NewRateCardRepository(gw)

	cache := usecase.NewTaskCache()
	taskUC := usecase.NewTaskUsecase(taskRepo, cache)
	freelancerUC := usecase.NewFreelancerUsecase(freelancerRepo, cache)
	rateUC := usecase.NewRateCardUsecase(rateRepo, cache)
	formUC := usecase.NewTaskFormUsecase(rateUC, freelancerRepo)
	reportUC := usecase.NewReportUsecase(cache)
	invoiceUC := usecase.NewInvoiceUsecase(taskRepo, export.NewInvoicePDF(*config.LoadCompanyConfig()))

	api := app.Group("/api")
	handler.NewTaskHandler(taskUC, formUC).RegisterRoutes(api)
	handler.NewReportHandler(reportUC).RegisterRoutes(api)
	handler.NewFreelancerHandler(freelancerUC).RegisterRoutes(api)
	handler.NewRateCardHandler(rateUC).RegisterRoutes(api)
	handler.NewInvoiceHandler(invoiceUC).RegisterRoutes(api)
	handler.NewEventHandler(cache).RegisterRoutes(api)

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

// ConnectGateway builds the data gateway selected by DATA_BACKEND. A missing
// hosted service configuration stops the process.
func ConnectGateway() repository.Gateway {
	dbConfig := config.LoadDBConfig()
	if err := dbConfig.Validate(); err != nil {
		log.Fatal(err)
	}

	switch dbConfig.Backend {
	case config.BackendPostgres:
		log.Println("Using direct postgres backend")
		return repository.NewGormGateway(ConnectDB())
	case config.BackendMemory:
		log.Println("Using in-memory backend, data is lost on restart")
		return repository.NewMemoryGateway()
	}

	hosted := config.LoadHostedConfig()
	if err := hosted.Validate(); err != nil {
		log.Fatalf("Missing data service configuration: %v", err)
	}
	log.Println("Using hosted data service at ", hosted.URL)
	return service.NewPostgrestService(hosted)
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(100)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	err = db.AutoMigrate(&model.Task{}, &model.Freelancer{}, &model.RateCard{})
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	// freelancer names are unique regardless of case
	err = db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_freelancers_name_lower ON freelancers (lower(name))").Error
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
