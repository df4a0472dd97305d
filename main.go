package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"card-collection-system/handlers"
	"card-collection-system/middleware"
	"card-collection-system/models"
	"card-collection-system/services"
	"card-collection-system/utils"
	"card-collection-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		AppName: "card-collection-system",
	})

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Card{},
		&models.Ownership{},
		&models.Distribution{},
		&models.Quiz{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	blob, err := utils.NewBlobStore()
	if err != nil {
		log.Fatal("failed to initialize blob store:", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if os.Getenv("SEED_DUMMY_DATA") == "true" {
		if err := utils.SeedDummyData(db, rng); err != nil {
			log.Fatal("failed to seed dummy data:", err)
		}
	}

	ledger := services.NewLedgerService(db)
	userService := services.NewUserService(db)
	transferService := services.NewTransferService(db, ledger)
	distributionService := services.NewDistributionService(db, ledger, rng)
	quizService := services.NewQuizService(db, rng, blob)
	rankingService := services.NewRankingService(db)
	catalogService := services.NewCatalogService(db, blob)

	workers.StartOTPSweeper(transferService)

	auth := middleware.UserContextMiddleware(userService)
	handlers.SetupCardRoutes(app, auth, catalogService, transferService)
	handlers.SetupQuizRoutes(app, auth, quizService)
	handlers.SetupRankingRoutes(app, auth, rankingService)
	handlers.SetupAdminRoutes(app, auth, distributionService, userService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ OTP sweeper running (every 1m)")

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
