package main

import (
	"log"
	"os"

	"sitewise/app/config"
	"sitewise/app/database"
	"sitewise/app/routes/auth"
	"sitewise/app/routes/bookings"
	"sitewise/app/routes/creditnotes"
	"sitewise/app/routes/deliveries"
	"sitewise/app/routes/payments"
	"sitewise/app/routes/returns"
	"sitewise/app/routes/vendors"
	"sitewise/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// errorHandler renders every error as a JSON envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start background scheduler
	services.StartScheduler(config.GetDB())

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Routes
	auth.SetupAuthRoutes(app)
	vendors.SetupVendorsRoutes(app)
	deliveries.SetupDeliveriesRoutes(app)
	bookings.SetupBookingsRoutes(app)
	payments.SetupPaymentsRoutes(app)
	creditnotes.SetupCreditNotesRoutes(app)
	returns.SetupReturnsRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	log.Println("Server starting on", addr)
	log.Fatal(app.Listen(addr))
}
