package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Waleed-Nisar/EcommerceAppProject/internal/cart"
	"github.com/Waleed-Nisar/EcommerceAppProject/internal/category"
	"github.com/Waleed-Nisar/EcommerceAppProject/internal/config"
	"github.com/Waleed-Nisar/EcommerceAppProject/internal/customer"
	"github.com/Waleed-Nisar/EcommerceAppProject/internal/database"
	"github.com/Waleed-Nisar/EcommerceAppProject/internal/order"
	"github.com/Waleed-Nisar/EcommerceAppProject/internal/product"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger)

	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo)
	customerHandler := customer.NewHandler(customerService, cfg.JWTSecret)

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService, db)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))

	cartRepo := cart.NewPostgresRepository(db)
	cartHandler := cart.NewHandler(cart.NewService(cartRepo, customerService, productService))

	orderRepo := order.NewPostgresRepository(db)
	orderHandler := order.NewHandler(order.NewService(orderRepo, customerService, productService))

	// public routes first: auth and catalog reads need no token
	customerHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	customerHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	categoryHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	logrus.WithField("addr", cfg.Addr).Info("starting server")
	if err := app.Listen(cfg.Addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	logrus.WithFields(logrus.Fields{
		"method":   c.Method(),
		"path":     c.OriginalURL(),
		"status":   c.Response().StatusCode(),
		"duration": time.Since(start).String(),
	}).Debug("request handled")
	return err
}
