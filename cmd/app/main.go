package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/minhquangvu/store-backoffice/internal/brand"
	"github.com/minhquangvu/store-backoffice/internal/category"
	"github.com/minhquangvu/store-backoffice/internal/config"
	"github.com/minhquangvu/store-backoffice/internal/customer"
	"github.com/minhquangvu/store-backoffice/internal/order"
	"github.com/minhquangvu/store-backoffice/internal/product"
	"github.com/minhquangvu/store-backoffice/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(checkMiddleware)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		panic(err)
	}

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo, user.LogMailer{})
	userHandler := user.NewHandler(userService)

	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo)
	customerHandler := customer.NewHandler(customerService)

	categoryService := category.NewService(category.NewPostgresRepository(db))
	categoryHandler := category.NewHandler(categoryService)

	brandService := brand.NewService(brand.NewPostgresRepository(db))
	brandHandler := brand.NewHandler(brandService)

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo, categoryService, brandService)
	productHandler := product.NewHandler(productService)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, customerService, userService)
	orderHandler := order.NewHandler(orderService)

	userHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	customerHandler.RegisterProtectedRoutes(app)
	categoryHandler.RegisterProtectedRoutes(app)
	brandHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func checkMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	fmt.Printf("URL = %s, Method = %s, Start Time = %v\n", c.OriginalURL(), c.Method(), start)
	return c.Next()
}

func ensureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			"userId" SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			"phoneNumber" TEXT NOT NULL DEFAULT '',
			roles TEXT[] NOT NULL DEFAULT '{}',
			"createdOn" TEXT,
			"updatedOn" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			"customerId" SERIAL PRIMARY KEY,
			code TEXT,
			name TEXT NOT NULL,
			"phoneNumber" TEXT NOT NULL,
			email TEXT,
			address TEXT,
			"numberOfOrder" INT NOT NULL DEFAULT 0,
			"totalExpense" numeric,
			"createdOn" TEXT,
			"updatedOn" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			"categoryId" SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			code TEXT,
			description TEXT,
			"createdOn" TEXT,
			"updatedOn" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS brands (
			"brandId" SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			code TEXT,
			description TEXT,
			"createdOn" TEXT,
			"updatedOn" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			"productId" SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			"categoryId" INT NOT NULL,
			"brandId" INT NOT NULL,
			"imagePath" TEXT[] NOT NULL DEFAULT '{}',
			"totalQuantity" INT NOT NULL DEFAULT 0,
			status BOOLEAN NOT NULL DEFAULT true,
			"createdOn" TEXT,
			"updatedOn" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS variants (
			"variantId" SERIAL PRIMARY KEY,
			"productId" INT NOT NULL REFERENCES products("productId"),
			sku TEXT NOT NULL DEFAULT '',
			size TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			material TEXT NOT NULL DEFAULT '',
			quantity INT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			"initialPrice" numeric NOT NULL DEFAULT 0,
			"retailPrice" numeric NOT NULL DEFAULT 0,
			status BOOLEAN NOT NULL DEFAULT true,
			"createdOn" TEXT,
			"updatedOn" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			"orderId" SERIAL PRIMARY KEY,
			code TEXT,
			"customerId" INT NOT NULL REFERENCES customers("customerId"),
			"creatorId" INT NOT NULL REFERENCES users("userId"),
			"totalQuantity" INT NOT NULL DEFAULT 0,
			"totalPayment" numeric NOT NULL DEFAULT 0,
			"cashReceive" numeric NOT NULL DEFAULT 0,
			"cashRepay" numeric NOT NULL DEFAULT 0,
			"paymentType" TEXT,
			note TEXT,
			"createdOn" TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_details (
			"orderDetailId" SERIAL PRIMARY KEY,
			"orderId" INT NOT NULL REFERENCES orders("orderId"),
			"variantId" INT NOT NULL REFERENCES variants("variantId"),
			quantity INT NOT NULL,
			"subTotal" numeric NOT NULL DEFAULT 0
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
