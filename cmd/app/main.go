package main

import (
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/tiendamoda/clothing-store-backend/internal/config"
	"github.com/tiendamoda/clothing-store-backend/internal/inventory"
	"github.com/tiendamoda/clothing-store-backend/internal/order"
	"github.com/tiendamoda/clothing-store-backend/internal/product"
	"github.com/tiendamoda/clothing-store-backend/internal/report"
	"github.com/tiendamoda/clothing-store-backend/internal/reservation"
	"github.com/tiendamoda/clothing-store-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	bootstrapSchema(db)
	seedProducts(db)
	seedAdmin(db)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(requestLogger)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)
	orderHandler := order.NewHandler(order.NewService(order.NewPostgresRepository(db)))
	userHandler := user.NewHandler(user.NewService(user.NewPostgresRepository(db)))
	reservationHandler := reservation.NewHandler(reservation.NewService(reservation.NewPostgresRepository(db)), productService)
	inventoryHandler := inventory.NewHandler(inventory.NewService(inventory.NewPostgresRepository(db)))
	reportHandler := report.NewHandler(report.NewPostgresRepository(db))

	// public storefront routes go first; everything registered after the JWT
	// middleware requires a token
	productHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)
	reservationHandler.RegisterPublicRoutes(app)
	userHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	orderHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	reservationHandler.RegisterProtectedRoutes(app)
	inventoryHandler.RegisterProtectedRoutes(app)
	userHandler.RegisterProtectedRoutes(app)
	reportHandler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func mustOpenDB(databaseURL string) *sql.DB {
	if databaseURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

func bootstrapSchema(db *sql.DB) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC(10,2) NOT NULL,
			image_url TEXT,
			stock INT NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'Publicado'
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			customer_name TEXT NOT NULL,
			total NUMERIC(10,2) NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id),
			product_id INT NOT NULL,
			quantity INT NOT NULL,
			unit_price NUMERIC(10,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'customer',
			phone TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id SERIAL PRIMARY KEY,
			code TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			product_id INT NOT NULL,
			reserved_for TEXT,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}

func seedProducts(db *sql.DB) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil || count > 0 {
		return
	}

	seed := []struct {
		name, description, image string
		price                    float64
		stock                    int
	}{
		{"T-Shirt", "A nice t-shirt", "https://via.placeholder.com/150", 19.99, 25},
		{"Jeans", "A pair of jeans", "https://via.placeholder.com/150", 49.99, 15},
		{"Jacket", "A cool jacket", "https://via.placeholder.com/150", 89.99, 8},
	}
	for _, s := range seed {
		if _, err := db.Exec(
			`INSERT INTO products (name, description, price, image_url, stock) VALUES ($1, $2, $3, $4, $5)`,
			s.name, s.description, s.price, s.image, s.stock,
		); err != nil {
			log.Printf("warning: could not seed product %q: %v", s.name, err)
		}
	}
}

// seedAdmin creates the initial back-office account when no admin exists yet.
func seedAdmin(db *sql.DB) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = 'admin'`).Scan(&count); err != nil || count > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("no admin account; set ADMIN_EMAIL and ADMIN_PASSWORD to seed one")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("warning: could not hash admin password: %v", err)
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := db.Exec(
		`INSERT INTO users (name, email, password, role, created_at, updated_at) VALUES ($1, $2, $3, 'admin', $4, $4)`,
		"Administrador", email, string(hashed), now,
	); err != nil {
		log.Printf("warning: could not seed admin account: %v", err)
	}
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("%s %s -> %d (%v)", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}
