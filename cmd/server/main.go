package main

import (
	"log"
	"net/http"
	"os"

	"cargas-backend/internal/database"
	"cargas-backend/internal/events"
	"cargas-backend/internal/handlers"
	"cargas-backend/internal/middleware"
	"cargas-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚛 CARGAS BACKEND SERVER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Load .env file
	log.Println("📂 Loading environment variables...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// Get database URL
	log.Println("🔍 Checking DATABASE_URL environment variable...")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: DATABASE_URL environment variable is required")
		log.Println("   Please set DATABASE_URL in Railway Variables or .env file")
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal("DATABASE_URL environment variable is required")
	}
	log.Println("✅ DATABASE_URL found")

	// Connect to database
	log.Println("🔌 Connecting to database...")
	db, err := database.Connect(dbURL)
	if err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Database connection failed")
		log.Printf("   Error: %v", err)
		log.Println("   This is usually caused by:")
		log.Println("   1. Wrong DATABASE_URL format")
		log.Println("   2. PostgreSQL service is down")
		log.Println("   3. Network connectivity issue")
		log.Println("   4. Invalid credentials")
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	defer db.Close()
	log.Println("✅ Database connection established")

	// Run migrations
	log.Println("🔄 Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Database migrations failed")
		log.Printf("   Error: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	log.Println("✅ Database migrations completed")

	// Seed database
	log.Println("🌱 Seeding database with initial data...")
	if err := database.SeedUsers(db); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: User seeding failed")
		log.Printf("   Error: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	log.Println("✅ Users seeded successfully")

	if err := database.SeedMasterData(db); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Master data seeding failed")
		log.Printf("   Error: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	log.Println("✅ Master data seeded successfully")

	// Initialize Firebase Cloud Messaging
	// Supports both file path and base64-encoded credentials (for Railway/cloud deployments)
	var fcmService *services.FCMService
	fcmCredsBase64 := os.Getenv("FIREBASE_CREDENTIALS_BASE64")

	if fcmCredsBase64 != "" {
		// Use base64-encoded credentials (Railway-friendly)
		fcmService, err = services.NewFCMServiceFromBase64(fcmCredsBase64)
		if err != nil {
			log.Printf("⚠️  Failed to initialize FCM from base64: %v (push notifications disabled)", err)
			fcmService = nil
		} else {
			log.Println("✅ Firebase Cloud Messaging initialized from base64 credentials")
		}
	} else {
		// Fall back to file path (local development)
		fcmCredentialsFile := os.Getenv("FIREBASE_CREDENTIALS_FILE")
		if fcmCredentialsFile == "" {
			fcmCredentialsFile = "./firebase-service-account.json"
		}

		fcmService, err = services.NewFCMService(fcmCredentialsFile)
		if err != nil {
			log.Printf("⚠️  Failed to initialize FCM from file: %v (push notifications disabled)", err)
			fcmService = nil
		} else {
			log.Println("✅ Firebase Cloud Messaging initialized from file")
		}
	}

	// Initialize events hub (pushes entity_changed to back-office sessions)
	hub := events.NewHub()
	go hub.Run()
	log.Println("✅ Events hub started")

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Authentication routes (no auth required)
	r.Post("/api/auth/login", handlers.Login(db))

	// WebSocket endpoint (authentication handled in handler via query param)
	r.Get("/ws", events.HandleWebSocket(hub))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Everything below requires a valid token
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			// Auth status endpoint
			r.Get("/auth/status", handlers.GetAuthStatus(db))

			// Drivers
			r.Get("/drivers", handlers.GetDrivers(db))
			r.Get("/drivers/{id}", handlers.GetDriver(db))
			r.Post("/drivers", handlers.CreateDriver(db, hub))
			r.Put("/drivers/{id}", handlers.UpdateDriver(db, hub))
			r.Post("/drivers/{id}/fcm-token", handlers.RegisterDriverFCMToken(db))

			// Products
			r.Get("/products", handlers.GetProducts(db))
			r.Get("/products/{id}", handlers.GetProduct(db))
			r.Post("/products", handlers.CreateProduct(db, hub))
			r.Put("/products/{id}", handlers.UpdateProduct(db, hub))

			// Routes (origin/destination price book)
			r.Get("/routes", handlers.GetRoutes(db))
			r.Get("/routes/price", handlers.GetRoutePrice(db)) // Register before {id} - exact match
			r.Get("/routes/{id}", handlers.GetRoute(db))
			r.Post("/routes", handlers.CreateRoute(db, hub))
			r.Put("/routes/{id}", handlers.UpdateRoute(db, hub))

			// Shipment payrolls (planillas)
			r.Get("/shipment-payrolls", handlers.GetShipmentPayrolls(db))
			r.Get("/shipment-payrolls/{id}", handlers.GetShipmentPayroll(db))
			r.Post("/shipment-payrolls", handlers.CreateShipmentPayroll(db, hub))
			r.Put("/shipment-payrolls/{id}", handlers.UpdateShipmentPayroll(db, hub))
			r.Patch("/shipment-payrolls/{id}/collection-status", handlers.SetCollectionStatus(db, hub))
			r.Get("/shipment-payrolls/{id}/export-excel", handlers.ExportShipmentPayroll(db))

			// Shipments (cargas)
			r.Get("/shipments", handlers.GetShipments(db))
			r.Get("/shipments/grouped", handlers.GetGroupedShipments(db))
			r.Get("/shipments/{id}/history", handlers.GetShipmentHistory(db))
			r.Post("/shipments", handlers.CreateShipment(db, hub))
			r.Put("/shipments/{id}", handlers.UpdateShipment(db, hub))
			r.Patch("/shipments/move", handlers.MoveShipments(db, hub))
			r.Delete("/shipments", handlers.BulkDeleteShipments(db, hub))
			r.Delete("/shipments/{id}", handlers.DeleteShipment(db, hub))

			// Driver payrolls (liquidaciones)
			r.Get("/driver-payrolls", handlers.GetDriverPayrolls(db))
			r.Get("/driver-payrolls/{id}", handlers.GetDriverPayroll(db))
			r.Get("/driver-payrolls/{id}/shipments", handlers.GetDriverPayrollShipments(db))
			r.Post("/driver-payrolls", handlers.CreateDriverPayroll(db, hub))
			r.Put("/driver-payrolls/{id}", handlers.UpdateDriverPayroll(db, hub))
			r.Patch("/driver-payrolls/{id}/paid-status", handlers.SetPaidStatus(db, hub, fcmService))
			r.Get("/driver-payrolls/{id}/export-excel", handlers.ExportDriverPayroll(db))
		})

		// Admin endpoints (require authentication + admin role)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(middleware.RequireRole("admin"))

			// User management
			r.Post("/users", handlers.CreateUser(db))

			// Archive management (soft delete + restore)
			r.Delete("/drivers/{id}", handlers.DeleteDriver(db, hub))
			r.Post("/drivers/{id}/restore", handlers.RestoreDriver(db, hub))
			r.Delete("/products/{id}", handlers.DeleteProduct(db, hub))
			r.Post("/products/{id}/restore", handlers.RestoreProduct(db, hub))
			r.Delete("/routes/{id}", handlers.DeleteRoute(db, hub))
			r.Post("/routes/{id}/restore", handlers.RestoreRoute(db, hub))
			r.Delete("/shipment-payrolls/{id}", handlers.DeleteShipmentPayroll(db, hub))
			r.Delete("/driver-payrolls/{id}", handlers.DeleteDriverPayroll(db, hub))
			r.Post("/shipments/{id}/restore", handlers.RestoreShipment(db, hub))
		})
	})

	// Get port
	log.Println("🔍 Checking PORT environment variable...")
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("⚠️  PORT not set, using default: %s", port)
	} else {
		log.Printf("✅ PORT found: %s", port)
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("✅ ALL INITIALIZATION COMPLETE")
	log.Printf("🚛 Server starting on http://localhost:%s", port)
	log.Println("🔌 Ready to accept requests!")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Start server
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Server failed to start")
		log.Printf("   Error: %v", err)
		log.Printf("   Port: %s", port)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
}
