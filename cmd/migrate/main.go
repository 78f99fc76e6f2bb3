package main

import (
	"fmt"
	"log"
	"os"

	"cargas-backend/internal/database"

	"github.com/joho/godotenv"
)

// Standalone migration runner. Useful for applying schema changes
// against a database without starting the API server.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	// Connect to database
	db, err := database.Connect(dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	// Apply schema
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed successfully!")

	// Query and display summary
	var result struct {
		Drivers          int `db:"drivers"`
		Products         int `db:"products"`
		Routes           int `db:"routes"`
		Shipments        int `db:"shipments"`
		ShipmentPayrolls int `db:"shipment_payrolls"`
		DriverPayrolls   int `db:"driver_payrolls"`
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM drivers WHERE deleted = FALSE) AS drivers,
			(SELECT COUNT(*) FROM products WHERE deleted = FALSE) AS products,
			(SELECT COUNT(*) FROM routes WHERE deleted = FALSE) AS routes,
			(SELECT COUNT(*) FROM shipments WHERE deleted = FALSE) AS shipments,
			(SELECT COUNT(*) FROM shipment_payrolls WHERE deleted = FALSE) AS shipment_payrolls,
			(SELECT COUNT(*) FROM driver_payrolls WHERE deleted = FALSE) AS driver_payrolls
	`

	if err := db.Get(&result, query); err != nil {
		log.Fatalf("Failed to query summary: %v", err)
	}

	// Display results
	fmt.Println("\n============================================================")
	fmt.Println("MIGRATION SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("Drivers:            %d\n", result.Drivers)
	fmt.Printf("Products:           %d\n", result.Products)
	fmt.Printf("Routes:             %d\n", result.Routes)
	fmt.Printf("Shipments:          %d\n", result.Shipments)
	fmt.Printf("Shipment payrolls:  %d\n", result.ShipmentPayrolls)
	fmt.Printf("Driver payrolls:    %d\n", result.DriverPayrolls)
	fmt.Println("============================================================")
}
