package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Connect(dbURL string) (*sqlx.DB, error) {
	log.Println("🔄 Step 1: Attempting sqlx.Connect()...")
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Printf("❌ DATABASE CONNECTION FAILED AT sqlx.Connect(): %v", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("✅ Step 1 Complete: sqlx.Connect() succeeded")

	log.Println("🔄 Step 2: Testing connection with Ping()...")
	if err := db.Ping(); err != nil {
		log.Printf("❌ DATABASE CONNECTION FAILED AT Ping(): %v", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("✅ Step 2 Complete: Ping() succeeded")

	return db, nil
}

func Migrate(db *sqlx.DB) error {
	migrations := []string{
		// Create users table (back-office accounts)
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('operator', 'admin')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create drivers table
		`CREATE TABLE IF NOT EXISTS drivers (
			id TEXT PRIMARY KEY,
			driver_code SERIAL,
			name TEXT NOT NULL,
			surname TEXT NOT NULL DEFAULT '',
			document_no TEXT NOT NULL,
			truck_plate TEXT,
			trailer_plate TEXT,
			phone TEXT,
			address TEXT,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			modified_by TEXT,
			modified_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create products table
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			product_code SERIAL,
			name TEXT NOT NULL,
			observations TEXT,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			modified_by TEXT,
			modified_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create routes table (priced origin/destination pairs)
		`CREATE TABLE IF NOT EXISTS routes (
			id TEXT PRIMARY KEY,
			route_code SERIAL,
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			price NUMERIC(15,4) NOT NULL DEFAULT 0,
			payroll_price NUMERIC(15,4) NOT NULL DEFAULT 0,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			modified_by TEXT,
			modified_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			UNIQUE (origin, destination)
		)`,

		// Create shipment_payrolls table (collection batches)
		`CREATE TABLE IF NOT EXISTS shipment_payrolls (
			id TEXT PRIMARY KEY,
			payroll_code SERIAL,
			payroll_timestamp BIGINT NOT NULL,
			collected BOOLEAN NOT NULL DEFAULT FALSE,
			collected_at BIGINT,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			modified_by TEXT,
			modified_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create driver_payrolls table (driver compensation batches)
		`CREATE TABLE IF NOT EXISTS driver_payrolls (
			id TEXT PRIMARY KEY,
			payroll_code SERIAL,
			driver_id TEXT NOT NULL,
			payroll_timestamp BIGINT NOT NULL,
			paid BOOLEAN NOT NULL DEFAULT FALSE,
			paid_at BIGINT,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			modified_by TEXT,
			modified_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (driver_id) REFERENCES drivers(id) ON DELETE CASCADE
		)`,

		// Create shipments table. Weights and prices are NUMERIC so the
		// values round-trip exactly as decimal strings.
		`CREATE TABLE IF NOT EXISTS shipments (
			id TEXT PRIMARY KEY,
			shipment_date BIGINT NOT NULL,
			driver_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			route_id TEXT NOT NULL,
			price NUMERIC(15,4) NOT NULL DEFAULT 0,
			payroll_price NUMERIC(15,4) NOT NULL DEFAULT 0,
			dispatch_code TEXT,
			receipt_code TEXT,
			origin_weight NUMERIC(15,4) NOT NULL DEFAULT 0,
			destination_weight NUMERIC(15,4) NOT NULL DEFAULT 0,
			shipment_payroll_id TEXT NOT NULL,
			driver_payroll_id TEXT,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			modified_by TEXT,
			modified_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (driver_id) REFERENCES drivers(id) ON DELETE CASCADE,
			FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE,
			FOREIGN KEY (route_id) REFERENCES routes(id) ON DELETE CASCADE,
			FOREIGN KEY (shipment_payroll_id) REFERENCES shipment_payrolls(id) ON DELETE CASCADE,
			FOREIGN KEY (driver_payroll_id) REFERENCES driver_payrolls(id) ON DELETE SET NULL
		)`,

		// Create shipment_history table (audit trail for mutations and moves)
		`CREATE TABLE IF NOT EXISTS shipment_history (
			id TEXT PRIMARY KEY,
			shipment_id TEXT NOT NULL,
			action_type TEXT NOT NULL CHECK(action_type IN ('created', 'updated', 'soft_deleted', 'restored', 'moved')),
			actor_id TEXT NOT NULL,
			actor_name TEXT NOT NULL,
			previous_payroll_id TEXT,
			new_payroll_id TEXT,
			created_at BIGINT NOT NULL,
			FOREIGN KEY (shipment_id) REFERENCES shipments(id) ON DELETE CASCADE
		)`,

		// Create driver_devices table (push notification targets)
		`CREATE TABLE IF NOT EXISTS driver_devices (
			id SERIAL PRIMARY KEY,
			driver_id TEXT NOT NULL,
			token TEXT NOT NULL UNIQUE,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (driver_id) REFERENCES drivers(id) ON DELETE CASCADE
		)`,

		// Create indexes
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_drivers_deleted ON drivers(deleted)`,
		`CREATE INDEX IF NOT EXISTS idx_products_deleted ON products(deleted)`,
		`CREATE INDEX IF NOT EXISTS idx_routes_deleted ON routes(deleted)`,
		`CREATE INDEX IF NOT EXISTS idx_routes_origin_destination ON routes(origin, destination)`,
		`CREATE INDEX IF NOT EXISTS idx_shipments_payroll ON shipments(shipment_payroll_id)`,
		`CREATE INDEX IF NOT EXISTS idx_shipments_driver_payroll ON shipments(driver_payroll_id)`,
		`CREATE INDEX IF NOT EXISTS idx_shipments_deleted ON shipments(deleted)`,
		`CREATE INDEX IF NOT EXISTS idx_shipment_payrolls_timestamp ON shipment_payrolls(payroll_timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_driver_payrolls_driver ON driver_payrolls(driver_id)`,
		`CREATE INDEX IF NOT EXISTS idx_shipment_history_shipment ON shipment_history(shipment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_driver_devices_driver ON driver_devices(driver_id)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
