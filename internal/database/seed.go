package database

import (
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func SeedUsers(db *sqlx.DB) error {
	// Check if users already exist
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Users already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding default users...")

	adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	operatorPassword, err := bcrypt.GenerateFromPassword([]byte("operator123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []struct {
		email    string
		password []byte
		name     string
		role     string
	}{
		{"admin@cargas.local", adminPassword, "Administrador", "admin"},
		{"operador@cargas.local", operatorPassword, "Operador", "operator"},
	}

	for _, u := range users {
		_, err := db.Exec(`
			INSERT INTO users (id, email, password, name, role)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), u.email, string(u.password), u.name, u.role)
		if err != nil {
			return err
		}
		log.Printf("   Created user: %s (%s)", u.email, u.role)
	}

	return nil
}

// SeedMasterData loads a small set of products and routes so a fresh
// install has something to hang shipments on. Skipped when any rows exist.
func SeedMasterData(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM products"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Master data already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding master data...")

	products := []string{"Soja", "Maíz", "Trigo", "Girasol"}
	for _, name := range products {
		_, err := db.Exec(`
			INSERT INTO products (id, name) VALUES ($1, $2)
		`, uuid.New().String(), name)
		if err != nil {
			return err
		}
	}

	routes := []struct {
		origin       string
		destination  string
		price        string
		payrollPrice string
	}{
		{"San Alberto", "Asunción", "250.5", "220"},
		{"Katueté", "Asunción", "265", "235"},
		{"Santa Rita", "Villeta", "230", "205"},
	}
	for _, r := range routes {
		_, err := db.Exec(`
			INSERT INTO routes (id, origin, destination, price, payroll_price)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), r.origin, r.destination, r.price, r.payrollPrice)
		if err != nil {
			return err
		}
	}

	log.Printf("   Seeded %d products, %d routes", len(products), len(routes))
	return nil
}
