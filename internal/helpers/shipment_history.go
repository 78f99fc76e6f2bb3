package helpers

import (
	"log"
	"time"

	"cargas-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// LogShipmentAction records a simple audit row for a shipment mutation
// ("created", "updated", "soft_deleted", "restored"). History failures are
// logged but never fail the mutation itself.
func LogShipmentAction(db *sqlx.DB, shipmentID, actionType, actorID, actorName string) error {
	query := `
		INSERT INTO shipment_history (
			id, shipment_id, action_type, actor_id, actor_name, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := db.Exec(query,
		uuid.New().String(),
		shipmentID,
		actionType,
		actorID,
		actorName,
		time.Now().Unix(),
	)
	if err != nil {
		log.Printf("[HISTORY] Failed to log '%s' action for shipment %s: %v", actionType, shipmentID, err)
	}

	return err
}

// LogShipmentMoved records the payroll reassignment of one shipment,
// keeping both the previous and the new batch for the audit view
func LogShipmentMoved(db *sqlx.DB, shipmentID, actorID, actorName, previousPayrollID, newPayrollID string) error {
	query := `
		INSERT INTO shipment_history (
			id, shipment_id, action_type, actor_id, actor_name,
			previous_payroll_id, new_payroll_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := db.Exec(query,
		uuid.New().String(),
		shipmentID,
		"moved",
		actorID,
		actorName,
		previousPayrollID,
		newPayrollID,
		time.Now().Unix(),
	)
	if err != nil {
		log.Printf("[HISTORY] Failed to log 'moved' action for shipment %s: %v", shipmentID, err)
	}

	return err
}

// GetShipmentHistory returns a shipment's audit rows, newest first
func GetShipmentHistory(db *sqlx.DB, shipmentID string) ([]models.ShipmentHistory, error) {
	var history []models.ShipmentHistory
	err := db.Select(&history, `
		SELECT id, shipment_id, action_type, actor_id, actor_name,
		       previous_payroll_id, new_payroll_id, created_at
		FROM shipment_history
		WHERE shipment_id = $1
		ORDER BY created_at DESC
	`, shipmentID)
	return history, err
}
