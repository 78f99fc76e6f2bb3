package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// MovedShipment pairs a shipment with the payroll it belonged to before a
// move, so the caller can record the reassignment in the audit trail.
type MovedShipment struct {
	ID                string `db:"id"`
	PreviousPayrollID string `db:"shipment_payroll_id"`
}

// SoftDeleteShipments marks the listed shipments deleted in one
// transaction. All ids flip together or none do.
func SoftDeleteShipments(db *sqlx.DB, shipmentIDs []string, actorID string) (int64, error) {
	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE shipments
		SET deleted = TRUE, modified_by = $1, modified_at = $2
		WHERE id = ANY($3) AND deleted = FALSE
	`, actorID, time.Now().Unix(), pq.Array(shipmentIDs))
	if err != nil {
		return 0, fmt.Errorf("failed to soft-delete shipments: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count soft-deleted shipments: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rows, nil
}

// MoveShipments reassigns the listed shipments to another shipment
// payroll in one transaction. The target batch must exist and not be
// soft-deleted; sql.ErrNoRows is returned when it doesn't.
func MoveShipments(db *sqlx.DB, shipmentIDs []string, targetPayrollID, actorID string) ([]MovedShipment, error) {
	tx, err := db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var targetExists bool
	err = tx.Get(&targetExists, `
		SELECT EXISTS(SELECT 1 FROM shipment_payrolls WHERE id = $1 AND deleted = FALSE)
	`, targetPayrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to check target payroll: %w", err)
	}
	if !targetExists {
		return nil, sql.ErrNoRows
	}

	// Capture the previous batch of every shipment about to move
	var moved []MovedShipment
	err = tx.Select(&moved, `
		SELECT id, shipment_payroll_id
		FROM shipments
		WHERE id = ANY($1) AND deleted = FALSE
	`, pq.Array(shipmentIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load shipments to move: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE shipments
		SET shipment_payroll_id = $1, modified_by = $2, modified_at = $3
		WHERE id = ANY($4) AND deleted = FALSE
	`, targetPayrollID, actorID, time.Now().Unix(), pq.Array(shipmentIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to move shipments: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return moved, nil
}

// CountActivePayrollShipments returns how many non-deleted shipments
// still belong to a shipment payroll (used to refuse payroll deletion)
func CountActivePayrollShipments(db *sqlx.DB, payrollID string) (int, error) {
	var count int
	err := db.Get(&count, `
		SELECT COUNT(*) FROM shipments
		WHERE shipment_payroll_id = $1 AND deleted = FALSE
	`, payrollID)
	if err != nil {
		return 0, fmt.Errorf("failed to count payroll shipments: %w", err)
	}
	return count, nil
}
