package models

import "time"

// ShipmentHistory is the audit trail row recorded for every shipment
// mutation (create, update, soft delete, restore, payroll move).
type ShipmentHistory struct {
	ID                string  `json:"id" db:"id"`
	ShipmentID        string  `json:"shipment_id" db:"shipment_id"`
	ActionType        string  `json:"action_type" db:"action_type"` // 'created', 'updated', 'soft_deleted', 'restored', 'moved'
	ActorID           string  `json:"actor_id" db:"actor_id"`
	ActorName         string  `json:"actor_name" db:"actor_name"`
	PreviousPayrollID *string `json:"previous_payroll_id,omitempty" db:"previous_payroll_id"`
	NewPayrollID      *string `json:"new_payroll_id,omitempty" db:"new_payroll_id"`
	CreatedAt         int64   `json:"created_at" db:"created_at"` // Unix timestamp
}

// ShipmentHistoryResponse adds the ISO timestamp for display
type ShipmentHistoryResponse struct {
	ShipmentHistory
	CreatedAtIso string `json:"created_at_iso"`
}

func (h *ShipmentHistory) ToShipmentHistoryResponse() ShipmentHistoryResponse {
	return ShipmentHistoryResponse{
		ShipmentHistory: *h,
		CreatedAtIso:    time.Unix(h.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
}
