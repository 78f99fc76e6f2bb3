package models

import "time"

// ShipmentPayroll (planilla) is the collection-cycle batch a shipment
// belongs to. A shipment owns exactly one at a time; the move operation
// reassigns ownership.
type ShipmentPayroll struct {
	ID               string  `json:"id" db:"id"`
	PayrollCode      int     `json:"payroll_code" db:"payroll_code"`
	PayrollTimestamp int64   `json:"payroll_timestamp" db:"payroll_timestamp"` // Unix timestamp
	Collected        bool    `json:"collected" db:"collected"`
	CollectedAt      *int64  `json:"collected_at,omitempty" db:"collected_at"` // Unix timestamp
	Deleted          bool    `json:"deleted" db:"deleted"`
	ModifiedBy       *string `json:"modified_by,omitempty" db:"modified_by"`
	ModifiedAt       int64   `json:"modified_at" db:"modified_at"` // Unix timestamp
}

// ShipmentPayrollResponse carries ISO timestamps for the client
type ShipmentPayrollResponse struct {
	ShipmentPayroll
	PayrollTimestampIso string  `json:"payroll_timestamp_iso"`
	CollectedAtIso      *string `json:"collected_at_iso,omitempty"`
}

func (p *ShipmentPayroll) ToShipmentPayrollResponse() ShipmentPayrollResponse {
	resp := ShipmentPayrollResponse{
		ShipmentPayroll:     *p,
		PayrollTimestampIso: time.Unix(p.PayrollTimestamp, 0).UTC().Format(time.RFC3339),
	}
	if p.CollectedAt != nil {
		iso := time.Unix(*p.CollectedAt, 0).UTC().Format(time.RFC3339)
		resp.CollectedAtIso = &iso
	}
	return resp
}

// CreateShipmentPayrollRequest is the request body for POST /api/shipment-payrolls
type CreateShipmentPayrollRequest struct {
	PayrollTimestamp int64 `json:"payroll_timestamp"`
}

// UpdateShipmentPayrollRequest is the request body for PUT /api/shipment-payrolls/:id
type UpdateShipmentPayrollRequest struct {
	PayrollTimestamp int64 `json:"payroll_timestamp"`
}

// CollectionStatusRequest is the request body for
// PATCH /api/shipment-payrolls/:id/collection-status
type CollectionStatusRequest struct {
	Collected bool `json:"collected"`
}
