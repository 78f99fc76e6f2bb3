package models

import "time"

// DriverPayroll (liquidación) batches shipments for driver compensation,
// independent of the collection payroll.
type DriverPayroll struct {
	ID               string  `json:"id" db:"id"`
	PayrollCode      int     `json:"payroll_code" db:"payroll_code"`
	DriverID         string  `json:"driver_id" db:"driver_id"`
	DriverName       string  `json:"driver_name" db:"driver_name"` // Denormalized for table display
	PayrollTimestamp int64   `json:"payroll_timestamp" db:"payroll_timestamp"` // Unix timestamp
	Paid             bool    `json:"paid" db:"paid"`
	PaidAt           *int64  `json:"paid_at,omitempty" db:"paid_at"` // Unix timestamp
	Deleted          bool    `json:"deleted" db:"deleted"`
	ModifiedBy       *string `json:"modified_by,omitempty" db:"modified_by"`
	ModifiedAt       int64   `json:"modified_at" db:"modified_at"` // Unix timestamp
}

// DriverPayrollResponse carries ISO timestamps for the client
type DriverPayrollResponse struct {
	DriverPayroll
	PayrollTimestampIso string  `json:"payroll_timestamp_iso"`
	PaidAtIso           *string `json:"paid_at_iso,omitempty"`
}

func (p *DriverPayroll) ToDriverPayrollResponse() DriverPayrollResponse {
	resp := DriverPayrollResponse{
		DriverPayroll:       *p,
		PayrollTimestampIso: time.Unix(p.PayrollTimestamp, 0).UTC().Format(time.RFC3339),
	}
	if p.PaidAt != nil {
		iso := time.Unix(*p.PaidAt, 0).UTC().Format(time.RFC3339)
		resp.PaidAtIso = &iso
	}
	return resp
}

// CreateDriverPayrollRequest is the request body for POST /api/driver-payrolls
type CreateDriverPayrollRequest struct {
	DriverID         string `json:"driver_id"`
	PayrollTimestamp int64  `json:"payroll_timestamp"`
}

// UpdateDriverPayrollRequest is the request body for PUT /api/driver-payrolls/:id
type UpdateDriverPayrollRequest struct {
	PayrollTimestamp int64 `json:"payroll_timestamp"`
}

// PaidStatusRequest is the request body for PATCH /api/driver-payrolls/:id/paid-status
type PaidStatusRequest struct {
	Paid bool `json:"paid"`
}
