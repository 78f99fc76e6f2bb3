package models

import "time"

// Shipment is a single freight movement. Weights and prices travel as
// decimal strings (NUMERIC columns in Postgres); the reports package
// parses them with zero-fallback semantics.
type Shipment struct {
	ID                string  `json:"id" db:"id"`
	ShipmentDate      int64   `json:"shipment_date" db:"shipment_date"` // Unix timestamp
	DriverID          string  `json:"driver_id" db:"driver_id"`
	DriverName        string  `json:"driver_name" db:"driver_name"` // Denormalized for table display
	TruckPlate        *string `json:"truck_plate,omitempty" db:"truck_plate"`
	TrailerPlate      *string `json:"trailer_plate,omitempty" db:"trailer_plate"`
	ProductID         string  `json:"product_id" db:"product_id"`
	ProductName       string  `json:"product_name" db:"product_name"`
	RouteID           string  `json:"route_id" db:"route_id"`
	Origin            string  `json:"origin" db:"origin"`
	Destination       string  `json:"destination" db:"destination"`
	Price             string  `json:"price" db:"price"`
	PayrollPrice      string  `json:"payroll_price" db:"payroll_price"`
	DispatchCode      *string `json:"dispatch_code,omitempty" db:"dispatch_code"`
	ReceiptCode       *string `json:"receipt_code,omitempty" db:"receipt_code"`
	OriginWeight      string  `json:"origin_weight" db:"origin_weight"`
	DestinationWeight string  `json:"destination_weight" db:"destination_weight"`
	ShipmentPayrollID string  `json:"shipment_payroll_id" db:"shipment_payroll_id"`
	DriverPayrollID   *string `json:"driver_payroll_id,omitempty" db:"driver_payroll_id"`
	Deleted           bool    `json:"deleted" db:"deleted"`
	ModifiedBy        *string `json:"modified_by,omitempty" db:"modified_by"`
	ModifiedAt        int64   `json:"modified_at" db:"modified_at"` // Unix timestamp
}

// ShipmentResponse adds the ISO date the admin tables render
type ShipmentResponse struct {
	Shipment
	ShipmentDateIso string `json:"shipment_date_iso"`
}

func (s *Shipment) ToShipmentResponse() ShipmentResponse {
	return ShipmentResponse{
		Shipment:        *s,
		ShipmentDateIso: time.Unix(s.ShipmentDate, 0).UTC().Format(time.RFC3339),
	}
}

// CreateShipmentRequest is the request body for POST /api/shipments
type CreateShipmentRequest struct {
	ShipmentDate      int64   `json:"shipment_date"`
	DriverID          string  `json:"driver_id"`
	ProductID         string  `json:"product_id"`
	RouteID           string  `json:"route_id"`
	Price             string  `json:"price"`
	PayrollPrice      string  `json:"payroll_price"`
	DispatchCode      *string `json:"dispatch_code,omitempty"`
	ReceiptCode       *string `json:"receipt_code,omitempty"`
	OriginWeight      string  `json:"origin_weight"`
	DestinationWeight string  `json:"destination_weight"`
	ShipmentPayrollID string  `json:"shipment_payroll_id"`
	DriverPayrollID   *string `json:"driver_payroll_id,omitempty"`
}

// UpdateShipmentRequest is the request body for PUT /api/shipments/:id
type UpdateShipmentRequest struct {
	ShipmentDate      int64   `json:"shipment_date"`
	DriverID          string  `json:"driver_id"`
	ProductID         string  `json:"product_id"`
	RouteID           string  `json:"route_id"`
	Price             string  `json:"price"`
	PayrollPrice      string  `json:"payroll_price"`
	DispatchCode      *string `json:"dispatch_code,omitempty"`
	ReceiptCode       *string `json:"receipt_code,omitempty"`
	OriginWeight      string  `json:"origin_weight"`
	DestinationWeight string  `json:"destination_weight"`
	DriverPayrollID   *string `json:"driver_payroll_id,omitempty"`
}

// BulkShipmentIDsRequest is the request body for DELETE /api/shipments and
// PATCH /api/shipments/move (an identifier list acted on as one operation)
type BulkShipmentIDsRequest struct {
	ShipmentIDs []string `json:"shipment_ids"`
}

// MessageResponse is the `{message}` shape bulk operations reply with
type MessageResponse struct {
	Message string `json:"message"`
}
