package client

import "github.com/shopspring/decimal"

// Wire types mirror the backend's JSON responses. Weights and prices
// travel as decimal strings; computed subtotals arrive as decimals.

type Shipment struct {
	ID                string  `json:"id"`
	ShipmentDate      int64   `json:"shipment_date"`
	ShipmentDateIso   string  `json:"shipment_date_iso,omitempty"`
	DriverID          string  `json:"driver_id"`
	DriverName        string  `json:"driver_name"`
	TruckPlate        *string `json:"truck_plate,omitempty"`
	TrailerPlate      *string `json:"trailer_plate,omitempty"`
	ProductID         string  `json:"product_id"`
	ProductName       string  `json:"product_name"`
	RouteID           string  `json:"route_id"`
	Origin            string  `json:"origin"`
	Destination       string  `json:"destination"`
	Price             string  `json:"price"`
	PayrollPrice      string  `json:"payroll_price"`
	DispatchCode      *string `json:"dispatch_code,omitempty"`
	ReceiptCode       *string `json:"receipt_code,omitempty"`
	OriginWeight      string  `json:"origin_weight"`
	DestinationWeight string  `json:"destination_weight"`
	ShipmentPayrollID string  `json:"shipment_payroll_id"`
	DriverPayrollID   *string `json:"driver_payroll_id,omitempty"`
	Deleted           bool    `json:"deleted"`
	ModifiedAt        int64   `json:"modified_at"`
}

// GroupedShipments is one (product, origin, destination) section of the
// pre-grouped report, with its member rows and subtotals.
type GroupedShipments struct {
	ProductName               string          `json:"product_name"`
	Origin                    string          `json:"origin"`
	Destination               string          `json:"destination"`
	Shipments                 []Shipment      `json:"shipments"`
	SubtotalOriginWeight      decimal.Decimal `json:"subtotal_origin_weight"`
	SubtotalDestinationWeight decimal.Decimal `json:"subtotal_destination_weight"`
	SubtotalMoney             decimal.Decimal `json:"subtotal_money"`
}

type Totals struct {
	OriginWeight      decimal.Decimal `json:"origin_weight"`
	DestinationWeight decimal.Decimal `json:"destination_weight"`
	Money             decimal.Decimal `json:"money"`
}

// GroupedReport is the payload of GET /api/shipments/grouped
type GroupedReport struct {
	Groups []GroupedShipments `json:"groups"`
	Totals Totals             `json:"totals"`
}

// RowCount returns the number of member shipments across all groups
func (r GroupedReport) RowCount() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Shipments)
	}
	return n
}

// ShipmentIDs lists every member shipment id in group order, feeding
// the select-all action
func (r GroupedReport) ShipmentIDs() []string {
	ids := make([]string, 0, r.RowCount())
	for _, g := range r.Groups {
		for _, s := range g.Shipments {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

type ShipmentPayroll struct {
	ID                  string  `json:"id"`
	PayrollCode         int     `json:"payroll_code"`
	PayrollTimestamp    int64   `json:"payroll_timestamp"`
	PayrollTimestampIso string  `json:"payroll_timestamp_iso,omitempty"`
	Collected           bool    `json:"collected"`
	CollectedAt         *int64  `json:"collected_at,omitempty"`
	Deleted             bool    `json:"deleted"`
	ModifiedAt          int64   `json:"modified_at"`
}

type DriverPayroll struct {
	ID                  string `json:"id"`
	PayrollCode         int    `json:"payroll_code"`
	DriverID            string `json:"driver_id"`
	DriverName          string `json:"driver_name"`
	PayrollTimestamp    int64  `json:"payroll_timestamp"`
	PayrollTimestampIso string `json:"payroll_timestamp_iso,omitempty"`
	Paid                bool   `json:"paid"`
	PaidAt              *int64 `json:"paid_at,omitempty"`
	Deleted             bool   `json:"deleted"`
	ModifiedAt          int64  `json:"modified_at"`
}

type Driver struct {
	ID           string  `json:"id"`
	DriverCode   int     `json:"driver_code"`
	Name         string  `json:"name"`
	Surname      string  `json:"surname"`
	DocumentNo   string  `json:"document_no"`
	TruckPlate   *string `json:"truck_plate,omitempty"`
	TrailerPlate *string `json:"trailer_plate,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	Deleted      bool    `json:"deleted"`
}

type Product struct {
	ID           string  `json:"id"`
	ProductCode  int     `json:"product_code"`
	Name         string  `json:"name"`
	Observations *string `json:"observations,omitempty"`
	Deleted      bool    `json:"deleted"`
}

type Route struct {
	ID           string `json:"id"`
	RouteCode    int    `json:"route_code"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Price        string `json:"price"`
	PayrollPrice string `json:"payroll_price"`
	Deleted      bool   `json:"deleted"`
}

// RoutePrice is the default pricing a form pulls when an
// origin/destination pair is chosen
type RoutePrice struct {
	RouteID      string `json:"route_id"`
	Price        string `json:"price"`
	PayrollPrice string `json:"payroll_price"`
}

// CreateShipmentRequest is the POST /api/shipments body. The server
// assigns the identifier.
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

// Update shares the create shape minus the owning payroll, which only
// the move operation changes
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

type bulkShipmentIDs struct {
	ShipmentIDs []string `json:"shipment_ids"`
}

type messageResponse struct {
	Message string `json:"message"`
}
