package models

// Route is a priced origin/destination pair. Price and payroll price are
// carried as decimal strings so values survive transport without float
// rounding; arithmetic happens in internal/reports.
type Route struct {
	ID           string  `json:"id" db:"id"`
	RouteCode    int     `json:"route_code" db:"route_code"`
	Origin       string  `json:"origin" db:"origin"`
	Destination  string  `json:"destination" db:"destination"`
	Price        string  `json:"price" db:"price"`
	PayrollPrice string  `json:"payroll_price" db:"payroll_price"`
	Deleted      bool    `json:"deleted" db:"deleted"`
	ModifiedBy   *string `json:"modified_by,omitempty" db:"modified_by"`
	ModifiedAt   int64   `json:"modified_at" db:"modified_at"` // Unix timestamp
}

// CreateRouteRequest is the request body for POST /api/routes
type CreateRouteRequest struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Price        string `json:"price"`
	PayrollPrice string `json:"payroll_price"`
}

// UpdateRouteRequest is the request body for PUT /api/routes/:id
type UpdateRouteRequest struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Price        string `json:"price"`
	PayrollPrice string `json:"payroll_price"`
}

// RoutePriceResponse is returned by GET /api/routes/price and feeds the
// shipment form's default prices once origin+destination are chosen
type RoutePriceResponse struct {
	RouteID      string `json:"route_id"`
	Price        string `json:"price"`
	PayrollPrice string `json:"payroll_price"`
}
