package models

type Driver struct {
	ID           string  `json:"id" db:"id"`
	DriverCode   int     `json:"driver_code" db:"driver_code"`
	Name         string  `json:"name" db:"name"`
	Surname      string  `json:"surname" db:"surname"`
	DocumentNo   string  `json:"document_no" db:"document_no"`
	TruckPlate   *string `json:"truck_plate,omitempty" db:"truck_plate"`
	TrailerPlate *string `json:"trailer_plate,omitempty" db:"trailer_plate"`
	Phone        *string `json:"phone,omitempty" db:"phone"`
	Address      *string `json:"address,omitempty" db:"address"`
	Deleted      bool    `json:"deleted" db:"deleted"`
	ModifiedBy   *string `json:"modified_by,omitempty" db:"modified_by"`
	ModifiedAt   int64   `json:"modified_at" db:"modified_at"` // Unix timestamp
}

// FullName joins name and surname for display and export rows
func (d *Driver) FullName() string {
	if d.Surname == "" {
		return d.Name
	}
	return d.Name + " " + d.Surname
}

// CreateDriverRequest is the request body for POST /api/drivers
type CreateDriverRequest struct {
	Name         string  `json:"name"`
	Surname      string  `json:"surname"`
	DocumentNo   string  `json:"document_no"`
	TruckPlate   *string `json:"truck_plate,omitempty"`
	TrailerPlate *string `json:"trailer_plate,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
}

// UpdateDriverRequest is the request body for PUT /api/drivers/:id
type UpdateDriverRequest struct {
	Name         string  `json:"name"`
	Surname      string  `json:"surname"`
	DocumentNo   string  `json:"document_no"`
	TruckPlate   *string `json:"truck_plate,omitempty"`
	TrailerPlate *string `json:"trailer_plate,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
}

// RegisterDeviceTokenRequest is the request body for POST /api/drivers/:id/fcm-token
type RegisterDeviceTokenRequest struct {
	Token string `json:"token"`
}

// DriverDevice is a registered push-notification target for a driver
type DriverDevice struct {
	ID        int    `json:"id" db:"id"`
	DriverID  string `json:"driver_id" db:"driver_id"`
	Token     string `json:"token" db:"token"`
	CreatedAt int64  `json:"created_at" db:"created_at"` // Unix timestamp
}
