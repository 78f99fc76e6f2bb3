package models

type Product struct {
	ID           string  `json:"id" db:"id"`
	ProductCode  int     `json:"product_code" db:"product_code"`
	Name         string  `json:"name" db:"name"`
	Observations *string `json:"observations,omitempty" db:"observations"`
	Deleted      bool    `json:"deleted" db:"deleted"`
	ModifiedBy   *string `json:"modified_by,omitempty" db:"modified_by"`
	ModifiedAt   int64   `json:"modified_at" db:"modified_at"` // Unix timestamp
}

// CreateProductRequest is the request body for POST /api/products
type CreateProductRequest struct {
	Name         string  `json:"name"`
	Observations *string `json:"observations,omitempty"`
}

// UpdateProductRequest is the request body for PUT /api/products/:id
type UpdateProductRequest struct {
	Name         string  `json:"name"`
	Observations *string `json:"observations,omitempty"`
}
