package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"cargas-backend/internal/events"
	"cargas-backend/internal/middleware"
	"cargas-backend/internal/models"
	"cargas-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func GetProducts(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted := r.URL.Query().Get("deleted") == "true"

		var products []models.Product
		err := db.Select(&products, `
			SELECT * FROM products
			WHERE deleted = $1
			ORDER BY product_code ASC
		`, deleted)
		if err != nil {
			log.Printf("Error fetching products: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch products")
			return
		}

		if products == nil {
			products = []models.Product{}
		}
		utils.Success(w, products)
	}
}

func GetProduct(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var product models.Product
		err := db.Get(&product, "SELECT * FROM products WHERE id = $1", id)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.Success(w, product)
	}
}

func CreateProduct(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name == "" {
			utils.Error(w, http.StatusBadRequest, "Missing required field: name")
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)
		id := uuid.New().String()

		_, err := db.Exec(`
			INSERT INTO products (id, name, observations, modified_by, modified_at)
			VALUES ($1, $2, $3, $4, $5)
		`, id, req.Name, req.Observations, userClaims.UserID, time.Now().Unix())
		if err != nil {
			log.Printf("Error creating product: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create product")
			return
		}

		var product models.Product
		if err := db.Get(&product, "SELECT * FROM products WHERE id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch created product")
			return
		}

		hub.PublishEntityChanged("product", id, userClaims.UserID)
		utils.JSON(w, http.StatusCreated, product)
	}
}

func UpdateProduct(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)

		result, err := db.Exec(`
			UPDATE products
			SET name = $1, observations = $2, modified_by = $3, modified_at = $4
			WHERE id = $5 AND deleted = FALSE
		`, req.Name, req.Observations, userClaims.UserID, time.Now().Unix(), id)
		if err != nil {
			log.Printf("Error updating product: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to update product")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Product not found")
			return
		}

		var product models.Product
		if err := db.Get(&product, "SELECT * FROM products WHERE id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch updated product")
			return
		}

		hub.PublishEntityChanged("product", id, userClaims.UserID)
		utils.Success(w, product)
	}
}

func DeleteProduct(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		userClaims, _ := middleware.GetUserFromContext(r)

		result, err := db.Exec(`
			UPDATE products
			SET deleted = TRUE, modified_by = $1, modified_at = $2
			WHERE id = $3 AND deleted = FALSE
		`, userClaims.UserID, time.Now().Unix(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to delete product")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Product not found")
			return
		}

		hub.PublishEntityChanged("product", id, userClaims.UserID)
		utils.Message(w, "Product deleted")
	}
}

func RestoreProduct(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		userClaims, _ := middleware.GetUserFromContext(r)

		result, err := db.Exec(`
			UPDATE products
			SET deleted = FALSE, modified_by = $1, modified_at = $2
			WHERE id = $3 AND deleted = TRUE
		`, userClaims.UserID, time.Now().Unix(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to restore product")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Product not found")
			return
		}

		hub.PublishEntityChanged("product", id, userClaims.UserID)
		utils.Message(w, "Product restored")
	}
}
