package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"cargas-backend/internal/models"
	"cargas-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser creates a back-office account (admin only)
func CreateUser(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Email == "" || req.Password == "" || req.Name == "" {
			utils.Error(w, http.StatusBadRequest, "Missing required fields: email, password, name")
			return
		}
		if req.Role != "admin" && req.Role != "operator" {
			utils.Error(w, http.StatusBadRequest, "Invalid role: must be 'admin' or 'operator'")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		now := time.Now().Unix()
		user := models.User{
			ID:        uuid.New().String(),
			Email:     req.Email,
			Password:  string(hashed),
			Name:      req.Name,
			Role:      req.Role,
			CreatedAt: now,
			UpdatedAt: now,
		}

		_, err = db.Exec(`
			INSERT INTO users (id, email, password, name, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, user.ID, user.Email, user.Password, user.Name, user.Role, user.CreatedAt, user.UpdatedAt)
		if err != nil {
			log.Printf("Error creating user: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create user")
			return
		}

		utils.JSON(w, http.StatusCreated, user.ToUserResponse())
	}
}
