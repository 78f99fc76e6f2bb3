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

func GetDrivers(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Active list by default; ?deleted=true serves the archive view
		deleted := r.URL.Query().Get("deleted") == "true"

		var drivers []models.Driver
		err := db.Select(&drivers, `
			SELECT * FROM drivers
			WHERE deleted = $1
			ORDER BY driver_code ASC
		`, deleted)
		if err != nil {
			log.Printf("Error fetching drivers: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch drivers")
			return
		}

		if drivers == nil {
			drivers = []models.Driver{}
		}
		utils.Success(w, drivers)
	}
}

func GetDriver(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var driver models.Driver
		err := db.Get(&driver, "SELECT * FROM drivers WHERE id = $1", id)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Driver not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.Success(w, driver)
	}
}

func CreateDriver(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateDriverRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name == "" || req.DocumentNo == "" {
			utils.Error(w, http.StatusBadRequest, "Missing required fields: name, document_no")
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)
		id := uuid.New().String()

		_, err := db.Exec(`
			INSERT INTO drivers (id, name, surname, document_no, truck_plate, trailer_plate, phone, address, modified_by, modified_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, id, req.Name, req.Surname, req.DocumentNo, req.TruckPlate, req.TrailerPlate,
			req.Phone, req.Address, userClaims.UserID, time.Now().Unix())
		if err != nil {
			log.Printf("Error creating driver: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create driver")
			return
		}

		var driver models.Driver
		if err := db.Get(&driver, "SELECT * FROM drivers WHERE id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch created driver")
			return
		}

		hub.PublishEntityChanged("driver", id, userClaims.UserID)
		utils.JSON(w, http.StatusCreated, driver)
	}
}

func UpdateDriver(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateDriverRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)

		result, err := db.Exec(`
			UPDATE drivers
			SET name = $1, surname = $2, document_no = $3, truck_plate = $4,
			    trailer_plate = $5, phone = $6, address = $7,
			    modified_by = $8, modified_at = $9
			WHERE id = $10 AND deleted = FALSE
		`, req.Name, req.Surname, req.DocumentNo, req.TruckPlate, req.TrailerPlate,
			req.Phone, req.Address, userClaims.UserID, time.Now().Unix(), id)
		if err != nil {
			log.Printf("Error updating driver: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to update driver")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Driver not found")
			return
		}

		var driver models.Driver
		if err := db.Get(&driver, "SELECT * FROM drivers WHERE id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch updated driver")
			return
		}

		hub.PublishEntityChanged("driver", id, userClaims.UserID)
		utils.Success(w, driver)
	}
}

// DeleteDriver soft-deletes: the row stays and the archive view can restore it
func DeleteDriver(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		userClaims, _ := middleware.GetUserFromContext(r)

		result, err := db.Exec(`
			UPDATE drivers
			SET deleted = TRUE, modified_by = $1, modified_at = $2
			WHERE id = $3 AND deleted = FALSE
		`, userClaims.UserID, time.Now().Unix(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to delete driver")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Driver not found")
			return
		}

		hub.PublishEntityChanged("driver", id, userClaims.UserID)
		utils.Message(w, "Driver deleted")
	}
}

func RestoreDriver(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		userClaims, _ := middleware.GetUserFromContext(r)

		result, err := db.Exec(`
			UPDATE drivers
			SET deleted = FALSE, modified_by = $1, modified_at = $2
			WHERE id = $3 AND deleted = TRUE
		`, userClaims.UserID, time.Now().Unix(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to restore driver")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Driver not found")
			return
		}

		hub.PublishEntityChanged("driver", id, userClaims.UserID)
		utils.Message(w, "Driver restored")
	}
}

// RegisterDriverFCMToken stores a push-notification token for a driver's device
func RegisterDriverFCMToken(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.RegisterDeviceTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Token == "" {
			utils.Error(w, http.StatusBadRequest, "Missing required field: token")
			return
		}

		var exists bool
		if err := db.Get(&exists, "SELECT EXISTS(SELECT 1 FROM drivers WHERE id = $1)", id); err != nil || !exists {
			utils.Error(w, http.StatusNotFound, "Driver not found")
			return
		}

		_, err := db.Exec(`
			INSERT INTO driver_devices (driver_id, token, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (token) DO UPDATE SET driver_id = EXCLUDED.driver_id
		`, id, req.Token, time.Now().Unix())
		if err != nil {
			log.Printf("Error registering device token: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to register token")
			return
		}

		utils.Message(w, "Token registered")
	}
}
