package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"cargas-backend/internal/events"
	"cargas-backend/internal/middleware"
	"cargas-backend/internal/models"
	"cargas-backend/internal/reports"
	"cargas-backend/internal/services"
	"cargas-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const driverPayrollSelect = `
	SELECT dp.id, dp.payroll_code, dp.driver_id,
	       TRIM(d.name || ' ' || d.surname) AS driver_name,
	       dp.payroll_timestamp, dp.paid, dp.paid_at,
	       dp.deleted, dp.modified_by, dp.modified_at
	FROM driver_payrolls dp
	JOIN drivers d ON d.id = dp.driver_id`

// GetDriverPayrolls lists driver payrolls, optionally filtered by driver
// and year
// GET /api/driver-payrolls?driver_id=:id&year=:y
func GetDriverPayrolls(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := driverPayrollSelect + " WHERE dp.deleted = FALSE"
		args := []interface{}{}

		if driverID := r.URL.Query().Get("driver_id"); driverID != "" {
			args = append(args, driverID)
			query += fmt.Sprintf(" AND dp.driver_id = $%d", len(args))
		}
		if yearParam := r.URL.Query().Get("year"); yearParam != "" {
			year, err := strconv.Atoi(yearParam)
			if err != nil {
				utils.Error(w, http.StatusBadRequest, "Invalid year")
				return
			}
			from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
			to := time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
			args = append(args, from)
			query += fmt.Sprintf(" AND dp.payroll_timestamp >= $%d", len(args))
			args = append(args, to)
			query += fmt.Sprintf(" AND dp.payroll_timestamp < $%d", len(args))
		}
		query += " ORDER BY dp.payroll_code ASC"

		var payrolls []models.DriverPayroll
		if err := db.Select(&payrolls, query, args...); err != nil {
			log.Printf("Error fetching driver payrolls: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch payrolls")
			return
		}

		responses := make([]models.DriverPayrollResponse, len(payrolls))
		for i := range payrolls {
			responses[i] = payrolls[i].ToDriverPayrollResponse()
		}
		utils.Success(w, responses)
	}
}

func GetDriverPayroll(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var payroll models.DriverPayroll
		err := db.Get(&payroll, driverPayrollSelect+" WHERE dp.id = $1", id)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Payroll not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.Success(w, payroll.ToDriverPayrollResponse())
	}
}

// GetDriverPayrollShipments lists the shipments assigned to a driver
// payroll (the liquidación detail table)
func GetDriverPayrollShipments(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var shipments []models.Shipment
		err := db.Select(&shipments, shipmentSelect+`
			WHERE s.driver_payroll_id = $1 AND s.deleted = FALSE
			ORDER BY s.shipment_date ASC, s.id ASC
		`, id)
		if err != nil {
			log.Printf("Error fetching driver payroll shipments: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch shipments")
			return
		}

		utils.Success(w, toShipmentResponses(shipments))
	}
}

func CreateDriverPayroll(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateDriverPayrollRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.DriverID == "" {
			utils.Error(w, http.StatusBadRequest, "Missing required field: driver_id")
			return
		}
		if req.PayrollTimestamp == 0 {
			req.PayrollTimestamp = time.Now().Unix()
		}

		var driverExists bool
		err := db.Get(&driverExists, "SELECT EXISTS(SELECT 1 FROM drivers WHERE id = $1 AND deleted = FALSE)", req.DriverID)
		if err != nil || !driverExists {
			utils.Error(w, http.StatusNotFound, "Driver not found")
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)
		id := uuid.New().String()

		_, err = db.Exec(`
			INSERT INTO driver_payrolls (id, driver_id, payroll_timestamp, modified_by, modified_at)
			VALUES ($1, $2, $3, $4, $5)
		`, id, req.DriverID, req.PayrollTimestamp, userClaims.UserID, time.Now().Unix())
		if err != nil {
			log.Printf("Error creating driver payroll: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create payroll")
			return
		}

		var payroll models.DriverPayroll
		if err := db.Get(&payroll, driverPayrollSelect+" WHERE dp.id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch created payroll")
			return
		}

		hub.PublishEntityChanged("driver_payroll", id, userClaims.UserID)
		utils.JSON(w, http.StatusCreated, payroll.ToDriverPayrollResponse())
	}
}

func UpdateDriverPayroll(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateDriverPayrollRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)

		result, err := db.Exec(`
			UPDATE driver_payrolls
			SET payroll_timestamp = $1, modified_by = $2, modified_at = $3
			WHERE id = $4 AND deleted = FALSE
		`, req.PayrollTimestamp, userClaims.UserID, time.Now().Unix(), id)
		if err != nil {
			log.Printf("Error updating driver payroll: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to update payroll")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Payroll not found")
			return
		}

		var payroll models.DriverPayroll
		if err := db.Get(&payroll, driverPayrollSelect+" WHERE dp.id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch updated payroll")
			return
		}

		hub.PublishEntityChanged("driver_payroll", id, userClaims.UserID)
		utils.Success(w, payroll.ToDriverPayrollResponse())
	}
}

// DeleteDriverPayroll soft-deletes a batch and releases its shipments
// back to unassigned (driver_payroll_id NULL)
func DeleteDriverPayroll(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		userClaims, _ := middleware.GetUserFromContext(r)
		now := time.Now().Unix()

		tx, err := db.Beginx()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to begin transaction")
			return
		}
		defer tx.Rollback()

		result, err := tx.Exec(`
			UPDATE driver_payrolls
			SET deleted = TRUE, modified_by = $1, modified_at = $2
			WHERE id = $3 AND deleted = FALSE
		`, userClaims.UserID, now, id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to delete payroll")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Payroll not found")
			return
		}

		_, err = tx.Exec(`
			UPDATE shipments
			SET driver_payroll_id = NULL, modified_by = $1, modified_at = $2
			WHERE driver_payroll_id = $3
		`, userClaims.UserID, now, id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to release payroll shipments")
			return
		}

		if err := tx.Commit(); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to commit transaction")
			return
		}

		hub.PublishEntityChanged("driver_payroll", id, userClaims.UserID)
		utils.Message(w, "Payroll deleted")
	}
}

// SetPaidStatus flips the paid flag; turning it on notifies the driver's
// registered devices. Notification failures never fail the mutation.
// PATCH /api/driver-payrolls/:id/paid-status
func SetPaidStatus(db *sqlx.DB, hub *events.Hub, fcmService *services.FCMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.PaidStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)
		now := time.Now().Unix()

		var paidAt *int64
		if req.Paid {
			paidAt = &now
		}

		result, err := db.Exec(`
			UPDATE driver_payrolls
			SET paid = $1, paid_at = $2, modified_by = $3, modified_at = $4
			WHERE id = $5 AND deleted = FALSE
		`, req.Paid, paidAt, userClaims.UserID, now, id)
		if err != nil {
			log.Printf("Error updating paid status: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to update paid status")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Payroll not found")
			return
		}

		var payroll models.DriverPayroll
		if err := db.Get(&payroll, driverPayrollSelect+" WHERE dp.id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch updated payroll")
			return
		}

		if req.Paid && fcmService != nil {
			var tokens []string
			if err := db.Select(&tokens, "SELECT token FROM driver_devices WHERE driver_id = $1", payroll.DriverID); err != nil {
				log.Printf("Error fetching driver devices: %v", err)
			} else if err := fcmService.SendPayrollPaidNotification(tokens, payroll.ID, payroll.PayrollCode); err != nil {
				log.Printf("Error sending payroll notification: %v", err)
			}
		}

		hub.PublishEntityChanged("driver_payroll", id, userClaims.UserID)
		utils.Success(w, payroll.ToDriverPayrollResponse())
	}
}

// ExportDriverPayroll streams the liquidación as an xlsx workbook
// GET /api/driver-payrolls/:id/export-excel
func ExportDriverPayroll(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var payroll models.DriverPayroll
		err := db.Get(&payroll, driverPayrollSelect+" WHERE dp.id = $1 AND dp.deleted = FALSE", id)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Payroll not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		var shipments []models.Shipment
		err = db.Select(&shipments, shipmentSelect+`
			WHERE s.driver_payroll_id = $1 AND s.deleted = FALSE
			ORDER BY s.shipment_date ASC, s.id ASC
		`, id)
		if err != nil {
			log.Printf("Error fetching shipments for export: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch shipments")
			return
		}

		f, err := reports.BuildDriverPayrollWorkbook(payroll, shipments)
		if err != nil {
			log.Printf("Error building workbook: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to build workbook")
			return
		}
		defer f.Close()

		filename := fmt.Sprintf("liquidacion_%d.xlsx", payroll.PayrollCode)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		if err := f.Write(w); err != nil {
			log.Printf("Error streaming workbook: %v", err)
		}
	}
}
