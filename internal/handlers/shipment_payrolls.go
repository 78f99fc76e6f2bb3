package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"cargas-backend/internal/database"
	"cargas-backend/internal/events"
	"cargas-backend/internal/middleware"
	"cargas-backend/internal/models"
	"cargas-backend/internal/reports"
	"cargas-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GetShipmentPayrolls lists payroll batches, optionally scoped to a year
// GET /api/shipment-payrolls?year=:y
func GetShipmentPayrolls(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payrolls []models.ShipmentPayroll
		var err error

		if yearParam := r.URL.Query().Get("year"); yearParam != "" {
			year, convErr := strconv.Atoi(yearParam)
			if convErr != nil {
				utils.Error(w, http.StatusBadRequest, "Invalid year")
				return
			}
			from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
			to := time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
			err = db.Select(&payrolls, `
				SELECT * FROM shipment_payrolls
				WHERE deleted = FALSE AND payroll_timestamp >= $1 AND payroll_timestamp < $2
				ORDER BY payroll_code ASC
			`, from, to)
		} else {
			err = db.Select(&payrolls, `
				SELECT * FROM shipment_payrolls
				WHERE deleted = FALSE
				ORDER BY payroll_code ASC
			`)
		}

		if err != nil {
			log.Printf("Error fetching shipment payrolls: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch payrolls")
			return
		}

		responses := make([]models.ShipmentPayrollResponse, len(payrolls))
		for i := range payrolls {
			responses[i] = payrolls[i].ToShipmentPayrollResponse()
		}
		utils.Success(w, responses)
	}
}

func GetShipmentPayroll(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var payroll models.ShipmentPayroll
		err := db.Get(&payroll, "SELECT * FROM shipment_payrolls WHERE id = $1", id)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Payroll not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.Success(w, payroll.ToShipmentPayrollResponse())
	}
}

func CreateShipmentPayroll(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateShipmentPayrollRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.PayrollTimestamp == 0 {
			req.PayrollTimestamp = time.Now().Unix()
		}

		userClaims, _ := middleware.GetUserFromContext(r)
		id := uuid.New().String()

		_, err := db.Exec(`
			INSERT INTO shipment_payrolls (id, payroll_timestamp, modified_by, modified_at)
			VALUES ($1, $2, $3, $4)
		`, id, req.PayrollTimestamp, userClaims.UserID, time.Now().Unix())
		if err != nil {
			log.Printf("Error creating shipment payroll: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create payroll")
			return
		}

		var payroll models.ShipmentPayroll
		if err := db.Get(&payroll, "SELECT * FROM shipment_payrolls WHERE id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch created payroll")
			return
		}

		hub.PublishEntityChanged("shipment_payroll", id, userClaims.UserID)
		utils.JSON(w, http.StatusCreated, payroll.ToShipmentPayrollResponse())
	}
}

func UpdateShipmentPayroll(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateShipmentPayrollRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)

		result, err := db.Exec(`
			UPDATE shipment_payrolls
			SET payroll_timestamp = $1, modified_by = $2, modified_at = $3
			WHERE id = $4 AND deleted = FALSE
		`, req.PayrollTimestamp, userClaims.UserID, time.Now().Unix(), id)
		if err != nil {
			log.Printf("Error updating shipment payroll: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to update payroll")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Payroll not found")
			return
		}

		var payroll models.ShipmentPayroll
		if err := db.Get(&payroll, "SELECT * FROM shipment_payrolls WHERE id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch updated payroll")
			return
		}

		hub.PublishEntityChanged("shipment_payroll", id, userClaims.UserID)
		utils.Success(w, payroll.ToShipmentPayrollResponse())
	}
}

// DeleteShipmentPayroll soft-deletes an empty batch. A payroll that still
// owns active shipments is refused; move or delete them first.
func DeleteShipmentPayroll(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		count, err := database.CountActivePayrollShipments(db, id)
		if err != nil {
			log.Printf("Error counting payroll shipments: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to check payroll")
			return
		}
		if count > 0 {
			utils.Error(w, http.StatusConflict, fmt.Sprintf("Payroll still has %d active shipments", count))
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)

		result, err := db.Exec(`
			UPDATE shipment_payrolls
			SET deleted = TRUE, modified_by = $1, modified_at = $2
			WHERE id = $3 AND deleted = FALSE
		`, userClaims.UserID, time.Now().Unix(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to delete payroll")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Payroll not found")
			return
		}

		hub.PublishEntityChanged("shipment_payroll", id, userClaims.UserID)
		utils.Message(w, "Payroll deleted")
	}
}

// SetCollectionStatus flips the collected flag, stamping the collection
// time server-side when it turns on
// PATCH /api/shipment-payrolls/:id/collection-status
func SetCollectionStatus(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.CollectionStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)
		now := time.Now().Unix()

		var collectedAt *int64
		if req.Collected {
			collectedAt = &now
		}

		result, err := db.Exec(`
			UPDATE shipment_payrolls
			SET collected = $1, collected_at = $2, modified_by = $3, modified_at = $4
			WHERE id = $5 AND deleted = FALSE
		`, req.Collected, collectedAt, userClaims.UserID, now, id)
		if err != nil {
			log.Printf("Error updating collection status: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to update collection status")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Payroll not found")
			return
		}

		var payroll models.ShipmentPayroll
		if err := db.Get(&payroll, "SELECT * FROM shipment_payrolls WHERE id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch updated payroll")
			return
		}

		hub.PublishEntityChanged("shipment_payroll", id, userClaims.UserID)
		utils.Success(w, payroll.ToShipmentPayrollResponse())
	}
}

// ExportShipmentPayroll streams the payroll's grouped report as an xlsx
// workbook. The spreadsheet is always produced server-side.
// GET /api/shipment-payrolls/:id/export-excel
func ExportShipmentPayroll(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var payroll models.ShipmentPayroll
		err := db.Get(&payroll, "SELECT * FROM shipment_payrolls WHERE id = $1 AND deleted = FALSE", id)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Payroll not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		shipments, err := fetchPayrollShipments(db, id)
		if err != nil {
			log.Printf("Error fetching shipments for export: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch shipments")
			return
		}

		groups := reports.GroupShipments(shipments)
		f, err := reports.BuildShipmentPayrollWorkbook(payroll, groups)
		if err != nil {
			log.Printf("Error building workbook: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to build workbook")
			return
		}
		defer f.Close()

		filename := fmt.Sprintf("planilla_%d.xlsx", payroll.PayrollCode)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		if err := f.Write(w); err != nil {
			log.Printf("Error streaming workbook: %v", err)
		}
	}
}
