package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"cargas-backend/internal/database"
	"cargas-backend/internal/events"
	"cargas-backend/internal/helpers"
	"cargas-backend/internal/middleware"
	"cargas-backend/internal/models"
	"cargas-backend/internal/reports"
	"cargas-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// shipmentSelect joins master data so each row carries the driver,
// product and route display fields the admin tables need
const shipmentSelect = `
	SELECT s.id, s.shipment_date, s.driver_id,
	       TRIM(d.name || ' ' || d.surname) AS driver_name,
	       d.truck_plate, d.trailer_plate,
	       s.product_id, p.name AS product_name,
	       s.route_id, r.origin, r.destination,
	       s.price, s.payroll_price, s.dispatch_code, s.receipt_code,
	       s.origin_weight, s.destination_weight,
	       s.shipment_payroll_id, s.driver_payroll_id,
	       s.deleted, s.modified_by, s.modified_at
	FROM shipments s
	JOIN drivers d ON d.id = s.driver_id
	JOIN products p ON p.id = s.product_id
	JOIN routes r ON r.id = s.route_id`

func fetchPayrollShipments(db *sqlx.DB, payrollID string) ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := db.Select(&shipments, shipmentSelect+`
		WHERE s.shipment_payroll_id = $1 AND s.deleted = FALSE
		ORDER BY s.shipment_date ASC, s.modified_at ASC, s.id ASC
	`, payrollID)
	return shipments, err
}

func toShipmentResponses(shipments []models.Shipment) []models.ShipmentResponse {
	responses := make([]models.ShipmentResponse, len(shipments))
	for i := range shipments {
		responses[i] = shipments[i].ToShipmentResponse()
	}
	return responses
}

// GetShipments lists a payroll's active shipments
// GET /api/shipments?shipment_payroll_id=:id
func GetShipments(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payrollID := r.URL.Query().Get("shipment_payroll_id")
		if payrollID == "" {
			utils.Error(w, http.StatusBadRequest, "Missing required query param: shipment_payroll_id")
			return
		}

		shipments, err := fetchPayrollShipments(db, payrollID)
		if err != nil {
			log.Printf("Error fetching shipments: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch shipments")
			return
		}

		utils.Success(w, toShipmentResponses(shipments))
	}
}

// GroupedShipmentsResponse is the pre-grouped report payload
type GroupedShipmentsResponse struct {
	Groups []reports.GroupedShipments `json:"groups"`
	Totals reports.Totals             `json:"totals"`
}

// GetGroupedShipments serves the aggregation report: groups keyed by
// (product, origin, destination) with subtotals and grand totals
// GET /api/shipments/grouped?shipment_payroll_id=:id
func GetGroupedShipments(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payrollID := r.URL.Query().Get("shipment_payroll_id")
		if payrollID == "" {
			utils.Error(w, http.StatusBadRequest, "Missing required query param: shipment_payroll_id")
			return
		}

		shipments, err := fetchPayrollShipments(db, payrollID)
		if err != nil {
			log.Printf("Error fetching shipments for grouping: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch shipments")
			return
		}

		groups := reports.GroupShipments(shipments)
		utils.Success(w, GroupedShipmentsResponse{
			Groups: groups,
			Totals: reports.GrandTotals(groups),
		})
	}
}

// GetShipmentHistory returns a shipment's audit trail, newest first
func GetShipmentHistory(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		history, err := helpers.GetShipmentHistory(db, id)
		if err != nil {
			log.Printf("Error fetching shipment history: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch history")
			return
		}

		responses := make([]models.ShipmentHistoryResponse, len(history))
		for i := range history {
			responses[i] = history[i].ToShipmentHistoryResponse()
		}
		utils.Success(w, responses)
	}
}

func CreateShipment(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateShipmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.DriverID == "" || req.ProductID == "" || req.RouteID == "" || req.ShipmentPayrollID == "" {
			utils.Error(w, http.StatusBadRequest, "Missing required fields: driver_id, product_id, route_id, shipment_payroll_id")
			return
		}

		var payrollExists bool
		err := db.Get(&payrollExists, `
			SELECT EXISTS(SELECT 1 FROM shipment_payrolls WHERE id = $1 AND deleted = FALSE)
		`, req.ShipmentPayrollID)
		if err != nil || !payrollExists {
			utils.Error(w, http.StatusNotFound, "Shipment payroll not found")
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)
		id := uuid.New().String()

		_, err = db.Exec(`
			INSERT INTO shipments (
				id, shipment_date, driver_id, product_id, route_id,
				price, payroll_price, dispatch_code, receipt_code,
				origin_weight, destination_weight,
				shipment_payroll_id, driver_payroll_id,
				modified_by, modified_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`, id, req.ShipmentDate, req.DriverID, req.ProductID, req.RouteID,
			zeroIfEmpty(req.Price), zeroIfEmpty(req.PayrollPrice),
			req.DispatchCode, req.ReceiptCode,
			zeroIfEmpty(req.OriginWeight), zeroIfEmpty(req.DestinationWeight),
			req.ShipmentPayrollID, req.DriverPayrollID,
			userClaims.UserID, time.Now().Unix())
		if err != nil {
			log.Printf("Error creating shipment: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create shipment")
			return
		}

		helpers.LogShipmentAction(db, id, "created", userClaims.UserID, userClaims.Email)

		var shipment models.Shipment
		if err := db.Get(&shipment, shipmentSelect+" WHERE s.id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch created shipment")
			return
		}

		hub.PublishEntityChanged("shipment", id, userClaims.UserID)
		utils.JSON(w, http.StatusCreated, shipment.ToShipmentResponse())
	}
}

func UpdateShipment(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateShipmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)

		result, err := db.Exec(`
			UPDATE shipments
			SET shipment_date = $1, driver_id = $2, product_id = $3, route_id = $4,
			    price = $5, payroll_price = $6, dispatch_code = $7, receipt_code = $8,
			    origin_weight = $9, destination_weight = $10, driver_payroll_id = $11,
			    modified_by = $12, modified_at = $13
			WHERE id = $14 AND deleted = FALSE
		`, req.ShipmentDate, req.DriverID, req.ProductID, req.RouteID,
			zeroIfEmpty(req.Price), zeroIfEmpty(req.PayrollPrice),
			req.DispatchCode, req.ReceiptCode,
			zeroIfEmpty(req.OriginWeight), zeroIfEmpty(req.DestinationWeight),
			req.DriverPayrollID, userClaims.UserID, time.Now().Unix(), id)
		if err != nil {
			log.Printf("Error updating shipment: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to update shipment")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Shipment not found")
			return
		}

		helpers.LogShipmentAction(db, id, "updated", userClaims.UserID, userClaims.Email)

		var shipment models.Shipment
		if err := db.Get(&shipment, shipmentSelect+" WHERE s.id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch updated shipment")
			return
		}

		hub.PublishEntityChanged("shipment", id, userClaims.UserID)
		utils.Success(w, shipment.ToShipmentResponse())
	}
}

// DeleteShipment soft-deletes a single row (the per-row table action)
func DeleteShipment(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		userClaims, _ := middleware.GetUserFromContext(r)

		rows, err := database.SoftDeleteShipments(db, []string{id}, userClaims.UserID)
		if err != nil {
			log.Printf("Error deleting shipment: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to delete shipment")
			return
		}
		if rows == 0 {
			utils.Error(w, http.StatusNotFound, "Shipment not found")
			return
		}

		helpers.LogShipmentAction(db, id, "soft_deleted", userClaims.UserID, userClaims.Email)
		hub.PublishEntityChanged("shipment", id, userClaims.UserID)
		utils.Message(w, "Shipment deleted")
	}
}

// BulkDeleteShipments soft-deletes an identifier list as one operation
// DELETE /api/shipments (body: {shipment_ids})
func BulkDeleteShipments(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.BulkShipmentIDsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		// Empty selection never reaches the database
		if len(req.ShipmentIDs) == 0 {
			utils.Error(w, http.StatusBadRequest, "No shipments selected")
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)

		rows, err := database.SoftDeleteShipments(db, req.ShipmentIDs, userClaims.UserID)
		if err != nil {
			log.Printf("Error bulk-deleting shipments: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to delete shipments")
			return
		}

		for _, id := range req.ShipmentIDs {
			helpers.LogShipmentAction(db, id, "soft_deleted", userClaims.UserID, userClaims.Email)
		}

		hub.PublishEntityChanged("shipment", "", userClaims.UserID)
		utils.Message(w, fmt.Sprintf("%d shipments deleted", rows))
	}
}

// MoveShipments reassigns the listed shipments to another payroll batch
// PATCH /api/shipments/move?shipment_payroll_id=:id (body: {shipment_ids})
func MoveShipments(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetPayrollID := r.URL.Query().Get("shipment_payroll_id")
		if targetPayrollID == "" {
			utils.Error(w, http.StatusBadRequest, "No payroll selected")
			return
		}

		var req models.BulkShipmentIDsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if len(req.ShipmentIDs) == 0 {
			utils.Error(w, http.StatusBadRequest, "No shipments selected")
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)

		moved, err := database.MoveShipments(db, req.ShipmentIDs, targetPayrollID, userClaims.UserID)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Target payroll not found")
			return
		}
		if err != nil {
			log.Printf("Error moving shipments: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to move shipments")
			return
		}

		for _, m := range moved {
			helpers.LogShipmentMoved(db, m.ID, userClaims.UserID, userClaims.Email, m.PreviousPayrollID, targetPayrollID)
		}

		hub.PublishEntityChanged("shipment", "", userClaims.UserID)
		utils.Message(w, fmt.Sprintf("%d shipments moved", len(moved)))
	}
}

// RestoreShipment clears the soft-delete flag of an archived row
func RestoreShipment(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		userClaims, _ := middleware.GetUserFromContext(r)

		result, err := db.Exec(`
			UPDATE shipments
			SET deleted = FALSE, modified_by = $1, modified_at = $2
			WHERE id = $3 AND deleted = TRUE
		`, userClaims.UserID, time.Now().Unix(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to restore shipment")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Shipment not found")
			return
		}

		helpers.LogShipmentAction(db, id, "restored", userClaims.UserID, userClaims.Email)
		hub.PublishEntityChanged("shipment", id, userClaims.UserID)
		utils.Message(w, "Shipment restored")
	}
}

// zeroIfEmpty keeps NUMERIC inserts valid when the form leaves a figure blank
func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
