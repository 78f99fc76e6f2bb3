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

func GetRoutes(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted := r.URL.Query().Get("deleted") == "true"

		var routes []models.Route
		err := db.Select(&routes, `
			SELECT * FROM routes
			WHERE deleted = $1
			ORDER BY origin ASC, destination ASC
		`, deleted)
		if err != nil {
			log.Printf("Error fetching routes: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch routes")
			return
		}

		if routes == nil {
			routes = []models.Route{}
		}
		utils.Success(w, routes)
	}
}

func GetRoute(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var route models.Route
		err := db.Get(&route, "SELECT * FROM routes WHERE id = $1", id)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Route not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.Success(w, route)
	}
}

// GetRoutePrice resolves the default price pair for an (origin,
// destination) choice on the shipment form
func GetRoutePrice(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.URL.Query().Get("origin")
		destination := r.URL.Query().Get("destination")
		if origin == "" || destination == "" {
			utils.Error(w, http.StatusBadRequest, "Missing required query params: origin, destination")
			return
		}

		var route models.Route
		err := db.Get(&route, `
			SELECT * FROM routes
			WHERE origin = $1 AND destination = $2 AND deleted = FALSE
		`, origin, destination)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Route not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.Success(w, models.RoutePriceResponse{
			RouteID:      route.ID,
			Price:        route.Price,
			PayrollPrice: route.PayrollPrice,
		})
	}
}

func CreateRoute(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateRouteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Origin == "" || req.Destination == "" {
			utils.Error(w, http.StatusBadRequest, "Missing required fields: origin, destination")
			return
		}
		if req.Price == "" {
			req.Price = "0"
		}
		if req.PayrollPrice == "" {
			req.PayrollPrice = "0"
		}

		userClaims, _ := middleware.GetUserFromContext(r)
		id := uuid.New().String()

		_, err := db.Exec(`
			INSERT INTO routes (id, origin, destination, price, payroll_price, modified_by, modified_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, id, req.Origin, req.Destination, req.Price, req.PayrollPrice,
			userClaims.UserID, time.Now().Unix())
		if err != nil {
			log.Printf("Error creating route: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create route")
			return
		}

		var route models.Route
		if err := db.Get(&route, "SELECT * FROM routes WHERE id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch created route")
			return
		}

		hub.PublishEntityChanged("route", id, userClaims.UserID)
		utils.JSON(w, http.StatusCreated, route)
	}
}

func UpdateRoute(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateRouteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)

		result, err := db.Exec(`
			UPDATE routes
			SET origin = $1, destination = $2, price = $3, payroll_price = $4,
			    modified_by = $5, modified_at = $6
			WHERE id = $7 AND deleted = FALSE
		`, req.Origin, req.Destination, req.Price, req.PayrollPrice,
			userClaims.UserID, time.Now().Unix(), id)
		if err != nil {
			log.Printf("Error updating route: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to update route")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Route not found")
			return
		}

		var route models.Route
		if err := db.Get(&route, "SELECT * FROM routes WHERE id = $1", id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch updated route")
			return
		}

		hub.PublishEntityChanged("route", id, userClaims.UserID)
		utils.Success(w, route)
	}
}

func DeleteRoute(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		userClaims, _ := middleware.GetUserFromContext(r)

		result, err := db.Exec(`
			UPDATE routes
			SET deleted = TRUE, modified_by = $1, modified_at = $2
			WHERE id = $3 AND deleted = FALSE
		`, userClaims.UserID, time.Now().Unix(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to delete route")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Route not found")
			return
		}

		hub.PublishEntityChanged("route", id, userClaims.UserID)
		utils.Message(w, "Route deleted")
	}
}

func RestoreRoute(db *sqlx.DB, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		userClaims, _ := middleware.GetUserFromContext(r)

		result, err := db.Exec(`
			UPDATE routes
			SET deleted = FALSE, modified_by = $1, modified_at = $2
			WHERE id = $3 AND deleted = TRUE
		`, userClaims.UserID, time.Now().Unix(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to restore route")
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			utils.Error(w, http.StatusNotFound, "Route not found")
			return
		}

		hub.PublishEntityChanged("route", id, userClaims.UserID)
		utils.Message(w, "Route restored")
	}
}
