package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupedShipmentsDecodesReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shipments/grouped", r.URL.Path)
		assert.Equal(t, "p1", r.URL.Query().Get("shipment_payroll_id"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"groups": [{
				"product_name": "Soy", "origin": "A", "destination": "B",
				"shipments": [
					{"id": "s1", "destination_weight": "100", "price": "2.5"},
					{"id": "s2", "destination_weight": "50", "price": "2.5"}
				],
				"subtotal_origin_weight": "0",
				"subtotal_destination_weight": "150",
				"subtotal_money": "375"
			}],
			"totals": {"origin_weight": "0", "destination_weight": "150", "money": "375"}
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))
	res := c.GroupedShipments(context.Background(), "p1")

	require.True(t, res.Ok)
	require.Len(t, res.Value.Groups, 1)
	assert.Equal(t, "Soy", res.Value.Groups[0].ProductName)
	assert.Equal(t, "150", res.Value.Groups[0].SubtotalDestinationWeight.String())
	assert.Equal(t, "375", res.Value.Groups[0].SubtotalMoney.String())
	assert.Equal(t, 2, res.Value.RowCount())
	assert.Equal(t, []string{"s1", "s2"}, res.Value.ShipmentIDs())
}

func TestErrorResponseBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Target payroll not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res := c.MoveShipments(context.Background(), []string{"a"}, "missing")

	require.False(t, res.Ok)
	require.NotNil(t, res.Err)
	assert.Equal(t, http.StatusNotFound, res.Err.StatusCode)
	assert.Equal(t, "Target payroll not found", res.Err.Message)
}

func TestTransportFailureBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL)
	res := c.ListShipments(context.Background(), "p1")

	require.False(t, res.Ok)
	require.NotNil(t, res.Err)
	assert.Equal(t, 0, res.Err.StatusCode)
}

func TestBulkDeleteSendsIdentifierList(t *testing.T) {
	var got bulkShipmentIDs
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/shipments", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "2 shipments deleted"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res := c.BulkDeleteShipments(context.Background(), []string{"a", "b"})

	require.True(t, res.Ok)
	assert.Equal(t, "2 shipments deleted", res.Value)
	assert.Equal(t, []string{"a", "b"}, got.ShipmentIDs)
}

func TestMoveSendsTargetAsQueryParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/shipments/move", r.URL.Path)
		assert.Equal(t, "p2", r.URL.Query().Get("shipment_payroll_id"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "1 shipments moved"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res := c.MoveShipments(context.Background(), []string{"a"}, "p2")

	require.True(t, res.Ok)
	assert.Equal(t, "1 shipments moved", res.Value)
}

func TestLoginInstallsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			assert.Empty(t, r.Header.Get("Authorization"))
			w.Write([]byte(`{"token": "jwt-123"}`))
		case "/api/drivers":
			assert.Equal(t, "Bearer jwt-123", r.Header.Get("Authorization"))
			w.Write([]byte(`[]`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	res := c.Login(context.Background(), "admin@cargas.local", "admin123")
	require.True(t, res.Ok)
	assert.Equal(t, "jwt-123", res.Value)

	drivers := c.ListDrivers(context.Background())
	assert.True(t, drivers.Ok)
}
