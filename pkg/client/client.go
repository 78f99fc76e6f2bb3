// Package client is the Go consumer of the cargas backend API: a thin
// HTTP client with tagged results, plus the list/selection/workflow
// building blocks the admin front end is built from.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the cargas backend. Safe for concurrent use once
// configured.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default transport (tests inject
// httptest-backed clients here)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token sent on every request
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the given base URL, e.g. "http://localhost:8080"
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken swaps the bearer token after login
func (c *Client) SetToken(token string) {
	c.token = token
}

// errorBody is the `{error}` shape every failure response carries
type errorBody struct {
	Error string `json:"error"`
}

// do runs one request and decodes the response into out (when non-nil).
// Non-2xx responses and transport failures come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) *APIError {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("encode request: %v", err)}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("build request: %v", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		msg := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Error != "" {
			msg = eb.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
		}
	}
	return nil
}

// Login exchanges credentials for a bearer token and installs it on the
// client.
func (c *Client) Login(ctx context.Context, email, password string) Result[string] {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &resp); err != nil {
		return fail[string](err)
	}
	c.token = resp.Token
	return ok(resp.Token)
}

// ── Shipments ──────────────────────────────────────────────────────────

// ListShipments fetches the active shipments of one payroll batch
func (c *Client) ListShipments(ctx context.Context, payrollID string) Result[[]Shipment] {
	q := url.Values{"shipment_payroll_id": {payrollID}}
	var shipments []Shipment
	if err := c.do(ctx, http.MethodGet, "/api/shipments", q, nil, &shipments); err != nil {
		return fail[[]Shipment](err)
	}
	return ok(shipments)
}

// GroupedShipments fetches the pre-grouped report for one payroll batch
func (c *Client) GroupedShipments(ctx context.Context, payrollID string) Result[GroupedReport] {
	q := url.Values{"shipment_payroll_id": {payrollID}}
	var report GroupedReport
	if err := c.do(ctx, http.MethodGet, "/api/shipments/grouped", q, nil, &report); err != nil {
		return fail[GroupedReport](err)
	}
	return ok(report)
}

func (c *Client) CreateShipment(ctx context.Context, req CreateShipmentRequest) Result[Shipment] {
	var s Shipment
	if err := c.do(ctx, http.MethodPost, "/api/shipments", nil, req, &s); err != nil {
		return fail[Shipment](err)
	}
	return ok(s)
}

func (c *Client) UpdateShipment(ctx context.Context, id string, req UpdateShipmentRequest) Result[Shipment] {
	var s Shipment
	if err := c.do(ctx, http.MethodPut, "/api/shipments/"+id, nil, req, &s); err != nil {
		return fail[Shipment](err)
	}
	return ok(s)
}

// DeleteShipment soft-deletes a single row
func (c *Client) DeleteShipment(ctx context.Context, id string) Result[string] {
	var resp messageResponse
	if err := c.do(ctx, http.MethodDelete, "/api/shipments/"+id, nil, nil, &resp); err != nil {
		return fail[string](err)
	}
	return ok(resp.Message)
}

// BulkDeleteShipments soft-deletes the listed shipments as one call
func (c *Client) BulkDeleteShipments(ctx context.Context, ids []string) Result[string] {
	var resp messageResponse
	if err := c.do(ctx, http.MethodDelete, "/api/shipments", nil, bulkShipmentIDs{ShipmentIDs: ids}, &resp); err != nil {
		return fail[string](err)
	}
	return ok(resp.Message)
}

// MoveShipments reassigns the listed shipments to the target payroll
// batch. All-or-nothing: the server moves every id or reports failure.
func (c *Client) MoveShipments(ctx context.Context, ids []string, targetPayrollID string) Result[string] {
	q := url.Values{"shipment_payroll_id": {targetPayrollID}}
	var resp messageResponse
	if err := c.do(ctx, http.MethodPatch, "/api/shipments/move", q, bulkShipmentIDs{ShipmentIDs: ids}, &resp); err != nil {
		return fail[string](err)
	}
	return ok(resp.Message)
}

func (c *Client) RestoreShipment(ctx context.Context, id string) Result[Shipment] {
	var s Shipment
	if err := c.do(ctx, http.MethodPost, "/api/shipments/"+id+"/restore", nil, nil, &s); err != nil {
		return fail[Shipment](err)
	}
	return ok(s)
}

// ── Shipment payrolls ──────────────────────────────────────────────────

// ListShipmentPayrolls fetches the payroll batches of one year
func (c *Client) ListShipmentPayrolls(ctx context.Context, year int) Result[[]ShipmentPayroll] {
	q := url.Values{"year": {fmt.Sprint(year)}}
	var payrolls []ShipmentPayroll
	if err := c.do(ctx, http.MethodGet, "/api/shipment-payrolls", q, nil, &payrolls); err != nil {
		return fail[[]ShipmentPayroll](err)
	}
	return ok(payrolls)
}

func (c *Client) CreateShipmentPayroll(ctx context.Context, payrollTimestamp int64) Result[ShipmentPayroll] {
	body := map[string]int64{"payroll_timestamp": payrollTimestamp}
	var p ShipmentPayroll
	if err := c.do(ctx, http.MethodPost, "/api/shipment-payrolls", nil, body, &p); err != nil {
		return fail[ShipmentPayroll](err)
	}
	return ok(p)
}

func (c *Client) SetCollectionStatus(ctx context.Context, id string, collected bool) Result[ShipmentPayroll] {
	body := map[string]bool{"collected": collected}
	var p ShipmentPayroll
	if err := c.do(ctx, http.MethodPatch, "/api/shipment-payrolls/"+id+"/collection-status", nil, body, &p); err != nil {
		return fail[ShipmentPayroll](err)
	}
	return ok(p)
}

func (c *Client) DeleteShipmentPayroll(ctx context.Context, id string) Result[string] {
	var resp messageResponse
	if err := c.do(ctx, http.MethodDelete, "/api/shipment-payrolls/"+id, nil, nil, &resp); err != nil {
		return fail[string](err)
	}
	return ok(resp.Message)
}

// ExportShipmentPayroll downloads the server-built workbook. The bytes
// are opaque to this package; callers stream them to a file.
func (c *Client) ExportShipmentPayroll(ctx context.Context, id string) Result[[]byte] {
	return c.download(ctx, "/api/shipment-payrolls/"+id+"/export-excel")
}

// ── Driver payrolls ────────────────────────────────────────────────────

func (c *Client) ListDriverPayrolls(ctx context.Context, driverID string, year int) Result[[]DriverPayroll] {
	q := url.Values{}
	if driverID != "" {
		q.Set("driver_id", driverID)
	}
	if year != 0 {
		q.Set("year", fmt.Sprint(year))
	}
	var payrolls []DriverPayroll
	if err := c.do(ctx, http.MethodGet, "/api/driver-payrolls", q, nil, &payrolls); err != nil {
		return fail[[]DriverPayroll](err)
	}
	return ok(payrolls)
}

func (c *Client) SetPaidStatus(ctx context.Context, id string, paid bool) Result[DriverPayroll] {
	body := map[string]bool{"paid": paid}
	var p DriverPayroll
	if err := c.do(ctx, http.MethodPatch, "/api/driver-payrolls/"+id+"/paid-status", nil, body, &p); err != nil {
		return fail[DriverPayroll](err)
	}
	return ok(p)
}

func (c *Client) ExportDriverPayroll(ctx context.Context, id string) Result[[]byte] {
	return c.download(ctx, "/api/driver-payrolls/"+id+"/export-excel")
}

// ── Master data ────────────────────────────────────────────────────────

func (c *Client) ListDrivers(ctx context.Context) Result[[]Driver] {
	var drivers []Driver
	if err := c.do(ctx, http.MethodGet, "/api/drivers", nil, nil, &drivers); err != nil {
		return fail[[]Driver](err)
	}
	return ok(drivers)
}

func (c *Client) ListProducts(ctx context.Context) Result[[]Product] {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, nil, &products); err != nil {
		return fail[[]Product](err)
	}
	return ok(products)
}

func (c *Client) ListRoutes(ctx context.Context) Result[[]Route] {
	var routes []Route
	if err := c.do(ctx, http.MethodGet, "/api/routes", nil, nil, &routes); err != nil {
		return fail[[]Route](err)
	}
	return ok(routes)
}

// RoutePrice fetches the default prices for an origin/destination pair
func (c *Client) RoutePrice(ctx context.Context, origin, destination string) Result[RoutePrice] {
	q := url.Values{"origin": {origin}, "destination": {destination}}
	var rp RoutePrice
	if err := c.do(ctx, http.MethodGet, "/api/routes/price", q, nil, &rp); err != nil {
		return fail[RoutePrice](err)
	}
	return ok(rp)
}

func (c *Client) download(ctx context.Context, path string) Result[[]byte] {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fail[[]byte](&APIError{Message: fmt.Sprintf("build request: %v", err)})
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail[[]byte](&APIError{Message: err.Error()})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		msg := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Error != "" {
			msg = eb.Error
		}
		return fail[[]byte](&APIError{StatusCode: resp.StatusCode, Message: msg})
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail[[]byte](&APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("read response: %v", err)})
	}
	return ok(data)
}
