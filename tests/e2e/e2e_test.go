package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"autoshop/internal/database"
	"autoshop/internal/domain"
	"autoshop/internal/middleware"
	"autoshop/internal/modules/auth"
	"autoshop/internal/modules/clients"
	"autoshop/internal/modules/dashboard"
	"autoshop/internal/modules/inventory"
	"autoshop/internal/modules/invoices"
	"autoshop/internal/modules/payments"
	"autoshop/internal/modules/vehicles"
	"autoshop/internal/modules/workorders"
	jwtsvc "autoshop/internal/pkg/jwt"
	"autoshop/internal/repository"
)

type Suite struct {
	router *gin.Engine
	db     *gorm.DB
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupSuite(t *testing.T) *Suite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	orderRepo := repository.NewWorkOrderRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	clientHandler := clients.NewHandler(clients.NewService(clientRepo))
	vehicleHandler := vehicles.NewHandler(vehicles.NewService(vehicleRepo, clientRepo))
	inventoryService := inventory.NewService(db, inventoryRepo, nil)
	inventoryHandler := inventory.NewHandler(inventoryService)
	orderHandler := workorders.NewHandler(workorders.NewService(db, orderRepo, clientRepo, vehicleRepo, invoiceRepo, nil))
	invoiceService := invoices.NewService(db, invoiceRepo, orderRepo, 0.20, 14)
	invoiceHandler := invoices.NewHandler(invoiceService)
	paymentHandler := payments.NewHandler(payments.NewService(db, paymentRepo))
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(db), inventoryService, invoiceService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	authHandler.RegisterRoutes(v1)

	protected := v1.Group("/")
	protected.Use(middleware.Auth(j))
	{
		clientHandler.RegisterRoutes(protected)
		vehicleHandler.RegisterRoutes(protected)
		orderHandler.RegisterRoutes(protected)
		inventoryHandler.RegisterRoutes(protected)
		invoiceHandler.RegisterRoutes(protected)
		paymentHandler.RegisterRoutes(protected)
		dashboardHandler.RegisterRoutes(protected)

		managers := protected.Group("/")
		managers.Use(middleware.RequireRole(domain.RoleAdmin, domain.RoleManager))
		{
			inventoryHandler.RegisterAdminRoutes(managers)
		}

		admins := protected.Group("/")
		admins.Use(middleware.AdminOnly())
		{
			authHandler.RegisterAdminRoutes(admins)
		}
	}

	return &Suite{router: r, db: db}
}

func (s *Suite) request(t *testing.T, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, *TestResponse) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp TestResponse
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "unparseable body: %s", w.Body.String())
	}
	return w, &resp
}

func (s *Suite) registerUser(t *testing.T, email string, role domain.Role) string {
	w, resp := s.request(t, "POST", "/api/v1/auth/register", map[string]interface{}{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
		"role":     role,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func idOf(t *testing.T, resp *TestResponse) int64 {
	raw, ok := resp.Data["id"].(float64)
	require.True(t, ok, "no id in %v", resp.Data)
	return int64(raw)
}

func TestFullRepairFlow(t *testing.T) {
	s := setupSuite(t)
	admin := s.registerUser(t, "admin@autoshop.local", domain.RoleAdmin)

	// client and vehicle
	w, resp := s.request(t, "POST", "/api/v1/clients", map[string]interface{}{
		"name":  "John Reilly",
		"phone": "+1 555 010 1000",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	clientID := idOf(t, resp)

	w, resp = s.request(t, "POST", "/api/v1/vehicles", map[string]interface{}{
		"client_id": clientID,
		"brand":     "Toyota",
		"model":     "Corolla",
		"year":      2018,
		"plate":     "ABC-100",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	vehicleID := idOf(t, resp)

	// stock a part
	w, resp = s.request(t, "POST", "/api/v1/inventory", map[string]interface{}{
		"sku":        "BRK-PAD-F01",
		"name":       "Front Brake Pads",
		"quantity":   10,
		"min_stock":  2,
		"unit_price": 45.0,
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	itemID := idOf(t, resp)

	// open a work order
	w, resp = s.request(t, "POST", "/api/v1/work-orders", map[string]interface{}{
		"client_id":   clientID,
		"vehicle_id":  vehicleID,
		"description": "brake job",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := idOf(t, resp)
	assert.Equal(t, "draft", resp.Data["status"])
	assert.Contains(t, resp.Data["order_number"], fmt.Sprintf("WO-%d-", time.Now().Year()))

	// labor and parts
	w, _ = s.request(t, "POST", fmt.Sprintf("/api/v1/work-orders/%d/services", orderID), map[string]interface{}{
		"name":  "Brake pad replacement",
		"hours": 2,
		"rate":  60,
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, resp = s.request(t, "POST", fmt.Sprintf("/api/v1/work-orders/%d/parts", orderID), map[string]interface{}{
		"inventory_item_id": itemID,
		"quantity":          2,
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, false, resp.Data["low_stock_warning"])

	// totals rolled up
	w, resp = s.request(t, "GET", fmt.Sprintf("/api/v1/work-orders/%d", orderID), nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 120.0, resp.Data["labor_cost"])
	assert.Equal(t, 90.0, resp.Data["parts_cost"])
	assert.Equal(t, 210.0, resp.Data["total_cost"])

	// move through the lifecycle
	for _, status := range []string{"pending", "in_progress", "ready_for_pickup"} {
		w, _ = s.request(t, "PUT", fmt.Sprintf("/api/v1/work-orders/%d/status", orderID), map[string]interface{}{
			"status": status,
		}, admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	// completion without an invoice is rejected
	w, resp = s.request(t, "PUT", fmt.Sprintf("/api/v1/work-orders/%d/status", orderID), map[string]interface{}{
		"status": "completed",
	}, admin)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVOICE_REQUIRED", resp.Error.Code)

	// invoice
	w, resp = s.request(t, "POST", fmt.Sprintf("/api/v1/work-orders/%d/invoice", orderID), nil, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	invoiceID := idOf(t, resp)
	assert.Equal(t, 210.0, resp.Data["subtotal"])
	assert.Equal(t, 42.0, resp.Data["tax_amount"])
	assert.Equal(t, 252.0, resp.Data["total"])

	// pay in full
	w, _ = s.request(t, "POST", "/api/v1/payments", map[string]interface{}{
		"invoice_id": invoiceID,
		"amount":     252.0,
		"method":     "card",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, resp = s.request(t, "GET", fmt.Sprintf("/api/v1/invoices/%d", invoiceID), nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", resp.Data["status"])

	// complete: reservations become deductions
	w, _ = s.request(t, "PUT", fmt.Sprintf("/api/v1/work-orders/%d/status", orderID), map[string]interface{}{
		"status": "completed",
	}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, resp = s.request(t, "GET", fmt.Sprintf("/api/v1/inventory/%d", itemID), nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 8.0, resp.Data["quantity"])
	assert.Equal(t, 0.0, resp.Data["reserved"])

	// dashboard reflects the paid invoice
	w, resp = s.request(t, "GET", "/api/v1/dashboard/stats?period=month", nil, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 252.0, resp.Data["revenue"])
	assert.Equal(t, 0.0, resp.Data["revenue_growth"])
}

func TestInsufficientInventoryConflict(t *testing.T) {
	s := setupSuite(t)
	admin := s.registerUser(t, "admin@autoshop.local", domain.RoleAdmin)

	w, resp := s.request(t, "POST", "/api/v1/clients", map[string]interface{}{"name": "Amanda Cole"}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	clientID := idOf(t, resp)

	w, resp = s.request(t, "POST", "/api/v1/vehicles", map[string]interface{}{
		"client_id": clientID, "brand": "Honda", "model": "Civic", "plate": "ABC-200",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	vehicleID := idOf(t, resp)

	w, resp = s.request(t, "POST", "/api/v1/inventory", map[string]interface{}{
		"sku": "BAT-12V-60A", "name": "Battery", "quantity": 3, "unit_price": 115.0,
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	itemID := idOf(t, resp)

	w, resp = s.request(t, "POST", "/api/v1/work-orders", map[string]interface{}{
		"client_id": clientID, "vehicle_id": vehicleID,
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := idOf(t, resp)

	w, resp = s.request(t, "POST", fmt.Sprintf("/api/v1/work-orders/%d/parts", orderID), map[string]interface{}{
		"inventory_item_id": itemID,
		"quantity":          5,
	}, admin)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INSUFFICIENT_INVENTORY", resp.Error.Code)

	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 5.0, details["requested"])
	assert.Equal(t, 3.0, details["available"])

	// no line was attached
	w, resp = s.request(t, "GET", fmt.Sprintf("/api/v1/work-orders/%d", orderID), nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, resp.Data["total_cost"])
}

func TestRoleGates(t *testing.T) {
	s := setupSuite(t)
	admin := s.registerUser(t, "admin@autoshop.local", domain.RoleAdmin)
	tech := s.registerUser(t, "tech@autoshop.local", domain.RoleTechnician)

	w, resp := s.request(t, "POST", "/api/v1/inventory", map[string]interface{}{
		"sku": "OIL-5W30-1L", "name": "Engine Oil", "quantity": 5,
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	itemID := idOf(t, resp)

	// technicians cannot restock or manage users
	w, _ = s.request(t, "POST", fmt.Sprintf("/api/v1/inventory/%d/restock", itemID), map[string]interface{}{"quantity": 10}, tech)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.request(t, "GET", "/api/v1/users", nil, tech)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// admin can do both
	w, _ = s.request(t, "POST", fmt.Sprintf("/api/v1/inventory/%d/restock", itemID), map[string]interface{}{"quantity": 10}, admin)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// no token at all
	w, _ = s.request(t, "GET", "/api/v1/clients", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeactivatedUserCannotLogin(t *testing.T) {
	s := setupSuite(t)
	admin := s.registerUser(t, "admin@autoshop.local", domain.RoleAdmin)
	s.registerUser(t, "sara@autoshop.local", domain.RoleReceptionist)

	var user domain.User
	require.NoError(t, s.db.Where("email = ?", "sara@autoshop.local").First(&user).Error)

	w, _ := s.request(t, "PUT", fmt.Sprintf("/api/v1/users/%d/active", user.ID), map[string]interface{}{"active": false}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, resp := s.request(t, "POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    "sara@autoshop.local",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, resp.Error)
}
