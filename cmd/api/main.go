package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"autoshop/internal/config"
	"autoshop/internal/database"
	"autoshop/internal/domain"
	"autoshop/internal/middleware"
	"autoshop/internal/modules/auth"
	"autoshop/internal/modules/clients"
	"autoshop/internal/modules/dashboard"
	"autoshop/internal/modules/events"
	"autoshop/internal/modules/inventory"
	"autoshop/internal/modules/invoices"
	"autoshop/internal/modules/payments"
	"autoshop/internal/modules/reports"
	"autoshop/internal/modules/vehicles"
	"autoshop/internal/modules/workorders"
	jwtsvc "autoshop/internal/pkg/jwt"
	"autoshop/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	orderRepo := repository.NewWorkOrderRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	hub := events.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	clientService := clients.NewService(clientRepo)
	clientHandler := clients.NewHandler(clientService)

	vehicleService := vehicles.NewService(vehicleRepo, clientRepo)
	vehicleHandler := vehicles.NewHandler(vehicleService)

	inventoryService := inventory.NewService(db, inventoryRepo, hub)
	inventoryHandler := inventory.NewHandler(inventoryService)

	orderService := workorders.NewService(db, orderRepo, clientRepo, vehicleRepo, invoiceRepo, hub)
	orderHandler := workorders.NewHandler(orderService)

	invoiceService := invoices.NewService(db, invoiceRepo, orderRepo, cfg.TaxRate, cfg.InvoiceNetDue)
	invoiceHandler := invoices.NewHandler(invoiceService)

	paymentService := payments.NewService(db, paymentRepo)
	paymentHandler := payments.NewHandler(paymentService)

	dashboardService := dashboard.NewService(db)
	dashboardHandler := dashboard.NewHandler(dashboardService, inventoryService, invoiceService)

	reportHandler := reports.NewHandler(db)
	wsHandler := events.NewWSHandler(hub, j)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public; the websocket route authenticates via ?token= because
		// browsers cannot set headers on upgrade requests
		authHandler.RegisterRoutes(v1)
		wsHandler.RegisterRoutes(v1)

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
				reportHandler.RegisterRoutes(managers)
			}

			admins := protected.Group("/")
			admins.Use(middleware.AdminOnly())
			{
				authHandler.RegisterAdminRoutes(admins)
			}
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
