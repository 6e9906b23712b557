package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"autoshop/internal/database"
	"autoshop/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	rand.Seed(time.Now().UnixNano())

	db, err := database.Connect("autoshop.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM invoices")
	db.Exec("DELETE FROM inventory_transactions")
	db.Exec("DELETE FROM work_order_parts")
	db.Exec("DELETE FROM work_order_services")
	db.Exec("DELETE FROM work_orders")
	db.Exec("DELETE FROM inventory_items")
	db.Exec("DELETE FROM vehicles")
	db.Exec("DELETE FROM clients")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	staff := []struct {
		email string
		name  string
		role  domain.Role
	}{
		{"admin@autoshop.local", "Shop Admin", domain.RoleAdmin},
		{"manager@autoshop.local", "Service Manager", domain.RoleManager},
		{"mike@autoshop.local", "Mike the Mechanic", domain.RoleTechnician},
		{"sara@autoshop.local", "Sara Frontdesk", domain.RoleReceptionist},
	}
	for _, s := range staff {
		hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		db.Create(&domain.User{
			Email:        s.email,
			PasswordHash: string(hash),
			Name:         s.name,
			Role:         s.role,
			Active:       true,
		})
	}
	log.Println("Admin created: admin@autoshop.local / password123")

	// ================== CLIENTS & VEHICLES ==================
	log.Println("Creating clients and vehicles...")

	clientNames := []string{"John Reilly", "Amanda Cole", "Victor Osei", "Beth Tanaka", "Carlos Mendez"}
	clients := make([]domain.Client, 0, len(clientNames))
	for i, name := range clientNames {
		c := domain.Client{
			Name:    name,
			Email:   fmt.Sprintf("client%d@example.com", i+1),
			Phone:   fmt.Sprintf("+1 555 010 %04d", 1000+i),
			Address: fmt.Sprintf("%d Elm Street", 100+i*7),
		}
		db.Create(&c)
		clients = append(clients, c)
	}

	brands := [][2]string{{"Toyota", "Corolla"}, {"Honda", "Civic"}, {"Ford", "F-150"}, {"BMW", "320i"}, {"Subaru", "Outback"}, {"Volkswagen", "Golf"}, {"Mazda", "CX-5"}}
	vehicles := make([]domain.Vehicle, 0, len(brands))
	for i, b := range brands {
		owner := clients[i%len(clients)]
		v := domain.Vehicle{
			ClientID: owner.ID,
			Brand:    b[0],
			Model:    b[1],
			Year:     2012 + rand.Intn(12),
			Plate:    fmt.Sprintf("ABC-%03d", 100+i),
			VIN:      fmt.Sprintf("1HGCM82633A%06d", 100000+i),
			Mileage:  int64(30000 + rand.Intn(120000)),
		}
		db.Create(&v)
		vehicles = append(vehicles, v)
	}

	// ================== INVENTORY ==================
	log.Println("Creating inventory items...")

	parts := []struct {
		sku      string
		name     string
		category string
		qty      int
		min      int
		price    float64
	}{
		{"OIL-5W30-1L", "Engine Oil 5W-30 1L", "fluids", 48, 12, 11.50},
		{"FLT-OIL-T01", "Oil Filter (Toyota)", "filters", 30, 8, 7.90},
		{"FLT-AIR-U01", "Air Filter Universal", "filters", 22, 6, 12.40},
		{"BRK-PAD-F01", "Front Brake Pads", "brakes", 16, 4, 45.00},
		{"BRK-DSC-F01", "Front Brake Disc", "brakes", 8, 4, 78.00},
		{"BAT-12V-60A", "Battery 12V 60Ah", "electrical", 6, 2, 115.00},
		{"SPK-PLG-N01", "Spark Plug NGK", "engine", 40, 10, 6.20},
		{"WPR-BLD-55", "Wiper Blade 55cm", "exterior", 3, 5, 14.00}, // intentionally low stock
	}
	items := make([]domain.InventoryItem, 0, len(parts))
	for _, p := range parts {
		item := domain.InventoryItem{
			SKU:       p.sku,
			Name:      p.name,
			Category:  p.category,
			Quantity:  p.qty,
			MinStock:  p.min,
			MaxStock:  p.qty * 3,
			UnitPrice: p.price,
			Active:    true,
		}
		db.Create(&item)
		items = append(items, item)
	}

	// ================== WORK ORDERS ==================
	log.Println("Creating work orders...")

	year := time.Now().Year()
	statuses := []domain.WorkOrderStatus{
		domain.OrderDraft,
		domain.OrderPending,
		domain.OrderInProgress,
		domain.OrderWaitingParts,
		domain.OrderReadyForPickup,
		domain.OrderCompleted,
	}

	orders := make([]domain.WorkOrder, 0, len(statuses))
	for i, status := range statuses {
		v := vehicles[i%len(vehicles)]
		order := domain.WorkOrder{
			OrderNumber: fmt.Sprintf("WO-%d-%06d", year, i+1),
			ClientID:    v.ClientID,
			VehicleID:   v.ID,
			Status:      status,
			Description: fmt.Sprintf("Routine service visit %d", i+1),
			CreatedAt:   time.Now().AddDate(0, 0, -rand.Intn(25)),
		}
		db.Create(&order)
		orders = append(orders, order)

		// one labor line per order
		svc := domain.WorkOrderService{
			WorkOrderID: order.ID,
			Name:        "Diagnostics and labor",
			Hours:       1 + float64(rand.Intn(3)),
			Rate:        60,
		}
		svc.Total = svc.Hours * svc.Rate
		db.Create(&svc)

		// one part line per order, with matching reservation on open orders
		item := items[i%len(items)]
		qty := 1 + rand.Intn(2)
		part := domain.WorkOrderPart{
			WorkOrderID:     order.ID,
			InventoryItemID: item.ID,
			Quantity:        qty,
			UnitPrice:       item.UnitPrice,
			TotalPrice:      item.UnitPrice * float64(qty),
		}
		db.Create(&part)

		if status == domain.OrderCompleted {
			db.Model(&domain.InventoryItem{}).Where("id = ?", item.ID).
				Update("quantity", item.Quantity-qty)
			db.Create(&domain.InventoryTransaction{
				InventoryItemID: item.ID,
				Type:            domain.TxnDeduct,
				Quantity:        qty,
				Reference:       order.OrderNumber,
			})
		} else {
			db.Model(&domain.InventoryItem{}).Where("id = ?", item.ID).
				Update("reserved", qty)
			db.Create(&domain.InventoryTransaction{
				InventoryItemID: item.ID,
				Type:            domain.TxnReserve,
				Quantity:        qty,
				Reference:       order.OrderNumber,
			})
		}

		laborCost := svc.Total
		partsCost := part.TotalPrice
		db.Model(&domain.WorkOrder{}).Where("id = ?", order.ID).Updates(map[string]any{
			"labor_cost": laborCost,
			"parts_cost": partsCost,
			"total_cost": laborCost + partsCost,
		})
		orders[len(orders)-1].TotalCost = laborCost + partsCost
	}

	// ================== INVOICES & PAYMENTS ==================
	log.Println("Creating invoices and payments...")

	invoiceSeq := 0
	for _, order := range orders {
		if order.Status != domain.OrderCompleted && order.Status != domain.OrderReadyForPickup {
			continue
		}
		invoiceSeq++

		subtotal := order.TotalCost
		tax := subtotal * 0.20
		inv := domain.Invoice{
			InvoiceNumber: fmt.Sprintf("INV-%d-%06d", year, invoiceSeq),
			WorkOrderID:   order.ID,
			ClientID:      order.ClientID,
			Status:        domain.InvoiceSent,
			Subtotal:      subtotal,
			TaxRate:       0.20,
			TaxAmount:     tax,
			Total:         subtotal + tax,
			IssueDate:     time.Now().AddDate(0, 0, -10),
			DueDate:       time.Now().AddDate(0, 0, 4),
		}
		db.Create(&inv)

		if order.Status == domain.OrderCompleted {
			db.Create(&domain.Payment{
				InvoiceID: inv.ID,
				Amount:    inv.Total,
				Method:    domain.PaymentCard,
				Status:    domain.PaymentCompleted,
				Reference: fmt.Sprintf("TXN-%06d", 400000+invoiceSeq),
				PaidAt:    time.Now().AddDate(0, 0, -2),
			})
			db.Model(&domain.Invoice{}).Where("id = ?", inv.ID).Updates(map[string]any{
				"amount_paid": inv.Total,
				"status":      domain.InvoicePaid,
			})
		}
	}

	// one overdue invoice for dashboard demos
	if len(orders) > 0 {
		db.Model(&domain.Invoice{}).
			Where("status = ?", domain.InvoiceSent).
			Limit(1).
			Updates(map[string]any{
				"due_date": time.Now().AddDate(0, 0, -7),
				"status":   domain.InvoiceOverdue,
			})
	}

	log.Println("Seed completed!")
	log.Println("Test accounts (password for all: password123):")
	for _, s := range staff {
		log.Printf("  %-12s %s", s.role, s.email)
	}
}
