package domain

import "time"

type InventoryItem struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	SKU       string    `gorm:"column:sku;size:64;uniqueIndex;not null" json:"sku"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	Category  string    `gorm:"column:category;size:64" json:"category,omitempty"`
	Quantity  int       `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Reserved  int       `gorm:"column:reserved;not null;default:0" json:"reserved"`
	MinStock  int       `gorm:"column:min_stock;not null;default:0" json:"min_stock"`
	MaxStock  int       `gorm:"column:max_stock;not null;default:0" json:"max_stock"`
	UnitPrice float64   `gorm:"column:unit_price;not null;default:0" json:"unit_price"`
	Active    bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (InventoryItem) TableName() string { return "inventory_items" }

// Available is the stock free to be newly committed.
func (i InventoryItem) Available() int { return i.Quantity - i.Reserved }

func (i InventoryItem) LowStock() bool { return i.Active && i.Quantity <= i.MinStock }

type InventoryTransactionType string

const (
	TxnReserve InventoryTransactionType = "reserve"
	TxnRelease InventoryTransactionType = "release"
	TxnDeduct  InventoryTransactionType = "deduct"
	TxnRestock InventoryTransactionType = "restock"
	TxnAdjust  InventoryTransactionType = "adjust"
)

// InventoryTransaction is an append-only ledger row written in the same
// database transaction as the counter mutation it records.
type InventoryTransaction struct {
	ID              int64                    `gorm:"column:id;primaryKey" json:"id"`
	InventoryItemID int64                    `gorm:"column:inventory_item_id;index;not null" json:"inventory_item_id"`
	Type            InventoryTransactionType `gorm:"column:type;size:16;not null" json:"type"`
	Quantity        int                      `gorm:"column:quantity;not null" json:"quantity"`
	Reference       string                   `gorm:"column:reference;size:64" json:"reference,omitempty"`
	Note            string                   `gorm:"column:note;size:255" json:"note,omitempty"`
	CreatedAt       time.Time                `gorm:"column:created_at" json:"created_at"`
}

func (InventoryTransaction) TableName() string { return "inventory_transactions" }
