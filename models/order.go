package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus is the staff review state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusRejected  OrderStatus = "rejected"
)

// ParseOrderStatus normalizes a status string. The legacy value "cancelled"
// maps to rejected.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, true
	case "confirmed":
		return StatusConfirmed, true
	case "rejected", "cancelled":
		return StatusRejected, true
	}
	return "", false
}

// IsTerminal reports whether no further status change is allowed
func (s OrderStatus) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusRejected
}

// Order represents a pickup reservation placed by a customer
type Order struct {
	ID            string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Date          string         `gorm:"not null" json:"date"` // YYYY-MM-DD
	Time          string         `gorm:"not null" json:"time"` // HH:MM
	CustomerName  string         `gorm:"not null" json:"customer_name"`
	CustomerPhone string         `gorm:"not null" json:"customer_phone"`
	Note          string         `gorm:"type:text" json:"note,omitempty"`
	Items         []OrderItem    `gorm:"foreignKey:OrderID" json:"items"`
	TotalPrice    int64          `gorm:"not null" json:"total_price"`
	Status        OrderStatus    `gorm:"not null;default:'pending';index" json:"status"`
	TableNumber   string         `json:"table_number,omitempty"` // set by staff after creation
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "reservations"
}

// BeforeCreate assigns an opaque identifier when the caller did not provide one
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// OrderItem is a snapshot of one ordered line. It never references the
// catalog, so later menu edits leave it untouched.
type OrderItem struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	OrderID    string `gorm:"not null;index;type:varchar(36)" json:"-"`
	Position   int    `gorm:"not null" json:"-"`
	Name       string `gorm:"not null" json:"name"`
	Quantity   int    `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  int64  `gorm:"not null" json:"unit_price"`
	Subtotal   int64  `gorm:"not null" json:"subtotal"`
	Selections string `json:"selections,omitempty"` // bundle components, e.g. "Nasi Goreng + Es Teh"
	Note       string `gorm:"type:text" json:"note,omitempty"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "reservation_items"
}

// SortNewestFirst orders by creation time descending. Orders without a
// timestamp sort after every timestamped order.
func SortNewestFirst(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i].CreatedAt, orders[j].CreatedAt
		if a.IsZero() != b.IsZero() {
			return b.IsZero()
		}
		return a.After(b)
	})
}

// Matches reports whether the order's name, phone, table number or status
// contains query, ignoring case. An empty query matches everything.
func (o Order) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{o.CustomerName, o.CustomerPhone, o.TableNumber, string(o.Status)} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
