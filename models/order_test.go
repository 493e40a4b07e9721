package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "products", MenuItem{}.TableName(), "Table name should be 'products'")
	assert.Equal(t, "packages", Package{}.TableName(), "Table name should be 'packages'")
	assert.Equal(t, "reservations", Order{}.TableName(), "Table name should be 'reservations'")
	assert.Equal(t, "reservation_items", OrderItem{}.TableName(), "Table name should be 'reservation_items'")
}

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   OrderStatus
		wantOK bool
	}{
		{"pending", "pending", StatusPending, true},
		{"confirmed", "confirmed", StatusConfirmed, true},
		{"rejected", "rejected", StatusRejected, true},
		{"legacy cancelled maps to rejected", "cancelled", StatusRejected, true},
		{"case and whitespace are ignored", "  Confirmed ", StatusConfirmed, true},
		{"unknown status", "shipped", "", false},
		{"empty status", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseOrderStatus(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	orders := []Order{
		{ID: "old", CreatedAt: base.Add(-2 * time.Hour)},
		{ID: "missing"},
		{ID: "newest", CreatedAt: base},
		{ID: "middle", CreatedAt: base.Add(-time.Hour)},
		{ID: "missing-too"},
	}

	SortNewestFirst(orders)

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	assert.Equal(t, []string{"newest", "middle", "old", "missing", "missing-too"}, ids)

	// Output must be non-increasing among timestamped orders
	for i := 1; i < 3; i++ {
		assert.False(t, orders[i].CreatedAt.After(orders[i-1].CreatedAt))
	}
}

func TestOrder_Matches(t *testing.T) {
	order := Order{
		CustomerName:  "Budi Santoso",
		CustomerPhone: "081234",
		TableNumber:   "A7",
		Status:        StatusConfirmed,
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"budi", true},
		{"SANTOSO", true},
		{"0812", true},
		{"a7", true},
		{"confirm", true},
		{"pending", false},
		{"siti", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, order.Matches(tt.query))
		})
	}
}

func TestCategory(t *testing.T) {
	assert.True(t, CategoryCoffee.IsValid())
	assert.True(t, CategoryNonCoffee.IsValid())
	assert.False(t, Category("Dessert").IsValid())

	assert.True(t, CategoryCoffee.IsDrink())
	assert.True(t, CategoryNonCoffee.IsDrink())
	assert.False(t, CategoryFood.IsDrink())
	assert.False(t, CategorySnack.IsDrink())
}

func TestPackage_Options(t *testing.T) {
	pkg := Package{FoodOptions: []string{"f1", "f2"}, DrinkOptions: []string{"d1"}}

	assert.True(t, pkg.AllowsFood("f2"))
	assert.False(t, pkg.AllowsFood("d1"))
	assert.True(t, pkg.AllowsDrink("d1"))
	assert.False(t, pkg.AllowsDrink("f1"))
}
