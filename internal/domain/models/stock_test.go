package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockStatusByAge(t *testing.T) {
	now := time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, StockNew, StockBatch{PurchaseDate: "2024-05-10"}.Status(now))
	assert.Equal(t, StockOld, StockBatch{PurchaseDate: "2024-05-09"}.Status(now))
	assert.Equal(t, StockDamaged, StockBatch{PurchaseDate: "2024-05-08"}.Status(now))
	assert.Equal(t, StockDamaged, StockBatch{PurchaseDate: "not a date"}.Status(now))
}

func TestFutureDatedStockIsNew(t *testing.T) {
	now := time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, StockNew, StockBatch{PurchaseDate: "2024-05-11"}.Status(now))
	assert.Equal(t, StockNew, StockBatch{PurchaseDate: "2024-05-14"}.Status(now))

	grouped := GroupStock([]StockBatch{{ID: "preorder", Quantity: 3, PurchaseDate: "2024-05-12"}}, now)
	require.Len(t, grouped.New, 1)
	assert.Equal(t, "preorder", grouped.New[0].ID)
	assert.Empty(t, grouped.Damaged)
}

func TestGroupStock(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	batches := []StockBatch{
		{ID: "fresh", Quantity: 5, PurchaseDate: "2024-05-10"},
		{ID: "sold-out", Quantity: 0, PurchaseDate: "2024-05-10"},
		{ID: "yesterday", Quantity: 2, PurchaseDate: "2024-05-09"},
		{ID: "wilted", Quantity: 0, PurchaseDate: "2024-05-01"},
	}

	grouped := GroupStock(batches, now)

	assert.Len(t, grouped.New, 1)
	assert.Equal(t, "fresh", grouped.New[0].ID)
	assert.Len(t, grouped.Old, 1)
	assert.Len(t, grouped.Damaged, 1)
	assert.Equal(t, "wilted", grouped.Damaged[0].ID)
}

func TestPurchasedQuantityFallsBack(t *testing.T) {
	assert.Equal(t, 12, StockBatch{Quantity: 12}.PurchasedQuantity())
	assert.Equal(t, 20, StockBatch{Quantity: 3, OriginalQuantity: 20}.PurchasedQuantity())
}
