package models

import "time"

// StockStatus is the freshness of a batch, derived from its age.
type StockStatus string

const (
	StockNew     StockStatus = "NEW"
	StockOld     StockStatus = "OLD"
	StockDamaged StockStatus = "DAMAGED"
)

// PurchaseStatus records whether a purchase was paid up front or on credit.
type PurchaseStatus string

const (
	PurchasePaid   PurchaseStatus = "PAID"
	PurchaseCredit PurchaseStatus = "CREDIT"
)

// StockBatch is a purchased lot of one product.
type StockBatch struct {
	ID               string         `bson:"id" json:"id"`
	ProductID        string         `bson:"productId" json:"productId"`
	ProductName      string         `bson:"productName" json:"productName"`
	Quantity         int            `bson:"quantity" json:"quantity"`
	OriginalQuantity int            `bson:"originalQuantity" json:"originalQuantity"`
	PurchasePrice    float64        `bson:"purchasePrice" json:"purchasePrice"`
	SellingPrice     float64        `bson:"sellingPrice" json:"sellingPrice"`
	PurchaseDate     string         `bson:"purchaseDate" json:"purchaseDate"`
	SupplierID       string         `bson:"supplierId,omitempty" json:"supplierId,omitempty"`
	SupplierName     string         `bson:"supplierName,omitempty" json:"supplierName,omitempty"`
	PaymentStatus    PurchaseStatus `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	InvoiceNo        string         `bson:"invoiceNo,omitempty" json:"invoiceNo,omitempty"`
}

// PurchasedQuantity falls back to the remaining quantity for legacy batches
// stored without originalQuantity.
func (b StockBatch) PurchasedQuantity() int {
	if b.OriginalQuantity > 0 {
		return b.OriginalQuantity
	}
	return b.Quantity
}

// Status derives freshness from the purchase day: bought today or dated
// ahead is NEW, one day old is OLD, anything older or undatable is DAMAGED.
func (b StockBatch) Status(now time.Time) StockStatus {
	purchased, err := ParseDay(b.PurchaseDate)
	if err != nil {
		return StockDamaged
	}
	days := int(Day(now).Sub(purchased).Hours() / 24)
	switch {
	case days <= 0:
		return StockNew
	case days == 1:
		return StockOld
	default:
		return StockDamaged
	}
}

// ComputedStock groups batches by derived status.
type ComputedStock struct {
	New     []StockBatch `json:"newStock"`
	Old     []StockBatch `json:"oldStock"`
	Damaged []StockBatch `json:"damagedStock"`
}

// GroupStock splits batches by status. Empty NEW/OLD batches are dropped,
// damaged ones are always listed so they can be written off.
func GroupStock(batches []StockBatch, now time.Time) ComputedStock {
	out := ComputedStock{New: []StockBatch{}, Old: []StockBatch{}, Damaged: []StockBatch{}}
	for _, b := range batches {
		status := b.Status(now)
		if b.Quantity <= 0 && status != StockDamaged {
			continue
		}
		switch status {
		case StockNew:
			out.New = append(out.New, b)
		case StockOld:
			out.Old = append(out.Old, b)
		default:
			out.Damaged = append(out.Damaged, b)
		}
	}
	return out
}
