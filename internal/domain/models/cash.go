package models

import "strings"

// AdjustmentType is the direction of a manual cash-drawer correction.
type AdjustmentType string

const (
	AdjustmentAdd    AdjustmentType = "ADD"
	AdjustmentRemove AdjustmentType = "REMOVE"
)

// AdjustmentCategory tags the intent of a cash adjustment.
type AdjustmentCategory string

const (
	AdjustmentOpening AdjustmentCategory = "OPENING"
	AdjustmentOther   AdjustmentCategory = "OTHER"
)

// CashAdjustment is a manual correction of the cash drawer.
type CashAdjustment struct {
	ID          string             `bson:"id" json:"id"`
	Amount      float64            `bson:"amount" json:"amount"`
	Type        AdjustmentType     `bson:"type" json:"type"`
	Category    AdjustmentCategory `bson:"category,omitempty" json:"category,omitempty"`
	Description string             `bson:"description" json:"description"`
	Date        string             `bson:"date" json:"date"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
}

// InferAdjustmentCategory classifies an adjustment stored or posted without
// a category.
func InferAdjustmentCategory(c CashAdjustment) AdjustmentCategory {
	if c.Type == AdjustmentAdd && strings.Contains(strings.ToLower(c.Description), "opening") {
		return AdjustmentOpening
	}
	return AdjustmentOther
}
