package pnl

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/floraledger/internal/domain/apperror"
	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// damageAfter is how long a batch stays sellable. Stock left when it runs
// out is written off on that day.
const damageAfter = 2 * 24 * time.Hour

// unknownCostShare prices sold units whose batch no longer exists.
var unknownCostShare = decimal.RequireFromString("0.5")

// Compute derives the profit and loss of the inclusive day range
// [start, end] from an in-memory snapshot.
func Compute(snap models.Snapshot, start, end time.Time) (models.ProfitAndLoss, error) {
	start, end = models.Day(start), models.Day(end)
	if start.After(end) {
		return models.ProfitAndLoss{}, apperror.NewValidation("start must not be after end").
			WithDetail("start", models.FormatDay(start)).
			WithDetail("end", models.FormatDay(end))
	}

	out := models.ProfitAndLoss{
		Start:         models.FormatDay(start),
		End:           models.FormatDay(end),
		Revenue:       decimal.Zero,
		COGS:          decimal.Zero,
		TotalExpenses: decimal.Zero,
		DamageLoss:    decimal.Zero,
	}

	inWindow := func(kind, id, raw string) bool {
		day, err := models.ParseDay(raw)
		if err != nil {
			out.Quarantined = append(out.Quarantined, models.QuarantinedRecord{Kind: kind, ID: id, Date: raw, Reason: err.Error()})
			return false
		}
		return !day.Before(start) && !day.After(end)
	}

	batches := make(map[string]models.StockBatch, len(snap.Stock))
	for _, b := range snap.Stock {
		batches[b.ID] = b
	}

	for _, sale := range snap.Sales {
		if !inWindow("sale", sale.ID, sale.Date) {
			continue
		}
		out.Revenue = out.Revenue.Add(decimal.NewFromFloat(sale.TotalAmount))
		for _, item := range sale.Items {
			qty := decimal.NewFromInt(int64(item.Quantity))
			if batch, ok := batches[item.StockBatchID]; ok {
				out.COGS = out.COGS.Add(qty.Mul(decimal.NewFromFloat(batch.PurchasePrice)))
				continue
			}
			out.COGS = out.COGS.Add(qty.Mul(decimal.NewFromFloat(item.Price)).Mul(unknownCostShare))
		}
	}

	for _, e := range snap.Expenses {
		if inWindow("expense", e.ID, e.Date) {
			out.TotalExpenses = out.TotalExpenses.Add(decimal.NewFromFloat(e.Amount))
		}
	}

	for _, b := range snap.Stock {
		if b.Quantity <= 0 {
			continue
		}
		purchased, err := models.ParseDay(b.PurchaseDate)
		if err != nil {
			out.Quarantined = append(out.Quarantined, models.QuarantinedRecord{Kind: "stock", ID: b.ID, Date: b.PurchaseDate, Reason: err.Error()})
			continue
		}
		damaged := purchased.Add(damageAfter)
		if damaged.Before(start) || damaged.After(end) {
			continue
		}
		qty := decimal.NewFromInt(int64(b.Quantity))
		out.DamageLoss = out.DamageLoss.Add(qty.Mul(decimal.NewFromFloat(b.PurchasePrice)))
	}

	out.GrossProfit = out.Revenue.Sub(out.COGS)
	out.NetProfit = out.GrossProfit.Sub(out.TotalExpenses).Sub(out.DamageLoss)
	return out, nil
}
