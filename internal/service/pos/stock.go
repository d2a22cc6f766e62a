package pos

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/apperror"
	"github.com/mamadbah2/floraledger/internal/domain/models"
	"github.com/mamadbah2/floraledger/internal/service/balances"
)

// addPurchase stores a new stock batch. A batch bought on credit is added to
// the supplier's outstanding balance.
func (s *Service) addPurchase(ctx context.Context, actor models.Actor, batch models.StockBatch) (models.StockBatch, error) {
	batch.ProductName = strings.TrimSpace(batch.ProductName)
	if batch.ProductName == "" && batch.ProductID == "" {
		return models.StockBatch{}, apperror.NewValidation("product is required")
	}
	if batch.OriginalQuantity <= 0 {
		batch.OriginalQuantity = batch.Quantity
	}
	if batch.OriginalQuantity <= 0 {
		return models.StockBatch{}, apperror.NewValidation("quantity must be greater than 0")
	}
	if batch.Quantity <= 0 {
		batch.Quantity = batch.OriginalQuantity
	}
	if batch.Quantity > batch.OriginalQuantity {
		return models.StockBatch{}, apperror.NewValidation("quantity cannot exceed the purchased quantity")
	}
	if err := nonNegative(batch.PurchasePrice, "purchasePrice"); err != nil {
		return models.StockBatch{}, err
	}
	if err := nonNegative(batch.SellingPrice, "sellingPrice"); err != nil {
		return models.StockBatch{}, err
	}

	switch batch.PaymentStatus {
	case "":
		batch.PaymentStatus = models.PurchasePaid
	case models.PurchasePaid, models.PurchaseCredit:
	default:
		return models.StockBatch{}, apperror.NewValidation("paymentStatus must be PAID or CREDIT").
			WithDetail("paymentStatus", batch.PaymentStatus)
	}
	if batch.PaymentStatus == models.PurchaseCredit && batch.SupplierID == "" {
		return models.StockBatch{}, apperror.NewValidation("a credit purchase needs a supplier")
	}

	if batch.PurchaseDate == "" {
		batch.PurchaseDate = models.FormatDay(s.localNow())
	}
	if _, err := models.ParseTimestamp(batch.PurchaseDate); err != nil {
		return models.StockBatch{}, apperror.NewValidation("purchaseDate is malformed").WithDetail("purchaseDate", batch.PurchaseDate)
	}

	if batch.SupplierID != "" {
		supplier, err := s.repo.GetSupplier(ctx, batch.SupplierID)
		if err != nil {
			return models.StockBatch{}, err
		}
		if batch.SupplierName == "" {
			batch.SupplierName = supplier.Name
		}
	}

	batch.ID = s.newID()
	batch.InvoiceNo = strings.TrimSpace(batch.InvoiceNo)

	err := s.repo.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.InsertStockBatch(ctx, batch); err != nil {
			return err
		}
		if credit := balances.PurchaseCredit(batch); credit.IsPositive() {
			if err := s.repo.IncSupplierBalance(ctx, batch.SupplierID, toFloat(credit)); err != nil {
				return fmt.Errorf("add supplier credit: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return models.StockBatch{}, err
	}

	s.logger.Info("purchase recorded",
		zap.String("stock_batch_id", batch.ID),
		zap.String("invoice_no", batch.InvoiceNo),
		zap.String("payment_status", string(batch.PaymentStatus)),
		zap.String("by", actor.Name),
	)
	return batch, nil
}

// updateSellingPrice changes the price a batch sells at.
func (s *Service) updateSellingPrice(ctx context.Context, id string, price float64) error {
	if err := nonNegative(price, "sellingPrice"); err != nil {
		return err
	}
	return s.repo.SetStockSellingPrice(ctx, id, price)
}

// ComputedStock groups the current batches by freshness.
func (s *Service) ComputedStock(ctx context.Context) (models.ComputedStock, error) {
	batches, err := s.repo.ListStock(ctx)
	if err != nil {
		return models.ComputedStock{}, fmt.Errorf("load stock: %w", err)
	}
	return models.GroupStock(batches, s.localNow()), nil
}
