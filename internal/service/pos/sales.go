package pos

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/apperror"
	"github.com/mamadbah2/floraledger/internal/domain/models"
	"github.com/mamadbah2/floraledger/internal/service/balances"
)

// validateSale checks the checkout invariants and normalizes cash change:
// tendered cash above the total becomes AmountPaid = TotalAmount plus change.
func validateSale(sale *models.Sale) error {
	if len(sale.Items) == 0 {
		return apperror.NewValidation("sale must contain at least one item")
	}
	for i, item := range sale.Items {
		if item.StockBatchID == "" {
			return apperror.NewValidation("every item needs a stock batch").WithDetail("item", i)
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("item quantity must be greater than 0").WithDetail("item", i)
		}
		if err := nonNegative(item.Price, "price"); err != nil {
			return err
		}
	}

	if sale.PaymentMode == "" {
		sale.PaymentMode = models.PaymentCash
	}
	if !sale.PaymentMode.Valid() {
		return apperror.NewValidation("unknown payment mode").WithDetail("paymentMode", sale.PaymentMode)
	}

	for field, value := range map[string]float64{
		"subTotal":    sale.SubTotal,
		"discount":    sale.Discount,
		"totalAmount": sale.TotalAmount,
		"amountPaid":  sale.AmountPaid,
	} {
		if err := nonNegative(value, field); err != nil {
			return err
		}
	}

	total := decimal.NewFromFloat(sale.TotalAmount).Round(2)
	expected := decimal.NewFromFloat(sale.SubTotal).Sub(decimal.NewFromFloat(sale.Discount)).Round(2)
	if !total.Equal(expected) {
		return apperror.NewValidation("totalAmount must equal subTotal minus discount").
			WithDetail("totalAmount", total.StringFixed(2)).
			WithDetail("expected", expected.StringFixed(2))
	}

	paid := decimal.NewFromFloat(sale.AmountPaid).Round(2)
	if paid.GreaterThan(total) {
		if sale.PaymentMode != models.PaymentCash {
			return apperror.NewValidation("amountPaid cannot exceed totalAmount unless paid in cash").
				WithDetail("amountPaid", paid.StringFixed(2))
		}
		sale.ChangeReturned = toFloat(paid.Sub(total))
		sale.AmountPaid = toFloat(total)
	}
	return nil
}

// createSale checks out a cart: stock is taken from each batch, the unpaid
// part of a credit sale is added to the customer's balance and UPI receipts
// are moved to a bank account.
func (s *Service) createSale(ctx context.Context, actor models.Actor, sale models.Sale) (models.Sale, error) {
	if err := validateSale(&sale); err != nil {
		return models.Sale{}, err
	}
	date, err := s.stamp(sale.Date)
	if err != nil {
		return models.Sale{}, err
	}

	sale.ID = s.newID()
	sale.Date = date
	sale.CreatedBy = actor.Name

	if sale.CustomerID != "" {
		customer, err := s.repo.GetCustomer(ctx, sale.CustomerID)
		if err != nil {
			return models.Sale{}, err
		}
		if sale.CustomerName == "" {
			sale.CustomerName = customer.Name
		}
	}

	now := s.localNow()
	err = s.repo.WithTransaction(ctx, func(ctx context.Context) error {
		for i := range sale.Items {
			item := &sale.Items[i]
			batch, err := s.repo.GetStockBatch(ctx, item.StockBatchID)
			if err != nil {
				return err
			}
			status := batch.Status(now)
			if status == models.StockDamaged {
				return apperror.NewBusinessRule("damaged stock cannot be sold").
					WithDetail("stock_batch_id", batch.ID)
			}
			if err := s.repo.AdjustStockQuantity(ctx, batch.ID, -item.Quantity); err != nil {
				return err
			}
			item.Status = status
			if item.ProductID == "" {
				item.ProductID = batch.ProductID
			}
			if item.ProductName == "" {
				item.ProductName = batch.ProductName
			}
		}

		if err := s.repo.InsertSale(ctx, sale); err != nil {
			return err
		}

		if debt := balances.SaleDebt(sale); debt.IsPositive() {
			if err := s.repo.IncCustomerBalance(ctx, sale.CustomerID, toFloat(debt)); err != nil {
				return fmt.Errorf("add customer debt: %w", err)
			}
		}

		if sale.PaymentMode == models.PaymentUPI && sale.AmountPaid > 0 {
			account, _, err := s.resolveAccount(ctx, sale.BankAccountID, true)
			if err != nil {
				return err
			}
			_, err = s.postBankTransaction(ctx, models.BankTransaction{
				BankAccountID: account.ID,
				Amount:        sale.AmountPaid,
				Type:          models.TxnIn,
				Category:      models.BankUPI,
				Date:          sale.Date,
				Description:   "UPI Sale " + sale.ID,
				SourceID:      sale.ID,
				CreatedBy:     sale.CreatedBy,
			})
			return err
		}
		return nil
	})
	if err != nil {
		return models.Sale{}, err
	}

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.String("payment_mode", string(sale.PaymentMode)),
		zap.Float64("total_amount", sale.TotalAmount),
		zap.Int("items", len(sale.Items)),
	)
	return sale, nil
}

// deleteSale reverses every effect of a sale: stock returns to its batches,
// customer debt is taken back and linked bank transactions are removed.
func (s *Service) deleteSale(ctx context.Context, actor models.Actor, id string) error {
	if err := requireAdmin(actor, "delete sales"); err != nil {
		return err
	}

	sale, err := s.repo.GetSale(ctx, id)
	if err != nil {
		return err
	}

	err = s.repo.WithTransaction(ctx, func(ctx context.Context) error {
		for _, item := range sale.Items {
			if err := s.repo.AdjustStockQuantity(ctx, item.StockBatchID, item.Quantity); err != nil {
				return fmt.Errorf("restore stock batch %s: %w", item.StockBatchID, err)
			}
		}

		if debt := balances.SaleDebt(sale); debt.IsPositive() {
			if err := s.repo.IncCustomerBalance(ctx, sale.CustomerID, toFloat(debt.Neg())); err != nil {
				return fmt.Errorf("reverse customer debt: %w", err)
			}
		}

		linked, err := s.repo.ListBankTransactionsBySource(ctx, sale.ID)
		if err != nil {
			return err
		}
		for _, txn := range linked {
			if err := s.unpostBankTransaction(ctx, txn); err != nil {
				return fmt.Errorf("reverse bank transaction %s: %w", txn.ID, err)
			}
		}

		return s.repo.DeleteSale(ctx, sale.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("sale deleted", zap.String("sale_id", id), zap.String("by", actor.Name))
	return nil
}
