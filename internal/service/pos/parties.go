package pos

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/apperror"
	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// openingOf accepts the opening debt under either field name; older clients
// send it as outstandingBalance.
func openingOf(opening, outstanding float64) (float64, error) {
	if opening == 0 {
		opening = outstanding
	}
	if err := nonNegative(opening, "openingBalance"); err != nil {
		return 0, err
	}
	return opening, nil
}

// addCustomer registers a customer with an optional opening debt.
func (s *Service) addCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return models.Customer{}, apperror.NewValidation("customer name is required")
	}
	opening, err := openingOf(customer.OpeningBalance, customer.OutstandingBalance)
	if err != nil {
		return models.Customer{}, err
	}

	customer.ID = s.newID()
	customer.OpeningBalance = opening
	customer.OutstandingBalance = opening
	if err := s.repo.InsertCustomer(ctx, customer); err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

// addSupplier registers a supplier with an optional opening balance owed.
func (s *Service) addSupplier(ctx context.Context, supplier models.Supplier) (models.Supplier, error) {
	supplier.Name = strings.TrimSpace(supplier.Name)
	if supplier.Name == "" {
		return models.Supplier{}, apperror.NewValidation("supplier name is required")
	}
	opening, err := openingOf(supplier.OpeningBalance, supplier.OutstandingBalance)
	if err != nil {
		return models.Supplier{}, err
	}

	supplier.ID = s.newID()
	supplier.OpeningBalance = opening
	supplier.OutstandingBalance = opening
	if err := s.repo.InsertSupplier(ctx, supplier); err != nil {
		return models.Supplier{}, err
	}
	return supplier, nil
}

// addCustomerPayment settles customer debt. Money received by UPI or bank,
// or with an explicit account, is recorded as a bank receipt.
func (s *Service) addCustomerPayment(ctx context.Context, actor models.Actor, payment models.CustomerPayment) (models.CustomerPayment, error) {
	if payment.CustomerID == "" {
		return models.CustomerPayment{}, apperror.NewValidation("customerId is required")
	}
	if err := positive(payment.Amount, "amount"); err != nil {
		return models.CustomerPayment{}, err
	}
	if payment.PaymentMethod == "" {
		payment.PaymentMethod = models.MethodCash
	}
	switch payment.PaymentMethod {
	case models.MethodCash, models.MethodUPI, models.MethodCard, models.MethodBank, models.MethodCheque:
	default:
		return models.CustomerPayment{}, apperror.NewValidation("unknown payment method").
			WithDetail("paymentMethod", payment.PaymentMethod)
	}
	date, err := s.stamp(payment.Date)
	if err != nil {
		return models.CustomerPayment{}, err
	}

	customer, err := s.repo.GetCustomer(ctx, payment.CustomerID)
	if err != nil {
		return models.CustomerPayment{}, err
	}

	payment.ID = s.newID()
	payment.Date = date
	payment.CreatedBy = actor.Name

	viaBank := payment.PaymentMethod == models.MethodUPI || payment.PaymentMethod == models.MethodBank || payment.BankAccountID != ""

	err = s.repo.WithTransaction(ctx, func(ctx context.Context) error {
		if viaBank {
			account, ok, err := s.resolveAccount(ctx, payment.BankAccountID, false)
			if err != nil {
				return err
			}
			if ok {
				payment.BankAccountID = account.ID
				category := models.BankOther
				if payment.PaymentMethod == models.MethodUPI {
					category = models.BankUPI
				}
				_, err = s.postBankTransaction(ctx, models.BankTransaction{
					BankAccountID: account.ID,
					Amount:        payment.Amount,
					Type:          models.TxnIn,
					Category:      category,
					Date:          payment.Date,
					Description:   fmt.Sprintf("Customer Payment (%s)", customer.Name),
					SourceID:      payment.ID,
					CreatedBy:     payment.CreatedBy,
				})
				if err != nil {
					return err
				}
			}
		}
		if err := s.repo.InsertCustomerPayment(ctx, payment); err != nil {
			return err
		}
		return s.repo.IncCustomerBalance(ctx, payment.CustomerID, -payment.Amount)
	})
	if err != nil {
		return models.CustomerPayment{}, err
	}

	s.logger.Info("customer payment recorded",
		zap.String("customer_id", payment.CustomerID),
		zap.Float64("amount", payment.Amount),
		zap.String("method", string(payment.PaymentMethod)),
	)
	return payment, nil
}

// addSupplierPayment settles what the shop owes a supplier. Payments by bank
// or UPI, or with an explicit account, leave the account as a SUPPLIER
// transaction.
func (s *Service) addSupplierPayment(ctx context.Context, actor models.Actor, payment models.SupplierPayment) (models.SupplierPayment, error) {
	if payment.SupplierID == "" {
		return models.SupplierPayment{}, apperror.NewValidation("supplierId is required")
	}
	if err := positive(payment.Amount, "amount"); err != nil {
		return models.SupplierPayment{}, err
	}
	if payment.PaymentMode == "" {
		payment.PaymentMode = models.PaymentCash
	}
	if !payment.PaymentMode.Valid() {
		return models.SupplierPayment{}, apperror.NewValidation("unknown payment mode").
			WithDetail("paymentMode", payment.PaymentMode)
	}
	date, err := s.stamp(payment.Date)
	if err != nil {
		return models.SupplierPayment{}, err
	}

	if _, err := s.repo.GetSupplier(ctx, payment.SupplierID); err != nil {
		return models.SupplierPayment{}, err
	}

	payment.ID = s.newID()
	payment.Date = date
	payment.Note = strings.TrimSpace(payment.Note)
	payment.CreatedBy = actor.Name

	viaBank := payment.PaymentMode == models.PaymentBank || payment.PaymentMode == models.PaymentUPI || payment.BankAccountID != ""

	err = s.repo.WithTransaction(ctx, func(ctx context.Context) error {
		if viaBank {
			account, ok, err := s.resolveAccount(ctx, payment.BankAccountID, false)
			if err != nil {
				return err
			}
			if ok {
				payment.BankAccountID = account.ID
				description := payment.Note
				if description == "" {
					description = "Supplier Payment"
				}
				_, err = s.postBankTransaction(ctx, models.BankTransaction{
					BankAccountID: account.ID,
					Amount:        payment.Amount,
					Type:          models.TxnOut,
					Category:      models.BankSupplier,
					Date:          payment.Date,
					Description:   description,
					SourceID:      payment.ID,
					CreatedBy:     payment.CreatedBy,
				})
				if err != nil {
					return err
				}
			}
		}
		if err := s.repo.InsertSupplierPayment(ctx, payment); err != nil {
			return err
		}
		return s.repo.IncSupplierBalance(ctx, payment.SupplierID, -payment.Amount)
	})
	if err != nil {
		return models.SupplierPayment{}, err
	}

	s.logger.Info("supplier payment recorded",
		zap.String("supplier_id", payment.SupplierID),
		zap.Float64("amount", payment.Amount),
		zap.String("mode", string(payment.PaymentMode)),
	)
	return payment, nil
}
