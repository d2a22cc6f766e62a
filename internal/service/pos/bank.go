package pos

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/apperror"
	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// addBankAccount opens an account. An initial balance is booked as an
// OPENING transaction so the account's history explains its balance.
func (s *Service) addBankAccount(ctx context.Context, actor models.Actor, account models.BankAccount) (models.BankAccount, error) {
	if err := requireAdmin(actor, "add bank accounts"); err != nil {
		return models.BankAccount{}, err
	}
	account.Name = strings.TrimSpace(account.Name)
	if account.Name == "" {
		return models.BankAccount{}, apperror.NewValidation("account name is required")
	}
	if err := nonNegative(account.Balance, "balance"); err != nil {
		return models.BankAccount{}, err
	}

	initial := account.Balance
	account.ID = s.newID()
	account.Balance = 0

	err := s.repo.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.InsertBankAccount(ctx, account); err != nil {
			return err
		}
		if initial <= 0 {
			return nil
		}
		_, err := s.postBankTransaction(ctx, models.BankTransaction{
			BankAccountID: account.ID,
			Amount:        initial,
			Type:          models.TxnIn,
			Category:      models.BankOpening,
			Date:          s.localNow().Format(models.DateLayout),
			Description:   "Opening Balance",
			CreatedBy:     actor.Name,
		})
		return err
	})
	if err != nil {
		return models.BankAccount{}, err
	}

	account.Balance = initial
	s.logger.Info("bank account added", zap.String("bank_account_id", account.ID), zap.String("name", account.Name))
	return account, nil
}

// updateBankAccount edits an account's name, number and IFSC. Empty fields
// keep their current value.
func (s *Service) updateBankAccount(ctx context.Context, actor models.Actor, id string, changes models.BankAccount) (models.BankAccount, error) {
	if err := requireAdmin(actor, "edit bank accounts"); err != nil {
		return models.BankAccount{}, err
	}
	account, err := s.repo.GetBankAccount(ctx, id)
	if err != nil {
		return models.BankAccount{}, err
	}

	if name := strings.TrimSpace(changes.Name); name != "" {
		account.Name = name
	}
	if changes.AccountNumber != "" {
		account.AccountNumber = changes.AccountNumber
	}
	if changes.IFSC != "" {
		account.IFSC = changes.IFSC
	}

	if err := s.repo.UpdateBankAccountDetails(ctx, account); err != nil {
		return models.BankAccount{}, err
	}
	return account, nil
}

// addBankTransaction books a manual movement on an account.
func (s *Service) addBankTransaction(ctx context.Context, actor models.Actor, txn models.BankTransaction) (models.BankTransaction, error) {
	if err := requireAdmin(actor, "add bank transactions"); err != nil {
		return models.BankTransaction{}, err
	}
	if txn.BankAccountID == "" {
		return models.BankTransaction{}, apperror.NewValidation("bankAccountId is required")
	}
	if txn.Type != models.TxnIn && txn.Type != models.TxnOut {
		return models.BankTransaction{}, apperror.NewValidation("type must be IN or OUT").WithDetail("type", txn.Type)
	}
	if err := positive(txn.Amount, "amount"); err != nil {
		return models.BankTransaction{}, err
	}
	txn.Category = models.BankCategory(strings.ToUpper(strings.TrimSpace(string(txn.Category))))
	if txn.Category == "" {
		txn.Category = models.InferBankCategory(txn)
	}
	if !txn.Category.Valid() {
		return models.BankTransaction{}, apperror.NewValidation("unknown bank category").WithDetail("category", txn.Category)
	}
	date, err := s.stamp(txn.Date)
	if err != nil {
		return models.BankTransaction{}, err
	}

	txn.ID = s.newID()
	txn.Date = date
	txn.SourceID = ""
	txn.CreatedBy = actor.Name

	err = s.repo.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetBankAccount(ctx, txn.BankAccountID); err != nil {
			return err
		}
		txn, err = s.postBankTransaction(ctx, txn)
		return err
	})
	if err != nil {
		return models.BankTransaction{}, err
	}

	s.logger.Info("bank transaction recorded",
		zap.String("bank_account_id", txn.BankAccountID),
		zap.String("type", string(txn.Type)),
		zap.String("category", string(txn.Category)),
		zap.Float64("amount", txn.Amount),
	)
	return txn, nil
}
