package pos

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/apperror"
	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// addExpense records an operating cost. With a bank account it also leaves
// that account as an EXPENSE transaction.
func (s *Service) addExpense(ctx context.Context, actor models.Actor, expense models.Expense) (models.Expense, error) {
	expense.Category = strings.TrimSpace(expense.Category)
	if expense.Category == "" {
		return models.Expense{}, apperror.NewValidation("expense category is required")
	}
	if err := positive(expense.Amount, "amount"); err != nil {
		return models.Expense{}, err
	}
	date, err := s.stamp(expense.Date)
	if err != nil {
		return models.Expense{}, err
	}

	expense.ID = s.newID()
	expense.Date = date
	expense.CreatedBy = actor.Name

	err = s.repo.WithTransaction(ctx, func(ctx context.Context) error {
		if expense.BankAccountID != "" {
			if _, err := s.repo.GetBankAccount(ctx, expense.BankAccountID); err != nil {
				return err
			}
		}
		if err := s.repo.InsertExpense(ctx, expense); err != nil {
			return err
		}
		if expense.BankAccountID == "" {
			return nil
		}
		description := expense.Description
		if description == "" {
			description = "Expense"
		}
		_, err := s.postBankTransaction(ctx, models.BankTransaction{
			BankAccountID: expense.BankAccountID,
			Amount:        expense.Amount,
			Type:          models.TxnOut,
			Category:      models.BankExpense,
			Date:          expense.Date,
			Description:   description,
			SourceID:      expense.ID,
			CreatedBy:     expense.CreatedBy,
		})
		return err
	})
	if err != nil {
		return models.Expense{}, err
	}

	s.logger.Info("expense recorded",
		zap.String("expense_id", expense.ID),
		zap.String("category", expense.Category),
		zap.Float64("amount", expense.Amount),
	)
	return expense, nil
}

// addCashAdjustment records a manual correction of the cash drawer.
func (s *Service) addCashAdjustment(ctx context.Context, actor models.Actor, adjustment models.CashAdjustment) (models.CashAdjustment, error) {
	if adjustment.Type != models.AdjustmentAdd && adjustment.Type != models.AdjustmentRemove {
		return models.CashAdjustment{}, apperror.NewValidation("type must be ADD or REMOVE").WithDetail("type", adjustment.Type)
	}
	if err := positive(adjustment.Amount, "amount"); err != nil {
		return models.CashAdjustment{}, err
	}
	adjustment.Description = strings.TrimSpace(adjustment.Description)
	switch adjustment.Category {
	case "":
		adjustment.Category = models.InferAdjustmentCategory(adjustment)
	case models.AdjustmentOpening, models.AdjustmentOther:
	default:
		return models.CashAdjustment{}, apperror.NewValidation("category must be OPENING or OTHER").
			WithDetail("category", adjustment.Category)
	}
	date, err := s.stamp(adjustment.Date)
	if err != nil {
		return models.CashAdjustment{}, err
	}

	adjustment.ID = s.newID()
	adjustment.Date = date
	adjustment.CreatedBy = actor.Name

	if err := s.repo.InsertCashAdjustment(ctx, adjustment); err != nil {
		return models.CashAdjustment{}, err
	}

	s.logger.Info("cash adjustment recorded",
		zap.String("type", string(adjustment.Type)),
		zap.String("category", string(adjustment.Category)),
		zap.Float64("amount", adjustment.Amount),
		zap.String("by", actor.Name),
	)
	return adjustment, nil
}
