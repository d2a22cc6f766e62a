package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/floraledger/internal/domain/apperror"
	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// Sales

func (r *MongoDBRepository) ListSales(ctx context.Context) ([]models.Sale, error) {
	return findAll[models.Sale](ctx, r.db.Collection(collSales), bson.M{}, "date", -1)
}

func (r *MongoDBRepository) GetSale(ctx context.Context, id string) (models.Sale, error) {
	return findByID[models.Sale](ctx, r.db.Collection(collSales), "sale", id)
}

func (r *MongoDBRepository) InsertSale(ctx context.Context, sale models.Sale) error {
	return r.insert(ctx, collSales, sale)
}

func (r *MongoDBRepository) DeleteSale(ctx context.Context, id string) error {
	return r.deleteByID(ctx, collSales, "sale", id)
}

// Stock

func (r *MongoDBRepository) ListStock(ctx context.Context) ([]models.StockBatch, error) {
	return findAll[models.StockBatch](ctx, r.db.Collection(collStock), bson.M{}, "purchaseDate", -1)
}

func (r *MongoDBRepository) GetStockBatch(ctx context.Context, id string) (models.StockBatch, error) {
	return findByID[models.StockBatch](ctx, r.db.Collection(collStock), "stock batch", id)
}

func (r *MongoDBRepository) InsertStockBatch(ctx context.Context, batch models.StockBatch) error {
	return r.insert(ctx, collStock, batch)
}

// AdjustStockQuantity adds delta to a batch. Negative deltas only apply when
// the batch still holds enough, so concurrent checkouts cannot oversell.
func (r *MongoDBRepository) AdjustStockQuantity(ctx context.Context, batchID string, delta int) error {
	filter := bson.M{"id": batchID}
	if delta < 0 {
		filter["quantity"] = bson.M{"$gte": -delta}
	}
	res, err := r.db.Collection(collStock).UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"quantity": delta}})
	if err != nil {
		return fmt.Errorf("failed to update stock batch %s: %w", batchID, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	if _, err := r.GetStockBatch(ctx, batchID); err != nil {
		return err
	}
	return apperror.NewInsufficientStock(batchID, -delta)
}

func (r *MongoDBRepository) SetStockSellingPrice(ctx context.Context, id string, price float64) error {
	return r.setField(ctx, collStock, "stock batch", id, "sellingPrice", price)
}

// Expenses

func (r *MongoDBRepository) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return findAll[models.Expense](ctx, r.db.Collection(collExpenses), bson.M{}, "date", -1)
}

func (r *MongoDBRepository) InsertExpense(ctx context.Context, expense models.Expense) error {
	return r.insert(ctx, collExpenses, expense)
}

// Customers

func (r *MongoDBRepository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return findAll[models.Customer](ctx, r.db.Collection(collCustomers), bson.M{}, "name", 1)
}

func (r *MongoDBRepository) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	return findByID[models.Customer](ctx, r.db.Collection(collCustomers), "customer", id)
}

func (r *MongoDBRepository) InsertCustomer(ctx context.Context, customer models.Customer) error {
	return r.insert(ctx, collCustomers, customer)
}

func (r *MongoDBRepository) IncCustomerBalance(ctx context.Context, id string, delta float64) error {
	return r.incField(ctx, collCustomers, "customer", id, "outstandingBalance", delta)
}

func (r *MongoDBRepository) SetCustomerBalance(ctx context.Context, id string, balance float64) error {
	return r.setField(ctx, collCustomers, "customer", id, "outstandingBalance", balance)
}

func (r *MongoDBRepository) ListCustomerPayments(ctx context.Context) ([]models.CustomerPayment, error) {
	return findAll[models.CustomerPayment](ctx, r.db.Collection(collCustomerPayments), bson.M{}, "date", -1)
}

func (r *MongoDBRepository) InsertCustomerPayment(ctx context.Context, payment models.CustomerPayment) error {
	return r.insert(ctx, collCustomerPayments, payment)
}

// Suppliers

func (r *MongoDBRepository) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return findAll[models.Supplier](ctx, r.db.Collection(collSuppliers), bson.M{}, "name", 1)
}

func (r *MongoDBRepository) GetSupplier(ctx context.Context, id string) (models.Supplier, error) {
	return findByID[models.Supplier](ctx, r.db.Collection(collSuppliers), "supplier", id)
}

func (r *MongoDBRepository) InsertSupplier(ctx context.Context, supplier models.Supplier) error {
	return r.insert(ctx, collSuppliers, supplier)
}

func (r *MongoDBRepository) IncSupplierBalance(ctx context.Context, id string, delta float64) error {
	return r.incField(ctx, collSuppliers, "supplier", id, "outstandingBalance", delta)
}

func (r *MongoDBRepository) SetSupplierBalance(ctx context.Context, id string, balance float64) error {
	return r.setField(ctx, collSuppliers, "supplier", id, "outstandingBalance", balance)
}

func (r *MongoDBRepository) ListSupplierPayments(ctx context.Context) ([]models.SupplierPayment, error) {
	return findAll[models.SupplierPayment](ctx, r.db.Collection(collSupplierPayments), bson.M{}, "date", -1)
}

func (r *MongoDBRepository) InsertSupplierPayment(ctx context.Context, payment models.SupplierPayment) error {
	return r.insert(ctx, collSupplierPayments, payment)
}

// Cash adjustments

func (r *MongoDBRepository) ListCashAdjustments(ctx context.Context) ([]models.CashAdjustment, error) {
	return findAll[models.CashAdjustment](ctx, r.db.Collection(collCashAdjustments), bson.M{}, "date", -1)
}

func (r *MongoDBRepository) InsertCashAdjustment(ctx context.Context, adjustment models.CashAdjustment) error {
	return r.insert(ctx, collCashAdjustments, adjustment)
}

func (r *MongoDBRepository) SetCashAdjustmentCategory(ctx context.Context, id string, category models.AdjustmentCategory) error {
	return r.setField(ctx, collCashAdjustments, "cash adjustment", id, "category", category)
}

// Bank

func (r *MongoDBRepository) ListBankAccounts(ctx context.Context) ([]models.BankAccount, error) {
	return findAll[models.BankAccount](ctx, r.db.Collection(collBankAccounts), bson.M{}, "", 0)
}

func (r *MongoDBRepository) GetBankAccount(ctx context.Context, id string) (models.BankAccount, error) {
	return findByID[models.BankAccount](ctx, r.db.Collection(collBankAccounts), "bank account", id)
}

// FirstBankAccount returns the oldest account, used when a bank movement does
// not name one.
func (r *MongoDBRepository) FirstBankAccount(ctx context.Context) (models.BankAccount, error) {
	var account models.BankAccount
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	err := r.db.Collection(collBankAccounts).FindOne(ctx, bson.M{}, opts).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return account, apperror.NewNotFound("bank account", "")
		}
		return account, fmt.Errorf("failed to load first bank account: %w", err)
	}
	return account, nil
}

func (r *MongoDBRepository) InsertBankAccount(ctx context.Context, account models.BankAccount) error {
	return r.insert(ctx, collBankAccounts, account)
}

// UpdateBankAccountDetails rewrites the descriptive fields of an account. The
// balance only moves through transactions.
func (r *MongoDBRepository) UpdateBankAccountDetails(ctx context.Context, account models.BankAccount) error {
	update := bson.M{"$set": bson.M{
		"name":          account.Name,
		"accountNumber": account.AccountNumber,
		"ifsc":          account.IFSC,
	}}
	res, err := r.db.Collection(collBankAccounts).UpdateOne(ctx, bson.M{"id": account.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update bank account %s: %w", account.ID, err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound("bank account", account.ID)
	}
	return nil
}

func (r *MongoDBRepository) IncBankBalance(ctx context.Context, id string, delta float64) error {
	return r.incField(ctx, collBankAccounts, "bank account", id, "balance", delta)
}

func (r *MongoDBRepository) SetBankBalance(ctx context.Context, id string, balance float64) error {
	return r.setField(ctx, collBankAccounts, "bank account", id, "balance", balance)
}

func (r *MongoDBRepository) ListBankTransactions(ctx context.Context) ([]models.BankTransaction, error) {
	return findAll[models.BankTransaction](ctx, r.db.Collection(collBankTransactions), bson.M{}, "date", 1)
}

func (r *MongoDBRepository) ListBankTransactionsBySource(ctx context.Context, sourceID string) ([]models.BankTransaction, error) {
	return findAll[models.BankTransaction](ctx, r.db.Collection(collBankTransactions), bson.M{"sourceId": sourceID}, "", 0)
}

func (r *MongoDBRepository) InsertBankTransaction(ctx context.Context, txn models.BankTransaction) error {
	return r.insert(ctx, collBankTransactions, txn)
}

func (r *MongoDBRepository) DeleteBankTransaction(ctx context.Context, id string) error {
	return r.deleteByID(ctx, collBankTransactions, "bank transaction", id)
}

func (r *MongoDBRepository) SetBankTransactionCategory(ctx context.Context, id string, category models.BankCategory) error {
	return r.setField(ctx, collBankTransactions, "bank transaction", id, "category", category)
}

// Audit logs

func (r *MongoDBRepository) InsertAuditLog(ctx context.Context, entry models.AuditLog) error {
	return r.insert(ctx, collAuditLogs, entry)
}

func (r *MongoDBRepository) ListAuditLogs(ctx context.Context) ([]models.AuditLog, error) {
	return findAll[models.AuditLog](ctx, r.db.Collection(collAuditLogs), bson.M{}, "timestamp", -1)
}

// Daily closings

// SaveDailyClosing upserts the closing of one day.
func (r *MongoDBRepository) SaveDailyClosing(ctx context.Context, closing models.DailyClosing) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.db.Collection(collDailyClosings).ReplaceOne(ctx, bson.M{"date": closing.Date}, closing, opts)
	if err != nil {
		return fmt.Errorf("failed to save daily closing %s: %w", closing.Date, err)
	}
	return nil
}
