package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/apperror"
	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// Collection names follow the ones the shop's existing database already uses.
const (
	collSales            = "sales"
	collStock            = "stocks"
	collExpenses         = "expenses"
	collCustomers        = "customers"
	collCustomerPayments = "customerpayments"
	collSuppliers        = "suppliers"
	collSupplierPayments = "supplierpayments"
	collCashAdjustments  = "cashadjustments"
	collBankAccounts     = "bankaccounts"
	collBankTransactions = "banktransactions"
	collDailyClosings    = "daily_closings"
	collAuditLogs        = "auditlogs"
)

var idCollections = []string{
	collSales, collStock, collExpenses, collCustomers, collCustomerPayments,
	collSuppliers, collSupplierPayments, collCashAdjustments, collBankAccounts, collBankTransactions,
	collAuditLogs,
}

// MongoDBRepository stores every ledger record in MongoDB.
type MongoDBRepository struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
	logger       *zap.Logger
}

// NewMongoDBRepository connects, pings and returns a repository. When
// transactions is set, WithTransaction runs its callback in a multi-document
// transaction (replica set required).
func NewMongoDBRepository(ctx context.Context, uri, dbName string, transactions bool, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:       client,
		db:           client.Database(dbName),
		transactions: transactions,
		logger:       logger,
	}, nil
}

// EnsureIndexes creates the unique id indexes and the date indexes used for sorting.
func (r *MongoDBRepository) EnsureIndexes(ctx context.Context) error {
	for _, name := range idCollections {
		indexes := []mongo.IndexModel{
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		}
		if name == collBankTransactions {
			indexes = append(indexes, mongo.IndexModel{Keys: bson.D{{Key: "sourceId", Value: 1}}})
		}
		if _, err := r.db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	_, err := r.db.Collection(collDailyClosings).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create indexes on %s: %w", collDailyClosings, err)
	}
	return nil
}

// WithTransaction runs fn atomically when transactions are enabled, and
// plainly otherwise.
func (r *MongoDBRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !r.transactions {
		return fn(ctx)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// LoadSnapshot reads every collection the aggregators need.
func (r *MongoDBRepository) LoadSnapshot(ctx context.Context) (models.Snapshot, error) {
	var (
		snap models.Snapshot
		err  error
	)
	if snap.Sales, err = r.ListSales(ctx); err != nil {
		return snap, err
	}
	if snap.Stock, err = r.ListStock(ctx); err != nil {
		return snap, err
	}
	if snap.Expenses, err = r.ListExpenses(ctx); err != nil {
		return snap, err
	}
	if snap.Customers, err = r.ListCustomers(ctx); err != nil {
		return snap, err
	}
	if snap.CustomerPayments, err = r.ListCustomerPayments(ctx); err != nil {
		return snap, err
	}
	if snap.Suppliers, err = r.ListSuppliers(ctx); err != nil {
		return snap, err
	}
	if snap.SupplierPayments, err = r.ListSupplierPayments(ctx); err != nil {
		return snap, err
	}
	if snap.CashAdjustments, err = r.ListCashAdjustments(ctx); err != nil {
		return snap, err
	}
	if snap.BankAccounts, err = r.ListBankAccounts(ctx); err != nil {
		return snap, err
	}
	if snap.BankTransactions, err = r.ListBankTransactions(ctx); err != nil {
		return snap, err
	}
	return snap, nil
}

func (r *MongoDBRepository) insert(ctx context.Context, coll string, doc any) error {
	if _, err := r.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", coll, err)
	}
	return nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, sortKey string, direction int) ([]T, error) {
	opts := options.Find()
	if sortKey != "" {
		opts.SetSort(bson.D{{Key: sortKey, Value: direction}})
	}
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

func findByID[T any](ctx context.Context, coll *mongo.Collection, entity, id string) (T, error) {
	var out T
	err := coll.FindOne(ctx, bson.M{"id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, apperror.NewNotFound(entity, id)
	}
	if err != nil {
		return out, fmt.Errorf("failed to load %s %s: %w", entity, id, err)
	}
	return out, nil
}

// incField applies $inc on one numeric field of the document with the given id.
func (r *MongoDBRepository) incField(ctx context.Context, coll, entity, id, field string, delta float64) error {
	res, err := r.db.Collection(coll).UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", entity, id, err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound(entity, id)
	}
	return nil
}

func (r *MongoDBRepository) setField(ctx context.Context, coll, entity, id, field string, value any) error {
	res, err := r.db.Collection(coll).UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", entity, id, err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound(entity, id)
	}
	return nil
}

func (r *MongoDBRepository) deleteByID(ctx context.Context, coll, entity, id string) error {
	res, err := r.db.Collection(coll).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", entity, id, err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFound(entity, id)
	}
	return nil
}
