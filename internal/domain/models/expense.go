package models

// Expense categories offered by the shop; free text is accepted as well.
const (
	ExpenseSalary    = "SALARY"
	ExpenseRent      = "RENT"
	ExpenseShop      = "SHOP_EXPENSE"
	ExpenseTransport = "TRANSPORT"
	ExpenseOther     = "OTHER"
)

// Expense is an operating cost paid by the shop.
type Expense struct {
	ID            string  `bson:"id" json:"id"`
	Category      string  `bson:"category" json:"category"`
	Amount        float64 `bson:"amount" json:"amount"`
	Description   string  `bson:"description" json:"description"`
	Date          string  `bson:"date" json:"date"`
	BankAccountID string  `bson:"bankAccountId,omitempty" json:"bankAccountId,omitempty"`
	CreatedBy     string  `bson:"createdBy" json:"createdBy"`
}
