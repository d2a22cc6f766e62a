package models

// PaymentMode enumerates how a sale was settled at the counter.
type PaymentMode string

const (
	PaymentCash   PaymentMode = "CASH"
	PaymentUPI    PaymentMode = "UPI"
	PaymentBank   PaymentMode = "BANK"
	PaymentCredit PaymentMode = "CREDIT"
	PaymentCan    PaymentMode = "CAN"
	PaymentHide   PaymentMode = "HIDE"
	PaymentNotUse PaymentMode = "NOT_USE"
)

// Valid reports whether m is a known payment mode.
func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentBank, PaymentCredit, PaymentCan, PaymentHide, PaymentNotUse:
		return true
	}
	return false
}

// CartItem is one line of a sale, drawn from a specific stock batch.
type CartItem struct {
	StockBatchID string      `bson:"stockBatchId" json:"stockBatchId"`
	ProductID    string      `bson:"productId" json:"productId"`
	ProductName  string      `bson:"productName" json:"productName"`
	Quantity     int         `bson:"quantity" json:"quantity"`
	Price        float64     `bson:"price" json:"price"`
	Status       StockStatus `bson:"status" json:"status"`
}

// Sale is a completed checkout.
type Sale struct {
	ID             string      `bson:"id" json:"id"`
	Date           string      `bson:"date" json:"date"`
	SubTotal       float64     `bson:"subTotal" json:"subTotal"`
	Discount       float64     `bson:"discount" json:"discount"`
	TotalAmount    float64     `bson:"totalAmount" json:"totalAmount"`
	AmountPaid     float64     `bson:"amountPaid" json:"amountPaid"`
	ChangeReturned float64     `bson:"changeReturned" json:"changeReturned"`
	PaymentMode    PaymentMode `bson:"paymentMode" json:"paymentMode"`
	CustomerID     string      `bson:"customerId,omitempty" json:"customerId,omitempty"`
	CustomerName   string      `bson:"customerName,omitempty" json:"customerName,omitempty"`
	BankAccountID  string      `bson:"bankAccountId,omitempty" json:"bankAccountId,omitempty"`
	Items          []CartItem  `bson:"items" json:"items"`
	CreatedBy      string      `bson:"createdBy" json:"createdBy"`
}
