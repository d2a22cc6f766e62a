package models

import "time"

// DailyClosing is the persisted end-of-day snapshot of the daybook.
type DailyClosing struct {
	Date           string    `bson:"date" json:"date"`
	OpeningBalance float64   `bson:"opening_balance" json:"opening_balance"`
	ClosingBalance float64   `bson:"closing_balance" json:"closing_balance"`
	TotalCredit    float64   `bson:"total_credit" json:"total_credit"`
	TotalDebit     float64   `bson:"total_debit" json:"total_debit"`
	SalesCount     int       `bson:"sales_count" json:"sales_count"`
	EntryCount     int       `bson:"entry_count" json:"entry_count"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
