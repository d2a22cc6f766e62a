package sheets

import (
	"context"
	"fmt"

	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// Sheet ranges the daily closing writes to. Both tabs must exist.
const (
	DaybookRange  = "Daybook!A:H"
	ClosingsRange = "Closings!A:G"
)

// DaybookRows renders daybook entries as sheet rows: date, category, type,
// description, credit, debit, balance, recorded amount.
func DaybookRows(book models.Daybook) [][]interface{} {
	rows := make([][]interface{}, 0, len(book.Entries))
	for _, e := range book.Entries {
		recorded := ""
		if e.RecordedAmount != nil {
			recorded = e.RecordedAmount.StringFixed(2)
		}
		rows = append(rows, []interface{}{
			models.FormatDay(e.At),
			string(e.Category),
			string(e.Type),
			e.Description,
			e.Credit.StringFixed(2),
			e.Debit.StringFixed(2),
			e.Balance.StringFixed(2),
			recorded,
		})
	}
	return rows
}

// ClosingRow renders a daily closing as one sheet row.
func ClosingRow(c models.DailyClosing) []interface{} {
	return []interface{}{
		c.Date,
		fmt.Sprintf("%.2f", c.OpeningBalance),
		fmt.Sprintf("%.2f", c.TotalCredit),
		fmt.Sprintf("%.2f", c.TotalDebit),
		fmt.Sprintf("%.2f", c.ClosingBalance),
		c.SalesCount,
		c.EntryCount,
	}
}

// ClosingExported reports whether the Closings tab already holds a row for day.
func ClosingExported(ctx context.Context, repo Repository, day string) (bool, error) {
	rows, err := repo.ReadRange(ctx, "Closings!A:A")
	if err != nil {
		return false, err
	}
	for _, row := range rows {
		if len(row) > 0 && fmt.Sprint(row[0]) == day {
			return true, nil
		}
	}
	return false, nil
}
