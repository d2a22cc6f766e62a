package daybook

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/floraledger/internal/domain/apperror"
	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// Compute builds the daybook for the inclusive day range [start, end] from an
// in-memory snapshot. It never touches storage.
func Compute(snap models.Snapshot, start, end time.Time) (models.Daybook, error) {
	start, end = models.Day(start), models.Day(end)
	if start.After(end) {
		return models.Daybook{}, apperror.NewValidation("start must not be after end").
			WithDetail("start", models.FormatDay(start)).
			WithDetail("end", models.FormatDay(end))
	}

	b := &builder{start: start, end: end, opening: decimal.Zero}
	b.addSales(snap.Sales)
	b.addPurchases(snap.Stock)
	b.addExpenses(snap.Expenses)
	b.addSupplierPayments(snap.SupplierPayments)
	b.addCashAdjustments(snap.CashAdjustments)
	b.addBankTransactions(snap.BankTransactions)

	entries := dedupe(b.entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].At.Before(entries[j].At)
	})

	book := models.Daybook{
		Start:          models.FormatDay(start),
		End:            models.FormatDay(end),
		OpeningBalance: b.opening,
		Entries:        entries,
		TotalCredit:    decimal.Zero,
		TotalDebit:     decimal.Zero,
		Quarantined:    b.quarantined,
	}

	running := b.opening
	for i := range entries {
		running = running.Add(entries[i].Credit).Sub(entries[i].Debit)
		entries[i].Balance = running
		book.TotalCredit = book.TotalCredit.Add(entries[i].Credit)
		book.TotalDebit = book.TotalDebit.Add(entries[i].Debit)
	}
	book.ClosingBalance = running

	return book, nil
}

type position int

const (
	outside position = iota
	before
	within
)

type builder struct {
	start, end  time.Time
	opening     decimal.Decimal
	entries     []models.DaybookEntry
	quarantined []models.QuarantinedRecord
}

// locate parses a record date and places it relative to the window. Records
// with unusable dates are quarantined and reported as outside.
func (b *builder) locate(kind, id, raw string) (time.Time, position) {
	at, err := models.ParseTimestamp(raw)
	if err != nil {
		b.quarantined = append(b.quarantined, models.QuarantinedRecord{
			Kind:   kind,
			ID:     id,
			Date:   raw,
			Reason: err.Error(),
		})
		return time.Time{}, outside
	}
	day := models.Day(at)
	switch {
	case day.Before(b.start):
		return at, before
	case day.After(b.end):
		return at, outside
	default:
		return at, within
	}
}

func (b *builder) push(at time.Time, raw, desc string, typ models.EntryType, cat models.EntryCategory, credit, debit decimal.Decimal, sourceID string) {
	b.entries = append(b.entries, models.DaybookEntry{
		Date:        raw,
		At:          at,
		Description: desc,
		Type:        typ,
		Category:    cat,
		Credit:      credit,
		Debit:       debit,
		SourceID:    sourceID,
	})
}

func (b *builder) addSales(sales []models.Sale) {
	for _, s := range sales {
		at, pos := b.locate("sale", s.ID, s.Date)
		paid := decimal.NewFromFloat(s.AmountPaid)
		switch pos {
		case before:
			b.opening = b.opening.Add(paid)
		case within:
			if !paid.IsPositive() {
				continue
			}
			customer := s.CustomerName
			if customer == "" {
				customer = "Walk-in"
			}
			desc := fmt.Sprintf("Sale #%s (%s)", shortID(s.ID), customer)
			b.push(at, s.Date, desc, models.EntryIncome, models.EntrySale, paid, decimal.Zero, s.ID)
		}
	}
}

type purchaseGroup struct {
	at       time.Time
	raw      string
	invoice  string
	supplier string
	items    int
	total    decimal.Decimal
	sourceID string
}

// addPurchases lists one record-only row per invoice. Batches without an
// invoice number form their own group. Purchases never move the balance.
func (b *builder) addPurchases(batches []models.StockBatch) {
	groups := make(map[string]*purchaseGroup)
	var order []string

	for _, batch := range batches {
		if batch.PaymentStatus != models.PurchasePaid && batch.PaymentStatus != models.PurchaseCredit {
			continue
		}
		at, pos := b.locate("stock", batch.ID, batch.PurchaseDate)
		if pos != within {
			continue
		}

		invoice := strings.TrimSpace(batch.InvoiceNo)
		key := "BATCH::" + batch.ID
		if invoice != "" {
			key = "INV::" + invoice
		}
		g, ok := groups[key]
		if !ok {
			g = &purchaseGroup{
				at:       at,
				raw:      batch.PurchaseDate,
				invoice:  invoice,
				supplier: batch.SupplierName,
				total:    decimal.Zero,
				sourceID: batch.ID,
			}
			if invoice != "" {
				g.sourceID = invoice
			}
			groups[key] = g
			order = append(order, key)
		}
		qty := batch.PurchasedQuantity()
		g.items += qty
		g.total = g.total.Add(decimal.NewFromInt(int64(qty)).Mul(decimal.NewFromFloat(batch.PurchasePrice)))
	}

	for _, key := range order {
		g := groups[key]
		supplier := g.supplier
		if supplier == "" {
			supplier = "Supplier"
		}
		desc := fmt.Sprintf("Purchase: %s (%d items)", supplier, g.items)
		if g.invoice != "" {
			desc = fmt.Sprintf("Purchase Invoice: %s (%d items) from %s", g.invoice, g.items, supplier)
		}
		recorded := g.total
		b.push(g.at, g.raw, desc, models.EntryExpenditure, models.EntryPurchase, decimal.Zero, decimal.Zero, g.sourceID)
		b.entries[len(b.entries)-1].RecordedAmount = &recorded
	}
}

func (b *builder) addExpenses(expenses []models.Expense) {
	for _, e := range expenses {
		at, pos := b.locate("expense", e.ID, e.Date)
		amount := decimal.NewFromFloat(e.Amount)
		switch pos {
		case before:
			b.opening = b.opening.Sub(amount)
		case within:
			desc := fmt.Sprintf("Exp: %s - %s", e.Category, e.Description)
			b.push(at, e.Date, desc, models.EntryExpenditure, models.EntryExpense, decimal.Zero, amount, e.ID)
		}
	}
}

func (b *builder) addSupplierPayments(payments []models.SupplierPayment) {
	for _, p := range payments {
		if p.HideFromDaybook {
			continue
		}
		at, pos := b.locate("supplier_payment", p.ID, p.Date)
		amount := decimal.NewFromFloat(p.Amount)
		switch pos {
		case before:
			b.opening = b.opening.Sub(amount)
		case within:
			note := p.Note
			if note == "" {
				note = "Payment"
			}
			b.push(at, p.Date, "Supplier Pay: "+note, models.EntryExpenditure, models.EntryPayment, decimal.Zero, amount, p.ID)
		}
	}
}

func (b *builder) addCashAdjustments(adjustments []models.CashAdjustment) {
	for _, c := range adjustments {
		at, pos := b.locate("cash_adjustment", c.ID, c.Date)
		amount := decimal.NewFromFloat(c.Amount)
		add := c.Type == models.AdjustmentAdd
		switch pos {
		case before:
			if add {
				b.opening = b.opening.Add(amount)
			} else {
				b.opening = b.opening.Sub(amount)
			}
		case within:
			desc := fmt.Sprintf("%s (Admin: %s)", c.Description, c.CreatedBy)
			if add {
				b.push(at, c.Date, desc, models.EntryIncome, models.EntryAdjustment, amount, decimal.Zero, c.ID)
			} else {
				b.push(at, c.Date, desc, models.EntryExpenditure, models.EntryAdjustment, decimal.Zero, amount, c.ID)
			}
		}
	}
}

// addBankTransactions counts every transaction in the opening balance but
// lists SUPPLIER ones only through their supplier payment row.
func (b *builder) addBankTransactions(txns []models.BankTransaction) {
	for _, t := range txns {
		at, pos := b.locate("bank_transaction", t.ID, t.Date)
		amount := decimal.NewFromFloat(t.Amount)
		in := t.Type == models.TxnIn
		switch pos {
		case before:
			if in {
				b.opening = b.opening.Add(amount)
			} else {
				b.opening = b.opening.Sub(amount)
			}
		case within:
			if strings.EqualFold(string(t.Category), string(models.BankSupplier)) {
				continue
			}
			desc := t.Description
			if desc == "" {
				desc = "Bank Txn"
			}
			desc += " (Bank)"
			if in {
				b.push(at, t.Date, desc, models.EntryIncome, models.EntryBank, amount, decimal.Zero, t.ID)
			} else {
				b.push(at, t.Date, desc, models.EntryExpenditure, models.EntryBank, decimal.Zero, amount, t.ID)
			}
		}
	}
}

// dedupe drops rows describing the same economic event twice; the first
// occurrence wins.
func dedupe(entries []models.DaybookEntry) []models.DaybookEntry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]models.DaybookEntry, 0, len(entries))
	for _, e := range entries {
		key := dedupeKey(e)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

func dedupeKey(e models.DaybookEntry) string {
	return strings.Join([]string{
		models.FormatDay(e.At),
		strings.ToUpper(string(e.Category)),
		e.Credit.StringFixed(2),
		e.Debit.StringFixed(2),
		normalizeDescription(e.Description),
	}, "|")
}

func normalizeDescription(desc string) string {
	return strings.ToLower(strings.Join(strings.Fields(desc), " "))
}

func shortID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}
