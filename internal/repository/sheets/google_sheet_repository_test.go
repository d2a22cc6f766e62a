package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/mamadbah2/floraledger/internal/domain/models"
)

func newTestRepository(t *testing.T, handler http.HandlerFunc) *GoogleSheetRepository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	repo, err := newRepository(context.Background(), "sheet-1", nil,
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	return repo
}

func TestAppendRows(t *testing.T) {
	var body struct {
		Values [][]interface{} `json:"values"`
	}
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "sheet-1")
		assert.True(t, strings.HasSuffix(r.URL.Path, ":append"))
		assert.Equal(t, "USER_ENTERED", r.URL.Query().Get("valueInputOption"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{}`))
	})

	err := repo.AppendRows(context.Background(), ClosingsRange, [][]interface{}{{"2024-03-10", "100.00"}})
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{{"2024-03-10", "100.00"}}, body.Values)
}

func TestAppendRowsSkipsEmpty(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})

	require.NoError(t, repo.AppendRows(context.Background(), DaybookRange, nil))
	assert.Error(t, repo.AppendRows(context.Background(), "", [][]interface{}{{"x"}}))
}

func TestClosingExported(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"range":"Closings!A1:A3","values":[["Date"],["2024-03-09"],["2024-03-10"]]}`))
	})

	done, err := ClosingExported(context.Background(), repo, "2024-03-10")
	require.NoError(t, err)
	assert.True(t, done)

	done, err = ClosingExported(context.Background(), repo, "2024-03-11")
	require.NoError(t, err)
	assert.False(t, done)
}

func TestDaybookRows(t *testing.T) {
	recorded := decimal.NewFromInt(70)
	at, err := models.ParseTimestamp("2024-03-10T09:30:00+05:30")
	require.NoError(t, err)

	rows := DaybookRows(models.Daybook{Entries: []models.DaybookEntry{
		{At: at, Category: models.EntrySale, Type: models.EntryIncome, Description: "Sale #abc (Walk-in)", Credit: decimal.NewFromInt(250), Debit: decimal.Zero, Balance: decimal.NewFromInt(250)},
		{At: at, Category: models.EntryPurchase, Type: models.EntryExpenditure, Description: "Purchase: Rose Co (10 items)", Credit: decimal.Zero, Debit: decimal.Zero, Balance: decimal.NewFromInt(250), RecordedAmount: &recorded},
	}})

	require.Len(t, rows, 2)
	assert.Equal(t, []interface{}{"2024-03-10", "SALE", "INCOME", "Sale #abc (Walk-in)", "250.00", "0.00", "250.00", ""}, rows[0])
	assert.Equal(t, "70.00", rows[1][7])
}

func TestClosingRow(t *testing.T) {
	row := ClosingRow(models.DailyClosing{Date: "2024-03-10", OpeningBalance: 100, TotalCredit: 250.5, TotalDebit: 20, ClosingBalance: 330.5, SalesCount: 3, EntryCount: 5})
	assert.Equal(t, []interface{}{"2024-03-10", "100.00", "250.50", "20.00", "330.50", 3, 5}, row)
}
