package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/dafibh/fortuna/fortuna-web/internal/domain"
	"github.com/dafibh/fortuna/fortuna-web/internal/resource"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEntryForm(categoryID string) url.Values {
	return url.Values{
		"name":        {"Groceries"},
		"description": {"weekly"},
		"type":        {"expense"},
		"amount":      {"12,50"},
		"date":        {"05/03/2024"},
		"paid":        {"true"},
		"categoryId":  {categoryID},
	}
}

func TestHome_RedirectsToEntries(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/entries", rec.Header().Get(echo.HeaderLocation))
}

func TestStatic_ServesStylesheet(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/static/app.css")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".toast")
}

func TestEntryList_ShowsCategoryNames(t *testing.T) {
	app := newTestApp(t)
	food := app.api.AddCategory("Food", "")
	app.api.AddEntry(&domain.Entry{
		Name: "Lunch", Type: domain.EntryTypeExpense, Amount: decimal.RequireFromString("9.9"),
		Date: "01/02/2024", Paid: false, CategoryID: food.ID,
	})
	app.api.AddEntry(&domain.Entry{
		Name: "Bonus", Type: domain.EntryTypeIncome, Amount: decimal.NewFromInt(100),
		Date: "02/02/2024", Paid: true, CategoryID: domain.Int32Ptr(42),
	})

	rec := app.get("/entries")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<td>Food</td>")
	assert.Contains(t, body, "<td>-</td>")
	assert.Contains(t, body, "9.90")
	assert.Contains(t, body, "100.00")
	assert.Contains(t, body, "Pending")
	assert.Less(t, indexOf(body, "Bonus"), indexOf(body, "Lunch"))
}

func TestEntryList_CategoryLookupFailureStillRenders(t *testing.T) {
	app := newTestApp(t)
	app.api.AddEntry(&domain.Entry{Name: "Lunch", Type: domain.EntryTypeExpense, CategoryID: domain.Int32Ptr(1)})
	app.api.Fail(http.MethodGet, "/categories", http.StatusInternalServerError, `{}`)

	rec := app.get("/entries")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lunch")
}

func TestEntryNew_Defaults(t *testing.T) {
	app := newTestApp(t)
	app.api.AddCategory("Rent", "")
	app.api.AddCategory("Food", "")

	rec := app.get("/entries/new")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "New entry")
	assert.Contains(t, body, `<option value="expense" selected>Expense</option>`)
	assert.Contains(t, body, `<option value="income">Income</option>`)
	assert.Contains(t, body, `name="paid" value="true" checked`)
	assert.Contains(t, body, `name="amount" inputmode="decimal" value=""`)
	assert.Less(t, indexOf(body, ">Food<"), indexOf(body, ">Rent<"))
}

func TestEntryCreate_AttachesCategory(t *testing.T) {
	app := newTestApp(t)
	food := app.api.AddCategory("Food", "")

	rec := app.post("/entries/new", validEntryForm("1"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/entries/2/edit", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, 1, app.api.CallCount(http.MethodGet, "/categories/1"))

	saved := app.api.Entries[2]
	require.NotNil(t, saved)
	assert.Equal(t, "Groceries", saved.Name)
	assert.True(t, decimal.RequireFromString("12.5").Equal(saved.Amount))
	assert.Equal(t, "05/03/2024", saved.Date)
	assert.True(t, saved.Paid)
	require.NotNil(t, saved.Category)
	assert.Equal(t, food.Name, saved.Category.Name)

	page := app.follow(t, rec)
	assert.Contains(t, page.Body.String(), resource.MsgSuccess)
	assert.Contains(t, page.Body.String(), "Editing entry: Groceries")
	assert.Contains(t, page.Body.String(), `value="12.50"`)
}

func TestEntryCreate_UncheckedPaid(t *testing.T) {
	app := newTestApp(t)
	app.api.AddCategory("Food", "")
	form := validEntryForm("1")
	form.Del("paid")

	rec := app.post("/entries/new", form)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.False(t, app.api.Entries[2].Paid)
}

func TestEntryCreate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		message string
	}{
		{"bad amount", "amount", "12.5.0", "Must be a valid amount"},
		{"missing amount", "amount", "", "This field is required"},
		{"missing date", "date", "", "This field is required"},
		{"bad type", "type", "transfer", "Must be one of: income, expense"},
		{"missing category", "categoryId", "", "This field is required"},
		{"non-numeric category", "categoryId", "x", "Must be a number"},
		{"short name", "name", "G", "Must have at least 2 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			app.api.AddCategory("Food", "")
			form := validEntryForm("1")
			form.Set(tt.field, tt.value)

			rec := app.post("/entries/new", form)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
			assert.Equal(t, 0, app.api.CallCount(http.MethodPost, "/entries"))
		})
	}
}

func TestEntryCreate_UnknownCategory(t *testing.T) {
	app := newTestApp(t)

	rec := app.post("/entries/new", validEntryForm("9"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), resource.MsgConnectivity)
	assert.Equal(t, 0, app.api.CallCount(http.MethodPost, "/entries"))
}

func TestEntryUpdate_KeepsID(t *testing.T) {
	app := newTestApp(t)
	app.api.AddCategory("Food", "")
	rent := app.api.AddCategory("Rent", "")
	app.api.AddEntry(&domain.Entry{Name: "Lunch", Type: domain.EntryTypeExpense, CategoryID: domain.Int32Ptr(1)})

	form := validEntryForm("2")
	form.Set("type", "income")
	rec := app.post("/entries/3/edit", form)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/entries/3/edit", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, 1, app.api.CallCount(http.MethodPut, "/entries/3"))

	saved := app.api.Entries[3]
	assert.Equal(t, domain.EntryTypeIncome, saved.Type)
	assert.Equal(t, *rent.ID, *saved.CategoryID)
	assert.Equal(t, "Rent", saved.Category.Name)
}

func TestEntryDelete_Confirmed(t *testing.T) {
	app := newTestApp(t)
	app.api.AddEntry(&domain.Entry{Name: "Lunch", Type: domain.EntryTypeExpense, CategoryID: domain.Int32Ptr(1)})

	rec := app.post("/entries/1/delete", url.Values{"confirm": {"yes"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/entries", rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, app.api.Entries)
}
