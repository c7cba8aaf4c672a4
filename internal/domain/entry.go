package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryTypeExpense EntryType = "expense"
	EntryTypeIncome  EntryType = "income"
)

// DateLayout is the wire and form layout of Entry.Date (DD/MM/YYYY)
const DateLayout = "02/01/2006"

// entryTypes keeps the option order stable for rendering
var entryTypes = []struct {
	Type  EntryType
	Label string
}{
	{EntryTypeExpense, "Expense"},
	{EntryTypeIncome, "Income"},
}

// Entry is a single income or expense record. CategoryID is a weak
// reference: the category is looked up, never owned.
type Entry struct {
	ID          *int32          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        EntryType       `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Paid        bool            `json:"paid"`
	CategoryID  *int32          `json:"categoryId"`
	Category    *Category       `json:"category,omitempty"`
}

// NewEntry returns the blank entry of a creation form: an expense already paid
func NewEntry() *Entry {
	return &Entry{
		Type: EntryTypeExpense,
		Paid: true,
	}
}

// Identity implements Resource
func (e *Entry) Identity() (int32, bool) {
	return identity(e.ID)
}

// IDValue returns the id or 0 when the entry is not persisted yet
func (e *Entry) IDValue() int32 {
	id, _ := e.Identity()
	return id
}

// CategoryIDValue returns the referenced category id or 0
func (e *Entry) CategoryIDValue() int32 {
	id, _ := identity(e.CategoryID)
	return id
}

// PaidText is the human readable payment status
func (e *Entry) PaidText() string {
	if e.Paid {
		return "Paid"
	}
	return "Pending"
}

// TypeLabel returns the label of the entry type, or the raw value if unknown
func (e *Entry) TypeLabel() string {
	for _, t := range entryTypes {
		if t.Type == e.Type {
			return t.Label
		}
	}
	return string(e.Type)
}

// ParsedDate parses Date using DateLayout
func (e *Entry) ParsedDate() (time.Time, error) {
	return time.Parse(DateLayout, e.Date)
}

// IsValid reports whether t is a known entry type
func (t EntryType) IsValid() bool {
	for _, known := range entryTypes {
		if known.Type == t {
			return true
		}
	}
	return false
}

// EntryTypeOptions lists the entry types in display order
func EntryTypeOptions() []Option {
	opts := make([]Option, len(entryTypes))
	for i, t := range entryTypes {
		opts[i] = Option{Value: string(t.Type), Text: t.Label}
	}
	return opts
}

// ParseAmount parses a user supplied amount. Both "12.50" and "12,50" are
// accepted; thousands separators are not.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}
