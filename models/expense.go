package models

import (
	"time"

	"github.com/rossostudios/puerta-abierta-sub004/utils"
	"github.com/shopspring/decimal"
)

type Expense struct {
	Id          string          `json:"id"`
	PropertyId  string          `json:"property_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	FxRateToPyg decimal.Decimal `json:"fx_rate_to_pyg"`
	ExpenseDate *time.Time      `json:"expense_date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

func ExpenseFromRecord(rec Record) Expense {
	return Expense{
		Id:          utils.RecordString(rec, "id"),
		PropertyId:  utils.RecordString(rec, "property_id"),
		Amount:      utils.RecordDecimal(rec, "amount"),
		Currency:    utils.RecordString(rec, "currency"),
		FxRateToPyg: utils.RecordDecimal(rec, "fx_rate_to_pyg"),
		ExpenseDate: utils.RecordTime(rec, "expense_date"),
		Category:    utils.RecordString(rec, "category"),
		Description: utils.RecordString(rec, "description", "notes"),
	}
}

func (e Expense) AmountPyg() decimal.Decimal {
	return ConvertToPyg(e.Amount, e.Currency, e.FxRateToPyg)
}

// CategoryKey buckets uncategorized expenses under "other".
func (e Expense) CategoryKey() string {
	key := utils.NormalizeStatus(e.Category)
	if key == "" {
		return "other"
	}
	return key
}
