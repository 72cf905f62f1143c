package models

import (
	"time"

	"github.com/rossostudios/puerta-abierta-sub004/utils"
	"github.com/shopspring/decimal"
)

// Collection is a rent payment installment attached to a lease.
type Collection struct {
	Id          string          `json:"id"`
	LeaseId     string          `json:"lease_id"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	FxRateToPyg decimal.Decimal `json:"fx_rate_to_pyg"`
	DueDate     *time.Time      `json:"due_date"`
	PaidAt      *time.Time      `json:"paid_at"`
}

func CollectionFromRecord(rec Record) Collection {
	return Collection{
		Id:          utils.RecordString(rec, "id"),
		LeaseId:     utils.RecordString(rec, "lease_id"),
		Status:      utils.RecordString(rec, "status"),
		Amount:      utils.RecordDecimal(rec, "amount"),
		Currency:    utils.RecordString(rec, "currency"),
		FxRateToPyg: utils.RecordDecimal(rec, "fx_rate_to_pyg"),
		DueDate:     utils.RecordTime(rec, "due_date"),
		PaidAt:      utils.RecordTime(rec, "paid_at"),
	}
}

func (c Collection) IsPaid() bool {
	return IsCollectionPaid(c.Status)
}

func (c Collection) IsOpen() bool {
	return IsCollectionOpen(c.Status)
}

func (c Collection) IsOverdue(now time.Time) bool {
	return c.IsOpen() && c.DueDate != nil && c.DueDate.Before(now)
}

func (c Collection) AmountPyg() decimal.Decimal {
	return ConvertToPyg(c.Amount, c.Currency, c.FxRateToPyg)
}
