package models

import (
	"strings"
	"time"

	"github.com/rossostudios/puerta-abierta-sub004/utils"
	"github.com/shopspring/decimal"
)

type Lease struct {
	Id          string          `json:"id"`
	UnitId      string          `json:"unit_id"`
	Status      string          `json:"lease_status"`
	TenantName  string          `json:"tenant_name"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Currency    string          `json:"currency"`
	FxRateToPyg decimal.Decimal `json:"fx_rate_to_pyg"`
	StartsOn    *time.Time      `json:"starts_on"`
	EndsOn      *time.Time      `json:"ends_on"`
}

func LeaseFromRecord(rec Record) Lease {
	tenant := utils.RecordString(rec, "tenant_name")
	if tenant == "" {
		first := utils.RecordString(rec, "tenant_first_name")
		last := utils.RecordString(rec, "tenant_last_name")
		tenant = strings.TrimSpace(first + " " + last)
	}
	return Lease{
		Id:          utils.RecordString(rec, "id"),
		UnitId:      utils.RecordString(rec, "unit_id"),
		Status:      utils.RecordString(rec, "lease_status", "status"),
		TenantName:  tenant,
		MonthlyRent: utils.RecordDecimal(rec, "monthly_rent"),
		Currency:    utils.RecordString(rec, "currency"),
		FxRateToPyg: utils.RecordDecimal(rec, "fx_rate_to_pyg"),
		StartsOn:    utils.RecordTime(rec, "starts_on"),
		EndsOn:      utils.RecordTime(rec, "ends_on"),
	}
}

func (l Lease) IsActive() bool {
	return IsLeaseActive(l.Status)
}

func (l Lease) MonthlyRentPyg() decimal.Decimal {
	return ConvertToPyg(l.MonthlyRent, l.Currency, l.FxRateToPyg)
}

// StartedAfter orders leases by start date for current-lease selection.
// A lease without starts_on loses against any dated one; exact ties fall
// back to the id so the choice stays deterministic.
func (l Lease) StartedAfter(other Lease) bool {
	switch {
	case l.StartsOn == nil && other.StartsOn == nil:
		return l.Id > other.Id
	case l.StartsOn == nil:
		return false
	case other.StartsOn == nil:
		return true
	case l.StartsOn.Equal(*other.StartsOn):
		return l.Id > other.Id
	default:
		return l.StartsOn.After(*other.StartsOn)
	}
}
