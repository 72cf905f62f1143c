package models

import (
	"time"

	"github.com/rossostudios/puerta-abierta-sub004/utils"
)

type OwnerStatement struct {
	Id          string     `json:"id"`
	PropertyId  string     `json:"property_id"`
	PeriodEnd   *time.Time `json:"period_end"`
	GeneratedAt *time.Time `json:"generated_at"`
}

func OwnerStatementFromRecord(rec Record) OwnerStatement {
	return OwnerStatement{
		Id:          utils.RecordString(rec, "id"),
		PropertyId:  utils.RecordString(rec, "property_id"),
		PeriodEnd:   utils.RecordTime(rec, "period_end"),
		GeneratedAt: utils.RecordTime(rec, "generated_at"),
	}
}

// RecencyDate orders statements: period_end wins, generated_at is the
// fallback for drafts that never closed a period.
func (s OwnerStatement) RecencyDate() *time.Time {
	if s.PeriodEnd != nil {
		return s.PeriodEnd
	}
	return s.GeneratedAt
}
