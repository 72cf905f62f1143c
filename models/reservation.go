package models

import (
	"time"

	"github.com/rossostudios/puerta-abierta-sub004/utils"
)

type Reservation struct {
	Id         string     `json:"id"`
	PropertyId string     `json:"property_id"`
	Status     string     `json:"status"`
	CheckIn    *time.Time `json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`
}

func ReservationFromRecord(rec Record) Reservation {
	return Reservation{
		Id:         utils.RecordString(rec, "id"),
		PropertyId: utils.RecordString(rec, "property_id"),
		Status:     utils.RecordString(rec, "status"),
		// Marketplace reservations use date-only fields, direct bookings
		// carry timestamps.
		CheckIn:  utils.RecordTime(rec, "check_in_date", "check_in"),
		CheckOut: utils.RecordTime(rec, "check_out_date", "check_out"),
	}
}

func (r Reservation) IsActive() bool {
	return IsReservationActive(r.Status)
}
