package models

import (
	"time"

	"github.com/rossostudios/puerta-abierta-sub004/utils"
)

type Task struct {
	Id         string     `json:"id"`
	UnitId     string     `json:"unit_id"`
	PropertyId string     `json:"property_id"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	Priority   string     `json:"priority"`
	DueAt      *time.Time `json:"due_at"`
}

func TaskFromRecord(rec Record) Task {
	return Task{
		Id:         utils.RecordString(rec, "id"),
		UnitId:     utils.RecordString(rec, "unit_id"),
		PropertyId: utils.RecordString(rec, "property_id"),
		Title:      utils.RecordString(rec, "title", "name"),
		Status:     utils.RecordString(rec, "status"),
		Priority:   utils.RecordString(rec, "priority"),
		DueAt:      utils.RecordTime(rec, "due_at", "due_date"),
	}
}

func (t Task) IsOpen() bool {
	return IsTaskOpen(t.Status)
}

func (t Task) IsUrgent() bool {
	return IsTaskUrgent(t.Priority)
}

func (t Task) IsOverdue(now time.Time) bool {
	return t.DueAt != nil && t.DueAt.Before(now)
}
