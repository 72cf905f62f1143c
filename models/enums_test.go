package models_test

import (
	"testing"

	"github.com/rossostudios/puerta-abierta-sub004/models"
)

// Status sets are fail-safe inclusive: anything the backend invents later
// must show up as open/pipeline rather than silently disappearing.

func TestTaskStatuses(t *testing.T) {
	closed := []string{"done", "completed", "cancelled", "canceled", "resolved", "closed", " Done ", "COMPLETED"}
	for _, s := range closed {
		if models.IsTaskOpen(s) {
			t.Fatalf("IsTaskOpen(%q) expected false", s)
		}
	}
	open := []string{"open", "in_progress", "blocked", "some_new_status", ""}
	for _, s := range open {
		if !models.IsTaskOpen(s) {
			t.Fatalf("IsTaskOpen(%q) expected true", s)
		}
	}
}

func TestLeaseActiveIsAllowList(t *testing.T) {
	for _, s := range []string{"active", "delinquent", "Active", " DELINQUENT "} {
		if !models.IsLeaseActive(s) {
			t.Fatalf("IsLeaseActive(%q) expected true", s)
		}
	}
	for _, s := range []string{"ended", "draft", "terminated", "unknown_status", ""} {
		if models.IsLeaseActive(s) {
			t.Fatalf("IsLeaseActive(%q) expected false", s)
		}
	}
}

func TestCollectionStatuses(t *testing.T) {
	for _, s := range []string{"paid", "completed", "settled"} {
		if models.IsCollectionOpen(s) {
			t.Fatalf("IsCollectionOpen(%q) expected false", s)
		}
		if !models.IsCollectionPaid(s) {
			t.Fatalf("IsCollectionPaid(%q) expected true", s)
		}
	}
	for _, s := range []string{"scheduled", "pending", "late", "overdue", "partial", "brand_new_status"} {
		if !models.IsCollectionOpen(s) {
			t.Fatalf("IsCollectionOpen(%q) expected true", s)
		}
	}
}

func TestApplicationStatuses(t *testing.T) {
	for _, s := range []string{"rejected", "lost", "contract_signed"} {
		if models.IsApplicationOpen(s) {
			t.Fatalf("IsApplicationOpen(%q) expected false", s)
		}
	}
	for _, s := range []string{"new", "contacted", "visit_scheduled", "whatever"} {
		if !models.IsApplicationOpen(s) {
			t.Fatalf("IsApplicationOpen(%q) expected true", s)
		}
	}
}

func TestReservationActiveIsAllowList(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "checked_in"} {
		if !models.IsReservationActive(s) {
			t.Fatalf("IsReservationActive(%q) expected true", s)
		}
	}
	for _, s := range []string{"cancelled", "checked_out", "no_show", ""} {
		if models.IsReservationActive(s) {
			t.Fatalf("IsReservationActive(%q) expected false", s)
		}
	}
}
