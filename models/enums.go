package models

import "github.com/rossostudios/puerta-abierta-sub004/utils"

// Status sets for the core API records.
//
// Closed/paid sets are exhaustive allow-lists; anything outside them is
// treated as open (fail-safe inclusion: a new backend status must never
// silently drop an item from the operator's view). Active sets work the
// other way: a lease or reservation counts as active only when its status
// is explicitly listed.

var taskClosedStatuses = map[string]bool{
	"done":      true,
	"completed": true,
	"cancelled": true,
	"canceled":  true,
	"resolved":  true,
	"closed":    true,
}

var taskUrgentPriorities = map[string]bool{
	"high":     true,
	"critical": true,
	"urgent":   true,
}

var leaseActiveStatuses = map[string]bool{
	"active":     true,
	"delinquent": true,
}

var collectionPaidStatuses = map[string]bool{
	"paid":      true,
	"completed": true,
	"settled":   true,
}

var reservationActiveStatuses = map[string]bool{
	"pending":    true,
	"confirmed":  true,
	"checked_in": true,
}

var applicationClosedStatuses = map[string]bool{
	"rejected":        true,
	"lost":            true,
	"contract_signed": true,
}

func IsTaskOpen(status string) bool {
	return !taskClosedStatuses[utils.NormalizeStatus(status)]
}

func IsTaskUrgent(priority string) bool {
	return taskUrgentPriorities[utils.NormalizeStatus(priority)]
}

func IsLeaseActive(status string) bool {
	return leaseActiveStatuses[utils.NormalizeStatus(status)]
}

func IsCollectionPaid(status string) bool {
	return collectionPaidStatuses[utils.NormalizeStatus(status)]
}

// IsCollectionOpen treats every non-paid status as open (scheduled,
// pending, late, overdue, partial and anything the backend adds later).
func IsCollectionOpen(status string) bool {
	return !collectionPaidStatuses[utils.NormalizeStatus(status)]
}

func IsReservationActive(status string) bool {
	return reservationActiveStatuses[utils.NormalizeStatus(status)]
}

func IsApplicationOpen(status string) bool {
	return !applicationClosedStatuses[utils.NormalizeStatus(status)]
}
