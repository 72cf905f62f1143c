package models

// PropertyRelationSnapshot is everything the overview builder needs for one
// property, assembled by the coreapi loader. Every slice defaults to empty
// when its sub-fetch failed; the builder never distinguishes "fetch failed"
// from "no records".
type PropertyRelationSnapshot struct {
	Units           []Unit           `json:"units"`
	Tasks           []Task           `json:"tasks"`
	Expenses        []Expense        `json:"expenses"`
	OwnerStatements []OwnerStatement `json:"owner_statements"`
	Leases          []Lease          `json:"leases"`
	Reservations    []Reservation    `json:"reservations"`
	Listings        []Listing        `json:"listings"`
	Applications    []Application    `json:"applications"`
	Collections     []Collection     `json:"collections"`
}

func EmptyPropertyRelationSnapshot() *PropertyRelationSnapshot {
	return &PropertyRelationSnapshot{
		Units:           []Unit{},
		Tasks:           []Task{},
		Expenses:        []Expense{},
		OwnerStatements: []OwnerStatement{},
		Leases:          []Lease{},
		Reservations:    []Reservation{},
		Listings:        []Listing{},
		Applications:    []Application{},
		Collections:     []Collection{},
	}
}
