package models

import "github.com/rossostudios/puerta-abierta-sub004/utils"

type Listing struct {
	Id          string `json:"id"`
	PropertyId  string `json:"property_id"`
	Title       string `json:"title"`
	IsPublished bool   `json:"is_published"`
}

func ListingFromRecord(rec Record) Listing {
	return Listing{
		Id:          utils.RecordString(rec, "id"),
		PropertyId:  utils.RecordString(rec, "property_id"),
		Title:       utils.RecordString(rec, "title", "name"),
		IsPublished: utils.RecordBool(rec, "is_published"),
	}
}
