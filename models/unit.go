package models

import "github.com/rossostudios/puerta-abierta-sub004/utils"

type Unit struct {
	Id         string `json:"id"`
	PropertyId string `json:"property_id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
}

func UnitFromRecord(rec Record) Unit {
	return Unit{
		Id:         utils.RecordString(rec, "id"),
		PropertyId: utils.RecordString(rec, "property_id"),
		Code:       utils.RecordString(rec, "code"),
		Name:       utils.RecordString(rec, "name"),
	}
}

// Label is what operators see on unit cards: code, then name, then id.
func (u Unit) Label() string {
	if u.Code != "" {
		return u.Code
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Id
}
