package models

import "github.com/rossostudios/puerta-abierta-sub004/utils"

// Application is a marketplace inquiry against a listing.
type Application struct {
	Id            string `json:"id"`
	ListingId     string `json:"listing_id"`
	Status        string `json:"status"`
	ApplicantName string `json:"applicant_name"`
}

func ApplicationFromRecord(rec Record) Application {
	return Application{
		Id:            utils.RecordString(rec, "id"),
		ListingId:     utils.RecordString(rec, "listing_id"),
		Status:        utils.RecordString(rec, "status"),
		ApplicantName: utils.RecordString(rec, "applicant_name", "name"),
	}
}

func (a Application) IsOpen() bool {
	return IsApplicationOpen(a.Status)
}
