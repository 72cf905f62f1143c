package coreapi

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"github.com/rossostudios/puerta-abierta-sub004/config"
	"github.com/rossostudios/puerta-abierta-sub004/models"
)

// LoadPropertyRelationSnapshot issues the nine scoped list requests
// concurrently and assembles the in-memory snapshot the overview builder
// consumes.
//
// Units, tasks, expenses, owner statements and leases support property
// scoping on the backend. Reservations, listings, applications and
// collections only support org scoping, so those four are narrowed here:
// reservations and listings by property_id, applications through the
// property's listing set, collections through the property's lease set.
func (c *Client) LoadPropertyRelationSnapshot(ctx context.Context, orgId string, propertyId string) *models.PropertyRelationSnapshot {
	limit := strconv.Itoa(config.CoreApiListLimit())

	propertyScoped := func() url.Values {
		return url.Values{
			"org_id":      {orgId},
			"property_id": {propertyId},
			"limit":       {limit},
		}
	}
	orgScoped := func() url.Values {
		return url.Values{
			"org_id": {orgId},
			"limit":  {limit},
		}
	}

	var (
		rawUnits        []models.Record
		rawTasks        []models.Record
		rawExpenses     []models.Record
		rawStatements   []models.Record
		rawLeases       []models.Record
		rawReservations []models.Record
		rawListings     []models.Record
		rawApplications []models.Record
		rawCollections  []models.Record
	)

	// Fan out; each fetch owns its slot, so no locking is needed. Failed
	// fetches leave a nil slice behind and the coercion loops below turn
	// that into an empty collection.
	var wg sync.WaitGroup
	fetch := func(dst *[]models.Record, path string, params url.Values) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			*dst = c.fetchList(ctx, path, params)
		}()
	}

	fetch(&rawUnits, "/units", propertyScoped())
	fetch(&rawTasks, "/tasks", propertyScoped())
	fetch(&rawExpenses, "/expenses", propertyScoped())
	fetch(&rawStatements, "/owner-statements", propertyScoped())
	fetch(&rawLeases, "/leases", propertyScoped())
	fetch(&rawReservations, "/reservations", orgScoped())
	fetch(&rawListings, "/listings", orgScoped())
	fetch(&rawApplications, "/applications", orgScoped())
	fetch(&rawCollections, "/collections", orgScoped())
	wg.Wait()

	snapshot := models.EmptyPropertyRelationSnapshot()

	for _, rec := range rawUnits {
		snapshot.Units = append(snapshot.Units, models.UnitFromRecord(rec))
	}
	for _, rec := range rawTasks {
		snapshot.Tasks = append(snapshot.Tasks, models.TaskFromRecord(rec))
	}
	for _, rec := range rawExpenses {
		snapshot.Expenses = append(snapshot.Expenses, models.ExpenseFromRecord(rec))
	}
	for _, rec := range rawStatements {
		snapshot.OwnerStatements = append(snapshot.OwnerStatements, models.OwnerStatementFromRecord(rec))
	}
	for _, rec := range rawLeases {
		snapshot.Leases = append(snapshot.Leases, models.LeaseFromRecord(rec))
	}

	for _, rec := range rawReservations {
		reservation := models.ReservationFromRecord(rec)
		if reservation.PropertyId == propertyId {
			snapshot.Reservations = append(snapshot.Reservations, reservation)
		}
	}

	listingIds := make(map[string]bool)
	for _, rec := range rawListings {
		listing := models.ListingFromRecord(rec)
		if listing.PropertyId == propertyId {
			snapshot.Listings = append(snapshot.Listings, listing)
			listingIds[listing.Id] = true
		}
	}

	for _, rec := range rawApplications {
		application := models.ApplicationFromRecord(rec)
		if listingIds[application.ListingId] {
			snapshot.Applications = append(snapshot.Applications, application)
		}
	}

	leaseIds := make(map[string]bool)
	for _, lease := range snapshot.Leases {
		if lease.Id != "" {
			leaseIds[lease.Id] = true
		}
	}
	for _, rec := range rawCollections {
		collection := models.CollectionFromRecord(rec)
		if leaseIds[collection.LeaseId] {
			snapshot.Collections = append(snapshot.Collections, collection)
		}
	}

	return snapshot
}
