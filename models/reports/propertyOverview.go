package reports

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rossostudios/puerta-abierta-sub004/models"
	"github.com/rossostudios/puerta-abierta-sub004/utils"
	"github.com/shopspring/decimal"
)

const (
	// Per-unit cards shown on the overview page.
	maxUnitCards = 6
	// Attention list is a triage surface, not an exhaustive list: at most
	// two items per category, most urgent category first.
	maxAttentionPerKind = 2
	maxAttentionItems   = 6
	// Leases ending within this many days count as expiring (inclusive).
	leaseExpiryWindowDays = 60
	// Expense category breakdown length.
	maxExpenseCategories = 3
)

type UnitCardTone string

const (
	UnitToneMaintenance UnitCardTone = "maintenance"
	UnitToneOccupied    UnitCardTone = "occupied"
	UnitToneVacant      UnitCardTone = "vacant"
)

type AttentionTone string

const (
	AttentionToneDanger  AttentionTone = "danger"
	AttentionToneWarning AttentionTone = "warning"
	AttentionToneInfo    AttentionTone = "info"
)

type PropertyOverviewData struct {
	PropertyId  string    `json:"property_id"`
	Locale      string    `json:"locale"`
	GeneratedAt time.Time `json:"generated_at"`

	UnitCount                int  `json:"unit_count"`
	ActiveLeaseCount         int  `json:"active_lease_count"`
	OccupancyRate            *int `json:"occupancy_rate"`
	OpenTaskCount            int  `json:"open_task_count"`
	ActiveReservationCount   int  `json:"active_reservation_count"`
	PublishedListingCount    int  `json:"published_listing_count"`
	PipelineApplicationCount int  `json:"pipeline_application_count"`
	OpenCollectionCount      int  `json:"open_collection_count"`

	MonthIncomePyg    decimal.Decimal `json:"month_income_pyg"`
	MonthExpensePyg   decimal.Decimal `json:"month_expense_pyg"`
	MonthNetPyg       decimal.Decimal `json:"month_net_pyg"`
	IncomeIsProjected bool            `json:"income_is_projected"`

	UnitCards            []UnitCard              `json:"unit_cards"`
	AttentionItems       []AttentionItem         `json:"attention_items"`
	ExpenseCategories    []ExpenseCategoryTotal  `json:"expense_categories"`
	LeasesExpiringSoon   []ExpiringLease         `json:"leases_expiring_soon"`
	LatestOwnerStatement *OwnerStatementSummary  `json:"latest_owner_statement"`
}

type UnitCard struct {
	UnitId           string          `json:"unit_id"`
	Label            string          `json:"label"`
	Tone             UnitCardTone    `json:"tone"`
	TenantName       string          `json:"tenant_name"`
	MonthlyRentPyg   decimal.Decimal `json:"monthly_rent_pyg"`
	LeaseEndsOn      *time.Time      `json:"lease_ends_on"`
	NextDueDate      *time.Time      `json:"next_due_date"`
	NextDueAmountPyg decimal.Decimal `json:"next_due_amount_pyg"`
	OpenTaskCount    int             `json:"open_task_count"`
}

type AttentionItem struct {
	Kind    string        `json:"kind"`
	Tone    AttentionTone `json:"tone"`
	Title   string        `json:"title"`
	Detail  string        `json:"detail"`
	Href    string        `json:"href"`
	Cta     string        `json:"cta"`
	DueDate *time.Time    `json:"due_date"`
}

type ExpenseCategoryTotal struct {
	Category string          `json:"category"`
	TotalPyg decimal.Decimal `json:"total_pyg"`
}

type ExpiringLease struct {
	LeaseId    string    `json:"lease_id"`
	UnitId     string    `json:"unit_id"`
	UnitLabel  string    `json:"unit_label"`
	TenantName string    `json:"tenant_name"`
	EndsOn     time.Time `json:"ends_on"`
	DaysLeft   int       `json:"days_left"`
}

type OwnerStatementSummary struct {
	StatementId string     `json:"statement_id"`
	PeriodEnd   *time.Time `json:"period_end"`
	Label       string     `json:"label"`
}

// BuildPropertyOverview turns a relation snapshot into the overview view
// model. Pure: same snapshot + same now => same output. It never fails;
// an empty snapshot produces a legitimate all-zero overview.
func BuildPropertyOverview(snapshot *models.PropertyRelationSnapshot, propertyId string, locale string, now time.Time) *PropertyOverviewData {
	if snapshot == nil {
		snapshot = models.EmptyPropertyRelationSnapshot()
	}
	labels := newLabelSet(locale)

	activeLeases := make([]models.Lease, 0, len(snapshot.Leases))
	for _, lease := range snapshot.Leases {
		if lease.IsActive() {
			activeLeases = append(activeLeases, lease)
		}
	}

	openTasks := make([]models.Task, 0, len(snapshot.Tasks))
	for _, task := range snapshot.Tasks {
		if task.IsOpen() {
			openTasks = append(openTasks, task)
		}
	}

	openCollections := make([]models.Collection, 0, len(snapshot.Collections))
	for _, collection := range snapshot.Collections {
		if collection.IsOpen() {
			openCollections = append(openCollections, collection)
		}
	}

	activeReservationCount := 0
	for _, reservation := range snapshot.Reservations {
		if reservation.IsActive() {
			activeReservationCount++
		}
	}

	publishedListingCount := 0
	for _, listing := range snapshot.Listings {
		if listing.IsPublished {
			publishedListingCount++
		}
	}

	pipelineApplicationCount := 0
	for _, application := range snapshot.Applications {
		if application.IsOpen() {
			pipelineApplicationCount++
		}
	}

	data := &PropertyOverviewData{
		PropertyId:  propertyId,
		Locale:      labels.tag,
		GeneratedAt: now,

		UnitCount:                len(snapshot.Units),
		ActiveLeaseCount:         len(activeLeases),
		OpenTaskCount:            len(openTasks),
		ActiveReservationCount:   activeReservationCount,
		PublishedListingCount:    publishedListingCount,
		PipelineApplicationCount: pipelineApplicationCount,
		OpenCollectionCount:      len(openCollections),

		UnitCards:          []UnitCard{},
		AttentionItems:     []AttentionItem{},
		ExpenseCategories:  []ExpenseCategoryTotal{},
		LeasesExpiringSoon: []ExpiringLease{},
	}

	currentLeaseByUnit := pickCurrentLeases(activeLeases)

	data.OccupancyRate = occupancyRate(snapshot.Units, currentLeaseByUnit)

	data.MonthIncomePyg, data.IncomeIsProjected = monthIncome(snapshot.Collections, activeLeases, now)
	data.MonthExpensePyg = monthExpenses(snapshot.Expenses, now)
	data.MonthNetPyg = data.MonthIncomePyg.Sub(data.MonthExpensePyg)

	data.UnitCards = buildUnitCards(snapshot.Units, currentLeaseByUnit, openTasks, openCollections, now)
	data.LeasesExpiringSoon = expiringLeases(activeLeases, snapshot.Units, now)
	data.AttentionItems = attentionItems(openCollections, openTasks, data.LeasesExpiringSoon, labels, now)
	data.ExpenseCategories = expenseCategoryBreakdown(snapshot.Expenses, now)
	data.LatestOwnerStatement = latestOwnerStatement(snapshot.OwnerStatements, labels)

	return data
}

// pickCurrentLeases resolves at most one current lease per unit. When a
// unit carries several active leases (a data anomaly upstream), the most
// recently started one wins; iteration order never decides.
func pickCurrentLeases(activeLeases []models.Lease) map[string]models.Lease {
	current := make(map[string]models.Lease)
	for _, lease := range activeLeases {
		if lease.UnitId == "" {
			continue
		}
		existing, ok := current[lease.UnitId]
		if !ok || lease.StartedAfter(existing) {
			current[lease.UnitId] = lease
		}
	}
	return current
}

func occupancyRate(units []models.Unit, currentLeaseByUnit map[string]models.Lease) *int {
	if len(units) == 0 {
		return nil
	}
	occupied := 0
	for _, unit := range units {
		if _, ok := currentLeaseByUnit[unit.Id]; ok {
			occupied++
		}
	}
	rate := int(math.Round(float64(occupied) / float64(len(units)) * 100))
	return &rate
}

// monthIncome sums collections that are paid this month or open and due
// this month. With no collection activity in the month it falls back to the
// projected rent of the active leases, which approximates expected income
// before any installments exist.
func monthIncome(collections []models.Collection, activeLeases []models.Lease, now time.Time) (decimal.Decimal, bool) {
	income := decimal.Zero
	for _, collection := range collections {
		if collection.IsPaid() && utils.SameMonth(collection.PaidAt, now) {
			income = income.Add(collection.AmountPyg())
			continue
		}
		if collection.IsOpen() && utils.SameMonth(collection.DueDate, now) {
			income = income.Add(collection.AmountPyg())
		}
	}
	if !income.IsZero() {
		return income, false
	}

	projected := decimal.Zero
	for _, lease := range activeLeases {
		projected = projected.Add(lease.MonthlyRentPyg())
	}
	return projected, !projected.IsZero()
}

func monthExpenses(expenses []models.Expense, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, expense := range expenses {
		if utils.SameMonth(expense.ExpenseDate, now) {
			total = total.Add(expense.AmountPyg())
		}
	}
	return total
}

func buildUnitCards(units []models.Unit, currentLeaseByUnit map[string]models.Lease, openTasks []models.Task, openCollections []models.Collection, now time.Time) []UnitCard {
	sorted := make([]models.Unit, len(units))
	copy(sorted, units)
	sort.Slice(sorted, func(i, j int) bool {
		li, lj := strings.ToLower(sorted[i].Label()), strings.ToLower(sorted[j].Label())
		if li != lj {
			return li < lj
		}
		return sorted[i].Id < sorted[j].Id
	})
	if len(sorted) > maxUnitCards {
		sorted = sorted[:maxUnitCards]
	}

	cards := make([]UnitCard, 0, len(sorted))
	for _, unit := range sorted {
		card := UnitCard{
			UnitId: unit.Id,
			Label:  unit.Label(),
			Tone:   UnitToneVacant,
		}

		unitNeedsMaintenance := false
		for _, task := range openTasks {
			if task.UnitId != unit.Id {
				continue
			}
			card.OpenTaskCount++
			if task.IsOverdue(now) || task.IsUrgent() {
				unitNeedsMaintenance = true
			}
		}

		if lease, ok := currentLeaseByUnit[unit.Id]; ok {
			card.Tone = UnitToneOccupied
			card.TenantName = lease.TenantName
			card.MonthlyRentPyg = lease.MonthlyRentPyg()
			card.LeaseEndsOn = lease.EndsOn

			// Earliest-due open installment of the current lease.
			for _, collection := range openCollections {
				if collection.LeaseId != lease.Id || collection.DueDate == nil {
					continue
				}
				if card.NextDueDate == nil || collection.DueDate.Before(*card.NextDueDate) {
					card.NextDueDate = collection.DueDate
					card.NextDueAmountPyg = collection.AmountPyg()
				}
			}
		}

		if unitNeedsMaintenance {
			card.Tone = UnitToneMaintenance
		}

		cards = append(cards, card)
	}
	return cards
}

func expiringLeases(activeLeases []models.Lease, units []models.Unit, now time.Time) []ExpiringLease {
	labelByUnit := make(map[string]string, len(units))
	for _, unit := range units {
		labelByUnit[unit.Id] = unit.Label()
	}

	expiring := []ExpiringLease{}
	for _, lease := range activeLeases {
		if lease.EndsOn == nil {
			continue
		}
		days := utils.DaysUntil(now, *lease.EndsOn)
		// Inclusive at the window edge: exactly 60 days out still counts.
		if days < 0 || days > leaseExpiryWindowDays {
			continue
		}
		expiring = append(expiring, ExpiringLease{
			LeaseId:    lease.Id,
			UnitId:     lease.UnitId,
			UnitLabel:  labelByUnit[lease.UnitId],
			TenantName: lease.TenantName,
			EndsOn:     *lease.EndsOn,
			DaysLeft:   days,
		})
	}
	sort.Slice(expiring, func(i, j int) bool {
		if !expiring[i].EndsOn.Equal(expiring[j].EndsOn) {
			return expiring[i].EndsOn.Before(expiring[j].EndsOn)
		}
		return expiring[i].LeaseId < expiring[j].LeaseId
	})
	return expiring
}

func attentionItems(openCollections []models.Collection, openTasks []models.Task, expiring []ExpiringLease, labels labelSet, now time.Time) []AttentionItem {
	items := []AttentionItem{}

	overdue := make([]models.Collection, 0, len(openCollections))
	for _, collection := range openCollections {
		if collection.IsOverdue(now) {
			overdue = append(overdue, collection)
		}
	}
	sort.Slice(overdue, func(i, j int) bool {
		if !overdue[i].DueDate.Equal(*overdue[j].DueDate) {
			return overdue[i].DueDate.Before(*overdue[j].DueDate)
		}
		return overdue[i].Id < overdue[j].Id
	})
	for i, collection := range overdue {
		if i >= maxAttentionPerKind {
			break
		}
		items = append(items, AttentionItem{
			Kind:    "collection_overdue",
			Tone:    AttentionToneDanger,
			Title:   labels.pick("Overdue payment", "Pago vencido"),
			Detail:  fmt.Sprintf("%s · %s", utils.FormatPyg(collection.AmountPyg()), labels.dateLabel(*collection.DueDate)),
			Href:    "/app/collections/" + collection.Id,
			Cta:     labels.pick("Record payment", "Registrar pago"),
			DueDate: collection.DueDate,
		})
	}

	urgent := make([]models.Task, 0, len(openTasks))
	for _, task := range openTasks {
		if task.IsOverdue(now) || task.IsUrgent() {
			urgent = append(urgent, task)
		}
	}
	sort.Slice(urgent, func(i, j int) bool {
		di, dj := urgent[i].DueAt, urgent[j].DueAt
		switch {
		case di == nil && dj == nil:
			return urgent[i].Id < urgent[j].Id
		case di == nil:
			return false
		case dj == nil:
			return true
		case di.Equal(*dj):
			return urgent[i].Id < urgent[j].Id
		default:
			return di.Before(*dj)
		}
	})
	for i, task := range urgent {
		if i >= maxAttentionPerKind {
			break
		}
		title := task.Title
		if title == "" {
			title = labels.pick("Open task", "Tarea abierta")
		}
		detail := labels.pick("No due date", "Sin fecha límite")
		if task.DueAt != nil {
			detail = labels.pick("Due ", "Vence ") + labels.dateLabel(*task.DueAt)
		}
		items = append(items, AttentionItem{
			Kind:    "task_attention",
			Tone:    AttentionToneWarning,
			Title:   title,
			Detail:  detail,
			Href:    "/app/tasks/" + task.Id,
			Cta:     labels.pick("Review task", "Revisar tarea"),
			DueDate: task.DueAt,
		})
	}

	for i, lease := range expiring {
		if i >= maxAttentionPerKind {
			break
		}
		parts := []string{}
		if lease.UnitLabel != "" {
			parts = append(parts, lease.UnitLabel)
		}
		if lease.TenantName != "" {
			parts = append(parts, lease.TenantName)
		}
		endsOn := lease.EndsOn
		parts = append(parts, labels.dateLabel(endsOn))
		items = append(items, AttentionItem{
			Kind:    "lease_expiring",
			Tone:    AttentionToneInfo,
			Title:   labels.pick("Lease ending soon", "Contrato por vencer"),
			Detail:  strings.Join(parts, " · "),
			Href:    "/app/leases/" + lease.LeaseId,
			Cta:     labels.pick("Renew lease", "Renovar contrato"),
			DueDate: &endsOn,
		})
	}

	if len(items) > maxAttentionItems {
		items = items[:maxAttentionItems]
	}
	return items
}

func expenseCategoryBreakdown(expenses []models.Expense, now time.Time) []ExpenseCategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, expense := range expenses {
		if !utils.SameMonth(expense.ExpenseDate, now) {
			continue
		}
		key := expense.CategoryKey()
		totals[key] = totals[key].Add(expense.AmountPyg())
	}

	breakdown := make([]ExpenseCategoryTotal, 0, len(totals))
	for category, total := range totals {
		breakdown = append(breakdown, ExpenseCategoryTotal{Category: category, TotalPyg: total})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].TotalPyg.Equal(breakdown[j].TotalPyg) {
			return breakdown[i].TotalPyg.GreaterThan(breakdown[j].TotalPyg)
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	if len(breakdown) > maxExpenseCategories {
		breakdown = breakdown[:maxExpenseCategories]
	}
	return breakdown
}

func latestOwnerStatement(statements []models.OwnerStatement, labels labelSet) *OwnerStatementSummary {
	var latest *models.OwnerStatement
	for i := range statements {
		date := statements[i].RecencyDate()
		if date == nil {
			continue
		}
		if latest == nil || date.After(*latest.RecencyDate()) {
			latest = &statements[i]
		}
	}
	if latest == nil {
		return nil
	}
	label := ""
	if d := latest.RecencyDate(); d != nil {
		label = labels.dateLabel(*d)
	}
	return &OwnerStatementSummary{
		StatementId: latest.Id,
		PeriodEnd:   latest.PeriodEnd,
		Label:       label,
	}
}
