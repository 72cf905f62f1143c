package reports_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rossostudios/puerta-abierta-sub004/models"
	"github.com/rossostudios/puerta-abierta-sub004/models/reports"
	"github.com/shopspring/decimal"
)

var frozenNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func pyg(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}

func TestBuildPropertyOverview_EmptySnapshot(t *testing.T) {
	data := reports.BuildPropertyOverview(models.EmptyPropertyRelationSnapshot(), "prop-1", "es-PY", frozenNow)

	if data.UnitCount != 0 || data.ActiveLeaseCount != 0 || data.OpenTaskCount != 0 {
		t.Fatalf("empty snapshot should produce zero counts, got %+v", data)
	}
	if data.OccupancyRate != nil {
		t.Fatalf("occupancy rate must be nil with zero units, got %d", *data.OccupancyRate)
	}
	if !data.MonthIncomePyg.IsZero() || !data.MonthExpensePyg.IsZero() || !data.MonthNetPyg.IsZero() {
		t.Fatalf("empty snapshot should produce zero money, got income=%s expense=%s net=%s",
			data.MonthIncomePyg, data.MonthExpensePyg, data.MonthNetPyg)
	}
	if data.IncomeIsProjected {
		t.Fatalf("zero income must not be marked projected")
	}
	if len(data.UnitCards) != 0 || len(data.AttentionItems) != 0 || len(data.ExpenseCategories) != 0 {
		t.Fatalf("empty snapshot should produce empty lists")
	}
	if data.LatestOwnerStatement != nil {
		t.Fatalf("expected no owner statement, got %+v", data.LatestOwnerStatement)
	}

	// Slices serialize as [] rather than null so the frontend never
	// branches on missing keys.
	out, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if bytes.Contains(out, []byte(`"unit_cards":null`)) {
		t.Fatalf("unit_cards serialized as null: %s", out)
	}
	if !bytes.Contains(out, []byte(`"occupancy_rate":null`)) {
		t.Fatalf("occupancy_rate should serialize as null: %s", out)
	}
}

func TestBuildPropertyOverview_NilSnapshotIsEmpty(t *testing.T) {
	data := reports.BuildPropertyOverview(nil, "prop-1", "en-US", frozenNow)
	if data.UnitCount != 0 || data.OccupancyRate != nil {
		t.Fatalf("nil snapshot should behave like empty, got %+v", data)
	}
}

func TestBuildPropertyOverview_ProjectedRentFallback(t *testing.T) {
	snapshot := models.EmptyPropertyRelationSnapshot()
	snapshot.Units = []models.Unit{{Id: "u1", Code: "A-101"}}
	snapshot.Leases = []models.Lease{{
		Id:          "l1",
		UnitId:      "u1",
		Status:      "active",
		TenantName:  "María González",
		MonthlyRent: pyg(1000000),
		Currency:    "PYG",
		StartsOn:    datePtr(2025, 1, 1),
	}}

	data := reports.BuildPropertyOverview(snapshot, "prop-1", "es-PY", frozenNow)

	if !data.MonthIncomePyg.Equal(pyg(1000000)) {
		t.Fatalf("expected projected income 1000000, got %s", data.MonthIncomePyg)
	}
	if !data.IncomeIsProjected {
		t.Fatalf("income should be flagged as projected when no collections exist")
	}
	if data.OccupancyRate == nil || *data.OccupancyRate != 100 {
		t.Fatalf("expected occupancy 100, got %v", data.OccupancyRate)
	}
	if data.ActiveLeaseCount != 1 {
		t.Fatalf("expected 1 active lease, got %d", data.ActiveLeaseCount)
	}
}

func TestBuildPropertyOverview_CollectionIncomeBeatsProjection(t *testing.T) {
	snapshot := models.EmptyPropertyRelationSnapshot()
	snapshot.Leases = []models.Lease{{
		Id: "l1", UnitId: "u1", Status: "active", MonthlyRent: pyg(9000000), Currency: "PYG",
	}}
	snapshot.Collections = []models.Collection{
		// Paid inside the month.
		{Id: "c1", LeaseId: "l1", Status: "paid", Amount: pyg(500000), PaidAt: datePtr(2025, 3, 5)},
		// Open and due inside the month.
		{Id: "c2", LeaseId: "l1", Status: "pending", Amount: pyg(300000), DueDate: datePtr(2025, 3, 28)},
		// Open but due next month: excluded.
		{Id: "c3", LeaseId: "l1", Status: "pending", Amount: pyg(700000), DueDate: datePtr(2025, 4, 1)},
		// Paid in a previous month: excluded.
		{Id: "c4", LeaseId: "l1", Status: "paid", Amount: pyg(400000), PaidAt: datePtr(2025, 2, 5)},
	}

	data := reports.BuildPropertyOverview(snapshot, "prop-1", "es-PY", frozenNow)

	if !data.MonthIncomePyg.Equal(pyg(800000)) {
		t.Fatalf("expected month income 800000, got %s", data.MonthIncomePyg)
	}
	if data.IncomeIsProjected {
		t.Fatalf("real collection activity must not be flagged projected")
	}
}

func TestBuildPropertyOverview_MonthNetAndExpenseBreakdown(t *testing.T) {
	snapshot := models.EmptyPropertyRelationSnapshot()
	snapshot.Collections = []models.Collection{
		{Id: "c1", Status: "paid", Amount: pyg(2000000), PaidAt: datePtr(2025, 3, 10)},
	}
	snapshot.Expenses = []models.Expense{
		{Id: "e1", Amount: pyg(300000), Category: "Maintenance", ExpenseDate: datePtr(2025, 3, 2)},
		{Id: "e2", Amount: pyg(200000), Category: "maintenance", ExpenseDate: datePtr(2025, 3, 9)},
		{Id: "e3", Amount: pyg(450000), Category: "utilities", ExpenseDate: datePtr(2025, 3, 12)},
		{Id: "e4", Amount: pyg(100000), Category: "", ExpenseDate: datePtr(2025, 3, 14)},
		{Id: "e5", Amount: pyg(90000), Category: "insurance", ExpenseDate: datePtr(2025, 3, 14)},
		// Previous month: excluded everywhere.
		{Id: "e6", Amount: pyg(9999999), Category: "utilities", ExpenseDate: datePtr(2025, 2, 12)},
	}

	data := reports.BuildPropertyOverview(snapshot, "prop-1", "es-PY", frozenNow)

	if !data.MonthExpensePyg.Equal(pyg(1140000)) {
		t.Fatalf("expected month expenses 1140000, got %s", data.MonthExpensePyg)
	}
	if !data.MonthNetPyg.Equal(pyg(860000)) {
		t.Fatalf("expected month net 860000, got %s", data.MonthNetPyg)
	}

	// Top 3 categories by total, case-folded, uncategorized bucketed as
	// "other". insurance (90000) falls off.
	if len(data.ExpenseCategories) != 3 {
		t.Fatalf("expected 3 expense categories, got %d", len(data.ExpenseCategories))
	}
	expected := []struct {
		category string
		total    int64
	}{
		{"maintenance", 500000},
		{"utilities", 450000},
		{"other", 100000},
	}
	for i, exp := range expected {
		got := data.ExpenseCategories[i]
		if got.Category != exp.category || !got.TotalPyg.Equal(pyg(exp.total)) {
			t.Fatalf("category %d: expected %s=%d, got %s=%s", i, exp.category, exp.total, got.Category, got.TotalPyg)
		}
	}
}

func TestBuildPropertyOverview_OccupancyRounding(t *testing.T) {
	snapshot := models.EmptyPropertyRelationSnapshot()
	snapshot.Units = []models.Unit{{Id: "u1"}, {Id: "u2"}, {Id: "u3"}}
	snapshot.Leases = []models.Lease{{Id: "l1", UnitId: "u1", Status: "active"}}

	data := reports.BuildPropertyOverview(snapshot, "prop-1", "es-PY", frozenNow)
	if data.OccupancyRate == nil || *data.OccupancyRate != 33 {
		t.Fatalf("expected occupancy 33, got %v", data.OccupancyRate)
	}
}

func TestBuildPropertyOverview_UnitCardsTopSixSortedAndToned(t *testing.T) {
	snapshot := models.EmptyPropertyRelationSnapshot()
	snapshot.Units = []models.Unit{
		{Id: "u7", Code: "G-7"},
		{Id: "u2", Code: "B-2"},
		{Id: "u1", Code: "A-1"},
		{Id: "u5", Code: "E-5"},
		{Id: "u4", Code: "D-4"},
		{Id: "u3", Code: "C-3"},
		{Id: "u6", Code: "F-6"},
	}
	snapshot.Leases = []models.Lease{
		{Id: "l1", UnitId: "u1", Status: "active", TenantName: "Carlos Duarte", MonthlyRent: pyg(2500000), Currency: "PYG", EndsOn: datePtr(2025, 12, 31)},
		{Id: "l2", UnitId: "u2", Status: "active", TenantName: "Ana Benítez", MonthlyRent: pyg(1800000), Currency: "PYG"},
	}
	snapshot.Tasks = []models.Task{
		// Urgent open task flips u2 to maintenance even though it is leased.
		{Id: "t1", UnitId: "u2", Status: "open", Priority: "high"},
		// Non-urgent, not overdue: counts but does not change tone.
		{Id: "t2", UnitId: "u1", Status: "open", Priority: "low", DueAt: datePtr(2025, 4, 20)},
		// Closed task: ignored entirely.
		{Id: "t3", UnitId: "u3", Status: "done", Priority: "high"},
	}
	snapshot.Collections = []models.Collection{
		{Id: "c1", LeaseId: "l1", Status: "pending", Amount: pyg(2500000), DueDate: datePtr(2025, 4, 1)},
		{Id: "c2", LeaseId: "l1", Status: "pending", Amount: pyg(2400000), DueDate: datePtr(2025, 3, 20)},
	}

	data := reports.BuildPropertyOverview(snapshot, "prop-1", "es-PY", frozenNow)

	if len(data.UnitCards) != 6 {
		t.Fatalf("expected 6 unit cards out of 7 units, got %d", len(data.UnitCards))
	}
	labels := make([]string, 0, len(data.UnitCards))
	for _, card := range data.UnitCards {
		labels = append(labels, card.Label)
	}
	expectedOrder := []string{"A-1", "B-2", "C-3", "D-4", "E-5", "F-6"}
	for i, want := range expectedOrder {
		if labels[i] != want {
			t.Fatalf("card order: expected %v, got %v", expectedOrder, labels)
		}
	}

	a1 := data.UnitCards[0]
	if a1.Tone != reports.UnitToneOccupied {
		t.Fatalf("A-1 should be occupied, got %s", a1.Tone)
	}
	if a1.TenantName != "Carlos Duarte" || !a1.MonthlyRentPyg.Equal(pyg(2500000)) {
		t.Fatalf("A-1 lease details wrong: %+v", a1)
	}
	if a1.OpenTaskCount != 1 {
		t.Fatalf("A-1 open task count expected 1, got %d", a1.OpenTaskCount)
	}
	if a1.NextDueDate == nil || !a1.NextDueDate.Equal(*datePtr(2025, 3, 20)) || !a1.NextDueAmountPyg.Equal(pyg(2400000)) {
		t.Fatalf("A-1 next due should be the earliest open installment, got %+v", a1)
	}

	if data.UnitCards[1].Tone != reports.UnitToneMaintenance {
		t.Fatalf("B-2 should be maintenance (urgent open task), got %s", data.UnitCards[1].Tone)
	}
	if data.UnitCards[2].Tone != reports.UnitToneVacant {
		t.Fatalf("C-3 should be vacant, got %s", data.UnitCards[2].Tone)
	}
}

func TestBuildPropertyOverview_MostRecentLeaseWinsPerUnit(t *testing.T) {
	snapshot := models.EmptyPropertyRelationSnapshot()
	snapshot.Units = []models.Unit{{Id: "u1", Code: "A-1"}}
	snapshot.Leases = []models.Lease{
		{Id: "l-old", UnitId: "u1", Status: "active", TenantName: "Old Tenant", StartsOn: datePtr(2023, 1, 1)},
		{Id: "l-new", UnitId: "u1", Status: "active", TenantName: "New Tenant", StartsOn: datePtr(2025, 1, 1)},
		{Id: "l-undated", UnitId: "u1", Status: "active", TenantName: "Undated Tenant"},
	}

	data := reports.BuildPropertyOverview(snapshot, "prop-1", "es-PY", frozenNow)
	if len(data.UnitCards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(data.UnitCards))
	}
	if data.UnitCards[0].TenantName != "New Tenant" {
		t.Fatalf("most recently started lease should win, got tenant %q", data.UnitCards[0].TenantName)
	}
}

func TestBuildPropertyOverview_LeaseExpiryWindowBoundary(t *testing.T) {
	snapshot := models.EmptyPropertyRelationSnapshot()
	snapshot.Units = []models.Unit{{Id: "u1", Code: "A-1"}, {Id: "u2", Code: "B-2"}, {Id: "u3", Code: "C-3"}}
	in60 := frozenNow.AddDate(0, 0, 60)
	in61 := frozenNow.AddDate(0, 0, 61)
	ended := frozenNow.AddDate(0, 0, -1)
	snapshot.Leases = []models.Lease{
		{Id: "l1", UnitId: "u1", Status: "active", TenantName: "Edge", EndsOn: &in60},
		{Id: "l2", UnitId: "u2", Status: "active", TenantName: "Beyond", EndsOn: &in61},
		{Id: "l3", UnitId: "u3", Status: "active", TenantName: "Past", EndsOn: &ended},
	}

	data := reports.BuildPropertyOverview(snapshot, "prop-1", "es-PY", frozenNow)

	if len(data.LeasesExpiringSoon) != 1 {
		t.Fatalf("expected exactly 1 expiring lease, got %d", len(data.LeasesExpiringSoon))
	}
	got := data.LeasesExpiringSoon[0]
	if got.LeaseId != "l1" || got.DaysLeft != 60 {
		t.Fatalf("expected l1 at 60 days, got %+v", got)
	}
}

func TestBuildPropertyOverview_AttentionTriageOrderAndCaps(t *testing.T) {
	snapshot := models.EmptyPropertyRelationSnapshot()
	snapshot.Collections = []models.Collection{
		{Id: "c2", Status: "overdue", Amount: pyg(900000), DueDate: datePtr(2025, 3, 10)},
		{Id: "c1", Status: "late", Amount: pyg(800000), DueDate: datePtr(2025, 3, 1)},
		{Id: "c3", Status: "pending", Amount: pyg(700000), DueDate: datePtr(2025, 3, 12)},
	}
	snapshot.Tasks = []models.Task{
		{Id: "t1", Status: "open", Priority: "high", Title: "Fix boiler", DueAt: datePtr(2025, 3, 20)},
		{Id: "t2", Status: "open", Priority: "urgent", Title: "Leak in A-1", DueAt: datePtr(2025, 3, 18)},
		{Id: "t3", Status: "open", Priority: "critical", Title: "Gate broken"},
	}

	data := reports.BuildPropertyOverview(snapshot, "prop-1", "es-PY", frozenNow)

	// 3 overdue collections cap to 2, 3 urgent tasks cap to 2, no leases.
	if len(data.AttentionItems) != 4 {
		t.Fatalf("expected 4 attention items, got %d", len(data.AttentionItems))
	}

	first := data.AttentionItems[0]
	if first.Kind != "collection_overdue" || first.Tone != reports.AttentionToneDanger {
		t.Fatalf("first item should be an overdue collection, got %+v", first)
	}
	if first.Href != "/app/collections/c1" {
		t.Fatalf("overdue collections should order by earliest due date, got %s", first.Href)
	}
	if data.AttentionItems[1].Href != "/app/collections/c2" {
		t.Fatalf("second item should be c2, got %s", data.AttentionItems[1].Href)
	}

	third := data.AttentionItems[2]
	if third.Kind != "task_attention" || third.Tone != reports.AttentionToneWarning {
		t.Fatalf("third item should be a task, got %+v", third)
	}
	// Dated urgent tasks come before undated ones.
	if third.Href != "/app/tasks/t2" || data.AttentionItems[3].Href != "/app/tasks/t1" {
		t.Fatalf("tasks should order by due date with undated last, got %s then %s",
			third.Href, data.AttentionItems[3].Href)
	}
}

func TestBuildPropertyOverview_AttentionCapAtSix(t *testing.T) {
	snapshot := models.EmptyPropertyRelationSnapshot()
	snapshot.Units = []models.Unit{{Id: "u1"}, {Id: "u2"}, {Id: "u3"}}
	for i, id := range []string{"c1", "c2", "c3"} {
		snapshot.Collections = append(snapshot.Collections, models.Collection{
			Id: id, Status: "overdue", Amount: pyg(100000), DueDate: datePtr(2025, 3, 1+i),
		})
	}
	for i, id := range []string{"t1", "t2", "t3"} {
		snapshot.Tasks = append(snapshot.Tasks, models.Task{
			Id: id, Status: "open", Priority: "high", DueAt: datePtr(2025, 3, 20+i),
		})
	}
	for i, unit := range []string{"u1", "u2", "u3"} {
		ends := frozenNow.AddDate(0, 0, 10+i)
		snapshot.Leases = append(snapshot.Leases, models.Lease{
			Id: "l" + unit, UnitId: unit, Status: "active", EndsOn: &ends,
		})
	}

	data := reports.BuildPropertyOverview(snapshot, "prop-1", "es-PY", frozenNow)

	if len(data.AttentionItems) != 6 {
		t.Fatalf("expected attention cap of 6, got %d", len(data.AttentionItems))
	}
	kinds := map[string]int{}
	for _, item := range data.AttentionItems {
		kinds[item.Kind]++
	}
	if kinds["collection_overdue"] != 2 || kinds["task_attention"] != 2 || kinds["lease_expiring"] != 2 {
		t.Fatalf("expected 2 items per kind, got %v", kinds)
	}
}

func TestBuildPropertyOverview_LatestOwnerStatement(t *testing.T) {
	snapshot := models.EmptyPropertyRelationSnapshot()
	snapshot.OwnerStatements = []models.OwnerStatement{
		{Id: "s1", PeriodEnd: datePtr(2025, 1, 31)},
		{Id: "s2", PeriodEnd: datePtr(2025, 2, 28)},
		// Draft without a closed period: falls back to generated_at.
		{Id: "s3", GeneratedAt: datePtr(2025, 2, 10)},
	}

	data := reports.BuildPropertyOverview(snapshot, "prop-1", "es-PY", frozenNow)
	if data.LatestOwnerStatement == nil || data.LatestOwnerStatement.StatementId != "s2" {
		t.Fatalf("expected latest statement s2, got %+v", data.LatestOwnerStatement)
	}
}

func TestBuildPropertyOverview_LocaleLabels(t *testing.T) {
	snapshot := models.EmptyPropertyRelationSnapshot()
	snapshot.Collections = []models.Collection{
		{Id: "c1", Status: "overdue", Amount: pyg(100000), DueDate: datePtr(2025, 3, 1)},
	}

	es := reports.BuildPropertyOverview(snapshot, "prop-1", "es-PY", frozenNow)
	if es.Locale != "es-PY" || es.AttentionItems[0].Title != "Pago vencido" {
		t.Fatalf("expected Spanish labels, got locale=%s title=%q", es.Locale, es.AttentionItems[0].Title)
	}

	en := reports.BuildPropertyOverview(snapshot, "prop-1", "en-US", frozenNow)
	if en.Locale != "en-US" || en.AttentionItems[0].Title != "Overdue payment" {
		t.Fatalf("expected English labels, got locale=%s title=%q", en.Locale, en.AttentionItems[0].Title)
	}

	// Unknown locales fall back to es-PY.
	fallback := reports.BuildPropertyOverview(snapshot, "prop-1", "pt-BR", frozenNow)
	if fallback.Locale != "es-PY" {
		t.Fatalf("expected unknown locale to fall back to es-PY, got %s", fallback.Locale)
	}
}

func TestBuildPropertyOverview_Deterministic(t *testing.T) {
	snapshot := models.EmptyPropertyRelationSnapshot()
	snapshot.Units = []models.Unit{{Id: "u1", Code: "A-1"}, {Id: "u2", Code: "B-2"}}
	snapshot.Leases = []models.Lease{
		{Id: "l1", UnitId: "u1", Status: "active", MonthlyRent: pyg(1500000), Currency: "PYG", EndsOn: datePtr(2025, 4, 30)},
	}
	snapshot.Tasks = []models.Task{{Id: "t1", Status: "open", Priority: "high"}}
	snapshot.Expenses = []models.Expense{
		{Id: "e1", Amount: pyg(200000), Category: "repairs", ExpenseDate: datePtr(2025, 3, 3)},
		{Id: "e2", Amount: pyg(200000), Category: "cleaning", ExpenseDate: datePtr(2025, 3, 4)},
	}

	first, err := json.Marshal(reports.BuildPropertyOverview(snapshot, "prop-1", "es-PY", frozenNow))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	second, err := json.Marshal(reports.BuildPropertyOverview(snapshot, "prop-1", "es-PY", frozenNow))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("overview is not deterministic:\n%s\n%s", first, second)
	}
}
