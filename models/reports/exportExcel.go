package reports

import (
	"fmt"

	"github.com/rossostudios/puerta-abierta-sub004/utils"
	"github.com/xuri/excelize/v2"
)

const overviewSheet = "Overview"

// BuildOverviewWorkbook renders a property overview into an XLSX workbook
// for owners who want the dashboard numbers offline. Amounts are exported
// as raw PYG numbers; formatting is left to the spreadsheet.
func BuildOverviewWorkbook(data *PropertyOverviewData) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(overviewSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	labels := newLabelSet(data.Locale)

	row := 1
	setRow := func(a string, b any) {
		f.SetCellValue(overviewSheet, fmt.Sprintf("A%d", row), a)
		f.SetCellValue(overviewSheet, fmt.Sprintf("B%d", row), b)
		row++
	}

	setRow(labels.pick("Property", "Propiedad"), data.PropertyId)
	setRow(labels.pick("Generated at", "Generado el"), labels.dateLabel(data.GeneratedAt))
	setRow(labels.pick("Units", "Unidades"), data.UnitCount)
	setRow(labels.pick("Active leases", "Contratos activos"), data.ActiveLeaseCount)
	if data.OccupancyRate != nil {
		setRow(labels.pick("Occupancy %", "Ocupación %"), *data.OccupancyRate)
	} else {
		setRow(labels.pick("Occupancy %", "Ocupación %"), "-")
	}
	setRow(labels.pick("Open tasks", "Tareas abiertas"), data.OpenTaskCount)
	setRow(labels.pick("Month income (PYG)", "Ingresos del mes (PYG)"), data.MonthIncomePyg.InexactFloat64())
	setRow(labels.pick("Month expenses (PYG)", "Gastos del mes (PYG)"), data.MonthExpensePyg.InexactFloat64())
	setRow(labels.pick("Month net (PYG)", "Neto del mes (PYG)"), data.MonthNetPyg.InexactFloat64())
	if data.IncomeIsProjected {
		setRow(labels.pick("Income is projected", "Ingresos proyectados"), "yes")
	}

	row++
	f.SetCellValue(overviewSheet, fmt.Sprintf("A%d", row), labels.pick("Attention items", "Puntos de atención"))
	row++
	for _, item := range data.AttentionItems {
		f.SetCellValue(overviewSheet, fmt.Sprintf("A%d", row), string(item.Tone))
		f.SetCellValue(overviewSheet, fmt.Sprintf("B%d", row), item.Title)
		f.SetCellValue(overviewSheet, fmt.Sprintf("C%d", row), item.Detail)
		row++
	}

	row++
	f.SetCellValue(overviewSheet, fmt.Sprintf("A%d", row), labels.pick("Units", "Unidades"))
	row++
	for _, card := range data.UnitCards {
		f.SetCellValue(overviewSheet, fmt.Sprintf("A%d", row), card.Label)
		f.SetCellValue(overviewSheet, fmt.Sprintf("B%d", row), string(card.Tone))
		f.SetCellValue(overviewSheet, fmt.Sprintf("C%d", row), card.TenantName)
		f.SetCellValue(overviewSheet, fmt.Sprintf("D%d", row), card.MonthlyRentPyg.InexactFloat64())
		f.SetCellValue(overviewSheet, fmt.Sprintf("E%d", row), card.OpenTaskCount)
		row++
	}

	row++
	f.SetCellValue(overviewSheet, fmt.Sprintf("A%d", row), labels.pick("Expenses by category", "Gastos por categoría"))
	row++
	for _, cat := range data.ExpenseCategories {
		f.SetCellValue(overviewSheet, fmt.Sprintf("A%d", row), cat.Category)
		f.SetCellValue(overviewSheet, fmt.Sprintf("B%d", row), utils.FormatPyg(cat.TotalPyg))
		row++
	}

	return f, nil
}
