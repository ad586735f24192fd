package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"c3track/internal"
)

// ExportOutcomesToXLSX writes one row per extracted record for operations
// review; the PO list is comma-joined like the board destination.
func ExportOutcomesToXLSX(outcomes []internal.ItemOutcome, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"item_id", "appointment_number", "client", "consignee",
		"appointment_date_time", "c3_response", "po_numbers", "row_type",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, outcome := range outcomes {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, outcome.ItemID)
		set(2, derefString(outcome.AppointmentNumber))
		set(3, derefString(outcome.Client))
		set(4, derefString(outcome.Consignee))
		set(5, derefString(outcome.AppointmentDateTime))
		set(6, derefString(outcome.C3Response))
		set(7, strings.Join(outcome.PONumbers, ", "))
		set(8, outcome.RowType)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
