package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"c3track/internal"
	"c3track/internal/util"
)

func TestExportOutcomesToXLSX(t *testing.T) {
	outcomes := []internal.ItemOutcome{
		{
			ItemID: "101",
			AppointmentRecord: internal.AppointmentRecord{
				AppointmentNumber: util.StringPtr("46578951"),
				Client:            util.StringPtr("Sobeys"),
				PONumbers:         []string{"111", "222"},
			},
			RowType: "New",
		},
		{
			ItemID: "102",
			AppointmentRecord: internal.AppointmentRecord{
				PONumbers: []string{},
			},
			RowType: "Update",
		},
	}

	path := filepath.Join(t.TempDir(), "out", "records.xlsx")
	if err := ExportOutcomesToXLSX(outcomes, path); err != nil {
		t.Fatalf("ExportOutcomesToXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0][0] != "item_id" || rows[0][7] != "row_type" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][0] != "101" || rows[1][6] != "111, 222" {
		t.Fatalf("row 1 = %v", rows[1])
	}
	if rows[2][0] != "102" {
		t.Fatalf("row 2 = %v", rows[2])
	}
}
