package storage

import (
	"path/filepath"
	"reflect"
	"testing"

	"c3track/internal"
	"c3track/internal/util"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestInsertAndListOutcomes(t *testing.T) {
	db := openTestDB(t)

	outcome := internal.ItemOutcome{
		ItemID: "101",
		AppointmentRecord: internal.AppointmentRecord{
			AppointmentNumber:   util.StringPtr("46578951"),
			Client:              util.StringPtr("Sobeys"),
			Consignee:           util.StringPtr("Winnipeg RSC08"),
			AppointmentDateTime: util.StringPtr("2026/01/14 02:50 CST"),
			C3Response:          util.StringPtr("Reservation Approval"),
			PONumbers:           []string{"111", "222"},
		},
		RowType: "New",
	}
	if err := db.InsertOutcome("trace-a", outcome); err != nil {
		t.Fatalf("InsertOutcome: %v", err)
	}

	outcome.RowType = "Update"
	if err := db.InsertOutcome("trace-a", outcome); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := db.ListOutcomesByTrace("trace-a")
	if err != nil {
		t.Fatalf("ListOutcomesByTrace: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d outcomes", len(got))
	}
	if got[0].RowType != "Update" {
		t.Fatalf("rowType = %q", got[0].RowType)
	}
	if got[0].AppointmentNumber == nil || *got[0].AppointmentNumber != "46578951" {
		t.Fatalf("appointment = %v", got[0].AppointmentNumber)
	}
	if !reflect.DeepEqual(got[0].PONumbers, []string{"111", "222"}) {
		t.Fatalf("po = %v", got[0].PONumbers)
	}

	other, err := db.ListOutcomesByTrace("trace-b")
	if err != nil {
		t.Fatalf("ListOutcomesByTrace: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("got %d outcomes for unknown trace", len(other))
	}
}

func TestInsertRun(t *testing.T) {
	db := openTestDB(t)
	if err := db.InsertRun("trace-a", "appointments", map[string]int{"processed": 3, "new": 2}); err != nil {
		t.Fatalf("InsertRun: %v", err)
	}
}

func TestMetadata(t *testing.T) {
	db := openTestDB(t)

	missing, err := db.GetMetadata("lastTrace")
	if err != nil {
		t.Fatalf("GetMetadata: %v", err)
	}
	if missing != nil {
		t.Fatalf("got %v", *missing)
	}

	if err := db.SetMetadata("lastTrace", "trace-a"); err != nil {
		t.Fatalf("SetMetadata: %v", err)
	}
	if err := db.SetMetadata("lastTrace", "trace-b"); err != nil {
		t.Fatalf("SetMetadata overwrite: %v", err)
	}

	got, err := db.GetMetadata("lastTrace")
	if err != nil {
		t.Fatalf("GetMetadata: %v", err)
	}
	if got == nil || *got != "trace-b" {
		t.Fatalf("got %v", got)
	}
}
