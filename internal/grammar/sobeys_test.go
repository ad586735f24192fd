package grammar

import (
	"reflect"
	"testing"

	"c3track/internal"
)

func TestParseSobeysSubjectWithColon(t *testing.T) {
	record := ParseSobeysSubject("Sobeys - Reservation Approval: 46578951 on 2026/01/14 02:50 CST for Winnipeg RSC08")
	assertField(t, "client", record.Client, "Sobeys")
	assertField(t, "response", record.C3Response, "Reservation Approval")
	assertField(t, "appointment", record.AppointmentNumber, "46578951")
	assertField(t, "datetime", record.AppointmentDateTime, "2026/01/14 02:50 CST")
	assertField(t, "consignee", record.Consignee, "Winnipeg RSC08")
}

func TestParseSobeysSubjectWithFor(t *testing.T) {
	record := ParseSobeysSubject("Sobeys - Update for 46554663 on 2026/01/14 05:00 AST for Oromocto RSC29")
	assertField(t, "response", record.C3Response, "Update")
	assertField(t, "appointment", record.AppointmentNumber, "46554663")
	assertField(t, "consignee", record.Consignee, "Oromocto RSC29")
}

func TestParseSobeysSubjectNoMatch(t *testing.T) {
	record := ParseSobeysSubject("weekly digest")
	if record.Client != nil || record.AppointmentNumber != nil || record.C3Response != nil {
		t.Fatalf("expected absent fields: %+v", record)
	}
}

func TestSobeysExtractMergesUpdateTables(t *testing.T) {
	item := internal.WorkItem{
		ID:   "101",
		Name: "Sobeys - Update for 46554663 on 2026/01/14 05:00 AST for Oromocto RSC29",
		Updates: []internal.RawUpdate{
			{ID: "u1", Body: `<table><tr><th>Purchase Order Number</th></tr><tr><td>111</td></tr><tr><td>222</td></tr></table>`},
			{ID: "u2", Body: ""},
			{ID: "u3", Body: `<table><tr><th>Purchase Order Number</th></tr><tr><td>222</td></tr><tr><td>333</td></tr></table>`},
		},
	}
	record := SobeysGrammar{}.Extract(item)
	want := []string{"111", "222", "333"}
	if !reflect.DeepEqual(record.PONumbers, want) {
		t.Fatalf("got %v want %v", record.PONumbers, want)
	}
}

func TestDetect(t *testing.T) {
	if Detect("Sobeys - Update for 1 on x for y").Vendor() != internal.VendorSobeys {
		t.Fatal("expected sobeys")
	}
	if Detect("  sobeys weekly recap").Vendor() != internal.VendorSobeys {
		t.Fatal("expected sobeys prefix match")
	}
	if Detect("Appointment Rejection - from Loblaw Appointing").Vendor() != internal.VendorLoblaw {
		t.Fatal("expected loblaw")
	}
}

func assertField(t *testing.T, name string, got *string, want string) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s is absent, want %q", name, want)
	}
	if *got != want {
		t.Fatalf("%s = %q, want %q", name, *got, want)
	}
}
