package grammar

import (
	"reflect"
	"testing"

	"c3track/internal"
)

func TestParseLoblawSubject(t *testing.T) {
	record := ParseLoblawSubject("Appointment Confirmation Approved - from Loblaw Appointing: for Matrix Calgary DC on 16/01/2026 14:30 MST")
	assertField(t, "response", record.C3Response, "Appointment Confirmation Approved")
	assertField(t, "client", record.Client, "Loblaw")
}

func TestParseLoblawSubjectNoMatch(t *testing.T) {
	record := ParseLoblawSubject("delivery summary")
	if record.C3Response != nil || record.Client != nil {
		t.Fatalf("expected absent fields: %+v", record)
	}
}

func TestParseLoblawBody(t *testing.T) {
	body := "<p>Reference # : 9920891</p>" +
		"<p>Scheduled Date : 16/01/2026 14:30 MST</p>" +
		"<p>Site : Matrix Calgary DC Warehouse : CGY04</p>" +
		"<p>PO(s): 0008909460,0008909797</p>"
	record := ParseLoblawBody(body)
	assertField(t, "appointment", record.AppointmentNumber, "9920891")
	assertField(t, "datetime", record.AppointmentDateTime, "16/01/2026 14:30 MST")
	assertField(t, "consignee", record.Consignee, "Matrix Calgary DC")
	want := []string{"0008909460", "0008909797"}
	if !reflect.DeepEqual(record.PONumbers, want) {
		t.Fatalf("got %v want %v", record.PONumbers, want)
	}
}

func TestParseLoblawBodySingularPOLabel(t *testing.T) {
	record := ParseLoblawBody("Reference # : 12 PO : 555, 666")
	want := []string{"555", "666"}
	if !reflect.DeepEqual(record.PONumbers, want) {
		t.Fatalf("got %v want %v", record.PONumbers, want)
	}
}

func TestLoblawExtractMergesInlineAndTablePOs(t *testing.T) {
	body := "<p>Reference # : 9920891</p>" +
		"<p>Scheduled Date : 16/01/2026 14:30 MST</p>" +
		"<p>Site : Matrix Calgary DC Warehouse : CGY04</p>" +
		"<p>PO(s): 0008909460,0008909797</p>" +
		"<table><tr><th>Purchase Order Number</th></tr><tr><td>0008909460</td></tr></table>"
	item := internal.WorkItem{
		ID:      "202",
		Name:    "Appointment Confirmation Approved - from Loblaw Appointing",
		Updates: []internal.RawUpdate{{ID: "u1", Body: body}},
	}
	record := LoblawGrammar{}.Extract(item)
	assertField(t, "response", record.C3Response, "Appointment Confirmation Approved")
	assertField(t, "client", record.Client, "Loblaw")
	assertField(t, "appointment", record.AppointmentNumber, "9920891")
	assertField(t, "consignee", record.Consignee, "Matrix Calgary DC")
	want := []string{"0008909460", "0008909797"}
	if !reflect.DeepEqual(record.PONumbers, want) {
		t.Fatalf("got %v want %v", record.PONumbers, want)
	}
}

func TestReferenceNumber(t *testing.T) {
	if got := ReferenceNumber("<p>Reference # : 9920891</p>"); got != "9920891" {
		t.Fatalf("got %q", got)
	}
	if got := ReferenceNumber("no reference here"); got != "" {
		t.Fatalf("got %q", got)
	}
}
