package internal

import "strings"

type VendorFormat string

const (
	VendorSobeys VendorFormat = "sobeys"
	VendorLoblaw VendorFormat = "loblaw"
)

type RowType string

const (
	RowTypeNew    RowType = "New"
	RowTypeUpdate RowType = "Update"
)

// RawUpdate is one update body attached to a board item. Bodies may be HTML,
// Markdown, or empty. Order matters: the board returns them chronologically
// and the pipeline prefers the first non-empty body for body-derived fields.
type RawUpdate struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

type WorkItem struct {
	ID      string
	Name    string
	Group   string
	Updates []RawUpdate
}

// DateTimeValue is the normalized form a date-typed destination column
// expects: date as YYYY-MM-DD, time as HH:MM:SS.
type DateTimeValue struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// AppointmentRecord is the canonical six-field output for one work item.
// Nil means the field could not be extracted. PONumbers is an ordered set of
// digit-only strings.
type AppointmentRecord struct {
	AppointmentNumber   *string  `json:"appointment_number"`
	Client              *string  `json:"client"`
	Consignee           *string  `json:"consignee"`
	AppointmentDateTime *string  `json:"appointment_date_time"`
	C3Response          *string  `json:"c3_response"`
	PONumbers           []string `json:"po_numbers"`
}

// NaturalKey returns the trimmed appointment/reference number used for
// New-vs-Update classification, or "" when absent.
func (r AppointmentRecord) NaturalKey() string {
	if r.AppointmentNumber == nil {
		return ""
	}
	return strings.TrimSpace(*r.AppointmentNumber)
}

type ItemOutcome struct {
	ItemID string `json:"item_id"`
	AppointmentRecord
	// RowType is a string rather than the RowType type: a write-back failure
	// is annotated inline on the value.
	RowType string `json:"row_type"`
}

type BatchResult struct {
	TraceID   string        `json:"trace_id"`
	Items     []ItemOutcome `json:"items"`
	Count     int           `json:"count"`
	SavedPath string        `json:"saved_path"`
}

type POResult struct {
	ItemID      string   `json:"item_id"`
	PONumbers   []string `json:"po_numbers"`
	UpdateCount int      `json:"update_count"`
}

type BoardColumn struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type ItemRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
