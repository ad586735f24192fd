package board

import (
	"strings"

	"c3track/internal"
	"c3track/internal/normalize"
)

// Destination column titles on the appointment board.
const (
	ColAppointmentNumber    = "Appointment #"
	ColClient               = "Client"
	ColConsignee            = "Consignee"
	ColAppointmentDate      = "Appointment Date"
	ColRequestedAppointment = "Requested Delivery Appointment"
	ColPO                   = "PO"
	ColC3Response           = "C3 Response"
)

// ColumnsByTitle indexes columns by lowercased trimmed title for destination
// lookup. Columns with empty titles are skipped.
func ColumnsByTitle(columns []internal.BoardColumn) map[string]internal.BoardColumn {
	out := map[string]internal.BoardColumn{}
	for _, col := range columns {
		title := strings.ToLower(strings.TrimSpace(col.Title))
		if title == "" {
			continue
		}
		out[title] = internal.BoardColumn{
			ID:    strings.TrimSpace(col.ID),
			Title: col.Title,
			Type:  strings.ToLower(col.Type),
		}
	}
	return out
}

// BuildColumnValues maps the six logical fields plus the row classification
// onto the destination columns. Date-typed destinations get the normalized
// {date,time} pair when normalization succeeds, the raw string otherwise;
// the PO list is comma-joined; status-typed destinations get label payloads.
// Absent fields and unresolvable columns are skipped.
func BuildColumnValues(byTitle map[string]internal.BoardColumn, record internal.AppointmentRecord, rowTypeColumnTitle, rowTypeValue string) map[string]any {
	payload := map[string]any{}

	setText := func(title string, value *string) {
		col, ok := byTitle[strings.ToLower(title)]
		if !ok || col.ID == "" || value == nil {
			return
		}
		if strings.Contains(col.Type, "date") {
			if dt, ok := normalize.ParseDateTime(*value); ok {
				payload[col.ID] = dt
				return
			}
		}
		payload[col.ID] = strings.TrimSpace(*value)
	}

	setText(ColAppointmentNumber, record.AppointmentNumber)
	setText(ColClient, record.Client)
	setText(ColConsignee, record.Consignee)
	setText(ColAppointmentDate, record.AppointmentDateTime)
	setText(ColRequestedAppointment, record.AppointmentDateTime)

	if col, ok := byTitle[strings.ToLower(ColPO)]; ok && col.ID != "" && len(record.PONumbers) > 0 {
		payload[col.ID] = strings.Join(record.PONumbers, ", ")
	}

	if record.C3Response != nil {
		if label, ok := normalize.MapResponse(*record.C3Response); ok {
			if col, ok := byTitle[strings.ToLower(ColC3Response)]; ok && col.ID != "" {
				payload[col.ID] = map[string]string{"label": label}
			}
		}
	}

	if rowTypeValue != "" {
		if col, ok := byTitle[strings.ToLower(rowTypeColumnTitle)]; ok && col.ID != "" {
			payload[col.ID] = map[string]string{"label": rowTypeValue}
		}
	}

	return payload
}
