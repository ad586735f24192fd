package grammar

import (
	"regexp"
	"strings"

	"c3track/internal"
	"c3track/internal/extract"
	"c3track/internal/util"
)

// Loblaw splits the fields between subject and body:
//
//	Appointment Confirmation Approved - from Loblaw Appointing: for Matrix Calgary DC on 16/01/2026 14:30 MST
//
// The subject yields response and client only; the rest lives in the body as
// key-value text (Reference #, Scheduled Date, Site, PO(s)).
var (
	reLoblawSubject = regexp.MustCompile(`(?i)^(.+?)\s+-\s+from\s+(.+?)(?:\s+Appointing|\s*:|\s*$)`)

	reLoblawReference = regexp.MustCompile(`(?i)Reference\s*#\s*:\s*(\d+)`)
	reLoblawScheduled = regexp.MustCompile(`(?i)Scheduled\s+Date\s*:\s*(\d{2}/\d{2}/\d{4}\s+\d{1,2}:\d{2}\s+[A-Z]{3,4})`)
	// Site runs until the next labelled section. The body arrives
	// whitespace-collapsed, so the space and newline boundaries mostly guard
	// against bodies that skipped stripping.
	reLoblawSite = regexp.MustCompile(`(?i)Site\s*:\s*([^\n]+?)(?:\s+Warehouse\s*:|\s{2,}|\n|PO\s*\(|Comments:|$)`)
	reLoblawPOs  = regexp.MustCompile(`(?i)PO\s*\(\s*s\s*\)\s*:\s*([\d,\s]+)`)
	reLoblawPO   = regexp.MustCompile(`(?i)PO\s*:\s*([\d,\s]+)`)

	reAllSpaces = regexp.MustCompile(`\s+`)
)

type LoblawGrammar struct{}

func (LoblawGrammar) Vendor() internal.VendorFormat { return internal.VendorLoblaw }

func (LoblawGrammar) Extract(item internal.WorkItem) internal.AppointmentRecord {
	record := ParseLoblawSubject(item.Name)

	body := firstNonEmptyBody(item.Updates)
	fields := ParseLoblawBody(body)
	record.AppointmentNumber = fields.AppointmentNumber
	record.AppointmentDateTime = fields.AppointmentDateTime
	record.Consignee = fields.Consignee

	// Inline PO list first, then table hits from every update body.
	lists := make([][]string, 0, len(item.Updates)+1)
	lists = append(lists, fields.PONumbers)
	for _, upd := range item.Updates {
		lists = append(lists, extract.POsFromUpdateBody(upd.Body))
	}
	record.PONumbers = extract.MergePONumbers(lists...)
	return record
}

// ParseLoblawSubject recovers response and client from the subject. The
// client capture stops at " Appointing", a colon, or end of line.
func ParseLoblawSubject(subject string) internal.AppointmentRecord {
	record := internal.AppointmentRecord{PONumbers: []string{}}
	m := reLoblawSubject.FindStringSubmatch(strings.TrimSpace(subject))
	if m == nil {
		return record
	}
	record.C3Response = util.TrimmedPtr(m[1])
	record.Client = util.TrimmedPtr(m[2])
	return record
}

// ParseLoblawBody extracts the body key-value fields from HTML-stripped,
// CRLF-normalized text. Each field is independent; a miss leaves it absent.
func ParseLoblawBody(body string) internal.AppointmentRecord {
	record := internal.AppointmentRecord{PONumbers: []string{}}
	if strings.TrimSpace(body) == "" {
		return record
	}
	text := strings.ReplaceAll(util.StripHTML(body), "\r\n", "\n")

	if m := reLoblawReference.FindStringSubmatch(text); m != nil {
		record.AppointmentNumber = util.TrimmedPtr(m[1])
	}
	if m := reLoblawScheduled.FindStringSubmatch(text); m != nil {
		record.AppointmentDateTime = util.TrimmedPtr(m[1])
	}
	if m := reLoblawSite.FindStringSubmatch(text); m != nil {
		record.Consignee = util.TrimmedPtr(m[1])
	}

	m := reLoblawPOs.FindStringSubmatch(text)
	if m == nil {
		m = reLoblawPO.FindStringSubmatch(text)
	}
	if m != nil {
		raw := reAllSpaces.ReplaceAllString(m[1], "")
		for _, po := range strings.Split(raw, ",") {
			if po != "" {
				record.PONumbers = append(record.PONumbers, po)
			}
		}
	}
	return record
}

// ReferenceNumber pulls the Reference # value straight out of an update body
// without stripping it first; the frequency builder scans raw bodies in bulk.
func ReferenceNumber(body string) string {
	if m := reLoblawReference.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}

func firstNonEmptyBody(updates []internal.RawUpdate) string {
	for _, upd := range updates {
		if body := strings.TrimSpace(upd.Body); body != "" {
			return body
		}
	}
	return ""
}
