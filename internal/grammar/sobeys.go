package grammar

import (
	"regexp"
	"strings"

	"c3track/internal"
	"c3track/internal/extract"
	"c3track/internal/util"
)

// Sobeys packs everything into the subject:
//
//	Sobeys - Update for 46554663 on 2026/01/14 05:00 AST for Oromocto RSC29
//	Sobeys - Reservation Approval: 46578951 on 2026/01/14 02:50 CST for Winnipeg RSC08
//
// The response is terminated by "for " or a colon directly before the
// appointment number. Subjects are occasionally folded across lines, hence s.
var reSobeysSubject = regexp.MustCompile(`(?is)^(.+?)\s+-\s+(.+?)\s*(?:for\s+|:\s*)(\d+)\s+on\s+(.+?)\s+for\s+(.+)$`)

type SobeysGrammar struct{}

func (SobeysGrammar) Vendor() internal.VendorFormat { return internal.VendorSobeys }

func (SobeysGrammar) Extract(item internal.WorkItem) internal.AppointmentRecord {
	record := ParseSobeysSubject(item.Name)

	// PO numbers never come from the subject; every update body is scanned.
	lists := make([][]string, 0, len(item.Updates))
	for _, upd := range item.Updates {
		lists = append(lists, extract.POsFromUpdateBody(upd.Body))
	}
	record.PONumbers = extract.MergePONumbers(lists...)
	return record
}

// ParseSobeysSubject parses the fixed Sobeys subject shape. On no match all
// fields are absent.
func ParseSobeysSubject(subject string) internal.AppointmentRecord {
	record := internal.AppointmentRecord{PONumbers: []string{}}
	m := reSobeysSubject.FindStringSubmatch(strings.TrimSpace(subject))
	if m == nil {
		return record
	}
	record.Client = util.TrimmedPtr(m[1])
	record.C3Response = util.TrimmedPtr(m[2])
	record.AppointmentNumber = util.TrimmedPtr(m[3])
	record.AppointmentDateTime = util.TrimmedPtr(m[4])
	record.Consignee = util.TrimmedPtr(m[5])
	return record
}
