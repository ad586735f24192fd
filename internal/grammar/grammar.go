// Package grammar parses vendor notification subjects and bodies into
// appointment records. Each vendor format is a fixed grammar; a non-match
// leaves fields absent rather than failing. The set is closed: new vendors
// mean a new Grammar implementation plus a Detect rule.
package grammar

import (
	"strings"

	"c3track/internal"
)

type Grammar interface {
	Vendor() internal.VendorFormat
	// Extract builds the canonical record from the item's subject-like name
	// and its ordered update bodies. Fields that cannot be recovered stay
	// nil; PONumbers is always deduplicated in first-seen order.
	Extract(item internal.WorkItem) internal.AppointmentRecord
}

// Detect picks the grammar from the item name. Sobeys names carry the vendor
// verbatim; everything else on the board is Loblaw traffic.
func Detect(name string) Grammar {
	if IsSobeys(name) {
		return SobeysGrammar{}
	}
	return LoblawGrammar{}
}

func IsSobeys(name string) bool {
	if strings.Contains(name, "Sobeys") {
		return true
	}
	trimmed := strings.TrimSpace(name)
	return trimmed != "" && strings.HasPrefix(strings.ToLower(trimmed), "sobeys")
}
