package normalize

import (
	"regexp"
	"strings"
)

// responseLabels maps the raw C3 response phrase from a notification to the
// status label the destination column uses. Loaded once; read-only.
var responseLabels = map[string]string{
	// Sobeys
	"reservation approval":        "Approved",
	"update":                      "Update",
	"no show appointment":         "No show",
	"missing/incorrect paperwork": "Missing/Incorrect Paperwork",
	"signed paperwork":            "Signed Paperwork",
	// Loblaw
	"appointment confirmation approved":         "Approved",
	"appointment cancellation request approved": "Cancelled",
	"appointment cancellation":                  "Cancelled",
	"appointment rejection":                     "Rejected",
	"no show notification":                      "No Show",
	"amendment accepted":                        "Amendment Accepted",
}

var reInnerSpaces = regexp.MustCompile(`\s+`)

// MapResponse resolves a raw vendor phrase to its canonical status label.
// Lookup is case-insensitive and trim-insensitive, and internal whitespace
// runs collapse to one space. Unmapped phrases yield ok=false, never an
// error.
func MapResponse(raw string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", false
	}
	if label, ok := responseLabels[key]; ok {
		return label, true
	}
	key = reInnerSpaces.ReplaceAllString(key, " ")
	label, ok := responseLabels[key]
	return label, ok
}
