// Package extract recovers purchase-order numbers from tables embedded in
// notification update bodies. Bodies arrive as HTML or Markdown; the two
// extractors share the same header-match rule but differ in scope: the HTML
// extractor processes every matching table in the text, the Markdown
// extractor stops after the first.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"c3track/internal/util"
)

// poHeaderProbes select the PO column: the first header whose lowercased,
// trimmed text contains one of these phrases wins, left to right.
var poHeaderProbes = []string{"purchase order number", "purchase order"}

var reDigitsOnly = regexp.MustCompile(`^\d+$`)

// POsFromHTMLTables walks every table in the text, treats the first row as
// the header row, and returns the digit-only values of the PO column in row
// order. Tables without a matching header contribute nothing; non-numeric or
// empty cells are dropped. Results from all matching tables are concatenated
// in document order.
func POsFromHTMLTables(body string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	out := []string{}
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		headers := []string{}
		rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, strings.ToLower(util.CollapseSpaces(cell.Text())))
		})

		colIdx := findHeaderIndex(headers, poHeaderProbes)
		if colIdx < 0 {
			return
		}

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, util.CollapseSpaces(cell.Text()))
			})
			if colIdx >= len(cells) {
				return
			}
			val := strings.TrimSpace(cells[colIdx])
			if val != "" && reDigitsOnly.MatchString(val) {
				out = append(out, val)
			}
		})
	})

	return out
}

func findHeaderIndex(headers, probes []string) int {
	for i, h := range headers {
		for _, probe := range probes {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}
