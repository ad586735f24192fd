package extract

import (
	"regexp"
	"strings"
)

var reSeparatorCell = regexp.MustCompile(`^[\s\-:]+$`)

// POsFromMarkdownTable scans for a pipe-table header containing the PO
// column and returns the digit-only values below it. Only the first matching
// table is processed; the scan stops once its data block ends, even if more
// tables follow.
func POsFromMarkdownTable(body string) []string {
	pos := []string{}
	lines := strings.Split(body, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	for i, line := range lines {
		if !strings.HasPrefix(line, "|") || !strings.Contains(line[1:], "|") {
			continue
		}
		headers := splitTableRow(line)
		if len(headers) == 0 {
			continue
		}
		for j := range headers {
			headers[j] = strings.ToLower(headers[j])
		}
		colIdx := findHeaderIndex(headers, poHeaderProbes)
		if colIdx < 0 {
			continue
		}

		for j := i + 1; j < len(lines); j++ {
			if !strings.HasPrefix(lines[j], "|") {
				break
			}
			cells := splitTableRow(lines[j])
			if len(cells) <= colIdx {
				continue
			}
			val := cells[colIdx]
			if val == "" || reSeparatorCell.MatchString(val) {
				continue
			}
			if reDigitsOnly.MatchString(val) {
				pos = append(pos, val)
			}
		}
		break
	}

	return pos
}

// splitTableRow turns "| A | B |" into ["A", "B"], dropping the empty
// segments produced by the leading and trailing pipe.
func splitTableRow(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) < 3 {
		return nil
	}
	parts = parts[1 : len(parts)-1]
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
