package extract

import "strings"

// POsFromUpdateBody extracts PO numbers from one update body. HTML tables are
// tried first; the Markdown scan runs only when HTML yields nothing. The two
// strategies are never combined. Duplicates are kept at this stage.
func POsFromUpdateBody(body string) []string {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}
	pos := POsFromHTMLTables(body)
	if len(pos) == 0 {
		pos = POsFromMarkdownTable(body)
	}
	return pos
}

// MergePONumbers concatenates the given PO sequences in order and
// deduplicates by exact string equality, preserving first-seen order. Empty
// values are dropped.
func MergePONumbers(lists ...[]string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, list := range lists {
		for _, po := range list {
			po = strings.TrimSpace(po)
			if po == "" {
				continue
			}
			if _, ok := seen[po]; ok {
				continue
			}
			seen[po] = struct{}{}
			out = append(out, po)
		}
	}
	return out
}
