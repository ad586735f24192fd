package extract

import (
	"reflect"
	"testing"
)

func TestPOsFromMarkdownTable(t *testing.T) {
	body := `
Shipment update below.

| Carrier | Purchase Order Number |
| ------- | --------------------- |
| ABC     | 123456                |
| ABC     | n/a                   |
| ABC     | 654321                |
`
	got := POsFromMarkdownTable(body)
	want := []string{"123456", "654321"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestPOsFromMarkdownTableStopsAfterFirstMatch(t *testing.T) {
	body := `
| Purchase Order Number |
| --------------------- |
| 111 |

| Purchase Order Number |
| --------------------- |
| 222 |
`
	got := POsFromMarkdownTable(body)
	want := []string{"111"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestPOsFromMarkdownTableShortRows(t *testing.T) {
	body := `
| Carrier | Purchase Order Number |
| ABC |
| ABC | 777 |
`
	got := POsFromMarkdownTable(body)
	want := []string{"777"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
