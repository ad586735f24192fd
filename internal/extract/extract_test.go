package extract

import (
	"reflect"
	"testing"
)

func TestPOsFromUpdateBodyPrefersHTML(t *testing.T) {
	body := `
<table><tr><th>Purchase Order Number</th></tr><tr><td>111</td></tr></table>

| Purchase Order Number |
| 222 |
`
	got := POsFromUpdateBody(body)
	want := []string{"111"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestPOsFromUpdateBodyMarkdownFallback(t *testing.T) {
	body := "| Purchase Order Number |\n| 222 |"
	got := POsFromUpdateBody(body)
	want := []string{"222"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestPOsFromUpdateBodyEmpty(t *testing.T) {
	if got := POsFromUpdateBody("   \n  "); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestMergePONumbers(t *testing.T) {
	got := MergePONumbers(
		[]string{"0008909460", "0008909797"},
		[]string{"0008909460", "", "0008909811"},
		[]string{"0008909797"},
	)
	want := []string{"0008909460", "0008909797", "0008909811"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
