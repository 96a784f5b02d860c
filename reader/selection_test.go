package reader

import (
	"reflect"
	"testing"
)

func TestParseSelection(t *testing.T) {
	table := []struct {
		selection string
		max       int
		expect    []int
	}{
		{"1", 5, []int{1}},
		{"5", 5, []int{5}},
		{" 3 ", 5, []int{3}},
		{"2-4", 5, []int{2, 3, 4}},
		{"1 - 5", 5, []int{1, 2, 3, 4, 5}},
		{"3-3", 5, []int{3}},
		{"0", 5, nil},
		{"6", 5, nil},
		{"4-2", 5, nil},
		{"0-3", 5, nil},
		{"2-6", 5, nil},
		{"", 5, nil},
		{"x", 5, nil},
		{"1-x", 5, nil},
		{"-3", 5, nil},
		{"1", 0, nil},
	}

	for _, el := range table {
		got, err := ParseSelection(el.selection, el.max)
		if el.expect == nil {
			if err == nil {
				t.Fatalf("Expected an error for %q (max %d), got %v", el.selection, el.max, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Unexpected error for %q: %v", el.selection, err)
		}
		if !reflect.DeepEqual(got, el.expect) {
			t.Fatalf("Expected %v for %q, got %v", el.expect, el.selection, got)
		}
	}
}

func TestInvalidSelectionErrorMessage(t *testing.T) {
	_, err := ParseSelection("9", 4)
	expect := "enter a number between 1 and 4, or a range like 1-4"
	if err == nil || err.Error() != expect {
		t.Fatalf("Expected %q, got %v", expect, err)
	}
}
