package reader

import (
	"fmt"
	"strconv"
	"strings"
)

// InvalidSelectionError is returned for numeric input that is out of range or
// malformed. It carries the valid bounds so the caller can re-prompt with them.
type InvalidSelectionError struct {
	Min int
	Max int
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("enter a number between %d and %d, or a range like %d-%d", e.Min, e.Max, e.Min, e.Max)
}

// ParseSelection parses a 1-based article selection: either a single number
// ("3") or an inclusive range ("3-7"). Every returned number is within
// [1, max]; anything else fails with InvalidSelectionError.
func ParseSelection(selection string, max int) ([]int, error) {
	selection = strings.TrimSpace(selection)
	outOfRange := &InvalidSelectionError{Min: 1, Max: max}

	if before, after, found := strings.Cut(selection, "-"); found {
		start, err := strconv.Atoi(strings.TrimSpace(before))
		if err != nil {
			return nil, outOfRange
		}
		end, err := strconv.Atoi(strings.TrimSpace(after))
		if err != nil {
			return nil, outOfRange
		}
		if start < 1 || end > max || start > end {
			return nil, outOfRange
		}
		numbers := make([]int, 0, end-start+1)
		for n := start; n <= end; n++ {
			numbers = append(numbers, n)
		}
		return numbers, nil
	}

	n, err := strconv.Atoi(selection)
	if err != nil || n < 1 || n > max {
		return nil, outOfRange
	}
	return []int{n}, nil
}
